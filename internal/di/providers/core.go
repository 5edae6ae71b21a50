// Package providers contains the dependency injection providers for all
// server components.
package providers

import (
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/careerlens/careerlens-server/internal/config"
	"github.com/careerlens/careerlens-server/internal/logger"
)

// ProvideConfig loads and validates the application configuration.
func ProvideConfig(_ do.Injector) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ProvideLogger provides the application logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Writer:      os.Stdout,
		Environment: cfg.App.Environment,
		Level:       logger.ParseLevel(cfg.Logger.Level),
	})

	log.Info("Logger initialized",
		"environment", cfg.App.Environment,
		"level", cfg.Logger.Level,
	)
	return log, nil
}
