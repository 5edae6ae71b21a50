// Package di provides dependency injection configuration for the
// CareerLens server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/careerlens/careerlens-server/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Model artifacts
	do.Provide(injector, providers.ProvideArtifactStore)

	// Generative client
	do.Provide(injector, providers.ProvideRoadmapGenerator)

	// Business services
	do.Provide(injector, providers.ProvidePredictionService)
	do.Provide(injector, providers.ProvideComparisonService)
	do.Provide(injector, providers.ProvideInsightService)
	do.Provide(injector, providers.ProvideRoadmapService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap eagerly starts the long-lived components.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return err
	}
	return nil
}
