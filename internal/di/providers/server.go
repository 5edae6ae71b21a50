package providers

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/careerlens/careerlens-server/internal/api"
	"github.com/careerlens/careerlens-server/internal/config"
	"github.com/careerlens/careerlens-server/internal/logger"
	"github.com/careerlens/careerlens-server/internal/service"
)

const shutdownTimeout = 10 * time.Second

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	artifacts := do.MustInvoke[*ArtifactStoreHandle](i)

	services := &api.Services{
		Prediction: do.MustInvoke[*service.PredictionService](i),
		Comparison: do.MustInvoke[*service.ComparisonService](i),
		Insight:    do.MustInvoke[*service.InsightService](i),
		Roadmap:    do.MustInvoke[*service.RoadmapService](i),
	}

	handler := api.NewServer(services, artifacts.Store, log, api.Options{
		Name:           cfg.Server.Name,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		RoadmapRPM:     cfg.Roadmap.RequestsPerMinute,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
