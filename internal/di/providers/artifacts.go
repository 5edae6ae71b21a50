package providers

import (
	"context"
	"fmt"

	"github.com/samber/do/v2"

	"github.com/careerlens/careerlens-server/internal/artifact"
	"github.com/careerlens/careerlens-server/internal/config"
	"github.com/careerlens/careerlens-server/internal/logger"
	"github.com/careerlens/careerlens-server/internal/roadmap"
)

// ArtifactStoreHandle wraps artifact.Store with Shutdownable.
type ArtifactStoreHandle struct {
	*artifact.Store
}

// Shutdown implements do.Shutdownable.
func (h *ArtifactStoreHandle) Shutdown() error {
	return h.Store.Close()
}

// ProvideArtifactStore loads the trained model set and optionally starts
// watching the artifact directory for hot reload.
func ProvideArtifactStore(i do.Injector) (*ArtifactStoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	store, err := artifact.NewStore(cfg.Models.Dir, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load model artifacts from %s: %w", cfg.Models.Dir, err)
	}

	if cfg.Models.WatchReload {
		if err := store.Watch(); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to watch model artifacts: %w", err)
		}
	}

	return &ArtifactStoreHandle{Store: store}, nil
}

// RoadmapGeneratorHandle wraps the optional generative client. Generator
// is nil when no API key is configured.
type RoadmapGeneratorHandle struct {
	Generator roadmap.Generator
}

// ProvideRoadmapGenerator provides the Gemini client when configured.
func ProvideRoadmapGenerator(i do.Injector) (*RoadmapGeneratorHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Roadmap.APIKey == "" {
		log.Warn("No generative API key configured, roadmaps will use static fallback")
		return &RoadmapGeneratorHandle{}, nil
	}

	gen, err := roadmap.NewGeminiGenerator(context.Background(), cfg.Roadmap.APIKey, cfg.Roadmap.Model)
	if err != nil {
		log.Warn("Failed to create generative client, roadmaps will use static fallback", "error", err)
		return &RoadmapGeneratorHandle{}, nil
	}

	log.Info("Generative client ready", "model", cfg.Roadmap.Model)
	return &RoadmapGeneratorHandle{Generator: gen}, nil
}
