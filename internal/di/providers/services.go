package providers

import (
	"github.com/samber/do/v2"

	"github.com/careerlens/careerlens-server/internal/logger"
	"github.com/careerlens/careerlens-server/internal/service"
)

// ProvidePredictionService provides the cluster prediction service.
func ProvidePredictionService(i do.Injector) (*service.PredictionService, error) {
	artifacts := do.MustInvoke[*ArtifactStoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewPredictionService(artifacts.Store, log), nil
}

// ProvideComparisonService provides the prediction evaluation service.
func ProvideComparisonService(i do.Injector) (*service.ComparisonService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewComparisonService(log), nil
}

// ProvideInsightService provides the academic profile index service.
func ProvideInsightService(i do.Injector) (*service.InsightService, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewInsightService(log), nil
}

// ProvideRoadmapService provides the roadmap generation service.
func ProvideRoadmapService(i do.Injector) (*service.RoadmapService, error) {
	artifacts := do.MustInvoke[*ArtifactStoreHandle](i)
	generator := do.MustInvoke[*RoadmapGeneratorHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewRoadmapService(artifacts.Store, generator.Generator, log), nil
}
