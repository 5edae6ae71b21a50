package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	artifactsHealth := s.checkArtifacts()
	components["artifacts"] = artifactsHealth
	if artifactsHealth.Status == "unhealthy" {
		overall = "unhealthy"
	}

	embeddingHealth := s.checkEmbedding()
	components["embedding"] = embeddingHealth
	if embeddingHealth.Status == "degraded" && overall == "healthy" {
		overall = "degraded"
	}

	generativeHealth := s.checkGenerative()
	components["generative"] = generativeHealth
	if generativeHealth.Status == "degraded" && overall == "healthy" {
		overall = "degraded"
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkArtifacts verifies a model set snapshot is loaded.
func (s *Server) checkArtifacts() ComponentHealth {
	if s.artifacts == nil || s.artifacts.Current() == nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Message: "no model set loaded",
		}
	}

	ms := s.artifacts.Current()
	return ComponentHealth{
		Status: "healthy",
		Message: fmt.Sprintf("%d clusters, %d features, loaded %s",
			ms.KMeans.K(), ms.Schema.Width(), ms.LoadedAt.Format(time.RFC3339)),
	}
}

// checkEmbedding reports which embedding strategy the active model set
// supports. Passthrough-only is degraded when widths cannot line up.
func (s *Server) checkEmbedding() ComponentHealth {
	if s.artifacts == nil || s.artifacts.Current() == nil {
		return ComponentHealth{Status: "degraded", Message: "no model set loaded"}
	}

	ms := s.artifacts.Current()
	want := ms.KMeans.Width()
	switch {
	case ms.PCA != nil && ms.PCA.OutputWidth() == want:
		return ComponentHealth{Status: "healthy", Message: "projection"}
	case ms.Latent != nil && ms.Latent.OutputWidth() == want:
		return ComponentHealth{Status: "healthy", Message: "latent extractor"}
	case ms.Schema.Width() == want:
		return ComponentHealth{Status: "healthy", Message: "passthrough"}
	default:
		return ComponentHealth{
			Status:  "degraded",
			Message: fmt.Sprintf("no embedding strategy reaches width %d", want),
		}
	}
}

// checkGenerative reports whether roadmap generation has a live client.
func (s *Server) checkGenerative() ComponentHealth {
	if s.services == nil || s.services.Roadmap == nil || !s.services.Roadmap.Generative() {
		return ComponentHealth{
			Status:  "degraded",
			Message: "generative client not configured, roadmaps use static fallback",
		}
	}
	return ComponentHealth{Status: "healthy"}
}
