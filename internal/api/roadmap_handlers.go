package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/careerlens/careerlens-server/internal/domain"
	domainerrors "github.com/careerlens/careerlens-server/internal/errors"
	"github.com/careerlens/careerlens-server/internal/http/response"
)

func (s *Server) registerRoadmapRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "generateRoadmap",
		Method:      http.MethodPost,
		Path:        "/api/v1/roadmap",
		Summary:     "Generate a career roadmap",
		Description: "Produces roadmap text for a cluster profile, by cluster id or profile name",
		Tags:        []string{"Roadmap"},
	}, s.handleGenerateRoadmap)
}

// RoadmapRequest selects the profile to generate a roadmap for. Exactly
// one of cluster_id or profile_name should be set; cluster_id wins when
// both are present.
type RoadmapRequest struct {
	ClusterID   *int   `json:"cluster_id,omitempty" doc:"Cluster id to generate a roadmap for"`
	ProfileName string `json:"profile_name,omitempty" doc:"Profile name to generate a roadmap for"`
}

// RoadmapInput wraps the request body for Huma.
type RoadmapInput struct {
	Body RoadmapRequest
}

// RoadmapResponse is the generated roadmap payload.
type RoadmapResponse struct {
	Profile domain.ClusterProfile `json:"profile"`
	Roadmap string                `json:"roadmap"`
	Source  string                `json:"source" doc:"Either generated or fallback"`
}

// RoadmapOutput wraps the response for Huma.
type RoadmapOutput struct {
	Body RoadmapResponse
}

func (s *Server) handleGenerateRoadmap(ctx context.Context, input *RoadmapInput) (*RoadmapOutput, error) {
	if input.Body.ClusterID == nil && strings.TrimSpace(input.Body.ProfileName) == "" {
		return nil, domainerrors.Validation("either cluster_id or profile_name is required")
	}

	res, err := s.services.Roadmap.Generate(ctx, input.Body.ClusterID, input.Body.ProfileName)
	if err != nil {
		return nil, err
	}

	return &RoadmapOutput{
		Body: RoadmapResponse{
			Profile: res.Profile,
			Roadmap: res.Text,
			Source:  res.Source,
		},
	}, nil
}

// roadmapRateLimit guards the roadmap endpoint with a per-client budget;
// every generated roadmap is a paid API call.
func (s *Server) roadmapRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/v1/roadmap") {
			if !s.roadmapLimiter.Allow(clientIP(r)) {
				s.logger.Warn("Rate limit exceeded", "ip", clientIP(r), "path", r.URL.Path)
				response.TooManyRequests(w, "Too many roadmap requests. Please try again later.", s.logger.Logger)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client IP, preferring proxy headers.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return xff[:i]
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if i := strings.LastIndexByte(ip, ':'); i >= 0 {
		return ip[:i]
	}
	return ip
}
