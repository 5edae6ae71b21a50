package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/careerlens/careerlens-server/internal/service"
)

func (s *Server) registerInsightRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "insightScore",
		Method:      http.MethodPost,
		Path:        "/api/v1/insight/score",
		Summary:     "Compute the academic profile index",
		Description: "Scores a student's academic standing on a 10-point scale with qualitative feedback",
		Tags:        []string{"Insight"},
	}, s.handleInsightScore)
}

// InsightScoreRequest carries the academic profile inputs.
type InsightScoreRequest struct {
	CGPA              float64 `json:"cgpa" validate:"required,gte=0,lte=10" doc:"Cumulative GPA on a 10-point scale"`
	PaidInternships   int     `json:"paid_internships,omitempty" validate:"gte=0" doc:"Number of paid internships"`
	UnpaidInternships int     `json:"unpaid_internships,omitempty" validate:"gte=0" doc:"Number of unpaid internships"`
	ResearchPapers    int     `json:"research_papers,omitempty" validate:"gte=0" doc:"Number of research papers published"`
	Certifications    int     `json:"certifications,omitempty" validate:"gte=0" doc:"Number of certification courses"`
}

// InsightScoreInput wraps the request body for Huma.
type InsightScoreInput struct {
	Body InsightScoreRequest
}

// InsightScoreOutput wraps the response for Huma.
type InsightScoreOutput struct {
	Body service.InsightResult
}

func (s *Server) handleInsightScore(_ context.Context, input *InsightScoreInput) (*InsightScoreOutput, error) {
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}

	result := s.services.Insight.Score(service.InsightRequest{
		CGPA:              input.Body.CGPA,
		PaidInternships:   input.Body.PaidInternships,
		UnpaidInternships: input.Body.UnpaidInternships,
		ResearchPapers:    input.Body.ResearchPapers,
		Certifications:    input.Body.Certifications,
	})

	return &InsightScoreOutput{Body: result}, nil
}
