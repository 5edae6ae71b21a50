package service

import (
	"math"

	"github.com/careerlens/careerlens-server/internal/logger"
)

// InsightService computes the academic profile index, a 10-point score
// summarizing a student's academic standing.
type InsightService struct {
	log *logger.Logger
}

// NewInsightService creates a new insight service.
func NewInsightService(log *logger.Logger) *InsightService {
	return &InsightService{log: log}
}

// InsightRequest carries the academic profile inputs.
type InsightRequest struct {
	CGPA              float64
	PaidInternships   int
	UnpaidInternships int
	ResearchPapers    int
	Certifications    int
}

// InsightResult is the computed index with a qualitative tier.
type InsightResult struct {
	Score    float64 `json:"score"`
	Tier     string  `json:"tier"`
	Feedback string  `json:"feedback"`
}

// Score tiers.
const (
	TierExcellent = "excellent"
	TierGood      = "good"
	TierAverage   = "average"
	TierWeak      = "needs_improvement"
)

// Score computes the index. Each component is capped so the total stays
// within 10: CGPA contributes up to 2, internships up to 4 with paid
// internships weighted double, research papers up to 2, and
// certifications up to 2.
func (s *InsightService) Score(req InsightRequest) InsightResult {
	score := math.Min(req.CGPA/10*2, 2)
	score += math.Min(float64(req.PaidInternships)*2+float64(req.UnpaidInternships), 4)
	score += math.Min(float64(req.ResearchPapers)*0.5, 2)
	score += math.Min(float64(req.Certifications)*0.1, 2)
	score = math.Round(score*100) / 100

	tier, feedback := tierFor(score)
	return InsightResult{Score: score, Tier: tier, Feedback: feedback}
}

func tierFor(score float64) (string, string) {
	switch {
	case score >= 8.5:
		return TierExcellent, "Excellent profile. You are well positioned for competitive roles and higher studies."
	case score >= 7.0:
		return TierGood, "Good profile. Strengthen one or two areas to stand out in placements."
	case score >= 5.0:
		return TierAverage, "Average profile. Focus on internships and certifications to improve your standing."
	default:
		return TierWeak, "Your profile needs improvement. Start with certifications and an internship this semester."
	}
}
