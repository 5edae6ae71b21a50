// Package service implements the business operations behind the API:
// cluster prediction, batch evaluation, profile scoring, and roadmap
// generation.
package service

import (
	"context"
	"math"
	"strconv"

	"github.com/careerlens/careerlens-server/internal/artifact"
	"github.com/careerlens/careerlens-server/internal/domain"
	"github.com/careerlens/careerlens-server/internal/logger"
	"github.com/careerlens/careerlens-server/internal/pipeline"
	"github.com/careerlens/careerlens-server/internal/table"
)

// PredictionService assigns student records to career clusters.
type PredictionService struct {
	artifacts *artifact.Store
	pipe      *pipeline.Pipeline
	log       *logger.Logger
}

// NewPredictionService creates a new prediction service.
func NewPredictionService(artifacts *artifact.Store, log *logger.Logger) *PredictionService {
	return &PredictionService{
		artifacts: artifacts,
		pipe:      pipeline.New(log),
		log:       log,
	}
}

// IndividualRecord is one student's submission from the individual
// prediction form.
type IndividualRecord struct {
	CGPA            float64
	TechnicalSkills int
	SoftSkills      int
	Internships     int
	Projects        int
	Hackathons      int
	Certifications  int
	ResearchPapers  int
	Cocurricular    bool
	ECell           bool
	FamilyBusiness  bool
	Leadership      bool
	Gender          string
	Branch          string
	InternshipType  string
}

// IndividualResult is the outcome of an individual prediction.
type IndividualResult struct {
	Prediction domain.Prediction
	Scores     domain.EngineeredScores
	Embedding  string
}

// BatchResult is the outcome of a batch prediction run: the input table
// enriched with prediction columns plus an aggregate summary.
type BatchResult struct {
	Table   *table.Table
	Summary domain.BatchSummary
}

// Columns appended to the batch output table.
const (
	ColPredictedCluster = "Predicted_Cluster"
	ColProfileName      = "Profile_Name"
)

// PredictIndividual derives the student's engineered scores, runs the
// record through the pipeline, and resolves the assigned cluster to its
// profile.
func (s *PredictionService) PredictIndividual(ctx context.Context, rec IndividualRecord) (*IndividualResult, error) {
	ms := s.artifacts.Current()
	scores := deriveScores(rec)

	tbl := recordTable(rec, scores)
	assigned, strategy, err := s.pipe.Predict(ctx, tbl, ms)
	if err != nil {
		return nil, err
	}

	clusterID := assigned[0]
	profile := ms.Profile(clusterID)

	s.log.Info("Individual prediction complete",
		"cluster", clusterID,
		"profile", profile.Name,
		"embedding", strategy,
	)

	return &IndividualResult{
		Prediction: domain.Prediction{
			ClusterID:      clusterID,
			ProfileName:    profile.Name,
			SuggestedRoles: profile.Roles,
			Description:    profile.Description,
		},
		Scores:    scores,
		Embedding: strategy,
	}, nil
}

// PredictBatch runs every row of the uploaded table through the pipeline
// and appends the cluster id and profile name per row.
func (s *PredictionService) PredictBatch(ctx context.Context, tbl *table.Table) (*BatchResult, error) {
	ms := s.artifacts.Current()

	assigned, strategy, err := s.pipe.Predict(ctx, tbl, ms)
	if err != nil {
		return nil, err
	}

	out := tbl.Clone()
	clusters := make([]string, len(assigned))
	names := make([]string, len(assigned))
	distribution := make(map[string]int)
	for i, c := range assigned {
		profile := ms.Profile(c)
		clusters[i] = strconv.Itoa(c)
		names[i] = profile.Name
		distribution[profile.Name]++
	}

	//nolint:errcheck // value counts match the row count by construction
	out.AddColumn(ColPredictedCluster, clusters)
	//nolint:errcheck
	out.AddColumn(ColProfileName, names)

	s.log.Info("Batch prediction complete",
		"rows", out.NumRows(),
		"clusters", len(distribution),
		"embedding", strategy,
	)

	return &BatchResult{
		Table: out,
		Summary: domain.BatchSummary{
			Rows:         out.NumRows(),
			Distribution: distribution,
			Embedding:    strategy,
		},
	}, nil
}

// deriveScores computes the engineered aptitude indicators from the raw
// submission. Caps keep every score in [0, 100].
func deriveScores(rec IndividualRecord) domain.EngineeredScores {
	extracurricular := 8*float64(rec.Hackathons) + 3*float64(rec.Certifications)
	if rec.Cocurricular {
		extracurricular += 50
	}

	creativity := 15*float64(rec.Projects) + 5*float64(rec.Hackathons)
	if rec.ECell {
		creativity += 40
	}

	analytics := 6*rec.CGPA + 10*float64(rec.ResearchPapers) + 8*float64(rec.TechnicalSkills)

	business := 50.0
	if rec.ECell || rec.FamilyBusiness {
		business = 100
	}

	return domain.EngineeredScores{
		Extracurricular:  cap100(extracurricular),
		Creativity:       cap100(creativity),
		Analytics:        cap100(analytics),
		BusinessInterest: business,
		ResearchInterest: cap100(float64(rec.ResearchPapers) * 15),
	}
}

func cap100(v float64) float64 {
	return math.Min(v, 100)
}

// recordTable renders a submission as a one-row table using the canonical
// training column names. Columns the active schema declares but the form
// does not carry are defaulted by the normalizer.
func recordTable(rec IndividualRecord, scores domain.EngineeredScores) *table.Table {
	leadership := "0"
	if rec.Leadership {
		leadership = "100"
	}

	headers := []string{
		"CGPA", "Technical_Skills", "Soft_Skills", "Internships", "Projects",
		"Hackathons", "Certifications", "Research_Papers",
		"Extracurricular_Score", "Creativity_Score", "Analytics_Score",
		"Leadership_Score", "Business_Interest", "Research_Interest",
		"Gender", "Branch", "Internship_Type",
	}
	row := []string{
		formatFloat(rec.CGPA),
		strconv.Itoa(rec.TechnicalSkills * 20),
		strconv.Itoa(rec.SoftSkills * 20),
		strconv.Itoa(rec.Internships),
		strconv.Itoa(rec.Projects),
		strconv.Itoa(rec.Hackathons),
		strconv.Itoa(rec.Certifications),
		strconv.Itoa(rec.ResearchPapers),
		formatFloat(scores.Extracurricular),
		formatFloat(scores.Creativity),
		formatFloat(scores.Analytics),
		leadership,
		formatFloat(scores.BusinessInterest),
		formatFloat(scores.ResearchInterest),
		rec.Gender,
		rec.Branch,
		rec.InternshipType,
	}

	tbl := table.New(headers)
	//nolint:errcheck // row width matches headers by construction
	tbl.AppendRow(row)
	return tbl
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
