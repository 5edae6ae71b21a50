package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlens/careerlens-server/internal/artifact"
	"github.com/careerlens/careerlens-server/internal/logger"
	"github.com/careerlens/careerlens-server/internal/table"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Writer:      io.Discard,
		Environment: "production",
		Level:       slog.LevelError,
	})
}

// testStore builds a model set clustering on (CGPA, Projects, Branch)
// with two clusters and named profiles.
func testStore(t *testing.T) *artifact.Store {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		artifact.FileSchema:   `{"numerical":["CGPA","Projects"],"categorical":["Branch"]}`,
		artifact.FileKMeans:   `{"centroids":[[2,1,0],[9,8,1]]}`,
		artifact.FileEncoders: `{"Branch":{"codes":{"CSE":0,"ECE":1},"fallback":0,"use_fallback":true}}`,
		artifact.FileProfiles: `{"0":{"name":"Steady Builders","roles":["QA Engineer"]},"1":{"name":"Analytics Achievers","roles":["Data Scientist"],"description":"Strong quantitative background."}}`,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	store, err := artifact.NewStore(dir, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestDeriveScores(t *testing.T) {
	scores := deriveScores(IndividualRecord{
		CGPA:            8.0,
		TechnicalSkills: 4,
		Projects:        3,
		Hackathons:      2,
		Certifications:  5,
		ResearchPapers:  1,
		Cocurricular:    true,
		ECell:           true,
	})

	// 50 + 8*2 + 3*5 = 81
	assert.InDelta(t, 81, scores.Extracurricular, 1e-9)
	// 15*3 + 40 + 5*2 = 95
	assert.InDelta(t, 95, scores.Creativity, 1e-9)
	// 6*8 + 10*1 + 8*4 = 90
	assert.InDelta(t, 90, scores.Analytics, 1e-9)
	assert.InDelta(t, 100, scores.BusinessInterest, 1e-9)
	assert.InDelta(t, 15, scores.ResearchInterest, 1e-9)
}

func TestDeriveScores_FamilyBusiness(t *testing.T) {
	// Either entrepreneurship signal alone marks full business interest.
	scores := deriveScores(IndividualRecord{CGPA: 7, FamilyBusiness: true})
	assert.Equal(t, 100.0, scores.BusinessInterest)

	scores = deriveScores(IndividualRecord{CGPA: 7})
	assert.Equal(t, 50.0, scores.BusinessInterest)
}

func TestDeriveScores_Caps(t *testing.T) {
	scores := deriveScores(IndividualRecord{
		CGPA:           10,
		Projects:       20,
		Hackathons:     20,
		Certifications: 50,
		ResearchPapers: 30,
		Cocurricular:   true,
	})

	assert.Equal(t, 100.0, scores.Extracurricular)
	assert.Equal(t, 100.0, scores.Creativity)
	assert.Equal(t, 100.0, scores.Analytics)
	assert.Equal(t, 100.0, scores.ResearchInterest)
	assert.Equal(t, 50.0, scores.BusinessInterest)
}

func TestPredictIndividual(t *testing.T) {
	svc := NewPredictionService(testStore(t), testLogger())

	res, err := svc.PredictIndividual(context.Background(), IndividualRecord{
		CGPA:     9.2,
		Projects: 8,
		Branch:   "ECE",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Prediction.ClusterID)
	assert.Equal(t, "Analytics Achievers", res.Prediction.ProfileName)
	assert.Equal(t, []string{"Data Scientist"}, res.Prediction.SuggestedRoles)
	assert.Equal(t, "passthrough", res.Embedding)
}

func TestPredictBatch(t *testing.T) {
	svc := NewPredictionService(testStore(t), testLogger())

	tbl := table.New([]string{"USN", "CGPA", "Projects", "Branch"})
	require.NoError(t, tbl.AppendRow([]string{"u1", "9.0", "8", "ECE"}))
	require.NoError(t, tbl.AppendRow([]string{"u2", "2.0", "1", "CSE"}))
	require.NoError(t, tbl.AppendRow([]string{"u3", "8.5", "9", "ECE"}))

	res, err := svc.PredictBatch(context.Background(), tbl)
	require.NoError(t, err)

	clusters, ok := res.Table.Column(ColPredictedCluster)
	require.True(t, ok)
	assert.Equal(t, []string{"1", "0", "1"}, clusters)

	names, ok := res.Table.Column(ColProfileName)
	require.True(t, ok)
	assert.Equal(t, "Analytics Achievers", names[0])
	assert.Equal(t, "Steady Builders", names[1])

	assert.Equal(t, 3, res.Summary.Rows)
	assert.Equal(t, map[string]int{"Analytics Achievers": 2, "Steady Builders": 1}, res.Summary.Distribution)
	// The uploaded table is not mutated.
	assert.Equal(t, 4, tbl.NumCols())
}

func TestCompare(t *testing.T) {
	svc := NewComparisonService(testLogger())

	pred := table.New([]string{"USN", "Predicted_Cluster"})
	require.NoError(t, pred.AppendRow([]string{"u1", "Cluster 1: Analytics Achievers"}))
	require.NoError(t, pred.AppendRow([]string{"u2", "Steady Builders"}))

	truth := table.New([]string{"USN", "Actual_Cluster"})
	require.NoError(t, truth.AppendRow([]string{"u1", "Analytics Achievers"}))
	require.NoError(t, truth.AppendRow([]string{"u2", "Analytics Achievers"}))

	report, err := svc.Compare(context.Background(), pred, truth)
	require.NoError(t, err)

	assert.Equal(t, 50.0, report.Accuracy)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "key", report.Alignment)
}

func TestInsightScore(t *testing.T) {
	svc := NewInsightService(testLogger())

	tests := []struct {
		name  string
		req   InsightRequest
		score float64
		tier  string
	}{
		{
			name:  "maxed profile",
			req:   InsightRequest{CGPA: 10, PaidInternships: 2, ResearchPapers: 4, Certifications: 20},
			score: 10,
			tier:  TierExcellent,
		},
		{
			name:  "solid profile",
			req:   InsightRequest{CGPA: 8, PaidInternships: 1, UnpaidInternships: 1, ResearchPapers: 2, Certifications: 10},
			score: 6.6,
			tier:  TierAverage,
		},
		{
			name:  "average profile",
			req:   InsightRequest{CGPA: 7.5, UnpaidInternships: 2, ResearchPapers: 2, Certifications: 5},
			score: 5,
			tier:  TierAverage,
		},
		{
			name:  "weak profile",
			req:   InsightRequest{CGPA: 6},
			score: 1.2,
			tier:  TierWeak,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Score(tt.req)
			assert.InDelta(t, tt.score, got.Score, 1e-9)
			assert.Equal(t, tt.tier, got.Tier)
			assert.NotEmpty(t, got.Feedback)
		})
	}
}

type stubGenerator struct {
	text string
	err  error
}

func (g *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	return g.text, g.err
}

func TestRoadmap_Generated(t *testing.T) {
	svc := NewRoadmapService(testStore(t), &stubGenerator{text: "do great things"}, testLogger())

	one := 1
	res, err := svc.Generate(context.Background(), &one, "")
	require.NoError(t, err)

	assert.Equal(t, RoadmapSourceGenerated, res.Source)
	assert.Equal(t, "do great things", res.Text)
	assert.Equal(t, "Analytics Achievers", res.Profile.Name)
}

func TestRoadmap_GeneratorFailureFallsBack(t *testing.T) {
	svc := NewRoadmapService(testStore(t), &stubGenerator{err: errors.New("quota exceeded")}, testLogger())

	zero := 0
	res, err := svc.Generate(context.Background(), &zero, "")
	require.NoError(t, err)

	assert.Equal(t, RoadmapSourceFallback, res.Source)
	assert.Contains(t, res.Text, "Steady Builders")
}

func TestRoadmap_NoGenerator(t *testing.T) {
	svc := NewRoadmapService(testStore(t), nil, testLogger())
	assert.False(t, svc.Generative())

	res, err := svc.Generate(context.Background(), nil, "analytics achievers")
	require.NoError(t, err)

	assert.Equal(t, RoadmapSourceFallback, res.Source)
	// Name resolution is case-insensitive against trained profiles.
	assert.Equal(t, "Analytics Achievers", res.Profile.Name)
}

func TestRoadmap_UnknownProfileSynthesized(t *testing.T) {
	svc := NewRoadmapService(testStore(t), nil, testLogger())

	res, err := svc.Generate(context.Background(), nil, "  Quantum Wrangler ")
	require.NoError(t, err)

	assert.Equal(t, "Quantum Wrangler", res.Profile.Name)
	assert.Contains(t, res.Text, "Quantum Wrangler")
}
