package service

import (
	"context"

	"github.com/careerlens/careerlens-server/internal/compare"
	"github.com/careerlens/careerlens-server/internal/domain"
	"github.com/careerlens/careerlens-server/internal/id"
	"github.com/careerlens/careerlens-server/internal/logger"
	"github.com/careerlens/careerlens-server/internal/table"
)

// ComparisonService evaluates predicted labels against ground truth.
type ComparisonService struct {
	log *logger.Logger
}

// NewComparisonService creates a new comparison service.
func NewComparisonService(log *logger.Logger) *ComparisonService {
	return &ComparisonService{log: log}
}

// Compare aligns the two uploaded tables and scores the predictions.
func (s *ComparisonService) Compare(_ context.Context, pred, truth *table.Table) (*domain.ComparisonReport, error) {
	res, err := compare.Align(pred, truth)
	if err != nil {
		return nil, err
	}

	report, err := compare.Score(res)
	if err != nil {
		return nil, err
	}
	report.ID = id.MustGenerate("rpt")

	s.log.Info("Comparison complete",
		"report", report.ID,
		"alignment", report.Alignment,
		"pairs", report.Total,
		"accuracy", report.Accuracy,
		"unmatched_predicted", report.UnmatchedPred,
		"unmatched_truth", report.UnmatchedTruth,
	)
	return report, nil
}
