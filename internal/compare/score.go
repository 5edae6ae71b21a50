package compare

import (
	"math"
	"sort"

	"github.com/careerlens/careerlens-server/internal/domain"
	domainerrors "github.com/careerlens/careerlens-server/internal/errors"
)

// Score evaluates the aligned tables and produces the comparison report.
// Labels match when their normalized forms are equal; the report shows
// labels in their original form. Accuracy is a percentage rounded to two
// decimals, and zero aligned pairs yield zero accuracy rather than an
// error.
func Score(res *Result) (*domain.ComparisonReport, error) {
	merged := res.Merged

	predIdx, ok := merged.ColumnIndex(res.PredColumn)
	if !ok {
		return nil, domainerrors.StageErrorf(domainerrors.StageScore, "predicted column %q missing from aligned table", res.PredColumn)
	}
	truthIdx, ok := merged.ColumnIndex(res.TruthColumn)
	if !ok {
		return nil, domainerrors.StageErrorf(domainerrors.StageScore, "truth column %q missing from aligned table", res.TruthColumn)
	}

	total := merged.NumRows()
	correct := 0

	// Confusion rows keyed by truth label, predicted tallies keyed by the
	// original predicted label text.
	confusion := make(map[string]map[string]int)
	perLabelCorrect := make(map[string]int)
	truthOrder := []string{}
	labelSet := make(map[string]bool)

	for r := 0; r < total; r++ {
		predLabel := merged.Cell(r, predIdx)
		truthLabel := merged.Cell(r, truthIdx)

		if _, seen := confusion[truthLabel]; !seen {
			confusion[truthLabel] = make(map[string]int)
			truthOrder = append(truthOrder, truthLabel)
		}
		confusion[truthLabel][predLabel]++
		labelSet[truthLabel] = true
		labelSet[predLabel] = true

		if NormalizeLabel(predLabel) == NormalizeLabel(truthLabel) {
			correct++
			perLabelCorrect[truthLabel]++
		}
	}

	accuracy := 0.0
	if total > 0 {
		accuracy = math.Round(float64(correct)/float64(total)*100*100) / 100
	}

	sort.Strings(truthOrder)
	rows := make([]domain.ConfusionRow, 0, len(truthOrder))
	perLabel := make(map[string]float64, len(truthOrder))
	for _, truthLabel := range truthOrder {
		tallies := confusion[truthLabel]
		rowTotal := 0
		for _, n := range tallies {
			rowTotal += n
		}
		rows = append(rows, domain.ConfusionRow{
			TruthLabel: truthLabel,
			Total:      rowTotal,
			Predicted:  tallies,
		})
		perLabel[truthLabel] = math.Round(float64(perLabelCorrect[truthLabel])/float64(rowTotal)*100*100) / 100
	}

	labels := make([]string, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	return &domain.ComparisonReport{
		Accuracy:         accuracy,
		Correct:          correct,
		Total:            total,
		Alignment:        res.Mode,
		KeyColumn:        res.KeyColumn,
		PredictedColumn:  res.PredColumn,
		TruthColumn:      res.TruthColumn,
		UnmatchedPred:    res.UnmatchedPred,
		UnmatchedTruth:   res.UnmatchedTruth,
		Labels:           labels,
		Confusion:        rows,
		PerLabelAccuracy: perLabel,
	}, nil
}
