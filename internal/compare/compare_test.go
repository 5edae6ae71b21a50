package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlens/careerlens-server/internal/domain"
	domainerrors "github.com/careerlens/careerlens-server/internal/errors"
	"github.com/careerlens/careerlens-server/internal/table"
)

func buildTable(t *testing.T, headers []string, rows ...[]string) *table.Table {
	t.Helper()
	tbl := table.New(headers)
	for _, row := range rows {
		require.NoError(t, tbl.AppendRow(row))
	}
	return tbl
}

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Data Scientist", "data scientist"},
		{"  Cluster 3: Data   Scientist ", "data scientist"},
		{"Profile 0 - Creative Innovators", "creative innovators"},
		{"cluster 12", ""},
		{"Cluster 1: Cluster 2: Data Scientist", "data scientist"},
		{"data scientist", "data scientist"},
		{"Clustering Expert", "clustering expert"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLabel(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeLabel_Idempotent(t *testing.T) {
	for _, in := range []string{
		"Cluster 1: Analytics Achievers",
		"Cluster 1: Cluster 2: Data Scientist",
		"Profile 0 - Profile 1 - QA",
		"  MIXED  Case  ",
		"plain",
	} {
		once := NormalizeLabel(in)
		assert.Equal(t, once, NormalizeLabel(once))
	}
}

func TestAlign_KeyJoin(t *testing.T) {
	pred := buildTable(t,
		[]string{"USN", "Predicted_Cluster"},
		[]string{"u1", "A"},
		[]string{"u2", "X"},
		[]string{"u9", "Z"},
	)
	truth := buildTable(t,
		[]string{"usn", "Actual_Cluster"},
		[]string{"U2", "B"},
		[]string{"U1", "X"},
		[]string{"u7", "Q"},
	)

	res, err := Align(pred, truth)
	require.NoError(t, err)

	assert.Equal(t, domain.AlignmentKey, res.Mode)
	assert.Equal(t, "USN", res.KeyColumn)
	assert.Equal(t, 1, res.UnmatchedPred)
	assert.Equal(t, 1, res.UnmatchedTruth)

	// Predicted-table order is preserved; keys match case-insensitively.
	require.Equal(t, 2, res.Merged.NumRows())
	pi, _ := res.Merged.ColumnIndex(res.PredColumn)
	ti, _ := res.Merged.ColumnIndex(res.TruthColumn)
	assert.Equal(t, "A", res.Merged.Cell(0, pi))
	assert.Equal(t, "X", res.Merged.Cell(0, ti))
	assert.Equal(t, "X", res.Merged.Cell(1, pi))
	assert.Equal(t, "B", res.Merged.Cell(1, ti))
}

func TestAlign_CollisionSuffixes(t *testing.T) {
	pred := buildTable(t,
		[]string{"USN", "Cluster"},
		[]string{"u1", "A"},
	)
	truth := buildTable(t,
		[]string{"USN", "Cluster"},
		[]string{"u1", "B"},
	)

	res, err := Align(pred, truth)
	require.NoError(t, err)

	assert.Equal(t, "Cluster_pred", res.PredColumn)
	assert.Equal(t, "Cluster_truth", res.TruthColumn)
	// The key survives once, unsuffixed.
	assert.Equal(t, []string{"USN", "Cluster_pred", "Cluster_truth"}, res.Merged.Headers())
}

func TestAlign_PositionalFallback(t *testing.T) {
	pred := buildTable(t,
		[]string{"Predicted_Cluster"},
		[]string{"A"},
		[]string{"B"},
		[]string{"C"},
	)
	truth := buildTable(t,
		[]string{"Actual_Cluster"},
		[]string{"A"},
		[]string{"X"},
	)

	res, err := Align(pred, truth)
	require.NoError(t, err)

	assert.Equal(t, domain.AlignmentPositional, res.Mode)
	assert.Empty(t, res.KeyColumn)
	assert.Equal(t, 2, res.Merged.NumRows())
	assert.Equal(t, 1, res.UnmatchedPred)
	assert.Equal(t, 0, res.UnmatchedTruth)
}

func TestAlign_CanonicalProfileHeaders(t *testing.T) {
	pred := buildTable(t,
		[]string{"USN", "Profile_Name"},
		[]string{"1", "Data Scientist"},
		[]string{"2", "Web Developer"},
		[]string{"3", "AI Specialist"},
	)
	truth := buildTable(t,
		[]string{"USN", "Actual_Role"},
		[]string{"1", "Data Scientist"},
		[]string{"2", "Web Developer"},
		[]string{"3", "Web Developer"},
	)

	res, err := Align(pred, truth)
	require.NoError(t, err)

	assert.Equal(t, "Profile_Name", res.PredColumn)
	assert.Equal(t, "Actual_Role", res.TruthColumn)

	report, err := Score(res)
	require.NoError(t, err)
	assert.Equal(t, 66.67, report.Accuracy)
	assert.Equal(t, 2, report.Correct)
	assert.Equal(t, 3, report.Total)
}

func TestAlign_PrefersProfileNameOverClusterID(t *testing.T) {
	// The batch prediction output carries both the numeric cluster id and
	// the profile name; the name column must win.
	pred := buildTable(t,
		[]string{"USN", "Predicted_Cluster", "Profile_Name"},
		[]string{"u1", "0", "Data Scientist"},
		[]string{"u2", "1", "Web Developer"},
	)
	truth := buildTable(t,
		[]string{"USN", "Actual_Role"},
		[]string{"u1", "Data Scientist"},
		[]string{"u2", "Web Developer"},
	)

	res, err := Align(pred, truth)
	require.NoError(t, err)
	assert.Equal(t, "Profile_Name", res.PredColumn)

	report, err := Score(res)
	require.NoError(t, err)
	assert.Equal(t, 100.0, report.Accuracy)
}

func TestAlign_TruthLastColumnFallback(t *testing.T) {
	pred := buildTable(t,
		[]string{"USN", "Profile_Name"},
		[]string{"u1", "Data Scientist"},
	)
	truth := buildTable(t,
		[]string{"USN", "Outcome"},
		[]string{"u1", "Data Scientist"},
	)

	res, err := Align(pred, truth)
	require.NoError(t, err)
	assert.Equal(t, "Outcome", res.TruthColumn)

	report, err := Score(res)
	require.NoError(t, err)
	assert.Equal(t, 100.0, report.Accuracy)
}

func TestAlign_UnresolvableLabelColumn(t *testing.T) {
	pred := buildTable(t, []string{"USN", "Something"}, []string{"u1", "x"})
	truth := buildTable(t, []string{"USN", "Actual_Cluster"}, []string{"u1", "y"})

	_, err := Align(pred, truth)
	require.Error(t, err)

	var derr *domainerrors.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domainerrors.StageAlign, derr.Stage)
	assert.Contains(t, derr.Message, "predicted label")
}

func TestScore_AllCorrectWithDecoratedLabels(t *testing.T) {
	pred := buildTable(t,
		[]string{"USN", "Predicted_Cluster"},
		[]string{"u1", "Cluster 2: Data Scientist"},
		[]string{"u2", "Analytics  Achievers"},
	)
	truth := buildTable(t,
		[]string{"USN", "Actual_Cluster"},
		[]string{"u1", "data scientist"},
		[]string{"u2", "Analytics Achievers"},
	)

	res, err := Align(pred, truth)
	require.NoError(t, err)
	report, err := Score(res)
	require.NoError(t, err)

	assert.Equal(t, 100.0, report.Accuracy)
	assert.Equal(t, 2, report.Correct)
	assert.Equal(t, 2, report.Total)
}

func TestScore_TwoThirdsCorrect(t *testing.T) {
	pred := buildTable(t,
		[]string{"Predicted_Cluster"},
		[]string{"A"},
		[]string{"B"},
		[]string{"C"},
	)
	truth := buildTable(t,
		[]string{"Actual_Cluster"},
		[]string{"A"},
		[]string{"B"},
		[]string{"X"},
	)

	res, err := Align(pred, truth)
	require.NoError(t, err)
	report, err := Score(res)
	require.NoError(t, err)

	assert.Equal(t, 66.67, report.Accuracy)
	assert.Equal(t, 2, report.Correct)
	assert.Equal(t, 3, report.Total)
}

func TestScore_ZeroPairs(t *testing.T) {
	pred := buildTable(t, []string{"USN", "Predicted_Cluster"}, []string{"u1", "A"})
	truth := buildTable(t, []string{"USN", "Actual_Cluster"}, []string{"u2", "A"})

	res, err := Align(pred, truth)
	require.NoError(t, err)
	report, err := Score(res)
	require.NoError(t, err)

	assert.Equal(t, 0.0, report.Accuracy)
	assert.Equal(t, 0, report.Total)
	assert.Empty(t, report.Confusion)
}

func TestScore_Confusion(t *testing.T) {
	pred := buildTable(t,
		[]string{"Predicted_Cluster"},
		[]string{"Cluster 0: Data Scientist"},
		[]string{"UX Designer"},
		[]string{"Data Scientist"},
	)
	truth := buildTable(t,
		[]string{"Actual_Cluster"},
		[]string{"Data Scientist"},
		[]string{"Data Scientist"},
		[]string{"UX Designer"},
	)

	res, err := Align(pred, truth)
	require.NoError(t, err)
	report, err := Score(res)
	require.NoError(t, err)

	require.Len(t, report.Confusion, 2)

	ds := report.Confusion[0]
	assert.Equal(t, "Data Scientist", ds.TruthLabel)
	assert.Equal(t, 2, ds.Total)
	// Predicted tallies keep the original label text.
	assert.Equal(t, 1, ds.Predicted["Cluster 0: Data Scientist"])
	assert.Equal(t, 1, ds.Predicted["UX Designer"])

	assert.Equal(t, 50.0, report.PerLabelAccuracy["Data Scientist"])
	assert.Equal(t, 0.0, report.PerLabelAccuracy["UX Designer"])
}
