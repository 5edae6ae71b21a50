package compare

import (
	"strings"

	"github.com/careerlens/careerlens-server/internal/domain"
	domainerrors "github.com/careerlens/careerlens-server/internal/errors"
	"github.com/careerlens/careerlens-server/internal/table"
)

// keyCandidates are natural-key column names tried in order when pairing
// the two tables. A candidate must appear in both tables to be used.
var keyCandidates = []string{"usn", "student_id", "studentid", "roll_no", "id"}

// profileNameColumn is the preferred label column on both sides; batch
// prediction output writes it, so it wins over any substring match.
const profileNameColumn = "profile name"

// predSynonyms and truthKeywords drive substring matching when neither
// side carries a profile-name column.
var (
	predSynonyms  = []string{"predicted", "prediction", "profile", "cluster", "label"}
	truthKeywords = []string{"status", "career", "actual", "verified", "role", "domain"}
)

// Suffixes appended to colliding column names, tagged by source side.
const (
	suffixPred  = "_pred"
	suffixTruth = "_truth"
)

// Result is an aligned pair of tables merged into one, with the label
// columns resolved to their post-merge names.
type Result struct {
	Merged         *table.Table
	Mode           string
	KeyColumn      string
	PredColumn     string
	TruthColumn    string
	UnmatchedPred  int
	UnmatchedTruth int
}

// Align pairs rows of the predicted and truth tables. When both tables
// share a natural-key column the rows are inner-joined on the normalized
// key, preserving predicted-table order; otherwise rows are paired
// positionally and the longer table is truncated. Colliding column names
// are tagged with a source-side suffix so both survive the merge.
func Align(pred, truth *table.Table) (*Result, error) {
	predName, err := resolvePredColumn(pred)
	if err != nil {
		return nil, err
	}
	truthName, err := resolveTruthColumn(truth)
	if err != nil {
		return nil, err
	}

	if keyName, pk, tk, ok := findKey(pred, truth); ok {
		return joinOnKey(pred, truth, keyName, pk, tk, predName, truthName)
	}
	return joinPositional(pred, truth, predName, truthName)
}

// resolvePredColumn finds the predicted-side label column: an exact
// profile-name header wins, then the first header containing a known
// synonym.
func resolvePredColumn(tbl *table.Table) (string, error) {
	if h, ok := exactHeader(tbl, profileNameColumn); ok {
		return h, nil
	}
	if h, ok := containsHeader(tbl, predSynonyms); ok {
		return h, nil
	}
	return "", domainerrors.StageErrorf(domainerrors.StageAlign,
		"could not resolve the predicted label column; no header matches %q or contains any of %s",
		profileNameColumn, strings.Join(predSynonyms, ", "))
}

// resolveTruthColumn finds the truth-side label column: an exact
// profile-name header, then the first header containing a domain
// keyword, then the last column as an absolute last resort.
func resolveTruthColumn(tbl *table.Table) (string, error) {
	if h, ok := exactHeader(tbl, profileNameColumn); ok {
		return h, nil
	}
	if h, ok := containsHeader(tbl, truthKeywords); ok {
		return h, nil
	}
	headers := tbl.Headers()
	if len(headers) > 0 {
		return headers[len(headers)-1], nil
	}
	return "", domainerrors.StageErrorf(domainerrors.StageAlign,
		"could not resolve the truth label column; the table has no columns")
}

// exactHeader returns the header whose normalized name equals want.
func exactHeader(tbl *table.Table, want string) (string, bool) {
	for _, h := range tbl.Headers() {
		if normalizeHeader(h) == want {
			return h, true
		}
	}
	return "", false
}

// containsHeader returns the first header, in table order, whose
// normalized name contains any of the given words.
func containsHeader(tbl *table.Table, words []string) (string, bool) {
	for _, h := range tbl.Headers() {
		name := normalizeHeader(h)
		for _, w := range words {
			if strings.Contains(name, w) {
				return h, true
			}
		}
	}
	return "", false
}

// normalizeHeader folds a column name for comparison: lowercase, with
// underscores and hyphens treated as spaces and runs collapsed.
func normalizeHeader(h string) string {
	s := strings.ToLower(strings.TrimSpace(h))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.Join(strings.Fields(s), " ")
}

// findKey returns the first natural-key candidate present in both tables.
func findKey(pred, truth *table.Table) (string, int, int, bool) {
	for _, c := range keyCandidates {
		pk, pok := pred.ColumnIndexFold(c)
		tk, tok := truth.ColumnIndexFold(c)
		if pok && tok {
			return pred.Headers()[pk], pk, tk, true
		}
	}
	return "", 0, 0, false
}

// normalizeKey canonicalizes a join key value.
func normalizeKey(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

func joinOnKey(pred, truth *table.Table, keyName string, pk, tk int, predName, truthName string) (*Result, error) {
	// First unused truth row per key; duplicate keys match in file order.
	truthRows := make(map[string][]int)
	for r := 0; r < truth.NumRows(); r++ {
		k := normalizeKey(truth.Cell(r, tk))
		truthRows[k] = append(truthRows[k], r)
	}

	var predRows, pairedTruth []int
	usedTruth := 0
	for r := 0; r < pred.NumRows(); r++ {
		k := normalizeKey(pred.Cell(r, pk))
		rows := truthRows[k]
		if len(rows) == 0 {
			continue
		}
		predRows = append(predRows, r)
		pairedTruth = append(pairedTruth, rows[0])
		truthRows[k] = rows[1:]
		usedTruth++
	}

	merged, predCol, truthCol := mergeColumns(pred, truth, predRows, pairedTruth, keyName, tk, predName, truthName)
	return &Result{
		Merged:         merged,
		Mode:           domain.AlignmentKey,
		KeyColumn:      keyName,
		PredColumn:     predCol,
		TruthColumn:    truthCol,
		UnmatchedPred:  pred.NumRows() - len(predRows),
		UnmatchedTruth: truth.NumRows() - usedTruth,
	}, nil
}

func joinPositional(pred, truth *table.Table, predName, truthName string) (*Result, error) {
	n := min(pred.NumRows(), truth.NumRows())
	predRows := make([]int, n)
	truthRows := make([]int, n)
	for i := 0; i < n; i++ {
		predRows[i] = i
		truthRows[i] = i
	}

	merged, predCol, truthCol := mergeColumns(pred, truth, predRows, truthRows, "", -1, predName, truthName)
	return &Result{
		Merged:         merged,
		Mode:           domain.AlignmentPositional,
		PredColumn:     predCol,
		TruthColumn:    truthCol,
		UnmatchedPred:  pred.NumRows() - n,
		UnmatchedTruth: truth.NumRows() - n,
	}, nil
}

// mergeColumns builds the merged table from the paired row indices. The
// key column is kept once, from the predicted side; every other name
// that appears on both sides is suffixed by source. It returns the
// merged table and the post-merge names of the two label columns.
func mergeColumns(pred, truth *table.Table, predRows, truthRows []int, keyName string, truthKeyIdx int, predName, truthName string) (*table.Table, string, string) {
	truthSet := make(map[string]bool)
	for i, h := range truth.Headers() {
		if i == truthKeyIdx {
			continue
		}
		truthSet[foldName(h)] = true
	}
	predSet := make(map[string]bool)
	for _, h := range pred.Headers() {
		predSet[foldName(h)] = true
	}
	keyFold := foldName(keyName)

	var headers []string
	predCol, truthCol := predName, truthName

	for _, h := range pred.Headers() {
		name := h
		if foldName(h) != keyFold && truthSet[foldName(h)] {
			name = h + suffixPred
		}
		if h == predName {
			predCol = name
		}
		headers = append(headers, name)
	}
	for i, h := range truth.Headers() {
		if i == truthKeyIdx {
			continue
		}
		name := h
		if predSet[foldName(h)] {
			name = h + suffixTruth
		}
		if h == truthName {
			truthCol = name
		}
		headers = append(headers, name)
	}

	merged := table.New(headers)
	for i := range predRows {
		row := make([]string, 0, len(headers))
		row = append(row, pred.Row(predRows[i])...)
		for c, v := range truth.Row(truthRows[i]) {
			if c == truthKeyIdx {
				continue
			}
			row = append(row, v)
		}
		//nolint:errcheck // row width matches headers by construction
		merged.AppendRow(row)
	}
	return merged, predCol, truthCol
}

func foldName(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}
