// Package pipeline implements the preprocessing and cluster assignment
// stages that turn raw student records into cluster predictions. Stages
// are pure with respect to a model set snapshot; degraded artifacts soften
// individual stages instead of failing the run.
package pipeline

import (
	"strings"

	"github.com/careerlens/careerlens-server/internal/domain"
	"github.com/careerlens/careerlens-server/internal/logger"
	"github.com/careerlens/careerlens-server/internal/table"
)

// Defaults substituted for null cells during normalization.
const (
	defaultNumerical   = "0"
	defaultCategorical = "Unknown"
)

// Pipeline runs preprocessing stages against a model set snapshot.
type Pipeline struct {
	log *logger.Logger
}

// New creates a pipeline.
func New(log *logger.Logger) *Pipeline {
	return &Pipeline{log: log}
}

// isNull reports whether a raw cell should be treated as missing.
func isNull(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "nan", "null", "none", "na", "n/a":
		return true
	}
	return false
}

// Normalize returns a copy of tbl in which every schema column exists
// and every null cell carries the type-appropriate default: 0 for
// numerical columns, "Unknown" for categorical ones. Column matching is
// by trimmed exact-case name. Normalizing an already normalized table
// is a no-op.
//
// Columns outside the schema are kept so batch output can echo the
// caller's table; Encode reads schema columns in schema order, which
// fixes the feature-vector layout regardless of input column order.
func (p *Pipeline) Normalize(tbl *table.Table, schema domain.FeatureSchema) *table.Table {
	out := tbl.Clone()

	for _, col := range schema.Columns() {
		def := defaultCategorical
		if schema.IsNumerical(col) {
			def = defaultNumerical
		}

		idx, ok := findColumn(out, col)
		if !ok {
			values := make([]string, out.NumRows())
			for i := range values {
				values[i] = def
			}
			//nolint:errcheck // value count matches row count by construction
			out.AddColumn(col, values)
			p.log.Warn("Input is missing a feature column, filled with default", "column", col, "default", def)
			continue
		}

		for r := 0; r < out.NumRows(); r++ {
			if isNull(out.Cell(r, idx)) {
				out.SetCell(r, idx, def)
			}
		}
	}

	return out
}

// findColumn matches a schema column against table headers by trimmed
// exact-case comparison.
func findColumn(tbl *table.Table, name string) (int, bool) {
	if i, ok := tbl.ColumnIndex(name); ok {
		return i, true
	}
	for i, h := range tbl.Headers() {
		if strings.TrimSpace(h) == name {
			return i, true
		}
	}
	return 0, false
}
