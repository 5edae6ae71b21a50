package pipeline

import (
	"strconv"

	"github.com/careerlens/careerlens-server/internal/artifact"
	domainerrors "github.com/careerlens/careerlens-server/internal/errors"
	"github.com/careerlens/careerlens-server/internal/table"
)

// Encode builds the raw feature matrix in schema column order from a
// normalized table. Numerical cells that fail to parse are coerced to 0.
// Categorical cells are mapped through the fitted encoding when one
// exists; otherwise the column is encoded ad hoc with first-seen ordinal
// codes, which only preserves meaning when category spelling matches the
// training data exactly.
func (p *Pipeline) Encode(tbl *table.Table, ms *artifact.ModelSet) ([][]float64, error) {
	if tbl.NumRows() == 0 {
		return nil, domainerrors.EmptyInput("input contains no rows")
	}

	schema := ms.Schema
	cols := schema.Columns()
	indices := make([]int, len(cols))
	for i, col := range cols {
		idx, ok := findColumn(tbl, col)
		if !ok {
			return nil, domainerrors.StageErrorf(domainerrors.StageIngest, "feature column %q not found; normalize the input first", col)
		}
		indices[i] = idx
	}

	// Per-column ad hoc code assignment, stable within this batch.
	adhoc := make(map[string]map[string]int)
	next := make(map[string]int)

	X := make([][]float64, tbl.NumRows())
	coerced := make(map[string]int)

	for r := 0; r < tbl.NumRows(); r++ {
		row := make([]float64, len(cols))
		for c, col := range cols {
			raw := tbl.Cell(r, indices[c])
			if schema.IsNumerical(col) {
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					coerced[col]++
					v = 0
				}
				row[c] = v
				continue
			}
			row[c] = float64(p.encodeCategory(ms, col, raw, adhoc, next))
		}
		X[r] = row
	}

	for col, n := range coerced {
		p.log.Warn("Coerced non-numeric cells to zero", "column", col, "cells", n)
	}

	return X, nil
}

func (p *Pipeline) encodeCategory(ms *artifact.ModelSet, col, raw string, adhoc map[string]map[string]int, next map[string]int) int {
	enc, fitted := ms.Encoders[col]
	if fitted {
		if code, ok := enc.Codes[raw]; ok {
			return code
		}
		if enc.UseFallback {
			return enc.Fallback
		}
	}

	codes, ok := adhoc[col]
	if !ok {
		codes = make(map[string]int)
		adhoc[col] = codes
		if fitted {
			next[col] = enc.MaxCode() + 1
		}
		if fitted {
			p.log.Warn("Unseen categories in fitted column, assigning ad hoc codes", "column", col)
		} else {
			p.log.Warn("No fitted encoding for column, encoding ad hoc", "column", col)
		}
	}

	if code, seen := codes[raw]; seen {
		return code
	}
	code := next[col]
	codes[raw] = code
	next[col] = code + 1
	return code
}
