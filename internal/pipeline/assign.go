package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/careerlens/careerlens-server/internal/artifact"
	domainerrors "github.com/careerlens/careerlens-server/internal/errors"
	"github.com/careerlens/careerlens-server/internal/table"
)

// minRowsPerChunk keeps small batches on a single goroutine.
const minRowsPerChunk = 256

// Assign maps each embedded row to its nearest centroid. Large batches
// are split across goroutines. A width mismatch between the embedding
// and the clustering model is a hard error naming both widths.
func (p *Pipeline) Assign(ctx context.Context, X [][]float64, ms *artifact.ModelSet) ([]int, error) {
	want := ms.KMeans.Width()
	for i, row := range X {
		if len(row) != want {
			return nil, domainerrors.StageErrorf(domainerrors.StageAssign,
				"embedded row %d has width %d, clustering model expects %d", i, len(row), want)
		}
	}

	out := make([]int, len(X))
	workers := runtime.GOMAXPROCS(0)
	if len(X) < minRowsPerChunk || workers == 1 {
		assigned, err := ms.KMeans.Assign(X)
		if err != nil {
			return nil, domainerrors.StageErrorf(domainerrors.StageAssign, "assignment failed: %v", err)
		}
		return assigned, nil
	}

	chunk := (len(X) + workers - 1) / workers
	g, _ := errgroup.WithContext(ctx)
	for start := 0; start < len(X); start += chunk {
		end := min(start+chunk, len(X))
		g.Go(func() error {
			assigned, err := ms.KMeans.Assign(X[start:end])
			if err != nil {
				return domainerrors.StageErrorf(domainerrors.StageAssign, "assignment failed: %v", err)
			}
			copy(out[start:end], assigned)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Predict runs the full stage chain on a raw table: normalize, encode,
// scale, embed, assign. It returns the cluster assignment per row and
// the embedding strategy that was used.
func (p *Pipeline) Predict(ctx context.Context, tbl *table.Table, ms *artifact.ModelSet) ([]int, string, error) {
	normalized := p.Normalize(tbl, ms.Schema)

	X, err := p.Encode(normalized, ms)
	if err != nil {
		return nil, "", err
	}

	X = p.Scale(X, ms)

	emb, strategy, err := p.Embed(X, ms)
	if err != nil {
		return nil, "", err
	}

	assigned, err := p.Assign(ctx, emb, ms)
	if err != nil {
		return nil, "", err
	}
	return assigned, strategy, nil
}
