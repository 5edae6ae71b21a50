package model

import "fmt"

// PCA is a fitted principal component projection. Components is stored
// row-major with one component per row; Means is the per-feature mean
// subtracted before projection.
type PCA struct {
	Means      []float64   `json:"means"`
	Components [][]float64 `json:"components"`
}

// InputWidth returns the feature width the projection expects.
func (p *PCA) InputWidth() int {
	return len(p.Means)
}

// OutputWidth returns the number of components.
func (p *PCA) OutputWidth() int {
	return len(p.Components)
}

// Validate checks the component matrix agrees with the mean vector.
func (p *PCA) Validate() error {
	if len(p.Components) == 0 {
		return fmt.Errorf("pca has no components")
	}
	for i, c := range p.Components {
		if len(c) != len(p.Means) {
			return fmt.Errorf("pca component %d has width %d, means have width %d", i, len(c), len(p.Means))
		}
	}
	return nil
}

// Transform centers each row by the fitted means and projects it onto
// the component matrix.
func (p *PCA) Transform(X [][]float64) ([][]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	out := make([][]float64, len(X))
	centered := make([]float64, len(p.Means))
	for i, row := range X {
		if len(row) != len(p.Means) {
			return nil, fmt.Errorf("row %d has width %d, pca expects %d", i, len(row), len(p.Means))
		}
		for j, v := range row {
			centered[j] = v - p.Means[j]
		}
		projected := make([]float64, len(p.Components))
		for c, comp := range p.Components {
			var dot float64
			for j, v := range centered {
				dot += v * comp[j]
			}
			projected[c] = dot
		}
		out[i] = projected
	}
	return out, nil
}
