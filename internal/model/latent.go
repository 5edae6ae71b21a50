package model

import (
	"fmt"
	"math"
)

// Latent is a fitted single-layer feature extractor exported from the
// offline training run. It applies an affine map followed by ReLU to
// produce the latent representation the clustering model was trained on.
type Latent struct {
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// InputWidth returns the feature width the extractor expects.
func (l *Latent) InputWidth() int {
	if len(l.Weights) == 0 {
		return 0
	}
	return len(l.Weights[0])
}

// OutputWidth returns the latent dimension.
func (l *Latent) OutputWidth() int {
	return len(l.Weights)
}

// Validate checks the weight matrix is rectangular and matches the bias.
func (l *Latent) Validate() error {
	if len(l.Weights) == 0 {
		return fmt.Errorf("latent extractor has no weights")
	}
	w := len(l.Weights[0])
	for i, row := range l.Weights {
		if len(row) != w {
			return fmt.Errorf("latent weight row %d has width %d, expected %d", i, len(row), w)
		}
	}
	if len(l.Bias) != len(l.Weights) {
		return fmt.Errorf("latent bias has width %d, weights have %d rows", len(l.Bias), len(l.Weights))
	}
	return nil
}

// Transform maps each row into the latent space.
func (l *Latent) Transform(X [][]float64) ([][]float64, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	in := l.InputWidth()

	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != in {
			return nil, fmt.Errorf("row %d has width %d, extractor expects %d", i, len(row), in)
		}
		z := make([]float64, len(l.Weights))
		for o, weights := range l.Weights {
			var sum float64
			for j, v := range row {
				sum += v * weights[j]
			}
			z[o] = math.Max(0, sum+l.Bias[o])
		}
		out[i] = z
	}
	return out, nil
}
