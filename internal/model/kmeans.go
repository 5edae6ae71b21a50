// Package model holds the trained-artifact kernels: centroid assignment,
// principal component projection, and the latent feature extractor. The
// kernels only apply fitted parameters; training happens offline.
package model

import (
	"fmt"
	"math"
)

// KMeans is a fitted centroid model. DType records the float width the
// model was trained with; inputs are cast to that width before distance
// computation so assignments match the training-time arithmetic.
type KMeans struct {
	Centroids [][]float64 `json:"centroids"`
	DType     string      `json:"dtype,omitempty"`
}

// K returns the number of clusters.
func (m *KMeans) K() int {
	return len(m.Centroids)
}

// Width returns the feature width the model was fitted with, or 0 for an
// empty model.
func (m *KMeans) Width() int {
	if len(m.Centroids) == 0 {
		return 0
	}
	return len(m.Centroids[0])
}

// Validate checks the centroid matrix is non-empty and rectangular.
func (m *KMeans) Validate() error {
	if len(m.Centroids) == 0 {
		return fmt.Errorf("kmeans model has no centroids")
	}
	w := len(m.Centroids[0])
	if w == 0 {
		return fmt.Errorf("kmeans centroids have zero width")
	}
	for i, c := range m.Centroids {
		if len(c) != w {
			return fmt.Errorf("kmeans centroid %d has width %d, expected %d", i, len(c), w)
		}
	}
	return nil
}

// Assign returns the index of the nearest centroid for each row.
// Every row must match the fitted width.
func (m *KMeans) Assign(X [][]float64) ([]int, error) {
	w := m.Width()
	if w == 0 {
		return nil, fmt.Errorf("kmeans model has no centroids")
	}

	out := make([]int, len(X))
	for i, row := range X {
		if len(row) != w {
			return nil, fmt.Errorf("row %d has width %d, model expects %d", i, len(row), w)
		}
		out[i] = m.nearest(row)
	}
	return out, nil
}

func (m *KMeans) nearest(row []float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range m.Centroids {
		var d float64
		for j, v := range row {
			diff := m.cast(v) - m.cast(centroid[j])
			d += diff * diff
		}
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// cast narrows a value to the trained float width.
func (m *KMeans) cast(v float64) float64 {
	if m.DType == "float32" {
		return float64(float32(v))
	}
	return v
}
