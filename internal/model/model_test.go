package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKMeans_Assign(t *testing.T) {
	m := &KMeans{Centroids: [][]float64{
		{0, 0},
		{10, 10},
	}}

	got, err := m.Assign([][]float64{
		{1, 1},
		{9, 8},
		{5, 5.1},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 1}, got)
}

func TestKMeans_Assign_WidthMismatch(t *testing.T) {
	m := &KMeans{Centroids: [][]float64{{0, 0, 0}}}

	_, err := m.Assign([][]float64{{1, 2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width 2")
	assert.Contains(t, err.Error(), "expects 3")
}

func TestKMeans_Validate(t *testing.T) {
	assert.Error(t, (&KMeans{}).Validate())
	assert.Error(t, (&KMeans{Centroids: [][]float64{{1, 2}, {1}}}).Validate())
	assert.NoError(t, (&KMeans{Centroids: [][]float64{{1, 2}, {3, 4}}}).Validate())
}

func TestKMeans_Float32Cast(t *testing.T) {
	// The cast must be applied to inputs and centroids alike so that a
	// value representable only in float64 does not flip an assignment.
	m := &KMeans{
		Centroids: [][]float64{{1.0000000001}, {2}},
		DType:     "float32",
	}

	got, err := m.Assign([][]float64{{1.0000000002}})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, got)
}

func TestPCA_Transform(t *testing.T) {
	p := &PCA{
		Means: []float64{1, 1},
		Components: [][]float64{
			{1, 0},
			{0, 1},
		},
	}

	got, err := p.Transform([][]float64{{3, 2}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 2.0, got[0][0], 1e-9)
	assert.InDelta(t, 1.0, got[0][1], 1e-9)
}

func TestPCA_Transform_WidthMismatch(t *testing.T) {
	p := &PCA{Means: []float64{0, 0}, Components: [][]float64{{1, 0}}}

	_, err := p.Transform([][]float64{{1, 2, 3}})
	assert.Error(t, err)
}

func TestLatent_Transform(t *testing.T) {
	l := &Latent{
		Weights: [][]float64{
			{1, -1},
			{-1, -1},
		},
		Bias: []float64{0, 0},
	}

	got, err := l.Transform([][]float64{{3, 1}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 2.0, got[0][0], 1e-9)
	// ReLU clamps the negative activation.
	assert.InDelta(t, 0.0, got[0][1], 1e-9)
}

func TestLatent_Validate(t *testing.T) {
	bad := &Latent{Weights: [][]float64{{1, 2}}, Bias: []float64{1, 2}}
	assert.Error(t, bad.Validate())
}
