package pipeline

import "github.com/careerlens/careerlens-server/internal/artifact"

// Scale standardizes the feature matrix with the fitted scaler. When the
// model set carries no scaler, or the scaler width disagrees with the
// matrix, the matrix is returned unscaled and the degradation is logged.
func (p *Pipeline) Scale(X [][]float64, ms *artifact.ModelSet) [][]float64 {
	if ms.Scaler == nil {
		p.log.Warn("No fitted scaler, using unscaled features")
		return X
	}
	if len(X) == 0 {
		return X
	}

	center, scale := ms.Scaler.Center, ms.Scaler.Scale
	if len(center) != len(X[0]) || len(scale) != len(center) {
		p.log.Warn("Scaler width does not match feature matrix, using unscaled features",
			"scaler_width", len(center),
			"matrix_width", len(X[0]),
		)
		return X
	}

	out := make([][]float64, len(X))
	for i, row := range X {
		scaled := make([]float64, len(row))
		for j, v := range row {
			s := scale[j]
			if s == 0 {
				s = 1
			}
			scaled[j] = (v - center[j]) / s
		}
		out[i] = scaled
	}
	return out
}
