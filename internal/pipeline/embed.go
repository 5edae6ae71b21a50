package pipeline

import (
	"math"

	"github.com/careerlens/careerlens-server/internal/artifact"
	domainerrors "github.com/careerlens/careerlens-server/internal/errors"
)

// Embedding strategy names reported in responses and logs.
const (
	EmbedPCA         = "pca"
	EmbedLatent      = "latent"
	EmbedPassthrough = "passthrough"
)

// Embed maps the scaled feature matrix into the space the clustering
// model was fitted on. Strategies are tried in a fixed order: the
// principal component projection, then the latent extractor, then
// passing the features through unchanged. A strategy that errors is
// logged and skipped. Passthrough only succeeds when the feature width
// already matches the clustering model; otherwise no strategy fits and
// a hard error is returned.
//
// Non-finite values in the chosen embedding are zeroed so a single bad
// cell cannot poison a distance computation.
func (p *Pipeline) Embed(X [][]float64, ms *artifact.ModelSet) ([][]float64, string, error) {
	want := ms.KMeans.Width()

	if ms.PCA != nil {
		if ms.PCA.OutputWidth() != want {
			p.log.Warn("Projection output width does not match clustering model, skipping",
				"projection_width", ms.PCA.OutputWidth(),
				"model_width", want,
			)
		} else if emb, err := ms.PCA.Transform(X); err != nil {
			p.log.Warn("Projection failed, trying next embedding strategy", "error", err)
		} else {
			return sanitize(emb), EmbedPCA, nil
		}
	}

	if ms.Latent != nil {
		if ms.Latent.OutputWidth() != want {
			p.log.Warn("Latent output width does not match clustering model, skipping",
				"latent_width", ms.Latent.OutputWidth(),
				"model_width", want,
			)
		} else if emb, err := ms.Latent.Transform(X); err != nil {
			p.log.Warn("Latent extraction failed, trying next embedding strategy", "error", err)
		} else {
			return sanitize(emb), EmbedLatent, nil
		}
	}

	if len(X) > 0 && len(X[0]) == want {
		return sanitize(X), EmbedPassthrough, nil
	}

	got := 0
	if len(X) > 0 {
		got = len(X[0])
	}
	return nil, "", domainerrors.StageErrorf(domainerrors.StageEmbed,
		"no embedding strategy produces width %d (features have width %d)", want, got)
}

// sanitize zeroes NaN and infinite entries in place and returns the matrix.
func sanitize(X [][]float64) [][]float64 {
	for _, row := range X {
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				row[j] = 0
			}
		}
	}
	return X
}
