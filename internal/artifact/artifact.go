// Package artifact loads the trained model set from disk and keeps it
// hot-reloadable. A model set is a directory of JSON files exported by
// the offline training run; readers always see a complete, immutable
// snapshot while reloads swap in a fresh set atomically.
package artifact

import (
	"encoding/json/v2"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/careerlens/careerlens-server/internal/domain"
	domainerrors "github.com/careerlens/careerlens-server/internal/errors"
	"github.com/careerlens/careerlens-server/internal/logger"
	"github.com/careerlens/careerlens-server/internal/model"
)

// Artifact file names within a model set directory.
const (
	FileSchema   = "schema.json"
	FileEncoders = "encoders.json"
	FileScaler   = "scaler.json"
	FilePCA      = "pca.json"
	FileLatent   = "latent.json"
	FileKMeans   = "kmeans.json"
	FileProfiles = "profiles.json"
)

// ModelSet is an immutable snapshot of all trained artifacts. Schema and
// KMeans are required; the rest are optional and their absence degrades
// the pipeline rather than failing it.
type ModelSet struct {
	Schema   domain.FeatureSchema
	Encoders map[string]domain.CategoricalEncoding
	Scaler   *domain.ScalingParameters
	PCA      *model.PCA
	Latent   *model.Latent
	KMeans   *model.KMeans
	Profiles map[int]domain.ClusterProfile
	LoadedAt time.Time
}

// Profile returns the profile for a cluster id. When the id has no
// trained profile a synthesized default is returned.
func (ms *ModelSet) Profile(id int) domain.ClusterProfile {
	if p, ok := ms.Profiles[id]; ok {
		return p
	}
	return domain.ClusterProfile{Name: fmt.Sprintf("Cluster %d", id)}
}

// Load reads a model set from dir. Missing or unreadable required
// artifacts fail the load; optional artifacts that are absent or
// corrupted are dropped with a warning so the pipeline can degrade.
func Load(dir string, log *logger.Logger) (*ModelSet, error) {
	ms := &ModelSet{LoadedAt: time.Now()}

	if err := readJSON(filepath.Join(dir, FileSchema), &ms.Schema); err != nil {
		return nil, domainerrors.StageErrorf(domainerrors.StageArtifact, "failed to load %s: %v", FileSchema, err)
	}
	if ms.Schema.Width() == 0 {
		return nil, domainerrors.StageError(domainerrors.StageArtifact, "feature schema declares no columns")
	}

	var km model.KMeans
	if err := readJSON(filepath.Join(dir, FileKMeans), &km); err != nil {
		return nil, domainerrors.StageErrorf(domainerrors.StageArtifact, "failed to load %s: %v", FileKMeans, err)
	}
	if err := km.Validate(); err != nil {
		return nil, domainerrors.StageErrorf(domainerrors.StageArtifact, "invalid clustering model: %v", err)
	}
	ms.KMeans = &km

	ms.Encoders = make(map[string]domain.CategoricalEncoding)
	if err := readOptionalJSON(filepath.Join(dir, FileEncoders), &ms.Encoders, log); err != nil {
		ms.Encoders = make(map[string]domain.CategoricalEncoding)
	}

	var scaler domain.ScalingParameters
	if err := readOptionalJSON(filepath.Join(dir, FileScaler), &scaler, log); err == nil && len(scaler.Center) > 0 {
		ms.Scaler = &scaler
	}

	var pca model.PCA
	if err := readOptionalJSON(filepath.Join(dir, FilePCA), &pca, log); err == nil && len(pca.Components) > 0 {
		if verr := pca.Validate(); verr != nil {
			log.Warn("Dropping invalid projection artifact", "file", FilePCA, "error", verr)
		} else {
			ms.PCA = &pca
		}
	}

	var latent model.Latent
	if err := readOptionalJSON(filepath.Join(dir, FileLatent), &latent, log); err == nil && len(latent.Weights) > 0 {
		if verr := latent.Validate(); verr != nil {
			log.Warn("Dropping invalid latent artifact", "file", FileLatent, "error", verr)
		} else {
			ms.Latent = &latent
		}
	}

	ms.Profiles = make(map[int]domain.ClusterProfile)
	raw := make(map[string]domain.ClusterProfile)
	if err := readOptionalJSON(filepath.Join(dir, FileProfiles), &raw, log); err == nil {
		for key, p := range raw {
			id, convErr := strconv.Atoi(key)
			if convErr != nil {
				log.Warn("Skipping profile with non-numeric cluster id", "key", key)
				continue
			}
			ms.Profiles[id] = p
		}
	}

	return ms, nil
}

// readJSON decodes a required artifact file.
func readJSON(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.UnmarshalRead(f, v)
}

// readOptionalJSON decodes an optional artifact file. Absence is silent;
// a corrupted file is logged and reported so the caller can drop it.
func readOptionalJSON(path string, v any, log *logger.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return err
		}
		log.Warn("Failed to open optional artifact", "path", path, "error", err)
		return err
	}
	defer f.Close()

	if err := json.UnmarshalRead(f, v); err != nil {
		log.Warn("Failed to decode optional artifact", "path", path, "error", err)
		return err
	}
	return nil
}
