package artifact

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerlens/careerlens-server/internal/domain"
	"github.com/careerlens/careerlens-server/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Writer:      io.Discard,
		Environment: "production",
		Level:       slog.LevelError,
	})
}

func writeArtifact(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// minimalSet writes the two required artifacts: a 3-column schema and a
// 2-cluster model fitted on the full schema width.
func minimalSet(t *testing.T, dir string) {
	t.Helper()
	writeArtifact(t, dir, FileSchema, `{"numerical":["CGPA","Projects"],"categorical":["Branch"]}`)
	writeArtifact(t, dir, FileKMeans, `{"centroids":[[0,0,0],[5,5,5]]}`)
}

func TestLoad_Minimal(t *testing.T) {
	dir := t.TempDir()
	minimalSet(t, dir)

	ms, err := Load(dir, testLogger())
	require.NoError(t, err)

	assert.Equal(t, 3, ms.Schema.Width())
	assert.Equal(t, 2, ms.KMeans.K())
	assert.Nil(t, ms.Scaler)
	assert.Nil(t, ms.PCA)
	assert.Nil(t, ms.Latent)
	assert.Empty(t, ms.Encoders)
}

func TestLoad_MissingRequired(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, FileSchema, `{"numerical":["CGPA"],"categorical":[]}`)

	_, err := Load(dir, testLogger())
	assert.Error(t, err)
}

func TestLoad_EmptySchema(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, FileSchema, `{"numerical":[],"categorical":[]}`)
	writeArtifact(t, dir, FileKMeans, `{"centroids":[[0]]}`)

	_, err := Load(dir, testLogger())
	assert.Error(t, err)
}

func TestLoad_FullSet(t *testing.T) {
	dir := t.TempDir()
	minimalSet(t, dir)
	writeArtifact(t, dir, FileEncoders, `{"Branch":{"codes":{"CSE":0,"ECE":1},"fallback":0,"use_fallback":true}}`)
	writeArtifact(t, dir, FileScaler, `{"center":[5,2,0.5],"scale":[2,1,0.5]}`)
	writeArtifact(t, dir, FilePCA, `{"means":[0,0,0],"components":[[1,0,0],[0,1,0],[0,0,1]]}`)
	writeArtifact(t, dir, FileProfiles, `{"0":{"name":"Analytics Achievers","roles":["Data Scientist"]},"1":{"name":"Creative Innovators","roles":["UX Designer"]}}`)

	ms, err := Load(dir, testLogger())
	require.NoError(t, err)

	require.NotNil(t, ms.Scaler)
	require.NotNil(t, ms.PCA)
	assert.Len(t, ms.Encoders, 1)
	assert.Equal(t, "Analytics Achievers", ms.Profile(0).Name)
	assert.Equal(t, "Creative Innovators", ms.Profile(1).Name)
}

func TestLoad_CorruptOptionalDegrades(t *testing.T) {
	dir := t.TempDir()
	minimalSet(t, dir)
	writeArtifact(t, dir, FileScaler, `{not json`)
	writeArtifact(t, dir, FilePCA, `{"means":[0,0],"components":[[1,0,0]]}`)

	ms, err := Load(dir, testLogger())
	require.NoError(t, err)
	assert.Nil(t, ms.Scaler)
	assert.Nil(t, ms.PCA)
}

func TestModelSet_ProfileDefault(t *testing.T) {
	ms := &ModelSet{Profiles: map[int]domain.ClusterProfile{
		0: {Name: "Analytics Achievers"},
	}}
	p := ms.Profile(7)
	assert.Equal(t, "Cluster 7", p.Name)
	assert.Empty(t, p.Roles)
	assert.Empty(t, p.Description)

	assert.Equal(t, "Analytics Achievers", ms.Profile(0).Name)
}

func TestStore_Reload(t *testing.T) {
	dir := t.TempDir()
	minimalSet(t, dir)

	store, err := NewStore(dir, testLogger())
	require.NoError(t, err)
	defer store.Close()

	before := store.Current()
	assert.Equal(t, 2, before.KMeans.K())

	writeArtifact(t, dir, FileKMeans, `{"centroids":[[0,0,0],[5,5,5],[9,9,9]]}`)
	require.NoError(t, store.Reload())

	after := store.Current()
	assert.Equal(t, 3, after.KMeans.K())
	// The earlier snapshot is untouched.
	assert.Equal(t, 2, before.KMeans.K())
}

func TestStore_ReloadFailureKeepsSnapshot(t *testing.T) {
	dir := t.TempDir()
	minimalSet(t, dir)

	store, err := NewStore(dir, testLogger())
	require.NoError(t, err)
	defer store.Close()

	writeArtifact(t, dir, FileKMeans, `broken`)
	assert.Error(t, store.Reload())
	assert.Equal(t, 2, store.Current().KMeans.K())
}

func TestStore_Watch(t *testing.T) {
	dir := t.TempDir()
	minimalSet(t, dir)

	store, err := NewStore(dir, testLogger())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Watch())

	writeArtifact(t, dir, FileKMeans, `{"centroids":[[1,1,1]]}`)

	assert.Eventually(t, func() bool {
		return store.Current().KMeans.K() == 1
	}, 5*time.Second, 50*time.Millisecond)
}
