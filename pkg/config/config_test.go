package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ARTIFACT_SOURCE", "")
	t.Setenv("ARTIFACT_DIR", "")
	t.Setenv("SEGMENT_LABELS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceFile, cfg.Artifacts.Source)
	assert.Equal(t, "models", cfg.Artifacts.Dir)
	assert.Equal(t, "similarity.json", cfg.Artifacts.SimilarityName)
	assert.Equal(t, "rfm_scaler.json", cfg.Artifacts.ScalerName)
	assert.Equal(t, "kmeans_rfm_model.json", cfg.Artifacts.ClusterName)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Empty(t, cfg.Segment.Labels)
}

func TestLoadRejectsUnknownSource(t *testing.T) {
	t.Setenv("ARTIFACT_SOURCE", "ftp")

	_, err := Load()
	assert.ErrorContains(t, err, "unknown artifact source")
}

func TestLoadPostgresNeedsPassword(t *testing.T) {
	t.Setenv("ARTIFACT_SOURCE", SourcePostgres)
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	assert.ErrorContains(t, err, "missing database password")
}

func TestLoadMinioNeedsBucket(t *testing.T) {
	t.Setenv("ARTIFACT_SOURCE", SourceMinio)
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_BUCKET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "missing minio endpoint or bucket")
}

func TestParseLabels(t *testing.T) {
	labels, err := ParseLabels("0=Champions; 3 = Hibernating ;")
	require.NoError(t, err)
	assert.Equal(t, map[int]string{0: "Champions", 3: "Hibernating"}, labels)

	_, err = ParseLabels("x=Champions")
	assert.Error(t, err)

	_, err = ParseLabels("1=")
	assert.Error(t, err)

	_, err = ParseLabels("nolabel")
	assert.Error(t, err)
}
