package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "datasets", cfg.Datasets.Root)
	assert.Equal(t, "output", cfg.Output)
	assert.Equal(t, 3, cfg.Expansion.FeedbackDocuments)
	assert.Equal(t, 10, cfg.Expansion.FeedbackTerms)
	assert.Equal(t, 2, cfg.Expansion.MinDocuments)
	assert.InDelta(t, 0.6, cfg.Expansion.Lambda, 1e-12)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("GOLDEN_TEST_OUTPUT", "/tmp/runs")
	path := filepath.Join(t.TempDir(), "golden.yaml")
	data := `
datasets:
  root: ${GOLDEN_TEST_DATASETS:-/data}
output: ${GOLDEN_TEST_OUTPUT}
expansion:
  feedback_terms: 20
index:
  progress: none
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data", cfg.Datasets.Root)
	assert.Equal(t, "/tmp/runs", cfg.Output)
	assert.Equal(t, 20, cfg.Expansion.FeedbackTerms)
	assert.Equal(t, 3, cfg.Expansion.FeedbackDocuments)
	assert.Equal(t, "none", cfg.Index.Progress)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Index.Progress = "stdout"
	assert.EqualError(t, cfg.Validate(), `index.progress must be "stderr" or "none", got "stdout"`)

	cfg = Default()
	cfg.Expansion.Lambda = 1.5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Logging.Env = "staging"
	assert.Error(t, cfg.Validate())
}
