package tracking

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run", MetadataFile)
	called := false
	err := Track(path, Metadata{
		Tag:          "pyterrier-on-title-with-BM25-num_results-1000",
		ResearchGoal: ResearchGoal{Description: "BM25 on titles"},
		Method:       Method{Field: "title", FirstModel: "BM25", Expansion: "no-qe", NumResults: 1000},
		Data:         Data{Dataset: "spot-check-20251122-training", Topics: 2},
	}, func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	m, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "pyterrier-on-title-with-BM25-num_results-1000", m.Tag)
	assert.Equal(t, "BM25", m.Method.FirstModel)
	assert.Equal(t, 1000, m.Method.NumResults)
	assert.Equal(t, runtime.GOOS, m.Platform.OperatingSystem)
	assert.NotEmpty(t, m.RunID)
	assert.NotEmpty(t, m.Resources.Runtime)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTrack_FailureWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), MetadataFile)
	boom := errors.New("boom")
	err := Track(path, Metadata{Tag: "x"}, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.NoFileExists(t, path)
}
