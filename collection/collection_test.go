package collection

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	doc := Document{ID: "d1", Title: "A title", Description: "A description"}

	text, err := Extract(doc, DefaultText)
	require.NoError(t, err)
	assert.Equal(t, "A title\nA description", text)

	text, err = Extract(doc, Title)
	require.NoError(t, err)
	assert.Equal(t, "A title", text)

	text, err = Extract(Document{Title: "only"}, Description)
	require.NoError(t, err)
	assert.Empty(t, text)

	_, err = Extract(doc, Field(42))
	assert.ErrorIs(t, err, ErrUnsupportedField)
}

func TestDefaultTextPrefersText(t *testing.T) {
	doc := Document{Text: "full", Title: "t", Description: "d"}
	assert.Equal(t, "full", doc.DefaultText())
}

func TestParseField(t *testing.T) {
	for _, f := range Fields {
		got, err := ParseField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	_, err := ParseField("body")
	assert.ErrorIs(t, err, ErrUnsupportedField)
}

func TestParseDataset(t *testing.T) {
	d, err := ParseDataset("spot-check-20251122-training")
	require.NoError(t, err)
	assert.Equal(t, SpotCheck, d)

	_, err = ParseDataset("msmarco")
	assert.ErrorIs(t, err, ErrUnsupportedDataset)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDirectory(t *testing.T) {
	root := t.TempDir()
	dir := NewDirectory(root, SpotCheck)
	writeFile(t, filepath.Join(dir.Path(), "documents.jsonl"),
		`{"doc_id": "d1", "title": "Cats", "description": "about cats"}
{"_id": "d2", "text": "dogs", "title": "Dogs"}

{"doc_id": "d3", "default_text": "precomputed", "text": "ignored"}
`)
	writeFile(t, filepath.Join(dir.Path(), "queries.jsonl"), `{"query_id": "2", "title": "dogs"}
{"qid": "1", "text": "cats"}
`)

	var docs []Document
	require.NoError(t, dir.Documents(context.Background(), func(d Document) error {
		docs = append(docs, d)
		return nil
	}))
	require.Len(t, docs, 3)
	assert.Equal(t, "d1", docs[0].ID)
	assert.Equal(t, "Cats\nabout cats", docs[0].DefaultText())
	assert.Equal(t, "d2", docs[1].ID)
	assert.Equal(t, "dogs", docs[1].DefaultText())
	assert.Equal(t, "precomputed", docs[2].DefaultText())

	topics, err := dir.Topics(context.Background())
	require.NoError(t, err)
	require.Len(t, topics, 2)
	assert.Equal(t, "2", topics[0].ID)
	assert.Equal(t, "cats", topics[1].Text)

	assert.Equal(t, filepath.Join(root, "spot-check-20251122-training", "qrels.txt"), dir.QrelsPath())
}

func TestDirectoryGzip(t *testing.T) {
	dir := NewDirectory(t.TempDir(), RadboudValidation)
	require.NoError(t, os.MkdirAll(dir.Path(), 0755))
	f, err := os.Create(filepath.Join(dir.Path(), "documents.jsonl.gz"))
	require.NoError(t, err)
	w := gzip.NewWriter(f)
	_, err = w.Write([]byte(`{"doc_id": "d1", "title": "gzipped"}` + "\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	var titles []string
	require.NoError(t, dir.Documents(context.Background(), func(d Document) error {
		titles = append(titles, d.Title)
		return nil
	}))
	assert.Equal(t, []string{"gzipped"}, titles)
}

func TestDirectoryDuplicateDocument(t *testing.T) {
	dir := NewDirectory(t.TempDir(), SpotCheck)
	writeFile(t, filepath.Join(dir.Path(), "documents.jsonl"), `{"doc_id": "d1"}
{"doc_id": "d1"}
`)
	err := dir.Documents(context.Background(), func(Document) error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate document d1")
}

func TestDirectoryMissing(t *testing.T) {
	dir := NewDirectory(t.TempDir(), SpotCheck)
	_, err := dir.Topics(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
