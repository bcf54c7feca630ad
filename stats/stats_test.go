package stats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memorySource struct {
	docs [][]string
}

func (m memorySource) counts() (df, ttf map[string]float64, tokens int64) {
	df = make(map[string]float64)
	ttf = make(map[string]float64)
	for _, doc := range m.docs {
		seen := make(map[string]bool)
		for _, t := range doc {
			ttf[t]++
			tokens++
			if !seen[t] {
				df[t]++
				seen[t] = true
			}
		}
	}
	return
}

func (m memorySource) CollectionStatistics() CollectionStatistics {
	df, _, tokens := m.counts()
	return NewCollectionStatistics(len(m.docs), tokens, len(df), 0)
}

func (m memorySource) TermVector(document int) (TermVector, error) {
	if document < 0 || document >= len(m.docs) {
		return nil, errors.Errorf("no document %d", document)
	}
	df, ttf, _ := m.counts()
	tf := make(map[string]float64)
	var order []string
	for _, t := range m.docs[document] {
		if tf[t] == 0 {
			order = append(order, t)
		}
		tf[t]++
	}
	tv := make(TermVector, len(order))
	for i, t := range order {
		tv[i] = TermVectorTerm{Term: t, TermFrequency: tf[t], DocumentFrequency: df[t], TotalTermFrequency: ttf[t]}
	}
	return tv, nil
}

func (m memorySource) DocumentLength(document int) (float64, error) {
	return float64(len(m.docs[document])), nil
}

func (m memorySource) DocumentFrequency(term string) (float64, error) {
	df, _, _ := m.counts()
	return df[term], nil
}

func (m memorySource) TotalTermFrequency(term string) (float64, error) {
	_, ttf, _ := m.counts()
	return ttf[term], nil
}

func (m memorySource) VocabularySize() (float64, error) {
	_, _, tokens := m.counts()
	return float64(tokens), nil
}

var source = memorySource{docs: [][]string{
	{"cat", "cat", "dog"},
	{"dog", "fish"},
	{"bird"},
}}

func TestCollectionStatistics(t *testing.T) {
	cs := NewCollectionStatistics(4, 10, 3, 6)
	assert.Equal(t, 2.5, cs.AverageDocumentLength)
	assert.Zero(t, NewCollectionStatistics(0, 0, 0, 0).AverageDocumentLength)
}

func TestPropertiesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.properties")
	cs := NewCollectionStatistics(3, 6, 4, 5)
	require.NoError(t, WriteProperties(path, cs, map[string]string{"index.analyser": "Stopwords,PorterStemmer"}))

	got, p, err := ReadProperties(path)
	require.NoError(t, err)
	assert.Equal(t, cs, got)
	assert.Equal(t, "Stopwords,PorterStemmer", p.GetString("index.analyser", ""))
}

func TestReadPropertiesMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.properties")
	require.NoError(t, os.WriteFile(path, []byte("num.Documents = 3\n"), 0644))
	_, _, err := ReadProperties(path)
	assert.Error(t, err)

	_, _, err = ReadProperties(filepath.Join(t.TempDir(), "absent.properties"))
	assert.Error(t, err)
}

func TestInverseDocumentFrequency(t *testing.T) {
	rare, err := InverseDocumentFrequency(source, "bird")
	require.NoError(t, err)
	common, err := InverseDocumentFrequency(source, "dog")
	require.NoError(t, err)
	assert.Greater(t, rare, common)
}

func TestLanguageModel(t *testing.T) {
	lm, err := NewLanguageModel(source, []int{0, 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"cat", "dog", "fish"}, lm.Vocabulary())
	assert.Equal(t, 2.0, lm.TermCount["cat"])
	assert.Equal(t, 2, lm.FeedbackFrequency["dog"])
	assert.Equal(t, 5.0, lm.DocLen)
	assert.InDelta(t, 2.0/5.0, lm.DocumentTermProbability("cat"), 1e-9)
	assert.InDelta(t, 2.0/6.0, lm.CollectionTermProbability("dog"), 1e-9)
	assert.InDelta(t, 1.0/3.0+1.0/2.0, lm.Relevance["dog"], 1e-9)
	assert.Zero(t, lm.DocumentTermProbability("bird"))
}

func TestLanguageModelWeights(t *testing.T) {
	lm, err := NewLanguageModel(source, []int{0, 1}, LanguageModelWeights([]float64{1, 0}))
	require.NoError(t, err)
	assert.Zero(t, lm.Relevance["fish"])
	assert.InDelta(t, 2.0/3.0, lm.Relevance["cat"], 1e-9)

	_, err = NewLanguageModel(source, []int{0, 1}, LanguageModelWeights([]float64{1}))
	assert.Error(t, err)
}
