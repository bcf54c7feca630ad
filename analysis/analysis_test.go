package analysis

import (
	"math"
	"testing"

	"github.com/irlab/golden/pipeline"
	"github.com/irlab/golden/preprocess"
	"github.com/irlab/golden/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixed is a collection of 4 documents and 10 tokens.
type fixed map[string][2]float64

func (f fixed) CollectionStatistics() stats.CollectionStatistics {
	return stats.NewCollectionStatistics(4, 10, len(f), 0)
}

func (f fixed) TermVector(int) (stats.TermVector, error) { return nil, nil }

func (f fixed) DocumentLength(int) (float64, error) { return 0, nil }

func (f fixed) DocumentFrequency(term string) (float64, error) { return f[term][0], nil }

func (f fixed) TotalTermFrequency(term string) (float64, error) { return f[term][1], nil }

func (f fixed) VocabularySize() (float64, error) { return 10, nil }

var source = fixed{
	"cat":  {1, 3},
	"dog":  {3, 3},
	"fish": {2, 4},
}

func idf(df float64) float64 {
	return math.Log(5 / (df + 1))
}

func TestIDF(t *testing.T) {
	terms := []string{"cat", "dog"}

	v, err := AvgIDF{}.Execute(terms, source)
	require.NoError(t, err)
	assert.InDelta(t, (idf(1)+idf(3))/2, v, 1e-9)

	v, err = SumIDF{}.Execute(terms, source)
	require.NoError(t, err)
	assert.InDelta(t, idf(1)+idf(3), v, 1e-9)

	v, err = MaxIDF{}.Execute(terms, source)
	require.NoError(t, err)
	assert.InDelta(t, idf(1), v, 1e-9)

	v, err = StdDevIDF{}.Execute([]string{"cat"}, source)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestICTF(t *testing.T) {
	v, err := AvgICTF.Execute([]string{"cat", "fish"}, source)
	require.NoError(t, err)
	want := ((math.Log2(10) - math.Log2(4)) + (math.Log2(10) - math.Log2(5))) / 2
	assert.InDelta(t, want, v, 1e-9)

	scs, err := SimplifiedClarityScore{}.Execute([]string{"cat", "fish"}, source)
	require.NoError(t, err)
	assert.InDelta(t, want-1, scs, 1e-9)
}

func TestCollectionQuerySimilarity(t *testing.T) {
	scq := func(tf, df float64) float64 {
		return (1 + math.Log(1+tf)) * math.Log(1+idf(df))
	}
	v, err := SummedCollectionQuerySimilarity{}.Execute([]string{"cat", "dog"}, source)
	require.NoError(t, err)
	assert.InDelta(t, scq(3, 1)+scq(3, 3), v, 1e-9)

	v, err = MaxCollectionQuerySimilarity{}.Execute([]string{"cat", "dog"}, source)
	require.NoError(t, err)
	assert.InDelta(t, scq(3, 1), v, 1e-9)
}

func TestEmptyQuery(t *testing.T) {
	for _, m := range DefaultMeasurements {
		v, err := m.Execute(nil, source)
		require.NoError(t, err, m.Name())
		assert.Zero(t, v, m.Name())
	}
}

func TestMeasure(t *testing.T) {
	queries := []pipeline.Query{
		pipeline.NewQuery("1", "the cats"),
		{ID: "2", Terms: []pipeline.WeightedTerm{{Term: "dog", Weight: 1}, {Term: "fish", Weight: 0.5}}},
	}
	values, err := Measure([]Measurement{TermCount{}, MaxIDF{}}, queries, preprocess.NewAnalyser(), source)
	require.NoError(t, err)
	assert.Equal(t, 1.0, values["1"]["TermCount"])
	assert.Equal(t, 2.0, values["2"]["TermCount"])
	assert.InDelta(t, idf(1), values["1"]["MaxIDF"], 1e-9)

	avg := Average(values)
	assert.Equal(t, 1.5, avg["TermCount"])
	assert.InDelta(t, (idf(1)+idf(2))/2, avg["MaxIDF"], 1e-9)
}
