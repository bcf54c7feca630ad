package golden

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/irlab/golden/analysis"
	"github.com/irlab/golden/collection"
	"github.com/irlab/golden/eval"
	"github.com/irlab/golden/output"
	"github.com/irlab/golden/pipeline"
	"github.com/irlab/golden/rank"
	"github.com/irlab/golden/rewrite"
	"github.com/irlab/golden/tracking"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documents = `{"doc_id": "d0", "text": "cat cat dog", "title": "cats"}
{"doc_id": "d1", "text": "dog fish", "title": "dogs"}
{"doc_id": "d2", "text": "bird tree", "title": "birds"}
{"doc_id": "d3", "text": "fish bird cat", "title": "fish"}
{"doc_id": "d4", "text": "tree", "title": "trees"}
`

const queries = `{"query_id": "1", "title": "cats"}
{"query_id": "2", "title": "bird"}
`

func dataset(t *testing.T) collection.Directory {
	t.Helper()
	dir := collection.NewDirectory(t.TempDir(), collection.SpotCheck)
	require.NoError(t, os.MkdirAll(dir.Path(), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir.Path(), "documents.jsonl"), []byte(documents), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir.Path(), "queries.jsonl"), []byte(queries), 0644))
	require.NoError(t, os.WriteFile(dir.QrelsPath(), []byte("1 0 d0 1\n1 0 d3 1\n2 0 d2 1\n"), 0644))
	return dir
}

type countingIndexes struct {
	calls int
	err   error
	next  IndexProvider
}

func (c *countingIndexes) Index(ctx context.Context, cfg Configuration) (*rank.Index, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.next.Index(ctx, cfg)
}

func bo1(reformulation pipeline.Reformulation) Configuration {
	return Configuration{
		Dataset:       collection.SpotCheck,
		Field:         collection.DefaultText,
		FirstModel:    rank.BM25,
		LastModel:     rank.PL2,
		Expansion:     rewrite.Bo1Expansion,
		Reformulation: reformulation,
		Limit:         rank.Top100,
	}
}

func TestRunDir(t *testing.T) {
	cfg := Configuration{Dataset: collection.SpotCheck, Field: collection.Title, FirstModel: rank.BM25, Expansion: rewrite.NoExpansion}
	dir, err := cfg.RunDir("output")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("output", "runs", "spot-check-20251122-training", "pyterrier-on-title-with-BM25-num_results-1000"), dir)

	index, err := cfg.IndexDir("output")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("output", "indexes", "spot-check-20251122-training-on-title"), index)
}

func TestTag(t *testing.T) {
	tag, err := bo1(pipeline.WithReformulation).Tag()
	require.NoError(t, err)
	assert.Equal(t, "pyterrier-on-default_text-with-BM25-Bo1-PL2-reformulation-num_results-100", tag)

	cfg := bo1(pipeline.NoReformulation)
	cfg.Expansion = rewrite.RM3Expansion
	cfg.LastModel = rank.TFIDF
	tag, err = cfg.Tag()
	require.NoError(t, err)
	assert.Equal(t, "pyterrier-on-default_text-with-BM25-RM3-TF_IDF-no-reformulation-num_results-100", tag)
}

func TestNoExpansionIgnoresLastModel(t *testing.T) {
	a := Configuration{Dataset: collection.SpotCheck, Field: collection.Title, FirstModel: rank.DPH, Expansion: rewrite.NoExpansion}
	b := a
	b.LastModel = rank.PL2
	b.Reformulation = pipeline.WithReformulation

	ta, err := a.Tag()
	require.NoError(t, err)
	tb, err := b.Tag()
	require.NoError(t, err)
	assert.Equal(t, ta, tb)
}

func TestLegacyTag(t *testing.T) {
	for e, want := range map[rewrite.Expansion]string{
		rewrite.NoExpansion:  "no-qe",
		rewrite.Bo1Expansion: "bo1",
		rewrite.RM3Expansion: "RM3",
	} {
		cfg := Configuration{Dataset: collection.SpotCheck, Field: collection.Title, FirstModel: rank.DPH, Expansion: e, Strategy: PreExpansion}
		tag, err := cfg.Tag()
		require.NoError(t, err)
		assert.Equal(t, "pyterrier-DPH-on-title-with-"+want, tag)

		key, err := cfg.IndexKey()
		require.NoError(t, err)
		assert.Equal(t, "spot-check-20251122-training-on-title-with-"+want, key)
	}
}

func TestInvalidConfiguration(t *testing.T) {
	_, err := Configuration{Dataset: "msmarco", Field: collection.Title, FirstModel: rank.BM25, Expansion: rewrite.NoExpansion}.Tag()
	assert.ErrorIs(t, err, collection.ErrUnsupportedDataset)

	_, err = Configuration{Dataset: collection.SpotCheck, Field: collection.Title, Expansion: rewrite.NoExpansion}.Tag()
	assert.ErrorIs(t, err, rank.ErrUnsupportedModel)

	_, err = Configuration{Dataset: collection.SpotCheck, Field: collection.Title, FirstModel: rank.BM25}.Tag()
	assert.ErrorIs(t, err, rewrite.ErrUnsupportedExpansion)

	cfg := bo1(pipeline.NoReformulation)
	cfg.Limit = 50
	_, err = cfg.Tag()
	assert.ErrorIs(t, err, rank.ErrUnsupportedLimit)
}

func TestTagsAreInjective(t *testing.T) {
	require.NoError(t, checkTags())
	for _, d := range collection.Datasets {
		seen := make(map[string]Configuration)
		for _, c := range Space(d) {
			tag, err := c.Tag()
			require.NoError(t, err)
			prev, ok := seen[tag]
			require.False(t, ok, "%s rendered by %+v and %+v", tag, prev, c)
			seen[tag] = c

			parsed, err := ParseTag(d, tag)
			require.NoError(t, err)
			assert.Equal(t, c, parsed)
		}
	}
}

func TestParseTagUnknown(t *testing.T) {
	_, err := ParseTag(collection.SpotCheck, "pyterrier-on-title-with-BM42-num_results-1000")
	assert.ErrorIs(t, err, ErrUnknownTag)
	_, err = ParseTag("msmarco", "pyterrier-on-title-with-BM25-num_results-1000")
	assert.ErrorIs(t, err, collection.ErrUnsupportedDataset)
}

func toyIndex(t *testing.T) *rank.Index {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index")
	require.NoError(t, rank.Build(context.Background(), path, []rank.Document{
		{DocNo: "d0", Text: "cat cat dog"},
		{DocNo: "d1", Text: "dog fish"},
	}, rank.BuildOptions{}))
	idx, err := rank.Open(path)
	require.NoError(t, err)
	return idx
}

func TestCompose(t *testing.T) {
	idx := toyIndex(t)
	params := rewrite.DefaultParameters()

	legacy := func(e rewrite.Expansion) Configuration {
		return Configuration{Dataset: collection.SpotCheck, Field: collection.Title, FirstModel: rank.DPH, Expansion: e, Strategy: PreExpansion}
	}
	noqe := Configuration{Dataset: collection.SpotCheck, Field: collection.Title, FirstModel: rank.DPH, Expansion: rewrite.NoExpansion}

	for want, cfg := range map[string]Configuration{
		"Retriever(BM25) >> Tokenise >> QueryExpansion(Bo1) >> Retriever(PL2) >> Reset": bo1(pipeline.WithReformulation),
		"Retriever(BM25) >> Tokenise >> QueryExpansion(Bo1) >> Retriever(PL2)":          bo1(pipeline.NoReformulation),
		"Tokenise >> Retriever(DPH)":                                                     noqe,
		"Retriever(DPH)":                                                                 legacy(rewrite.NoExpansion),
		"Retriever(DPH) >> QueryExpansion(Bo1) >> Retriever(DPH)":                        legacy(rewrite.Bo1Expansion),
		"Retriever(DPH) >> QueryExpansion(RM3) >> Retriever(DPH) >> Retriever(DPH)":      legacy(rewrite.RM3Expansion),
	} {
		seq, err := Compose(idx, cfg, params)
		require.NoError(t, err, want)
		assert.Equal(t, want, seq.String())
	}

	_, err := Compose(idx, Configuration{Field: collection.Title, Expansion: rewrite.Bo1Expansion}, params)
	assert.ErrorIs(t, err, rank.ErrUnsupportedModel)
	_, err = Compose(idx, Configuration{Field: collection.Title, FirstModel: rank.BM25, Expansion: rewrite.Bo1Expansion, Strategy: Strategy(9)}, params)
	assert.ErrorIs(t, err, ErrUnsupportedStrategy)
}

func TestRunSkipsExistingRun(t *testing.T) {
	out := t.TempDir()
	cfg := bo1(pipeline.WithReformulation)
	dir, err := cfg.RunDir(out)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, output.RunFile), nil, 0644))

	indexes := &countingIndexes{err: errors.New("must not be called")}
	runner := Runner{Output: out, Source: dataset(t), Indexes: indexes, Parameters: rewrite.DefaultParameters()}
	outcome, err := runner.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.True(t, outcome.Skipped)
	assert.Equal(t, filepath.Join(dir, output.RunFile), outcome.RunPath)
	assert.Zero(t, indexes.calls)
	assert.NoFileExists(t, outcome.MetadataPath)
	assert.NoDirExists(t, filepath.Join(out, "indexes"))
}

func TestRunFailureWritesNothing(t *testing.T) {
	out := t.TempDir()
	indexes := &countingIndexes{err: errors.New("no index")}
	runner := Runner{Output: out, Source: dataset(t), Indexes: indexes, Parameters: rewrite.DefaultParameters()}

	outcome, err := runner.Run(context.Background(), bo1(pipeline.NoReformulation))
	require.Error(t, err)
	assert.Equal(t, 1, indexes.calls)
	assert.NoFileExists(t, outcome.RunPath)
	assert.NoFileExists(t, outcome.MetadataPath)
}

func TestRun(t *testing.T) {
	out := t.TempDir()
	source := dataset(t)
	indexes := &countingIndexes{next: DiskIndexProvider{Output: out, Source: source}}
	runner := Runner{Output: out, Source: source, Indexes: indexes, Parameters: rewrite.DefaultParameters()}
	ctx := context.Background()

	cfg := bo1(pipeline.WithReformulation)
	outcome, err := runner.Run(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, outcome.Skipped)
	assert.Equal(t, 2, outcome.Topics)
	assert.Equal(t, "Retriever(BM25) >> Tokenise >> QueryExpansion(Bo1) >> Retriever(PL2) >> Reset", outcome.Pipeline)

	run, err := output.ReadTrecResults(outcome.RunPath)
	require.NoError(t, err)
	require.Len(t, run.Results, outcome.Results)
	require.NotEmpty(t, run.Results)
	for _, r := range run.Results {
		assert.Equal(t, outcome.Tag, r.RunName)
	}

	m, err := tracking.Read(outcome.MetadataPath)
	require.NoError(t, err)
	assert.Equal(t, outcome.Tag, m.Tag)
	assert.Equal(t, "BM25", m.Method.FirstModel)
	assert.Equal(t, "PL2", m.Method.LastModel)
	assert.Equal(t, "reformulation", m.Method.Reformulation)
	assert.Equal(t, 2, m.Data.Topics)
	assert.Equal(t, "Stopwords,PorterStemmer", m.Method.Analyser)
	assert.Contains(t, m.Data.QueryPerformance, "AvgIDF")
	assert.Contains(t, m.ResearchGoal.Description, "Bo1")

	index, err := cfg.IndexDir(out)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(index, tracking.IndexMetadataFile))

	// Same field, same index.
	other := Configuration{Dataset: collection.SpotCheck, Field: collection.DefaultText, FirstModel: rank.DPH, Expansion: rewrite.NoExpansion}
	_, err = runner.Run(ctx, other)
	require.NoError(t, err)
	entries, err := os.ReadDir(filepath.Join(out, "indexes"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	again, err := runner.Run(ctx, cfg)
	require.NoError(t, err)
	assert.True(t, again.Skipped)
	assert.Equal(t, 2, indexes.calls)

	tags, err := StoredRuns(out, collection.SpotCheck)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.Contains(t, tags, outcome.Tag)

	qrels, err := ReadQrels(source.QrelsPath())
	require.NoError(t, err)
	scores, err := EvaluateRuns(out, collection.SpotCheck, qrels, nil, []eval.Evaluator{eval.NumRelRet})
	require.NoError(t, err)
	assert.Len(t, scores, 2)
	assert.Equal(t, 2.0, scores[outcome.Tag]["1"][eval.NumRelRet.Name()])
}

func TestAnalyse(t *testing.T) {
	out := t.TempDir()
	source := dataset(t)
	runner := NewRunner(out, source, rewrite.DefaultParameters(), IndexOptions{})

	values, err := runner.Analyse(context.Background(), Configuration{
		Dataset: collection.SpotCheck, Field: collection.Title, FirstModel: rank.BM25, Expansion: rewrite.NoExpansion,
	}, []analysis.Measurement{analysis.TermCount{}})
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]float64{
		"1": {"TermCount": 1},
		"2": {"TermCount": 1},
	}, values)
}

func TestDescribe(t *testing.T) {
	cfg := bo1(pipeline.WithReformulation)
	seq := pipeline.Sequence{rewrite.Tokenise{}}
	assert.Contains(t, Describe(cfg, seq), "the original query is restored afterwards")
	assert.Contains(t, Describe(bo1(pipeline.NoReformulation), seq), "the expanded query is kept")
}
