package rank

import (
	"context"

	"github.com/irlab/golden/pipeline"
	"github.com/pkg/errors"
)

// Retriever is a pipeline stage that scores the whole collection with a weighting model.
type Retriever struct {
	index  *Index
	model  Model
	scorer Scorer
	limit  ResultLimit
}

// NewRetriever creates a retriever for the named weighting model. Names are matched case-insensitively; unknown
// names return ErrUnsupportedModel.
func NewRetriever(index *Index, name string, limit ResultLimit) (*Retriever, error) {
	m, err := ParseModel(name)
	if err != nil {
		return nil, err
	}
	return NewModelRetriever(index, m, limit)
}

// NewModelRetriever creates a retriever for a parsed weighting model.
func NewModelRetriever(index *Index, m Model, limit ResultLimit) (*Retriever, error) {
	if index == nil {
		return nil, errors.New("retriever requires an index")
	}
	if err := limit.Validate(); err != nil {
		return nil, err
	}
	scorer, err := NewScorer(m)
	if err != nil {
		return nil, err
	}
	return &Retriever{index: index, model: m, scorer: scorer, limit: limit}, nil
}

// Model is the weighting model of the retriever.
func (r *Retriever) Model() Model {
	return r.model
}

func (r *Retriever) String() string {
	return "Retriever(" + r.model.String() + ")"
}

// Transform retrieves documents for the query of every row, replacing any previous documents.
func (r *Retriever) Transform(ctx context.Context, rankings []pipeline.Ranking) ([]pipeline.Ranking, error) {
	return pipeline.Apply(ctx, rankings, func(row pipeline.Ranking) (pipeline.Ranking, error) {
		docs, err := r.Search(row.Query)
		if err != nil {
			return row, err
		}
		return pipeline.Ranking{Query: row.Query, Documents: docs}, nil
	})
}

// QueryTerms turns a query into weighted terms. Raw text is analysed and each term weighted by its frequency
// relative to the most frequent query term; weighted queries are used as they are.
func (r *Retriever) QueryTerms(q pipeline.Query) []pipeline.WeightedTerm {
	if q.Weighted() {
		return q.Terms
	}
	counts := make(map[string]float64)
	var order []string
	var max float64
	for _, t := range r.index.Analyser().Analyse(q.Text) {
		if _, ok := counts[t]; !ok {
			order = append(order, t)
		}
		counts[t]++
		if counts[t] > max {
			max = counts[t]
		}
	}
	terms := make([]pipeline.WeightedTerm, len(order))
	for i, t := range order {
		terms[i] = pipeline.WeightedTerm{Term: t, Weight: counts[t] / max}
	}
	return terms
}

// Search scores documents term at a time and returns at most the result limit, best first.
func (r *Retriever) Search(q pipeline.Query) ([]pipeline.ScoredDocument, error) {
	cs := r.index.CollectionStatistics()
	scores := make(map[int]float64)
	for _, qt := range r.QueryTerms(q) {
		e, ok := r.index.Lexicon(qt.Term)
		if !ok || qt.Weight == 0 {
			continue
		}
		postings, err := r.index.Postings(qt.Term)
		if err != nil {
			return nil, err
		}
		ts := TermStatistics{
			DocumentFrequency:  float64(e.DocumentFrequency),
			TotalTermFrequency: float64(e.Frequency),
			Collection:         cs,
		}
		for _, p := range postings {
			dl, err := r.index.DocumentLength(p.Doc)
			if err != nil {
				return nil, err
			}
			scores[p.Doc] += r.scorer.Score(float64(p.Frequency), dl, qt.Weight, ts)
		}
	}

	docs := make([]pipeline.ScoredDocument, 0, len(scores))
	for id, score := range scores {
		docs = append(docs, pipeline.ScoredDocument{ID: id, Score: score})
	}
	pipeline.Sort(docs)
	if len(docs) > int(r.limit) {
		docs = docs[:r.limit]
	}
	for i := range docs {
		docno, err := r.index.DocNo(docs[i].ID)
		if err != nil {
			return nil, err
		}
		docs[i].DocNo = docno
	}
	return docs, nil
}
