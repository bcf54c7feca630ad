package rewrite

import (
	"context"

	"github.com/irlab/golden/pipeline"
	"github.com/irlab/golden/preprocess"
)

// Stage is a pipeline stage.
type Stage = pipeline.Stage

// Tokenise normalises the text of every query so it only contains lowercase alphanumeric tokens.
type Tokenise struct{}

func (Tokenise) String() string {
	return "Tokenise"
}

func (Tokenise) Transform(ctx context.Context, rankings []pipeline.Ranking) ([]pipeline.Ranking, error) {
	return pipeline.Apply(ctx, rankings, func(r pipeline.Ranking) (pipeline.Ranking, error) {
		text := r.Query.Text
		if r.Query.Weighted() {
			text = r.Query.String()
		}
		r.Query = r.Query.Push(pipeline.NewQuery(r.Query.ID, preprocess.Tokenise(text)))
		return r, nil
	})
}

// Reset restores the original query of every row, keeping the retrieved documents.
type Reset struct{}

func (Reset) String() string {
	return "Reset"
}

func (Reset) Transform(ctx context.Context, rankings []pipeline.Ranking) ([]pipeline.Ranking, error) {
	return pipeline.Apply(ctx, rankings, func(r pipeline.Ranking) (pipeline.Ranking, error) {
		r.Query = r.Query.Original()
		return r, nil
	})
}

// feedback returns the ids and scores of the top documents of a ranking.
func feedback(r pipeline.Ranking, n int) ([]int, []float64) {
	if n > len(r.Documents) {
		n = len(r.Documents)
	}
	ids := make([]int, n)
	scores := make([]float64, n)
	for i := 0; i < n; i++ {
		ids[i] = r.Documents[i].ID
		scores[i] = r.Documents[i].Score
	}
	return ids, scores
}

// queryFrequencies counts the terms of a query, using the weights of a weighted query.
func queryFrequencies(source FeedbackSource, q pipeline.Query) (map[string]float64, []string) {
	counts := make(map[string]float64)
	var order []string
	add := func(t string, w float64) {
		if _, ok := counts[t]; !ok {
			order = append(order, t)
		}
		counts[t] += w
	}
	if q.Weighted() {
		for _, t := range q.Terms {
			add(t.Term, t.Weight)
		}
	} else {
		for _, t := range source.Analyser().Analyse(q.Text) {
			add(t, 1)
		}
	}
	return counts, order
}

func weighted(weights map[string]float64) []pipeline.WeightedTerm {
	terms := make([]pipeline.WeightedTerm, 0, len(weights))
	for t, w := range weights {
		if w > 0 {
			terms = append(terms, pipeline.WeightedTerm{Term: t, Weight: w})
		}
	}
	pipeline.SortTerms(terms)
	return terms
}
