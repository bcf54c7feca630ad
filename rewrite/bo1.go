package rewrite

import (
	"context"
	"math"
	"sort"

	"github.com/irlab/golden/pipeline"
	"github.com/irlab/golden/stats"
)

// Bo1 is the Bose-Einstein divergence from randomness expansion model.
type Bo1 struct {
	source FeedbackSource
	params Parameters
}

func (*Bo1) String() string {
	return "QueryExpansion(Bo1)"
}

func (b *Bo1) Transform(ctx context.Context, rankings []pipeline.Ranking) ([]pipeline.Ranking, error) {
	return pipeline.Apply(ctx, rankings, b.expand)
}

type scoredTerm struct {
	term  string
	score float64
}

func topTerms(scores map[string]float64, n int) []scoredTerm {
	terms := make([]scoredTerm, 0, len(scores))
	for t, s := range scores {
		terms = append(terms, scoredTerm{term: t, score: s})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].score != terms[j].score {
			return terms[i].score > terms[j].score
		}
		return terms[i].term < terms[j].term
	})
	if len(terms) > n {
		terms = terms[:n]
	}
	return terms
}

func (b *Bo1) expand(r pipeline.Ranking) (pipeline.Ranking, error) {
	docs, _ := feedback(r, b.params.FeedbackDocuments)
	qtf, order := queryFrequencies(b.source, r.Query)
	if len(docs) == 0 || len(order) == 0 {
		return r, nil
	}

	lm, err := stats.NewLanguageModel(b.source, docs)
	if err != nil {
		return r, err
	}

	minDocs := b.params.MinDocuments
	if minDocs > len(docs) {
		minDocs = len(docs)
	}
	N := float64(b.source.CollectionStatistics().NumberOfDocuments)
	scores := make(map[string]float64)
	for _, term := range lm.Vocabulary() {
		if lm.FeedbackFrequency[term] < minDocs {
			continue
		}
		F := lm.TotalTermFrequency[term]
		if F == 0 || N == 0 {
			continue
		}
		f := F / N
		score := lm.TermCount[term]*stats.Log2((1+f)/f) + stats.Log2(1+f)
		if score > 0 && !math.IsInf(score, 0) {
			scores[term] = score
		}
	}

	var maxQtf float64
	for _, t := range order {
		maxQtf = math.Max(maxQtf, qtf[t])
	}
	weights := make(map[string]float64, len(order)+b.params.FeedbackTerms)
	for _, t := range order {
		weights[t] = qtf[t] / maxQtf
	}

	top := topTerms(scores, b.params.FeedbackTerms)
	if len(top) > 0 {
		norm := top[0].score
		for _, t := range top {
			weights[t.term] += t.score / norm
		}
		for _, t := range order {
			if s, ok := scores[t]; ok && !contains(top, t) {
				weights[t] += s / norm
			}
		}
	}

	r.Query = r.Query.Push(pipeline.Query{ID: r.Query.ID, Text: r.Query.Text, Terms: weighted(weights)})
	return r, nil
}

func contains(terms []scoredTerm, term string) bool {
	for _, t := range terms {
		if t.term == term {
			return true
		}
	}
	return false
}
