package rewrite

import (
	"context"
	"math"

	"github.com/irlab/golden/pipeline"
	"github.com/irlab/golden/stats"
	"gonum.org/v1/gonum/floats"
)

// RM3 is relevance model expansion interpolated with the original query.
type RM3 struct {
	source FeedbackSource
	params Parameters
}

func (*RM3) String() string {
	return "QueryExpansion(RM3)"
}

func (m *RM3) Transform(ctx context.Context, rankings []pipeline.Ranking) ([]pipeline.Ranking, error) {
	return pipeline.Apply(ctx, rankings, m.expand)
}

// softmax turns retrieval scores into document weights summing to one.
func softmax(scores []float64) []float64 {
	weights := make([]float64, len(scores))
	if len(scores) == 0 {
		return weights
	}
	max := floats.Max(scores)
	for i, s := range scores {
		weights[i] = math.Exp(s - max)
	}
	floats.Scale(1/floats.Sum(weights), weights)
	return weights
}

func normalise(terms map[string]float64) {
	values := make([]float64, 0, len(terms))
	for _, v := range terms {
		values = append(values, v)
	}
	sum := floats.Sum(values)
	if sum == 0 {
		return
	}
	for t := range terms {
		terms[t] /= sum
	}
}

func (m *RM3) expand(r pipeline.Ranking) (pipeline.Ranking, error) {
	docs, scores := feedback(r, m.params.FeedbackDocuments)
	qtf, order := queryFrequencies(m.source, r.Query)
	if len(docs) == 0 || len(order) == 0 {
		return r, nil
	}

	lm, err := stats.NewLanguageModel(m.source, docs, stats.LanguageModelWeights(softmax(scores)))
	if err != nil {
		return r, err
	}

	relevance := make(map[string]float64, len(lm.Relevance))
	for _, term := range lm.Vocabulary() {
		relevance[term] = lm.Relevance[term]
	}
	rm := make(map[string]float64, m.params.FeedbackTerms)
	for _, t := range topTerms(relevance, m.params.FeedbackTerms) {
		rm[t.term] = t.score
	}
	normalise(rm)
	normalise(qtf)

	lambda := m.params.Lambda
	weights := make(map[string]float64, len(qtf)+len(rm))
	for t, w := range qtf {
		weights[t] += lambda * w
	}
	for t, w := range rm {
		weights[t] += (1 - lambda) * w
	}

	r.Query = r.Query.Push(pipeline.Query{ID: r.Query.ID, Text: r.Query.Text, Terms: weighted(weights)})
	return r, nil
}
