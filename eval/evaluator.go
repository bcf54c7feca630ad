// Package eval computes trec style effectiveness measures of runs against relevance judgements.
package eval

import (
	"sort"

	"github.com/hscells/trecresults"
	"gonum.org/v1/gonum/stat"
)

// RelevanceGrade is the grade above which a judged document counts as relevant.
const RelevanceGrade = 0

// Evaluator is an interface for evaluating a retrieved list of documents.
type Evaluator interface {
	Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64
	Name() string
}

// Evaluate scores the results of every topic that has judgements using the supplied measures. The result maps
// topic -> measure -> score.
func Evaluate(evaluators []Evaluator, results trecresults.ResultList, qrels trecresults.QrelsFile) map[string]map[string]float64 {
	// First create a map of topic->results
	resultMap := map[string]trecresults.ResultList{}
	for _, res := range results {
		resultMap[res.Topic] = append(resultMap[res.Topic], res)
	}

	// Next create a map of topic->evaluator:score
	scores := map[string]map[string]float64{}
	for topic, resultList := range resultMap {
		q, ok := qrels.Qrels[topic]
		if !ok {
			continue
		}
		sortResults(resultList)
		scores[topic] = map[string]float64{}
		for _, evaluator := range evaluators {
			scores[topic][evaluator.Name()] = evaluator.Score(&resultList, q)
		}
	}

	return scores
}

// sortResults orders a result list by rank, as it appears in a run file.
func sortResults(results trecresults.ResultList) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Rank != results[j].Rank {
			return results[i].Rank < results[j].Rank
		}
		return results[i].Score > results[j].Score
	})
}

// Summarise averages every measure over the topics.
func Summarise(scores map[string]map[string]float64) map[string]float64 {
	values := map[string][]float64{}
	for _, measures := range scores {
		for measure, v := range measures {
			values[measure] = append(values[measure], v)
		}
	}
	summary := make(map[string]float64, len(values))
	for measure, v := range values {
		summary[measure] = stat.Mean(v, nil)
	}
	return summary
}
