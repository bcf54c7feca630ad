// Package analysis provides pre-retrieval measurements of queries.
package analysis

import (
	"sort"

	"github.com/irlab/golden/pipeline"
	"github.com/irlab/golden/preprocess"
	"github.com/irlab/golden/stats"
	"gonum.org/v1/gonum/stat"
)

// Measurement is a representation for how a measurement fits into the pipeline.
type Measurement interface {
	// Name is the name of the measurement in the output. It should not contain any spaces.
	Name() string
	// Execute computes the implemented measurement for the analysed terms of a query using the specified statistics.
	Execute(terms []string, s stats.StatisticsSource) (float64, error)
}

// DefaultMeasurements are recorded for every run.
var DefaultMeasurements = []Measurement{
	TermCount{},
	AvgIDF{},
	MaxIDF{},
	StdDevIDF{},
	AvgICTF,
	SimplifiedClarityScore{},
	SummedCollectionQuerySimilarity{},
	MaxCollectionQuerySimilarity{},
}

// QueryTerms extracts the terms from a query. Weighted queries are already analysed, raw ones are analysed with a.
func QueryTerms(a preprocess.Analyser, q pipeline.Query) []string {
	if q.Weighted() {
		terms := make([]string, len(q.Terms))
		for i, t := range q.Terms {
			terms[i] = t.Term
		}
		return terms
	}
	return a.Analyse(q.Text)
}

// Measure computes every measurement for every query, keyed by query id and then measurement name.
func Measure(measurements []Measurement, queries []pipeline.Query, a preprocess.Analyser, s stats.StatisticsSource) (map[string]map[string]float64, error) {
	values := make(map[string]map[string]float64, len(queries))
	for _, q := range queries {
		terms := QueryTerms(a, q)
		values[q.ID] = make(map[string]float64, len(measurements))
		for _, m := range measurements {
			v, err := m.Execute(terms, s)
			if err != nil {
				return nil, err
			}
			values[q.ID][m.Name()] = v
		}
	}
	return values, nil
}

// Average is the mean of each measurement over all queries.
func Average(values map[string]map[string]float64) map[string]float64 {
	ids := make([]string, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	per := make(map[string][]float64)
	for _, id := range ids {
		for name, v := range values[id] {
			per[name] = append(per[name], v)
		}
	}
	avg := make(map[string]float64, len(per))
	for name, vs := range per {
		avg[name] = stat.Mean(vs, nil)
	}
	return avg
}
