package analysis

import (
	"math"

	"github.com/irlab/golden/stats"
	"gonum.org/v1/gonum/floats"
)

// SummedCollectionQuerySimilarity (SCQ) combines the collection term frequency and the inverse document frequency of
// each query term, summed over the query.
type SummedCollectionQuerySimilarity struct{}

// MaxCollectionQuerySimilarity is the maximum rather than the sum.
type MaxCollectionQuerySimilarity struct{}

func (sc SummedCollectionQuerySimilarity) Name() string {
	return "SummedCollectionQuerySimilarity"
}

func (sc SummedCollectionQuerySimilarity) Execute(terms []string, s stats.StatisticsSource) (float64, error) {
	scq, err := collectionQuerySimilarities(terms, s)
	if err != nil {
		return 0.0, err
	}
	return floats.Sum(scq), nil
}

func (sc MaxCollectionQuerySimilarity) Name() string {
	return "MaxCollectionQuerySimilarity"
}

func (sc MaxCollectionQuerySimilarity) Execute(terms []string, s stats.StatisticsSource) (float64, error) {
	scq, err := collectionQuerySimilarities(terms, s)
	if err != nil || len(scq) == 0 {
		return 0.0, err
	}
	return floats.Max(scq), nil
}

func collectionQuerySimilarities(terms []string, s stats.StatisticsSource) ([]float64, error) {
	scq := make([]float64, 0, len(terms))
	for _, term := range terms {
		tf, err := s.TotalTermFrequency(term)
		if err != nil {
			return nil, err
		}
		idf, err := stats.InverseDocumentFrequency(s, term)
		if err != nil {
			return nil, err
		}
		scq = append(scq, (1.0+math.Log(1+tf))*math.Log(1+idf))
	}
	return scq, nil
}
