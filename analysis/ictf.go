package analysis

import (
	"math"

	"github.com/irlab/golden/stats"
)

type avgICTF struct{}

// AvgICTF is similar to idf, however it attempts to take into account the term frequencies. Inverse collection term
// frequency is the ratio of tokens in the collection to the frequency of a term in the collection, logarithmically
// smoothed.
var AvgICTF = avgICTF{}

func (avgi avgICTF) Name() string {
	return "AvgICTF"
}

func (avgi avgICTF) Execute(terms []string, s stats.StatisticsSource) (float64, error) {
	if len(terms) == 0 {
		return 0.0, nil
	}
	W, err := s.VocabularySize()
	if err != nil {
		return 0.0, err
	}

	sumICTF := 0.0
	for _, term := range terms {
		tf, err := s.TotalTermFrequency(term)
		if err != nil {
			return 0.0, err
		}
		sumICTF += math.Log2(W) - math.Log2(1+tf)
	}
	return sumICTF / float64(len(terms)), nil
}

// SimplifiedClarityScore (SCS) aims to measure the intrinsic clarity or ambiguity of a query from the maximum
// likelihood of the query language model against the collection.
type SimplifiedClarityScore struct{}

func (qs SimplifiedClarityScore) Name() string {
	return "SimplifiedClarityScore"
}

func (qs SimplifiedClarityScore) Execute(terms []string, s stats.StatisticsSource) (float64, error) {
	if len(terms) == 0 {
		return 0.0, nil
	}
	ictf, err := AvgICTF.Execute(terms, s)
	if err != nil {
		return 0.0, err
	}
	return math.Log2(1.0/float64(len(terms))) + ictf, nil
}
