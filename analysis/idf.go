package analysis

import (
	"github.com/irlab/golden/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type AvgIDF struct{}
type SumIDF struct{}
type MaxIDF struct{}
type StdDevIDF struct{}

func idfs(terms []string, s stats.StatisticsSource) ([]float64, error) {
	scores := make([]float64, 0, len(terms))
	for _, term := range terms {
		idf, err := stats.InverseDocumentFrequency(s, term)
		if err != nil {
			return nil, err
		}
		scores = append(scores, idf)
	}
	return scores, nil
}

func (avg AvgIDF) Name() string {
	return "AvgIDF"
}

func (avg AvgIDF) Execute(terms []string, s stats.StatisticsSource) (float64, error) {
	scores, err := idfs(terms, s)
	if err != nil || len(scores) == 0 {
		return 0.0, err
	}
	return floats.Sum(scores) / float64(len(scores)), nil
}

func (sum SumIDF) Name() string {
	return "SumIDF"
}

func (sum SumIDF) Execute(terms []string, s stats.StatisticsSource) (float64, error) {
	scores, err := idfs(terms, s)
	if err != nil {
		return 0.0, err
	}
	return floats.Sum(scores), nil
}

func (m MaxIDF) Name() string {
	return "MaxIDF"
}

func (m MaxIDF) Execute(terms []string, s stats.StatisticsSource) (float64, error) {
	scores, err := idfs(terms, s)
	if err != nil || len(scores) == 0 {
		return 0.0, err
	}
	return floats.Max(scores), nil
}

func (sd StdDevIDF) Name() string {
	return "StdDevIDF"
}

func (sd StdDevIDF) Execute(terms []string, s stats.StatisticsSource) (float64, error) {
	scores, err := idfs(terms, s)
	if err != nil || len(scores) < 2 {
		return 0.0, err
	}
	return stat.StdDev(scores, nil), nil
}
