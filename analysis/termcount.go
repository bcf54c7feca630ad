package analysis

import "github.com/irlab/golden/stats"

// TermCount is a measurement that counts the number of terms in the query.
type TermCount struct{}

// Name is TermCount.
func (tc TermCount) Name() string {
	return "TermCount"
}

// Execute counts the analysed terms of a query, duplicates included.
func (tc TermCount) Execute(terms []string, s stats.StatisticsSource) (float64, error) {
	return float64(len(terms)), nil
}
