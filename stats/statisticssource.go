// Package stats provides collection statistics and the statistics sources that weighting and expansion models use.
package stats

import (
	"math"
)

// CollectionStatistics are the global statistics of an index.
type CollectionStatistics struct {
	NumberOfDocuments     int
	NumberOfTokens        int64
	NumberOfUniqueTerms   int
	NumberOfPointers      int64
	AverageDocumentLength float64
}

// NewCollectionStatistics derives the average document length from the counts.
func NewCollectionStatistics(documents int, tokens int64, terms int, pointers int64) CollectionStatistics {
	cs := CollectionStatistics{
		NumberOfDocuments:   documents,
		NumberOfTokens:      tokens,
		NumberOfUniqueTerms: terms,
		NumberOfPointers:    pointers,
	}
	if documents > 0 {
		cs.AverageDocumentLength = float64(tokens) / float64(documents)
	}
	return cs
}

// TermVectorTerm is a term inside a term vector.
type TermVectorTerm struct {
	DocumentFrequency  float64
	TotalTermFrequency float64
	TermFrequency      float64
	Term               string
}

// TermVector is a standard format for returning term vectors from statistic sources.
type TermVector []TermVectorTerm

// Length is the number of tokens the vector was made from.
func (tv TermVector) Length() float64 {
	var l float64
	for _, t := range tv {
		l += t.TermFrequency
	}
	return l
}

// StatisticsSource represents the way statistics are calculated for a collection.
type StatisticsSource interface {
	CollectionStatistics() CollectionStatistics

	TermVector(document int) (TermVector, error)
	DocumentLength(document int) (float64, error)

	DocumentFrequency(term string) (float64, error)
	TotalTermFrequency(term string) (float64, error)
	VocabularySize() (float64, error)
}

// InverseDocumentFrequency is the ratio of documents in the collection to the number of documents the term appears
// in, logarithmically smoothed.
func InverseDocumentFrequency(source StatisticsSource, term string) (float64, error) {
	nt, err := source.DocumentFrequency(term)
	if err != nil {
		return 0, err
	}
	return idf(float64(source.CollectionStatistics().NumberOfDocuments), nt), nil
}

func idf(N, nt float64) float64 {
	return math.Log((N + 1) / (nt + 1))
}

// Log2 is the logarithm used by all the divergence from randomness models.
func Log2(x float64) float64 {
	return math.Log2(x)
}
