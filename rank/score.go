package rank

import (
	"math"

	"github.com/irlab/golden/stats"
)

// recLog2E is 1/ln(2).
const recLog2E = 1.0 / math.Ln2

// TermStatistics are the statistics of a query term that weighting models need.
type TermStatistics struct {
	DocumentFrequency  float64
	TotalTermFrequency float64
	Collection         stats.CollectionStatistics
}

// Scorer computes the contribution of a single query term to a document score.
type Scorer interface {
	Score(tf, docLength, keyFrequency float64, t TermStatistics) float64
}

// NewScorer creates the scorer for a weighting model with its default parameters.
func NewScorer(m Model) (Scorer, error) {
	switch m {
	case BM25:
		return BM25Scorer{K1: 1.2, K3: 8, B: 0.5}, nil
	case DPH:
		return DPHScorer{}, nil
	case PL2:
		return PL2Scorer{C: 1}, nil
	case TFIDF:
		return TFIDFScorer{K1: 1.2, B: 0.75}, nil
	}
	return nil, m.Validate()
}

// BM25Scorer is the Okapi BM25 probabilistic model.
type BM25Scorer struct {
	K1 float64
	K3 float64
	B  float64
}

func (s BM25Scorer) Score(tf, docLength, keyFrequency float64, t TermStatistics) float64 {
	N := float64(t.Collection.NumberOfDocuments)
	K := s.K1 * ((1 - s.B) + s.B*docLength/t.Collection.AverageDocumentLength)
	idf := stats.Log2((N - t.DocumentFrequency + 0.5) / (t.DocumentFrequency + 0.5))
	return idf * ((s.K1 + 1) * tf / (K + tf)) * ((s.K3 + 1) * keyFrequency / (s.K3 + keyFrequency))
}

// TFIDFScorer is Robertson's tf with the Sparck Jones idf.
type TFIDFScorer struct {
	K1 float64
	B  float64
}

func (s TFIDFScorer) Score(tf, docLength, keyFrequency float64, t TermStatistics) float64 {
	N := float64(t.Collection.NumberOfDocuments)
	robertson := s.K1 * tf / (tf + s.K1*(1-s.B+s.B*docLength/t.Collection.AverageDocumentLength))
	idf := stats.Log2(N/t.DocumentFrequency + 1)
	return keyFrequency * robertson * idf
}

// PL2Scorer is the Poisson model with Laplace after-effect and normalisation 2.
type PL2Scorer struct {
	C float64
}

func (s PL2Scorer) Score(tf, docLength, keyFrequency float64, t TermStatistics) float64 {
	TF := tf * stats.Log2(1+(s.C*t.Collection.AverageDocumentLength)/docLength)
	norm := 1 / (TF + 1)
	f := t.TotalTermFrequency / float64(t.Collection.NumberOfDocuments)
	return norm * keyFrequency * (TF*stats.Log2(1/f) +
		f*recLog2E +
		0.5*stats.Log2(2*math.Pi*TF) +
		TF*(stats.Log2(TF)-recLog2E))
}

// DPHScorer is the parameter free hypergeometric model.
type DPHScorer struct{}

func (DPHScorer) Score(tf, docLength, keyFrequency float64, t TermStatistics) float64 {
	f := tf / docLength
	if f >= 1 {
		return 0
	}
	norm := (1 - f) * (1 - f) / (tf + 1)
	N := float64(t.Collection.NumberOfDocuments)
	return keyFrequency * norm * (tf*stats.Log2((tf*t.Collection.AverageDocumentLength/docLength)*(N/t.TotalTermFrequency)) +
		0.5*stats.Log2(2*math.Pi*tf*(1-f)))
}
