package eval

import (
	"fmt"
	"math"

	"github.com/hscells/trecresults"
)

type recallEvaluator struct{}
type precisionEvaluator struct{}
type numRel struct{}
type numRet struct{}
type numRelRet struct{}

// FMeasure computes f-measure, with the beta parameter controlling the precision and recall trade-off.
type FMeasure struct {
	Beta float64
}

// PrecisionAtK is precision computed over the first K results.
type PrecisionAtK struct {
	K int
}

var (
	// RecallEvaluator calculates recall.
	RecallEvaluator = recallEvaluator{}
	// PrecisionEvaluator calculates precision.
	PrecisionEvaluator = precisionEvaluator{}
	// NumRel is the number of relevant documents.
	NumRel = numRel{}
	// NumRet is the number of retrieved documents.
	NumRet = numRet{}
	// NumRelRet is the number of relevant documents retrieved.
	NumRelRet = numRelRet{}

	// F1Measure is f-measure with beta=1.
	F1Measure = FMeasure{Beta: 1}
)

func relevant(qrels trecresults.Qrels, docID string) bool {
	qrel, ok := qrels[docID]
	return ok && qrel.Score > RelevanceGrade
}

func (rec recallEvaluator) Name() string {
	return "Recall"
}

func (rec recallEvaluator) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	n := NumRel.Score(results, qrels)
	if n == 0 {
		return 0.0
	}
	return NumRelRet.Score(results, qrels) / n
}

func (rec precisionEvaluator) Name() string {
	return "Precision"
}

func (rec precisionEvaluator) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	n := NumRet.Score(results, qrels)
	if n == 0 {
		return 0.0
	}
	return NumRelRet.Score(results, qrels) / n
}

func (numRel) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	n := 0.0
	for _, qrel := range qrels {
		if qrel.Score > RelevanceGrade {
			n++
		}
	}
	return n
}

func (numRel) Name() string {
	return "NumRel"
}

func (numRet) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	return float64(len(*results))
}

func (numRet) Name() string {
	return "NumRet"
}

func (numRelRet) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	n := 0.0
	for _, result := range *results {
		if relevant(qrels, result.DocId) {
			n++
		}
	}
	return n
}

func (numRelRet) Name() string {
	return "NumRelRet"
}

// Score uses the beta parameter to compute f-measure.
func (f FMeasure) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	precision := PrecisionEvaluator.Score(results, qrels)
	recall := RecallEvaluator.Score(results, qrels)
	if precision == 0 || recall == 0 {
		return 0
	}
	betaSquared := math.Pow(f.Beta, 2)
	return ((1 + betaSquared) * (precision * recall)) / ((betaSquared * precision) + recall)
}

// Name calculates the name of the f-measure with beta parameter.
func (f FMeasure) Name() string {
	return fmt.Sprintf("F%vMeasure", f.Beta)
}

// Score is the fraction of the first K results that are relevant. Missing results count as non-relevant.
func (p PrecisionAtK) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	if p.K <= 0 {
		return 0
	}
	n := 0.0
	for i, result := range *results {
		if i >= p.K {
			break
		}
		if relevant(qrels, result.DocId) {
			n++
		}
	}
	return n / float64(p.K)
}

func (p PrecisionAtK) Name() string {
	return fmt.Sprintf("P@%d", p.K)
}
