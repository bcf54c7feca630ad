package eval

import (
	"fmt"
	"math"
	"sort"

	"github.com/hscells/trecresults"
)

// DCG is discounted cumulative gain, cut off at K when K > 0.
type DCG struct{ K int }

// NDCG is DCG normalised by the DCG of the ideal ranking.
type NDCG struct{ K int }

var (
	// AP is average precision.
	AP = ap{}
)

type ap struct{}

func (e ap) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	R := NumRel.Score(results, qrels)
	if R == 0 {
		return 0
	}
	var sum, found float64
	for i, res := range *results {
		if relevant(qrels, res.DocId) {
			found++
			sum += found / float64(i+1)
		}
	}
	return sum / R
}

func (e ap) Name() string {
	return "AP"
}

func gain(qrels trecresults.Qrels, docID string) float64 {
	if qrel, ok := qrels[docID]; ok && qrel.Score > 0 {
		return float64(qrel.Score)
	}
	return 0
}

func (e DCG) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	var score float64
	for i, item := range *results {
		// Compute DCG at a cutoff.
		if e.K != 0 && i >= e.K {
			break
		}
		score += gain(qrels, item.DocId) / math.Log2(float64(i)+2)
	}
	return score
}

func (e DCG) Name() string {
	if e.K > 0 {
		return fmt.Sprintf("DCG@%d", e.K)
	}
	return "DCG"
}

func (e NDCG) Score(results *trecresults.ResultList, qrels trecresults.Qrels) float64 {
	// Compute ideal discounted cumulative gain.
	ideal := make(trecresults.ResultList, 0, len(qrels))
	for _, rel := range qrels {
		ideal = append(ideal, &trecresults.Result{
			Topic: rel.Topic,
			DocId: rel.DocId,
			Score: float64(rel.Score),
		})
	}
	sort.Slice(ideal, func(i, j int) bool {
		if ideal[i].Score != ideal[j].Score {
			return ideal[i].Score > ideal[j].Score
		}
		return ideal[i].DocId < ideal[j].DocId
	})

	idcg := DCG{K: e.K}.Score(&ideal, qrels)
	if idcg == 0 {
		return 0
	}
	return DCG{K: e.K}.Score(results, qrels) / idcg
}

func (e NDCG) Name() string {
	if e.K > 0 {
		return fmt.Sprintf("nDCG@%d", e.K)
	}
	return "nDCG"
}
