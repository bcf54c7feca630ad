package pipeline

import (
	"sort"

	"github.com/hscells/trecresults"
)

// ScoredDocument is a document retrieved for a query.
type ScoredDocument struct {
	ID    int
	DocNo string
	Score float64
}

// Ranking is the row of a pipeline: a query and, once retrieval happened, its ranked documents.
type Ranking struct {
	Query     Query
	Documents []ScoredDocument
}

// NewRankings creates the initial rows of a pipeline, one per query, with no documents.
func NewRankings(queries ...Query) []Ranking {
	rankings := make([]Ranking, len(queries))
	for i, q := range queries {
		rankings[i] = Ranking{Query: q}
	}
	return rankings
}

// Sort orders documents by descending score, ties broken by ascending internal id.
func Sort(docs []ScoredDocument) {
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].Score != docs[j].Score {
			return docs[i].Score > docs[j].Score
		}
		return docs[i].ID < docs[j].ID
	})
}

// Results converts rankings to a trec result list. Ranks start at 0.
func Results(rankings []Ranking, runName string) trecresults.ResultList {
	var results trecresults.ResultList
	for _, r := range rankings {
		for i, d := range r.Documents {
			results = append(results, &trecresults.Result{
				Topic:     r.Query.ID,
				Iteration: "Q0",
				DocId:     d.DocNo,
				Rank:      int64(i),
				Score:     d.Score,
				RunName:   runName,
			})
		}
	}
	return results
}
