package pipeline

import (
	"sort"
	"strconv"
	"strings"
)

// WeightedTerm is a single term of an analysed query.
type WeightedTerm struct {
	Term   string
	Weight float64
}

// Query stores a query as it moves through a pipeline. Text is the raw query; Terms, when non-empty, is the
// already weighted form produced by a rewrite stage and takes precedence over Text.
type Query struct {
	ID      string
	Text    string
	Terms   []WeightedTerm
	History []Query
}

// NewQuery creates a new pipeline query from raw text.
func NewQuery(id, text string) Query {
	return Query{ID: id, Text: text}
}

// Weighted reports whether the query has been rewritten into weighted terms.
func (q Query) Weighted() bool {
	return len(q.Terms) > 0
}

// Push returns next with the receiver appended to its history.
func (q Query) Push(next Query) Query {
	history := make([]Query, len(q.History), len(q.History)+1)
	copy(history, q.History)
	current := q
	current.History = nil
	next.History = append(history, current)
	return next
}

// Original is the query before any rewriting.
func (q Query) Original() Query {
	if len(q.History) == 0 {
		return q
	}
	return q.History[0]
}

// SortTerms orders terms by descending weight, then lexicographically.
func SortTerms(terms []WeightedTerm) {
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Weight != terms[j].Weight {
			return terms[i].Weight > terms[j].Weight
		}
		return terms[i].Term < terms[j].Term
	})
}

// String renders the query in the weighted term syntax, e.g. "cat^1.000000 dog^0.500000".
func (q Query) String() string {
	if !q.Weighted() {
		return q.Text
	}
	parts := make([]string, len(q.Terms))
	for i, t := range q.Terms {
		parts[i] = t.Term + "^" + strconv.FormatFloat(t.Weight, 'f', 6, 64)
	}
	return strings.Join(parts, " ")
}
