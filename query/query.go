// Package query loads the topics of a test collection.
package query

// Topic is a benchmark query with a stable identifier.
type Topic struct {
	ID   string
	Text string
}

// QueriesSource loads topics from a path.
type QueriesSource interface {
	Load(path string) ([]Topic, error)
}
