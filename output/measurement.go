package output

import (
	"sort"
	"strconv"
)

// Measurements are per topic values keyed topic -> measure -> value, as produced by evaluation and query analysis.
type Measurements map[string]map[string]float64

// Topics are the topics of the measurements, sorted.
func (m Measurements) Topics() []string {
	topics := make([]string, 0, len(m))
	for topic := range m {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Names are the union of the measures over every topic, sorted.
func (m Measurements) Names() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, values := range m {
		for name := range values {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Records lays the measurements out as a table: a "Topic" header row, then one row per topic with one column per
// measure. A topic missing a measure gets an empty cell.
func (m Measurements) Records() [][]string {
	names := m.Names()
	records := [][]string{append([]string{"Topic"}, names...)}
	for _, topic := range m.Topics() {
		row := make([]string, len(names)+1)
		row[0] = topic
		for i, name := range names {
			if v, ok := m[topic][name]; ok {
				row[i+1] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		records = append(records, row)
	}
	return records
}
