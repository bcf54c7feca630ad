package query

import (
	"github.com/irlab/golden/internal/jsonl"
	"github.com/pkg/errors"
)

type jsonlTopic struct {
	QueryID string `json:"query_id"`
	ID      string `json:"_id"`
	QID     string `json:"qid"`
	Title   string `json:"title"`
	Text    string `json:"text"`
	Query   string `json:"query"`
}

func (t jsonlTopic) topic() Topic {
	id := t.QueryID
	for _, alt := range []string{t.ID, t.QID} {
		if len(id) == 0 {
			id = alt
		}
	}
	text := t.Title
	for _, alt := range []string{t.Text, t.Query} {
		if len(text) == 0 {
			text = alt
		}
	}
	return Topic{ID: id, Text: text}
}

// JSONLQuerySource reads topics from a line-delimited JSON file (ir_datasets and BEIR exports). The title of the
// topic is used as the query.
type JSONLQuerySource struct{}

// Load reads every topic in the file. Topics without an identifier are an error.
func (JSONLQuerySource) Load(path string) ([]Topic, error) {
	r, err := jsonl.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var topics []Topic
	seen := make(map[string]struct{})
	err = jsonl.Decode(r, func(t jsonlTopic) error {
		topic := t.topic()
		if len(topic.ID) == 0 {
			return errors.New("topic without an identifier")
		}
		if _, ok := seen[topic.ID]; ok {
			return errors.Errorf("duplicate topic %s", topic.ID)
		}
		seen[topic.ID] = struct{}{}
		topics = append(topics, topic)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "load topics %s", path)
	}
	return topics, nil
}

// NewJSONLQuerySource creates a new line-delimited JSON query source.
func NewJSONLQuerySource() JSONLQuerySource {
	return JSONLQuerySource{}
}
