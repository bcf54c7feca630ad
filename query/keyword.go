package query

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// KeywordQuerySource is a source of queries where each file in a directory contains one query "as is" and the file
// name is the topic.
type KeywordQuerySource struct{}

// Load takes a directory of queries and reads them.
func (KeywordQuerySource) Load(directory string) ([]Topic, error) {
	files, err := os.ReadDir(directory)
	if err != nil {
		return nil, err
	}

	topics := make([]Topic, 0, len(files))
	for _, f := range files {
		if f.IsDir() || strings.HasPrefix(f.Name(), ".") {
			continue
		}
		source, err := os.ReadFile(filepath.Join(directory, f.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "read query %s", f.Name())
		}
		topics = append(topics, Topic{
			ID:   strings.TrimSuffix(f.Name(), filepath.Ext(f.Name())),
			Text: strings.TrimSpace(string(source)),
		})
	}
	return topics, nil
}

// NewKeywordQuerySource creates a new keyword query source.
func NewKeywordQuerySource() KeywordQuerySource {
	return KeywordQuerySource{}
}
