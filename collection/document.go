// Package collection provides the documents of a test collection and the representations of them that get indexed.
package collection

import (
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupportedField is returned for any text field outside of the known representations.
var ErrUnsupportedField = errors.New("unsupported text field")

// Document is a single record of a dataset. It is immutable once loaded.
type Document struct {
	ID          string `json:"doc_id"`
	Text        string `json:"text"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DefaultText is the default text representation of a document. Datasets that ship a pre-computed text use it as is,
// otherwise the title and description are joined.
func (d Document) DefaultText() string {
	if len(d.Text) > 0 {
		return d.Text
	}
	parts := make([]string, 0, 2)
	for _, p := range []string{d.Title, d.Description} {
		if len(p) > 0 {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "\n")
}

// Field is a text representation of a document that can be indexed.
type Field uint8

const (
	// DefaultText is the full text of the document.
	DefaultText Field = iota + 1
	// Title is only the title of the document.
	Title
	// Description is only the description of the document.
	Description
)

// Fields lists every supported field.
var Fields = []Field{DefaultText, Title, Description}

func (f Field) String() string {
	switch f {
	case DefaultText:
		return "default_text"
	case Title:
		return "title"
	case Description:
		return "description"
	}
	return "unknown"
}

// ParseField returns the field with the given name.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedField, "%q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (f Field) MarshalText() ([]byte, error) {
	if _, err := ParseField(f.String()); err != nil {
		return nil, err
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Field) UnmarshalText(b []byte) error {
	v, err := ParseField(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Extract returns the text of the document for the given field and never the content of another field.
func Extract(doc Document, field Field) (string, error) {
	switch field {
	case DefaultText:
		return doc.DefaultText(), nil
	case Title:
		return doc.Title, nil
	case Description:
		return doc.Description, nil
	}
	return "", errors.Wrapf(ErrUnsupportedField, "field %d", field)
}
