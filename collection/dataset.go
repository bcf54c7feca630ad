package collection

import (
	"context"
	"path/filepath"

	"github.com/irlab/golden/internal/jsonl"
	"github.com/irlab/golden/query"
	"github.com/pkg/errors"
)

// ErrUnsupportedDataset is returned for dataset names outside of the known datasets.
var ErrUnsupportedDataset = errors.New("unsupported dataset")

// Dataset identifies a test collection.
type Dataset string

const (
	// RadboudValidation is the validation collection of the Radboud lab.
	RadboudValidation Dataset = "radboud-validation-20251114-training"
	// SpotCheck is the spot-check collection.
	SpotCheck Dataset = "spot-check-20251122-training"
)

// Datasets lists every supported dataset.
var Datasets = []Dataset{RadboudValidation, SpotCheck}

func (d Dataset) String() string {
	return string(d)
}

// ParseDataset returns the dataset with the given name.
func ParseDataset(s string) (Dataset, error) {
	for _, d := range Datasets {
		if string(d) == s {
			return d, nil
		}
	}
	return "", errors.Wrapf(ErrUnsupportedDataset, "%q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dataset) UnmarshalText(b []byte) error {
	v, err := ParseDataset(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Source provides the documents and topics of a dataset.
type Source interface {
	Dataset() Dataset
	Documents(ctx context.Context, fn func(Document) error) error
	Topics(ctx context.Context) ([]query.Topic, error)
}

// Directory is a dataset exported to disk as
//
//	<root>/<dataset>/documents.jsonl[.gz]
//	<root>/<dataset>/queries.jsonl[.gz]
//	<root>/<dataset>/qrels.txt
type Directory struct {
	Root    string
	dataset Dataset
}

// NewDirectory creates a source for a dataset stored below root.
func NewDirectory(root string, dataset Dataset) Directory {
	return Directory{Root: root, dataset: dataset}
}

// Dataset is the dataset this directory holds.
func (d Directory) Dataset() Dataset {
	return d.dataset
}

// Path is the directory of the dataset.
func (d Directory) Path() string {
	return filepath.Join(d.Root, string(d.dataset))
}

// QrelsPath is the path to the relevance judgements of the dataset.
func (d Directory) QrelsPath() string {
	return filepath.Join(d.Path(), "qrels.txt")
}

type documentRecord struct {
	DocID       string `json:"doc_id"`
	ID          string `json:"_id"`
	DefaultText string `json:"default_text"`
	Text        string `json:"text"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r documentRecord) document() Document {
	doc := Document{
		ID:          r.DocID,
		Text:        r.DefaultText,
		Title:       r.Title,
		Description: r.Description,
	}
	if len(doc.ID) == 0 {
		doc.ID = r.ID
	}
	if len(doc.Text) == 0 {
		doc.Text = r.Text
	}
	return doc
}

// Documents streams every document of the dataset to fn in file order.
func (d Directory) Documents(ctx context.Context, fn func(Document) error) error {
	path, err := jsonl.Find(
		filepath.Join(d.Path(), "documents.jsonl.gz"),
		filepath.Join(d.Path(), "documents.jsonl"),
	)
	if err != nil {
		return errors.Wrapf(err, "documents of %s", d.dataset)
	}
	r, err := jsonl.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	seen := make(map[string]struct{})
	err = jsonl.Decode(r, func(rec documentRecord) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc := rec.document()
		if len(doc.ID) == 0 {
			return errors.New("document without an identifier")
		}
		if _, ok := seen[doc.ID]; ok {
			return errors.Errorf("duplicate document %s", doc.ID)
		}
		seen[doc.ID] = struct{}{}
		return fn(doc)
	})
	return errors.Wrapf(err, "load documents %s", path)
}

// Topics loads the topics of the dataset.
func (d Directory) Topics(ctx context.Context) ([]query.Topic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := jsonl.Find(
		filepath.Join(d.Path(), "queries.jsonl.gz"),
		filepath.Join(d.Path(), "queries.jsonl"),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "topics of %s", d.dataset)
	}
	return query.NewJSONLQuerySource().Load(path)
}
