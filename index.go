package golden

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/irlab/golden/collection"
	"github.com/irlab/golden/internal/logger"
	"github.com/irlab/golden/rank"
	"github.com/irlab/golden/tracking"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// IndexProvider acquires the index a configuration retrieves from.
type IndexProvider interface {
	Index(ctx context.Context, cfg Configuration) (*rank.Index, error)
}

// IndexOptions configure how indexes are built and opened.
type IndexOptions struct {
	PostingCacheSize int
	DiskCacheBytes   uint64
	// Progress receives the progress bar of index builds when non-nil.
	Progress io.Writer
}

func (o IndexOptions) open() []func(*rank.Index) {
	var options []func(*rank.Index)
	if o.PostingCacheSize > 0 {
		options = append(options, rank.PostingCacheSize(o.PostingCacheSize))
	}
	if o.DiskCacheBytes > 0 {
		options = append(options, rank.DiskCacheBytes(o.DiskCacheBytes))
	}
	return options
}

// GetIndex opens the index at <output>/indexes/<key>, building it from the field of every document of the source
// first if it does not exist. An existing directory is trusted to be complete.
func GetIndex(ctx context.Context, source collection.Source, field collection.Field, output, key string, options IndexOptions) (*rank.Index, error) {
	path := filepath.Join(output, "indexes", key)
	log := logger.FromContext(ctx).With(zap.String("index", path))

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		log.Debug("reusing index")
		return rank.Open(path, options.open()...)
	}

	log.Info("build new index", zap.String("field", field.String()))
	var docs []rank.Document
	err := source.Documents(ctx, func(doc collection.Document) error {
		text, err := collection.Extract(doc, field)
		if err != nil {
			return err
		}
		docs = append(docs, rank.Document{DocNo: doc.ID, Text: text})
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "loading documents")
	}

	tracker := tracking.Start()
	err = rank.Build(ctx, path, docs, rank.BuildOptions{
		Progress: options.Progress,
		Properties: map[string]string{
			"index.dataset": source.Dataset().String(),
			"index.field":   field.String(),
		},
		Finalise: func(dir string) error {
			return tracker.Finish(filepath.Join(dir, tracking.IndexMetadataFile), tracking.Metadata{
				Tag: key,
				ResearchGoal: tracking.ResearchGoal{
					Description: "Inverted and direct index of the " + field.String() + " text representation of the documents of " + source.Dataset().String() + ".",
				},
				Method: tracking.Method{Field: field.String()},
				Data:   tracking.Data{Dataset: source.Dataset().String()},
			})
		},
	})
	if err != nil {
		return nil, errors.Wrapf(err, "building index %s", key)
	}
	log.Info("index built", zap.Int("documents", len(docs)))
	return rank.Open(path, options.open()...)
}

// DiskIndexProvider builds indexes below an output directory, at most once per index key.
type DiskIndexProvider struct {
	Output  string
	Source  collection.Source
	Options IndexOptions
}

// Index implements IndexProvider.
func (p DiskIndexProvider) Index(ctx context.Context, cfg Configuration) (*rank.Index, error) {
	if p.Source.Dataset() != cfg.Dataset {
		return nil, errors.Errorf("source holds %s, configuration asks for %s", p.Source.Dataset(), cfg.Dataset)
	}
	key, err := cfg.IndexKey()
	if err != nil {
		return nil, err
	}
	return GetIndex(ctx, p.Source, cfg.Field, p.Output, key, p.Options)
}
