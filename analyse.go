package golden

import (
	"context"

	"github.com/irlab/golden/analysis"
	"github.com/irlab/golden/pipeline"
	"github.com/pkg/errors"
)

// Analyse computes pre-retrieval query performance predictors for every topic against the index of a
// configuration, topic -> measurement -> value. The index is built if it does not exist yet.
func (r Runner) Analyse(ctx context.Context, cfg Configuration, measurements []analysis.Measurement) (map[string]map[string]float64, error) {
	cfg = cfg.Normalise()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	index, err := r.Indexes.Index(ctx, cfg)
	if err != nil {
		return nil, err
	}
	topics, err := r.Source.Topics(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading topics")
	}
	queries := make([]pipeline.Query, len(topics))
	for i, t := range topics {
		queries[i] = pipeline.NewQuery(t.ID, t.Text)
	}
	return analysis.Measure(measurements, queries, index.Analyser(), index)
}
