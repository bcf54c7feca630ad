package golden

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/irlab/golden/analysis"
	"github.com/irlab/golden/collection"
	"github.com/irlab/golden/internal/logger"
	"github.com/irlab/golden/output"
	"github.com/irlab/golden/pipeline"
	"github.com/irlab/golden/rank"
	"github.com/irlab/golden/rewrite"
	"github.com/irlab/golden/tracking"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Outcome reports what a run did.
type Outcome struct {
	Tag          string
	RunPath      string
	MetadataPath string
	Skipped      bool
	Pipeline     string
	Topics       int
	Results      int
}

// Runner executes configurations against a dataset.
type Runner struct {
	Output     string
	Source     collection.Source
	Indexes    IndexProvider
	Parameters rewrite.Parameters
}

// NewRunner creates a runner writing below output that builds its indexes from source on demand.
func NewRunner(output string, source collection.Source, params rewrite.Parameters, options IndexOptions) Runner {
	return Runner{
		Output:     output,
		Source:     source,
		Indexes:    DiskIndexProvider{Output: output, Source: source, Options: options},
		Parameters: params,
	}
}

// Run executes a configuration. If its run file already exists nothing is done; otherwise the index is acquired,
// the pipeline composed and evaluated over every topic, the metadata recorded, and finally the run file written.
func (r Runner) Run(ctx context.Context, cfg Configuration) (Outcome, error) {
	cfg = cfg.Normalise()
	tag, err := cfg.Tag()
	if err != nil {
		return Outcome{}, err
	}
	dir, err := cfg.RunDir(r.Output)
	if err != nil {
		return Outcome{}, err
	}
	outcome := Outcome{
		Tag:          tag,
		RunPath:      filepath.Join(dir, output.RunFile),
		MetadataPath: filepath.Join(dir, tracking.MetadataFile),
	}
	log := logger.FromContext(ctx).With(zap.String("tag", tag), zap.String("dataset", cfg.Dataset.String()))

	if _, err := os.Stat(outcome.RunPath); err == nil {
		log.Info("run exists, skipping", zap.String("path", outcome.RunPath))
		outcome.Skipped = true
		return outcome, nil
	} else if !os.IsNotExist(err) {
		return outcome, err
	}

	index, err := r.Indexes.Index(ctx, cfg)
	if err != nil {
		return outcome, err
	}

	topics, err := r.Source.Topics(ctx)
	if err != nil {
		return outcome, errors.Wrap(err, "loading topics")
	}
	queries := make([]pipeline.Query, len(topics))
	for i, t := range topics {
		queries[i] = pipeline.NewQuery(t.ID, t.Text)
	}

	predictors, err := analysis.Measure(analysis.DefaultMeasurements, queries, index.Analyser(), index)
	if err != nil {
		return outcome, errors.Wrap(err, "measuring topics")
	}

	seq, err := Compose(index, cfg, r.Parameters)
	if err != nil {
		return outcome, err
	}
	outcome.Pipeline = seq.String()
	outcome.Topics = len(topics)
	log.Info("running", zap.Stringer("pipeline", seq), zap.Int("topics", len(topics)))

	m := r.metadata(cfg, tag, seq, index.Property(rank.AnalyserProperty), len(topics))
	m.Data.QueryPerformance = analysis.Average(predictors)

	var rankings []pipeline.Ranking
	err = tracking.Track(outcome.MetadataPath, m, func() error {
		var err error
		rankings, err = seq.Transform(ctx, pipeline.NewRankings(queries...))
		return err
	})
	if err != nil {
		return outcome, err
	}

	results := pipeline.Results(rankings, tag)
	outcome.Results = len(results)
	if err := (output.TrecResults{Path: outcome.RunPath, Results: results}).Write(); err != nil {
		return outcome, err
	}
	log.Info("run written", zap.String("path", outcome.RunPath), zap.Int("results", len(results)))
	return outcome, nil
}

func (r Runner) metadata(cfg Configuration, tag string, seq pipeline.Sequence, analyser string, topics int) tracking.Metadata {
	method := tracking.Method{
		Strategy:      cfg.Strategy.String(),
		Field:         cfg.Field.String(),
		FirstModel:    cfg.FirstModel.String(),
		Expansion:     cfg.Expansion.String(),
		LastModel:     cfg.LastModel.String(),
		Reformulation: cfg.Reformulation.String(),
		NumResults:    int(cfg.Limit),
		Pipeline:      seq.String(),
		Analyser:      analyser,
	}
	if cfg.Expansion != rewrite.NoExpansion {
		method.Parameters = map[string]float64{
			"feedback_documents": float64(r.Parameters.FeedbackDocuments),
			"feedback_terms":     float64(r.Parameters.FeedbackTerms),
			"min_documents":      float64(r.Parameters.MinDocuments),
		}
		if cfg.Expansion == rewrite.RM3Expansion {
			method.Parameters["rm3_lambda"] = r.Parameters.Lambda
		}
	}
	return tracking.Metadata{
		Tag:          tag,
		ResearchGoal: tracking.ResearchGoal{Description: Describe(cfg, seq)},
		Method:       method,
		Data:         tracking.Data{Dataset: cfg.Dataset.String(), Topics: topics},
	}
}

// Describe is the prose description of a run recorded in its metadata.
func Describe(cfg Configuration, seq pipeline.Sequence) string {
	cfg = cfg.Normalise()
	switch {
	case cfg.Strategy == PreExpansion || cfg.Expansion == rewrite.NoExpansion:
		return fmt.Sprintf("This is a retriever using the retrieval model %s retrieving on the %s text representation "+
			"of the documents with query expansion %s. The pipeline is %s. Everything else is set to the defaults.",
			cfg.FirstModel, cfg.Field, cfg.Expansion, seq)
	}
	reset := "the expanded query is kept"
	if cfg.Reformulation == pipeline.WithReformulation {
		reset = "the original query is restored afterwards"
	}
	return fmt.Sprintf("This is a retriever that first retrieves with %s on the %s text representation of the "+
		"documents, expands the query with %s, and retrieves the top %d documents with %s; %s. The pipeline is %s. "+
		"Everything else is set to the defaults.",
		cfg.FirstModel, cfg.Field, cfg.Expansion, cfg.Limit, cfg.LastModel, reset, seq)
}
