// Package golden runs reproducible retrieval experiments: it derives a canonical tag for a configuration, builds
// or reuses the index, composes the retrieval pipeline, and persists the run with its provenance.
package golden

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/irlab/golden/collection"
	"github.com/irlab/golden/pipeline"
	"github.com/irlab/golden/rank"
	"github.com/irlab/golden/rewrite"
	"github.com/pkg/errors"
)

var (
	// ErrTagCollision is returned when two distinct configurations would share a tag or index key.
	ErrTagCollision = errors.New("tag collision")
	// ErrUnknownTag is returned by ParseTag for tags no configuration renders.
	ErrUnknownTag = errors.New("unknown tag")
	// ErrUnsupportedStrategy is returned for strategies outside the enumeration.
	ErrUnsupportedStrategy = errors.New("unsupported strategy")
)

// Strategy selects how expansion is arranged around retrieval.
type Strategy uint8

const (
	// RetrieveExpandRetrieve retrieves with a first model, expands, and retrieves again with a last model.
	RetrieveExpandRetrieve Strategy = iota + 1
	// PreExpansion expands the topics with one model and retrieves the expanded topics with the same model.
	PreExpansion
)

// Strategies is every supported strategy.
var Strategies = []Strategy{RetrieveExpandRetrieve, PreExpansion}

func (s Strategy) String() string {
	switch s {
	case RetrieveExpandRetrieve:
		return "retrieve-expand-retrieve"
	case PreExpansion:
		return "pre-expansion"
	}
	return "unknown"
}

// Validate returns an error unless s is a member of the enumeration.
func (s Strategy) Validate() error {
	switch s {
	case RetrieveExpandRetrieve, PreExpansion:
		return nil
	}
	return errors.Wrapf(ErrUnsupportedStrategy, "%d", s)
}

// Configuration is every option of a run.
type Configuration struct {
	Dataset       collection.Dataset
	Field         collection.Field
	FirstModel    rank.Model
	LastModel     rank.Model
	Expansion     rewrite.Expansion
	Reformulation pipeline.Reformulation
	Limit         rank.ResultLimit
	Strategy      Strategy
}

// Normalise fills unset optional values and clears the values a configuration ignores, so that configurations
// producing the same run compare equal. Required values are left alone for Validate to report.
func (c Configuration) Normalise() Configuration {
	if c.Strategy == 0 {
		c.Strategy = RetrieveExpandRetrieve
	}
	if c.Limit == 0 {
		c.Limit = rank.DefaultResultLimit
	}
	if c.Reformulation == 0 {
		c.Reformulation = pipeline.NoReformulation
	}
	if c.LastModel == 0 {
		c.LastModel = c.FirstModel
	}
	switch {
	case c.Strategy == PreExpansion:
		c.LastModel = c.FirstModel
		c.Reformulation = pipeline.NoReformulation
		c.Limit = rank.DefaultResultLimit
	case c.Expansion == rewrite.NoExpansion:
		c.LastModel = c.FirstModel
		c.Reformulation = pipeline.NoReformulation
	}
	return c
}

// Validate checks every option is a member of its enumeration.
func (c Configuration) Validate() error {
	if _, err := collection.ParseDataset(string(c.Dataset)); err != nil {
		return err
	}
	return c.validateOptions()
}

func (c Configuration) validateOptions() error {
	if _, err := c.Field.MarshalText(); err != nil {
		return err
	}
	for _, err := range []error{
		c.FirstModel.Validate(),
		c.LastModel.Validate(),
		c.Expansion.Validate(),
		c.Reformulation.Validate(),
		c.Limit.Validate(),
		c.Strategy.Validate(),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// legacyExpansion is how the pre-expansion arm spells expansion methods in its tags.
func legacyExpansion(e rewrite.Expansion) (string, error) {
	switch e {
	case rewrite.NoExpansion:
		return "no-qe", nil
	case rewrite.Bo1Expansion:
		return "bo1", nil
	case rewrite.RM3Expansion:
		return "RM3", nil
	}
	return "", e.Validate()
}

// render is the single serialiser of run tags and index keys. The configuration must be normalised.
func render(c Configuration) (tag, indexKey string, err error) {
	switch c.Strategy {
	case RetrieveExpandRetrieve:
		indexKey = fmt.Sprintf("%s-on-%s", c.Dataset, c.Field)
		switch c.Expansion {
		case rewrite.NoExpansion:
			tag = fmt.Sprintf("pyterrier-on-%s-with-%s-num_results-%d", c.Field, c.FirstModel, c.Limit)
		case rewrite.Bo1Expansion, rewrite.RM3Expansion:
			tag = fmt.Sprintf("pyterrier-on-%s-with-%s-%s-%s-%s-num_results-%d",
				c.Field, c.FirstModel, c.Expansion, c.LastModel, c.Reformulation, c.Limit)
		default:
			return "", "", c.Expansion.Validate()
		}
	case PreExpansion:
		qe, err := legacyExpansion(c.Expansion)
		if err != nil {
			return "", "", err
		}
		tag = fmt.Sprintf("pyterrier-%s-on-%s-with-%s", c.FirstModel, c.Field, qe)
		indexKey = fmt.Sprintf("%s-on-%s-with-%s", c.Dataset, c.Field, qe)
	default:
		return "", "", c.Strategy.Validate()
	}
	return tag, indexKey, nil
}

// Space enumerates every normalised configuration for a dataset, without duplicates.
func Space(dataset collection.Dataset) []Configuration {
	seen := make(map[Configuration]struct{})
	var space []Configuration
	for _, s := range Strategies {
		for _, f := range collection.Fields {
			for _, first := range rank.Models {
				for _, last := range rank.Models {
					for _, e := range rewrite.Expansions {
						for _, r := range pipeline.Reformulations {
							for _, l := range rank.ResultLimits {
								c := Configuration{
									Dataset: dataset, Field: f, FirstModel: first, LastModel: last,
									Expansion: e, Reformulation: r, Limit: l, Strategy: s,
								}.Normalise()
								if _, ok := seen[c]; ok {
									continue
								}
								seen[c] = struct{}{}
								space = append(space, c)
							}
						}
					}
				}
			}
		}
	}
	return space
}

type tagTable struct {
	once  sync.Once
	err   error
	byTag map[string]Configuration
}

var tags tagTable

// checkTags renders every configuration of the closed option space once and verifies no two distinct
// configurations share a tag, and no two distinct indexes share a key.
func checkTags() error {
	tags.once.Do(func() {
		tags.byTag = make(map[string]Configuration)
		indexes := make(map[string]Configuration)
		for _, d := range collection.Datasets {
			for _, c := range Space(d) {
				tag, key, err := render(c)
				if err != nil {
					tags.err = err
					return
				}
				// Tags do not include the dataset.
				t := c
				t.Dataset = ""
				if prev, ok := tags.byTag[tag]; ok && prev != t {
					tags.err = errors.Wrapf(ErrTagCollision, "run tag %s: %+v and %+v", tag, prev, t)
					return
				}
				tags.byTag[tag] = t

				ic := Configuration{Dataset: c.Dataset, Field: c.Field, Strategy: c.Strategy}
				if c.Strategy == PreExpansion {
					ic.Expansion = c.Expansion
				}
				if prev, ok := indexes[key]; ok && prev != ic {
					tags.err = errors.Wrapf(ErrTagCollision, "index key %s: %+v and %+v", key, prev, ic)
					return
				}
				indexes[key] = ic
			}
		}
	})
	return tags.err
}

// Tag is the canonical name of the run of a configuration.
func (c Configuration) Tag() (string, error) {
	tag, _, err := c.keys()
	return tag, err
}

// IndexKey names the index a configuration retrieves from.
func (c Configuration) IndexKey() (string, error) {
	_, key, err := c.keys()
	return key, err
}

func (c Configuration) keys() (string, string, error) {
	c = c.Normalise()
	if err := c.Validate(); err != nil {
		return "", "", err
	}
	if err := checkTags(); err != nil {
		return "", "", err
	}
	return render(c)
}

// RunDir is the directory the run of a configuration is written to, <output>/runs/<dataset>/<tag>.
func (c Configuration) RunDir(output string) (string, error) {
	tag, err := c.Tag()
	if err != nil {
		return "", err
	}
	return filepath.Join(output, "runs", string(c.Dataset), tag), nil
}

// IndexDir is the directory of the index of a configuration, <output>/indexes/<key>.
func (c Configuration) IndexDir(output string) (string, error) {
	key, err := c.IndexKey()
	if err != nil {
		return "", err
	}
	return filepath.Join(output, "indexes", key), nil
}

// ParseTag recovers the normalised configuration a tag was rendered from.
func ParseTag(dataset collection.Dataset, tag string) (Configuration, error) {
	if _, err := collection.ParseDataset(string(dataset)); err != nil {
		return Configuration{}, err
	}
	if err := checkTags(); err != nil {
		return Configuration{}, err
	}
	c, ok := tags.byTag[tag]
	if !ok {
		return Configuration{}, errors.Wrapf(ErrUnknownTag, "%q", tag)
	}
	c.Dataset = dataset
	return c, nil
}
