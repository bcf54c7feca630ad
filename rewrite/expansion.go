// Package rewrite contains the pipeline stages that rewrite queries: tokenisation, pseudo-relevance feedback
// expansion, and resetting to the original query.
package rewrite

import (
	"strings"

	"github.com/irlab/golden/preprocess"
	"github.com/irlab/golden/stats"
	"github.com/pkg/errors"
)

// ErrUnsupportedExpansion is returned for expansion methods outside the enumeration.
var ErrUnsupportedExpansion = errors.New("unsupported query expansion")

// Expansion is a query expansion method.
type Expansion uint8

const (
	NoExpansion Expansion = iota + 1
	Bo1Expansion
	RM3Expansion
)

// Expansions is every supported expansion method.
var Expansions = []Expansion{NoExpansion, Bo1Expansion, RM3Expansion}

func (e Expansion) String() string {
	switch e {
	case NoExpansion:
		return "no-qe"
	case Bo1Expansion:
		return "Bo1"
	case RM3Expansion:
		return "RM3"
	}
	return "unknown"
}

// ParseExpansion matches an expansion method case-insensitively, e.g. "bo1", "Bo1", "RM3" or "no-qe".
func ParseExpansion(s string) (Expansion, error) {
	for _, e := range Expansions {
		if strings.EqualFold(s, e.String()) {
			return e, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedExpansion, "%q", s)
}

// Validate returns an error unless e is a member of the enumeration.
func (e Expansion) Validate() error {
	switch e {
	case NoExpansion, Bo1Expansion, RM3Expansion:
		return nil
	}
	return errors.Wrapf(ErrUnsupportedExpansion, "%d", e)
}

func (e Expansion) MarshalText() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return []byte(e.String()), nil
}

func (e *Expansion) UnmarshalText(b []byte) error {
	v, err := ParseExpansion(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// FeedbackSource is what expansion models read feedback documents from.
type FeedbackSource interface {
	stats.StatisticsSource
	Analyser() preprocess.Analyser
}

// Parameters configure the expansion models.
type Parameters struct {
	FeedbackDocuments int     `yaml:"feedback_documents"`
	FeedbackTerms     int     `yaml:"feedback_terms"`
	MinDocuments      int     `yaml:"min_documents"`
	Lambda            float64 `yaml:"rm3_lambda"`
}

// DefaultParameters are the usual Terrier settings: 3 feedback documents, 10 expansion terms, terms must occur in
// at least 2 feedback documents, and RM3 keeps 60% of the original query.
func DefaultParameters() Parameters {
	return Parameters{
		FeedbackDocuments: 3,
		FeedbackTerms:     10,
		MinDocuments:      2,
		Lambda:            0.6,
	}
}

// Validate checks the parameters are in range.
func (p Parameters) Validate() error {
	switch {
	case p.FeedbackDocuments < 1:
		return errors.Errorf("feedback documents must be positive, got %d", p.FeedbackDocuments)
	case p.FeedbackTerms < 1:
		return errors.Errorf("feedback terms must be positive, got %d", p.FeedbackTerms)
	case p.MinDocuments < 1:
		return errors.Errorf("minimum documents must be positive, got %d", p.MinDocuments)
	case p.Lambda < 0 || p.Lambda > 1:
		return errors.Errorf("lambda must be within [0,1], got %f", p.Lambda)
	}
	return nil
}

// NewQueryExpansion creates the stage for an expansion method. NoExpansion has no stage.
func NewQueryExpansion(source FeedbackSource, e Expansion, params Parameters) (Stage, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	switch e {
	case Bo1Expansion:
		return &Bo1{source: source, params: params}, nil
	case RM3Expansion:
		return &RM3{source: source, params: params}, nil
	case NoExpansion:
		return nil, errors.Wrap(ErrUnsupportedExpansion, "no-qe has no expansion stage")
	}
	return nil, e.Validate()
}
