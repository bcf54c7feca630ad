package eval

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownMeasure is returned by ParseMeasures for names it does not know.
var ErrUnknownMeasure = errors.New("unknown measure")

// DefaultMeasures are reported when no measures are requested.
var DefaultMeasures = []Evaluator{
	NumRet, NumRel, NumRelRet, PrecisionEvaluator, RecallEvaluator, AP, PrecisionAtK{K: 10}, NDCG{K: 10}, NDCG{},
}

// ParseMeasure resolves a measure name such as "AP", "P@10", "nDCG@10", "F1Measure" or "Recall".
func ParseMeasure(name string) (Evaluator, error) {
	fixed := []Evaluator{NumRet, NumRel, NumRelRet, PrecisionEvaluator, RecallEvaluator, AP, NDCG{}, DCG{}}
	for _, e := range fixed {
		if strings.EqualFold(name, e.Name()) {
			return e, nil
		}
	}

	prefix, arg, ok := strings.Cut(name, "@")
	if ok {
		k, err := strconv.Atoi(arg)
		if err != nil || k <= 0 {
			return nil, errors.Wrapf(ErrUnknownMeasure, "%q: invalid cut-off", name)
		}
		switch strings.ToLower(prefix) {
		case "p":
			return PrecisionAtK{K: k}, nil
		case "ndcg":
			return NDCG{K: k}, nil
		case "dcg":
			return DCG{K: k}, nil
		}
		return nil, errors.Wrapf(ErrUnknownMeasure, "%q", name)
	}

	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "f") && strings.HasSuffix(lower, "measure") {
		beta, err := strconv.ParseFloat(name[1:len(name)-len("measure")], 64)
		if err == nil && beta > 0 {
			return FMeasure{Beta: beta}, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownMeasure, "%q", name)
}

// ParseMeasures resolves a list of measure names. An empty list yields DefaultMeasures.
func ParseMeasures(names []string) ([]Evaluator, error) {
	if len(names) == 0 {
		return DefaultMeasures, nil
	}
	evaluators := make([]Evaluator, len(names))
	for i, name := range names {
		e, err := ParseMeasure(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		evaluators[i] = e
	}
	return evaluators, nil
}
