// Package pipeline provides the stages that retrieval experiments are composed of.
package pipeline

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// Stage transforms the rows of a pipeline. Implementations must not modify the input slice.
type Stage interface {
	Transform(ctx context.Context, rankings []Ranking) ([]Ranking, error)
	String() string
}

// Sequence is a composition of stages applied left to right.
type Sequence []Stage

// Then appends stages to the sequence.
func (s Sequence) Then(stages ...Stage) Sequence {
	next := make(Sequence, 0, len(s)+len(stages))
	next = append(next, s...)
	return append(next, stages...)
}

// Transform applies every stage in order.
func (s Sequence) Transform(ctx context.Context, rankings []Ranking) ([]Ranking, error) {
	var err error
	for _, stage := range s {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rankings, err = stage.Transform(ctx, rankings)
		if err != nil {
			return nil, errors.Wrapf(err, "stage %s", stage)
		}
	}
	return rankings, nil
}

// String renders the sequence with ">>" between stages.
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, stage := range s {
		parts[i] = stage.String()
	}
	return strings.Join(parts, " >> ")
}

// Apply runs a function over every row, copying the input.
func Apply(ctx context.Context, rankings []Ranking, fn func(Ranking) (Ranking, error)) ([]Ranking, error) {
	out := make([]Ranking, len(rankings))
	for i, r := range rankings {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var err error
		out[i], err = fn(r)
		if err != nil {
			return nil, errors.Wrapf(err, "query %s", r.Query.ID)
		}
	}
	return out, nil
}
