package main

import (
	"fmt"
	"strings"

	"github.com/irlab/golden"
	"github.com/irlab/golden/analysis"
	"github.com/irlab/golden/cmd"
	"github.com/irlab/golden/output"
	"github.com/irlab/golden/rank"
	"github.com/irlab/golden/rewrite"
	"github.com/pkg/errors"
)

var (
	name    = "analyse"
	version = "16.Oct.2026"
	author  = "IR Lab"
)

type args struct {
	cmd.Common
	cmd.Retrieval
	Measurements []string `arg:"--measurements" help:"predictors to compute, e.g. AvgIDF MaxIDF AvgICTF [default: all]"`
	Format       string   `arg:"--format" default:"json" help:"json or csv"`
	Summary      bool     `arg:"--summary" help:"report the mean of every predictor instead of per topic values"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s
Compute pre-retrieval query performance predictors of the topics of a dataset.`, name, author, version)
}

func measurements(names []string) ([]analysis.Measurement, error) {
	if len(names) == 0 {
		return analysis.DefaultMeasurements, nil
	}
	all := []analysis.Measurement{analysis.SumIDF{}}
	all = append(all, analysis.DefaultMeasurements...)
	var ms []analysis.Measurement
	for _, n := range names {
		found := false
		for _, m := range all {
			if strings.EqualFold(n, m.Name()) {
				ms = append(ms, m)
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Errorf("unknown measurement %q", n)
		}
	}
	return ms, nil
}

func main() {
	var args args
	cmd.Parse(&args)

	env, err := cmd.Setup(args.Common)
	if err != nil {
		cmd.Fatal(err)
	}
	defer env.Close()

	formatter, err := output.EvaluationFormat(args.Format)
	if err != nil {
		env.Fail(err)
	}
	ms, err := measurements(args.Measurements)
	if err != nil {
		env.Fail(err)
	}

	values, err := env.Runner().Analyse(env.Context, golden.Configuration{
		Dataset:    args.Dataset,
		Field:      args.Field,
		FirstModel: rank.BM25,
		Expansion:  rewrite.NoExpansion,
	}, ms)
	if err != nil {
		env.Fail(err)
	}

	if args.Summary {
		values = map[string]map[string]float64{"all": analysis.Average(values)}
	}
	s, err := formatter(values)
	if err != nil {
		env.Fail(err)
	}
	fmt.Println(s)
}
