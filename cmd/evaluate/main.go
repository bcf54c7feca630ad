package main

import (
	"fmt"
	"sort"

	"github.com/irlab/golden"
	"github.com/irlab/golden/cmd"
	"github.com/irlab/golden/eval"
	"github.com/irlab/golden/output"
	"go.uber.org/zap"
)

var (
	name    = "evaluate"
	version = "16.Oct.2026"
	author  = "IR Lab"
)

type args struct {
	cmd.Common
	Run      []string `arg:"--run" help:"tags of the runs to evaluate [default: every stored run]"`
	Measures []string `arg:"--measures" help:"measures such as AP, P@10, nDCG@10, Recall, F1Measure"`
	Format   string   `arg:"--format" default:"json" help:"json or csv"`
	Summary  bool     `arg:"--summary" help:"report the mean of every measure per run instead of per topic scores"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s
Evaluate the stored runs of a dataset against its relevance judgements.`, name, author, version)
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
	evaluators, err := eval.ParseMeasures(args.Measures)
	if err != nil {
		env.Fail(err)
	}
	for _, tag := range args.Run {
		if _, err := golden.ParseTag(args.Dataset, tag); err != nil {
			env.Logger.Warn("run tag is not a canonical tag", zap.String("tag", tag), zap.Error(err))
		}
	}

	qrels, err := golden.ReadQrels(env.Source.QrelsPath())
	if err != nil {
		env.Fail(err)
	}
	scores, err := golden.EvaluateRuns(env.Config.Output, args.Dataset, qrels, args.Run, evaluators)
	if err != nil {
		env.Fail(err)
	}
	if len(scores) == 0 {
		env.Logger.Warn("no runs to evaluate", zap.String("dataset", args.Dataset.String()))
		return
	}

	if args.Summary {
		summaries := make(map[string]map[string]float64, len(scores))
		for tag, s := range scores {
			summaries[tag] = eval.Summarise(s)
		}
		s, err := formatter(summaries)
		if err != nil {
			env.Fail(err)
		}
		fmt.Println(s)
		return
	}

	tags := make([]string, 0, len(scores))
	for tag := range scores {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	for _, tag := range tags {
		s, err := formatter(scores[tag])
		if err != nil {
			env.Fail(err)
		}
		fmt.Printf("# %s\n%s\n", tag, s)
	}
}
