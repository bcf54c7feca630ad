package main

import (
	"fmt"

	"github.com/irlab/golden"
	"github.com/irlab/golden/cmd"
	"github.com/irlab/golden/pipeline"
	"github.com/irlab/golden/rank"
	"github.com/irlab/golden/rewrite"
)

var (
	name    = "rerank"
	version = "16.Oct.2026"
	author  = "IR Lab"
)

type args struct {
	cmd.Common
	cmd.Retrieval
	FirstModel    rank.Model             `arg:"--first-model" default:"BM25" help:"the model of the first retrieval (BM25, DPH, PL2, TF_IDF)"`
	LastModel     rank.Model             `arg:"--last-model" default:"BM25" help:"the model of the retrieval after expansion"`
	Expansion     rewrite.Expansion      `arg:"--query-expansion" default:"no-qe" help:"the query expansion algorithm (no-qe, Bo1, RM3)"`
	Reformulation pipeline.Reformulation `arg:"--reformulation" default:"no-reformulation" help:"restore the original query after expansion (reformulation, no-reformulation)"`
	Limit         rank.ResultLimit       `arg:"--num_results" default:"1000" help:"the number of results per query (10, 100, 1000)"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s
Retrieve with a first model, expand the query, and retrieve again with a last model.`, name, author, version)
}

func main() {
	var args args
	cmd.Parse(&args)

	env, err := cmd.Setup(args.Common)
	if err != nil {
		cmd.Fatal(err)
	}
	defer env.Close()

	env.Run(golden.Configuration{
		Dataset:       args.Dataset,
		Field:         args.Field,
		FirstModel:    args.FirstModel,
		LastModel:     args.LastModel,
		Expansion:     args.Expansion,
		Reformulation: args.Reformulation,
		Limit:         args.Limit,
		Strategy:      golden.RetrieveExpandRetrieve,
	})
}
