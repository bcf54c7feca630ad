package main

import (
	"fmt"

	"github.com/irlab/golden"
	"github.com/irlab/golden/cmd"
	"github.com/irlab/golden/rank"
	"github.com/irlab/golden/rewrite"
)

var (
	name    = "retrieve"
	version = "16.Oct.2026"
	author  = "IR Lab"
)

type args struct {
	cmd.Common
	cmd.Retrieval
	Model     rank.Model        `arg:"--retrieval-model" default:"BM25" help:"the retrieval model (BM25, DPH, PL2, TF_IDF)"`
	Expansion rewrite.Expansion `arg:"--query-expansion" default:"no-qe" help:"the query expansion algorithm (no-qe, Bo1, RM3)"`
	Limit     rank.ResultLimit  `arg:"--num_results" default:"1000" help:"the number of results per query (10, 100, 1000)"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s
Retrieve with one model, optionally expanding the query and retrieving again with the same model.`, name, author, version)
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
		Dataset:    args.Dataset,
		Field:      args.Field,
		FirstModel: args.Model,
		LastModel:  args.Model,
		Expansion:  args.Expansion,
		Limit:      args.Limit,
		Strategy:   golden.RetrieveExpandRetrieve,
	})
}
