package main

import (
	"fmt"

	"github.com/irlab/golden"
	"github.com/irlab/golden/cmd"
	"github.com/irlab/golden/rank"
	"github.com/irlab/golden/rewrite"
)

var (
	name    = "preexpand"
	version = "16.Oct.2026"
	author  = "IR Lab"
)

type args struct {
	cmd.Common
	cmd.Retrieval
	Model     rank.Model        `arg:"--retrieval-model" default:"BM25" help:"the retrieval model (BM25, DPH, PL2, TF_IDF)"`
	Expansion rewrite.Expansion `arg:"--query-expansion" default:"no-qe" help:"the query expansion algorithm (no-qe, bo1, RM3)"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf(`%s
@ %s
# %s
Expand the topics with one model and retrieve the expanded topics with the same model.`, name, author, version)
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
		Expansion:  args.Expansion,
		Strategy:   golden.PreExpansion,
	})
}
