package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	goerrors "github.com/go-errors/errors"
	"github.com/irlab/golden"
	"github.com/irlab/golden/collection"
	"github.com/irlab/golden/config"
	"github.com/irlab/golden/internal/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Common are the flags every tool accepts.
type Common struct {
	Dataset  collection.Dataset `arg:"--dataset,required,env:GOLDEN_DATASET" help:"the dataset (radboud-validation-20251114-training, spot-check-20251122-training)"`
	Output   string             `arg:"--output,env:GOLDEN_OUTPUT" help:"the output directory [default: output]"`
	Datasets string             `arg:"--datasets,env:GOLDEN_DATASETS" help:"the directory holding the exported datasets [default: datasets]"`
	Config   string             `arg:"--config,env:GOLDEN_CONFIG" default:"golden.yaml" help:"YAML configuration file, ignored if missing"`
	LogLevel string             `arg:"--log-level,env:GOLDEN_LOG_LEVEL" help:"debug, info, warn or error"`
}

// Retrieval are the flags of the tools that retrieve.
type Retrieval struct {
	Field collection.Field `arg:"--text-field-to-retrieve,env:GOLDEN_TEXT_FIELD" default:"default_text" help:"the text field of the documents on which to retrieve (default_text, title, description)"`
}

// Parse loads a .env file, if there is one, and then parses the command line into dest.
func Parse(dest interface{}) *arg.Parser {
	_ = godotenv.Load()
	return arg.MustParse(dest)
}

// Environment is everything a tool needs once its flags are parsed.
type Environment struct {
	Context context.Context
	Config  config.Config
	Logger  *zap.Logger
	Source  collection.Directory
	debug   bool
	cancel  context.CancelFunc
}

// Setup loads the configuration, applies the flags on top of it, and creates the logger.
func Setup(c Common) (*Environment, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Output != "" {
		cfg.Output = c.Output
	}
	if c.Datasets != "" {
		cfg.Datasets.Root = c.Datasets
	}
	if c.LogLevel != "" {
		cfg.Logging.Level = c.LogLevel
	}

	l, err := logger.NewLogger(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	return &Environment{
		Context: logger.ContextWithLogger(ctx, l),
		Config:  cfg,
		Logger:  l,
		Source:  collection.NewDirectory(cfg.Datasets.Root, c.Dataset),
		debug:   cfg.Logging.Level == "debug",
		cancel:  cancel,
	}, nil
}

// Runner creates the experiment runner of the environment.
func (e *Environment) Runner() golden.Runner {
	options := golden.IndexOptions{
		PostingCacheSize: e.Config.Index.PostingCacheSize,
		DiskCacheBytes:   e.Config.Index.DiskCacheBytes,
	}
	if e.Config.Index.Progress == "stderr" {
		options.Progress = os.Stderr
	}
	return golden.NewRunner(e.Config.Output, e.Source, e.Config.Expansion, options)
}

// Close releases the environment.
func (e *Environment) Close() {
	e.cancel()
	_ = e.Logger.Sync()
}

// Fail logs the error and exits with a non-zero status. At debug level the stack trace is printed as well.
func (e *Environment) Fail(err error) {
	e.Logger.Error("failed", zap.Error(err))
	if e.debug {
		fmt.Fprintln(os.Stderr, goerrors.Wrap(err, 1).ErrorStack())
	}
	e.Close()
	os.Exit(1)
}

// Fatal reports an error that happened before the environment was set up.
func Fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

// Run executes a configuration and reports the outcome.
func (e *Environment) Run(cfg golden.Configuration) {
	outcome, err := e.Runner().Run(e.Context, cfg)
	if err != nil {
		e.Fail(err)
	}
	if outcome.Skipped {
		fmt.Printf("%s exists, skipping\n", outcome.RunPath)
		return
	}
	fmt.Printf("%s: %d topics, %d results\n", outcome.RunPath, outcome.Topics, outcome.Results)
}
