// Package config loads the YAML configuration shared by the command line tools.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/irlab/golden/rewrite"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the experiment configuration.
type Config struct {
	Datasets  DatasetsConfig     `yaml:"datasets"`
	Output    string             `yaml:"output"`
	Logging   LoggingConfig      `yaml:"logging"`
	Expansion rewrite.Parameters `yaml:"expansion"`
	Index     IndexConfig        `yaml:"index"`
}

// DatasetsConfig locates the exported datasets.
type DatasetsConfig struct {
	Root string `yaml:"root"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Env   string `yaml:"env"`   // local, dev, prod (default: local)
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// IndexConfig holds index cache and progress settings.
type IndexConfig struct {
	PostingCacheSize int    `yaml:"posting_cache_size"`
	DiskCacheBytes   uint64 `yaml:"disk_cache_bytes"`
	Progress         string `yaml:"progress"` // stderr, none (default: stderr)
}

// Default is the configuration used when no file is given.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Load reads configuration from a YAML file. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config %s", path)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to parse config")
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Datasets.Root == "" {
		c.Datasets.Root = "datasets"
	}
	if c.Output == "" {
		c.Output = "output"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "local"
	}
	defaults := rewrite.DefaultParameters()
	if c.Expansion.FeedbackDocuments <= 0 {
		c.Expansion.FeedbackDocuments = defaults.FeedbackDocuments
	}
	if c.Expansion.FeedbackTerms <= 0 {
		c.Expansion.FeedbackTerms = defaults.FeedbackTerms
	}
	if c.Expansion.MinDocuments <= 0 {
		c.Expansion.MinDocuments = defaults.MinDocuments
	}
	if c.Expansion.Lambda == 0 {
		c.Expansion.Lambda = defaults.Lambda
	}
	if c.Index.PostingCacheSize <= 0 {
		c.Index.PostingCacheSize = 1024
	}
	if c.Index.DiskCacheBytes == 0 {
		c.Index.DiskCacheBytes = 32 << 20
	}
	if c.Index.Progress == "" {
		c.Index.Progress = "stderr"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	switch c.Logging.Env {
	case "local", "dev", "prod":
	default:
		return errors.Errorf("logging.env must be one of local, dev, prod, got %q", c.Logging.Env)
	}
	switch c.Index.Progress {
	case "stderr", "none":
	default:
		return errors.Errorf("index.progress must be \"stderr\" or \"none\", got %q", c.Index.Progress)
	}
	if err := c.Expansion.Validate(); err != nil {
		return errors.Wrap(err, "expansion")
	}
	return nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
