// Package tracking records ir_metadata style provenance for indexes and runs.
package tracking

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MetadataFile is the name of the provenance file of a run.
const MetadataFile = "ir-metadata.yml"

// IndexMetadataFile is the name of the provenance file of an index.
const IndexMetadataFile = "index-metadata.yml"

// Metadata is the ir_metadata document of a run or index.
type Metadata struct {
	Tag            string         `yaml:"tag"`
	RunID          string         `yaml:"run id"`
	ResearchGoal   ResearchGoal   `yaml:"research goal"`
	Platform       Platform       `yaml:"platform"`
	Implementation Implementation `yaml:"implementation"`
	Method         Method         `yaml:"method"`
	Data           Data           `yaml:"data"`
	Resources      Resources      `yaml:"resources"`
}

// ResearchGoal holds the prose description of the system.
type ResearchGoal struct {
	Description string `yaml:"description"`
}

// Platform describes the machine that produced the artefact.
type Platform struct {
	OperatingSystem string `yaml:"operating system"`
	Architecture    string `yaml:"architecture"`
	Cores           int    `yaml:"number of cores"`
	GoVersion       string `yaml:"go version"`
}

// Implementation describes the software that produced the artefact.
type Implementation struct {
	Module    string            `yaml:"module,omitempty"`
	Version   string            `yaml:"version,omitempty"`
	Revision  string            `yaml:"revision,omitempty"`
	Command   string            `yaml:"command"`
	Libraries map[string]string `yaml:"libraries,omitempty"`
}

// Method encodes every option of the system.
type Method struct {
	Strategy      string             `yaml:"strategy,omitempty"`
	Field         string             `yaml:"indexing field"`
	FirstModel    string             `yaml:"first retrieval model,omitempty"`
	Expansion     string             `yaml:"query expansion,omitempty"`
	LastModel     string             `yaml:"last retrieval model,omitempty"`
	Reformulation string             `yaml:"reformulation,omitempty"`
	NumResults    int                `yaml:"num_results,omitempty"`
	Pipeline      string             `yaml:"pipeline,omitempty"`
	Analyser      string             `yaml:"analyser,omitempty"`
	Parameters    map[string]float64 `yaml:"parameters,omitempty"`
}

// Data names the dataset the artefact was produced from.
type Data struct {
	Dataset string `yaml:"dataset"`
	Topics  int    `yaml:"topics,omitempty"`
	// QueryPerformance is the mean of each pre-retrieval predictor over the topics.
	QueryPerformance map[string]float64 `yaml:"query performance,omitempty"`
}

// Resources are measured around the tracked function.
type Resources struct {
	Started       time.Time `yaml:"started"`
	Runtime       string    `yaml:"runtime"`
	AllocatedMiB  float64   `yaml:"allocated MiB"`
	SystemMiB     float64   `yaml:"system MiB"`
	NumGoroutines int       `yaml:"goroutines"`
}

func platform() Platform {
	return Platform{
		OperatingSystem: runtime.GOOS,
		Architecture:    runtime.GOARCH,
		Cores:           runtime.NumCPU(),
		GoVersion:       runtime.Version(),
	}
}

func implementation() Implementation {
	impl := Implementation{Command: strings.Join(os.Args, " ")}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return impl
	}
	impl.Module = info.Main.Path
	impl.Version = info.Main.Version
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			impl.Revision = s.Value
		}
	}
	if len(info.Deps) > 0 {
		impl.Libraries = make(map[string]string, len(info.Deps))
		for _, dep := range info.Deps {
			impl.Libraries[dep.Path] = dep.Version
		}
	}
	return impl
}

const mib = 1 << 20

// Tracker measures the resources used since it was started.
type Tracker struct {
	start  time.Time
	before runtime.MemStats
}

// Start begins measuring.
func Start() *Tracker {
	t := &Tracker{start: time.Now()}
	runtime.ReadMemStats(&t.before)
	return t
}

// Finish fills in the platform, implementation and resources of m and writes it to path.
func (t *Tracker) Finish(path string, m Metadata) error {
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	if m.RunID == "" {
		m.RunID = uuid.New().String()
	}
	m.Platform = platform()
	m.Implementation = implementation()
	m.Resources = Resources{
		Started:       t.start.UTC(),
		Runtime:       time.Since(t.start).String(),
		AllocatedMiB:  float64(after.TotalAlloc-t.before.TotalAlloc) / mib,
		SystemMiB:     float64(after.Sys) / mib,
		NumGoroutines: runtime.NumGoroutine(),
	}
	return Write(path, m)
}

// Track runs fn and, if it succeeds, writes m with the platform, implementation and resources filled in to path.
// The file is written to a temporary name and renamed, so it is either complete or absent.
func Track(path string, m Metadata, fn func() error) error {
	t := Start()
	if err := fn(); err != nil {
		return err
	}
	return t.Finish(path, m)
}

// Write stores metadata as YAML at path.
func Write(path string, m Metadata) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	b, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "encoding metadata")
	}
	tmp := path + ".tmp-" + uuid.New().String()
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Read loads metadata from path.
func Read(path string) (Metadata, error) {
	var m Metadata
	b, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := yaml.Unmarshal(b, &m); err != nil {
		return m, errors.Wrapf(err, "decoding %s", path)
	}
	return m, nil
}
