package golden

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/hscells/trecresults"
	"github.com/irlab/golden/collection"
	"github.com/irlab/golden/eval"
	"github.com/irlab/golden/output"
	"github.com/pkg/errors"
)

// ReadQrels loads relevance judgements from path.
func ReadQrels(path string) (trecresults.QrelsFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return trecresults.QrelsFile{}, err
	}
	defer f.Close()
	qrels, err := trecresults.QrelsFromReader(f)
	if err != nil {
		return trecresults.QrelsFile{}, errors.Wrapf(err, "reading qrels %s", path)
	}
	return qrels, nil
}

// StoredRuns lists the tags of every complete run of a dataset, sorted.
func StoredRuns(outputRoot string, dataset collection.Dataset) ([]string, error) {
	dir := filepath.Join(outputRoot, "runs", string(dataset))
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var tags []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, e.Name(), output.RunFile)); err == nil {
			tags = append(tags, e.Name())
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// EvaluateRuns scores stored runs of a dataset against qrels. When no tags are given every stored run is scored.
// The result maps tag -> topic -> measure -> score.
func EvaluateRuns(outputRoot string, dataset collection.Dataset, qrels trecresults.QrelsFile, tags []string, evaluators []eval.Evaluator) (map[string]map[string]map[string]float64, error) {
	if len(tags) == 0 {
		var err error
		tags, err = StoredRuns(outputRoot, dataset)
		if err != nil {
			return nil, err
		}
	}
	scores := make(map[string]map[string]map[string]float64, len(tags))
	for _, tag := range tags {
		path := filepath.Join(outputRoot, "runs", string(dataset), tag, output.RunFile)
		run, err := output.ReadTrecResults(path)
		if err != nil {
			return nil, errors.Wrapf(err, "run %s", tag)
		}
		scores[tag] = eval.Evaluate(evaluators, run.Results, qrels)
	}
	return scores, nil
}
