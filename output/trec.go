// Package output provides different formats of output for experiments.
package output

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/hscells/trecresults"
	"github.com/irlab/golden/internal/jsonl"
	"github.com/pkg/errors"
)

// RunFile is the name of a gzipped trec run.
const RunFile = "run.txt.gz"

// TrecResults represents the output format for trec results.
type TrecResults struct {
	Path    string
	Results trecresults.ResultList
}

// Write stores the results as a gzip compressed trec run. The file is written under a temporary name and renamed,
// so Path either does not exist or holds the complete run.
func (t TrecResults) Write() (err error) {
	if err := os.MkdirAll(filepath.Dir(t.Path), 0755); err != nil {
		return err
	}
	tmp := t.Path + ".tmp-" + uuid.New().String()
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	gz := gzip.NewWriter(f)
	w := bufio.NewWriter(gz)
	for _, r := range t.Results {
		if _, err := fmt.Fprintf(w, "%s Q0 %s %d %s %s\n", r.Topic, r.DocId, r.Rank, strconv.FormatFloat(r.Score, 'f', -1, 64), r.RunName); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if err := gz.Close(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, t.Path); err != nil {
		return errors.Wrapf(err, "writing %s", t.Path)
	}
	return nil
}

// ReadTrecResults loads a trec run, compressed or not.
func ReadTrecResults(path string) (TrecResults, error) {
	r, err := jsonl.Open(path)
	if err != nil {
		return TrecResults{}, err
	}
	defer r.Close()
	rf, err := trecresults.ResultsFromReader(r)
	if err != nil {
		return TrecResults{}, errors.Wrapf(err, "reading %s", path)
	}
	var results trecresults.ResultList
	for _, l := range rf.Results {
		results = append(results, l...)
	}
	return TrecResults{Path: path, Results: results}, nil
}
