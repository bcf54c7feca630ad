package rank

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/cheggaaa/pb/v3"
	"github.com/google/uuid"
	"github.com/irlab/golden/preprocess"
	"github.com/irlab/golden/stats"
	"github.com/pkg/errors"
)

// ErrDuplicateDocument is returned when two documents share a docno.
var ErrDuplicateDocument = errors.New("duplicate document")

// AnalyserProperty records the analyser an index was built with.
const AnalyserProperty = "index.analyser"

// Document is the text of a single document to index.
type Document struct {
	DocNo string
	Text  string
}

// BuildOptions configure Build.
type BuildOptions struct {
	// Analyser defaults to preprocess.NewAnalyser.
	Analyser *preprocess.Analyser
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
	// Properties are recorded next to the collection statistics.
	Properties map[string]string
	// Finalise is called with the temporary directory once the index is complete, before it is published.
	Finalise func(dir string) error
}

// Build indexes the documents into path. The index is written to a temporary sibling directory which is renamed
// into place only once it is complete, so path either does not exist or holds a full index. If path already
// exists when the rename happens, the existing index wins and the new one is discarded.
func Build(ctx context.Context, path string, docs []Document, options BuildOptions) (err error) {
	analyser := preprocess.NewAnalyser()
	if options.Analyser != nil {
		analyser = *options.Analyser
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := fmt.Sprintf("%s.tmp-%s", path, uuid.New().String())
	if err := os.Mkdir(tmp, 0755); err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(tmp)
		}
	}()

	var bar *pb.ProgressBar
	if options.Progress != nil {
		bar = pb.New(len(docs)).SetWriter(options.Progress).Set("prefix", "Pre-Process Documents ").Start()
		defer bar.Finish()
	}

	var (
		direct    = newStore(filepath.Join(tmp, DirectDir), 0)
		inverted  = make(map[string][]Posting)
		lexicon   = make(map[string]LexiconEntry)
		documents = make([]DocumentEntry, 0, len(docs))
		seen      = make(map[string]struct{}, len(docs))
		tokens    int64
		pointers  int64
	)
	for id, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := seen[doc.DocNo]; ok {
			return errors.Wrapf(ErrDuplicateDocument, "%q", doc.DocNo)
		}
		seen[doc.DocNo] = struct{}{}

		tf := analyser.Frequencies(doc.Text)
		terms := make([]string, 0, len(tf))
		for term := range tf {
			terms = append(terms, term)
		}
		sort.Strings(terms)

		length := 0
		vector := make([]DirectPosting, len(terms))
		for j, term := range terms {
			f := tf[term]
			vector[j] = DirectPosting{Term: term, Frequency: f}
			inverted[term] = append(inverted[term], Posting{Doc: id, Frequency: f})
			e := lexicon[term]
			e.DocumentFrequency++
			e.Frequency += int64(f)
			lexicon[term] = e
			length += f
		}
		b, err := encode(vector)
		if err != nil {
			return err
		}
		if err := direct.Write(strconv.Itoa(id), b); err != nil {
			return errors.Wrapf(err, "writing term vector of %s", doc.DocNo)
		}

		documents = append(documents, DocumentEntry{DocNo: doc.DocNo, Length: length})
		tokens += int64(length)
		pointers += int64(len(terms))
		if bar != nil {
			bar.Increment()
		}
	}

	invertedStore := newStore(filepath.Join(tmp, InvertedDir), 0)
	for term, postings := range inverted {
		b, err := encode(postings)
		if err != nil {
			return err
		}
		if err := invertedStore.Write(storeKey(term), b); err != nil {
			return errors.Wrapf(err, "writing postings of %q", term)
		}
	}

	if err := writeGob(filepath.Join(tmp, LexiconFile), lexicon); err != nil {
		return errors.Wrap(err, "writing lexicon")
	}
	if err := writeGob(filepath.Join(tmp, DocumentsFile), documents); err != nil {
		return errors.Wrap(err, "writing document index")
	}

	extra := map[string]string{AnalyserProperty: analyser.Name()}
	for k, v := range options.Properties {
		extra[k] = v
	}
	cs := stats.NewCollectionStatistics(len(documents), tokens, len(lexicon), pointers)
	if err := stats.WriteProperties(filepath.Join(tmp, PropertiesFile), cs, extra); err != nil {
		return err
	}

	if options.Finalise != nil {
		if err := options.Finalise(tmp); err != nil {
			return errors.Wrap(err, "finalising index")
		}
	}

	if err := os.Rename(tmp, path); err != nil {
		if _, statErr := os.Stat(filepath.Join(path, PropertiesFile)); statErr == nil {
			os.RemoveAll(tmp)
			return nil
		}
		return errors.Wrapf(err, "publishing index %s", path)
	}
	return nil
}
