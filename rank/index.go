// Package rank contains the inverted index, the weighting models, and the retriever built on top of them.
package rank

import (
	"path/filepath"
	"strconv"

	"github.com/hashicorp/golang-lru"
	"github.com/irlab/golden/preprocess"
	"github.com/irlab/golden/stats"
	"github.com/magiconair/properties"
	"github.com/peterbourgon/diskv"
	"github.com/pkg/errors"
)

// Files and directories of an index.
const (
	PropertiesFile = "data.properties"
	LexiconFile    = "lexicon.gob"
	DocumentsFile  = "documents.gob"
	InvertedDir    = "inverted"
	DirectDir      = "direct"
)

// Posting is a single entry of an inverted posting list.
type Posting struct {
	Doc       int
	Frequency int
}

// DirectPosting is a single entry of a document's term vector.
type DirectPosting struct {
	Term      string
	Frequency int
}

// LexiconEntry holds the statistics of a term.
type LexiconEntry struct {
	DocumentFrequency int
	Frequency         int64
}

// DocumentEntry holds the external identifier and length of a document.
type DocumentEntry struct {
	DocNo  string
	Length int
}

// Index is an on-disk inverted and direct index over one text field.
type Index struct {
	path       string
	statistics stats.CollectionStatistics
	properties *properties.Properties
	analyser   preprocess.Analyser

	lexicon   map[string]LexiconEntry
	documents []DocumentEntry

	inverted *diskv.Diskv
	direct   *diskv.Diskv
	postings *lru.Cache

	postingCacheSize int
	diskCacheBytes   uint64
}

// PostingCacheSize sets how many decoded posting lists are kept in memory.
func PostingCacheSize(n int) func(*Index) {
	return func(i *Index) {
		i.postingCacheSize = n
	}
}

// DiskCacheBytes sets the size of the raw byte cache of the stores.
func DiskCacheBytes(n uint64) func(*Index) {
	return func(i *Index) {
		i.diskCacheBytes = n
	}
}

// WithAnalyser sets the analyser used for queries. It must match the one the index was built with.
func WithAnalyser(a preprocess.Analyser) func(*Index) {
	return func(i *Index) {
		i.analyser = a
	}
}

// Open loads the index at path.
func Open(path string, options ...func(*Index)) (*Index, error) {
	idx := &Index{
		path:             path,
		analyser:         preprocess.NewAnalyser(),
		postingCacheSize: 1024,
		diskCacheBytes:   32 << 20,
	}
	for _, option := range options {
		option(idx)
	}

	var err error
	idx.statistics, idx.properties, err = stats.ReadProperties(filepath.Join(path, PropertiesFile))
	if err != nil {
		return nil, err
	}
	if err := readGob(filepath.Join(path, LexiconFile), &idx.lexicon); err != nil {
		return nil, errors.Wrap(err, "reading lexicon")
	}
	if err := readGob(filepath.Join(path, DocumentsFile), &idx.documents); err != nil {
		return nil, errors.Wrap(err, "reading document index")
	}
	if len(idx.documents) != idx.statistics.NumberOfDocuments {
		return nil, errors.Errorf("index %s: document index has %d entries, properties declare %d", path, len(idx.documents), idx.statistics.NumberOfDocuments)
	}

	if idx.postingCacheSize <= 0 {
		idx.postingCacheSize = 1
	}
	idx.postings, err = lru.New(idx.postingCacheSize)
	if err != nil {
		return nil, err
	}
	idx.inverted = newStore(filepath.Join(path, InvertedDir), idx.diskCacheBytes)
	idx.direct = newStore(filepath.Join(path, DirectDir), idx.diskCacheBytes)
	return idx, nil
}

// Path is the directory of the index.
func (i *Index) Path() string {
	return i.path
}

// Analyser is the analyser of query text.
func (i *Index) Analyser() preprocess.Analyser {
	return i.analyser
}

// Property returns a value recorded in the properties file of the index.
func (i *Index) Property(key string) string {
	return i.properties.GetString(key, "")
}

// CollectionStatistics are the global statistics of the index.
func (i *Index) CollectionStatistics() stats.CollectionStatistics {
	return i.statistics
}

// Lexicon looks up the statistics of a term.
func (i *Index) Lexicon(term string) (LexiconEntry, bool) {
	e, ok := i.lexicon[term]
	return e, ok
}

// Postings returns the posting list of a term, or nil when the term is not indexed.
func (i *Index) Postings(term string) ([]Posting, error) {
	if _, ok := i.lexicon[term]; !ok {
		return nil, nil
	}
	if p, ok := i.postings.Get(term); ok {
		return p.([]Posting), nil
	}
	b, err := i.inverted.Read(storeKey(term))
	if err != nil {
		return nil, errors.Wrapf(err, "reading postings of %q", term)
	}
	var postings []Posting
	if err := decode(b, &postings); err != nil {
		return nil, errors.Wrapf(err, "decoding postings of %q", term)
	}
	i.postings.Add(term, postings)
	return postings, nil
}

func (i *Index) document(doc int) (DocumentEntry, error) {
	if doc < 0 || doc >= len(i.documents) {
		return DocumentEntry{}, errors.Errorf("document %d out of range [0,%d)", doc, len(i.documents))
	}
	return i.documents[doc], nil
}

// DocNo is the external identifier of an internal document id.
func (i *Index) DocNo(doc int) (string, error) {
	d, err := i.document(doc)
	return d.DocNo, err
}

// DocumentLength is the number of indexed tokens of a document.
func (i *Index) DocumentLength(doc int) (float64, error) {
	d, err := i.document(doc)
	return float64(d.Length), err
}

// TermVector reads the direct index entry of a document.
func (i *Index) TermVector(doc int) (stats.TermVector, error) {
	if _, err := i.document(doc); err != nil {
		return nil, err
	}
	b, err := i.direct.Read(strconv.Itoa(doc))
	if err != nil {
		return nil, errors.Wrapf(err, "reading term vector of %d", doc)
	}
	var direct []DirectPosting
	if err := decode(b, &direct); err != nil {
		return nil, errors.Wrapf(err, "decoding term vector of %d", doc)
	}
	tv := make(stats.TermVector, len(direct))
	for j, p := range direct {
		e := i.lexicon[p.Term]
		tv[j] = stats.TermVectorTerm{
			Term:               p.Term,
			TermFrequency:      float64(p.Frequency),
			DocumentFrequency:  float64(e.DocumentFrequency),
			TotalTermFrequency: float64(e.Frequency),
		}
	}
	return tv, nil
}

// DocumentFrequency is the number of documents containing the term.
func (i *Index) DocumentFrequency(term string) (float64, error) {
	return float64(i.lexicon[term].DocumentFrequency), nil
}

// TotalTermFrequency is the number of occurrences of the term in the collection.
func (i *Index) TotalTermFrequency(term string) (float64, error) {
	return float64(i.lexicon[term].Frequency), nil
}

// VocabularySize is the total number of tokens in the collection.
func (i *Index) VocabularySize() (float64, error) {
	return float64(i.statistics.NumberOfTokens), nil
}
