package stats

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/xtgo/set"
)

// LanguageModel is the feedback model estimated from a set of (pseudo) relevant documents.
type LanguageModel struct {
	Docs    []int
	Weights []float64

	// TermCount is the frequency of each term summed over the feedback documents.
	TermCount map[string]float64
	// Relevance is the relevance model estimate, sum over documents of weight(d) * tf(t,d)/|d|.
	Relevance map[string]float64
	// FeedbackFrequency counts the feedback documents containing each term.
	FeedbackFrequency  map[string]int
	DocumentFrequency  map[string]float64
	TotalTermFrequency map[string]float64
	DocLen             float64

	StatisticsSource StatisticsSource
	VocabularySize   float64
}

// LanguageModelWeights configures a language model to use the specified weights.
func LanguageModelWeights(weights []float64) func(*LanguageModel) {
	return func(lm *LanguageModel) {
		lm.Weights = weights
	}
}

// NewLanguageModel creates a new language model from a statistics source using the specified documents. Optionally,
// the language model can use weights that can be configured through the functional arguments; by default every
// document has weight one.
func NewLanguageModel(source StatisticsSource, docs []int, options ...func(model *LanguageModel)) (*LanguageModel, error) {
	lm := &LanguageModel{
		Docs:               docs,
		StatisticsSource:   source,
		TermCount:          make(map[string]float64),
		Relevance:          make(map[string]float64),
		FeedbackFrequency:  make(map[string]int),
		DocumentFrequency:  make(map[string]float64),
		TotalTermFrequency: make(map[string]float64),
	}

	vocab, err := source.VocabularySize()
	if err != nil {
		return nil, err
	}
	lm.VocabularySize = vocab

	for _, option := range options {
		option(lm)
	}

	if len(lm.Weights) == 0 {
		lm.Weights = make([]float64, len(lm.Docs))
		for i := range lm.Weights {
			lm.Weights[i] = 1.0
		}
	}

	if len(lm.Docs) != len(lm.Weights) {
		return nil, errors.Errorf("cannot create language model; %d documents but %d weights", len(lm.Docs), len(lm.Weights))
	}

	for i := range lm.Docs {
		if err := lm.update(lm.Docs[i], lm.Weights[i]); err != nil {
			return nil, err
		}
	}

	return lm, nil
}

func (lm *LanguageModel) update(doc int, weight float64) error {
	tv, err := lm.StatisticsSource.TermVector(doc)
	if err != nil {
		return errors.Wrapf(err, "term vector of document %d", doc)
	}
	length := tv.Length()
	for _, term := range tv {
		lm.TermCount[term.Term] += term.TermFrequency
		if length > 0 {
			lm.Relevance[term.Term] += weight * term.TermFrequency / length
		}
		lm.FeedbackFrequency[term.Term]++
		lm.DocumentFrequency[term.Term] = term.DocumentFrequency
		lm.TotalTermFrequency[term.Term] = term.TotalTermFrequency
	}
	lm.DocLen += length
	return nil
}

// Vocabulary is the sorted set of terms of the feedback documents.
func (lm *LanguageModel) Vocabulary() []string {
	terms := make(sort.StringSlice, 0, len(lm.TermCount))
	for term := range lm.TermCount {
		terms = append(terms, term)
	}
	sort.Sort(terms)
	return terms[:set.Uniq(terms)]
}

// CollectionTermProbability is the term probability for the background language model.
func (lm *LanguageModel) CollectionTermProbability(term string) float64 {
	if ttf, ok := lm.TotalTermFrequency[term]; ok && lm.VocabularySize > 0 {
		return ttf / lm.VocabularySize
	}
	return 0.0
}

// DocumentTermProbability is the term probability of the pooled feedback documents.
func (lm *LanguageModel) DocumentTermProbability(term string) float64 {
	if tf, ok := lm.TermCount[term]; ok && lm.DocLen > 0 {
		return tf / lm.DocLen
	}
	return 0.0
}
