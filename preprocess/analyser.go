package preprocess

import "strings"

// Analyser turns text into index terms. The same analyser must be used for indexing and for querying.
type Analyser struct {
	Text  []TextProcessor
	Terms []TermProcessor
	name  string
}

// NewAnalyser creates the default analyser: ASCII folding, lowercasing, alphanumeric tokens, English stopword
// removal, and Porter stemming.
func NewAnalyser() Analyser {
	return Analyser{
		Text:  []TextProcessor{ASCIIFold, Lowercase, AlphaNum, RemoveStopwords},
		Terms: []TermProcessor{PorterStem},
		name:  "Stopwords,PorterStemmer",
	}
}

// NewCustomAnalyser creates an analyser from arbitrary processors.
func NewCustomAnalyser(name string, text []TextProcessor, terms []TermProcessor) Analyser {
	return Analyser{Text: text, Terms: terms, name: name}
}

// Name describes the analyser, e.g. for index metadata.
func (a Analyser) Name() string {
	return a.name
}

// Analyse splits a text into its terms, in order and with repetitions.
func (a Analyser) Analyse(text string) []string {
	fields := strings.Fields(Process(text, a.Text...))
	terms := fields[:0]
	for _, f := range fields {
		for _, p := range a.Terms {
			f = p(f)
			if len(f) == 0 {
				break
			}
		}
		if len(f) > 0 {
			terms = append(terms, f)
		}
	}
	return terms
}

// Frequencies counts the terms of a text.
func (a Analyser) Frequencies(text string) map[string]int {
	tf := make(map[string]int)
	for _, t := range a.Analyse(text) {
		tf[t]++
	}
	return tf
}
