// Package preprocess handles the processing of text into the terms that are indexed and queried.
package preprocess

import (
	"regexp"
	"strings"

	"github.com/bbalet/stopwords"
	"github.com/hscells/go-unidecode"
	"github.com/reiver/go-porterstemmer"
)

// TextProcessor is applied to text before it is split into terms.
type TextProcessor func(text string) string

var (
	alphanum = regexp.MustCompile("[^a-zA-Z0-9 ]+")
	numbers  = regexp.MustCompile("[0-9]")
	spaces   = regexp.MustCompile(" +")
)

// AlphaNum replaces all non-alphanumeric characters in a text with a space.
func AlphaNum(text string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(alphanum.ReplaceAllString(text, " "), " "))
}

// StripNumbers removes numbers from a text.
func StripNumbers(text string) string {
	return numbers.ReplaceAllString(text, "")
}

// Lowercase transforms all capital letters to lowercase.
func Lowercase(text string) string {
	return strings.ToLower(text)
}

// ASCIIFold transliterates text into plain ASCII.
func ASCIIFold(text string) string {
	return unidecode.Unidecode(text)
}

// RemoveStopwords drops English stopwords.
func RemoveStopwords(text string) string {
	return stopwords.CleanString(text, "en", false)
}

// Tokenise normalises a text so that only lowercase alphanumeric tokens separated by single spaces remain.
func Tokenise(text string) string {
	return Process(text, ASCIIFold, Lowercase, AlphaNum)
}

// Process applies each of the processors in order.
func Process(text string, processors ...TextProcessor) string {
	for _, p := range processors {
		text = p(text)
	}
	return text
}

// TermProcessor is applied to every term after tokenisation. An empty result drops the term.
type TermProcessor func(term string) string

// PorterStem reduces a term to its Porter stem.
func PorterStem(term string) string {
	return porterstemmer.StemString(term)
}
