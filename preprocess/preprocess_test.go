package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenise(t *testing.T) {
	assert.Equal(t, "hello world 42", Tokenise("Héllo,   World! 42"))
	assert.Equal(t, "", Tokenise("?!"))
}

func TestAnalyse(t *testing.T) {
	a := NewAnalyser()
	assert.Equal(t, []string{"cat", "run"}, a.Analyse("The cats are running"))
	assert.Equal(t, "Stopwords,PorterStemmer", a.Name())
}

func TestFrequencies(t *testing.T) {
	a := NewAnalyser()
	assert.Equal(t, map[string]int{"cat": 2, "dog": 1}, a.Frequencies("cat cats dog"))
}

func TestCustomAnalyser(t *testing.T) {
	a := NewCustomAnalyser("Lowercase", []TextProcessor{Lowercase, AlphaNum}, nil)
	assert.Equal(t, []string{"the", "cats"}, a.Analyse("The Cats"))
	assert.Equal(t, "Lowercase", a.Name())
}

func TestDroppedTerms(t *testing.T) {
	drop := func(term string) string {
		if term == "dog" {
			return ""
		}
		return term
	}
	a := NewCustomAnalyser("drop", []TextProcessor{Lowercase}, []TermProcessor{drop})
	assert.Equal(t, []string{"cat", "fish"}, a.Analyse("cat dog fish"))
}

func TestStripNumbers(t *testing.T) {
	assert.Equal(t, "abc", StripNumbers("a1b2c3"))
}
