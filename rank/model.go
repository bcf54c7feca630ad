package rank

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedModel is returned for retrieval model names outside the enumeration.
	ErrUnsupportedModel = errors.New("unsupported retrieval model")
	// ErrUnsupportedLimit is returned for result limits outside the enumeration.
	ErrUnsupportedLimit = errors.New("unsupported result limit")
)

// Model is a weighting model.
type Model uint8

const (
	BM25 Model = iota + 1
	DPH
	PL2
	TFIDF
)

// Models is every supported weighting model.
var Models = []Model{BM25, DPH, PL2, TFIDF}

func (m Model) String() string {
	switch m {
	case BM25:
		return "BM25"
	case DPH:
		return "DPH"
	case PL2:
		return "PL2"
	case TFIDF:
		return "TF_IDF"
	}
	return "unknown"
}

// ParseModel matches a model name case-insensitively.
func ParseModel(s string) (Model, error) {
	for _, m := range Models {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedModel, "%q", s)
}

// Validate returns an error unless m is a member of the enumeration.
func (m Model) Validate() error {
	switch m {
	case BM25, DPH, PL2, TFIDF:
		return nil
	}
	return errors.Wrapf(ErrUnsupportedModel, "%d", m)
}

func (m Model) MarshalText() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return []byte(m.String()), nil
}

func (m *Model) UnmarshalText(b []byte) error {
	v, err := ParseModel(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ResultLimit caps the number of documents retrieved per query.
type ResultLimit int

const (
	Top10   ResultLimit = 10
	Top100  ResultLimit = 100
	Top1000 ResultLimit = 1000

	DefaultResultLimit = Top1000
)

// ResultLimits is every supported result limit.
var ResultLimits = []ResultLimit{Top10, Top100, Top1000}

func (l ResultLimit) String() string {
	return strconv.Itoa(int(l))
}

// ParseResultLimit parses one of "10", "100" or "1000".
func ParseResultLimit(s string) (ResultLimit, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(ErrUnsupportedLimit, "%q", s)
	}
	l := ResultLimit(n)
	return l, l.Validate()
}

// Validate returns an error unless l is a member of the enumeration.
func (l ResultLimit) Validate() error {
	switch l {
	case Top10, Top100, Top1000:
		return nil
	}
	return errors.Wrapf(ErrUnsupportedLimit, "%d", int(l))
}

func (l ResultLimit) MarshalText() ([]byte, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return []byte(l.String()), nil
}

func (l *ResultLimit) UnmarshalText(b []byte) error {
	v, err := ParseResultLimit(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
