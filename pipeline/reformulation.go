package pipeline

import (
	"github.com/pkg/errors"
)

// ErrUnsupportedReformulation is returned for reformulation values outside the enumeration.
var ErrUnsupportedReformulation = errors.New("unsupported reformulation")

// Reformulation decides whether the original query is restored after expansion.
type Reformulation uint8

const (
	NoReformulation Reformulation = iota + 1
	WithReformulation
)

// Reformulations is every supported reformulation.
var Reformulations = []Reformulation{WithReformulation, NoReformulation}

func (r Reformulation) String() string {
	switch r {
	case WithReformulation:
		return "reformulation"
	case NoReformulation:
		return "no-reformulation"
	}
	return "unknown"
}

// ParseReformulation parses one of "reformulation" or "no-reformulation".
func ParseReformulation(s string) (Reformulation, error) {
	for _, r := range Reformulations {
		if s == r.String() {
			return r, nil
		}
	}
	return 0, errors.Wrapf(ErrUnsupportedReformulation, "%q", s)
}

// Validate returns an error unless r is a member of the enumeration.
func (r Reformulation) Validate() error {
	switch r {
	case WithReformulation, NoReformulation:
		return nil
	}
	return errors.Wrapf(ErrUnsupportedReformulation, "%d", r)
}

func (r Reformulation) MarshalText() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return []byte(r.String()), nil
}

func (r *Reformulation) UnmarshalText(b []byte) error {
	v, err := ParseReformulation(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
