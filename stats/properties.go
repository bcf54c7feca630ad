package stats

import (
	"os"
	"sort"
	"strconv"

	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

// Keys of the collection statistics in a properties file.
const (
	NumberOfDocumentsKey   = "num.Documents"
	NumberOfTokensKey      = "num.Tokens"
	NumberOfUniqueTermsKey = "num.Terms"
	NumberOfPointersKey    = "num.Pointers"
)

// WriteProperties stores collection statistics and any additional values at path.
func WriteProperties(path string, cs CollectionStatistics, extra map[string]string) error {
	p := properties.NewProperties()
	values := map[string]int64{
		NumberOfDocumentsKey:   int64(cs.NumberOfDocuments),
		NumberOfTokensKey:      cs.NumberOfTokens,
		NumberOfUniqueTermsKey: int64(cs.NumberOfUniqueTerms),
		NumberOfPointersKey:    cs.NumberOfPointers,
	}
	for k, v := range values {
		if _, _, err := p.Set(k, strconv.FormatInt(v, 10)); err != nil {
			return errors.Wrapf(err, "property %s", k)
		}
	}

	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, _, err := p.Set(k, extra[k]); err != nil {
			return errors.Wrapf(err, "property %s", k)
		}
	}
	p.Sort()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := p.Write(f, properties.UTF8); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}

// ReadProperties loads collection statistics from path. The full property set is returned for any other values.
func ReadProperties(path string) (CollectionStatistics, *properties.Properties, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return CollectionStatistics{}, nil, errors.Wrapf(err, "loading %s", path)
	}
	for _, k := range []string{NumberOfDocumentsKey, NumberOfTokensKey, NumberOfUniqueTermsKey, NumberOfPointersKey} {
		if _, ok := p.Get(k); !ok {
			return CollectionStatistics{}, nil, errors.Errorf("%s: missing %s", path, k)
		}
	}
	cs := NewCollectionStatistics(
		p.GetInt(NumberOfDocumentsKey, 0),
		p.GetInt64(NumberOfTokensKey, 0),
		p.GetInt(NumberOfUniqueTermsKey, 0),
		p.GetInt64(NumberOfPointersKey, 0),
	)
	return cs, p, nil
}
