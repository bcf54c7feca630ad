package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned for output formats other than json and csv.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// EvaluationFormatter is used to output evaluation results, topic -> measure -> score.
type EvaluationFormatter func(map[string]map[string]float64) (string, error)

// JsonEvaluationFormatter outputs results in a JSON format.
func JsonEvaluationFormatter(results map[string]map[string]float64) (string, error) {
	v, err := json.MarshalIndent(Measurements(results), "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CsvEvaluationFormatter outputs one row per topic and one column per measure, both sorted.
func CsvEvaluationFormatter(results map[string]map[string]float64) (string, error) {
	var b bytes.Buffer
	if err := csv.NewWriter(&b).WriteAll(Measurements(results).Records()); err != nil {
		return "", errors.Wrap(err, "writing csv")
	}
	return b.String(), nil
}

// EvaluationFormat resolves an output format name.
func EvaluationFormat(name string) (EvaluationFormatter, error) {
	switch name {
	case "json":
		return JsonEvaluationFormatter, nil
	case "csv":
		return CsvEvaluationFormatter, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", name)
}
