// Package jsonl reads line-delimited JSON files, optionally gzip compressed.
package jsonl

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// maxLineSize bounds the length of a single record.
const maxLineSize = 64 * 1024 * 1024

type gzipFile struct {
	*gzip.Reader
	f *os.File
}

func (g gzipFile) Close() error {
	if err := g.Reader.Close(); err != nil {
		g.f.Close()
		return err
	}
	return g.f.Close()
}

// Open opens a file for reading, transparently decompressing it when the name ends in .gz.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}
	r, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "open gzip %s", path)
	}
	return gzipFile{Reader: r, f: f}, nil
}

// Find returns the first of the candidate paths that exists.
func Find(candidates ...string) (string, error) {
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", errors.Wrapf(os.ErrNotExist, "none of %v", candidates)
}

// Decode unmarshals every non-empty line of r into a fresh value and hands it to fn.
func Decode[T any](r io.Reader, fn func(T) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(strings.TrimSpace(string(b))) == 0 {
			continue
		}
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return errors.Wrapf(err, "line %d", line)
		}
		if err := fn(v); err != nil {
			return err
		}
	}
	return scanner.Err()
}
