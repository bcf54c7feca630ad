package rank

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"hash/fnv"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv"
)

// maxKeyLength keeps store filenames well under the 255 byte limit of common filesystems.
const maxKeyLength = 200

// storeKey is the diskv key of a term. Terms too long for a filename, or holding a path separator, are stored under
// a name based uuid of the term instead.
func storeKey(term string) string {
	if len(term) <= maxKeyLength && !strings.ContainsAny(term, `/\`) {
		return term
	}
	return "~" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(term)).String()
}

// BlockTransform determines how diskv should partition folders.
func BlockTransform(blockSize int) func(string) []string {
	return func(s string) []string {
		var (
			sliceSize = len(s) / blockSize
			pathSlice = make([]string, sliceSize)
		)
		for i := 0; i < sliceSize; i++ {
			from, to := i*blockSize, (i*blockSize)+blockSize
			pathSlice[i] = s[from:to]
		}
		return pathSlice
	}
}

// HashTransform partitions keys by blocks of their fnv hash, so every key lives at the same depth regardless of
// its length.
func HashTransform(blockSize, depth int) func(string) []string {
	block := BlockTransform(blockSize)
	return func(s string) []string {
		h := fnv.New32a()
		h.Write([]byte(s))
		dirs := block(fmt.Sprintf("%08x", h.Sum32()))
		if len(dirs) > depth {
			dirs = dirs[:depth]
		}
		return dirs
	}
}

func newStore(path string, cacheBytes uint64) *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:     path,
		Transform:    HashTransform(2, 2),
		CacheSizeMax: cacheBytes,
		Compression:  diskv.NewGzipCompression(),
	})
}

func encode(v interface{}) ([]byte, error) {
	var buff bytes.Buffer
	if err := gob.NewEncoder(&buff).Encode(v); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

func decode(b []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(b)).Decode(v)
}

func writeGob(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func readGob(path string, v interface{}) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(v)
}
