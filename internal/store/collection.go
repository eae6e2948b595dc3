package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// collection persists one kind of record as a single JSON array file.
// Every operation is a whole-file load or overwrite; the mutex serializes
// each load-mutate-persist cycle so concurrent callers never lose updates.
type collection[T any] struct {
	mu      sync.Mutex
	path    string
	seqPath string
	log     *slog.Logger
}

func newCollection[T any](dataDir, name string, log *slog.Logger) *collection[T] {
	return &collection[T]{
		path:    filepath.Join(dataDir, name+".json"),
		seqPath: filepath.Join(dataDir, name+".seq"),
		log:     log,
	}
}

// load reads the full collection. A missing or empty file is a legitimate
// first run and yields an empty collection silently; a corrupt file also
// yields an empty collection, but with a warning so the data loss is
// observable.
func (c *collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []T{}, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		c.log.Warn("collection file is corrupt, treating as empty",
			"path", c.path, "error", err)
		return []T{}, nil
	}
	return records, nil
}

// persist overwrites the collection file with the full record list.
func (c *collection[T]) persist(records []T) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0o644)
}

// nextID advances the durable identifier sequence stored beside the
// collection. The counter is clamped up to the highest identifier already
// present, so collections written before the sequence existed never hand
// out duplicates, and deleting the newest record never causes reuse.
func (c *collection[T]) nextID(maxExisting int) (int, error) {
	seq := 0
	if data, err := os.ReadFile(c.seqPath); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil {
			seq = n
		}
	}
	if maxExisting > seq {
		seq = maxExisting
	}
	seq++

	if err := os.MkdirAll(filepath.Dir(c.seqPath), 0o755); err != nil {
		return 0, err
	}
	if err := os.WriteFile(c.seqPath, []byte(strconv.Itoa(seq)), 0o644); err != nil {
		return 0, err
	}
	return seq, nil
}
