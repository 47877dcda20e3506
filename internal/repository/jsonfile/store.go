package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists each collection as one JSON array file under dataDir.
// Every operation is a whole-file read-modify-write under a single
// lock; individual calls are atomic with respect to each other, nothing
// spans multiple calls.
type Store struct {
	dataDir string
	mu      sync.Mutex
}

func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dataDir: dataDir}, nil
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dataDir, collection+".json")
}

// readAll returns the raw records of a collection. A missing file is an
// empty collection.
func (s *Store) readAll(collection string) ([]map[string]any, error) {
	data, err := os.ReadFile(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", collection, err)
	}
	return records, nil
}

func (s *Store) writeAll(collection string, records []map[string]any) error {
	if records == nil {
		records = []map[string]any{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}
	if err := os.WriteFile(s.path(collection), data, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	return nil
}

// recordID reads the numeric id of a raw record. JSON numbers decode as
// float64.
func recordID(r map[string]any) uint64 {
	if v, ok := r["id"].(float64); ok {
		return uint64(v)
	}
	return 0
}

func recordInt(r map[string]any, key string) int64 {
	if v, ok := r[key].(float64); ok {
		return int64(v)
	}
	return 0
}

// nextID assigns max(existing ids)+1, starting at 1 for an empty
// collection.
func nextID(records []map[string]any) uint64 {
	var max uint64
	for _, r := range records {
		if id := recordID(r); id > max {
			max = id
		}
	}
	return max + 1
}
