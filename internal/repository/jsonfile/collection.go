package jsonfile

import (
	"encoding/json"
	"fmt"
	"time"
)

// Collection is a typed view over one named collection of the store.
// notFound is the error returned for lookups and mutations of an id
// that does not exist.
type Collection[T any] struct {
	store    *Store
	name     string
	notFound error
}

func NewCollection[T any](store *Store, name string, notFound error) *Collection[T] {
	return &Collection[T]{store: store, name: name, notFound: notFound}
}

func decodeRecord[T any](r map[string]any) (*T, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &out, nil
}

func encodeRecord(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return out, nil
}

// asPartial turns a patch struct (pointer fields, omitempty tags) into
// the set of fields it actually carries.
func asPartial(patch any) (map[string]any, error) {
	return encodeRecord(patch)
}

var zeroTime = time.Time{}.Format(time.RFC3339Nano)

func hasTimestamp(r map[string]any, key string) bool {
	v, ok := r[key].(string)
	return ok && v != "" && v != zeroTime
}

func (c *Collection[T]) All() ([]T, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	records, err := c.store.readAll(c.name)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(records))
	for _, r := range records {
		item, err := decodeRecord[T](r)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	return out, nil
}

func (c *Collection[T]) Get(id uint64) (*T, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	records, err := c.store.readAll(c.name)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if recordID(r) == id {
			return decodeRecord[T](r)
		}
	}
	return nil, c.notFound
}

// FindFirst returns the first record matching pred, or (nil, nil) when
// nothing matches.
func (c *Collection[T]) FindFirst(pred func(T) bool) (*T, error) {
	items, err := c.All()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if pred(items[i]) {
			return &items[i], nil
		}
	}
	return nil, nil
}

// Insert appends item, assigning an id when it has none and stamping
// createdAt/updatedAt when absent. The stored record is written back
// into item.
func (c *Collection[T]) Insert(item *T) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	records, err := c.store.readAll(c.name)
	if err != nil {
		return err
	}
	rec, err := encodeRecord(item)
	if err != nil {
		return err
	}
	if recordID(rec) == 0 {
		rec["id"] = nextID(records)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if !hasTimestamp(rec, "createdAt") {
		rec["createdAt"] = now
	}
	if !hasTimestamp(rec, "updatedAt") {
		rec["updatedAt"] = now
	}
	records = append(records, rec)
	if err := c.store.writeAll(c.name, records); err != nil {
		return err
	}
	stored, err := decodeRecord[T](rec)
	if err != nil {
		return err
	}
	*item = *stored
	return nil
}

// Patch merges partial over the stored record, keeps the id unchanged,
// re-stamps updatedAt and returns the merged record.
func (c *Collection[T]) Patch(id uint64, partial map[string]any) (*T, error) {
	return c.Mutate(id, func(rec map[string]any) error {
		for k, v := range partial {
			rec[k] = v
		}
		return nil
	})
}

// Mutate runs fn on the raw record under the store lock. When fn
// returns an error nothing is written. The id is pinned and updatedAt
// re-stamped after fn runs.
func (c *Collection[T]) Mutate(id uint64, fn func(rec map[string]any) error) (*T, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	records, err := c.store.readAll(c.name)
	if err != nil {
		return nil, err
	}
	for i, r := range records {
		if recordID(r) != id {
			continue
		}
		if err := fn(r); err != nil {
			return nil, err
		}
		r["id"] = id
		r["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)
		records[i] = r
		if err := c.store.writeAll(c.name, records); err != nil {
			return nil, err
		}
		return decodeRecord[T](r)
	}
	return nil, c.notFound
}

func (c *Collection[T]) Delete(id uint64) error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	records, err := c.store.readAll(c.name)
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, r := range records {
		if recordID(r) != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return c.notFound
	}
	return c.store.writeAll(c.name, kept)
}

// DeleteWhere removes every record matching pred and reports how many
// were removed. Removing nothing is not an error.
func (c *Collection[T]) DeleteWhere(pred func(T) bool) (int, error) {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()

	records, err := c.store.readAll(c.name)
	if err != nil {
		return 0, err
	}
	kept := make([]map[string]any, 0, len(records))
	for _, r := range records {
		item, err := decodeRecord[T](r)
		if err != nil {
			return 0, err
		}
		if !pred(*item) {
			kept = append(kept, r)
		}
	}
	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, c.store.writeAll(c.name, kept)
}

// Clear replaces the collection contents with an empty set.
func (c *Collection[T]) Clear() error {
	c.store.mu.Lock()
	defer c.store.mu.Unlock()
	return c.store.writeAll(c.name, nil)
}
