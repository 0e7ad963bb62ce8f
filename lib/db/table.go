package db

import (
	"container/list"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
)

var log = logger.GetLogger("db")

// entry is a key-value pair kept in insertion order
type entry struct {
	key   string
	value any
}

// Table is an ordered mapping from unique string keys to values.
// The zero value is not usable, create tables with NewTable.
type Table struct {
	index *xsync.MapOf[string, *list.Element] // key -> element of order
	order *list.List                          // entries in insertion order
}

// LoadReport summarises a BulkLoad.
type LoadReport struct {
	Loaded      int      // number of rows consumed
	Overwritten []string // derived keys that replaced an earlier row
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		index: xsync.NewMapOf[string, *list.Element](),
		order: list.New(),
	}
}

// TableFromRecord creates a table holding the fields of r in sorted key order.
func TableFromRecord(r Record) (*Table, error) {
	t := NewTable()
	for _, k := range r.Keys() {
		if err := t.Put(k, r[k]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// --------------------------------------------------------------------------
// Core operations
// --------------------------------------------------------------------------

// Get returns the value for key. The boolean reports whether the key exists.
func (t *Table) Get(key string) (any, bool) {
	el, ok := t.index.Load(key)
	if !ok {
		return nil, false
	}
	return el.Value.(*entry).value, true
}

// GetOr returns the value for key or def if the key does not exist.
func (t *Table) GetOr(key string, def any) any {
	if v, ok := t.Get(key); ok {
		return v
	}
	return def
}

// Has reports whether key exists.
func (t *Table) Has(key string) bool {
	_, ok := t.index.Load(key)
	return ok
}

// Put inserts or replaces the value for key. A replaced key keeps its position.
// Values outside the supported value domain are rejected with ErrInvalidValue.
func (t *Table) Put(key string, value any) error {
	v, err := Normalize(value)
	if err != nil {
		return err
	}
	if tbl, ok := v.(*Table); ok && tbl == t {
		return fmt.Errorf("%w: table cannot contain itself", ErrInvalidValue)
	}
	if el, ok := t.index.Load(key); ok {
		el.Value.(*entry).value = v
		return nil
	}
	t.index.Store(key, t.order.PushBack(&entry{key: key, value: v}))
	return nil
}

// Delete removes key. It fails with ErrKeyNotFound if the key is absent.
func (t *Table) Delete(key string) error {
	el, ok := t.index.LoadAndDelete(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	t.order.Remove(el)
	return nil
}

// Len returns the number of keys.
func (t *Table) Len() int {
	return t.order.Len()
}

// Keys returns all keys in insertion order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, t.order.Len())
	for el := t.order.Front(); el != nil; el = el.Next() {
		keys = append(keys, el.Value.(*entry).key)
	}
	return keys
}

// --------------------------------------------------------------------------
// Traversal
// --------------------------------------------------------------------------

// All returns a lazy traversal of all key-value pairs in insertion order.
// The sequence can be ranged over any number of times. Deleting the current
// key while ranging is allowed.
func (t *Table) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for el := t.order.Front(); el != nil; {
			next := el.Next()
			e := el.Value.(*entry)
			if !yield(e.key, e.value) {
				return
			}
			el = next
		}
	}
}

// ForEach calls visitor for every key-value pair in insertion order until the
// visitor returns false.
func (t *Table) ForEach(visitor func(key string, value any) bool) {
	for k, v := range t.All() {
		if !visitor(k, v) {
			return
		}
	}
}

// --------------------------------------------------------------------------
// Bulk population
// --------------------------------------------------------------------------

// BulkLoad consumes src exactly once. For each row the table key is taken from
// row[keyField] and the row is stored as a Record under that key. A key that
// is already present is overwritten (last write wins) and reported in
// LoadReport.Overwritten.
func (t *Table) BulkLoad(keyField string, src RowSource) (LoadReport, error) {
	var report LoadReport
	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("read row %d: %w", report.Loaded+1, err)
		}

		key, ok := row[keyField]
		if !ok {
			return report, fmt.Errorf("row %d: %w: field %q", report.Loaded+1, ErrKeyNotFound, keyField)
		}
		if t.Has(key) {
			log.Warningf("bulk load: row %d overwrites existing key %q", report.Loaded+1, key)
			report.Overwritten = append(report.Overwritten, key)
		}
		if err := t.Put(key, row); err != nil {
			return report, err
		}
		report.Loaded++
	}
	return report, nil
}

// --------------------------------------------------------------------------
// Comparison and copying
// --------------------------------------------------------------------------

// Equal reports whether both tables hold the same keys with equal values.
// Insertion order is not compared.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Len() != other.Len() {
		return false
	}
	for k, v := range t.All() {
		w, ok := other.Get(k)
		if !ok || !Equal(v, w) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the table preserving insertion order.
func (t *Table) Clone() *Table {
	out := NewTable()
	for k, v := range t.All() {
		out.index.Store(k, out.order.PushBack(&entry{key: k, value: Clone(v)}))
	}
	return out
}
