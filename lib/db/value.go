package db

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrKeyNotFound is returned when deleting or descending into a missing key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrDuplicateName is returned when a table name is already taken.
	ErrDuplicateName = errors.New("duplicate name")
	// ErrInvalidValue is returned for values outside the supported value domain.
	ErrInvalidValue = errors.New("invalid value")
)

// Record is a duck-typed mapping from field name to value.
// Two records in the same table may have entirely different fields.
type Record map[string]any

// Get returns the value of a field.
func (r Record) Get(key string) (any, bool) {
	v, ok := r[key]
	return v, ok
}

// Put sets a field after normalising the value.
func (r Record) Put(key string, value any) error {
	v, err := Normalize(value)
	if err != nil {
		return err
	}
	r[key] = v
	return nil
}

// Delete removes a field. It fails with ErrKeyNotFound if the field is absent.
func (r Record) Delete(key string) error {
	if _, ok := r[key]; !ok {
		return fmt.Errorf("%w: %q", ErrKeyNotFound, key)
	}
	delete(r, key)
	return nil
}

// Keys returns the field names in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Str returns the string field key or "" if it is absent or not a string.
func (r Record) Str(key string) string {
	s, _ := r[key].(string)
	return s
}

// Bool returns the boolean field key or false if it is absent or not a bool.
func (r Record) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

// Strings returns the list field key as strings, skipping non-string elements.
// A missing field yields nil.
func (r Record) Strings(key string) []string {
	list, _ := r[key].([]any)
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// StringList converts a []string into the list representation used in records.
func StringList(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

// --------------------------------------------------------------------------
// Value domain
// --------------------------------------------------------------------------

// Normalize converts v into the value domain of the store, deep-copying lists
// and records. Nested tables are kept by reference.
func Normalize(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case bool, string, int64:
		return t, nil
	case int:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case []string:
		return StringList(t), nil
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			n, err := Normalize(e)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	case Row:
		out := make(Record, len(t))
		for k, e := range t {
			out[k] = e
		}
		return out, nil
	case Record:
		return normalizeMap(t)
	case map[string]any:
		return normalizeMap(t)
	case *Table:
		if t == nil {
			return nil, fmt.Errorf("%w: nil table", ErrInvalidValue)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, v)
	}
}

func normalizeMap(m map[string]any) (Record, error) {
	out := make(Record, len(m))
	for k, e := range m {
		n, err := Normalize(e)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		out[k] = n
	}
	return out, nil
}

// Equal reports whether two values of the store's value domain have equal content.
// Tables compare by content, not by identity or insertion order.
func Equal(a, b any) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	case int64:
		y, ok := b.(int64)
		return ok && x == y
	case string:
		y, ok := b.(string)
		return ok && x == y
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case Record:
		y, ok := b.(Record)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, v := range x {
			w, found := y[k]
			if !found || !Equal(v, w) {
				return false
			}
		}
		return true
	case *Table:
		y, ok := b.(*Table)
		return ok && x.Equal(y)
	default:
		return false
	}
}

// Clone returns a deep copy of a value. Nested tables are copied as well.
func Clone(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	case Record:
		out := make(Record, len(t))
		for k, e := range t {
			out[k] = Clone(e)
		}
		return out
	case *Table:
		return t.Clone()
	default:
		return v
	}
}
