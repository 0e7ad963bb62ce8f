package db

import (
	"fmt"
	"iter"
)

// Database is a table of tables. Top-level keys are namespace names and
// every top-level value is a *Table.
type Database struct {
	tables *Table
}

// NewDatabase creates an empty database.
func NewDatabase() *Database {
	return &Database{tables: NewTable()}
}

// AddTable creates an empty table under name and returns it.
// It fails with ErrDuplicateName if the name is already taken.
func (d *Database) AddTable(name string) (*Table, error) {
	if d.tables.Has(name) {
		return nil, fmt.Errorf("%w: table %q", ErrDuplicateName, name)
	}
	t := NewTable()
	if err := d.tables.Put(name, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Table returns the table stored under name.
func (d *Database) Table(name string) (*Table, bool) {
	v, ok := d.tables.Get(name)
	if !ok {
		return nil, false
	}
	t, ok := v.(*Table)
	return t, ok
}

// Get returns the table stored under name as a plain value.
func (d *Database) Get(name string) (any, bool) {
	return d.tables.Get(name)
}

// Put stores a table under name, replacing any previous table.
// Only *Table values are accepted.
func (d *Database) Put(name string, value any) error {
	t, ok := value.(*Table)
	if !ok || t == nil {
		return fmt.Errorf("%w: database values must be tables, got %T", ErrInvalidValue, value)
	}
	return d.tables.Put(name, t)
}

// Delete removes the table stored under name.
func (d *Database) Delete(name string) error {
	return d.tables.Delete(name)
}

// Has reports whether a table named name exists.
func (d *Database) Has(name string) bool {
	return d.tables.Has(name)
}

// Keys returns the table names in insertion order.
func (d *Database) Keys() []string {
	return d.tables.Keys()
}

// Len returns the number of tables.
func (d *Database) Len() int {
	return d.tables.Len()
}

// All returns a lazy traversal of all tables in insertion order.
func (d *Database) All() iter.Seq2[string, *Table] {
	return func(yield func(string, *Table) bool) {
		for k, v := range d.tables.All() {
			if !yield(k, v.(*Table)) {
				return
			}
		}
	}
}

// ForEach calls visitor for every table until the visitor returns false.
func (d *Database) ForEach(visitor func(name string, t *Table) bool) {
	for k, t := range d.All() {
		if !visitor(k, t) {
			return
		}
	}
}

// Equal reports whether both databases hold equal tables under the same names.
func (d *Database) Equal(other *Database) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.tables.Equal(other.tables)
}
