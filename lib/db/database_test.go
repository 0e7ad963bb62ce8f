package db

import (
	"errors"
	"reflect"
	"testing"
)

func TestAddTable(t *testing.T) {
	d := NewDatabase()

	people, err := d.AddTable("people")
	if err != nil {
		t.Fatalf("AddTable failed: %v", err)
	}
	_ = people.Put("A1", Record{"first": "Ada"})

	if _, err := d.AddTable("people"); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("Expected ErrDuplicateName, got %v", err)
	}

	got, ok := d.Table("people")
	if !ok || got != people {
		t.Errorf("Expected AddTable to return the stored table")
	}

	_, _ = d.AddTable("login")
	if keys := d.Keys(); !reflect.DeepEqual(keys, []string{"people", "login"}) {
		t.Errorf("Unexpected table names %v", keys)
	}
}

func TestDatabaseOnlyHoldsTables(t *testing.T) {
	d := NewDatabase()
	for _, v := range []any{"text", Record{}, nil, (*Table)(nil)} {
		if err := d.Put("x", v); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("Put(%T): expected ErrInvalidValue, got %v", v, err)
		}
	}
	if err := d.Put("x", NewTable()); err != nil {
		t.Errorf("Put(table) failed: %v", err)
	}
	if err := d.Delete("x"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := d.Delete("x"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
}

func TestDatabaseEqual(t *testing.T) {
	a, b := NewDatabase(), NewDatabase()
	ta, _ := a.AddTable("projects")
	tb, _ := b.AddTable("projects")
	_ = ta.Put("p", Record{"approved": false})
	if a.Equal(b) {
		t.Errorf("Expected databases to differ")
	}
	_ = tb.Put("p", Record{"approved": false})
	if !a.Equal(b) {
		t.Errorf("Expected databases to be equal")
	}
}
