package db

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

func TestPutGet(t *testing.T) {
	tbl := NewTable()

	testCases := []struct {
		name  string
		key   string
		value any
		want  any
	}{
		{"string", "a", "value", "value"},
		{"bool", "b", true, true},
		{"int normalised", "c", 42, int64(42)},
		{"nil", "d", nil, nil},
		{"string list", "e", []string{"x", "y"}, []any{"x", "y"}},
		{"record", "f", Record{"name": "n", "n": 1}, Record{"name": "n", "n": int64(1)}},
		{"nested map", "g", map[string]any{"l": []any{1, "a"}}, Record{"l": []any{int64(1), "a"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tbl.Put(tc.key, tc.value); err != nil {
				t.Fatalf("Put failed: %v", err)
			}
			got, ok := tbl.Get(tc.key)
			if !ok {
				t.Fatalf("Expected key %s to exist after Put", tc.key)
			}
			if !Equal(got, tc.want) {
				t.Errorf("Expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestPutRejectsUnsupportedValues(t *testing.T) {
	tbl := NewTable()
	for _, v := range []any{1.5, struct{}{}, []int{1}, uint64(1)} {
		if err := tbl.Put("k", v); !errors.Is(err, ErrInvalidValue) {
			t.Errorf("Put(%T): expected ErrInvalidValue, got %v", v, err)
		}
	}
	if tbl.Has("k") {
		t.Errorf("rejected value must not be stored")
	}
	if err := tbl.Put("self", tbl); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected a table containing itself to be rejected, got %v", err)
	}
}

func TestGetOr(t *testing.T) {
	tbl := NewTable()
	if got := tbl.GetOr("missing", "def"); got != "def" {
		t.Errorf("Expected default, got %v", got)
	}
	_ = tbl.Put("k", "v")
	if got := tbl.GetOr("k", "def"); got != "v" {
		t.Errorf("Expected v, got %v", got)
	}
}

func TestDelete(t *testing.T) {
	tbl := NewTable()
	_ = tbl.Put("a", "1")
	_ = tbl.Put("b", "2")

	if err := tbl.Delete("a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if tbl.Has("a") {
		t.Errorf("Expected a to be deleted")
	}
	if err := tbl.Delete("a"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Expected ErrKeyNotFound, got %v", err)
	}
	if got := tbl.Keys(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Expected [b], got %v", got)
	}
}

func TestInsertionOrder(t *testing.T) {
	tbl := NewTable()
	for _, k := range []string{"z", "a", "m", "b"} {
		_ = tbl.Put(k, k)
	}
	// overwriting keeps the original position
	_ = tbl.Put("a", "again")
	_ = tbl.Delete("m")
	_ = tbl.Put("m", "back")

	want := []string{"z", "a", "b", "m"}
	if got := tbl.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestTraversal(t *testing.T) {
	tbl := NewTable()
	for _, k := range []string{"1", "2", "3", "4"} {
		_ = tbl.Put(k, k)
	}

	t.Run("Restartable", func(t *testing.T) {
		seq := tbl.All()
		for i := 0; i < 2; i++ {
			var keys []string
			for k := range seq {
				keys = append(keys, k)
			}
			if !reflect.DeepEqual(keys, []string{"1", "2", "3", "4"}) {
				t.Errorf("pass %d: unexpected keys %v", i, keys)
			}
		}
	})

	t.Run("ForEachStops", func(t *testing.T) {
		count := 0
		tbl.ForEach(func(key string, _ any) bool {
			count++
			return key != "2"
		})
		if count != 2 {
			t.Errorf("Expected visitor to stop after 2 entries, got %d", count)
		}
	})

	t.Run("DeleteWhileRanging", func(t *testing.T) {
		c := tbl.Clone()
		for k := range c.All() {
			if err := c.Delete(k); err != nil {
				t.Fatalf("Delete(%s) failed: %v", k, err)
			}
		}
		if c.Len() != 0 {
			t.Errorf("Expected empty table, got %d entries", c.Len())
		}
		if tbl.Len() != 4 {
			t.Errorf("Clone must not share entries with the original")
		}
	})
}

func TestBulkLoad(t *testing.T) {
	t.Run("LastWriteWins", func(t *testing.T) {
		tbl := NewTable()
		report, err := tbl.BulkLoad("ID", NewSliceSource(
			Row{"ID": "A1", "first": "Ada"},
			Row{"ID": "B2", "first": "Bob"},
			Row{"ID": "A1", "first": "Alan"},
		))
		if err != nil {
			t.Fatalf("BulkLoad failed: %v", err)
		}
		if report.Loaded != 3 {
			t.Errorf("Expected 3 loaded rows, got %d", report.Loaded)
		}
		if !reflect.DeepEqual(report.Overwritten, []string{"A1"}) {
			t.Errorf("Expected A1 to be reported as overwritten, got %v", report.Overwritten)
		}
		v, _ := tbl.Get("A1")
		if got := v.(Record).Str("first"); got != "Alan" {
			t.Errorf("Expected last row to win, got %s", got)
		}
	})

	t.Run("MissingKeyField", func(t *testing.T) {
		tbl := NewTable()
		_, err := tbl.BulkLoad("ID", NewSliceSource(Row{"first": "Ada"}))
		if !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("Expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("ConsumedOnce", func(t *testing.T) {
		src := NewSliceSource(Row{"ID": "1"})
		tbl := NewTable()
		if _, err := tbl.BulkLoad("ID", src); err != nil {
			t.Fatal(err)
		}
		if _, err := src.Next(); !errors.Is(err, io.EOF) {
			t.Errorf("Expected exhausted source, got %v", err)
		}
	})

	t.Run("CSV", func(t *testing.T) {
		data := "ID,first,last,type\nA1,Ada,Lovelace,student\nF1,Grace,Hopper,faculty\n"
		tbl := NewTable()
		report, err := tbl.BulkLoad("ID", NewCSVSource(strings.NewReader(data)))
		if err != nil {
			t.Fatalf("BulkLoad failed: %v", err)
		}
		if report.Loaded != 2 || len(report.Overwritten) != 0 {
			t.Errorf("Unexpected report %+v", report)
		}
		v, _ := tbl.Get("F1")
		want := Record{"ID": "F1", "first": "Grace", "last": "Hopper", "type": "faculty"}
		if !Equal(v, want) {
			t.Errorf("Expected %v, got %v", want, v)
		}
	})
}

func TestEqualAndClone(t *testing.T) {
	a := NewTable()
	_ = a.Put("x", Record{"l": []any{"1"}})
	nested := NewTable()
	_ = nested.Put("n", true)
	_ = a.Put("t", nested)

	b := a.Clone()
	if !a.Equal(b) {
		t.Fatalf("Expected clone to be equal")
	}

	v, _ := b.Get("x")
	v.(Record)["l"] = []any{"2"}
	if a.Equal(b) {
		t.Errorf("Expected modified clone to differ")
	}
}
