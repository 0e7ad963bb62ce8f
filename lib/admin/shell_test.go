package admin

import (
	"reflect"
	"testing"

	"github.com/ValentinKolb/pmkv/lib/db"
	"github.com/ValentinKolb/pmkv/lib/store"
)

func testShell(t *testing.T) (*Shell, *db.Database) {
	t.Helper()
	d := db.NewDatabase()
	projects, _ := d.AddTable("projects")
	_ = projects.Put("p1", db.Record{"name": "Engine", "members": []any{"A1"}, "approved": false})
	documents, _ := d.AddTable("documents")
	_ = documents.Put("evaluation list", []any{"p1"})
	return NewShell(d), d
}

func TestNavigation(t *testing.T) {
	sh, _ := testShell(t)

	if sh.Path() != "/" || !reflect.DeepEqual(sh.List(), []string{"projects", "documents"}) {
		t.Fatalf("Unexpected root %s %v", sh.Path(), sh.List())
	}
	if err := sh.Cd("projects"); err != nil {
		t.Fatalf("Cd failed: %v", err)
	}
	if err := sh.Cd("p1"); err != nil {
		t.Fatalf("Cd into record failed: %v", err)
	}
	if sh.Path() != "/projects/p1" {
		t.Errorf("Unexpected path %s", sh.Path())
	}
	if !reflect.DeepEqual(sh.List(), []string{"approved", "members", "name"}) {
		t.Errorf("Unexpected record keys %v", sh.List())
	}

	if err := sh.Cd("members"); !store.IsKind(err, store.KindValidation) {
		t.Errorf("Expected validation error for list, got %v", err)
	}
	if err := sh.Cd("missing"); !store.IsKind(err, store.KindLookup) {
		t.Errorf("Expected lookup error, got %v", err)
	}

	sh.Home()
	if !sh.AtRoot() || sh.Path() != "/" {
		t.Errorf("Expected to be back at root, got %s", sh.Path())
	}
}

func TestGetAndShow(t *testing.T) {
	sh, _ := testShell(t)
	_ = sh.Cd("projects")

	got, err := sh.Get("p1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != `{"approved":false,"members":["A1"],"name":"Engine"}` {
		t.Errorf("Unexpected json %s", got)
	}
	if _, err := sh.Get("p2"); !store.IsKind(err, store.KindLookup) {
		t.Errorf("Expected lookup error, got %v", err)
	}

	sh.Home()
	all, err := sh.Show()
	if err != nil {
		t.Fatalf("Show failed: %v", err)
	}
	want := `{"projects":{"p1":{"approved":false,"members":["A1"],"name":"Engine"}},"documents":{"evaluation list":["p1"]}}`
	if all != want {
		t.Errorf("Expected %s, got %s", want, all)
	}
}

func TestPut(t *testing.T) {
	sh, d := testShell(t)
	_ = sh.Cd("projects")

	if err := sh.Put("p2", `{"name": "Robot", "members": ["B2"], "approved": true}`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	projects, _ := d.Table("projects")
	v, _ := projects.Get("p2")
	if !db.Equal(v, db.Record{"name": "Robot", "members": []any{"B2"}, "approved": true}) {
		t.Errorf("Unexpected stored value %#v", v)
	}

	before := projects.Clone()
	for _, bad := range []string{`{"name": `, `1.5`, `{"n": 1} x`, ``} {
		if err := sh.Put("p3", bad); !store.IsKind(err, store.KindValidation) {
			t.Errorf("Put(%q): expected validation error, got %v", bad, err)
		}
	}
	if !projects.Equal(before) {
		t.Errorf("Rejected input must not change the table")
	}

	// edits through a record cursor are visible in the table
	_ = sh.Cd("p1")
	if err := sh.Put("desc", `"hello"`); err != nil {
		t.Fatalf("Put into record failed: %v", err)
	}
	v, _ = projects.Get("p1")
	if v.(db.Record).Str("desc") != "hello" {
		t.Errorf("Expected record to be updated, got %v", v)
	}
}

func TestPutAtRoot(t *testing.T) {
	sh, d := testShell(t)

	if err := sh.Put("extra", `{"k": "v"}`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	tbl, ok := d.Table("extra")
	if !ok || tbl.GetOr("k", nil) != "v" {
		t.Errorf("Expected new table with k=v")
	}

	for _, bad := range []string{`[]`, `"text"`, `null`} {
		if err := sh.Put("bad", bad); !store.IsKind(err, store.KindValidation) {
			t.Errorf("Put(%s) at root: expected validation error, got %v", bad, err)
		}
	}
	if d.Has("bad") {
		t.Errorf("Rejected value must not be stored")
	}

	// names that cannot be saved as table files
	for _, name := range []string{"a/b", `a\b`, ".hidden"} {
		if err := sh.Put(name, `{}`); !store.IsKind(err, store.KindValidation) {
			t.Errorf("Put(%q) at root: expected validation error, got %v", name, err)
		}
		if d.Has(name) {
			t.Errorf("Table %q must not be created", name)
		}
	}
	if err := store.Save(d, t.TempDir()); err != nil {
		t.Errorf("Expected database to stay saveable, got %v", err)
	}

	// below the root these are ordinary keys
	if err := sh.Cd("extra"); err != nil {
		t.Fatal(err)
	}
	if err := sh.Put("a/b", `1`); err != nil {
		t.Errorf("Put(a/b) in a table failed: %v", err)
	}
}

func TestDelete(t *testing.T) {
	sh, d := testShell(t)
	_ = sh.Cd("documents")

	if err := sh.Delete("evaluation list"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := sh.Delete("evaluation list"); !store.IsKind(err, store.KindLookup) {
		t.Errorf("Expected lookup error, got %v", err)
	}
	documents, _ := d.Table("documents")
	if documents.Len() != 0 {
		t.Errorf("Expected empty documents table")
	}
}
