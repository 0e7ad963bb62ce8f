package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/pmkv/lib/common"
	"github.com/ValentinKolb/pmkv/lib/db"
	gometrics "github.com/rcrowley/go-metrics"
)

func sampleDatabase(t *testing.T) *db.Database {
	t.Helper()
	d := db.NewDatabase()

	people, _ := d.AddTable("people")
	_ = people.Put("A1", db.Record{
		"first": "Ada", "last": "Lovelace", "type": "student",
		"projs": []any{"p1"}, "invs": []any{},
		"msgs": []any{db.Record{"type": "inva", "author": "B2", "project": "p1"}},
	})
	_ = people.Put("F1", db.Record{"first": "Grace", "last": "Hopper", "type": "faculty"})

	login, _ := d.AddTable("login")
	_ = login.Put("ada.l", db.Record{"ID": "A1", "username": "ada.l", "password": "abcd0123", "role": int64(1)})

	projects, _ := d.AddTable("projects")
	_ = projects.Put("p1", db.Record{"name": "Compiler", "advisor": "pending", "approved": false, "report": nil})

	documents, _ := d.AddTable("documents")
	_ = documents.Put("evaluation list", []any{})

	return d
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "database")
	d := sampleDatabase(t)

	if err := Save(d, dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, ok, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatalf("Expected prior state after save")
	}
	if !d.Equal(loaded) {
		t.Errorf("Loaded database differs from saved database")
	}

	// saving the loaded database again is stable
	if err := Save(loaded, dir); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	again, _, err := Load(dir)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if !d.Equal(again) {
		t.Errorf("Database changed after second round trip")
	}
}

func TestLoadAbsentDirectory(t *testing.T) {
	d, ok, err := Load(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if ok || d != nil {
		t.Errorf("Expected no prior state, got ok=%v db=%v", ok, d)
	}
}

func TestLoadSkipsDirectoriesAndDotFiles(t *testing.T) {
	dir := t.TempDir()
	if err := Save(sampleDatabase(t), dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "backup"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".people.tmp-123"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, _, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Len() != 4 {
		t.Errorf("Expected 4 tables, got %v", d.Keys())
	}
}

func TestLoadCorruptFile(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"NoHeader", []byte("hello world")},
		{"WrongVersion", append([]byte(magicNum), 99, 7, 0, 0, 0, 0)},
		{"Truncated", append([]byte(magicNum), formatVersion, 7, 0, 0, 0, 3)},
		{"NotATable", append([]byte(magicNum), formatVersion, 2)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "people"), tc.data, 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, err := Load(dir)
			if !IsKind(err, KindPersistence) {
				t.Errorf("Expected persistence error, got %v", err)
			}
		})
	}
}

func TestSaveRemovesStaleTables(t *testing.T) {
	dir := t.TempDir()
	d := sampleDatabase(t)
	if err := Save(d, dir); err != nil {
		t.Fatal(err)
	}
	notes := filepath.Join(dir, "NOTES")
	if err := os.WriteFile(notes, []byte("not a table"), 0o644); err != nil {
		t.Fatal(err)
	}

	_ = d.Delete("documents")
	if err := Save(d, dir); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "documents")); !os.IsNotExist(err) {
		t.Errorf("Expected stale table file to be removed")
	}
	if _, err := os.Stat(notes); err != nil {
		t.Errorf("Expected foreign file to be kept: %v", err)
	}
}

func TestSaveRejectsBadTableNames(t *testing.T) {
	for _, name := range []string{"", ".hidden", "a/b"} {
		d := db.NewDatabase()
		_, _ = d.AddTable(name)
		if err := Save(d, t.TempDir()); !IsKind(err, KindPersistence) {
			t.Errorf("name %q: expected persistence error, got %v", name, err)
		}
	}
}

func TestSaveWritesNothingOnBadTableName(t *testing.T) {
	dir := t.TempDir()
	d := db.NewDatabase()
	people, _ := d.AddTable("people")
	_ = people.Put("A1", db.Record{"first": "Ada"})
	_, _ = d.AddTable("a/b")
	_, _ = d.AddTable("projects")

	if err := Save(d, dir); !IsKind(err, KindPersistence) {
		t.Fatalf("Expected persistence error, got %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no files after a rejected save, got %d", len(entries))
	}

	// an earlier save stays untouched
	_ = d.Delete("a/b")
	if err := Save(d, dir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	_, _ = d.AddTable(".hidden")
	_ = d.Delete("projects")
	if err := Save(d, dir); !IsKind(err, KindPersistence) {
		t.Fatalf("Expected persistence error, got %v", err)
	}
	loaded, found, err := Load(dir)
	if err != nil || !found {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Has("projects") || !loaded.Has("people") {
		t.Errorf("Expected the previous save to survive, got tables %v", loaded.Keys())
	}
}

func TestSaveIntoFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Save(sampleDatabase(t), file); !IsKind(err, KindPersistence) {
		t.Errorf("Expected persistence error, got %v", err)
	}
}

func TestPersistenceMetrics(t *testing.T) {
	timer := gometrics.GetOrRegisterTimer("store.save", common.Registry)
	before := timer.Count()

	if err := Save(sampleDatabase(t), t.TempDir()); err != nil {
		t.Fatal(err)
	}

	if timer.Count() != before+1 {
		t.Errorf("Expected save timer to be updated")
	}
	if v := gometrics.GetOrRegisterGauge("store.tables", common.Registry).Value(); v != 4 {
		t.Errorf("Expected 4 tables in gauge, got %d", v)
	}
}
