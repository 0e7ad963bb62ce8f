package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ValentinKolb/pmkv/lib/common"
	"github.com/ValentinKolb/pmkv/lib/identity"
	"github.com/ValentinKolb/pmkv/lib/store"
	"github.com/ValentinKolb/pmkv/lib/workflow"
)

const rosterCSV = `ID,first,last,type
A1,Ada,Lovelace,student
F1,Grace,Hopper,faculty
X1,Root,Admin,admin
`

func testConfig(t *testing.T, roster string) *common.Config {
	t.Helper()
	dir := t.TempDir()
	rosterPath := filepath.Join(dir, "persons.csv")
	if err := os.WriteFile(rosterPath, []byte(roster), 0o644); err != nil {
		t.Fatal(err)
	}
	return &common.Config{
		DataDir:    filepath.Join(dir, "database"),
		RosterPath: rosterPath,
		RosterKey:  "ID",
		LoginsPath: filepath.Join(dir, "login.csv"),
		LogLevel:   "info",
		LogFormat:  "json",
	}
}

func TestBootstrapOnce(t *testing.T) {
	cfg := testConfig(t, rosterCSV)

	first, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !first.Bootstrapped || len(first.Credentials) != 3 || first.Roster.Loaded != 3 {
		t.Fatalf("Expected bootstrap with 3 credentials, got %+v", first)
	}
	if _, err := os.Stat(cfg.DataDir); err != nil {
		t.Fatalf("Expected bootstrap to save immediately: %v", err)
	}

	// change something, close and reopen
	cred := first.Credentials[0]
	s, err := first.Engine.Login(cred.Username, cred.Password)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := first.Engine.Become(s, identity.Lead); err != nil {
		t.Fatalf("Become failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// a changed roster must not be ingested again
	if err := os.WriteFile(cfg.RosterPath, []byte("ID,first,last,type\nZ9,Zed,Zulu,student\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	second, err := Open(cfg)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	if second.Bootstrapped || second.Credentials != nil {
		t.Errorf("Expected second open to load prior state")
	}
	if !first.DB.Equal(second.DB) {
		t.Errorf("Expected reopened database to equal the saved one")
	}
	s, err = second.Engine.Login(cred.Username, cred.Password)
	if err != nil {
		t.Fatalf("Credentials from the first run must stay valid: %v", err)
	}
	if s.Login.Role != identity.Lead {
		t.Errorf("Expected persisted role Lead, got %s", s.Login.Role)
	}
}

func TestBootstrapWithLoginFeed(t *testing.T) {
	cfg := testConfig(t, rosterCSV)
	feed := "ID,username,password,role\nA1,ada.l,secret,student\nX1,root.a,toor,admin\n"
	if err := os.WriteFile(cfg.LoginsPath, []byte(feed), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(a.Credentials) != 0 {
		t.Errorf("Expected no generated credentials, got %v", a.Credentials)
	}
	s, err := a.Engine.Login("root.a", "toor")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !a.Engine.Can(s, workflow.ActAssignEvaluator) {
		t.Errorf("Expected admin permissions")
	}
}

func TestBootstrapFailures(t *testing.T) {
	t.Run("UnknownRoleLabel", func(t *testing.T) {
		cfg := testConfig(t, "ID,first,last,type\nJ1,Jim,Doe,janitor\n")
		_, err := Open(cfg)
		if !errors.Is(err, identity.ErrUnknownRoleLabel) {
			t.Fatalf("Expected ErrUnknownRoleLabel, got %v", err)
		}
		if _, err := os.Stat(cfg.DataDir); !os.IsNotExist(err) {
			t.Errorf("Failed bootstrap must not create the data directory")
		}
	})

	t.Run("MissingRoster", func(t *testing.T) {
		cfg := testConfig(t, rosterCSV)
		cfg.RosterPath = filepath.Join(t.TempDir(), "missing.csv")
		if _, err := Open(cfg); !store.IsKind(err, store.KindPersistence) {
			t.Fatalf("Expected persistence error, got %v", err)
		}
	})

	t.Run("MissingKeyField", func(t *testing.T) {
		cfg := testConfig(t, rosterCSV)
		cfg.RosterKey = "id"
		if _, err := Open(cfg); !store.IsKind(err, store.KindLookup) {
			t.Fatalf("Expected lookup error, got %v", err)
		}
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		cfg := testConfig(t, rosterCSV)
		cfg.LogLevel = "loud"
		if _, err := Open(cfg); !store.IsKind(err, store.KindValidation) {
			t.Fatalf("Expected validation error, got %v", err)
		}
	})
}

func TestMissingNamespacesAreCreated(t *testing.T) {
	cfg := testConfig(t, rosterCSV)
	a, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	_ = a.DB.Delete(workflow.TableDocuments)
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !b.DB.Has(workflow.TableDocuments) {
		t.Errorf("Expected documents table to be recreated")
	}
}
