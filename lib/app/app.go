package app

import (
	"errors"
	"io/fs"
	"os"

	"github.com/ValentinKolb/pmkv/lib/common"
	"github.com/ValentinKolb/pmkv/lib/db"
	"github.com/ValentinKolb/pmkv/lib/identity"
	"github.com/ValentinKolb/pmkv/lib/store"
	"github.com/ValentinKolb/pmkv/lib/workflow"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("app")

// App is an opened pmKV data directory with its workflow engine.
type App struct {
	Config *common.Config
	DB     *db.Database
	Engine *workflow.Engine

	// Set only when Open bootstrapped a fresh database
	Bootstrapped bool
	Roster       db.LoadReport
	Credentials  []identity.Credential
}

// Open loads the database from the configured data directory. If there is
// no prior state, a fresh database is bootstrapped from the roster and saved
// right away, so generated credentials survive a crash.
func Open(config *common.Config, opts ...workflow.Option) (*App, error) {
	if err := config.Validate(); err != nil {
		return nil, store.Validationf("invalid configuration: %w", err)
	}

	a := &App{Config: config}
	d, found, err := store.Load(config.DataDir)
	if err != nil {
		return nil, err
	}

	if found {
		ensureNamespaces(d)
		a.DB = d
	} else if err := a.bootstrap(); err != nil {
		return nil, err
	}

	if a.Engine, err = workflow.NewEngine(a.DB, opts...); err != nil {
		return nil, err
	}
	if a.Bootstrapped {
		if err := a.Save(); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// ensureNamespaces adds tables missing from a loaded database
func ensureNamespaces(d *db.Database) {
	for _, name := range workflow.Namespaces {
		if !d.Has(name) {
			log.Warningf("loaded database has no %q table, creating it", name)
			_, _ = d.AddTable(name)
		}
	}
}

func (a *App) bootstrap() error {
	log.Infof("no prior state in %s, bootstrapping from %s", a.Config.DataDir, a.Config.RosterPath)

	d := db.NewDatabase()
	for _, name := range workflow.Namespaces {
		if _, err := d.AddTable(name); err != nil {
			return store.Classify(err)
		}
	}
	people, _ := d.Table(workflow.TablePeople)
	logins, _ := d.Table(workflow.TableLogin)
	documents, _ := d.Table(workflow.TableDocuments)

	roster, err := os.Open(a.Config.RosterPath)
	if err != nil {
		return store.Persistencef("open roster: %w", err)
	}
	defer roster.Close()

	report, err := people.BulkLoad(a.Config.RosterKey, db.NewCSVSource(roster))
	if err != nil {
		return store.Classify(err)
	}
	if len(report.Overwritten) > 0 {
		log.Warningf("roster has %d duplicate keys, the last row won: %v", len(report.Overwritten), report.Overwritten)
	}

	var feed db.RowSource
	if a.Config.LoginsPath != "" {
		f, err := os.Open(a.Config.LoginsPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Infof("no login feed at %s, generating passwords", a.Config.LoginsPath)
		case err != nil:
			return store.Persistencef("open login feed: %w", err)
		default:
			defer f.Close()
			feed = db.NewCSVSource(f)
		}
	}

	creds, err := identity.Bootstrap(people, logins, feed)
	if err != nil {
		return err
	}
	if err := documents.Put(workflow.EvaluationListKey, []any{}); err != nil {
		return store.Classify(err)
	}

	a.DB = d
	a.Bootstrapped = true
	a.Roster = report
	a.Credentials = creds
	log.Infof("bootstrapped %d people and %d logins", people.Len(), logins.Len())
	return nil
}

// Save writes the database to the data directory.
func (a *App) Save() error {
	return store.Save(a.DB, a.Config.DataDir)
}

// Close saves the database. The App must not be used afterwards.
func (a *App) Close() error {
	if err := a.Save(); err != nil {
		log.Errorf("saving %s failed: %v", a.Config.DataDir, err)
		return err
	}
	return nil
}
