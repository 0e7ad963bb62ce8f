package admin

import (
	"strings"

	"github.com/ValentinKolb/pmkv/lib/codec"
	"github.com/ValentinKolb/pmkv/lib/common"
	"github.com/ValentinKolb/pmkv/lib/db"
	"github.com/ValentinKolb/pmkv/lib/store"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("admin")

// node is a level of the tree the shell can stand on
type node interface {
	Get(key string) (any, bool)
	Put(key string, value any) error
	Delete(key string) error
	Keys() []string
}

// Shell gives raw access to a Database. It keeps a cursor that can descend
// into tables and records. Values are exchanged as JSON text.
type Shell struct {
	root  *db.Database
	cur   node
	path  []string
	codec codec.ICodec
}

// NewShell creates a shell positioned at the root of d.
func NewShell(d *db.Database) *Shell {
	return &Shell{
		root:  d,
		cur:   d,
		codec: codec.NewJSONCodec(),
	}
}

// Path returns the position of the cursor, "/" at the root.
func (s *Shell) Path() string {
	return "/" + strings.Join(s.path, "/")
}

// AtRoot reports whether the cursor is at the root.
func (s *Shell) AtRoot() bool {
	return len(s.path) == 0
}

// List returns the keys at the cursor.
func (s *Shell) List() []string {
	return s.cur.Keys()
}

// Get returns the value stored under key as JSON.
func (s *Shell) Get(key string) (out string, err error) {
	defer observe("get", &err)
	v, ok := s.cur.Get(key)
	if !ok {
		return "", store.Lookupf("%s has no key %q", s.Path(), key)
	}
	b, err := s.codec.Encode(v)
	if err != nil {
		return "", store.Errorf(store.KindInternal, "encode %q: %w", key, err)
	}
	return string(b), nil
}

// Show returns the whole node at the cursor as JSON.
func (s *Shell) Show() (out string, err error) {
	defer observe("show", &err)
	v := any(s.cur)
	if d, ok := s.cur.(*db.Database); ok {
		t := db.NewTable()
		for name, tbl := range d.All() {
			if err = t.Put(name, tbl); err != nil {
				return "", err
			}
		}
		v = t
	}
	b, err := s.codec.Encode(v)
	if err != nil {
		return "", store.Errorf(store.KindInternal, "encode %s: %w", s.Path(), err)
	}
	return string(b), nil
}

// Put parses value as JSON and stores it under key. At the root the value
// must be a JSON object, which becomes a table. Invalid input leaves the
// database untouched.
func (s *Shell) Put(key, value string) (err error) {
	defer observe("put", &err)
	if key == "" {
		return store.Validationf("key must not be empty")
	}
	v, err := s.codec.Decode([]byte(value))
	if err != nil {
		return store.Validationf("bad value: %w", err)
	}

	if s.AtRoot() {
		if err = store.ValidTableName(key); err != nil {
			return store.Validationf("bad table name: %w", err)
		}
		rec, ok := v.(db.Record)
		if !ok {
			return store.Validationf("top-level values must be JSON objects, got %T", v)
		}
		if v, err = db.TableFromRecord(rec); err != nil {
			return store.Classify(err)
		}
	}

	if err = s.cur.Put(key, v); err != nil {
		return store.Classify(err)
	}
	log.Infof("put %s key %q", s.Path(), key)
	return nil
}

// Delete removes key at the cursor.
func (s *Shell) Delete(key string) (err error) {
	defer observe("delete", &err)
	if err = s.cur.Delete(key); err != nil {
		return store.Classify(err)
	}
	log.Infof("deleted %s key %q", s.Path(), key)
	return nil
}

// Cd moves the cursor into the table or record stored under key.
func (s *Shell) Cd(key string) (err error) {
	defer observe("cd", &err)
	v, ok := s.cur.Get(key)
	if !ok {
		return store.Lookupf("%s has no key %q", s.Path(), key)
	}
	switch t := v.(type) {
	case *db.Table:
		s.cur = t
	case db.Record:
		s.cur = t
	default:
		return store.Validationf("%q is a %T, not a table or record", key, v)
	}
	s.path = append(s.path, key)
	return nil
}

// Home moves the cursor back to the root.
func (s *Shell) Home() {
	s.cur = s.root
	s.path = nil
}

func observe(op string, err *error) {
	common.CountAction("raw-"+op, *err == nil)
	if *err != nil {
		log.Debugf("raw %s rejected: %v", op, *err)
	}
}
