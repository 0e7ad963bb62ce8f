package store

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ValentinKolb/pmkv/lib/codec"
	"github.com/ValentinKolb/pmkv/lib/common"
	"github.com/ValentinKolb/pmkv/lib/db"
	"github.com/lni/dragonboat/v4/logger"
	gometrics "github.com/rcrowley/go-metrics"
)

var log = logger.GetLogger("store")

const (
	magicNum      = "PMKVTBL\x00" // File format identifier
	formatVersion = 1             // Current file format version
)

var (
	tableCodec  = codec.NewBinaryCodec()
	saveTimer   = gometrics.GetOrRegisterTimer("store.save", common.Registry)
	loadTimer   = gometrics.GetOrRegisterTimer("store.load", common.Registry)
	tablesGauge = gometrics.GetOrRegisterGauge("store.tables", common.Registry)
)

// --------------------------------------------------------------------------
// Save
// --------------------------------------------------------------------------

// Save writes every top-level table of d to its own file in dir, creating dir
// if needed. Each file is written to a temporary file first and then renamed
// over the previous version. Table files of tables no longer present in d are
// removed. Table names are checked before anything is written; after that
// the first error aborts the save.
func Save(d *db.Database, dir string) error {
	defer saveTimer.UpdateSince(time.Now())

	for name := range d.All() {
		if err := ValidTableName(name); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Persistencef("create data directory %s: %w", dir, err)
	}

	written := make(map[string]bool, d.Len())
	for name, t := range d.All() {
		if err := writeTable(dir, name, t); err != nil {
			return err
		}
		written[name] = true
	}

	if err := removeStale(dir, written); err != nil {
		return err
	}

	tablesGauge.Update(int64(len(written)))
	log.Infof("saved %d tables to %s", len(written), dir)
	return nil
}

// ValidTableName rejects names that cannot be used as a file name or that
// Load would skip.
func ValidTableName(name string) error {
	if name == "" || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return Persistencef("table name %q cannot be stored as a file", name)
	}
	return nil
}

func writeTable(dir, name string, t *db.Table) (err error) {
	data, err := tableCodec.Encode(t)
	if err != nil {
		return Persistencef("encode table %s: %w", name, err)
	}

	f, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return Persistencef("create temp file for table %s: %w", name, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if _, err = bw.WriteString(magicNum); err != nil {
		return Persistencef("write table %s: %w", name, err)
	}
	if err = bw.WriteByte(formatVersion); err != nil {
		return Persistencef("write table %s: %w", name, err)
	}
	if _, err = bw.Write(data); err != nil {
		return Persistencef("write table %s: %w", name, err)
	}
	if err = bw.Flush(); err != nil {
		return Persistencef("write table %s: %w", name, err)
	}
	if err = f.Sync(); err != nil {
		return Persistencef("sync table %s: %w", name, err)
	}
	if err = f.Close(); err != nil {
		return Persistencef("close table %s: %w", name, err)
	}
	if err = os.Rename(tmp, filepath.Join(dir, name)); err != nil {
		return Persistencef("replace table %s: %w", name, err)
	}

	log.Debugf("wrote table %s (%d keys, %d bytes)", name, t.Len(), len(data)+len(magicNum)+1)
	return nil
}

// removeStale deletes table files that do not belong to a saved table.
// Files without the table header are left alone.
func removeStale(dir string, keep map[string]bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Persistencef("read data directory %s: %w", dir, err)
	}
	for _, e := range entries {
		if !isTableFile(e) || keep[e.Name()] {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if !hasHeader(path) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return Persistencef("remove stale table %s: %w", e.Name(), err)
		}
		log.Debugf("removed stale table file %s", e.Name())
	}
	return nil
}

func hasHeader(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, len(magicNum))
	n, _ := f.Read(header)
	return n == len(magicNum) && string(header) == magicNum
}

// --------------------------------------------------------------------------
// Load
// --------------------------------------------------------------------------

// Load rebuilds a Database from the table files in dir. The boolean is false
// if dir does not exist, which means there is no prior state. Sub-directories
// and dot-files are ignored.
func Load(dir string) (*db.Database, bool, error) {
	defer loadTimer.UpdateSince(time.Now())

	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		log.Infof("no data directory at %s", dir)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, Persistencef("read data directory %s: %w", dir, err)
	}

	d := db.NewDatabase()
	for _, e := range entries {
		if !isTableFile(e) {
			continue
		}
		t, err := readTable(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, false, err
		}
		if err := d.Put(e.Name(), t); err != nil {
			return nil, false, Persistencef("load table %s: %w", e.Name(), err)
		}
		log.Debugf("loaded table %s (%d keys)", e.Name(), t.Len())
	}

	log.Infof("loaded %d tables from %s", d.Len(), dir)
	return d, true, nil
}

func isTableFile(e fs.DirEntry) bool {
	return e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".")
}

func readTable(path string) (*db.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Persistencef("read %s: %w", path, err)
	}

	if len(data) < len(magicNum)+1 || string(data[:len(magicNum)]) != magicNum {
		return nil, Persistencef("invalid file format in %s: magic number mismatch", path)
	}
	if version := data[len(magicNum)]; version != formatVersion {
		return nil, Persistencef("unsupported version in %s: %d (expected %d)", path, version, formatVersion)
	}

	v, err := tableCodec.Decode(data[len(magicNum)+1:])
	if err != nil {
		return nil, Persistencef("decode %s: %w", path, err)
	}
	t, ok := v.(*db.Table)
	if !ok {
		return nil, Persistencef("decode %s: expected a table, got %T", path, v)
	}
	return t, nil
}
