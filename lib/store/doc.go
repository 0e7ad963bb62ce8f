// Package store persists a db.Database to a data directory and defines the
// error taxonomy shared by all pmKV packages.
//
// Persistence:
//
//	Save writes one file per top-level table, named after the table. Every
//	file starts with the magic number "PMKVTBL\x00" and a one byte format
//	version, followed by the table encoded with the binary codec of package
//	codec. Files are replaced atomically one by one, the directory as a whole
//	is not: a crash during Save can leave a mix of old and new tables.
//
//	Load returns ok=false when the data directory does not exist. This is
//	the signal to bootstrap a fresh database. Sub-directories and files whose
//	name starts with a dot (including leftover temp files) are ignored, any
//	other unreadable file fails the load.
//
// Errors:
//
//	Error carries a Kind (LookupFailure, ValidationFailure, AuthFailure,
//	PersistenceFailure or InternalFailure) and a message. KindOf classifies
//	arbitrary errors, including the sentinel errors of package db.
//
// Metrics:
//
//	Save and Load are timed with the go-metrics timers "store.save" and
//	"store.load" in common.Registry. The gauge "store.tables" holds the
//	number of tables written by the last save.
//
// Concurrency:
//
//	The store takes no locks. Two processes saving into the same directory
//	produce undefined results.
package store
