// Package db implements the in-memory record store of pmKV: ordered tables of
// duck-typed records and a database of named tables.
//
// A Table maps unique string keys to values and remembers insertion order, so
// traversal is deterministic. The order carries no meaning beyond that. Values
// are restricted to a small closed domain so that every table can be encoded
// by the codec package and restored without loss:
//
//   - nil
//   - bool
//   - int64 (other integer kinds are normalised on Put)
//   - string
//   - []any (lists of values)
//   - Record (map[string]any, a record with arbitrary fields)
//   - *Table (a nested table)
//
// A Database is a table whose values are tables. It provides one level of
// namespacing ("people", "login", "projects", "documents") and is never
// nested inside another Database.
//
// Tables can be populated in bulk from a RowSource, a single-pass sequence of
// field→value rows such as a CSV file. Rows whose derived keys collide are
// merged last-write-wins; the overwritten keys are reported in the LoadReport.
//
// Thread Safety:
//
//	The key index of a Table is an xsync.MapOf and tolerates concurrent
//	readers, but the table as a whole performs no locking. pmKV runs one
//	logical actor at a time; concurrent writers, and in particular several
//	processes sharing one data directory, are undefined behaviour.
package db
