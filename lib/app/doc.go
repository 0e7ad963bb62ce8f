// Package app wires configuration, persistence, identity and the workflow
// engine into one process-wide application handle.
//
// Open either loads the data directory or, when it does not exist yet,
// bootstraps people and logins from the configured feeds. Close saves the
// database. Only one process may use a data directory at a time.
package app
