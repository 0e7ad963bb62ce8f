// Package cmd implements the command-line interface of pmKV. Every command
// opens the data directory, runs one action and saves the database again.
//
// The package is organized into several subpackages:
//
//   - member: Commands for project members (invitations, joined projects)
//   - lead: Commands for project leads (create, invite, submit, report)
//   - faculty: Commands for faculty members and advisors (requests, evaluations)
//   - admin: Commands for administrators (evaluation queue, raw database access)
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See pmkv -help for a list of all commands.
package cmd
