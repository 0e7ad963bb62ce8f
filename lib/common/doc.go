// Package common contains the configuration, logging and metrics plumbing
// shared by all pmKV packages and the command line interface.
//
// Logging follows the Dragonboat logger model: every package obtains a named
// logger once with logger.GetLogger(name) and InitLoggers later installs the
// factory and levels for all of them. The installed loggers write through
// zerolog, either as JSON lines or as human-readable console output.
//
// Metrics are collected in two places: VictoriaMetrics counters for logins and
// workflow actions, and a go-metrics Registry for persistence timings.
// WriteMetrics renders both.
package common
