// Package logging constructs the slog loggers used across eitbwatch.
//
// Two output formats are supported: a compact console format for interactive
// use and line-delimited JSON for ingestion elsewhere. NewFromConfig tees
// output to stdout and a log file under the configured log directory.
package logging
