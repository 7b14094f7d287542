// Package logger builds the service's slog loggers.
//
// [New] returns a JSON stdout logger. [NewWithSentry] additionally fans log
// records out to Sentry when a DSN is configured, degrading gracefully to
// stdout-only otherwise. Context extractors inject request-scoped values
// (e.g. request ids) into every record. [NewNope] is a discard logger for
// tests.
package logger
