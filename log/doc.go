// Package log provides structured logging for the export layer.
// Analysis records can carry very large field values, most notably the
// raw page payload, and logging one verbatim would bury the rest of the
// output. TruncatingHandler wraps any slog.Handler and caps string
// attribute values before they reach it.
package log
