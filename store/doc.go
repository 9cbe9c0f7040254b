// Package store persists analysis result records between export runs.
// Records are kept as JSON documents in a single SQLite file, so a
// report can be re-rendered later without re-running the analysis.
package store
