// Package model defines the core data structures for RateMySite report export.
//
// This package contains the following main types:
//   - Result: One analyzed site's record, an ordered field-name-to-value mapping
//   - RowDescriptor: A caller-supplied (key, label) pair defining one styled report row
//   - Tier: The score coloring band (green/yellow/red) for conditional formatting
//   - ScoreAverage: The arithmetic mean of one score field across a result set
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (report, store, export) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage while preserving field order, which the spreadsheet
// writers depend on for stable column layout.
package model
