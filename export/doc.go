// Package export renders one result set into several report files at
// once. Each requested format is written concurrently, so a run that
// produces the styled report, the detailed workbook, and the JSON dump
// pays only for the slowest of the three.
package export
