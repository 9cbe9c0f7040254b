// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - StyledWriter: A formatted single-sheet Excel report with conditional
//     score coloring, hyperlinks, and summary statistics
//   - WorkbookWriter: A plain multi-sheet Excel workbook with summary,
//     detailed, and score-comparison views
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: GitHub Flavored Markdown for documentation and sharing
//
// Design decision: We separate report writing from report data structures
// (which are in the model package) to follow the single responsibility
// principle. This allows adding new output formats without modifying
// the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output. Each Write call
// builds the whole document in memory first, so a failed build produces
// no output bytes at all.
package report
