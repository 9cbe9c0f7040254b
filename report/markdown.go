package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"

	"github.com/ratemysite/sitereport/model"
)

// MarkdownWriter outputs the result set in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown output
//
// The table mirrors the styled Excel report's transposed layout:
// categories as rows, one column per analyzed site.
type MarkdownWriter struct {
	baseWriter

	// rows is the caller-supplied row schema, rendered in order.
	rows []model.RowDescriptor

	// now supplies the generation timestamp. Overridable for tests.
	now func() time.Time
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownClock overrides the generation-timestamp source.
// This exists for deterministic tests.
func WithMarkdownClock(now func() time.Time) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		if now != nil {
			w.now = now
		}
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given
// writer. The rows define which record fields appear and in what order.
func NewMarkdownWriter(output io.Writer, rows []model.RowDescriptor, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		rows:       rows,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the result set as GitHub Flavored Markdown.
func (w *MarkdownWriter) Write(results []*model.Result) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, results)

	if len(results) == 0 {
		md.PlainText(noResultsMessage)
		md.PlainText("")
		return len(md.String()), md.Build()
	}

	w.writeTable(md, results)
	w.writeSummary(md, results)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and generation metadata.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, results []*model.Result) {
	md.H1(styledTitle)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated on", w.now().Format(timestampFormat)},
			{"Total sites analyzed", strconv.Itoa(len(results))},
		},
	})
	md.PlainText("")
}

// writeTable writes the transposed category/site table.
func (w *MarkdownWriter) writeTable(md *markdown.Markdown, results []*model.Result) {
	header := make([]string, 0, len(results)+1)
	header = append(header, "Category")
	for _, r := range results {
		header = append(header, columnLabel(r))
	}

	rows := make([][]string, 0, len(w.rows))
	for _, desc := range w.rows {
		row := make([]string, 0, len(results)+1)
		row = append(row, desc.Label)
		for _, r := range results {
			value, ok := r.Lookup(desc.Key)
			if !ok || value == "" {
				value = missingPlaceholder
			}
			row = append(row, value)
		}
		rows = append(rows, row)
	}

	md.H2("Results")
	md.PlainText("")
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}

// writeSummary writes one average line per score field that has at least
// one valid numeric value, matching the styled report's summary block.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, results []*model.Result) {
	fields := make([]string, 0, len(w.rows))
	for _, desc := range w.rows {
		fields = append(fields, desc.Key)
	}

	averages := model.AverageScores(results, model.ScoreFields(fields))
	if len(averages) == 0 {
		return
	}

	md.H2("Summary Statistics")
	md.PlainText("")

	lines := make([]string, 0, len(averages))
	for _, avg := range averages {
		lines = append(lines, fmt.Sprintf("Average %s: %.1f", avg.Field, avg.Mean))
	}
	md.BulletList(lines...)
	md.PlainText("")
}
