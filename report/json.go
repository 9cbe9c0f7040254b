package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/ratemysite/sitereport/model"
)

// JSONWriter outputs the result set in JSON format.
// This format is designed for tool integration and programmatic processing.
//
// Design decision: We use standard encoding/json rather than a third-party
// JSON library because:
// 1. It's part of the standard library (no extra dependencies)
// 2. It's sufficient for our needs
// 3. It provides consistent behavior across Go versions
//
// Records marshal with their field order intact (model.Result implements
// json.Marshaler), so downstream diffs of two exports stay stable.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string

	// now supplies the generation timestamp. Overridable for tests.
	now func() time.Time
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = ""
		w.indentString = "  "
	}
}

// WithJSONClock overrides the generation-timestamp source.
// This exists for deterministic tests.
func WithJSONClock(now func() time.Time) JSONWriterOption {
	return func(w *JSONWriter) {
		if now != nil {
			w.now = now
		}
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport is the envelope written around the result set.
//
// Design decision: We wrap the records rather than emitting a bare array
// because the envelope carries the aggregate data (averages, counts) that
// the spreadsheet reports also surface, keeping the formats equivalent.
type JSONReport struct {
	// GeneratedAt is when the report was rendered.
	GeneratedAt time.Time `json:"generated_at"`

	// Total is the number of analyzed sites.
	Total int `json:"total"`

	// Results holds the records with field order preserved.
	Results []*model.Result `json:"results"`

	// Averages holds the per-field score means over valid values,
	// omitting fields with no valid value.
	Averages []model.ScoreAverage `json:"averages,omitempty"`
}

// Write renders the result set as a JSON envelope.
func (w *JSONWriter) Write(results []*model.Result) (int, error) {
	envelope := &JSONReport{
		GeneratedAt: w.now(),
		Total:       len(results),
		Results:     results,
		Averages:    model.AverageScores(results, model.ScoreFields(model.UnionKeys(results))),
	}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(envelope, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(envelope)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
