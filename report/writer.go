package report

import (
	"io"

	"github.com/ratemysite/sitereport/model"
)

// Writer defines the interface for report output.
// Implementations render an ordered result set in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write renders the results to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(results []*model.Result) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for producing several report formats in one pass.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write result sets, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write renders the results with all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(results []*model.Result) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(results)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
