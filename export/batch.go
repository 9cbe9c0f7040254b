package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ratemysite/sitereport/layout"
	"github.com/ratemysite/sitereport/model"
	"github.com/ratemysite/sitereport/report"
)

// Format identifies one output format of an export run.
type Format string

// Supported export formats.
const (
	// FormatStyled is the formatted single-sheet Excel report.
	FormatStyled Format = "styled"

	// FormatDetailed is the multi-sheet Excel workbook.
	FormatDetailed Format = "detailed"

	// FormatJSON is the JSON envelope.
	FormatJSON Format = "json"

	// FormatMarkdown is the Markdown report.
	FormatMarkdown Format = "markdown"
)

// fileNames maps each format to its output file name.
var fileNames = map[Format]string{
	FormatStyled:   "analysis_report.xlsx",
	FormatDetailed: "analysis_detailed.xlsx",
	FormatJSON:     "analysis_report.json",
	FormatMarkdown: "analysis_report.md",
}

// Exporter renders a result set into report files, one per format.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each format gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
type Exporter struct {
	// formats lists the output formats to render, in no particular order.
	formats []Format

	// rows is the row schema for the styled and Markdown reports.
	rows []model.RowDescriptor

	// concurrency is the maximum number of formats rendered at once.
	concurrency int

	// logger is used for run-level logging.
	logger *slog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithFormats selects which formats to render.
// Default is all supported formats.
func WithFormats(formats ...Format) Option {
	return func(e *Exporter) {
		if len(formats) > 0 {
			e.formats = formats
		}
	}
}

// WithRows overrides the row schema used by the styled and Markdown
// reports. Default is layout.Default().
func WithRows(rows []model.RowDescriptor) Option {
	return func(e *Exporter) {
		if len(rows) > 0 {
			e.rows = rows
		}
	}
}

// WithConcurrency sets the maximum number of formats rendered at once.
// Default is 4 if not specified.
func WithConcurrency(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithLogger sets a custom logger for the export run.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExporter creates an Exporter. With no options it renders every
// supported format using the default row schema.
func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		formats:     []Format{FormatStyled, FormatDetailed, FormatJSON, FormatMarkdown},
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.rows == nil {
		e.rows = layout.Default()
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	return e
}

// Run renders the result set into dir, one file per configured format.
// It returns the paths written. A failed format cancels the remaining
// ones and the first error is returned; already-written files are left
// in place.
func (e *Exporter) Run(ctx context.Context, results []*model.Result, dir string) ([]string, error) {
	e.logger.Info("starting export",
		"total_results", len(results),
		"formats", len(e.formats),
		"dir", dir,
	)

	startTime := time.Now()

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var mu sync.Mutex
	var paths []string

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for _, format := range e.formats {
		format := format
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			path, err := e.renderFormat(format, results, dir)
			if err != nil {
				e.logger.Warn("format failed",
					"format", string(format),
					"error", err,
				)
				return fmt.Errorf("export %s: %w", format, err)
			}

			mu.Lock()
			paths = append(paths, path)
			mu.Unlock()

			e.logger.Info("format written",
				"format", string(format),
				"path", path,
			)
			return nil
		})
	}

	err := g.Wait()

	e.logger.Info("export complete",
		"files", len(paths),
		"elapsed", time.Since(startTime),
	)

	return paths, err
}

// renderFormat writes one format's report file and returns its path.
func (e *Exporter) renderFormat(format Format, results []*model.Result, dir string) (string, error) {
	name, ok := fileNames[format]
	if !ok {
		return "", fmt.Errorf("unsupported format %q", format)
	}
	path := filepath.Join(dir, name)

	switch format {
	case FormatStyled:
		return path, report.SaveStyled(results, path, e.rows)
	case FormatDetailed:
		return path, report.SaveDetailed(results, path)
	case FormatJSON:
		return path, writeThrough(path, func(f *os.File) report.Writer {
			return report.NewJSONWriter(f, report.WithPrettyPrint())
		}, results)
	case FormatMarkdown:
		return path, writeThrough(path, func(f *os.File) report.Writer {
			return report.NewMarkdownWriter(f, e.rows)
		}, results)
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}
}

// writeThrough creates the output file, renders through the writer, and
// closes the file, reporting the first error encountered.
func writeThrough(path string, build func(*os.File) report.Writer, results []*model.Result) error {
	f, err := os.Create(path) //nolint:gosec // Caller-chosen output path is intentional
	if err != nil {
		return err
	}

	if _, err := build(f).Write(results); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
