package report

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/ratemysite/sitereport/model"
)

// Styled report layout constants.
const (
	// StyledSheetName is the single worksheet name of the styled report.
	StyledSheetName = "RateMySite Analysis"

	// styledTitle is the report title written to cell A1.
	styledTitle = "RateMySite Analysis Report"

	// missingPlaceholder fills data cells whose field is missing or empty.
	missingPlaceholder = "-"

	// noResultsMessage is written instead of the table when there is
	// nothing to report.
	noResultsMessage = "No results to display"

	// tableStartRow is the header row of the transposed table. Rows 1-3
	// hold the title block and row 4 is left blank.
	tableStartRow = 5

	// timestampFormat renders the generation time in row 2.
	timestampFormat = "2006-01-02 15:04:05"

	// unknownLabel heads a column whose record has no URL field.
	unknownLabel = "Unknown"
)

// Column sizing bounds. Every column is sized to its longest stringified
// cell value plus padding, clamped to [minColumnWidth, maxColumnWidth].
const (
	columnWidthPadding = 2
	minColumnWidth     = 10.0
	maxColumnWidth     = 50.0
)

// Fixed palette of the styled report.
const (
	headerFillColor    = "366092"
	headerFontColor    = "FFFFFF"
	subheaderFillColor = "D9E2F3"
	linkFontColor      = "0000FF"
)

// tierStyle describes the conditional formatting of one score tier.
//
// Design decision: The tier palette lives in one enumerated table instead
// of inline literals at the styling call sites, so the mapping from tier
// to appearance is testable on its own.
type tierStyle struct {
	fillColor string
	bold      bool
}

// tierStyles maps each score tier to its cell appearance.
var tierStyles = map[model.Tier]tierStyle{
	model.TierGreen:  {fillColor: "C6EFCE", bold: true},
	model.TierYellow: {fillColor: "FFEB9C", bold: true},
	model.TierRed:    {fillColor: "FFC7CE", bold: true},
}

// StyledWriter renders the formatted single-sheet Excel report: a
// transposed table (categories as rows, analyzed sites as columns) with
// score-based conditional coloring, clickable URL cells, and a summary
// statistics block.
type StyledWriter struct {
	baseWriter

	// rows is the caller-supplied row schema, rendered in order.
	rows []model.RowDescriptor

	// now supplies the generation timestamp. Overridable for tests.
	now func() time.Time
}

// StyledOption configures a StyledWriter.
type StyledOption func(*StyledWriter)

// WithClock overrides the generation-timestamp source.
// This exists for deterministic tests.
func WithClock(now func() time.Time) StyledOption {
	return func(w *StyledWriter) {
		if now != nil {
			w.now = now
		}
	}
}

// NewStyledWriter creates a StyledWriter that outputs to the given writer.
// The rows define which record fields appear and in what order.
func NewStyledWriter(output io.Writer, rows []model.RowDescriptor, opts ...StyledOption) *StyledWriter {
	w := &StyledWriter{
		baseWriter: newBaseWriter(output),
		rows:       rows,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the styled report. The workbook is built fully in memory
// before any bytes reach the output.
func (w *StyledWriter) Write(results []*model.Result) (int, error) {
	f, err := buildStyledWorkbook(results, w.rows, w.now())
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := f.WriteTo(w.output)
	return int(n), err
}

// SaveStyled writes the styled report to the file at path, overwriting
// any existing file. Write failures propagate as the underlying I/O error.
func SaveStyled(results []*model.Result, path string, rows []model.RowDescriptor) error {
	f, err := buildStyledWorkbook(results, rows, time.Now())
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}

// styledStyles holds the style IDs registered with a workbook.
type styledStyles struct {
	title     int
	header    int
	subheader int
	data      int
	link      int
	summary   int
	tiers     map[model.Tier]int
}

// thinBorders returns the thin border set applied to every table cell.
func thinBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

// newStyledStyles registers the fixed style set on the workbook.
func newStyledStyles(f *excelize.File) (*styledStyles, error) {
	s := &styledStyles{tiers: make(map[model.Tier]int, len(tierStyles))}

	var err error
	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	}); err != nil {
		return nil, err
	}

	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12, Color: headerFontColor},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	}); err != nil {
		return nil, err
	}

	if s.subheader, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{subheaderFillColor}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
		Border: thinBorders(),
	}); err != nil {
		return nil, err
	}

	if s.data, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	}); err != nil {
		return nil, err
	}

	if s.link, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: linkFontColor, Underline: "single"},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	}); err != nil {
		return nil, err
	}

	if s.summary, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	}); err != nil {
		return nil, err
	}

	for tier, ts := range tierStyles {
		id, err := f.NewStyle(&excelize.Style{
			Font: &excelize.Font{Bold: ts.bold},
			Fill: excelize.Fill{Type: "pattern", Color: []string{ts.fillColor}, Pattern: 1},
			Alignment: &excelize.Alignment{
				Horizontal: "center",
				Vertical:   "center",
			},
			Border: thinBorders(),
		})
		if err != nil {
			return nil, err
		}
		s.tiers[tier] = id
	}

	return s, nil
}

// widthTracker records the longest stringified value seen per column so
// widths can be applied once after all cells are written.
type widthTracker map[int]int

// observe updates the tracked maximum for a column.
func (wt widthTracker) observe(col int, value string) {
	if n := utf8.RuneCountInString(value); n > wt[col] {
		wt[col] = n
	}
}

// apply sets every tracked column's width to
// clamp(maxLen+padding, minColumnWidth, maxColumnWidth).
func (wt widthTracker) apply(f *excelize.File, sheet string) error {
	for col, maxLen := range wt {
		width := float64(maxLen + columnWidthPadding)
		if width < minColumnWidth {
			width = minColumnWidth
		}
		if width > maxColumnWidth {
			width = maxColumnWidth
		}
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return err
		}
	}
	return nil
}

// styledSheet bundles the workbook, width tracking, and styles while the
// styled report is being laid out.
type styledSheet struct {
	f      *excelize.File
	widths widthTracker
	styles *styledStyles
}

// setCell writes a value and records its length for column sizing.
// It returns the cell name for follow-up styling.
func (s *styledSheet) setCell(col, row int, value string) (string, error) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", err
	}
	if err := s.f.SetCellValue(StyledSheetName, cell, value); err != nil {
		return "", err
	}
	s.widths.observe(col, value)
	return cell, nil
}

// setStyledCell writes a value and applies a style in one step.
func (s *styledSheet) setStyledCell(col, row int, value string, styleID int) error {
	cell, err := s.setCell(col, row, value)
	if err != nil {
		return err
	}
	return s.f.SetCellStyle(StyledSheetName, cell, cell, styleID)
}

// buildStyledWorkbook lays out the complete styled report in memory.
func buildStyledWorkbook(results []*model.Result, rows []model.RowDescriptor, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", StyledSheetName); err != nil {
		_ = f.Close()
		return nil, err
	}

	styles, err := newStyledStyles(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	sheet := &styledSheet{f: f, widths: make(widthTracker), styles: styles}
	if err := sheet.build(results, rows, now); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// build writes the title block, table, summary block, and column widths.
func (s *styledSheet) build(results []*model.Result, rows []model.RowDescriptor, now time.Time) error {
	if err := s.writeTitleBlock(results, now); err != nil {
		return err
	}

	if len(results) == 0 {
		if _, err := s.setCell(1, tableStartRow, noResultsMessage); err != nil {
			return err
		}
		return s.widths.apply(s.f, StyledSheetName)
	}

	if err := s.writeHeaderRow(results); err != nil {
		return err
	}

	row := tableStartRow + 1
	for _, desc := range rows {
		if err := s.writeDataRow(row, desc, results); err != nil {
			return err
		}
		row++
	}

	if err := s.writeSummaryBlock(row, results, rows); err != nil {
		return err
	}

	return s.widths.apply(s.f, StyledSheetName)
}

// writeTitleBlock writes the title, generation timestamp, and record count.
func (s *styledSheet) writeTitleBlock(results []*model.Result, now time.Time) error {
	if err := s.setStyledCell(1, 1, styledTitle, s.styles.title); err != nil {
		return err
	}
	if _, err := s.setCell(1, 2, "Generated on: "+now.Format(timestampFormat)); err != nil {
		return err
	}
	_, err := s.setCell(1, 3, fmt.Sprintf("Total sites analyzed: %d", len(results)))
	return err
}

// writeHeaderRow writes the "Category" header and one labeled column per
// analyzed site.
func (s *styledSheet) writeHeaderRow(results []*model.Result) error {
	if err := s.setStyledCell(1, tableStartRow, "Category", s.styles.header); err != nil {
		return err
	}
	for i, r := range results {
		if err := s.setStyledCell(i+2, tableStartRow, columnLabel(r), s.styles.header); err != nil {
			return err
		}
	}
	return nil
}

// writeDataRow writes one descriptor's row: the label in column A and one
// value cell per record, with score or hyperlink styling where applicable.
func (s *styledSheet) writeDataRow(row int, desc model.RowDescriptor, results []*model.Result) error {
	if err := s.setStyledCell(1, row, desc.Label, s.styles.subheader); err != nil {
		return err
	}

	for i, r := range results {
		col := i + 2
		value, ok := r.Lookup(desc.Key)
		display := value
		if !ok || value == "" {
			display = missingPlaceholder
		}

		cell, err := s.setCell(col, row, display)
		if err != nil {
			return err
		}

		styleID := s.styles.data
		if model.IsScoreField(desc.Key) {
			if tier := model.TierForValue(display); tier != model.TierNone {
				styleID = s.styles.tiers[tier]
			}
		} else if desc.Key == model.URLField && display != missingPlaceholder {
			// A field is either a score or the URL, never both: the score
			// branch matches on key substring, this one on the exact key.
			if err := s.f.SetCellHyperLink(StyledSheetName, cell, value, "External"); err != nil {
				return err
			}
			styleID = s.styles.link
		}

		if err := s.f.SetCellStyle(StyledSheetName, cell, cell, styleID); err != nil {
			return err
		}
	}
	return nil
}

// writeSummaryBlock writes the "Summary Statistics" label and one average
// line per score field that has at least one valid numeric value.
// nextRow is the first row after the data table; the label lands after a
// two-row gap.
func (s *styledSheet) writeSummaryBlock(nextRow int, results []*model.Result, rows []model.RowDescriptor) error {
	row := nextRow + 2
	if err := s.setStyledCell(1, row, "Summary Statistics", s.styles.summary); err != nil {
		return err
	}
	row++

	fields := make([]string, 0, len(rows))
	for _, desc := range rows {
		fields = append(fields, desc.Key)
	}

	for _, avg := range model.AverageScores(results, model.ScoreFields(fields)) {
		if _, err := s.setCell(1, row, fmt.Sprintf("Average %s:", avg.Field)); err != nil {
			return err
		}
		if _, err := s.setCell(2, row, fmt.Sprintf("%.1f", avg.Mean)); err != nil {
			return err
		}
		row++
	}
	return nil
}

// columnLabel derives the header label for a record's column.
func columnLabel(r *model.Result) string {
	raw, ok := r.Lookup(model.URLField)
	if !ok {
		return unknownLabel
	}
	return displayLabel(raw)
}

// displayLabel shortens a URL to its host with the scheme stripped and a
// leading "www." removed. Values without an http(s) scheme are used
// verbatim; this never fails.
func displayLabel(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return raw
	}
	rest := raw[strings.Index(raw, "//")+2:]
	host, _, _ := strings.Cut(rest, "/")
	return strings.TrimPrefix(host, "www.")
}
