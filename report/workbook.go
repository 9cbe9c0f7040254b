package report

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ratemysite/sitereport/model"
)

// Sheet names of the detailed workbook.
const (
	SummarySheetName    = "Summary"
	DetailedSheetName   = "Detailed Data"
	ComparisonSheetName = "Scores Comparison"
)

// summaryColumns is the fixed column order of the "Summary" sheet.
var summaryColumns = []string{
	"URL",
	"Company",
	"Overall Score",
	"Consumer Score",
	"Developer Score",
	"Investor Score",
	"Trust Score",
	"UX Score",
}

// comparisonScoreColumns is the fixed score column order of the
// "Scores Comparison" sheet, rendered after the URL column.
var comparisonScoreColumns = []string{
	"Overall Score",
	"Consumer Score",
	"Developer Score",
	"Investor Score",
	"Clarity Score",
	"Visual Design Score",
	"UX Score",
	"Trust Score",
	"Value Prop Score",
}

// WorkbookWriter renders the detailed multi-sheet Excel workbook: a
// fixed-column Summary sheet, a Detailed Data sheet with every observed
// field, and a numeric-only Scores Comparison sheet. All sheets are plain
// tabular output with no styling.
//
// When the result set is empty, none of the three named sheets is
// written; the workbook contains only the format-mandated default sheet.
// Callers must not assume any named sheet exists.
type WorkbookWriter struct {
	baseWriter
}

// NewWorkbookWriter creates a WorkbookWriter that outputs to the given writer.
func NewWorkbookWriter(output io.Writer) *WorkbookWriter {
	return &WorkbookWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the detailed workbook. All sheets are built in memory
// and committed in a single write, so a build failure produces no bytes.
func (w *WorkbookWriter) Write(results []*model.Result) (int, error) {
	f, err := buildDetailedWorkbook(results)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := f.WriteTo(w.output)
	return int(n), err
}

// SaveDetailed writes the detailed workbook to the file at path,
// overwriting any existing file. Write failures propagate as the
// underlying I/O error.
func SaveDetailed(results []*model.Result, path string) error {
	f, err := buildDetailedWorkbook(results)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}

// buildDetailedWorkbook lays out all sheets of the detailed report.
func buildDetailedWorkbook(results []*model.Result) (*excelize.File, error) {
	f := excelize.NewFile()
	if len(results) == 0 {
		return f, nil
	}

	if err := f.SetSheetName("Sheet1", SummarySheetName); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeSummarySheet(f, results); err != nil {
		_ = f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(DetailedSheetName); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeDetailedSheet(f, results); err != nil {
		_ = f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(ComparisonSheetName); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeComparisonSheet(f, results); err != nil {
		_ = f.Close()
		return nil, err
	}

	return f, nil
}

// writeHeaderCells writes a header row of column names on row 1.
func writeHeaderCells(f *excelize.File, sheet string, columns []string) error {
	for i, name := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}
	return nil
}

// writeSummarySheet writes the fixed-column summary, one row per record.
// Missing fields render as empty strings.
func writeSummarySheet(f *excelize.File, results []*model.Result) error {
	if err := writeHeaderCells(f, SummarySheetName, summaryColumns); err != nil {
		return err
	}
	for i, r := range results {
		row := i + 2
		for j, col := range summaryColumns {
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SummarySheetName, cell, r.Get(col)); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeDetailedSheet writes every observed field as a column, in
// first-seen order, dropping the internal raw payload field.
func writeDetailedSheet(f *excelize.File, results []*model.Result) error {
	var columns []string
	for _, key := range model.UnionKeys(results) {
		if key == model.RawField {
			continue
		}
		columns = append(columns, key)
	}

	if err := writeHeaderCells(f, DetailedSheetName, columns); err != nil {
		return err
	}

	for i, r := range results {
		row := i + 2
		for j, col := range columns {
			value, ok := r.Lookup(col)
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(DetailedSheetName, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeComparisonSheet writes the URL plus numeric-only score columns.
// Cells hold the integer score when the source value is a purely-digit
// string and are left empty otherwise - never "-" and never zero.
func writeComparisonSheet(f *excelize.File, results []*model.Result) error {
	columns := append([]string{model.URLField}, comparisonScoreColumns...)
	if err := writeHeaderCells(f, ComparisonSheetName, columns); err != nil {
		return err
	}

	for i, r := range results {
		row := i + 2
		urlCell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ComparisonSheetName, urlCell, r.Get(model.URLField)); err != nil {
			return err
		}

		for j, col := range comparisonScoreColumns {
			score, ok := model.ParseScore(r.Get(col))
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+2, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(ComparisonSheetName, cell, score); err != nil {
				return err
			}
		}
	}
	return nil
}
