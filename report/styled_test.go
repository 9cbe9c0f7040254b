package report

import (
	"strings"
	"testing"

	"github.com/ratemysite/sitereport/model"
)

// TestDisplayLabel tests URL shortening for column headers.
func TestDisplayLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.Example.com/path", "Example.com"},
		{"https://a.com", "a.com"},
		{"http://www.b.org/x/y", "b.org"},
		{"not-a-url", "not-a-url"},
		{"ftp://c.net", "ftp://c.net"},
		{"", ""},
		// Only a leading "www." is stripped, and only from the host.
		{"https://www.www-archive.example", "www-archive.example"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			if got := displayLabel(tt.raw); got != tt.want {
				t.Errorf("displayLabel(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

// TestStyledWriterLayout tests the title block and header row.
func TestStyledWriterLayout(t *testing.T) {
	t.Parallel()

	t.Run("writes title block with timestamp and count", func(t *testing.T) {
		t.Parallel()

		w := NewStyledWriter(nil, testRows(), WithClock(testClock()))
		f := openWorkbook(t, w, testResults(t))

		if got := cellValue(t, f, StyledSheetName, "A1"); got != "RateMySite Analysis Report" {
			t.Errorf("unexpected title: %q", got)
		}
		if got := cellValue(t, f, StyledSheetName, "A2"); got != "Generated on: 2026-03-14 09:30:00" {
			t.Errorf("unexpected timestamp line: %q", got)
		}
		if got := cellValue(t, f, StyledSheetName, "A3"); got != "Total sites analyzed: 2" {
			t.Errorf("unexpected count line: %q", got)
		}
	})

	t.Run("header row has one column per record plus category", func(t *testing.T) {
		t.Parallel()

		w := NewStyledWriter(nil, testRows(), WithClock(testClock()))
		f := openWorkbook(t, w, testResults(t))

		if got := cellValue(t, f, StyledSheetName, "A5"); got != "Category" {
			t.Errorf("expected Category header, got %q", got)
		}
		if got := cellValue(t, f, StyledSheetName, "B5"); got != "a.com" {
			t.Errorf("expected a.com header, got %q", got)
		}
		if got := cellValue(t, f, StyledSheetName, "C5"); got != "b.com" {
			t.Errorf("expected b.com header, got %q", got)
		}
		if got := cellValue(t, f, StyledSheetName, "D5"); got != "" {
			t.Errorf("expected no header beyond record count, got %q", got)
		}
	})

	t.Run("record without URL field is labeled Unknown", func(t *testing.T) {
		t.Parallel()

		results := []*model.Result{newTestResult(t, "Company", "Acme")}
		w := NewStyledWriter(nil, testRows(), WithClock(testClock()))
		f := openWorkbook(t, w, results)

		if got := cellValue(t, f, StyledSheetName, "B5"); got != "Unknown" {
			t.Errorf("expected Unknown label, got %q", got)
		}
	})
}

// TestStyledWriterDataRows tests value rendering, placeholders, score
// styling, and URL hyperlinks.
func TestStyledWriterDataRows(t *testing.T) {
	t.Parallel()

	t.Run("round-trip scenario", func(t *testing.T) {
		t.Parallel()

		w := NewStyledWriter(nil, testRows(), WithClock(testClock()))
		f := openWorkbook(t, w, testResults(t))

		// Row 6 is URL, row 7 is Overall Score.
		if got := cellValue(t, f, StyledSheetName, "B7"); got != "85" {
			t.Errorf("expected score 85 in B7, got %q", got)
		}
		if got := cellValue(t, f, StyledSheetName, "C7"); got != "55" {
			t.Errorf("expected score 55 in C7, got %q", got)
		}

		// Green and red tiers must carry distinct styles, both different
		// from an unscored data cell.
		greenID, err := f.GetCellStyle(StyledSheetName, "B7")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		redID, err := f.GetCellStyle(StyledSheetName, "C7")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if greenID == redID {
			t.Error("expected green and red tier cells to have different styles")
		}

		// Summary block: two blank rows after the table, then the label
		// and one line per averaged score field.
		if got := cellValue(t, f, StyledSheetName, "A10"); got != "Summary Statistics" {
			t.Errorf("expected summary label in A10, got %q", got)
		}
		if got := cellValue(t, f, StyledSheetName, "A11"); got != "Average Overall Score:" {
			t.Errorf("expected average label in A11, got %q", got)
		}
		if got := cellValue(t, f, StyledSheetName, "B11"); got != "70.0" {
			t.Errorf("expected average 70.0 in B11, got %q", got)
		}
	})

	t.Run("missing and empty values render the placeholder", func(t *testing.T) {
		t.Parallel()

		results := []*model.Result{
			newTestResult(t, "URL", "https://a.com"),
			newTestResult(t, "URL", "https://b.com", "Overall Score", ""),
		}
		w := NewStyledWriter(nil, testRows(), WithClock(testClock()))
		f := openWorkbook(t, w, results)

		if got := cellValue(t, f, StyledSheetName, "B7"); got != "-" {
			t.Errorf("expected placeholder for missing field, got %q", got)
		}
		if got := cellValue(t, f, StyledSheetName, "C7"); got != "-" {
			t.Errorf("expected placeholder for empty field, got %q", got)
		}
	})

	t.Run("non-digit score values stay unstyled", func(t *testing.T) {
		t.Parallel()

		results := []*model.Result{
			newTestResult(t, "URL", "https://a.com", "Overall Score", "N/A"),
			newTestResult(t, "URL", "https://b.com", "Overall Score", "85"),
		}
		w := NewStyledWriter(nil, testRows(), WithClock(testClock()))
		f := openWorkbook(t, w, results)

		plainID, err := f.GetCellStyle(StyledSheetName, "B7")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tierID, err := f.GetCellStyle(StyledSheetName, "C7")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plainID == tierID {
			t.Error("expected N/A cell to differ from tier-styled cell")
		}
	})

	t.Run("URL cells become hyperlinks", func(t *testing.T) {
		t.Parallel()

		w := NewStyledWriter(nil, testRows(), WithClock(testClock()))
		f := openWorkbook(t, w, testResults(t))

		ok, target, err := f.GetCellHyperLink(StyledSheetName, "B6")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatal("expected B6 to be a hyperlink")
		}
		if target != "https://a.com" {
			t.Errorf("expected link target https://a.com, got %q", target)
		}
	})

	t.Run("summary omits score fields with no valid value", func(t *testing.T) {
		t.Parallel()

		rows := []model.RowDescriptor{
			{Key: "URL", Label: "URL"},
			{Key: "Overall Score", Label: "Overall Score"},
			{Key: "Trust Score", Label: "Trust Score"},
		}
		results := []*model.Result{
			newTestResult(t, "URL", "https://a.com", "Overall Score", "80", "Trust Score", "N/A"),
		}
		w := NewStyledWriter(nil, rows, WithClock(testClock()))
		f := openWorkbook(t, w, results)

		// Three data rows: summary label at row 11, first average at 12.
		if got := cellValue(t, f, StyledSheetName, "A12"); got != "Average Overall Score:" {
			t.Errorf("expected Overall Score average, got %q", got)
		}
		if got := cellValue(t, f, StyledSheetName, "A13"); got != "" {
			t.Errorf("expected no Trust Score line, got %q", got)
		}

		rowsDump, err := f.GetRows(StyledSheetName)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, row := range rowsDump {
			if strings.Contains(strings.Join(row, " "), "Average Trust Score") {
				t.Error("Trust Score must be omitted entirely from the summary")
			}
		}
	})
}

// TestStyledWriterEmptyInput tests the placeholder report.
func TestStyledWriterEmptyInput(t *testing.T) {
	t.Parallel()

	w := NewStyledWriter(nil, testRows(), WithClock(testClock()))
	f := openWorkbook(t, w, nil)

	if got := cellValue(t, f, StyledSheetName, "A5"); got != "No results to display" {
		t.Errorf("expected placeholder message, got %q", got)
	}
	if got := cellValue(t, f, StyledSheetName, "A3"); got != "Total sites analyzed: 0" {
		t.Errorf("expected zero count, got %q", got)
	}
	if got := cellValue(t, f, StyledSheetName, "B5"); got != "" {
		t.Errorf("expected no table columns, got %q", got)
	}
}

// TestStyledWriterColumnWidths tests the width clamp floor and ceiling.
func TestStyledWriterColumnWidths(t *testing.T) {
	t.Parallel()

	// The second record's URL is not an http(s) value, so its column
	// header carries all 60 characters verbatim.
	long := strings.Repeat("x", 60)
	results := []*model.Result{
		newTestResult(t, "URL", "a.b"),
		newTestResult(t, "URL", long),
	}
	rows := []model.RowDescriptor{{Key: "URL", Label: "URL"}}
	w := NewStyledWriter(nil, rows, WithClock(testClock()))
	f := openWorkbook(t, w, results)

	t.Run("short column gets the floor width", func(t *testing.T) {
		t.Parallel()

		width, err := f.GetColWidth(StyledSheetName, "B")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if width != minColumnWidth {
			t.Errorf("expected floor width %v, got %v", minColumnWidth, width)
		}
	})

	t.Run("long column gets the ceiling width", func(t *testing.T) {
		t.Parallel()

		width, err := f.GetColWidth(StyledSheetName, "C")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if width != maxColumnWidth {
			t.Errorf("expected ceiling width %v, got %v", maxColumnWidth, width)
		}
	})
}
