package layout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestLoad tests layout file loading and error reporting.
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads rows from a YAML file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "layout.yml")
		content := `rows:
  - key: URL
  - key: Overall Score
    label: Overall
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write layout file: %v", err)
		}

		lf, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(lf.Rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(lf.Rows))
		}
		if lf.Rows[0].Key != "URL" || lf.Rows[0].Label != "" {
			t.Errorf("unexpected first row: %+v", lf.Rows[0])
		}
		if lf.Rows[1].Key != "Overall Score" || lf.Rows[1].Label != "Overall" {
			t.Errorf("unexpected second row: %+v", lf.Rows[1])
		}
	})

	t.Run("returns ErrLayoutNotFound for a missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
		if !errors.Is(err, ErrLayoutNotFound) {
			t.Errorf("expected ErrLayoutNotFound, got %v", err)
		}
	})

	t.Run("returns an error for malformed YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yml")
		if err := os.WriteFile(path, []byte("rows: [key: {"), 0600); err != nil {
			t.Fatalf("failed to write layout file: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Error("expected a parse error")
		}
	})
}

// TestFileDescriptors tests label defaulting.
func TestFileDescriptors(t *testing.T) {
	t.Parallel()

	lf := &File{Rows: []Row{
		{Key: "URL"},
		{Key: "Overall Score", Label: "Overall"},
	}}

	descs := lf.Descriptors()
	if len(descs) != 2 {
		t.Fatalf("expected 2 descriptors, got %d", len(descs))
	}
	if descs[0].Key != "URL" || descs[0].Label != "URL" {
		t.Errorf("expected label to default to key, got %+v", descs[0])
	}
	if descs[1].Key != "Overall Score" || descs[1].Label != "Overall" {
		t.Errorf("expected explicit label to win, got %+v", descs[1])
	}
}

// TestFind tests layout file discovery with an explicit path.
func TestFind(t *testing.T) {
	t.Parallel()

	t.Run("returns the explicit path when it exists", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "layout.yml")
		if err := os.WriteFile(path, []byte("rows: []\n"), 0600); err != nil {
			t.Fatalf("failed to write layout file: %v", err)
		}
		if got := Find(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("returns empty for a missing explicit path", func(t *testing.T) {
		t.Parallel()

		if got := Find(filepath.Join(t.TempDir(), "missing.yml")); got != "" {
			t.Errorf("expected empty path, got %q", got)
		}
	})
}

// TestDefault tests the built-in row schema.
func TestDefault(t *testing.T) {
	t.Parallel()

	descs := Default()
	if len(descs) == 0 {
		t.Fatal("expected a non-empty default schema")
	}
	if descs[0].Key != "URL" {
		t.Errorf("expected URL first, got %q", descs[0].Key)
	}
	for _, d := range descs {
		if d.Label != d.Key {
			t.Errorf("expected label to equal key for %q, got %q", d.Key, d.Label)
		}
	}
}
