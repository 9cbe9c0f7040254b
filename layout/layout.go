package layout

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ratemysite/sitereport/model"
)

// DefaultLayoutFile is the default layout file name.
const DefaultLayoutFile = ".sitereport.yml"

// ErrLayoutNotFound is returned when the layout file does not exist.
var ErrLayoutNotFound = errors.New("layout file not found")

// Row is one table row of the styled report: the record field to read
// and the label shown in the first column.
type Row struct {
	// Key is the record field key, matched exactly and case-sensitively.
	Key string `yaml:"key"`

	// Label is the display label. When empty, the key is used.
	Label string `yaml:"label,omitempty"`
}

// File is the YAML layout document.
type File struct {
	// Rows lists the report rows in render order.
	Rows []Row `yaml:"rows"`
}

// Descriptors converts the layout rows to the report row schema,
// defaulting each empty label to its key.
func (f *File) Descriptors() []model.RowDescriptor {
	descs := make([]model.RowDescriptor, 0, len(f.Rows))
	for _, row := range f.Rows {
		label := row.Label
		if label == "" {
			label = row.Key
		}
		descs = append(descs, model.RowDescriptor{Key: row.Key, Label: label})
	}
	return descs
}

// Load loads a row layout from a YAML file.
// If the file does not exist, it returns ErrLayoutNotFound.
// Callers should handle this error appropriately based on whether
// the layout path was explicitly specified by the user.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided layout path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrLayoutNotFound
		}
		return nil, err
	}

	var lf File
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, err
	}
	return &lf, nil
}

// Find searches for the layout file in the following order:
// 1. If layoutPath is specified, use it directly
// 2. Look for .sitereport.yml in the current directory
// 3. Look for .sitereport.yml in the user's home directory
//
// Returns the path to the layout file if found, or empty string if not found.
func Find(layoutPath string) string {
	if layoutPath != "" {
		if _, err := os.Stat(layoutPath); err == nil {
			return layoutPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdLayout := filepath.Join(cwd, DefaultLayoutFile)
		if _, err := os.Stat(cwdLayout); err == nil {
			return cwdLayout
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeLayout := filepath.Join(home, DefaultLayoutFile)
		if _, err := os.Stat(homeLayout); err == nil {
			return homeLayout
		}
	}

	return ""
}

// Default returns the canonical RateMySite row schema used when no
// layout file overrides it: the site URL, company name, and the nine
// analysis score fields, each labeled by its key.
func Default() []model.RowDescriptor {
	keys := []string{
		"URL",
		"Company",
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
	descs := make([]model.RowDescriptor, 0, len(keys))
	for _, key := range keys {
		descs = append(descs, model.RowDescriptor{Key: key, Label: key})
	}
	return descs
}
