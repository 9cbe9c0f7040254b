// Package layout loads the row schema that drives the styled spreadsheet
// and Markdown reports. The schema is a YAML file mapping record field
// keys to display labels; when no file is present, Default provides the
// canonical RateMySite rows.
package layout
