package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// URLField is the field key holding the analyzed site's URL.
// The styled report uses it for column labels and hyperlinks, and the
// detailed workbook uses it as the leading column on every sheet.
const URLField = "URL"

// RawField is the internal field key holding the raw analysis payload.
// It is kept on records for debugging but is never exported to reports.
const RawField = "_raw"

// Result is one analyzed site's record: a flat mapping of field names to
// string values that preserves the order in which fields were set.
//
// Design decision: We keep an explicit key slice next to the value map
// instead of using a plain map because the detailed workbook's column order
// is defined as first-seen field order. A bare Go map would randomize it.
//
// Values are always strings. Score fields hold integer-like strings
// ("85"); anything else (missing, empty, "N/A") is treated as unscored by
// the consumers in this package, never coerced to zero.
type Result struct {
	keys   []string
	values map[string]string
}

// NewResult creates an empty Result.
func NewResult() *Result {
	return &Result{values: make(map[string]string)}
}

// Set stores a field value. Setting an existing key overwrites the value
// without changing the field's position.
func (r *Result) Set(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Lookup returns the value for key and whether the field is present.
//
// Design decision: We expose presence explicitly instead of returning a
// default value because the report writers distinguish "absent" from
// "present but empty" in several places (placeholder cells, averages,
// hyperlinks). An ambient default would hide that distinction.
func (r *Result) Lookup(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Get returns the value for key, or the empty string when absent.
// Use Lookup when absence must be distinguished from an empty value.
func (r *Result) Get(key string) string {
	return r.values[key]
}

// Keys returns the field names in first-set order.
// The returned slice is a copy; mutating it does not affect the Result.
func (r *Result) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of fields.
func (r *Result) Len() int {
	return len(r.keys)
}

// UnionKeys returns the union of field keys across all results, in the
// order each key is first observed. This is the column order of the
// detailed workbook's "Detailed Data" sheet.
func UnionKeys(results []*Result) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, r := range results {
		if r == nil {
			continue
		}
		for _, k := range r.keys {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// MarshalJSON encodes the result as a JSON object with fields in
// first-set order. The standard map encoding would sort keys
// alphabetically, losing the order the store and JSON writer rely on.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the result, preserving the
// field order of the document. Non-string scalar values (numbers,
// booleans) are stringified; null becomes the empty string; nested
// objects and arrays (the "_raw" payload) are kept as their compact JSON
// text.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	order, err := topLevelKeys(data)
	if err != nil {
		return err
	}

	r.keys = nil
	r.values = make(map[string]string, len(raw))
	for _, k := range order {
		r.Set(k, rawValueString(raw[k]))
	}
	return nil
}

// topLevelKeys returns the keys of a JSON object in document order.
func topLevelKeys(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("result must be a JSON object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key token: %v", tok)
		}
		keys = append(keys, key)

		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// skipValue consumes one JSON value, descending into composites.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || (d != '{' && d != '[') {
		return nil
	}
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// rawValueString converts a raw JSON value to the string form stored in
// a Result. Strings are unquoted, null maps to "", and everything else
// (numbers, booleans, composites) keeps its JSON text.
func rawValueString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	text := strings.TrimSpace(string(raw))
	if text == "null" {
		return ""
	}
	return text
}
