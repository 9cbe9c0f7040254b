package model

// RowDescriptor defines one row of the styled report: which field to
// render and the display label shown in the "Category" column.
//
// The descriptor list is the caller's chosen schema. The styled report
// renders exactly these rows in exactly this order; it never infers rows
// from the records themselves.
type RowDescriptor struct {
	// Key is the record field to render.
	Key string

	// Label is the display name for the row. When built from a layout
	// file an empty label defaults to the key.
	Label string
}
