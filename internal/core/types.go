// Package core provides the table view logic for the product grid.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"fmt"
	"strconv"
)

// Field is a key into a Row.
type Field string

const (
	FieldID    Field = "id"
	FieldName  Field = "name"
	FieldPrice Field = "price"
	FieldDate  Field = "date"
)

// rowShape lists every field a Row can carry, in canonical order.
var rowShape = []Field{FieldID, FieldName, FieldPrice, FieldDate}

// RowShape returns the fields a Row can carry.
func RowShape() []Field {
	out := make([]Field, len(rowShape))
	copy(out, rowShape)
	return out
}

// InShape reports whether f is a field of the Row shape.
func InShape(f Field) bool {
	for _, s := range rowShape {
		if s == f {
			return true
		}
	}
	return false
}

// FilterKind selects the predicate used for a column.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterText
	FilterNumber
	FilterDate
	FilterSelect
	FilterRange
	FilterSlider
	FilterFuzzy
)

// String returns the form name of the filter kind.
func (k FilterKind) String() string {
	switch k {
	case FilterNone:
		return "none"
	case FilterText:
		return "text"
	case FilterNumber:
		return "number"
	case FilterDate:
		return "date"
	case FilterSelect:
		return "select"
	case FilterRange:
		return "range"
	case FilterSlider:
		return "slider"
	case FilterFuzzy:
		return "fuzzy"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// valid reports whether k is one of the declared kinds.
func (k FilterKind) valid() bool {
	return k >= FilterNone && k <= FilterFuzzy
}

// ColumnDescriptor declares one table column.
type ColumnDescriptor struct {
	Field    Field      // Row field shown in this column
	Label    string     // Header text
	Sortable bool       // Header click sorts by this column
	Filter   FilterKind // FilterNone disables filtering
}

// Filterable reports whether the column accepts a filter value.
func (c ColumnDescriptor) Filterable() bool {
	return c.Filter != FilterNone
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState is the single active sort key. A nil *SortState means unsorted.
type SortState struct {
	Field     Field
	Direction Direction
}

// Range is the value of a number-range filter. Nil bounds are open.
type Range struct {
	Min *float64
	Max *float64
}

// DateRange is the value of a date filter. Dates are compared as opaque
// strings; empty bounds are open.
type DateRange struct {
	From string
	To   string
}

// Result is the output of a single render pass.
type Result struct {
	Rows     []Row // Visible page, in display order
	Matched  int   // Rows surviving all filters, before paging
	Total    int   // Rows in the store
	PageSize int   // Page cap applied (0 = none)
}

// Summary returns the footer line shown under the table.
// The shown count is always the size of the page actually rendered.
func (r Result) Summary() string {
	return fmt.Sprintf("Showing the first %d results of %d rows", len(r.Rows), r.Matched)
}
