package core

// filters.go defines the predicate library used by the table view.
//
// Each predicate narrows a row sequence for one column and carries an
// AutoClear rule. When AutoClear returns true for a newly entered value the
// filter is removed instead of stored, so "no filter" and "invalid input"
// look the same to the view.

import (
	"math"
	"strings"
)

// Predicate narrows rows for one column's active filter.
// Apply must not modify the input slice.
type Predicate interface {
	Apply(rows []Row, field Field, value any) []Row
	AutoClear(value any) bool
}

// PredicateFunc adapts a keep-function plus an AutoClear rule to Predicate.
type PredicateFunc struct {
	Keep  func(row Row, field Field, value any) bool
	Clear func(value any) bool
}

// Apply keeps every row for which Keep returns true.
func (p PredicateFunc) Apply(rows []Row, field Field, value any) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if p.Keep(r, field, value) {
			out = append(out, r)
		}
	}
	return out
}

// AutoClear delegates to Clear; a nil Clear only clears nil values.
func (p PredicateFunc) AutoClear(value any) bool {
	if p.Clear == nil {
		return value == nil
	}
	return p.Clear(value)
}

// Selection is the value of a select filter: the checked options in the
// order they were checked.
type Selection []string

// Has reports whether option is checked.
func (s Selection) Has(option string) bool {
	for _, o := range s {
		if o == option {
			return true
		}
	}
	return false
}

// With returns a copy with option checked or unchecked.
func (s Selection) With(option string, checked bool) Selection {
	out := make(Selection, 0, len(s)+1)
	for _, o := range s {
		if o != option {
			out = append(out, o)
		}
	}
	if checked {
		out = append(out, option)
	}
	return out
}

// TextPrefix keeps rows whose stringified value starts with the filter,
// ignoring case. Rows without the field pass.
var TextPrefix Predicate = PredicateFunc{
	Keep: func(row Row, field Field, value any) bool {
		v, ok := row.Value(field)
		if !ok {
			return true
		}
		needle, _ := value.(string)
		return strings.HasPrefix(strings.ToLower(FormatValue(v)), strings.ToLower(needle))
	},
	Clear: clearEmptyString,
}

// GreaterOrEqual keeps rows whose numeric value is >= the filter.
// Non-numeric filter values auto-clear.
var GreaterOrEqual Predicate = PredicateFunc{
	Keep: func(row Row, field Field, value any) bool {
		threshold, ok := value.(float64)
		if !ok {
			return true
		}
		n, ok := row.Number(field)
		return ok && n >= threshold
	},
	Clear: clearNonNumber,
}

// Slider keeps rows whose numeric value is >= the slider position.
var Slider Predicate = GreaterOrEqual

// Between keeps rows with min <= value <= max. Either bound may be nil.
var Between Predicate = PredicateFunc{
	Keep: func(row Row, field Field, value any) bool {
		rg, ok := value.(Range)
		if !ok {
			return true
		}
		rg = rg.normalized()
		n, ok := row.Number(field)
		if !ok {
			return false
		}
		if rg.Min != nil && n < *rg.Min {
			return false
		}
		if rg.Max != nil && n > *rg.Max {
			return false
		}
		return true
	},
	Clear: func(value any) bool {
		rg, ok := value.(Range)
		return !ok || (rg.Min == nil && rg.Max == nil)
	},
}

// Includes keeps rows whose displayed value is one of the checked options.
// An empty selection auto-clears, so nothing checked means everything shown.
var Includes Predicate = PredicateFunc{
	Keep: func(row Row, field Field, value any) bool {
		sel, ok := value.(Selection)
		if !ok {
			return true
		}
		v, ok := row.Value(field)
		return ok && sel.Has(FormatValue(v))
	},
	Clear: func(value any) bool {
		sel, ok := value.(Selection)
		return !ok || len(sel) == 0
	},
}

// DateBetween compares dates as opaque strings: From <= value <= To.
var DateBetween Predicate = PredicateFunc{
	Keep: func(row Row, field Field, value any) bool {
		dr, ok := value.(DateRange)
		if !ok {
			return true
		}
		v, ok := row.Value(field)
		if !ok {
			return false
		}
		s := FormatValue(v)
		if dr.From != "" && strings.Compare(s, dr.From) < 0 {
			return false
		}
		if dr.To != "" && strings.Compare(s, dr.To) > 0 {
			return false
		}
		return true
	},
	Clear: func(value any) bool {
		dr, ok := value.(DateRange)
		return !ok || (dr.From == "" && dr.To == "")
	},
}

func clearEmptyString(value any) bool {
	s, ok := value.(string)
	return !ok || s == ""
}

func clearNonNumber(value any) bool {
	n, ok := value.(float64)
	return !ok || !finite(n)
}

func finite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

// normalized swaps inverted bounds.
func (r Range) normalized() Range {
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return Range{Min: r.Max, Max: r.Min}
	}
	return r
}
