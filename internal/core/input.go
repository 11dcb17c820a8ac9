package core

import (
	"strconv"
	"strings"
)

// ParseFilterInput converts raw form inputs into the value shape expected by
// the predicate for kind. It never fails: input the predicate cannot use is
// returned in a form its AutoClear rule rejects.
//
// Input arity per kind:
//   - text, fuzzy: one string
//   - number, slider: one number
//   - range: min, max (either may be blank)
//   - date: from, to (either may be blank)
//   - select: every checked option
func ParseFilterInput(kind FilterKind, inputs []string) any {
	first := ""
	if len(inputs) > 0 {
		first = inputs[0]
	}

	switch kind {
	case FilterText, FilterFuzzy:
		return first

	case FilterNumber, FilterSlider:
		if n, ok := parseNumber(first); ok {
			return n
		}
		return first

	case FilterRange:
		var rg Range
		if n, ok := parseNumber(first); ok {
			rg.Min = &n
		}
		if len(inputs) > 1 {
			if n, ok := parseNumber(inputs[1]); ok {
				rg.Max = &n
			}
		}
		return rg

	case FilterDate:
		dr := DateRange{From: strings.TrimSpace(first)}
		if len(inputs) > 1 {
			dr.To = strings.TrimSpace(inputs[1])
		}
		return dr

	case FilterSelect:
		var sel Selection
		for _, in := range inputs {
			if in != "" && !sel.Has(in) {
				sel = append(sel, in)
			}
		}
		return sel

	default:
		return nil
	}
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// ParseFloat also takes hex floats, NaN and Inf; none of them are
	// numbers a user can type into a number input.
	if strings.ContainsAny(s, "xXpP") {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || !finite(n) {
		return 0, false
	}
	return n, true
}
