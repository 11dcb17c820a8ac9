package core

// ColumnOptions describes the choices a filter control offers. They are
// computed from the column's pre-filtered rows: rows that survive every
// active filter except the column's own.
type ColumnOptions struct {
	Field     Field
	Count     int      // Pre-filtered row count ("Search N records...")
	Choices   []string // Distinct displayed values, first-seen order
	Min       float64  // Smallest numeric value
	Max       float64  // Largest numeric value
	HasBounds bool     // False when no row has a numeric value
}

// PreFiltered returns the rows that feed column f's filter control.
func PreFiltered(rows []Row, schema *Schema, filters FilterState, f Field) []Row {
	return applyFilters(rows, schema, filters.Without(f))
}

// OptionsFor computes the filter options for one column.
func OptionsFor(rows []Row, schema *Schema, filters FilterState, f Field) ColumnOptions {
	pre := PreFiltered(rows, schema, filters, f)
	opts := ColumnOptions{
		Field:   f,
		Count:   len(pre),
		Choices: SelectOptions(pre, f),
	}
	opts.Min, opts.Max, opts.HasBounds = NumericBounds(pre, f)
	return opts
}

// SelectOptions returns the distinct displayed values of f in first-seen order.
// Rows without the field contribute nothing.
func SelectOptions(rows []Row, f Field) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range rows {
		v, ok := r.Value(f)
		if !ok {
			continue
		}
		s := FormatValue(v)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// NumericBounds returns the min and max numeric values of f.
func NumericBounds(rows []Row, f Field) (lo, hi float64, ok bool) {
	for _, r := range rows {
		n, isNum := r.Number(f)
		if !isNum {
			continue
		}
		if !ok {
			lo, hi, ok = n, n, true
			continue
		}
		lo = min(lo, n)
		hi = max(hi, n)
	}
	return lo, hi, ok
}
