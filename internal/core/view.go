package core

import (
	"cmp"
	"slices"
	"strings"
)

// Filtered applies every active filter in column order, then the sort.
// The returned slice is new; rows is never modified.
func Filtered(rows []Row, schema *Schema, filters FilterState, sortState *SortState) []Row {
	out := applyFilters(rows, schema, filters)
	if sortState != nil {
		if col, ok := schema.Lookup(sortState.Field); ok && col.Sortable {
			sortRows(out, sortState.Field, sortState.Direction)
		}
	}
	return out
}

// Render derives the visible page from the store and the current state.
// pageSize <= 0 disables truncation.
func Render(rows []Row, schema *Schema, filters FilterState, sortState *SortState, pageSize int) Result {
	all := Filtered(rows, schema, filters, sortState)

	page := all
	if pageSize > 0 && len(page) > pageSize {
		page = page[:pageSize:pageSize]
	}

	return Result{
		Rows:     page,
		Matched:  len(all),
		Total:    len(rows),
		PageSize: pageSize,
	}
}

// applyFilters narrows rows column by column (logical AND).
func applyFilters(rows []Row, schema *Schema, filters FilterState) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)

	for _, col := range schema.cols {
		if !col.Filterable() {
			continue
		}
		value, ok := filters.Get(col.Field)
		if !ok {
			continue
		}
		p, ok := PredicateFor(col.Filter)
		if !ok || p.AutoClear(value) {
			continue
		}
		out = p.Apply(out, col.Field, value)
	}

	return out
}

// sortRows stable-sorts in place. Numbers compare numerically, everything
// else as strings. Rows missing the field sort last in both directions.
func sortRows(rows []Row, f Field, dir Direction) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		av, aok := a.Value(f)
		bv, bok := b.Value(f)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}

		c := compareValues(av, bv)
		if dir == Desc {
			return -c
		}
		return c
	})
}

func compareValues(a, b any) int {
	an, aNum := toFloat(a)
	bn, bNum := toFloat(b)
	if aNum && bNum {
		return cmp.Compare(an, bn)
	}
	return strings.Compare(FormatValue(a), FormatValue(b))
}
