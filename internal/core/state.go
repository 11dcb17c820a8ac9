package core

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNotFilterable is returned when a filter targets a column without one.
	ErrNotFilterable = errors.New("column not filterable")
	// ErrNotSortable is returned when a sort targets a column that cannot sort.
	ErrNotSortable = errors.New("column not sortable")
	// ErrColumnNotFound is returned when a field is not in the schema.
	ErrColumnNotFound = errors.New("column not found")
)

// FilterState maps fields to their active filter value. It is immutable:
// every reducer returns a new state. A missing entry means no filter.
type FilterState struct {
	values map[Field]any
}

// Get returns the active value for a field.
func (s FilterState) Get(f Field) (any, bool) {
	v, ok := s.values[f]
	return v, ok
}

// Len returns the number of active filters.
func (s FilterState) Len() int { return len(s.values) }

// Fields returns the filtered fields in sorted order.
func (s FilterState) Fields() []Field {
	out := make([]Field, 0, len(s.values))
	for f := range s.values {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Set stores value for field, or removes the entry when the column's
// predicate auto-clears the value. Columns without a filter are rejected.
func (s FilterState) Set(schema *Schema, f Field, value any) (FilterState, error) {
	col, ok := schema.Lookup(f)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrColumnNotFound, f)
	}
	if !col.Filterable() {
		return s, fmt.Errorf("%w: %s", ErrNotFilterable, f)
	}
	p, ok := PredicateFor(col.Filter)
	if !ok {
		return s, fmt.Errorf("%w: no predicate for %s", ErrNotFilterable, col.Filter)
	}

	if p.AutoClear(value) {
		return s.Clear(f), nil
	}

	next := s.clone()
	next.values[f] = value
	return next, nil
}

// ToggleOption checks or unchecks one option of a select filter.
func (s FilterState) ToggleOption(schema *Schema, f Field, option string, checked bool) (FilterState, error) {
	col, ok := schema.Lookup(f)
	if !ok {
		return s, fmt.Errorf("%w: %s", ErrColumnNotFound, f)
	}
	if col.Filter != FilterSelect {
		return s, fmt.Errorf("%w: %s is not a select filter", ErrNotFilterable, f)
	}

	current, _ := s.values[f].(Selection)
	return s.Set(schema, f, current.With(option, checked))
}

// Clear removes the filter for a field.
func (s FilterState) Clear(f Field) FilterState {
	if _, ok := s.values[f]; !ok {
		return s
	}
	next := s.clone()
	delete(next.values, f)
	return next
}

// Without returns the state minus one field's filter. Used to compute the
// pre-filtered rows that feed a column's options.
func (s FilterState) Without(f Field) FilterState {
	return s.Clear(f)
}

func (s FilterState) clone() FilterState {
	next := FilterState{values: make(map[Field]any, len(s.values)+1)}
	for k, v := range s.values {
		next.values[k] = v
	}
	return next
}

// NextSort returns the sort state after a header click on field:
// a new field sorts ascending, the current field flips direction.
func NextSort(schema *Schema, current *SortState, f Field) (*SortState, error) {
	col, ok := schema.Lookup(f)
	if !ok {
		return current, fmt.Errorf("%w: %s", ErrColumnNotFound, f)
	}
	if !col.Sortable {
		return current, fmt.Errorf("%w: %s", ErrNotSortable, f)
	}

	if current != nil && current.Field == f && current.Direction == Asc {
		return &SortState{Field: f, Direction: Desc}, nil
	}
	return &SortState{Field: f, Direction: Asc}, nil
}

// VisibilityState tracks which columns show their filter control.
// All columns start hidden.
type VisibilityState struct {
	shown map[int]bool
}

// Visible reports whether column i shows its filter control.
func (v VisibilityState) Visible(i int) bool {
	return v.shown[i]
}

// Toggle flips column i and returns the new state.
func (v VisibilityState) Toggle(i int) VisibilityState {
	next := VisibilityState{shown: make(map[int]bool, len(v.shown)+1)}
	for k, on := range v.shown {
		next.shown[k] = on
	}
	if next.shown[i] {
		delete(next.shown, i)
	} else {
		next.shown[i] = true
	}
	return next
}
