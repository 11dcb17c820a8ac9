package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned when a column names a field outside the Row shape.
	ErrUnknownField = errors.New("unknown field")
	// ErrDuplicateField is returned when two columns name the same field.
	ErrDuplicateField = errors.New("duplicate field")
	// ErrInvalidColumn is returned for other malformed descriptors.
	ErrInvalidColumn = errors.New("invalid column")
)

// ConfigError reports a column schema that cannot be rendered.
type ConfigError struct {
	Index int   // Position of the offending descriptor
	Field Field // Field it names
	Err   error // One of the Err* sentinels above
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("column schema: column %d (%q): %v", e.Index, e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Schema is a validated, ordered list of column descriptors.
// It never changes after construction.
type Schema struct {
	cols  []ColumnDescriptor
	index map[Field]int
}

// NewSchema validates the descriptors and returns a Schema.
// Every field must belong to the Row shape and appear at most once.
func NewSchema(cols ...ColumnDescriptor) (*Schema, error) {
	s := &Schema{
		cols:  make([]ColumnDescriptor, len(cols)),
		index: make(map[Field]int, len(cols)),
	}

	for i, c := range cols {
		if !InShape(c.Field) {
			return nil, &ConfigError{Index: i, Field: c.Field, Err: ErrUnknownField}
		}
		if _, dup := s.index[c.Field]; dup {
			return nil, &ConfigError{Index: i, Field: c.Field, Err: ErrDuplicateField}
		}
		if c.Label == "" {
			return nil, &ConfigError{Index: i, Field: c.Field, Err: fmt.Errorf("%w: empty label", ErrInvalidColumn)}
		}
		if !c.Filter.valid() {
			return nil, &ConfigError{Index: i, Field: c.Field, Err: fmt.Errorf("%w: filter %s", ErrInvalidColumn, c.Filter)}
		}
		s.cols[i] = c
		s.index[c.Field] = i
	}

	return s, nil
}

// MustSchema is like NewSchema but panics on error.
// Use it only for schemas built at init time.
func MustSchema(cols ...ColumnDescriptor) *Schema {
	s, err := NewSchema(cols...)
	if err != nil {
		panic(err)
	}
	return s
}

// Columns returns the descriptors in display order.
func (s *Schema) Columns() []ColumnDescriptor {
	out := make([]ColumnDescriptor, len(s.cols))
	copy(out, s.cols)
	return out
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.cols) }

// Lookup returns the descriptor for a field.
func (s *Schema) Lookup(f Field) (ColumnDescriptor, bool) {
	i, ok := s.index[f]
	if !ok {
		return ColumnDescriptor{}, false
	}
	return s.cols[i], true
}

// Index returns the display position of a field, or -1.
func (s *Schema) Index(f Field) int {
	if i, ok := s.index[f]; ok {
		return i
	}
	return -1
}

// At returns the descriptor at position i.
func (s *Schema) At(i int) (ColumnDescriptor, bool) {
	if i < 0 || i >= len(s.cols) {
		return ColumnDescriptor{}, false
	}
	return s.cols[i], true
}
