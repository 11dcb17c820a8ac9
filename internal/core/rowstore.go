package core

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidRow is returned when seed data does not fit the Row shape.
var ErrInvalidRow = errors.New("invalid row")

// Row is one immutable product record. Fields may be absent (a NULL from a
// database seed), in which case Value reports ok=false.
type Row struct {
	id     int
	values map[Field]any
}

// NewRow builds a fully populated row.
func NewRow(id int, name string, price float64, date string) Row {
	return Row{
		id: id,
		values: map[Field]any{
			FieldID:    id,
			FieldName:  name,
			FieldPrice: price,
			FieldDate:  date,
		},
	}
}

// RowFromValues builds a row from a partial field map. The id is required;
// other fields may be omitted. Value types must match the Row shape:
// int for id, string for name and date, float64 for price.
func RowFromValues(values map[Field]any) (Row, error) {
	raw, ok := values[FieldID]
	if !ok {
		return Row{}, fmt.Errorf("%w: missing id", ErrInvalidRow)
	}
	id, ok := raw.(int)
	if !ok {
		return Row{}, fmt.Errorf("%w: id must be int, got %T", ErrInvalidRow, raw)
	}

	row := Row{id: id, values: make(map[Field]any, len(values))}
	for f, v := range values {
		if !InShape(f) {
			return Row{}, fmt.Errorf("%w: unknown field %q", ErrInvalidRow, f)
		}
		switch f {
		case FieldName, FieldDate:
			if _, ok := v.(string); !ok {
				return Row{}, fmt.Errorf("%w: %s must be string, got %T", ErrInvalidRow, f, v)
			}
		case FieldPrice:
			if _, ok := v.(float64); !ok {
				return Row{}, fmt.Errorf("%w: price must be float64, got %T", ErrInvalidRow, v)
			}
		}
		row.values[f] = v
	}
	return row, nil
}

// ID returns the row's stable identity.
func (r Row) ID() int { return r.id }

// Value returns the field value and whether it is present.
func (r Row) Value(f Field) (any, bool) {
	v, ok := r.values[f]
	return v, ok
}

// Text returns the display form of a field, or "" when absent.
func (r Row) Text(f Field) string {
	v, ok := r.values[f]
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// Number returns the field as a float64 when it is numeric.
func (r Row) Number(f Field) (float64, bool) {
	v, ok := r.values[f]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

// FormatValue stringifies a cell value the way it is displayed.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}

// RowStore is the immutable, ordered set of rows loaded at startup.
type RowStore struct {
	rows []Row
}

// NewRowStore copies rows into a store. Row ids must be unique.
func NewRowStore(rows []Row) (*RowStore, error) {
	seen := make(map[int]bool, len(rows))
	out := make([]Row, len(rows))
	for i, r := range rows {
		if seen[r.id] {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidRow, r.id)
		}
		seen[r.id] = true
		out[i] = r
	}
	return &RowStore{rows: out}, nil
}

// Rows returns the rows in store order. The returned slice is a copy.
func (s *RowStore) Rows() []Row {
	out := make([]Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Len returns the number of rows.
func (s *RowStore) Len() int { return len(s.rows) }
