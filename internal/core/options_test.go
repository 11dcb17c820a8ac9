package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectOptions(t *testing.T) {
	noName, err := RowFromValues(map[Field]any{FieldID: 7})
	require.NoError(t, err)

	rows := []Row{
		NewRow(1, "b", 1, ""),
		NewRow(2, "a", 1, ""),
		noName,
		NewRow(3, "b", 1, ""),
	}

	assert.Equal(t, []string{"b", "a"}, SelectOptions(rows, FieldName))
	assert.Equal(t, []string{"1"}, SelectOptions(rows, FieldPrice))
}

func TestNumericBounds(t *testing.T) {
	lo, hi, ok := NumericBounds(productRows(), FieldPrice)
	require.True(t, ok)
	assert.Equal(t, 100.0, lo)
	assert.Equal(t, 500.0, hi)

	_, _, ok = NumericBounds(productRows(), FieldName)
	assert.False(t, ok)

	_, _, ok = NumericBounds(nil, FieldPrice)
	assert.False(t, ok)
}

func TestOptionsFor_IgnoresOwnFilter(t *testing.T) {
	schema := gridSchema()
	rows := productRows()

	filters, err := FilterState{}.Set(schema, FieldName, Selection{"product 1"})
	require.NoError(t, err)
	filters, err = filters.Set(schema, FieldPrice, Range{Max: ptr(300)})
	require.NoError(t, err)

	name := OptionsFor(rows, schema, filters, FieldName)
	assert.Equal(t, 3, name.Count)
	assert.Equal(t, []string{"product 1", "product 2", "product 3"}, name.Choices)

	price := OptionsFor(rows, schema, filters, FieldPrice)
	assert.Equal(t, 1, price.Count)
	assert.True(t, price.HasBounds)
	assert.Equal(t, 100.0, price.Min)
	assert.Equal(t, 100.0, price.Max)
}
