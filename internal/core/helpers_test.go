package core

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Layouts registered once for the whole package's tests.
const (
	gridLayout = "test-grid"
	textLayout = "test-text"
)

var registerOnce sync.Once

func registerTestLayouts() {
	registerOnce.Do(func() {
		Register(Layout{
			Key:    gridLayout,
			Label:  "Grid",
			Schema: gridSchema(),
		})
		Register(Layout{
			Key:      textLayout,
			Schema:   textSchema(),
			PageSize: 2,
		})
	})
}

// gridSchema covers number, select, range and date filters.
func gridSchema() *Schema {
	return MustSchema(
		ColumnDescriptor{Field: FieldID, Label: "ID", Sortable: true, Filter: FilterNumber},
		ColumnDescriptor{Field: FieldName, Label: "Name", Filter: FilterSelect},
		ColumnDescriptor{Field: FieldPrice, Label: "Price", Sortable: true, Filter: FilterRange},
		ColumnDescriptor{Field: FieldDate, Label: "Date", Filter: FilterDate},
	)
}

// textSchema covers text, slider and an unfilterable column.
func textSchema() *Schema {
	return MustSchema(
		ColumnDescriptor{Field: FieldName, Label: "Name", Sortable: true, Filter: FilterText},
		ColumnDescriptor{Field: FieldPrice, Label: "Price", Sortable: true, Filter: FilterSlider},
		ColumnDescriptor{Field: FieldID, Label: "ID"},
	)
}

func productRows() []Row {
	return []Row{
		NewRow(1, "product 1", 100, "05/06/2018"),
		NewRow(2, "product 2", 200, "06/06/2018"),
		NewRow(3, "product 3", 300, "07/06/2018"),
		NewRow(4, "product 4", 400, "08/06/2018"),
		NewRow(5, "product 5", 500, "09/06/2018"),
	}
}

func ids(rows []Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.ID()
	}
	return out
}

func ptr(f float64) *float64 { return &f }

// newTestService returns a service over the product rows with a
// controllable clock.
func newTestService(t *testing.T) (*Service, *time.Time) {
	t.Helper()
	registerTestLayouts()

	store, err := NewRowStore(productRows())
	require.NoError(t, err)

	svc, err := NewService(store, 0)
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	return svc, &now
}
