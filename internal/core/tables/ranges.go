package tables

import "github.com/JonMunkholm/productgrid/internal/core"

func init() {
	registerRanges()
}

// registerRanges exercises the fuzzy, range and slider filters.
func registerRanges() {
	core.Register(core.Layout{
		Key:      "ranges",
		Label:    "Ranges",
		PageSize: 20,
		Schema: core.MustSchema(
			core.ColumnDescriptor{Field: core.FieldName, Label: "Name", Sortable: true, Filter: core.FilterFuzzy},
			core.ColumnDescriptor{Field: core.FieldPrice, Label: "Price", Sortable: true, Filter: core.FilterRange},
			core.ColumnDescriptor{Field: core.FieldID, Label: "ID", Sortable: true, Filter: core.FilterSlider},
			core.ColumnDescriptor{Field: core.FieldDate, Label: "Date", Sortable: true, Filter: core.FilterDate},
		),
	})
}
