package tables

import "github.com/JonMunkholm/productgrid/internal/core"

func init() {
	registerExplorer()
}

func registerExplorer() {
	core.Register(core.Layout{
		Key:   "explorer",
		Label: "Explorer",
		Schema: core.MustSchema(
			core.ColumnDescriptor{Field: core.FieldID, Label: "ID", Sortable: true, Filter: core.FilterText},
			core.ColumnDescriptor{Field: core.FieldName, Label: "Name", Filter: core.FilterSelect},
			core.ColumnDescriptor{Field: core.FieldPrice, Label: "Price", Sortable: true, Filter: core.FilterNumber},
			core.ColumnDescriptor{Field: core.FieldDate, Label: "Date", Filter: core.FilterDate},
		),
	})
}
