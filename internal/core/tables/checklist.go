package tables

import "github.com/JonMunkholm/productgrid/internal/core"

func init() {
	registerChecklist()
}

// registerChecklist picks names from a checkbox list. Every other column
// falls back to the text prefix filter.
func registerChecklist() {
	core.Register(core.Layout{
		Key:   "checklist",
		Label: "Checklist",
		Schema: core.MustSchema(
			core.ColumnDescriptor{Field: core.FieldName, Label: "Name", Filter: core.FilterSelect},
			core.ColumnDescriptor{Field: core.FieldDate, Label: "Date", Filter: core.FilterText},
			core.ColumnDescriptor{Field: core.FieldID, Label: "ID", Filter: core.FilterText},
			core.ColumnDescriptor{Field: core.FieldPrice, Label: "Price", Filter: core.FilterText},
		),
	})
}
