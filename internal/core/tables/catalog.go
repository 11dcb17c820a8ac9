package tables

import "github.com/JonMunkholm/productgrid/internal/core"

func init() {
	registerCatalog()
}

// registerCatalog is the plain sortable catalog: every column sorts, only
// the name has a filter.
func registerCatalog() {
	core.Register(core.Layout{
		Key:   "catalog",
		Label: "Product Catalog",
		Schema: core.MustSchema(
			core.ColumnDescriptor{Field: core.FieldID, Label: "Product ID", Sortable: true},
			core.ColumnDescriptor{Field: core.FieldName, Label: "Product Name", Sortable: true, Filter: core.FilterText},
			core.ColumnDescriptor{Field: core.FieldPrice, Label: "Product Price", Sortable: true},
		),
	})
}
