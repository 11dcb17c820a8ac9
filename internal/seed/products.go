// Package seed provides the rows the product grid starts with.
package seed

import "github.com/JonMunkholm/productgrid/internal/core"

// Products returns the built-in product rows.
func Products() []core.Row {
	return []core.Row{
		core.NewRow(1, "product 1", 100, "05/06/2018"),
		core.NewRow(2, "product 2", 200, "06/06/2018"),
		core.NewRow(3, "product 3", 300, "07/06/2018"),
		core.NewRow(4, "product 4", 400, "08/06/2018"),
		core.NewRow(5, "product 5", 500, "09/06/2018"),
	}
}
