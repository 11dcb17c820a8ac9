// Package core provides the table view logic for the product grid.
//
// This package contains the filtering, sorting and paging rules independent
// of any UI or transport layer. It can be used by web handlers, CLI tools,
// or tests without modification.
//
// # Architecture
//
// The package is organized around a few small pieces:
//
//   - Row Store: an immutable, ordered set of [Row] values built once at startup.
//   - Column Schema: a validated list of [ColumnDescriptor] values. [NewSchema]
//     rejects fields outside the Row shape and duplicate fields.
//   - Predicates: one [Predicate] per [FilterKind], each with an AutoClear rule
//     that turns unusable input into "no filter".
//   - Table View: [Render] applies filters in column order (AND), then a stable
//     sort, then truncates to a page.
//   - Service: per-page-load view sessions holding [FilterState], [SortState]
//     and [VisibilityState].
//
// # Layout Registry
//
// Layouts are registered at init time using [Register]:
//
//	core.Register(core.Layout{
//	    Key:   "catalog",
//	    Label: "Product Catalog",
//	    Schema: core.MustSchema(
//	        core.ColumnDescriptor{Field: core.FieldID, Label: "Product ID", Sortable: true},
//	        core.ColumnDescriptor{Field: core.FieldName, Label: "Product Name", Filter: core.FilterText},
//	    ),
//	})
//
// # State
//
// All state values are immutable. Reducers such as [FilterState.Set],
// [FilterState.ToggleOption], [NextSort] and [VisibilityState.Toggle] return
// new values, and the view is recomputed from scratch after each change.
//
// # Error Handling
//
// Schema problems surface as [*ConfigError] at construction. Invalid filter
// input is never an error; it auto-clears. Technical errors are mapped to
// user-friendly messages with codes using [MapError]:
//
//   - CFG001-CFG003: Column schema errors
//   - VIEW001-VIEW002: Unknown views and layouts
//   - COL001-COL003: Column operations (not found, not filterable, not sortable)
//   - RATE001: Request throttling
package core
