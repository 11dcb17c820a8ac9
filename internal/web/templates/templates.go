// Package templates renders the product grid as HTML fragments driven by HTMX.
package templates

import (
	"context"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/productgrid/internal/core"
	"github.com/a-h/templ"
)

const (
	// GridID is the element id swapped by every HTMX request.
	GridID = "grid"
	// AlertsID receives error fragments.
	AlertsID = "alerts"
)

// htmxConfig lets error responses swap their fragment.
const htmxConfig = `{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"[45]..","swap":true,"error":true}]}`

// ColumnMeta is the per-column view model for the header row.
type ColumnMeta struct {
	Index    int
	Field    core.Field
	Label    string
	Sortable bool
	SortDir  core.Direction // Empty when not the sort column
	Kind     core.FilterKind
	Visible  bool // Filter control shown
	Active   bool // Filter value set
	Value    any  // Current filter value, nil when unset
	Options  core.ColumnOptions
}

// LayoutLink is one entry of the layout navigation.
type LayoutLink struct {
	Key    string
	Label  string
	Active bool
}

// GridParams is everything the grid partial needs.
type GridParams struct {
	ViewID  string
	Columns []ColumnMeta
	Rows    [][]string // Cell text in column order
	Summary string
	Empty   bool
}

// PageParams wraps the grid with page chrome.
type PageParams struct {
	Title   string
	Layouts []LayoutLink
	Grid    GridParams
	HTMXSrc string
}

// viewURL builds an API path under the current view.
func viewURL(viewID string, parts ...string) string {
	u := "/api/views/" + url.PathEscape(viewID)
	for _, p := range parts {
		u += "/" + url.PathEscape(p)
	}
	return u
}

// Page renders a full HTML document around the grid.
func Page(p PageParams) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.raw(`<meta name="htmx-config"`)
		h.attr("content", htmxConfig)
		h.raw(`><title>`)
		h.text(p.Title)
		h.raw(`</title>`)
		if p.HTMXSrc != "" {
			h.raw(`<script`)
			h.attr("src", p.HTMXSrc)
			h.raw(`></script>`)
		}
		h.raw(`<style>table{border-collapse:collapse}th,td{border:1px solid #ccc;padding:4px 8px}` +
			`.filter[hidden]{display:none}.sort-asc::after{content:" \25B2"}.sort-desc::after{content:" \25BC"}</style>`)
		h.raw(`</head><body><nav>`)
		for _, l := range p.Layouts {
			h.raw(`<a`)
			h.attr("href", "/view/"+url.PathEscape(l.Key))
			if l.Active {
				h.attr("aria-current", "page")
			}
			h.raw(`>`)
			h.text(l.Label)
			h.raw(`</a> `)
		}
		h.raw(`</nav><h1>`)
		h.text(p.Title)
		h.raw(`</h1><div`)
		h.attr("id", AlertsID)
		h.raw(`></div>`)
		h.render(ctx, Grid(p.Grid))
		h.raw(`</body></html>`)
	})
}

// Grid renders the swappable table block: header with sort buttons,
// filter toggles and controls, the visible rows and the summary line.
func Grid(p GridParams) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<div`)
		h.attr("id", GridID)
		h.raw(`><table><thead><tr>`)

		for _, col := range p.Columns {
			h.raw(`<th`)
			h.attr("data-field", string(col.Field))
			h.raw(`>`)
			header(h, p.ViewID, col)
			if col.Kind != core.FilterNone {
				h.raw(`<button type="button" class="toggle"`)
				h.attr("hx-post", viewURL(p.ViewID, "toggle", strconv.Itoa(col.Index)))
				h.attr("hx-target", "#"+GridID)
				h.attr("hx-swap", "outerHTML")
				h.attr("aria-expanded", strconv.FormatBool(col.Visible))
				h.raw(`>&#9663;</button>`)

				h.raw(`<div class="filter"`)
				h.boolAttr("hidden", !col.Visible)
				h.raw(`>`)
				h.render(ctx, FilterControl(p.ViewID, col))
				h.raw(`</div>`)
			}
			h.raw(`</th>`)
		}

		h.raw(`</tr></thead><tbody>`)
		if p.Empty {
			h.raw(`<tr><td class="empty"`)
			h.attr("colspan", strconv.Itoa(len(p.Columns)))
			h.raw(`>No matching rows</td></tr>`)
		}
		for _, row := range p.Rows {
			h.raw(`<tr>`)
			for _, cell := range row {
				h.raw(`<td>`)
				h.text(cell)
				h.raw(`</td>`)
			}
			h.raw(`</tr>`)
		}
		h.raw(`</tbody></table><p class="summary">`)
		h.text(p.Summary)
		h.raw(`</p></div>`)
	})
}

// header renders the column label, as a sort button when sortable.
func header(h *htmlWriter, viewID string, col ColumnMeta) {
	if !col.Sortable {
		h.raw(`<span>`)
		h.text(col.Label)
		h.raw(`</span>`)
		return
	}

	h.raw(`<button type="button"`)
	h.attr("class", sortClass(col.SortDir))
	h.attr("hx-post", viewURL(viewID, "sort", string(col.Field)))
	h.attr("hx-target", "#"+GridID)
	h.attr("hx-swap", "outerHTML")
	h.raw(`>`)
	h.text(col.Label)
	h.raw(`</button>`)
}

func sortClass(dir core.Direction) string {
	switch dir {
	case core.Asc:
		return "sort sort-asc"
	case core.Desc:
		return "sort sort-desc"
	default:
		return "sort"
	}
}
