package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"github.com/JonMunkholm/productgrid/internal/core"
	"github.com/a-h/templ"
)

// FilterRenderer draws the filter control for one column. Visibility and
// the current value arrive in ColumnMeta; renderers hold no state.
type FilterRenderer interface {
	RenderFilter(viewID string, col ColumnMeta) templ.Component
}

// FilterRendererFunc adapts a function to FilterRenderer.
type FilterRendererFunc func(viewID string, col ColumnMeta) templ.Component

// RenderFilter calls f.
func (f FilterRendererFunc) RenderFilter(viewID string, col ColumnMeta) templ.Component {
	return f(viewID, col)
}

// renderers maps each filter kind to its control.
var renderers = map[core.FilterKind]FilterRenderer{
	core.FilterText:   FilterRendererFunc(textFilter("Search %d records...")),
	core.FilterFuzzy:  FilterRendererFunc(textFilter("Fuzzy search %d records...")),
	core.FilterNumber: FilterRendererFunc(numberFilter),
	core.FilterSlider: FilterRendererFunc(sliderFilter),
	core.FilterRange:  FilterRendererFunc(rangeFilter),
	core.FilterDate:   FilterRendererFunc(dateFilter),
	core.FilterSelect: FilterRendererFunc(selectFilter),
}

// FilterControl renders the control registered for the column's kind.
func FilterControl(viewID string, col ColumnMeta) templ.Component {
	r, ok := renderers[col.Kind]
	if !ok {
		return templ.NopComponent
	}
	return r.RenderFilter(viewID, col)
}

// controlID gives inputs a stable id so HTMX keeps focus across swaps.
func controlID(col ColumnMeta, suffix string) string {
	return "filter-" + string(col.Field) + suffix
}

// swapTarget writes the attributes shared by every control.
func swapTarget(h *htmlWriter, trigger string) {
	h.attr("hx-target", "#"+GridID)
	h.attr("hx-swap", "outerHTML")
	h.attr("hx-trigger", trigger)
}

func textFilter(placeholder string) func(string, ColumnMeta) templ.Component {
	return func(viewID string, col ColumnMeta) templ.Component {
		return component(func(_ context.Context, h *htmlWriter) {
			value, _ := col.Value.(string)
			h.raw(`<input type="text" name="value"`)
			h.attr("id", controlID(col, ""))
			h.attr("value", value)
			h.attr("placeholder", fmt.Sprintf(placeholder, col.Options.Count))
			h.attr("hx-post", viewURL(viewID, "filter", string(col.Field)))
			swapTarget(h, "input changed delay:300ms")
			h.raw(`>`)
		})
	}
}

func numberFilter(viewID string, col ColumnMeta) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<input type="number" name="value"`)
		h.attr("id", controlID(col, ""))
		if n, ok := col.Value.(float64); ok {
			h.attr("value", core.FormatValue(n))
		}
		if col.Options.HasBounds {
			h.attr("placeholder", "At least ("+core.FormatValue(col.Options.Min)+")")
		}
		h.attr("hx-post", viewURL(viewID, "filter", string(col.Field)))
		swapTarget(h, "input changed delay:300ms")
		h.raw(`>`)
	})
}

func sliderFilter(viewID string, col ColumnMeta) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		lo, hi := col.Options.Min, col.Options.Max
		value := lo
		if n, ok := col.Value.(float64); ok {
			value = n
		}

		h.raw(`<input type="range" name="value"`)
		h.attr("id", controlID(col, ""))
		h.attr("min", core.FormatValue(lo))
		h.attr("max", core.FormatValue(hi))
		h.attr("value", core.FormatValue(value))
		h.attr("hx-post", viewURL(viewID, "filter", string(col.Field)))
		swapTarget(h, "change")
		h.raw(`>`)

		h.raw(`<button type="button"`)
		h.attr("hx-delete", viewURL(viewID, "filter", string(col.Field)))
		h.attr("hx-target", "#"+GridID)
		h.attr("hx-swap", "outerHTML")
		h.raw(`>Off</button>`)
	})
}

func rangeFilter(viewID string, col ColumnMeta) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		rg, _ := col.Value.(core.Range)

		h.raw(`<form class="range"`)
		h.attr("hx-post", viewURL(viewID, "filter", string(col.Field)))
		swapTarget(h, "input changed delay:300ms")
		h.raw(`>`)
		boundInput(h, col, "-min", rg.Min, "Min ("+core.FormatValue(col.Options.Min)+")")
		h.raw(` to `)
		boundInput(h, col, "-max", rg.Max, "Max ("+core.FormatValue(col.Options.Max)+")")
		h.raw(`</form>`)
	})
}

func boundInput(h *htmlWriter, col ColumnMeta, suffix string, bound *float64, placeholder string) {
	h.raw(`<input type="number" name="value"`)
	h.attr("id", controlID(col, suffix))
	if bound != nil {
		h.attr("value", core.FormatValue(*bound))
	}
	h.attr("placeholder", placeholder)
	h.raw(`>`)
}

func dateFilter(viewID string, col ColumnMeta) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		dr, _ := col.Value.(core.DateRange)

		h.raw(`<form class="dates"`)
		h.attr("hx-post", viewURL(viewID, "filter", string(col.Field)))
		swapTarget(h, "input changed delay:300ms")
		h.raw(`>`)
		for i, v := range []string{dr.From, dr.To} {
			h.raw(`<input type="text" name="value"`)
			h.attr("id", controlID(col, "-"+strconv.Itoa(i)))
			h.attr("value", v)
			h.attr("placeholder", []string{"From", "To"}[i])
			h.raw(`>`)
		}
		h.raw(`</form>`)
	})
}

func selectFilter(viewID string, col ColumnMeta) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		sel, _ := col.Value.(core.Selection)

		h.raw(`<fieldset class="choices">`)
		h.raw(`<button type="button"`)
		h.attr("hx-delete", viewURL(viewID, "filter", string(col.Field)))
		h.attr("hx-target", "#"+GridID)
		h.attr("hx-swap", "outerHTML")
		h.boolAttr("disabled", len(sel) == 0)
		h.raw(`>All</button>`)
		for i, option := range selectOptions(col.Options.Choices, sel) {
			vals, _ := json.Marshal(map[string]string{"option": option})

			h.raw(`<label><input type="checkbox" name="checked" value="true"`)
			h.attr("id", controlID(col, "-"+strconv.Itoa(i)))
			h.boolAttr("checked", sel.Has(option))
			h.attr("hx-post", viewURL(viewID, "select", string(col.Field)))
			h.attr("hx-vals", string(vals))
			swapTarget(h, "change")
			h.raw(`> `)
			h.text(option)
			h.raw(`</label>`)
		}
		h.raw(`</fieldset>`)
	})
}

// selectOptions appends checked options that other filters have removed
// from choices, so they can still be unchecked.
func selectOptions(choices []string, sel core.Selection) []string {
	out := choices
	for _, option := range sel {
		if !slices.Contains(choices, option) {
			if len(out) == len(choices) {
				out = slices.Clone(choices)
			}
			out = append(out, option)
		}
	}
	return out
}
