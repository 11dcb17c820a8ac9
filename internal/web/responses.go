package web

import "github.com/JonMunkholm/productgrid/internal/core"

// layoutResponse is the JSON shape of a registered layout.
type layoutResponse struct {
	Key      string           `json:"key"`
	Label    string           `json:"label"`
	PageSize int              `json:"page_size,omitempty"`
	Columns  []columnResponse `json:"columns"`
}

type columnResponse struct {
	Field    string `json:"field"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
	Filter   string `json:"filter"`
}

// sortResponse is the active sort key, if any.
type sortResponse struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type rangeResponse struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

type dateRangeResponse struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// snapshotResponse is the JSON shape of GET /api/views/{viewID}.
type snapshotResponse struct {
	ViewID   string           `json:"view_id"`
	Layout   string           `json:"layout"`
	Summary  string           `json:"summary"`
	Matched  int              `json:"matched"`
	Total    int              `json:"total"`
	PageSize int              `json:"page_size"`
	Rows     []map[string]any `json:"rows"`
	Filters  map[string]any   `json:"filters"`
	Sort     *sortResponse    `json:"sort"`
	Visible  []int            `json:"visible_filters"`
}

func toLayoutResponse(l core.Layout) layoutResponse {
	cols := l.Schema.Columns()
	resp := layoutResponse{
		Key:      l.Key,
		Label:    l.Label,
		PageSize: l.PageSize,
		Columns:  make([]columnResponse, len(cols)),
	}
	for i, c := range cols {
		resp.Columns[i] = columnResponse{
			Field:    string(c.Field),
			Label:    c.Label,
			Sortable: c.Sortable,
			Filter:   c.Filter.String(),
		}
	}
	return resp
}

func toSnapshotResponse(snap *core.Snapshot) snapshotResponse {
	resp := snapshotResponse{
		ViewID:   snap.ViewID,
		Layout:   snap.Layout.Key,
		Summary:  snap.Result.Summary(),
		Matched:  snap.Result.Matched,
		Total:    snap.Result.Total,
		PageSize: snap.Result.PageSize,
		Rows:     make([]map[string]any, len(snap.Result.Rows)),
		Filters:  make(map[string]any, snap.Filters.Len()),
		Visible:  []int{},
	}

	for i, row := range snap.Result.Rows {
		m := make(map[string]any)
		for _, f := range core.RowShape() {
			if v, ok := row.Value(f); ok {
				m[string(f)] = v
			}
		}
		resp.Rows[i] = m
	}

	for _, f := range snap.Filters.Fields() {
		v, _ := snap.Filters.Get(f)
		resp.Filters[string(f)] = filterValueResponse(v)
	}

	if snap.Sort != nil {
		resp.Sort = &sortResponse{Field: string(snap.Sort.Field), Direction: string(snap.Sort.Direction)}
	}

	for i := range snap.Layout.Schema.Len() {
		if snap.Visibility.Visible(i) {
			resp.Visible = append(resp.Visible, i)
		}
	}
	return resp
}

func filterValueResponse(v any) any {
	switch v := v.(type) {
	case core.Range:
		return rangeResponse{Min: v.Min, Max: v.Max}
	case core.DateRange:
		return dateRangeResponse{From: v.From, To: v.To}
	case core.Selection:
		return []string(v)
	default:
		return v
	}
}
