package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/productgrid/internal/core"
	"github.com/JonMunkholm/productgrid/internal/logging"
	"github.com/JonMunkholm/productgrid/internal/web/templates"
	"github.com/go-chi/chi/v5"
)

// handleHealth reports liveness with a few counters.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]any{
		"status":   "ok",
		"rows":     s.service.Store().Len(),
		"sessions": s.service.SessionCount(),
	})
}

// handleIndex redirects to the default layout.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/view/"+url.PathEscape(s.cfg.View.DefaultLayout), http.StatusFound)
}

// handleView opens a fresh view session and renders the full page.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.OpenView(r.Context(), chi.URLParam(r, "layout"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.WithView(r.Context(), snap.ViewID, "layout", snap.Layout.Key).Debug("page rendered")

	if isHTMX(r) {
		s.renderGrid(w, r, snap)
		return
	}

	page := templates.PageParams{
		Title:   snap.Layout.Label,
		Layouts: s.layoutLinks(snap.Layout.Key),
		Grid:    buildGrid(snap),
		HTMXSrc: HTMXSrc,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	templates.Page(page).Render(r.Context(), w)
}

// handleListLayouts returns the registered layouts and their columns.
func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	layouts := s.service.ListLayouts()
	resp := make([]layoutResponse, len(layouts))
	for i, l := range layouts {
		resp[i] = toLayoutResponse(l)
	}
	writeJSON(w, r, resp)
}

// handleSnapshot returns the current view state as JSON.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.Snapshot(r.Context(), chi.URLParam(r, "viewID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, toSnapshotResponse(snap))
}

// handleApplyFilter sets a column filter from the repeated "value" form field.
func (s *Server) handleApplyFilter(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	field := core.Field(chi.URLParam(r, "field"))
	snap, err := s.service.ApplyFilter(r.Context(), chi.URLParam(r, "viewID"), field, r.PostForm["value"])
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.renderGrid(w, r, snap)
}

// handleClearFilter removes a column filter.
func (s *Server) handleClearFilter(w http.ResponseWriter, r *http.Request) {
	field := core.Field(chi.URLParam(r, "field"))
	snap, err := s.service.ClearFilter(r.Context(), chi.URLParam(r, "viewID"), field)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.renderGrid(w, r, snap)
}

// handleToggleOption checks or unchecks one select option.
// A missing "checked" field means unchecked.
func (s *Server) handleToggleOption(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	checked, _ := strconv.ParseBool(r.PostFormValue("checked"))
	field := core.Field(chi.URLParam(r, "field"))

	snap, err := s.service.ToggleOption(r.Context(), chi.URLParam(r, "viewID"), field, r.PostFormValue("option"), checked)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.renderGrid(w, r, snap)
}

// handleSort applies a header click.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	field := core.Field(chi.URLParam(r, "field"))
	snap, err := s.service.SortBy(r.Context(), chi.URLParam(r, "viewID"), field)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.renderGrid(w, r, snap)
}

// handleClearSort returns the view to store order.
func (s *Server) handleClearSort(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.ClearSort(r.Context(), chi.URLParam(r, "viewID"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.renderGrid(w, r, snap)
}

// handleToggleFilter shows or hides a column's filter control.
func (s *Server) handleToggleFilter(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		s.respondError(w, r, fmt.Errorf("%w: index %q", core.ErrColumnNotFound, raw))
		return
	}

	snap, err := s.service.ToggleFilter(r.Context(), chi.URLParam(r, "viewID"), index)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.renderGrid(w, r, snap)
}

// renderGrid writes the swappable grid partial.
func (s *Server) renderGrid(w http.ResponseWriter, r *http.Request, snap *core.Snapshot) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Grid(buildGrid(snap)).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render grid", "error", err, "view_id", snap.ViewID)
	}
}

func (s *Server) layoutLinks(active string) []templates.LayoutLink {
	layouts := s.service.ListLayouts()
	links := make([]templates.LayoutLink, len(layouts))
	for i, l := range layouts {
		links[i] = templates.LayoutLink{Key: l.Key, Label: l.Label, Active: l.Key == active}
	}
	return links
}

// buildColumnMeta builds the header view model from a snapshot.
func buildColumnMeta(snap *core.Snapshot) []templates.ColumnMeta {
	cols := snap.Layout.Schema.Columns()
	meta := make([]templates.ColumnMeta, len(cols))
	for i, col := range cols {
		value, active := snap.Filters.Get(col.Field)
		cm := templates.ColumnMeta{
			Index:    i,
			Field:    col.Field,
			Label:    col.Label,
			Sortable: col.Sortable,
			Kind:     col.Filter,
			Visible:  snap.Visibility.Visible(i),
			Active:   active,
			Value:    value,
			Options:  snap.Options[col.Field],
		}
		if snap.Sort != nil && snap.Sort.Field == col.Field {
			cm.SortDir = snap.Sort.Direction
		}
		meta[i] = cm
	}
	return meta
}

// buildGrid flattens a snapshot into grid template params.
func buildGrid(snap *core.Snapshot) templates.GridParams {
	cols := snap.Layout.Schema.Columns()
	rows := make([][]string, len(snap.Result.Rows))
	for i, row := range snap.Result.Rows {
		cells := make([]string, len(cols))
		for j, col := range cols {
			cells[j] = row.Text(col.Field)
		}
		rows[i] = cells
	}

	return templates.GridParams{
		ViewID:  snap.ViewID,
		Columns: buildColumnMeta(snap),
		Rows:    rows,
		Summary: snap.Result.Summary(),
		Empty:   len(rows) == 0,
	}
}
