// Package docks exposes dock state and dock mutations over HTTP.
package docks

import (
	"net/http"
	"strings"

	"github.com/kilianp07/dockyard/api"
	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/core/yard"
)

// dockView is a dock with its derived display fields.
type dockView struct {
	model.Dock
	StatusLabel string `json:"status_label"`
	Elapsed     string `json:"elapsed,omitempty"`
}

func view(d model.Dock, st *yard.Store) dockView {
	v := dockView{Dock: d, StatusLabel: d.Status.Label()}
	if d.Running() {
		v.Elapsed = model.FormatDuration(d.Elapsed(st.Now()))
	}
	return v
}

// NewListHandler serves GET /api/docks. The status parameter takes a comma
// separated status list (all when absent) and q a free-text search.
func NewListHandler(st *yard.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f := yard.NewFilter()
		if raw := r.URL.Query().Get("status"); raw != "" {
			f.Statuses = nil
			for _, part := range strings.Split(raw, ",") {
				s, ok := model.ParseStatus(strings.TrimSpace(part))
				if !ok {
					http.Error(w, "unknown status "+part, http.StatusBadRequest)
					return
				}
				f.Statuses = append(f.Statuses, s)
			}
		}
		f.Query = r.URL.Query().Get("q")
		docks := yard.VisibleDocks(st.Snapshot().Docks, f)
		out := make([]dockView, len(docks))
		for i, d := range docks {
			out[i] = view(d, st)
		}
		api.WriteJSON(w, http.StatusOK, out)
	})
}

// NewGetHandler serves GET /api/docks/{id}.
func NewGetHandler(st *yard.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, ok := st.Dock(r.PathValue("id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		api.WriteJSON(w, http.StatusOK, view(d, st))
	})
}

type saveRequest struct {
	Status      model.Status `json:"status"`
	Carrier     string       `json:"carrier"`
	Trailer     string       `json:"trailer"`
	Destination string       `json:"destination"`
}

// NewSaveHandler serves PUT /api/docks/{id}. Blank assignment fields clear
// the dock's vehicle.
func NewSaveHandler(st *yard.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req saveRequest
		if !api.DecodeJSON(w, r, &req) {
			return
		}
		d, err := st.SaveDock(r.PathValue("id"), yard.DockPatch{
			Status: req.Status,
			Assignment: model.Assignment{
				Carrier:     strings.TrimSpace(req.Carrier),
				Trailer:     strings.TrimSpace(req.Trailer),
				Destination: strings.TrimSpace(req.Destination),
			},
		})
		if err != nil {
			api.Error(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, view(d, st))
	})
}

// NewCycleHandler serves POST /api/docks/{id}/cycle.
func NewCycleHandler(st *yard.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d, err := st.CycleStatus(r.PathValue("id"))
		if err != nil {
			api.Error(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, view(d, st))
	})
}

// NewStatusHandler serves PUT /api/docks/{id}/status with {"status": "..."}.
func NewStatusHandler(st *yard.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Status model.Status `json:"status"`
		}
		if !api.DecodeJSON(w, r, &req) {
			return
		}
		d, err := st.SetStatus(r.PathValue("id"), req.Status)
		if err != nil {
			api.Error(w, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, view(d, st))
	})
}
