package docks

import (
	"net/http"

	"github.com/kilianp07/dockyard/api"
	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/core/yard"
)

// NewKPIHandler serves GET /api/kpis.
func NewKPIHandler(st *yard.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, yard.ComputeKPIs(st.Snapshot()))
	})
}

// NewScheduleHandler serves GET /api/schedule for today's window.
func NewScheduleHandler(st *yard.Store, win yard.Window) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, yard.BuildSchedule(st.Snapshot(), win, st.Now()))
	})
}

type statusInfo struct {
	Status    model.Status  `json:"status"`
	Label     string        `json:"label"`
	Startable bool          `json:"startable"`
	Colors    model.Palette `json:"colors"`
}

// NewStatusesHandler serves GET /api/statuses in cycle order.
func NewStatusesHandler() http.Handler {
	out := make([]statusInfo, len(model.Statuses))
	for i, s := range model.Statuses {
		out[i] = statusInfo{Status: s, Label: s.Label(), Startable: s.Startable(), Colors: s.Colors()}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, out)
	})
}
