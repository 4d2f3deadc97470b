package docks

import (
	"net/http"

	"github.com/kilianp07/dockyard/api"
	"github.com/kilianp07/dockyard/core/yard"
)

// Routes mounts the dock, KPI, schedule and status endpoints on mux.
// guard wraps every mutating route.
func Routes(mux *http.ServeMux, st *yard.Store, win yard.Window, guard api.Middleware) {
	g := api.Chain(guard)
	mux.Handle("GET /api/docks", NewListHandler(st))
	mux.Handle("GET /api/docks/{id}", NewGetHandler(st))
	mux.Handle("PUT /api/docks/{id}", g(NewSaveHandler(st)))
	mux.Handle("POST /api/docks/{id}/cycle", g(NewCycleHandler(st)))
	mux.Handle("PUT /api/docks/{id}/status", g(NewStatusHandler(st)))
	mux.Handle("POST /api/docks/{id}/timer", g(NewTimerHandler(st, TimerToggle)))
	mux.Handle("POST /api/docks/{id}/timer/start", g(NewTimerHandler(st, TimerStart)))
	mux.Handle("POST /api/docks/{id}/timer/stop", g(NewTimerHandler(st, TimerStop)))
	mux.Handle("GET /api/kpis", NewKPIHandler(st))
	mux.Handle("GET /api/schedule", NewScheduleHandler(st, win))
	mux.Handle("GET /api/statuses", NewStatusesHandler())
}
