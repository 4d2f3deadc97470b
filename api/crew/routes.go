package crew

import (
	"net/http"

	"github.com/kilianp07/dockyard/api"
	"github.com/kilianp07/dockyard/core/yard"
)

// Routes mounts the crew endpoints on mux. guard wraps every mutating route.
func Routes(mux *http.ServeMux, st *yard.Store, guard api.Middleware) {
	g := api.Chain(guard)
	mux.Handle("GET /api/crew", NewListHandler(st))
	mux.Handle("POST /api/crew", g(NewCreateHandler(st)))
	mux.Handle("POST /api/crew/drop", g(NewDropHandler(st)))
	mux.Handle("PATCH /api/crew/{id}", g(NewRenameHandler(st)))
	mux.Handle("DELETE /api/crew/{id}", g(NewDeleteHandler(st)))
	mux.Handle("POST /api/crew/{id}/move", g(NewMoveHandler(st)))
}
