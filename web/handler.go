package web

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/kilianp07/dockyard/core/logger"
	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/core/yard"
)

// Handler serves the HTML pages and their form posts.
type Handler struct {
	store    *yard.Store
	template *template.Template
	window   yard.Window
	loc      *time.Location
	log      logger.Logger
	mux      *http.ServeMux
}

// Options configures a Handler. Zero values use the defaults.
type Options struct {
	Window   yard.Window
	Location *time.Location
	Logger   logger.Logger
}

// NewHandler creates the page handler for st.
func NewHandler(st *yard.Store, opts Options) (*Handler, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	if opts.Window == (yard.Window{}) {
		opts.Window = yard.DefaultWindow()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	h := &Handler{
		store:    st,
		template: tmpl,
		window:   opts.Window,
		loc:      orLocal(opts.Location),
		log:      opts.Logger,
		mux:      http.NewServeMux(),
	}
	h.routes()
	return h, nil
}

func (h *Handler) routes() {
	h.mux.HandleFunc("GET /{$}", h.serveDashboard)
	h.mux.HandleFunc("GET /schedule", h.serveSchedule)
	h.mux.HandleFunc("GET /crew", h.serveRoster)
	h.mux.HandleFunc("GET /docks/{id}/edit", h.serveEdit)

	h.mux.HandleFunc("POST /filter/toggle", h.toggleFilter)
	h.mux.HandleFunc("POST /filter/all", h.toggleAllFilters)
	h.mux.HandleFunc("POST /filter/query", h.setQuery)
	h.mux.HandleFunc("POST /docks/{id}/cycle", h.cycleDock)
	h.mux.HandleFunc("POST /docks/{id}/timer", h.toggleTimer)
	h.mux.HandleFunc("POST /docks/{id}/edit", h.saveDock)
	h.mux.HandleFunc("POST /crew", h.addCrew)
	h.mux.HandleFunc("POST /crew/drop", h.dropCrew)
	h.mux.HandleFunc("POST /crew/{id}/rename", h.renameCrew)
	h.mux.HandleFunc("POST /crew/{id}/move", h.moveCrew)
	h.mux.HandleFunc("POST /crew/{id}/delete", h.deleteCrew)
}

// ServeHTTP recovers from panics raised while handling a page and renders
// the fallback page instead.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.fail(w, fmt.Errorf("panic: %v", rec))
		}
	}()
	h.mux.ServeHTTP(w, r)
}

// render executes name into a buffer so a template error never leaves a
// half-written page.
func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := h.template.ExecuteTemplate(&buf, name, data); err != nil {
		h.fail(w, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.log.Errorf("page error: %v", err)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if terr := h.template.ExecuteTemplate(w, "error.html", err.Error()); terr != nil {
		_, _ = fmt.Fprintf(w, "<p>%s</p><a href=\"/\">reload</a>", template.HTMLEscapeString(err.Error()))
	}
}

func (h *Handler) serveDashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, "dashboard.html", buildDashboard(h.store.Snapshot(), h.store.Now(), h.loc))
}

func (h *Handler) serveSchedule(w http.ResponseWriter, r *http.Request) {
	now := h.store.Now().In(h.loc)
	h.render(w, "schedule.html", buildSchedule(yard.BuildSchedule(h.store.Snapshot(), h.window, now), h.loc, 1.2))
}

func (h *Handler) serveRoster(w http.ResponseWriter, r *http.Request) {
	h.render(w, "crew.html", RosterData{Rows: yard.Roster(h.store.Snapshot()), Pools: model.Pools})
}

func (h *Handler) serveEdit(w http.ResponseWriter, r *http.Request) {
	d, ok := h.store.Dock(r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	h.render(w, "dock_edit.html", EditData{Dock: d, Statuses: model.Statuses})
}
