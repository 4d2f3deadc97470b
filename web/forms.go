package web

import (
	"net/http"
	"strings"

	"github.com/kilianp07/dockyard/api/crew"
	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/core/yard"
)

// back redirects to the page the form was posted from.
func back(w http.ResponseWriter, r *http.Request, fallback string) {
	to := fallback
	if ref := r.FormValue("return"); strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		to = ref
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (h *Handler) logErr(op string, err error) {
	if err != nil {
		h.log.Warnf("%s: %v", op, err)
	}
}

func (h *Handler) toggleFilter(w http.ResponseWriter, r *http.Request) {
	if s, ok := model.ParseStatus(r.FormValue("status")); ok {
		h.store.ToggleFilter(s)
	}
	back(w, r, "/")
}

func (h *Handler) toggleAllFilters(w http.ResponseWriter, r *http.Request) {
	h.store.ToggleAllFilters()
	back(w, r, "/")
}

func (h *Handler) setQuery(w http.ResponseWriter, r *http.Request) {
	h.store.SetQuery(r.FormValue("q"))
	back(w, r, "/")
}

func (h *Handler) cycleDock(w http.ResponseWriter, r *http.Request) {
	_, err := h.store.CycleStatus(r.PathValue("id"))
	h.logErr("cycle", err)
	back(w, r, "/")
}

func (h *Handler) toggleTimer(w http.ResponseWriter, r *http.Request) {
	_, _, err := h.store.ToggleTimer(r.PathValue("id"))
	h.logErr("timer", err)
	back(w, r, "/")
}

func (h *Handler) saveDock(w http.ResponseWriter, r *http.Request) {
	_, err := h.store.SaveDock(r.PathValue("id"), yard.DockPatch{
		Status: model.Status(r.FormValue("status")),
		Assignment: model.Assignment{
			Carrier:     strings.TrimSpace(r.FormValue("carrier")),
			Trailer:     strings.TrimSpace(r.FormValue("trailer")),
			Destination: strings.TrimSpace(r.FormValue("destination")),
		},
	})
	h.logErr("save dock", err)
	back(w, r, "/")
}

func (h *Handler) addCrew(w http.ResponseWriter, r *http.Request) {
	_, err := h.store.AddCrew(strings.TrimSpace(r.FormValue("name")), model.Pool(r.FormValue("pool")))
	h.logErr("add crew", err)
	back(w, r, "/crew")
}

// knownCrew replies 404 unless the path id names a crew member.
func (h *Handler) knownCrew(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if !h.store.Snapshot().HasCrew(id) {
		http.NotFound(w, r)
		return "", false
	}
	return id, true
}

func (h *Handler) renameCrew(w http.ResponseWriter, r *http.Request) {
	id, ok := h.knownCrew(w, r)
	if !ok {
		return
	}
	h.store.RenameCrew(id, strings.TrimSpace(r.FormValue("name")))
	back(w, r, "/crew")
}

func (h *Handler) moveCrew(w http.ResponseWriter, r *http.Request) {
	id, ok := h.knownCrew(w, r)
	if !ok {
		return
	}
	h.logErr("move crew", h.store.MoveCrew(id, model.Pool(r.FormValue("pool"))))
	back(w, r, "/crew")
}

func (h *Handler) deleteCrew(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteCrew(r.PathValue("id"))
	back(w, r, "/crew")
}

// dropCrew takes the drag payload in the transfer field. A malformed payload
// changes nothing.
func (h *Handler) dropCrew(w http.ResponseWriter, r *http.Request) {
	if t, ok := crew.ParseTransfer([]byte(r.FormValue("transfer"))); ok {
		h.store.Drop(t, yard.Target{DockID: r.FormValue("dockId"), Pool: model.Pool(r.FormValue("pool"))})
	}
	back(w, r, "/")
}
