// Package crew exposes the roster and crew relocation over HTTP.
package crew

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kilianp07/dockyard/api"
	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/core/yard"
)

type poolView struct {
	Pool    model.Pool        `json:"pool"`
	Label   string            `json:"label"`
	Members []model.RosterRow `json:"members"`
}

type rosterResponse struct {
	Roster []model.RosterRow `json:"roster"`
	Pools  []poolView        `json:"pools"`
}

// NewListHandler serves GET /api/crew: the roster and each pool's members.
func NewListHandler(st *yard.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap := st.Snapshot()
		res := rosterResponse{Roster: yard.Roster(snap)}
		for _, p := range model.Pools {
			pv := poolView{Pool: p, Label: p.Label(), Members: []model.RosterRow{}}
			for _, c := range snap.PoolMembers(p) {
				pv.Members = append(pv.Members, model.RosterRow{ID: c.ID, Name: snap.Name(c.ID), Location: p.Label()})
			}
			res.Pools = append(res.Pools, pv)
		}
		api.WriteJSON(w, http.StatusOK, res)
	})
}

type createRequest struct {
	Name string     `json:"name"`
	Pool model.Pool `json:"pool"`
}

// NewCreateHandler serves POST /api/crew and replies with the new id.
func NewCreateHandler(st *yard.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if !api.DecodeJSON(w, r, &req) {
			return
		}
		if req.Pool == "" {
			req.Pool = model.PoolUnassigned
		}
		id, err := st.AddCrew(strings.TrimSpace(req.Name), req.Pool)
		if err != nil {
			api.Error(w, err)
			return
		}
		api.WriteJSON(w, http.StatusCreated, model.RosterRow{ID: id, Name: st.Snapshot().Name(id), Location: req.Pool.Label()})
	})
}

// known replies 404 unless the path id names a crew member.
func known(w http.ResponseWriter, r *http.Request, st *yard.Store) (string, bool) {
	id := r.PathValue("id")
	if !st.Snapshot().HasCrew(id) {
		http.NotFound(w, r)
		return "", false
	}
	return id, true
}

// NewRenameHandler serves PATCH /api/crew/{id} with {"name": "..."}.
func NewRenameHandler(st *yard.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := known(w, r, st)
		if !ok {
			return
		}
		var req struct {
			Name string `json:"name"`
		}
		if !api.DecodeJSON(w, r, &req) {
			return
		}
		st.RenameCrew(id, strings.TrimSpace(req.Name))
		w.WriteHeader(http.StatusNoContent)
	})
}

// NewDeleteHandler serves DELETE /api/crew/{id}.
func NewDeleteHandler(st *yard.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := known(w, r, st)
		if !ok {
			return
		}
		st.DeleteCrew(id)
		w.WriteHeader(http.StatusNoContent)
	})
}

// NewMoveHandler serves POST /api/crew/{id}/move with {"pool": "..."}.
func NewMoveHandler(st *yard.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := known(w, r, st)
		if !ok {
			return
		}
		var req struct {
			Pool model.Pool `json:"pool"`
		}
		if !api.DecodeJSON(w, r, &req) {
			return
		}
		if err := st.MoveCrew(id, req.Pool); err != nil {
			api.Error(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

type dropRequest struct {
	Transfer json.RawMessage `json:"transfer"`
	DockID   string          `json:"dockId"`
	Pool     model.Pool      `json:"pool"`
}

// NewDropHandler serves POST /api/crew/drop. The transfer is the drag
// payload, either an object or a JSON-encoded string of one. Malformed
// payloads are dropped silently: the reply is 204 either way and the
// X-Dock-Applied header tells whether anything moved.
func NewDropHandler(st *yard.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		applied := false
		var req dropRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			if t, ok := ParseTransfer(req.Transfer); ok {
				applied = st.Drop(t, yard.Target{DockID: req.DockID, Pool: req.Pool})
			}
		}
		if applied {
			w.Header().Set("X-Dock-Applied", "true")
		} else {
			w.Header().Set("X-Dock-Applied", "false")
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// ParseTransfer decodes a drag payload. It accepts the object itself or a
// string holding its JSON encoding.
func ParseTransfer(raw []byte) (yard.Transfer, bool) {
	var t yard.Transfer
	if len(raw) == 0 {
		return t, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		raw = []byte(s)
	}
	if err := json.Unmarshal(raw, &t); err != nil || t.CrewID == "" {
		return yard.Transfer{}, false
	}
	return t, true
}
