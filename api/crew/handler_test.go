package crew

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/core/yard"
)

func setup() (*yard.Store, http.Handler) {
	st := yard.NewStore(yard.Config{})
	mux := http.NewServeMux()
	Routes(mux, st, nil)
	return st, mux
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func location(t *testing.T, st *yard.Store, id string) string {
	t.Helper()
	for _, row := range yard.Roster(st.Snapshot()) {
		if row.ID == id {
			return row.Location
		}
	}
	return ""
}

func TestListRosterAndPools(t *testing.T) {
	_, h := setup()
	rr := do(h, http.MethodGet, "/api/crew", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var res rosterResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Len(t, res.Roster, 5)
	require.Len(t, res.Pools, len(model.Pools))
	assert.Equal(t, model.PoolUnassigned, res.Pools[0].Pool)
	assert.Len(t, res.Pools[0].Members, 5)
	assert.Empty(t, res.Pools[1].Members)
}

func TestCreateRenameDelete(t *testing.T) {
	st, h := setup()

	rr := do(h, http.MethodPost, "/api/crew", `{"name":" Park ","pool":"break"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var row model.RosterRow
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &row))
	assert.Equal(t, "C06", row.ID)
	assert.Equal(t, "Park", row.Name)

	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/api/crew", `{"pool":"moon"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/api/crew", `nope`).Code)

	assert.Equal(t, http.StatusNoContent, do(h, http.MethodPatch, "/api/crew/C06", `{"name":"Lee"}`).Code)
	assert.Equal(t, "Lee", st.Snapshot().Name("C06"))
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodPatch, "/api/crew/C42", `{"name":"x"}`).Code)

	require.True(t, st.RelocateToDock("C06", "", "dock_4"))
	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, "/api/crew/C06", "").Code)
	d, _ := st.Dock("dock_4")
	assert.Empty(t, d.CrewIDs)
	assert.False(t, st.Snapshot().HasCrew("C06"))
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodDelete, "/api/crew/C06", "").Code)
}

func TestMove(t *testing.T) {
	st, h := setup()
	assert.Equal(t, http.StatusNoContent, do(h, http.MethodPost, "/api/crew/C02/move", `{"pool":"absent"}`).Code)
	assert.Equal(t, model.PoolAbsent.Label(), location(t, st, "C02"))
	assert.Equal(t, http.StatusBadRequest, do(h, http.MethodPost, "/api/crew/C02/move", `{"pool":"gone"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodPost, "/api/crew/C77/move", `{"pool":"absent"}`).Code)
}

func TestDrop(t *testing.T) {
	st, h := setup()

	rr := do(h, http.MethodPost, "/api/crew/drop", `{"transfer":{"crewId":"C01","fromPool":"unassigned"},"dockId":"dock_2"}`)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "true", rr.Header().Get("X-Dock-Applied"))
	assert.Equal(t, "Dock 2", location(t, st, "C01"))

	rr = do(h, http.MethodPost, "/api/crew/drop", `{"transfer":"{\"crewId\":\"C01\",\"fromDockId\":\"dock_2\"}","pool":"break"}`)
	assert.Equal(t, "true", rr.Header().Get("X-Dock-Applied"))
	assert.Equal(t, model.PoolBreak.Label(), location(t, st, "C01"))

	before := st.Snapshot()
	for _, body := range []string{``, `garbage`, `{"transfer":"not json","dockId":"dock_1"}`, `{"transfer":{},"dockId":"dock_1"}`} {
		rr = do(h, http.MethodPost, "/api/crew/drop", body)
		assert.Equal(t, http.StatusNoContent, rr.Code, body)
		assert.Equal(t, "false", rr.Header().Get("X-Dock-Applied"), body)
	}
	assert.Equal(t, before.Docks, st.Snapshot().Docks)
	assert.Equal(t, before.Pool, st.Snapshot().Pool)
}

func TestParseTransfer(t *testing.T) {
	tr, ok := ParseTransfer([]byte(`{"crewId":"C03","fromDockId":"dock_1"}`))
	require.True(t, ok)
	assert.Equal(t, "C03", tr.CrewID)
	assert.Equal(t, "dock_1", tr.FromDockID)

	_, ok = ParseTransfer(nil)
	assert.False(t, ok)
	_, ok = ParseTransfer([]byte(`"{}"`))
	assert.False(t, ok)
}
