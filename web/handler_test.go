package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/core/yard"
)

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func setup(t *testing.T) (*yard.Store, *clock, *Handler) {
	t.Helper()
	clk := &clock{t: time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)}
	st := yard.NewStore(yard.Config{Now: clk.Now})
	h, err := NewHandler(st, Options{Location: time.UTC})
	require.NoError(t, err)
	return st, clk, h
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func post(h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestDashboardRenders(t *testing.T) {
	st, clk, h := setup(t)
	_, err := st.SaveDock("dock_7", yard.DockPatch{
		Status:     model.StatusLoading,
		Assignment: model.Assignment{Carrier: "Hanjin <Express>", Trailer: "TR-77"},
	})
	require.NoError(t, err)
	_, _, err = st.StartTimer("dock_7")
	require.NoError(t, err)
	clk.t = clk.t.Add(65 * time.Second)

	rr := get(h, "/")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `http-equiv="refresh" content="1"`)
	assert.Contains(t, body, "Dock 21")
	assert.Contains(t, body, "Hanjin &lt;Express&gt;")
	assert.Contains(t, body, "00:01:05")
	assert.Contains(t, body, "김철수")
	assert.Contains(t, body, model.PoolBreak.Label())
}

func TestFilterForms(t *testing.T) {
	st, _, h := setup(t)
	rr := post(h, "/filter/toggle", url.Values{"status": {"Available"}})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
	assert.False(t, st.Snapshot().Filter.Has(model.StatusAvailable))
	assert.NotContains(t, get(h, "/").Body.String(), `data-dock="dock_1"`)

	post(h, "/filter/all", nil)
	assert.True(t, st.Snapshot().Filter.AllSelected())

	post(h, "/filter/query", url.Values{"q": {"dock 1"}})
	assert.Equal(t, "dock 1", st.Snapshot().Filter.Query)
}

func TestDockForms(t *testing.T) {
	st, _, h := setup(t)
	post(h, "/docks/dock_1/cycle", nil)
	d, _ := st.Dock("dock_1")
	assert.Equal(t, model.StatusScheduled, d.Status)

	rr := post(h, "/docks/dock_1/edit", url.Values{"status": {"Unloading"}, "carrier": {"CJ"}, "return": {"/schedule"}})
	assert.Equal(t, "/schedule", rr.Header().Get("Location"))
	d, _ = st.Dock("dock_1")
	assert.Equal(t, "CJ", d.Carrier())

	post(h, "/docks/dock_1/timer", nil)
	d, _ = st.Dock("dock_1")
	assert.True(t, d.Running())
	post(h, "/docks/dock_1/timer", nil)
	assert.Len(t, st.Records(), 1)

	assert.Equal(t, http.StatusOK, get(h, "/docks/dock_1/edit").Code)
	assert.Equal(t, http.StatusNotFound, get(h, "/docks/nope/edit").Code)
}

func TestCrewForms(t *testing.T) {
	st, _, h := setup(t)
	rr := post(h, "/crew", url.Values{"name": {"Jung"}, "pool": {"starkist"}})
	assert.Equal(t, "/crew", rr.Header().Get("Location"))
	assert.Equal(t, "Jung", st.Snapshot().Name("C06"))

	post(h, "/crew/C06/rename", url.Values{"name": {"Jung H"}})
	assert.Equal(t, "Jung H", st.Snapshot().Name("C06"))

	post(h, "/crew/drop", url.Values{"transfer": {`{"crewId":"C06","fromPool":"starkist"}`}, "dockId": {"dock_9"}})
	d, _ := st.Dock("dock_9")
	assert.Equal(t, []string{"C06"}, d.CrewIDs)

	post(h, "/crew/drop", url.Values{"transfer": {"%%%"}, "dockId": {"dock_1"}})
	d, _ = st.Dock("dock_1")
	assert.Empty(t, d.CrewIDs)

	post(h, "/crew/C06/move", url.Values{"pool": {"absent"}})
	d, _ = st.Dock("dock_9")
	assert.Empty(t, d.CrewIDs)

	body := get(h, "/crew").Body.String()
	assert.Contains(t, body, "Jung H")
	assert.Contains(t, body, model.PoolAbsent.Label())

	post(h, "/crew/C06/delete", nil)
	assert.False(t, st.Snapshot().HasCrew("C06"))
}

func TestCrewFormsRejectUnknownID(t *testing.T) {
	st, _, h := setup(t)
	before := st.Snapshot()

	assert.Equal(t, http.StatusNotFound, post(h, "/crew/C99/rename", url.Values{"name": {"Ghost"}}).Code)
	assert.Equal(t, http.StatusNotFound, post(h, "/crew/C99/move", url.Values{"pool": {"absent"}}).Code)

	after := st.Snapshot()
	assert.False(t, after.HasCrew("C99"))
	assert.Equal(t, before.Pool, after.Pool)
	assert.Equal(t, before.Names, after.Names)
}

func TestSchedulePage(t *testing.T) {
	st, clk, h := setup(t)
	_, err := st.SetStatus("dock_3", model.StatusLooseUnloading)
	require.NoError(t, err)
	_, _, err = st.StartTimer("dock_3")
	require.NoError(t, err)
	clk.t = clk.t.Add(20 * time.Minute)

	rr := get(h, "/schedule")
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "08:00")
	assert.Contains(t, body, "17:00")
	assert.Contains(t, body, "block loose live")
	assert.Contains(t, body, `class="now"`)
}

func TestRenderFailureShowsFallback(t *testing.T) {
	_, _, h := setup(t)
	rr := httptest.NewRecorder()
	h.render(rr, "missing.html", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "다시 불러오기")
	assert.Contains(t, rr.Body.String(), "missing.html")
}

func TestPanicRecovered(t *testing.T) {
	_, _, h := setup(t)
	h.mux.HandleFunc("GET /boom", func(http.ResponseWriter, *http.Request) { panic("kaboom") })
	rr := get(h, "/boom")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "kaboom")
}
