package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dockyard/config"
	"github.com/kilianp07/dockyard/core/journal"
	"github.com/kilianp07/dockyard/core/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.API.Token = "tok"
	cfg.Yard.Timezone = "UTC"
	cfg.Journal = config.JournalConfig{Backend: "sqlite", Path: filepath.Join(t.TempDir(), "records.db")}
	require.NoError(t, cfg.Validate())
	return cfg
}

func call(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer tok")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestServiceJournalsCompletedOperations(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	ctx := svc.start(context.Background())
	require.NoError(t, ctx.Err())

	srv := httptest.NewServer(svc.Handler())
	defer srv.Close()

	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodPut, "/api/docks/dock_6/status", `{"status":"Loading"}`).StatusCode)
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/api/docks/dock_6/timer", "").StatusCode)
	assert.Equal(t, http.StatusOK, call(t, srv, http.MethodPost, "/api/docks/dock_6/timer", "").StatusCode)

	assert.Eventually(t, func() bool {
		recs, err := svc.journal.Query(context.Background(), journal.Query{DockID: "dock_6"})
		return err == nil && len(recs) == 1
	}, 2*time.Second, 20*time.Millisecond)

	resp := call(t, srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp = call(t, srv, http.MethodGet, "/api/records.csv", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "dock_records_")

	require.NoError(t, svc.Close())
}

func TestServiceRejectsUnauthenticatedMutation(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	rr := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/docks/dock_1/cycle", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestNewRejectsUnknownSink(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Sinks[0].Type = "carrier-pigeon"
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestServiceCloseFlushesJustStoppedTimer(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg)
	require.NoError(t, err)
	svc.start(context.Background())

	_, err = svc.Store.SetStatus("dock_2", model.StatusLoading)
	require.NoError(t, err)
	_, _, err = svc.Store.StartTimer("dock_2")
	require.NoError(t, err)
	_, rec, err := svc.Store.StopTimer("dock_2")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.NoError(t, svc.Close())

	store, err := journal.NewSQLiteStore(cfg.Journal.Path)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()
	recs, err := store.Query(context.Background(), journal.Query{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, rec.ID, recs[0].ID)
}
