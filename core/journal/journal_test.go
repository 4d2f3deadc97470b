package journal

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dockyard/core/model"
)

var base = time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)

func rec(id, dock string, endOffset time.Duration) model.TimeRecord {
	return model.TimeRecord{
		ID:       id,
		DockID:   dock,
		DockName: "Dock " + dock[len("dock_"):],
		Start:    base,
		End:      base.Add(endOffset),
		Label:    "하역",
		Carrier:  "ACME",
	}
}

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	jsonl, err := NewJSONLStore(filepath.Join(dir, "records.jsonl"), 1, 2, 1)
	require.NoError(t, err)
	sqlite, err := NewSQLiteStore(filepath.Join(dir, "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = jsonl.Close()
		_ = sqlite.Close()
	})
	return map[string]Store{"jsonl": jsonl, "sqlite": sqlite}
}

func TestStoresAppendAndQuery(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Append(ctx, rec("a", "dock_1", time.Minute)))
			require.NoError(t, s.Append(ctx, rec("b", "dock_2", 2*time.Minute)))
			require.NoError(t, s.Append(ctx, rec("c", "dock_1", 3*time.Minute)))

			all, err := s.Query(ctx, Query{})
			require.NoError(t, err)
			require.Len(t, all, 3)
			assert.Equal(t, []string{"c", "b", "a"}, []string{all[0].ID, all[1].ID, all[2].ID})
			assert.Equal(t, "ACME", all[0].Carrier)
			assert.True(t, all[2].End.Equal(base.Add(time.Minute)))

			byDock, err := s.Query(ctx, Query{DockID: "dock_1"})
			require.NoError(t, err)
			assert.Len(t, byDock, 2)

			window, err := s.Query(ctx, Query{Start: base.Add(90 * time.Second), End: base.Add(150 * time.Second)})
			require.NoError(t, err)
			require.Len(t, window, 1)
			assert.Equal(t, "b", window[0].ID)
		})
	}
}

func TestJSONLRotationKeepsQueryable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.jsonl")
	s, err := NewJSONLStore(path, 1, 5, 1)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	pad := make([]byte, 32*1024)
	for i := range pad {
		pad[i] = 'x'
	}
	ctx := context.Background()
	for i := 0; i < 40; i++ {
		r := rec(fmt.Sprintf("r%02d", i), "dock_3", time.Duration(i)*time.Second)
		r.Destination = string(pad)
		require.NoError(t, s.Append(ctx, r))
	}
	files, err := filepath.Glob(filepath.Join(filepath.Dir(path), "records-*.jsonl"))
	require.NoError(t, err)
	assert.NotEmpty(t, files)

	got, err := s.Query(ctx, Query{DockID: "dock_3"})
	require.NoError(t, err)
	assert.Len(t, got, 40)
	assert.Equal(t, "r39", got[0].ID)
}

func TestSQLiteAppendIsIdempotent(t *testing.T) {
	s, err := NewSQLiteStore("file:journal_idem?mode=memory&cache=shared")
	require.NoError(t, err)
	defer func() { _ = s.Close() }()
	ctx := context.Background()
	r := rec("dup", "dock_1", time.Minute)
	require.NoError(t, s.Append(ctx, r))
	require.NoError(t, s.Append(ctx, r))
	got, err := s.Query(ctx, Query{})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestQueryMatch(t *testing.T) {
	r := rec("a", "dock_1", time.Minute)
	assert.True(t, Query{}.Match(r))
	assert.True(t, Query{End: r.End}.Match(r))
	assert.False(t, Query{Start: r.End.Add(time.Second)}.Match(r))
	assert.False(t, Query{DockID: "dock_2"}.Match(r))
}
