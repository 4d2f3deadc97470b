package yard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dockyard/core/model"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type recordingPublisher struct{ events []Event }

func (p *recordingPublisher) Publish(e Event) { p.events = append(p.events, e) }

func newTestStore() (*Store, *fakeClock, *recordingPublisher) {
	clk := &fakeClock{t: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)}
	pub := &recordingPublisher{}
	return NewStore(Config{Now: clk.Now, Publisher: pub}), clk, pub
}

func TestNewStoreDefaults(t *testing.T) {
	s, _, _ := newTestStore()
	snap := s.Snapshot()
	require.Len(t, snap.Docks, DefaultDockCount)
	assert.Equal(t, "dock_1", snap.Docks[0].ID)
	assert.Equal(t, "Dock 21", snap.Docks[20].Name)
	for _, d := range snap.Docks {
		assert.Equal(t, model.StatusAvailable, d.Status)
		assert.Nil(t, d.Assignment)
		assert.False(t, d.Running())
	}
	require.Len(t, snap.Pool, 5)
	assert.Equal(t, "C01", snap.Pool[0].ID)
	assert.Equal(t, "John", snap.Name("C05"))
	assert.True(t, snap.Filter.AllSelected())
}

func TestCycleAndSetStatus(t *testing.T) {
	s, _, pub := newTestStore()
	d, err := s.CycleStatus("dock_1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusScheduled, d.Status)

	d, err = s.SetStatus("dock_1", model.StatusStarkist)
	require.NoError(t, err)
	d, err = s.CycleStatus(d.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, d.Status)

	_, err = s.SetStatus("dock_99", model.StatusLoading)
	assert.ErrorIs(t, err, ErrUnknownDock)
	_, err = s.SetStatus("dock_1", model.Status("Parked"))
	assert.ErrorIs(t, err, ErrUnknownStatus)
	assert.Len(t, pub.events, 3)
}

func TestTimerLifecycle(t *testing.T) {
	s, clk, pub := newTestStore()
	_, err := s.SaveDock("dock_2", DockPatch{
		Status:     model.StatusLoading,
		Assignment: model.Assignment{Carrier: "ACME", Trailer: "TR-9", Destination: "Busan"},
	})
	require.NoError(t, err)

	d, ok, err := s.StartTimer("dock_2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "로딩", d.RunningLabel)
	assert.Equal(t, model.StatusLoading, d.Status)

	_, ok, err = s.StartTimer("dock_2")
	require.NoError(t, err)
	assert.False(t, ok, "second start must be rejected while running")

	_, err = s.SetStatus("dock_2", model.StatusDelayed)
	require.NoError(t, err)
	clk.Advance(75*time.Second + 400*time.Millisecond)

	d, rec, err := s.StopTimer("dock_2")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, model.StatusCompleted, d.Status)
	assert.Nil(t, d.StartedAt)
	assert.Empty(t, d.RunningLabel)
	assert.Equal(t, "로딩", rec.Label)
	assert.Equal(t, "ACME", rec.Carrier)
	assert.Equal(t, "TR-9", rec.Trailer)
	assert.Equal(t, "Busan", rec.Destination)
	assert.Equal(t, int64(75), rec.DurationSeconds())
	assert.NotEmpty(t, rec.ID)
	assert.Len(t, s.Records(), 1)

	last := pub.events[len(pub.events)-1]
	assert.Equal(t, EventTimerStopped, last.Kind)
	assert.Equal(t, rec.ID, last.Record.ID)
	assert.Len(t, last.Snapshot.Records, 1)

	_, rec, err = s.StopTimer("dock_2")
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Len(t, s.Records(), 1)
}

type recordingRecorder struct{ recs []model.TimeRecord }

func (r *recordingRecorder) RecordCompleted(rec model.TimeRecord) { r.recs = append(r.recs, rec) }

func TestRecorderReceivesEveryStop(t *testing.T) {
	clk := &fakeClock{t: time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)}
	rr := &recordingRecorder{}
	s := NewStore(Config{Now: clk.Now, Recorder: rr})

	_, err := s.SetStatus("dock_2", model.StatusLoading)
	require.NoError(t, err)
	_, _, err = s.ToggleTimer("dock_2")
	require.NoError(t, err)
	assert.Empty(t, rr.recs)

	clk.Advance(90 * time.Second)
	_, rec, err := s.ToggleTimer("dock_2")
	require.NoError(t, err)
	require.NotNil(t, rec)

	_, err = s.SetStatus("dock_3", model.StatusUnloading)
	require.NoError(t, err)
	_, _, err = s.StartTimer("dock_3")
	require.NoError(t, err)
	_, rec2, err := s.StopTimer("dock_3")
	require.NoError(t, err)

	_, none, err := s.StopTimer("dock_3")
	require.NoError(t, err)
	assert.Nil(t, none)

	require.Len(t, rr.recs, 2)
	assert.Equal(t, rec.ID, rr.recs[0].ID)
	assert.Equal(t, rec2.ID, rr.recs[1].ID)
	assert.Equal(t, int64(90), rr.recs[0].DurationSeconds())
}

func TestStartRejectedOnNonStartableStatus(t *testing.T) {
	s, _, _ := newTestStore()
	for _, st := range []model.Status{model.StatusAvailable, model.StatusCompleted, model.StatusDelayed} {
		_, err := s.SetStatus("dock_3", st)
		require.NoError(t, err)
		d, ok, err := s.StartTimer("dock_3")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, d.Running())
	}
}

func TestRecordsArePrepended(t *testing.T) {
	s, clk, _ := newTestStore()
	for _, id := range []string{"dock_1", "dock_2"} {
		_, err := s.SetStatus(id, model.StatusUnloading)
		require.NoError(t, err)
		_, _, err = s.ToggleTimer(id)
		require.NoError(t, err)
		clk.Advance(time.Minute)
		_, rec, err := s.ToggleTimer(id)
		require.NoError(t, err)
		require.NotNil(t, rec)
	}
	recs := s.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "dock_2", recs[0].DockID)
	assert.Equal(t, "dock_1", recs[1].DockID)
	assert.Equal(t, "", recs[0].Carrier)
}

func TestSaveDockClearsBlankAssignment(t *testing.T) {
	s, _, _ := newTestStore()
	d, err := s.SaveDock("dock_4", DockPatch{Status: model.StatusScheduled, Assignment: model.Assignment{Trailer: "T1"}})
	require.NoError(t, err)
	require.NotNil(t, d.Assignment)
	assert.Equal(t, "T1", d.Trailer())

	d, err = s.SaveDock("dock_4", DockPatch{Status: model.StatusScheduled})
	require.NoError(t, err)
	assert.Nil(t, d.Assignment)
}

func TestSnapshotIsNotMutatedLater(t *testing.T) {
	s, _, _ := newTestStore()
	before := s.Snapshot()
	_, err := s.SetStatus("dock_1", model.StatusLoading)
	require.NoError(t, err)
	require.True(t, s.RelocateToDock("C01", "", "dock_1"))
	s.RenameCrew("C02", "Kim")

	assert.Equal(t, model.StatusAvailable, before.Docks[0].Status)
	assert.Empty(t, before.Docks[0].CrewIDs)
	assert.Len(t, before.Pool, 5)
	assert.Equal(t, "이영희", before.Name("C02"))
}

func TestFilterMutations(t *testing.T) {
	s, _, _ := newTestStore()
	f := s.ToggleAllFilters()
	assert.Empty(t, f.Statuses)
	f = s.ToggleFilter(model.StatusLoading)
	assert.Equal(t, []model.Status{model.StatusLoading}, f.Statuses)
	f = s.ToggleAllFilters()
	assert.True(t, f.AllSelected())
	f = s.SetQuery("dock 1")
	assert.Equal(t, "dock 1", f.Query)
	assert.True(t, f.AllSelected())
}
