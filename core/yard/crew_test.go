package yard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dockyard/core/model"
)

// locations counts where a crew id appears across the pool and docks.
func locations(s Snapshot, id string) int {
	n := 0
	for _, c := range s.Pool {
		if c.ID == id {
			n++
		}
	}
	for _, d := range s.Docks {
		for _, x := range d.CrewIDs {
			if x == id {
				n++
			}
		}
	}
	return n
}

func TestRelocateKeepsSingleLocation(t *testing.T) {
	s, _, _ := newTestStore()
	steps := []func(){
		func() { s.Drop(Transfer{CrewID: "C01", FromPool: model.PoolUnassigned}, Target{DockID: "dock_1"}) },
		func() { s.Drop(Transfer{CrewID: "C01", FromDockID: "dock_1"}, Target{DockID: "dock_2"}) },
		func() { s.Drop(Transfer{CrewID: "C01"}, Target{DockID: "dock_3"}) },
		func() { s.Drop(Transfer{CrewID: "C01", FromDockID: "dock_9"}, Target{Pool: model.PoolBreak}) },
		func() { s.Drop(Transfer{CrewID: "C01", FromPool: model.PoolBreak}, Target{Pool: model.PoolAbsent}) },
		func() { s.Drop(Transfer{CrewID: "C01"}, Target{DockID: "dock_5"}) },
	}
	for i, step := range steps {
		step()
		assert.Equal(t, 1, locations(s.Snapshot(), "C01"), "after step %d", i)
	}
	d, _ := s.Dock("dock_5")
	assert.Equal(t, []string{"C01"}, d.CrewIDs)
}

func TestDuplicateDropIsIdempotent(t *testing.T) {
	s, _, _ := newTestStore()
	tr := Transfer{CrewID: "C02", FromPool: model.PoolUnassigned}
	assert.True(t, s.Drop(tr, Target{DockID: "dock_7"}))
	assert.True(t, s.Drop(tr, Target{DockID: "dock_7"}))
	d, _ := s.Dock("dock_7")
	assert.Equal(t, []string{"C02"}, d.CrewIDs)
	assert.Equal(t, 1, locations(s.Snapshot(), "C02"))
}

func TestMalformedDropIgnored(t *testing.T) {
	s, _, pub := newTestStore()
	before := s.Snapshot()
	assert.False(t, s.Drop(Transfer{}, Target{DockID: "dock_1"}))
	assert.False(t, s.Drop(Transfer{CrewID: "C01"}, Target{}))
	assert.False(t, s.Drop(Transfer{CrewID: "C01"}, Target{DockID: "dock_404"}))
	assert.False(t, s.Drop(Transfer{CrewID: "C01"}, Target{Pool: "lunch"}))
	assert.Equal(t, before, s.Snapshot())
	assert.Empty(t, pub.events)
}

func TestRelocateToPoolRetagsInPlaceOrPrepends(t *testing.T) {
	s, _, _ := newTestStore()
	require.True(t, s.RelocateToPool("C03", "", model.PoolBreak))
	snap := s.Snapshot()
	assert.Equal(t, "C03", snap.Pool[2].ID)
	assert.Equal(t, model.PoolBreak, snap.Pool[2].Pool)

	require.True(t, s.RelocateToDock("C04", "", "dock_2"))
	require.True(t, s.RelocateToPool("C04", "dock_2", model.PoolStarkist))
	snap = s.Snapshot()
	assert.Equal(t, model.PoolEntry{ID: "C04", Pool: model.PoolStarkist}, snap.Pool[0])
	d, _ := snap.Dock("dock_2")
	assert.Empty(t, d.CrewIDs)
}

func TestAddCrewAllocatesSequentialIDs(t *testing.T) {
	s, _, _ := newTestStore()
	var ids []string
	for _, name := range []string{"Ana", "", "Bo"} {
		id, err := s.AddCrew(name, "")
		require.NoError(t, err)
		ids = append(ids, id)
	}
	assert.Equal(t, []string{"C06", "C07", "C08"}, ids)
	snap := s.Snapshot()
	assert.Equal(t, "C07", snap.Name("C07"))
	assert.Equal(t, "C08", snap.Pool[0].ID)
	assert.Equal(t, model.PoolUnassigned, snap.Pool[0].Pool)

	_, err := s.AddCrew("X", "lunch")
	assert.ErrorIs(t, err, ErrUnknownPool)
}

func TestNextCrewIDSkipsEveryUse(t *testing.T) {
	s := NewStore(Config{SeedCrew: map[string]string{}})
	assert.Equal(t, "C01", s.NextCrewID())
	s.RenameCrew("C01", "orphan name")
	require.True(t, s.RelocateToDock("C02", "", "dock_1"))
	require.True(t, s.RelocateToPool("C03", "", model.PoolAbsent))
	assert.Equal(t, "C04", s.NextCrewID())
}

func TestNextCrewIDFallsBackToLongForm(t *testing.T) {
	s := NewStore(Config{SeedCrew: map[string]string{}})
	for i := 1; i < 100; i++ {
		_, err := s.AddCrew("", model.PoolUnassigned)
		require.NoError(t, err)
	}
	assert.Equal(t, "C100", s.NextCrewID())
	s.RenameCrew("C100", "taken")
	assert.Equal(t, "C101", s.NextCrewID())
}

func TestDeleteCrewPurgesEverywhere(t *testing.T) {
	s, _, _ := newTestStore()
	require.True(t, s.RelocateToDock("C01", "", "dock_3"))
	s.DeleteCrew("C01")

	snap := s.Snapshot()
	d, _ := snap.Dock("dock_3")
	assert.Empty(t, d.CrewIDs)
	assert.Equal(t, 0, locations(snap, "C01"))
	_, named := snap.Names["C01"]
	assert.False(t, named)
	for _, row := range Roster(snap) {
		assert.NotEqual(t, "C01", row.ID)
	}

	s.DeleteCrew("C404")
	assert.Len(t, s.Snapshot().Pool, 4)
}

func TestRenameAndMoveCrew(t *testing.T) {
	s, _, _ := newTestStore()
	s.RenameCrew("C05", "")
	assert.Equal(t, "C05", s.Snapshot().Name("C05"))
	require.True(t, s.RelocateToDock("C05", "", "dock_1"))
	require.NoError(t, s.MoveCrew("C05", model.PoolBreak))
	assert.Equal(t, 1, locations(s.Snapshot(), "C05"))
	assert.ErrorIs(t, s.MoveCrew("C05", "nowhere"), ErrUnknownPool)
}
