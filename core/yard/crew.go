package yard

import (
	"fmt"
	"maps"
	"slices"

	"github.com/kilianp07/dockyard/core/model"
)

// Transfer is a crew member being dragged, with hints about where it came
// from. The hints are informational; the store locates the member itself.
type Transfer struct {
	CrewID     string     `json:"crewId"`
	FromDockID string     `json:"fromDockId,omitempty"`
	FromPool   model.Pool `json:"fromPool,omitempty"`
}

// Target is where a transfer is dropped: a dock or a pool.
type Target struct {
	DockID string
	Pool   model.Pool
}

// Drop applies a transfer to a target. Malformed transfers and unknown
// targets are ignored and reported as false.
func (s *Store) Drop(t Transfer, to Target) bool {
	if t.CrewID == "" {
		return false
	}
	switch {
	case to.DockID != "":
		return s.RelocateToDock(t.CrewID, t.FromDockID, to.DockID)
	case to.Pool != "":
		return s.RelocateToPool(t.CrewID, t.FromDockID, to.Pool)
	default:
		return false
	}
}

// RelocateToDock moves a crew member onto a dock. The member is removed from
// the pool and from any other dock first; dropping onto the dock it already
// occupies changes nothing.
func (s *Store) RelocateToDock(crewID, fromDockID, dockID string) bool {
	if crewID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	target := s.dockIndex(dockID)
	if target < 0 {
		return false
	}
	if fromDockID != "" && s.log != nil && !slices.ContainsFunc(s.docks, func(d model.Dock) bool {
		return d.ID == fromDockID && d.HasCrew(crewID)
	}) {
		s.log.Debugf("transfer hint for %s names %s but it is not there", crewID, fromDockID)
	}
	next := make([]model.Dock, len(s.docks))
	for i, d := range s.docks {
		switch {
		case i == target:
			if !d.HasCrew(crewID) {
				d.CrewIDs = append(slices.Clone(d.CrewIDs), crewID)
			}
		case d.HasCrew(crewID):
			d.CrewIDs = without(d.CrewIDs, crewID)
		}
		next[i] = d
	}
	s.docks = next
	s.pool = slices.DeleteFunc(slices.Clone(s.pool), func(c model.PoolEntry) bool { return c.ID == crewID })
	d := next[target]
	s.emit(Event{Kind: EventCrewMoved, CrewID: crewID, DockID: dockID, Dock: &d})
	return true
}

// RelocateToPool moves a crew member into a pool, retagging an existing pool
// entry in place or inserting a new one at the front.
func (s *Store) RelocateToPool(crewID, fromDockID string, pool model.Pool) bool {
	if crewID == "" || !pool.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relocateToPoolLocked(crewID, pool)
	s.emit(Event{Kind: EventCrewMoved, CrewID: crewID, DockID: fromDockID})
	return true
}

func (s *Store) relocateToPoolLocked(crewID string, pool model.Pool) {
	s.removeFromDocksLocked(crewID)
	i := slices.IndexFunc(s.pool, func(c model.PoolEntry) bool { return c.ID == crewID })
	if i >= 0 {
		next := slices.Clone(s.pool)
		next[i].Pool = pool
		s.pool = next
		return
	}
	s.pool = append([]model.PoolEntry{{ID: crewID, Pool: pool}}, s.pool...)
}

func (s *Store) removeFromDocksLocked(crewID string) {
	if !slices.ContainsFunc(s.docks, func(d model.Dock) bool { return d.HasCrew(crewID) }) {
		return
	}
	next := slices.Clone(s.docks)
	for i, d := range next {
		if d.HasCrew(crewID) {
			next[i].CrewIDs = without(d.CrewIDs, crewID)
		}
	}
	s.docks = next
}

// MoveCrew moves a crew member into a pool from wherever it is.
func (s *Store) MoveCrew(crewID string, pool model.Pool) error {
	if !pool.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownPool, pool)
	}
	s.RelocateToPool(crewID, "", pool)
	return nil
}

// NextCrewID returns the first free id: C01..C99, then C100 upwards.
func (s *Store) NextCrewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextCrewIDLocked()
}

func (s *Store) nextCrewIDLocked() string {
	used := func(id string) bool {
		if _, ok := s.names[id]; ok {
			return true
		}
		if slices.ContainsFunc(s.pool, func(c model.PoolEntry) bool { return c.ID == id }) {
			return true
		}
		return slices.ContainsFunc(s.docks, func(d model.Dock) bool { return d.HasCrew(id) })
	}
	for i := 1; i < 100; i++ {
		id := fmt.Sprintf("C%02d", i)
		if !used(id) {
			return id
		}
	}
	for n := 100; ; n++ {
		id := fmt.Sprintf("C%d", n)
		if !used(id) {
			return id
		}
	}
}

// AddCrew registers a new crew member in a pool and returns its id. A blank
// name defaults to the id and a blank pool to unassigned.
func (s *Store) AddCrew(name string, pool model.Pool) (string, error) {
	if pool == "" {
		pool = model.PoolUnassigned
	}
	if !pool.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPool, pool)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextCrewIDLocked()
	if name == "" {
		name = id
	}
	names := maps.Clone(s.names)
	names[id] = name
	s.names = names
	s.pool = append([]model.PoolEntry{{ID: id, Pool: pool}}, s.pool...)
	s.emit(Event{Kind: EventCrewAdded, CrewID: id})
	return id, nil
}

// RenameCrew sets a display name. A blank name resets it to the id.
func (s *Store) RenameCrew(crewID, name string) {
	if crewID == "" {
		return
	}
	if name == "" {
		name = crewID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	names := maps.Clone(s.names)
	names[crewID] = name
	s.names = names
	s.emit(Event{Kind: EventCrewRenamed, CrewID: crewID})
}

// DeleteCrew removes a crew member from the pool, every dock and the name
// directory. Deleting an unknown id is a no-op.
func (s *Store) DeleteCrew(crewID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool = slices.DeleteFunc(slices.Clone(s.pool), func(c model.PoolEntry) bool { return c.ID == crewID })
	s.removeFromDocksLocked(crewID)
	if _, ok := s.names[crewID]; ok {
		names := maps.Clone(s.names)
		delete(names, crewID)
		s.names = names
	}
	s.emit(Event{Kind: EventCrewDeleted, CrewID: crewID})
}

func without(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}
