package yard

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/dockyard/core/logger"
	"github.com/kilianp07/dockyard/core/model"
)

// DefaultDockCount is the number of docks in the yard.
const DefaultDockCount = 21

// DefaultSeedCrew is the roster the yard starts with.
var DefaultSeedCrew = map[string]string{
	"C01": "김철수",
	"C02": "이영희",
	"C03": "박민수",
	"C04": "최지우",
	"C05": "John",
}

// Config configures a Store.
type Config struct {
	// Docks is the number of dock slots. Zero means DefaultDockCount.
	Docks int
	// SeedCrew maps crew ids to names. Seeded crew start in the unassigned pool.
	// Nil means DefaultSeedCrew; an empty map seeds nobody.
	SeedCrew map[string]string
	// Now returns the current time. Nil means time.Now.
	Now func() time.Time
	// Publisher receives an Event after every mutation. Optional.
	Publisher Publisher
	// Recorder receives each completed time record. Optional.
	Recorder Recorder
	// Logger is optional.
	Logger logger.Logger
}

// Snapshot is a read-only view of the store. Its collections are never
// modified after the snapshot is taken.
type Snapshot struct {
	Docks   []model.Dock       `json:"docks"`
	Pool    []model.PoolEntry  `json:"pool"`
	Names   map[string]string  `json:"names"`
	Records []model.TimeRecord `json:"records"`
	Filter  Filter             `json:"filter"`
}

// Name resolves a crew display name, falling back to the id.
func (s Snapshot) Name(id string) string {
	if n := s.Names[id]; n != "" {
		return n
	}
	return id
}

// Dock returns the dock with the given id.
func (s Snapshot) Dock(id string) (model.Dock, bool) {
	i := slices.IndexFunc(s.Docks, func(d model.Dock) bool { return d.ID == id })
	if i < 0 {
		return model.Dock{}, false
	}
	return s.Docks[i], true
}

// HasCrew reports whether id is named, pooled or placed on a dock.
func (s Snapshot) HasCrew(id string) bool {
	if _, ok := s.Names[id]; ok {
		return true
	}
	if slices.ContainsFunc(s.Pool, func(c model.PoolEntry) bool { return c.ID == id }) {
		return true
	}
	return slices.ContainsFunc(s.Docks, func(d model.Dock) bool { return d.HasCrew(id) })
}

// PoolMembers returns the pool entries tagged p, in pool order.
func (s Snapshot) PoolMembers(p model.Pool) []model.PoolEntry {
	out := []model.PoolEntry{}
	for _, c := range s.Pool {
		if c.Pool == p {
			out = append(out, c)
		}
	}
	return out
}

// Store is the in-memory dock yard state.
type Store struct {
	mu      sync.Mutex
	docks   []model.Dock
	pool    []model.PoolEntry
	names   map[string]string
	records []model.TimeRecord
	filter  Filter

	now func() time.Time
	pub Publisher
	rec Recorder
	log logger.Logger
}

// NewStore creates a store with fixed docks and the seed crew.
func NewStore(cfg Config) *Store {
	n := cfg.Docks
	if n <= 0 {
		n = DefaultDockCount
	}
	seed := cfg.SeedCrew
	if seed == nil {
		seed = DefaultSeedCrew
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	docks := make([]model.Dock, n)
	for i := range docks {
		num := i + 1
		docks[i] = model.Dock{
			ID:      fmt.Sprintf("dock_%d", num),
			Name:    fmt.Sprintf("Dock %d", num),
			Status:  model.StatusAvailable,
			CrewIDs: []string{},
		}
	}
	ids := slices.Collect(maps.Keys(seed))
	sort.Strings(ids)
	pool := make([]model.PoolEntry, 0, len(ids))
	for _, id := range ids {
		pool = append(pool, model.PoolEntry{ID: id, Pool: model.PoolUnassigned})
	}
	return &Store{
		docks:   docks,
		pool:    pool,
		names:   maps.Clone(seed),
		records: []model.TimeRecord{},
		filter:  NewFilter(),
		now:     now,
		pub:     cfg.Publisher,
		rec:     cfg.Recorder,
		log:     cfg.Logger,
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Docks:   s.docks,
		Pool:    s.pool,
		Names:   s.names,
		Records: s.records,
		Filter:  s.filter,
	}
}

// Now returns the store clock's current time.
func (s *Store) Now() time.Time { return s.now() }

// Dock returns the dock with the given id.
func (s *Store) Dock(id string) (model.Dock, bool) {
	return s.Snapshot().Dock(id)
}

// Records returns completed time records, newest first.
func (s *Store) Records() []model.TimeRecord {
	return s.Snapshot().Records
}

func (s *Store) emit(ev Event) {
	ev.Time = s.now()
	if s.log != nil {
		s.log.Debugw("yard mutation", map[string]any{
			"kind": string(ev.Kind), "dock_id": ev.DockID, "crew_id": ev.CrewID,
		})
	}
	if s.pub == nil {
		return
	}
	ev.Snapshot = s.snapshotLocked()
	s.pub.Publish(ev)
}

func (s *Store) dockIndex(id string) int {
	return slices.IndexFunc(s.docks, func(d model.Dock) bool { return d.ID == id })
}

// replaceDock swaps the dock at i for d in a fresh slice.
func (s *Store) replaceDock(i int, d model.Dock) {
	next := slices.Clone(s.docks)
	next[i] = d
	s.docks = next
}

// SetStatus sets a dock's status to any known value.
func (s *Store) SetStatus(dockID string, status model.Status) (model.Dock, error) {
	if !status.Valid() {
		return model.Dock{}, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.dockIndex(dockID)
	if i < 0 {
		return model.Dock{}, fmt.Errorf("%w: %s", ErrUnknownDock, dockID)
	}
	d := s.docks[i]
	d.Status = status
	s.replaceDock(i, d)
	s.emit(Event{Kind: EventStatusChanged, DockID: dockID, Dock: &d})
	return d, nil
}

// CycleStatus advances a dock to the next status in cycle order.
func (s *Store) CycleStatus(dockID string) (model.Dock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.dockIndex(dockID)
	if i < 0 {
		return model.Dock{}, fmt.Errorf("%w: %s", ErrUnknownDock, dockID)
	}
	d := s.docks[i]
	d.Status = d.Status.Next()
	s.replaceDock(i, d)
	s.emit(Event{Kind: EventStatusChanged, DockID: dockID, Dock: &d})
	return d, nil
}

// DockPatch is the editable part of a dock.
type DockPatch struct {
	Status     model.Status
	Assignment model.Assignment
}

// SaveDock applies an edit. A blank assignment clears the vehicle record.
func (s *Store) SaveDock(dockID string, p DockPatch) (model.Dock, error) {
	if !p.Status.Valid() {
		return model.Dock{}, fmt.Errorf("%w: %q", ErrUnknownStatus, p.Status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.dockIndex(dockID)
	if i < 0 {
		return model.Dock{}, fmt.Errorf("%w: %s", ErrUnknownDock, dockID)
	}
	d := s.docks[i]
	d.Status = p.Status
	d.Assignment = nil
	if !p.Assignment.Empty() {
		a := p.Assignment
		d.Assignment = &a
	}
	s.replaceDock(i, d)
	s.emit(Event{Kind: EventDockSaved, DockID: dockID, Dock: &d})
	return d, nil
}

// StartTimer begins timing the dock's current operation. It reports false
// and leaves the dock unchanged when the status is not startable or a timer
// is already running.
func (s *Store) StartTimer(dockID string) (model.Dock, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startLocked(dockID)
}

func (s *Store) startLocked(dockID string) (model.Dock, bool, error) {
	i := s.dockIndex(dockID)
	if i < 0 {
		return model.Dock{}, false, fmt.Errorf("%w: %s", ErrUnknownDock, dockID)
	}
	d := s.docks[i]
	if !d.CanStart() {
		return d, false, nil
	}
	started := s.now()
	d.StartedAt = &started
	d.RunningLabel = d.Status.Label()
	s.replaceDock(i, d)
	s.emit(Event{Kind: EventTimerStarted, DockID: dockID, Dock: &d})
	return d, true, nil
}

// StopTimer ends the running timer, records the operation and marks the dock
// Completed. The returned record is nil when no timer was running.
func (s *Store) StopTimer(dockID string) (model.Dock, *model.TimeRecord, error) {
	s.mu.Lock()
	d, rec, err := s.stopLocked(dockID)
	s.mu.Unlock()
	s.recordCompleted(rec)
	return d, rec, err
}

func (s *Store) recordCompleted(rec *model.TimeRecord) {
	if rec != nil && s.rec != nil {
		s.rec.RecordCompleted(*rec)
	}
}

func (s *Store) stopLocked(dockID string) (model.Dock, *model.TimeRecord, error) {
	i := s.dockIndex(dockID)
	if i < 0 {
		return model.Dock{}, nil, fmt.Errorf("%w: %s", ErrUnknownDock, dockID)
	}
	d := s.docks[i]
	if !d.Running() {
		return d, nil, nil
	}
	label := d.RunningLabel
	if label == "" {
		label = d.Status.Label()
	}
	rec := model.TimeRecord{
		ID:          uuid.NewString(),
		DockID:      d.ID,
		DockName:    d.Name,
		Start:       *d.StartedAt,
		End:         s.now(),
		Label:       label,
		Carrier:     d.Carrier(),
		Trailer:     d.Trailer(),
		Destination: d.Destination(),
	}
	s.records = append([]model.TimeRecord{rec}, s.records...)
	d.StartedAt = nil
	d.RunningLabel = ""
	d.Status = model.StatusCompleted
	s.replaceDock(i, d)
	s.emit(Event{Kind: EventTimerStopped, DockID: dockID, Dock: &d, Record: &rec})
	return d, &rec, nil
}

// ToggleTimer stops a running timer or starts one when allowed.
func (s *Store) ToggleTimer(dockID string) (model.Dock, *model.TimeRecord, error) {
	s.mu.Lock()
	i := s.dockIndex(dockID)
	if i < 0 {
		s.mu.Unlock()
		return model.Dock{}, nil, fmt.Errorf("%w: %s", ErrUnknownDock, dockID)
	}
	if s.docks[i].Running() {
		d, rec, err := s.stopLocked(dockID)
		s.mu.Unlock()
		s.recordCompleted(rec)
		return d, rec, err
	}
	d, _, err := s.startLocked(dockID)
	s.mu.Unlock()
	return d, nil, err
}

// SetQuery replaces the free-text dock search.
func (s *Store) SetQuery(q string) Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = Filter{Statuses: s.filter.Statuses, Query: q}
	s.emit(Event{Kind: EventFilterChanged})
	return s.filter
}

// ToggleFilter flips one status in the dashboard filter.
func (s *Store) ToggleFilter(status model.Status) Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = s.filter.Toggle(status)
	s.emit(Event{Kind: EventFilterChanged})
	return s.filter
}

// ToggleAllFilters selects every status, or none when all are selected.
func (s *Store) ToggleAllFilters() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = s.filter.ToggleAll()
	s.emit(Event{Kind: EventFilterChanged})
	return s.filter
}
