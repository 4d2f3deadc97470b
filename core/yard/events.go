package yard

import (
	"time"

	"github.com/kilianp07/dockyard/core/model"
)

// EventKind identifies the mutation that produced an Event.
type EventKind string

const (
	EventStatusChanged EventKind = "status_changed"
	EventDockSaved     EventKind = "dock_saved"
	EventTimerStarted  EventKind = "timer_started"
	EventTimerStopped  EventKind = "timer_stopped"
	EventCrewMoved     EventKind = "crew_moved"
	EventCrewAdded     EventKind = "crew_added"
	EventCrewRenamed   EventKind = "crew_renamed"
	EventCrewDeleted   EventKind = "crew_deleted"
	EventFilterChanged EventKind = "filter_changed"
)

// Event describes one applied mutation.
type Event struct {
	Kind   EventKind
	Time   time.Time
	DockID string
	CrewID string
	// Dock is the dock after the mutation, when one was touched.
	Dock *model.Dock
	// Record is set for EventTimerStopped.
	Record *model.TimeRecord
	// Snapshot is the store state right after the mutation.
	Snapshot Snapshot
}

// Publisher receives store events. *eventbus.Bus[Event] satisfies it.
type Publisher interface {
	Publish(Event)
}

// Recorder receives every completed time record. Unlike a Publisher it must
// not drop records; the store calls it after releasing its lock.
type Recorder interface {
	RecordCompleted(model.TimeRecord)
}
