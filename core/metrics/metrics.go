package metrics

import (
	"time"

	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/core/yard"
)

// Sink records completed dock operations.
type Sink interface {
	RecordOperation(rec model.TimeRecord) error
}

// YardStateEvent is a KPI snapshot taken after a mutation.
type YardStateEvent struct {
	KPIs yard.KPIs
	Time time.Time
}

// YardStateRecorder records KPI snapshots.
type YardStateRecorder interface {
	RecordYardState(ev YardStateEvent) error
}

// TransitionEvent is a dock or crew change.
type TransitionEvent struct {
	Kind   yard.EventKind
	DockID string
	Status model.Status
	Time   time.Time
}

// TransitionRecorder records dock and crew transitions.
type TransitionRecorder interface {
	RecordTransition(ev TransitionEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordOperation(model.TimeRecord) error { return nil }
func (NopSink) RecordYardState(YardStateEvent) error   { return nil }
func (NopSink) RecordTransition(TransitionEvent) error { return nil }
