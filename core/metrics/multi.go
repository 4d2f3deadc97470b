package metrics

import (
	"errors"

	"github.com/kilianp07/dockyard/core/model"
)

// MultiSink fans events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordOperation forwards the record to every sink. A failing sink does not
// stop the others; their errors are joined.
func (m *MultiSink) RecordOperation(rec model.TimeRecord) error {
	var errs []error
	for _, s := range m.Sinks {
		errs = append(errs, s.RecordOperation(rec))
	}
	return errors.Join(errs...)
}

// RecordYardState forwards KPI snapshots to sinks that accept them.
func (m *MultiSink) RecordYardState(ev YardStateEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(YardStateRecorder); ok {
			errs = append(errs, rec.RecordYardState(ev))
		}
	}
	return errors.Join(errs...)
}

// RecordTransition forwards transitions to sinks that accept them.
func (m *MultiSink) RecordTransition(ev TransitionEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(TransitionRecorder); ok {
			errs = append(errs, rec.RecordTransition(ev))
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that holds resources.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
