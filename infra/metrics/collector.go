package metrics

import (
	"context"

	coremetrics "github.com/kilianp07/dockyard/core/metrics"
	"github.com/kilianp07/dockyard/core/yard"
	"github.com/kilianp07/dockyard/infra/logger"
)

// EventSource is the subscription side of the yard event bus.
type EventSource interface {
	Subscribe() <-chan yard.Event
	Unsubscribe(<-chan yard.Event)
}

// StartEventCollector subscribes to yard events and forwards them to sink.
// It stops when the bus is closed, or when the context is canceled after
// forwarding the events already buffered. The returned channel is closed once
// the collector has stopped.
func StartEventCollector(ctx context.Context, bus EventSource, sink coremetrics.Sink, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				drain(sub, sink, log)
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				collect(ev, sink, log)
			}
		}
	}()
	return done
}

func drain(sub <-chan yard.Event, sink coremetrics.Sink, log logger.Logger) {
	for {
		select {
		case ev, ok := <-sub:
			if !ok {
				return
			}
			collect(ev, sink, log)
		default:
			return
		}
	}
}

func collect(ev yard.Event, sink coremetrics.Sink, log logger.Logger) {
	if ev.Kind == yard.EventFilterChanged {
		return
	}
	if ev.Kind == yard.EventTimerStopped && ev.Record != nil {
		if err := sink.RecordOperation(*ev.Record); err != nil {
			log.Warnf("record operation %s: %v", ev.Record.ID, err)
		}
	}
	if r, ok := sink.(coremetrics.TransitionRecorder); ok {
		tr := coremetrics.TransitionEvent{Kind: ev.Kind, DockID: ev.DockID, Time: ev.Time}
		if ev.Dock != nil {
			tr.Status = ev.Dock.Status
		}
		if err := r.RecordTransition(tr); err != nil {
			log.Warnf("record transition: %v", err)
		}
	}
	if r, ok := sink.(coremetrics.YardStateRecorder); ok {
		if err := r.RecordYardState(coremetrics.YardStateEvent{KPIs: yard.ComputeKPIs(ev.Snapshot), Time: ev.Time}); err != nil {
			log.Warnf("record yard state: %v", err)
		}
	}
}
