package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/dockyard/core/metrics"
	"github.com/kilianp07/dockyard/core/model"
)

// PromSink records yard activity in Prometheus metrics.
type PromSink struct {
	operations  *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	transitions *prometheus.CounterVec
	docks       *prometheus.GaugeVec
	utilization prometheus.Gauge
	running     prometheus.Gauge
	crew        prometheus.Gauge
}

// NewPromSink registers yard metrics on the default Prometheus registerer.
// The Prometheus server should be started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dock_operations_completed_total",
			Help: "Completed timed dock operations",
		}, []string{"dock_id", "label"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dock_operation_duration_seconds",
			Help:    "Duration of completed dock operations",
			Buckets: []float64{60, 300, 900, 1800, 3600, 7200, 14400},
		}, []string{"label"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dock_yard_transitions_total",
			Help: "Dock and crew mutations applied to the yard",
		}, []string{"kind"}),
		docks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dock_status_docks",
			Help: "Number of docks per status",
		}, []string{"status"}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dock_yard_utilization_percent",
			Help: "Share of busy docks, rounded to a whole percent",
		}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dock_timers_running",
			Help: "Docks with a running operation timer",
		}),
		crew: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dock_yard_crew_total",
			Help: "Crew members in pools or on docks",
		}),
	}
	var err error
	if s.operations, err = register(reg, s.operations); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, s.duration); err != nil {
		return nil, err
	}
	if s.transitions, err = register(reg, s.transitions); err != nil {
		return nil, err
	}
	if s.docks, err = register(reg, s.docks); err != nil {
		return nil, err
	}
	if s.utilization, err = register(reg, s.utilization); err != nil {
		return nil, err
	}
	if s.running, err = register(reg, s.running); err != nil {
		return nil, err
	}
	if s.crew, err = register(reg, s.crew); err != nil {
		return nil, err
	}
	return s, nil
}

// register returns the already registered collector when c was registered before.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordOperation counts the operation and observes its duration.
func (s *PromSink) RecordOperation(rec model.TimeRecord) error {
	s.operations.WithLabelValues(rec.DockID, rec.Label).Inc()
	s.duration.WithLabelValues(rec.Label).Observe(float64(rec.DurationSeconds()))
	return nil
}

// RecordTransition counts one mutation by kind.
func (s *PromSink) RecordTransition(ev coremetrics.TransitionEvent) error {
	s.transitions.WithLabelValues(string(ev.Kind)).Inc()
	return nil
}

// RecordYardState sets the dock and crew gauges from a KPI snapshot.
func (s *PromSink) RecordYardState(ev coremetrics.YardStateEvent) error {
	for status, n := range ev.KPIs.StatusCounts {
		s.docks.WithLabelValues(string(status)).Set(float64(n))
	}
	s.utilization.Set(float64(ev.KPIs.Utilization))
	s.running.Set(float64(ev.KPIs.Running))
	s.crew.Set(float64(ev.KPIs.CrewTotal))
	return nil
}
