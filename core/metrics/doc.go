// Package metrics defines the sinks that observe yard activity. Sinks such
// as the Prometheus and InfluxDB implementations in infra/metrics record
// completed operations, status transitions and KPI snapshots. Several sinks
// can be combined with NewMultiSink; NewSink builds one from configuration
// using the registered factories.
package metrics
