package metrics

import (
	"context"
	"math"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/dockyard/core/metrics"
	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/infra/logger"
)

// InfluxSink writes completed operations and KPI snapshots to InfluxDB using
// the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordOperation writes one dock_operation point stamped at the operation end.
func (s *InfluxSink) RecordOperation(rec model.TimeRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("dock_operation").
		AddTag("dock_id", rec.DockID).
		AddTag("label", rec.Label).
		AddTag("carrier", rec.Carrier).
		AddField("record_id", rec.ID).
		AddField("trailer", rec.Trailer).
		AddField("destination", rec.Destination).
		AddField("duration_s", rec.DurationSeconds()).
		SetTime(rec.End)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordYardState writes the KPI snapshot as a yard_state point.
func (s *InfluxSink) RecordYardState(ev coremetrics.YardStateEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("yard_state").
		AddTag("component", "yard").
		AddField("utilization", ev.KPIs.Utilization).
		AddField("busy", ev.KPIs.Busy).
		AddField("running", ev.KPIs.Running).
		AddField("crew_total", ev.KPIs.CrewTotal).
		AddField("avg_turn_s", round3(ev.KPIs.AvgTurnSeconds)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the client.
func (s *InfluxSink) Close() { s.client.Close() }

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
