package yard

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/dockyard/core/model"
)

// UnknownLocation labels a crew member referenced but found nowhere.
const UnknownLocation = "unknown"

// VisibleDocks returns the docks whose status is selected and whose name,
// trailer or carrier contains the query, case-insensitively. Order is kept.
func VisibleDocks(docks []model.Dock, f Filter) []model.Dock {
	q := strings.ToLower(f.Query)
	out := []model.Dock{}
	for _, d := range docks {
		if !f.Has(d.Status) {
			continue
		}
		if q != "" {
			hay := strings.ToLower(strings.Join([]string{d.Name, d.Trailer(), d.Carrier()}, " "))
			if !strings.Contains(hay, q) {
				continue
			}
		}
		out = append(out, d)
	}
	return out
}

// Visible applies the snapshot's own filter.
func (s Snapshot) Visible() []model.Dock { return VisibleDocks(s.Docks, s.Filter) }

// Roster lists every crew member in the pool or on a dock with its name and
// location. Pool members come first, then dock crew in dock order.
func Roster(s Snapshot) []model.RosterRow {
	seen := map[string]bool{}
	var ids []string
	for _, c := range s.Pool {
		if !seen[c.ID] {
			seen[c.ID] = true
			ids = append(ids, c.ID)
		}
	}
	for _, d := range s.Docks {
		for _, id := range d.CrewIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	rows := make([]model.RosterRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, model.RosterRow{ID: id, Name: s.Name(id), Location: locate(s, id)})
	}
	return rows
}

func locate(s Snapshot, id string) string {
	for _, c := range s.Pool {
		if c.ID == id {
			return c.Pool.Label()
		}
	}
	for _, d := range s.Docks {
		if d.HasCrew(id) {
			return d.Name
		}
	}
	return UnknownLocation
}

// KPIs are summary metrics over the current yard state.
type KPIs struct {
	// Utilization is the rounded percentage of busy docks.
	Utilization int `json:"utilization"`
	Busy        int `json:"busy"`
	Running     int `json:"running"`
	TotalDocks  int `json:"total_docks"`
	CrewTotal   int `json:"crew_total"`
	Completed   int `json:"completed"`
	// AvgTurnSeconds is the mean duration of completed operations.
	AvgTurnSeconds float64              `json:"avg_turn_seconds"`
	StatusCounts   map[model.Status]int `json:"status_counts"`
}

// ComputeKPIs derives the dashboard metrics from a snapshot.
func ComputeKPIs(s Snapshot) KPIs {
	k := KPIs{
		TotalDocks:   len(s.Docks),
		CrewTotal:    len(s.Pool),
		Completed:    len(s.Records),
		StatusCounts: make(map[model.Status]int, len(model.Statuses)),
	}
	for _, st := range model.Statuses {
		k.StatusCounts[st] = 0
	}
	for _, d := range s.Docks {
		k.StatusCounts[d.Status]++
		k.CrewTotal += len(d.CrewIDs)
		if d.Running() {
			k.Running++
		}
		if d.Busy() {
			k.Busy++
		}
	}
	if k.TotalDocks > 0 {
		k.Utilization = int(math.Round(float64(k.Busy) / float64(k.TotalDocks) * 100))
	}
	if len(s.Records) > 0 {
		durations := make([]float64, len(s.Records))
		for i, r := range s.Records {
			durations[i] = float64(r.DurationSeconds())
		}
		k.AvgTurnSeconds = stat.Mean(durations, nil)
	}
	return k
}
