package web

import (
	"fmt"
	"time"

	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/core/yard"
)

// CrewChip is a draggable crew member.
type CrewChip struct {
	ID       string
	Name     string
	FromDock string
	FromPool model.Pool
}

// DockCard is one dock tile on the dashboard.
type DockCard struct {
	ID          string
	Name        string
	Status      model.Status
	StatusLabel string
	Colors      model.Palette
	Carrier     string
	Trailer     string
	Destination string
	Crew        []CrewChip
	Running     bool
	CanStart    bool
	Elapsed     string
	RunLabel    string
}

// FilterChip is one status toggle in the filter bar.
type FilterChip struct {
	Status   model.Status
	Label    string
	Colors   model.Palette
	Selected bool
	Count    int
}

// PoolPanel is a crew pool drop zone.
type PoolPanel struct {
	Pool  model.Pool
	Label string
	Crew  []CrewChip
}

// DashboardData feeds dashboard.html.
type DashboardData struct {
	Now         time.Time
	Loc         *time.Location
	KPIs        yard.KPIs
	Filters     []FilterChip
	AllSelected bool
	Query       string
	Docks       []DockCard
	Pools       []PoolPanel
	Records     []model.TimeRecord
}

// RosterData feeds crew.html.
type RosterData struct {
	Rows  []model.RosterRow
	Pools []model.Pool
}

// EditData feeds dock_edit.html.
type EditData struct {
	Dock     model.Dock
	Statuses []model.Status
}

// HourMark is one label on the schedule's time axis.
type HourMark struct {
	Label         string
	OffsetMinutes float64
}

// ScheduleData feeds schedule.html.
type ScheduleData struct {
	Loc           *time.Location
	Schedule      yard.Schedule
	HourMarks     []HourMark
	HeightMinutes float64
	// PxPerMinute scales minute offsets into pixels.
	PxPerMinute float64
}

func buildSchedule(sc yard.Schedule, loc *time.Location, scale float64) ScheduleData {
	data := ScheduleData{
		Loc:           loc,
		Schedule:      sc,
		HeightMinutes: sc.End.Sub(sc.Start).Minutes(),
		PxPerMinute:   scale,
	}
	for i, h := range sc.Hours {
		data.HourMarks = append(data.HourMarks, HourMark{
			Label:         fmt.Sprintf("%02d:00", h),
			OffsetMinutes: float64(i * 60),
		})
	}
	return data
}

func buildDashboard(s yard.Snapshot, now time.Time, loc *time.Location) DashboardData {
	k := yard.ComputeKPIs(s)
	data := DashboardData{
		Now:         now,
		Loc:         loc,
		KPIs:        k,
		AllSelected: s.Filter.AllSelected(),
		Query:       s.Filter.Query,
		Records:     s.Records,
	}
	for _, st := range model.Statuses {
		data.Filters = append(data.Filters, FilterChip{
			Status:   st,
			Label:    st.Label(),
			Colors:   st.Colors(),
			Selected: s.Filter.Has(st),
			Count:    k.StatusCounts[st],
		})
	}
	for _, d := range s.Visible() {
		card := DockCard{
			ID:          d.ID,
			Name:        d.Name,
			Status:      d.Status,
			StatusLabel: d.Status.Label(),
			Colors:      d.Status.Colors(),
			Carrier:     d.Carrier(),
			Trailer:     d.Trailer(),
			Destination: d.Destination(),
			Running:     d.Running(),
			CanStart:    d.CanStart(),
			RunLabel:    d.RunningLabel,
		}
		if card.Running {
			card.Elapsed = model.FormatDuration(d.Elapsed(now))
		}
		for _, id := range d.CrewIDs {
			card.Crew = append(card.Crew, CrewChip{ID: id, Name: s.Name(id), FromDock: d.ID})
		}
		data.Docks = append(data.Docks, card)
	}
	for _, p := range model.Pools {
		panel := PoolPanel{Pool: p, Label: p.Label()}
		for _, c := range s.PoolMembers(p) {
			panel.Crew = append(panel.Crew, CrewChip{ID: c.ID, Name: s.Name(c.ID), FromPool: p})
		}
		data.Pools = append(data.Pools, panel)
	}
	return data
}
