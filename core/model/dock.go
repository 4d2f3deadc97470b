package model

import (
	"slices"
	"time"
)

// Assignment is the vehicle currently attached to a dock.
type Assignment struct {
	Carrier     string `json:"carrier"`
	Trailer     string `json:"trailer"`
	Destination string `json:"destination"`
}

// Empty reports whether every field is blank.
func (a Assignment) Empty() bool {
	return a.Carrier == "" && a.Trailer == "" && a.Destination == ""
}

// Dock is one fixed loading bay.
type Dock struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Status     Status      `json:"status"`
	Assignment *Assignment `json:"assignment"`
	CrewIDs    []string    `json:"crew_ids"`
	// StartedAt is set while a timer is running.
	StartedAt *time.Time `json:"started_at,omitempty"`
	// RunningLabel is the status label captured when the timer started.
	RunningLabel string `json:"running_label,omitempty"`
}

// Running reports whether a timer is active on the dock.
func (d Dock) Running() bool { return d.StartedAt != nil }

// CanStart reports whether a timer may be started now.
func (d Dock) CanStart() bool { return !d.Running() && d.Status.Startable() }

// Busy reports whether the dock counts towards utilization.
func (d Dock) Busy() bool { return d.Running() || d.Status.Startable() }

// HasCrew reports whether id is placed on the dock.
func (d Dock) HasCrew(id string) bool { return slices.Contains(d.CrewIDs, id) }

// Elapsed returns the whole seconds since the timer started, or zero.
func (d Dock) Elapsed(now time.Time) int64 {
	if d.StartedAt == nil {
		return 0
	}
	return max(0, int64(now.Sub(*d.StartedAt)/time.Second))
}

// Carrier returns the assigned carrier or "".
func (d Dock) Carrier() string {
	if d.Assignment == nil {
		return ""
	}
	return d.Assignment.Carrier
}

// Trailer returns the assigned trailer or "".
func (d Dock) Trailer() string {
	if d.Assignment == nil {
		return ""
	}
	return d.Assignment.Trailer
}

// Destination returns the assigned destination or "".
func (d Dock) Destination() string {
	if d.Assignment == nil {
		return ""
	}
	return d.Assignment.Destination
}
