package yard

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/kilianp07/dockyard/core/model"
)

// Default schedule window, in local hours.
const (
	DefaultScheduleStartHour = 8
	DefaultScheduleEndHour   = 17
)

// LiveLabel is shown for running blocks without a captured label.
const LiveLabel = "작업중"

// Window is the daily schedule range [StartHour, EndHour).
type Window struct {
	StartHour int
	EndHour   int
}

// DefaultWindow returns the 08:00-17:00 window.
func DefaultWindow() Window {
	return Window{StartHour: DefaultScheduleStartHour, EndHour: DefaultScheduleEndHour}
}

// Bounds returns the window on the local day of now.
func (w Window) Bounds(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	loc := now.Location()
	return time.Date(y, m, d, w.StartHour, 0, 0, 0, loc), time.Date(y, m, d, w.EndHour, 0, 0, 0, loc)
}

// Block is one bar on the schedule.
type Block struct {
	DockID   string    `json:"dock_id"`
	DockName string    `json:"dock_name"`
	Label    string    `json:"label"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Live     bool      `json:"live"`
	Class    string    `json:"class"`
	// OffsetMinutes and LengthMinutes position the block from the window start.
	OffsetMinutes float64 `json:"offset_minutes"`
	LengthMinutes float64 `json:"length_minutes"`
}

// Column is one dock's lane.
type Column struct {
	DockID   string  `json:"dock_id"`
	DockName string  `json:"dock_name"`
	Blocks   []Block `json:"blocks"`
}

// Schedule is the timeline view for one day.
type Schedule struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Hours      []int     `json:"hours"`
	Now        time.Time `json:"now"`
	NowVisible bool      `json:"now_visible"`
	NowOffset  float64   `json:"now_offset_minutes"`
	Columns    []Column  `json:"columns"`
}

var (
	looseRe     = regexp.MustCompile(`(?i)루즈|loose`)
	unloadingRe = regexp.MustCompile(`(?i)언로딩|unloading`)
	loadingRe   = regexp.MustCompile(`(?i)로딩|loading`)
)

// BlockClass groups a label into loose, unloading, loading or other.
func BlockClass(label string) string {
	switch {
	case looseRe.MatchString(label):
		return "loose"
	case unloadingRe.MatchString(label):
		return "unloading"
	case loadingRe.MatchString(label):
		return "loading"
	default:
		return "other"
	}
}

// BuildSchedule merges completed records and running timers that intersect
// the window of now's day. Completed blocks are clipped to the window;
// running blocks span from their start (clipped) to now.
func BuildSchedule(s Snapshot, w Window, now time.Time) Schedule {
	start, end := w.Bounds(now)
	sc := Schedule{Start: start, End: end, Now: now}
	for h := w.StartHour; h <= w.EndHour; h++ {
		sc.Hours = append(sc.Hours, h)
	}
	sc.NowVisible = !now.Before(start) && !now.After(end)
	if sc.NowVisible {
		sc.NowOffset = now.Sub(start).Minutes()
	}

	var blocks []Block
	for _, r := range s.Records {
		if !r.End.After(start) || !r.Start.Before(end) {
			continue
		}
		blocks = append(blocks, newBlock(r.DockID, r.DockName, r.Label, maxTime(r.Start, start), minTime(r.End, end), false, start))
	}
	for _, d := range s.Docks {
		if d.StartedAt == nil || !d.StartedAt.Before(end) {
			continue
		}
		label := d.RunningLabel
		if label == "" {
			label = LiveLabel
		}
		blocks = append(blocks, newBlock(d.ID, d.Name, label, maxTime(*d.StartedAt, start), minTime(now, end), true, start))
	}

	for _, d := range orderDocks(s.Docks) {
		col := Column{DockID: d.ID, DockName: d.Name, Blocks: []Block{}}
		for _, b := range blocks {
			if b.DockID == d.ID {
				col.Blocks = append(col.Blocks, b)
			}
		}
		sc.Columns = append(sc.Columns, col)
	}
	return sc
}

func newBlock(dockID, dockName, label string, from, to time.Time, live bool, origin time.Time) Block {
	length := to.Sub(from).Minutes()
	if length < 0 {
		length = 0
	}
	return Block{
		DockID:        dockID,
		DockName:      dockName,
		Label:         label,
		Start:         from,
		End:           to,
		Live:          live,
		Class:         BlockClass(label),
		OffsetMinutes: from.Sub(origin).Minutes(),
		LengthMinutes: length,
	}
}

// orderDocks sorts by the numeric suffix of the dock id.
func orderDocks(docks []model.Dock) []model.Dock {
	out := slices.Clone(docks)
	slices.SortStableFunc(out, func(a, b model.Dock) int {
		return dockNumber(a.ID) - dockNumber(b.ID)
	})
	return out
}

func dockNumber(id string) int {
	_, suffix, ok := strings.Cut(id, "_")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0
	}
	return n
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
