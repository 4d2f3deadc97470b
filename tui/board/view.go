package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/core/yard"
)

// View renders the current screen.
func (m *Model) View() string {
	snap := m.store.Snapshot()
	var b strings.Builder
	b.WriteString(titleStyle.Render("Dock Yard · " + m.view.String()))
	b.WriteString("  ")
	b.WriteString(mutedStyle.Render(model.FormatLocal(m.store.Now(), m.loc)))
	b.WriteString("\n")
	b.WriteString(m.renderKPIs(yard.ComputeKPIs(snap)))
	b.WriteString("\n")
	switch m.view {
	case ViewDocks:
		b.WriteString(m.renderFilters(snap))
		b.WriteString("\n")
		b.WriteString(m.renderDocks(snap))
	case ViewRoster:
		b.WriteString(m.renderRoster(snap))
	case ViewSchedule:
		b.WriteString(m.renderSchedule(snap))
	case ViewRecords:
		b.WriteString(m.renderRecords(snap))
	}
	b.WriteString("\n")
	if m.statusMsg != "" {
		b.WriteString(statusLineStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderKPIs(k yard.KPIs) string {
	cells := []string{
		fmt.Sprintf("가동률 %d%%", k.Utilization),
		fmt.Sprintf("작업 %d/%d", k.Busy, k.TotalDocks),
		fmt.Sprintf("타이머 %d", k.Running),
		fmt.Sprintf("인원 %d", k.CrewTotal),
		fmt.Sprintf("완료 %d", k.Completed),
		"평균 " + model.FormatDuration(int64(k.AvgTurnSeconds+0.5)),
	}
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = kpiStyle.Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (m *Model) renderFilters(s yard.Snapshot) string {
	parts := make([]string, 0, len(model.Statuses))
	for i, st := range model.Statuses {
		label := fmt.Sprintf("%d %s", i+1, st.Label())
		if s.Filter.Has(st) {
			parts = append(parts, badge(st))
		} else {
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	line := strings.Join(parts, " ")
	if s.Filter.Query != "" {
		line += mutedStyle.Render("  q=" + s.Filter.Query)
	}
	return line
}

func (m *Model) renderDocks(s yard.Snapshot) string {
	docks := s.Visible()
	if len(docks) == 0 {
		return mutedStyle.Render("no docks match the filter")
	}
	now := m.store.Now()
	cols := m.columns()
	var rows []string
	var row []string
	for i, d := range docks {
		row = append(row, card(d.Status, i == m.dockSel).Render(dockBody(s, d, now)))
		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func dockBody(s yard.Snapshot, d model.Dock, now time.Time) string {
	lines := []string{d.Name + " " + badge(d.Status)}
	if a := d.Assignment; a != nil {
		lines = append(lines, strings.TrimSpace(a.Carrier+" "+a.Trailer))
		if a.Destination != "" {
			lines = append(lines, "→ "+a.Destination)
		}
	}
	if d.Running() {
		lines = append(lines, timerStyle.Render(d.RunningLabel+" "+model.FormatDuration(d.Elapsed(now))))
	}
	if len(d.CrewIDs) > 0 {
		names := make([]string, len(d.CrewIDs))
		for i, id := range d.CrewIDs {
			names[i] = s.Name(id)
		}
		lines = append(lines, mutedStyle.Render(strings.Join(names, ", ")))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRoster(s yard.Snapshot) string {
	var b strings.Builder
	for _, p := range model.Pools {
		names := []string{}
		for _, c := range s.PoolMembers(p) {
			names = append(names, s.Name(c.ID))
		}
		fmt.Fprintf(&b, "%s: %s\n", p.Label(), strings.Join(names, ", "))
	}
	b.WriteString("\n")
	for i, r := range yard.Roster(s) {
		line := fmt.Sprintf("%-5s %-12s %s", r.ID, r.Name, r.Location)
		if i == m.crewSel {
			line = selectedRowStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m *Model) renderSchedule(s yard.Snapshot) string {
	sc := yard.BuildSchedule(s, m.window, m.store.Now().In(m.loc))
	span := sc.End.Sub(sc.Start).Minutes()
	width := 60
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %02d:00%s%02d:00\n", "", m.window.StartHour, strings.Repeat(" ", width-10), m.window.EndHour)
	for _, col := range sc.Columns {
		lane := []rune(strings.Repeat("·", width))
		for _, blk := range col.Blocks {
			from := int(blk.OffsetMinutes / span * float64(width))
			to := int((blk.OffsetMinutes + blk.LengthMinutes) / span * float64(width))
			mark := blockRune(blk)
			for x := from; x <= to && x < width; x++ {
				if x >= 0 {
					lane[x] = mark
				}
			}
		}
		if sc.NowVisible {
			if x := int(sc.NowOffset / span * float64(width)); x >= 0 && x < width {
				lane[x] = '|'
			}
		}
		fmt.Fprintf(&b, "%-8s %s\n", col.DockName, string(lane))
	}
	return b.String()
}

func blockRune(b yard.Block) rune {
	if b.Live {
		return '▓'
	}
	switch b.Class {
	case "loose":
		return '▒'
	case "unloading":
		return '█'
	case "loading":
		return '▇'
	default:
		return '░'
	}
}

func (m *Model) renderRecords(s yard.Snapshot) string {
	if len(s.Records) == 0 {
		return mutedStyle.Render("no completed operations yet")
	}
	var b strings.Builder
	for _, r := range s.Records {
		fmt.Fprintf(&b, "%-8s %-14s %s  %s  %s\n",
			r.DockName, r.Label, model.FormatLocal(r.Start, m.loc),
			model.FormatDuration(r.DurationSeconds()), strings.TrimSpace(r.Carrier+" "+r.Trailer))
	}
	return b.String()
}
