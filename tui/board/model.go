// Package board is a terminal live board over the dock yard store.
package board

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/core/yard"
)

// View selects which screen the board shows.
type View int

const (
	ViewDocks View = iota
	ViewRoster
	ViewSchedule
	ViewRecords
)

var viewNames = []string{"Docks", "Crew", "Schedule", "Records"}

func (v View) String() string { return viewNames[v] }

const cardOuterWidth = 28

// Model is the bubbletea model for the board.
type Model struct {
	store  *yard.Store
	window yard.Window
	loc    *time.Location

	width  int
	height int

	view      View
	dockSel   int
	crewSel   int
	statusMsg string

	keys     KeyMap
	help     help.Model
	showHelp bool
}

// New creates a board over st. A zero window uses the default schedule
// hours and a nil loc means time.Local.
func New(st *yard.Store, win yard.Window, loc *time.Location) *Model {
	if win == (yard.Window{}) {
		win = yard.DefaultWindow()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Model{
		store:  st,
		window: win,
		loc:    loc,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

// tickMsg is sent every second to refresh elapsed times.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the refresh tick.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), tea.SetWindowTitle("Dock Yard"))
}

// Update handles key presses, resizes and ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		return m, tick()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) columns() int {
	if m.width < cardOuterWidth {
		return 1
	}
	return m.width / cardOuterWidth
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Tab):
		m.view = (m.view + 1) % View(len(viewNames))
	case key.Matches(msg, m.keys.FilterAll):
		m.store.ToggleAllFilters()
		m.clampDock()
	case key.Matches(msg, m.keys.Filter):
		i := int(msg.Runes[0] - '1')
		if i >= 0 && i < len(model.Statuses) {
			m.store.ToggleFilter(model.Statuses[i])
			m.clampDock()
		}
	case key.Matches(msg, m.keys.AddCrew):
		id, err := m.store.AddCrew("", model.PoolUnassigned)
		m.report(err, "added "+id)
	}
	switch m.view {
	case ViewDocks:
		m.handleDockKey(msg)
	case ViewRoster:
		m.handleRosterKey(msg)
	}
	return m, nil
}

func (m *Model) handleDockKey(msg tea.KeyMsg) {
	docks := m.store.Snapshot().Visible()
	switch {
	case key.Matches(msg, m.keys.Left):
		m.dockSel--
	case key.Matches(msg, m.keys.Right):
		m.dockSel++
	case key.Matches(msg, m.keys.Up):
		m.dockSel -= m.columns()
	case key.Matches(msg, m.keys.Down):
		m.dockSel += m.columns()
	}
	m.dockSel = clamp(m.dockSel, len(docks))
	if len(docks) == 0 {
		return
	}
	d := docks[m.dockSel]
	switch {
	case key.Matches(msg, m.keys.Cycle):
		nd, err := m.store.CycleStatus(d.ID)
		m.report(err, fmt.Sprintf("%s → %s", nd.Name, nd.Status.Label()))
		m.clampDock()
	case key.Matches(msg, m.keys.Timer):
		nd, rec, err := m.store.ToggleTimer(d.ID)
		switch {
		case err != nil:
			m.report(err, "")
		case rec != nil:
			m.statusMsg = fmt.Sprintf("%s %s %s", nd.Name, rec.Label, model.FormatDuration(rec.DurationSeconds()))
		case nd.Running():
			m.statusMsg = fmt.Sprintf("%s %s started", nd.Name, nd.RunningLabel)
		default:
			m.statusMsg = fmt.Sprintf("%s: %s cannot be timed", nd.Name, nd.Status.Label())
		}
		m.clampDock()
	}
}

func (m *Model) handleRosterKey(msg tea.KeyMsg) {
	rows := yard.Roster(m.store.Snapshot())
	switch {
	case key.Matches(msg, m.keys.Up):
		m.crewSel--
	case key.Matches(msg, m.keys.Down):
		m.crewSel++
	}
	m.crewSel = clamp(m.crewSel, len(rows))
	if len(rows) == 0 || !key.Matches(msg, m.keys.NextPool) {
		return
	}
	id := rows[m.crewSel].ID
	next := nextPool(m.store.Snapshot(), id)
	m.report(m.store.MoveCrew(id, next), fmt.Sprintf("%s → %s", id, next.Label()))
}

// nextPool returns the pool after the one id is in; crew on a dock go to
// the first pool.
func nextPool(s yard.Snapshot, id string) model.Pool {
	i := slices.IndexFunc(s.Pool, func(c model.PoolEntry) bool { return c.ID == id })
	if i < 0 {
		return model.Pools[0]
	}
	j := slices.Index(model.Pools, s.Pool[i].Pool)
	return model.Pools[(j+1)%len(model.Pools)]
}

func (m *Model) clampDock() {
	m.dockSel = clamp(m.dockSel, len(m.store.Snapshot().Visible()))
}

func (m *Model) report(err error, ok string) {
	if err != nil {
		m.statusMsg = err.Error()
		return
	}
	m.statusMsg = ok
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
