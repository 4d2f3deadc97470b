package yard

import (
	"slices"

	"github.com/kilianp07/dockyard/core/model"
)

// Filter is the dashboard query state. It only affects VisibleDocks.
type Filter struct {
	Statuses []model.Status `json:"statuses"`
	Query    string         `json:"query"`
}

// NewFilter returns a filter with every status selected and no query.
func NewFilter() Filter {
	return Filter{Statuses: slices.Clone(model.Statuses)}
}

// Has reports whether s is selected.
func (f Filter) Has(s model.Status) bool { return slices.Contains(f.Statuses, s) }

// AllSelected reports whether every status is selected.
func (f Filter) AllSelected() bool {
	for _, s := range model.Statuses {
		if !f.Has(s) {
			return false
		}
	}
	return true
}

// Toggle returns a copy of f with s flipped. Order follows the status table.
func (f Filter) Toggle(s model.Status) Filter {
	on := !f.Has(s)
	out := Filter{Query: f.Query, Statuses: make([]model.Status, 0, len(model.Statuses))}
	for _, st := range model.Statuses {
		if st == s {
			if on {
				out.Statuses = append(out.Statuses, st)
			}
			continue
		}
		if f.Has(st) {
			out.Statuses = append(out.Statuses, st)
		}
	}
	return out
}

// ToggleAll clears the selection when everything is selected and selects
// everything otherwise.
func (f Filter) ToggleAll() Filter {
	if f.AllSelected() {
		return Filter{Query: f.Query, Statuses: []model.Status{}}
	}
	return Filter{Query: f.Query, Statuses: slices.Clone(model.Statuses)}
}
