package model

// Status is the operational state of a dock.
type Status string

const (
	StatusAvailable      Status = "Available"
	StatusScheduled      Status = "Scheduled"
	StatusUnloading      Status = "Unloading"
	StatusLoading        Status = "Loading"
	StatusLooseUnloading Status = "LooseUnloading"
	StatusCompleted      Status = "Completed"
	StatusMaintenance    Status = "Maintenance"
	StatusDelayed        Status = "Delayed"
	StatusStarkist       Status = "Starkist"
)

// Statuses lists every status in cycle order.
var Statuses = []Status{
	StatusAvailable,
	StatusScheduled,
	StatusUnloading,
	StatusLoading,
	StatusLooseUnloading,
	StatusCompleted,
	StatusMaintenance,
	StatusDelayed,
	StatusStarkist,
}

var statusLabels = map[Status]string{
	StatusAvailable:      "빈 도크",
	StatusScheduled:      "배정됨",
	StatusUnloading:      "언로딩",
	StatusLoading:        "로딩",
	StatusLooseUnloading: "루즈카고 언로딩",
	StatusCompleted:      "완료",
	StatusMaintenance:    "보수중",
	StatusDelayed:        "지연",
	StatusStarkist:       "Starkist 전용",
}

// Palette holds the display colours of a status.
type Palette struct {
	Ring    string `json:"ring"`
	Stripe  string `json:"stripe"`
	BadgeBg string `json:"badge_bg"`
	BadgeFg string `json:"badge_fg"`
	BadgeBr string `json:"badge_br"`
}

var statusColors = map[Status]Palette{
	StatusAvailable:      {Ring: "#10b981", Stripe: "#10b981", BadgeBg: "#d1fae5", BadgeFg: "#0b0f14", BadgeBr: "#34d399"},
	StatusScheduled:      {Ring: "#f472b6", Stripe: "#f472b6", BadgeBg: "#fce7f3", BadgeFg: "#0b0f14", BadgeBr: "#f9a8d4"},
	StatusUnloading:      {Ring: "#facc15", Stripe: "#facc15", BadgeBg: "#fef9c3", BadgeFg: "#0b0f14", BadgeBr: "#fde047"},
	StatusLoading:        {Ring: "#3b82f6", Stripe: "#3b82f6", BadgeBg: "#dbeafe", BadgeFg: "#0b0f14", BadgeBr: "#93c5fd"},
	StatusLooseUnloading: {Ring: "#f59e0b", Stripe: "#f59e0b", BadgeBg: "#fef3c7", BadgeFg: "#0b0f14", BadgeBr: "#fbbf24"},
	StatusCompleted:      {Ring: "#a3a3a3", Stripe: "#a3a3a3", BadgeBg: "#e5e7eb", BadgeFg: "#0b0f14", BadgeBr: "#d4d4d8"},
	StatusMaintenance:    {Ring: "#f43f5e", Stripe: "#f43f5e", BadgeBg: "#ffe4e6", BadgeFg: "#0b0f14", BadgeBr: "#fb7185"},
	StatusDelayed:        {Ring: "#ef4444", Stripe: "#ef4444", BadgeBg: "#fee2e2", BadgeFg: "#0b0f14", BadgeBr: "#f87171"},
	StatusStarkist:       {Ring: "#a855f7", Stripe: "#a855f7", BadgeBg: "#ede9fe", BadgeFg: "#0b0f14", BadgeBr: "#c4b5fd"},
}

// Label returns the operator-facing label. Unknown statuses fall back to
// their raw value.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Colors returns the palette for s.
func (s Status) Colors() Palette {
	return statusColors[s]
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// Startable reports whether a timed operation may begin from s.
func (s Status) Startable() bool {
	switch s {
	case StatusUnloading, StatusLoading, StatusLooseUnloading:
		return true
	default:
		return false
	}
}

// Next returns the following status in cycle order, wrapping around.
// An unknown status cycles to the first one.
func (s Status) Next() Status {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return Statuses[0]
}

// ParseStatus validates a raw status key.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.Valid()
}
