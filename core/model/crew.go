package model

// PoolEntry places a crew member in a holding pool.
type PoolEntry struct {
	ID   string `json:"id"`
	Pool Pool   `json:"pool"`
}

// RosterRow is one line of the crew manager.
type RosterRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}
