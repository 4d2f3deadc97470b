package model

import "time"

// TimeRecord is a completed timed operation. Records are never edited.
type TimeRecord struct {
	ID          string    `json:"id"`
	DockID      string    `json:"dock_id"`
	DockName    string    `json:"dock_name"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Label       string    `json:"label"`
	Carrier     string    `json:"carrier"`
	Trailer     string    `json:"trailer"`
	Destination string    `json:"destination"`
}

// DurationSeconds returns floor((End-Start)/1s), never negative.
func (r TimeRecord) DurationSeconds() int64 {
	d := r.End.Sub(r.Start)
	if d <= 0 {
		return 0
	}
	return int64(d / time.Second)
}
