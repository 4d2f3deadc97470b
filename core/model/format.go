package model

import (
	"fmt"
	"strings"
	"time"
)

// LocalTimeLayout is the timestamp layout used on screen and in exports.
const LocalTimeLayout = "2006-01-02 15:04:05"

// FormatDuration renders seconds as HH:MM:SS.
func FormatDuration(sec int64) string {
	if sec < 0 {
		sec = 0
	}
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatLocal renders t in loc using LocalTimeLayout. A nil loc means time.Local.
func FormatLocal(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(LocalTimeLayout)
}

// ExportFilename returns the CSV download name for an export made at now.
func ExportFilename(now time.Time, loc *time.Location) string {
	ts := strings.NewReplacer(":", "-", " ", "-").Replace(FormatLocal(now, loc))
	return "dock_records_" + ts + ".csv"
}
