// Package journal keeps an append-only copy of completed time records.
//
// The journal is an audit trail and an export source for the CLI; it is
// never read back into the live yard state.
package journal

import (
	"context"
	"slices"
	"time"

	"github.com/kilianp07/dockyard/core/model"
)

// Query filters journal entries. Zero values match everything.
type Query struct {
	Start  time.Time
	End    time.Time
	DockID string
}

// Match reports whether rec passes the filter. Start and End bound the
// record's end time, inclusively.
func (q Query) Match(rec model.TimeRecord) bool {
	if !q.Start.IsZero() && rec.End.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && rec.End.After(q.End) {
		return false
	}
	return q.DockID == "" || rec.DockID == q.DockID
}

// Store persists completed time records and supports querying.
type Store interface {
	Append(ctx context.Context, rec model.TimeRecord) error
	// Query returns matching records, newest first.
	Query(ctx context.Context, q Query) ([]model.TimeRecord, error)
	Close() error
}

// newestFirst orders records by end time descending.
func newestFirst(recs []model.TimeRecord) {
	slices.SortStableFunc(recs, func(a, b model.TimeRecord) int {
		return b.End.Compare(a.End)
	})
}
