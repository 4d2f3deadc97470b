// Package records serves completed time records as JSON or a CSV download.
package records

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kilianp07/dockyard/api"
	"github.com/kilianp07/dockyard/core/journal"
	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/core/yard"
	"github.com/kilianp07/dockyard/pkg/export"
)

// query reads start, end (RFC3339) and dock_id.
func query(r *http.Request) (journal.Query, error) {
	v := r.URL.Query()
	q := journal.Query{DockID: v.Get("dock_id")}
	var err error
	if q.Start, err = parseTime("start", v.Get("start")); err != nil {
		return q, err
	}
	if q.End, err = parseTime("end", v.Get("end")); err != nil {
		return q, err
	}
	return q, nil
}

func parseTime(name, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", name, err)
	}
	return t, nil
}

func filter(recs []model.TimeRecord, q journal.Query) []model.TimeRecord {
	out := []model.TimeRecord{}
	for _, r := range recs {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// NewHandler serves GET /api/records, newest first.
func NewHandler(st *yard.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q, err := query(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		api.WriteJSON(w, http.StatusOK, filter(st.Records(), q))
	})
}

// NewCSVHandler serves GET /api/records.csv as an attachment named after the
// export time in loc.
func NewCSVHandler(st *yard.Store, loc *time.Location) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q, err := query(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, filter(st.Records(), q), loc); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		name := model.ExportFilename(st.Now(), loc)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		_, _ = w.Write(buf.Bytes())
	})
}

// Routes mounts the record endpoints on mux.
func Routes(mux *http.ServeMux, st *yard.Store, loc *time.Location) {
	mux.Handle("GET /api/records", NewHandler(st))
	mux.Handle("GET /api/records.csv", NewCSVHandler(st, loc))
}
