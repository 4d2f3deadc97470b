// Package export serializes completed time records for download.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/kilianp07/dockyard/core/model"
)

// CSVHeader is the first row of every records export.
var CSVHeader = []string{
	"Dock ID", "Dock Name", "Start Time", "End Time", "Duration(sec)",
	"Label", "Carrier", "Trailer", "Destination",
}

// WriteJSON writes the records to w in JSON format.
func WriteJSON(w io.Writer, records []model.TimeRecord) error {
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}

// WriteCSV writes one row per record after CSVHeader. Timestamps are
// rendered in loc; a nil loc means time.Local.
func WriteCSV(w io.Writer, records []model.TimeRecord, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.DockID,
			r.DockName,
			model.FormatLocal(r.Start, loc),
			model.FormatLocal(r.End, loc),
			strconv.FormatInt(r.DurationSeconds(), 10),
			r.Label,
			r.Carrier,
			r.Trailer,
			r.Destination,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
