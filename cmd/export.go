package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/dockyard/app/plugins"
	"github.com/kilianp07/dockyard/core/journal"
	"github.com/kilianp07/dockyard/core/model"
	"github.com/kilianp07/dockyard/pkg/export"
)

var exportOpts struct {
	out    string
	format string
	dock   string
	start  string
	end    string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export journaled time records as CSV or JSON",
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVarP(&exportOpts.out, "out", "o", "", `output file, "-" for stdout (default dock_records_<timestamp>.csv)`)
	f.StringVar(&exportOpts.format, "format", "csv", "csv or json")
	f.StringVar(&exportOpts.dock, "dock", "", "only records of this dock id")
	f.StringVar(&exportOpts.start, "start", "", "earliest end time (RFC3339)")
	f.StringVar(&exportOpts.end, "end", "", "latest end time (RFC3339)")
	rootCmd.AddCommand(exportCmd)
}

func parseTimeFlag(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	return t, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportOpts.format != "csv" && exportOpts.format != "json" {
		return fmt.Errorf("unknown format %q", exportOpts.format)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	loc, err := cfg.Yard.Location()
	if err != nil {
		return err
	}
	store, err := plugins.NewJournal(cfg.Journal)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("journal backend is %q; nothing to export", cfg.Journal.Backend)
	}
	defer func() { _ = store.Close() }()

	q := journal.Query{DockID: exportOpts.dock}
	if q.Start, err = parseTimeFlag("start", exportOpts.start); err != nil {
		return err
	}
	if q.End, err = parseTimeFlag("end", exportOpts.end); err != nil {
		return err
	}
	recs, err := store.Query(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("query journal: %w", err)
	}

	if exportOpts.out == "-" {
		return writeRecords(cmd.OutOrStdout(), recs, loc)
	}
	name := exportOpts.out
	if name == "" {
		name = model.ExportFilename(time.Now(), loc)
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := writeRecords(f, recs, loc); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d records to %s\n", len(recs), name)
	return nil
}

func writeRecords(w io.Writer, recs []model.TimeRecord, loc *time.Location) error {
	if exportOpts.format == "json" {
		return export.WriteJSON(w, recs)
	}
	return export.WriteCSV(w, recs, loc)
}
