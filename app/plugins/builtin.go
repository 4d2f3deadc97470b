// Package plugins registers the built-in journal backends.
package plugins

import (
	"github.com/kilianp07/dockyard/config"
	"github.com/kilianp07/dockyard/core/journal"
)

func init() {
	RegisterJournal("jsonl", func(c config.JournalConfig) (journal.Store, error) {
		return journal.NewJSONLStore(c.Path, c.MaxSizeMB, c.MaxBackups, c.MaxAgeDays)
	})
	RegisterJournal("sqlite", func(c config.JournalConfig) (journal.Store, error) {
		return journal.NewSQLiteStore(c.Path)
	})
}
