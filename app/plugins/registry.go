package plugins

import (
	"fmt"
	"sort"

	"github.com/kilianp07/dockyard/config"
	"github.com/kilianp07/dockyard/core/journal"
)

// JournalFactory builds a time record journal from its configuration.
type JournalFactory func(cfg config.JournalConfig) (journal.Store, error)

var Journals = map[string]JournalFactory{}

func RegisterJournal(name string, f JournalFactory) { Journals[name] = f }

// JournalTypes lists the registered backend names.
func JournalTypes() []string {
	out := make([]string, 0, len(Journals))
	for k := range Journals {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NewJournal opens the configured backend. The "none" backend yields a nil
// store and no error.
func NewJournal(cfg config.JournalConfig) (journal.Store, error) {
	if cfg.Backend == "" || cfg.Backend == "none" {
		return nil, nil
	}
	f, ok := Journals[cfg.Backend]
	if !ok {
		return nil, fmt.Errorf("unknown journal backend %q (known: %v)", cfg.Backend, JournalTypes())
	}
	return f(cfg)
}
