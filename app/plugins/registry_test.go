package plugins

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/dockyard/config"
	"github.com/kilianp07/dockyard/core/journal"
)

func TestBuiltinJournals(t *testing.T) {
	assert.Equal(t, []string{"jsonl", "sqlite"}, JournalTypes())

	dir := t.TempDir()
	for _, backend := range JournalTypes() {
		t.Run(backend, func(t *testing.T) {
			s, err := NewJournal(config.JournalConfig{Backend: backend, Path: filepath.Join(dir, "records."+backend)})
			require.NoError(t, err)
			require.NotNil(t, s)
			defer func() { _ = s.Close() }()
			recs, err := s.Query(context.Background(), journal.Query{})
			require.NoError(t, err)
			assert.Empty(t, recs)
		})
	}
}

func TestNoneAndUnknownJournal(t *testing.T) {
	s, err := NewJournal(config.JournalConfig{Backend: "none"})
	assert.NoError(t, err)
	assert.Nil(t, s)

	_, err = NewJournal(config.JournalConfig{Backend: "mongo"})
	assert.Error(t, err)
}
