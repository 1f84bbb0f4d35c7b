// Package catalog loads the parts reference table and resolves labor
// operations into priced part lines
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/FixedOPS-AI/fixedops-ai-demo/internal/types"
)

// Source loads catalog rows from a backing reference store.
type Source interface {
	// Load returns every catalog row. A missing backing file is not an
	// error: sources return an empty table and log a warning.
	Load(ctx context.Context) ([]types.CatalogEntry, error)
	// Name identifies the source for logs and version reporting.
	Name() string
}

// Version describes one loaded snapshot of the catalog.
type Version struct {
	Source   string    `json:"source"`
	Rows     int       `json:"rows"`
	LoadedAt time.Time `json:"loaded_at"`
}

// snapshot is one immutable loaded table with its lookup index.
type snapshot struct {
	entries []types.CatalogEntry
	index   map[string][]int
	version Version
}

// Store serves catalog lookups from an in-memory table loaded once at
// startup. Reload swaps the whole snapshot atomically, so in-flight readers
// never observe a partially loaded table.
type Store struct {
	source Source
	snap   atomic.Pointer[snapshot]
}

// NewStore builds a store and performs the initial load.
func NewStore(ctx context.Context, source Source) (*Store, error) {
	s := &Store{source: source}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload pulls a fresh table from the source and swaps it in.
func (s *Store) Reload(ctx context.Context) error {
	entries, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog from %s: %w", s.source.Name(), err)
	}

	snap := &snapshot{
		entries: entries,
		index:   make(map[string][]int, len(entries)),
		version: Version{
			Source:   s.source.Name(),
			Rows:     len(entries),
			LoadedAt: time.Now().UTC(),
		},
	}
	for i, e := range entries {
		key := lookupKey(e.Make, e.OperationCode)
		snap.index[key] = append(snap.index[key], i)
	}

	s.snap.Store(snap)
	log.WithFields(log.Fields{
		"source": s.source.Name(),
		"rows":   len(entries),
	}).Info("parts catalog loaded")
	return nil
}

// Lookup returns the catalog rows for a make and operation code. Make is
// matched case-insensitively, the operation code exactly. Returned entries
// are copies; callers may mutate them without corrupting the shared table.
func (s *Store) Lookup(mk, opCode string) []types.CatalogEntry {
	snap := s.snap.Load()
	idx := snap.index[lookupKey(mk, opCode)]
	if len(idx) == 0 {
		return nil
	}
	out := make([]types.CatalogEntry, 0, len(idx))
	for _, i := range idx {
		out = append(out, snap.entries[i])
	}
	return out
}

// Version reports the currently loaded snapshot.
func (s *Store) Version() Version {
	return s.snap.Load().version
}

func lookupKey(make, opCode string) string {
	return strings.ToUpper(strings.TrimSpace(make)) + "|" + strings.TrimSpace(opCode)
}
