// Package dualstore applies key/value updates to the JSON identity store and
// the embedded ItemTable as best-effort mirrored writes. The two stores are
// advisory duplicates of each other, so per-key and per-store failures are
// logged and absorbed rather than aborting the run.
package dualstore

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/mesh-intelligence/wardrobe/internal/itemstore"
	"github.com/mesh-intelligence/wardrobe/internal/jsonfile"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// Outcome reports, per key, whether each store accepted the write.
type Outcome struct {
	JSONAvailable  bool
	TableAvailable bool
	JSONApplied    map[string]bool
	TableApplied   map[string]bool
}

// Sync is the dual-store update primitive bound to one JSON/table file pair.
type Sync struct {
	StorageJSON string
	StateDB     string

	logger *slog.Logger
}

// New returns a Sync for the given store pair.
func New(storageJSON, stateDB string) *Sync {
	return &Sync{
		StorageJSON: storageJSON,
		StateDB:     stateDB,
		logger:      slog.Default().With("component", "dualstore"),
	}
}

// Apply writes every update into both stores. The JSON phase is skipped when
// the file is absent; the table phase is skipped when the database file is
// absent or the engine is unavailable. One transcript line is emitted per
// key per store. Apply only fails outright when the JSON store exists but
// cannot be written back.
func (s *Sync) Apply(updates map[string]string, res *types.Result) (*Outcome, error) {
	out := &Outcome{
		JSONApplied:  make(map[string]bool),
		TableApplied: make(map[string]bool),
	}

	if err := s.applyJSON(updates, res, out); err != nil {
		return out, err
	}
	s.ApplyTable(updates, res, out)
	return out, nil
}

// applyJSON merges the updates into the JSON store and rewrites the file.
// Existing unrelated keys are preserved.
func (s *Sync) applyJSON(updates map[string]string, res *types.Result, out *Outcome) error {
	m, err := jsonfile.ReadMap(s.StorageJSON)
	if err != nil {
		if os.IsNotExist(err) {
			res.Infof("%s not found, skipping JSON store", filepath.Base(s.StorageJSON))
			return nil
		}
		// Corrupt content: report and fall through to the table phase rather
		// than destroy what is on disk.
		res.Warnf("reading %s: %v", filepath.Base(s.StorageJSON), err)
		s.logger.Warn("json store unreadable, skipping", "path", s.StorageJSON, "error", err)
		return nil
	}

	for _, key := range sortedKeys(updates) {
		m[key] = updates[key]
	}

	if err := jsonfile.WriteMap(s.StorageJSON, m, jsonfile.IndentIdentity); err != nil {
		res.Warnf("writing %s: %v", filepath.Base(s.StorageJSON), err)
		return err
	}

	out.JSONAvailable = true
	for _, key := range sortedKeys(updates) {
		out.JSONApplied[key] = true
		res.Infof("%s: updated", key)
	}
	return nil
}

// ApplyTable upserts the updates into the ItemTable. A missing database
// file or unavailable engine is reported and skipped; per-key failures are
// warnings and remaining keys are still processed.
func (s *Sync) ApplyTable(updates map[string]string, res *types.Result, out *Outcome) {
	if out == nil {
		out = &Outcome{TableApplied: make(map[string]bool)}
	}

	if _, err := os.Stat(s.StateDB); err != nil {
		res.Infof("%s not found, skipping ItemTable store", filepath.Base(s.StateDB))
		return
	}

	store, err := itemstore.Open(s.StateDB)
	if err != nil {
		res.Warnf("ItemTable store unavailable: %v", err)
		s.logger.Warn("item table store unavailable", "path", s.StateDB, "error", err)
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			res.Warnf("closing %s: %v", filepath.Base(s.StateDB), err)
		}
	}()

	out.TableAvailable = true
	for _, key := range sortedKeys(updates) {
		if err := store.Upsert(key, updates[key]); err != nil {
			res.Warnf("%s: %v", key, err)
			continue
		}
		out.TableApplied[key] = true
		res.Infof("%s: updated in ItemTable", key)
	}
}

// sortedKeys returns the update keys in sorted order so transcripts are
// deterministic.
func sortedKeys(updates map[string]string) []string {
	keys := make([]string, 0, len(updates))
	for k := range updates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
