// Package reset implements the identifier rotation and full wipe recipes.
// Both compose the same parts: backup before mutate, fresh identifier
// generation, mirrored dual-store writes, and the plain machine-id file.
package reset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/wardrobe/internal/backup"
	"github.com/mesh-intelligence/wardrobe/internal/dualstore"
	"github.com/mesh-intelligence/wardrobe/internal/identity"
	"github.com/mesh-intelligence/wardrobe/internal/jsonfile"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// SecondaryStore is the platform-specific identifier store updated
// best-effort at the end of a rotation (a registry key on Windows).
type SecondaryStore interface {
	Update(set *types.IdentitySet, res *types.Result)
}

// Orchestrator runs the rotate and wipe recipes against one installation.
type Orchestrator struct {
	cfg       types.Config
	sync      *dualstore.Sync
	lock      FileLock
	secondary SecondaryStore

	// generate is a seam for tests; defaults to identity.Generate.
	generate func() (*types.IdentitySet, error)

	logger *slog.Logger
}

// New returns an Orchestrator for the installation described by cfg.
func New(cfg types.Config) *Orchestrator {
	return &Orchestrator{
		cfg:       cfg,
		sync:      dualstore.New(cfg.StorageJSON, cfg.StateDB),
		lock:      NewFileLock(),
		secondary: NewSecondaryStore(),
		generate:  identity.Generate,
		logger:    slog.Default().With("component", "reset"),
	}
}

// RotateIdentifiers generates a fresh IdentitySet and merges it into every
// store of the installation. The JSON store must exist and parse; its
// backup must succeed before anything is written. Table and secondary-store
// failures are warnings, JSON success is sufficient for overall success.
func (o *Orchestrator) RotateIdentifiers() (*types.IdentitySet, *types.Result, error) {
	res := &types.Result{}

	if _, err := os.Stat(o.cfg.StorageJSON); err != nil {
		return nil, res, fmt.Errorf("%w: %s", types.ErrStoreMissing, o.cfg.StorageJSON)
	}

	bakPath, err := backup.Create(o.cfg.StorageJSON)
	if err != nil {
		return nil, res, fmt.Errorf("%w: %v", types.ErrBackupFailed, err)
	}
	res.Infof("backed up %s to %s", filepath.Base(o.cfg.StorageJSON), filepath.Base(bakPath))

	m, err := jsonfile.ReadMap(o.cfg.StorageJSON)
	if err != nil {
		return nil, res, err
	}

	set, err := o.generate()
	if err != nil {
		return nil, res, err
	}
	for key, value := range set.Keys() {
		m[key] = value
	}

	if err := o.writeLocked(o.cfg.StorageJSON, func() error {
		return jsonfile.WriteMap(o.cfg.StorageJSON, m, jsonfile.IndentIdentity)
	}, res); err != nil {
		return nil, res, err
	}
	res.Infof("%s: %d identifier keys written", filepath.Base(o.cfg.StorageJSON), len(types.IdentityKeys))

	if err := o.writeMachineIDFile(set.DevDeviceID, res); err != nil {
		return nil, res, err
	}

	o.applyTable(set, res)
	o.secondary.Update(set, res)

	res.Success = true
	return set, res, nil
}

// FullWipe removes every configured data location of the installation, then
// provisions a brand-new JSON store containing only a fresh IdentitySet and
// rewrites the machine-id file. Individual removal failures are warnings;
// the wipe reports success once the new store is in place.
func (o *Orchestrator) FullWipe() (*types.Result, error) {
	res := &types.Result{}

	for _, loc := range o.cfg.WipeLocations {
		info, err := os.Stat(loc)
		if err != nil {
			if !os.IsNotExist(err) {
				res.Warnf("stat %s: %v", loc, err)
			}
			continue
		}

		if info.IsDir() {
			err = os.RemoveAll(loc)
		} else {
			err = os.Remove(loc)
		}
		if err != nil {
			res.Warnf("removing %s: %v", loc, err)
			o.logger.Warn("removal failed", "path", loc, "error", err)
			continue
		}
		res.Infof("removed %s", loc)
	}

	set, err := o.generate()
	if err != nil {
		return res, err
	}

	// The directory was just wiped: the new store replaces rather than
	// merges, holding exactly the five identity keys.
	if err := os.MkdirAll(filepath.Dir(o.cfg.StorageJSON), 0o755); err != nil {
		return res, fmt.Errorf("creating storage directory: %w", err)
	}
	fresh := make(map[string]any, len(types.IdentityKeys))
	for key, value := range set.Keys() {
		fresh[key] = value
	}
	if err := jsonfile.WriteMap(o.cfg.StorageJSON, fresh, jsonfile.IndentIdentity); err != nil {
		return res, err
	}
	res.Infof("provisioned fresh %s", filepath.Base(o.cfg.StorageJSON))

	if err := o.writeMachineIDFile(set.DevDeviceID, res); err != nil {
		return res, err
	}

	res.Success = true
	return res, nil
}

// writeMachineIDFile writes the device id to the flat machine-id file,
// creating its parent directory and applying the read-only dance when the
// file already exists.
func (o *Orchestrator) writeMachineIDFile(deviceID string, res *types.Result) error {
	path := o.cfg.MachineIDFile
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating machine id directory: %w", err)
	}

	if err := o.writeLocked(path, func() error {
		return os.WriteFile(path, []byte(deviceID), 0o644)
	}, res); err != nil {
		return err
	}
	res.Infof("machine id file updated")
	return nil
}

// writeLocked runs write with the read-only attribute cleared, restoring it
// afterwards if it had been set. Attribute handling is best-effort: only
// the write itself can fail the operation.
func (o *Orchestrator) writeLocked(path string, write func() error, res *types.Result) error {
	wasLocked := false
	if _, err := os.Stat(path); err == nil {
		locked, err := o.lock.Locked(path)
		if err != nil {
			res.Warnf("checking read-only attribute on %s: %v", filepath.Base(path), err)
		}
		wasLocked = locked
		if wasLocked {
			if err := o.lock.Unlock(path); err != nil {
				res.Warnf("%v", err)
			}
		}
	}

	if err := write(); err != nil {
		return err
	}

	if wasLocked {
		if err := o.lock.Lock(path); err != nil {
			res.Warnf("%v", err)
		}
	}
	return nil
}

// applyTable backs up the state database and mirrors the identifier keys
// into the ItemTable. Everything here is best-effort: a missing file, a
// failed backup, or upsert errors downgrade to warnings because JSON-store
// success already carries the rotation.
func (o *Orchestrator) applyTable(set *types.IdentitySet, res *types.Result) {
	if _, err := os.Stat(o.cfg.StateDB); err != nil {
		res.Infof("%s not found, skipping ItemTable store", filepath.Base(o.cfg.StateDB))
		return
	}

	bakPath, err := backup.Create(o.cfg.StateDB)
	if err != nil {
		res.Warnf("backing up %s: %v; ItemTable left untouched", filepath.Base(o.cfg.StateDB), err)
		o.logger.Warn("state db backup failed", "path", o.cfg.StateDB, "error", err)
		return
	}
	res.Infof("backed up %s to %s", filepath.Base(o.cfg.StateDB), filepath.Base(bakPath))

	o.sync.ApplyTable(set.Keys(), res, nil)
}
