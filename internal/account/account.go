// Package account manages the JSON-file-backed list of saved accounts and
// the activation recipe that applies an account to the live identity store.
package account

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/wardrobe/internal/backup"
	"github.com/mesh-intelligence/wardrobe/internal/dualstore"
	"github.com/mesh-intelligence/wardrobe/internal/identity"
	"github.com/mesh-intelligence/wardrobe/internal/jsonfile"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// Store is the account list backed by a single JSON array file.
type Store struct {
	// Path is the account list file.
	Path string

	// sync targets the live identity store pair used by Activate.
	sync *dualstore.Sync

	// machineIDFile is the flat machine-identifier file updated by Activate.
	machineIDFile string

	// generate is a seam for tests; defaults to identity.Generate.
	generate func() (*types.IdentitySet, error)

	logger *slog.Logger
}

// New returns a Store over the account list in cfg, activating against the
// identity store pair in cfg.
func New(cfg types.Config) *Store {
	return &Store{
		Path:          cfg.AccountsFile,
		sync:          dualstore.New(cfg.StorageJSON, cfg.StateDB),
		machineIDFile: cfg.MachineIDFile,
		generate:      identity.Generate,
		logger:        slog.Default().With("component", "accounts"),
	}
}

// List returns all saved accounts in file order. A missing file yields an
// empty list; a malformed file is logged and also yields an empty list so
// callers never fail on a bad account file.
func (s *Store) List() ([]types.Account, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return []types.Account{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}

	var accounts []types.Account
	if err := json.Unmarshal(jsonfile.Normalize(data), &accounts); err != nil {
		s.logger.Warn("account file is malformed, treating as empty",
			"path", s.Path, "error", err)
		return []types.Account{}, nil
	}
	return accounts, nil
}

// Create builds a new account with a fresh identity pair and appends it to
// the list file. The containing directory is created if needed.
func (s *Store) Create(name, email, accessToken, refreshToken string) (*types.Account, error) {
	set, err := s.generate()
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("%w: generating account id: %v", types.ErrRandomSource, err)
	}

	acct := types.Account{
		ID:           id.String(),
		Name:         name,
		Email:        email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		MachineID:    set.MachineID,
		DevDeviceID:  set.DevDeviceID,
		CreatedAt:    time.Now().UTC(),
	}

	accounts, err := s.List()
	if err != nil {
		return nil, err
	}
	accounts = append(accounts, acct)

	if err := s.save(accounts); err != nil {
		return nil, err
	}
	return &acct, nil
}

// Delete removes the account with the given id and rewrites the file.
// Deleting an unknown id is a no-op success.
func (s *Store) Delete(id string) error {
	accounts, err := s.List()
	if err != nil {
		return err
	}

	kept := accounts[:0]
	for _, a := range accounts {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(accounts) {
		return nil
	}
	return s.save(kept)
}

// Activate applies the account's credentials and identifiers to the live
// dual store and, when the account carries a machine id and the flat file
// exists, overwrites the machine-id file. Every store that exists is backed
// up first; a failed backup aborts before anything is written. The account
// record itself is never mutated.
func (s *Store) Activate(id string, res *types.Result) error {
	accounts, err := s.List()
	if err != nil {
		return err
	}

	var acct *types.Account
	for i := range accounts {
		if accounts[i].ID == id {
			acct = &accounts[i]
			break
		}
	}
	if acct == nil {
		return fmt.Errorf("%w: account %s", types.ErrNotFound, id)
	}

	for _, target := range []string{s.sync.StorageJSON, s.sync.StateDB, s.machineIDFile} {
		bakPath, err := backup.Create(target)
		if err != nil {
			return fmt.Errorf("%w: %v", types.ErrBackupFailed, err)
		}
		if bakPath != "" {
			res.Infof("backed up %s to %s", filepath.Base(target), filepath.Base(bakPath))
		}
	}

	updates := map[string]string{
		types.KeySignUpType:  types.SignUpTypeMarker,
		types.KeyCachedEmail: acct.Email,
		types.KeyAccessToken: acct.AccessToken,
	}
	if acct.RefreshToken != "" {
		updates[types.KeyRefreshToken] = acct.RefreshToken
	}
	if acct.MachineID != "" {
		updates[types.KeyMachineID] = acct.MachineID
	}
	if acct.DevDeviceID != "" {
		updates[types.KeyDevDeviceID] = acct.DevDeviceID
	}

	res.Infof("activating account %s <%s>", acct.Name, acct.Email)
	if _, err := s.sync.Apply(updates, res); err != nil {
		return fmt.Errorf("applying account %s: %w", id, err)
	}

	if acct.MachineID != "" {
		if _, err := os.Stat(s.machineIDFile); err == nil {
			if err := os.WriteFile(s.machineIDFile, []byte(acct.MachineID), 0o644); err != nil {
				res.Warnf("writing machine id file: %v", err)
			} else {
				res.Infof("machine id file updated")
			}
		}
	}

	res.Success = true
	return nil
}

// ImportFrom parses the file at path and returns its accounts. The
// top-level JSON value must be an array; any other shape, or unparseable
// content, is ErrInvalidFormat.
func (s *Store) ImportFrom(path string) ([]types.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data = jsonfile.Normalize(data)

	var top any
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidFormat, err)
	}
	if _, ok := top.([]any); !ok {
		return nil, fmt.Errorf("%w: top-level value is not an array", types.ErrInvalidFormat)
	}

	var accounts []types.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidFormat, err)
	}
	return accounts, nil
}

// Merge folds imported accounts into the list file: records with a known id
// replace the existing record, the rest are appended in input order.
func (s *Store) Merge(imported []types.Account) error {
	accounts, err := s.List()
	if err != nil {
		return err
	}

	index := make(map[string]int, len(accounts))
	for i, a := range accounts {
		index[a.ID] = i
	}
	for _, in := range imported {
		if i, ok := index[in.ID]; ok {
			accounts[i] = in
			continue
		}
		index[in.ID] = len(accounts)
		accounts = append(accounts, in)
	}
	return s.save(accounts)
}

// save rewrites the whole account file with two-space indentation.
func (s *Store) save(accounts []types.Account) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("creating account directory: %w", err)
	}

	data, err := json.MarshalIndent(accounts, "", jsonfile.IndentAccounts)
	if err != nil {
		return fmt.Errorf("marshaling accounts: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path, err)
	}
	return nil
}
