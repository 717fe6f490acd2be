// Unit tests for the account store and the activation recipe.
package account

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/wardrobe/internal/itemstore"
	"github.com/mesh-intelligence/wardrobe/internal/jsonfile"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// newStore returns a Store whose files all live in a temp dir. The identity
// store pair and machine-id file exist and are populated.
func newStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	cfg := types.Config{
		AppName:       "TestIDE",
		StorageJSON:   filepath.Join(dir, "storage.json"),
		StateDB:       filepath.Join(dir, "state.vscdb"),
		MachineIDFile: filepath.Join(dir, "machineid"),
		AccountsFile:  filepath.Join(dir, "wardrobe", "accounts.json"),
	}

	require.NoError(t, jsonfile.WriteMap(cfg.StorageJSON, map[string]any{"existing": "kept"}, jsonfile.IndentIdentity))
	db, err := itemstore.Open(cfg.StateDB)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.NoError(t, os.WriteFile(cfg.MachineIDFile, []byte("old-machine-id"), 0o644))

	return New(cfg)
}

func TestListMissingFileIsEmpty(t *testing.T) {
	s := newStore(t)

	accounts, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, accounts)
	assert.NotNil(t, accounts)
}

func TestListMalformedFileIsEmpty(t *testing.T) {
	s := newStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path), 0o755))
	require.NoError(t, os.WriteFile(s.Path, []byte("{not an array"), 0o644))

	accounts, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestCreateAssignsFreshIdentityPair(t *testing.T) {
	s := newStore(t)

	acct, err := s.Create("alice", "alice@example.com", "tok", "")
	require.NoError(t, err)

	assert.NotEmpty(t, acct.ID)
	assert.NotEmpty(t, acct.MachineID)
	assert.NotEmpty(t, acct.DevDeviceID)
	assert.Empty(t, acct.RefreshToken)
	assert.False(t, acct.CreatedAt.IsZero())

	accounts, err := s.List()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, acct.ID, accounts[0].ID)
}

func TestCreateUniqueIDs(t *testing.T) {
	s := newStore(t)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		acct, err := s.Create("u", "u@example.com", "tok", "")
		require.NoError(t, err)
		assert.False(t, seen[acct.ID], "account id %s repeated", acct.ID)
		seen[acct.ID] = true
	}

	accounts, err := s.List()
	require.NoError(t, err)
	assert.Len(t, accounts, 5)
}

func TestCreateOmitsEmptyOptionalFields(t *testing.T) {
	s := newStore(t)

	_, err := s.Create("bob", "bob@example.com", "tok", "")
	require.NoError(t, err)

	data, err := os.ReadFile(s.Path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "refreshToken")

	// Account file uses 2-space indentation.
	assert.Contains(t, string(data), "\n    \"id\"")
}

func TestDeleteIdempotent(t *testing.T) {
	s := newStore(t)
	acct, err := s.Create("carol", "carol@example.com", "tok", "rt")
	require.NoError(t, err)
	keep, err := s.Create("dave", "dave@example.com", "tok", "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(acct.ID))
	require.NoError(t, s.Delete(acct.ID), "second delete of the same id must succeed")
	require.NoError(t, s.Delete("no-such-id"), "deleting an unknown id must succeed")

	accounts, err := s.List()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, keep.ID, accounts[0].ID)
}

func TestActivateUnknownIDPerformsNoWrites(t *testing.T) {
	s := newStore(t)

	before, err := os.ReadFile(s.sync.StorageJSON)
	require.NoError(t, err)

	res := &types.Result{}
	err = s.Activate("unknown", res)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.False(t, res.Success)

	after, err := os.ReadFile(s.sync.StorageJSON)
	require.NoError(t, err)
	assert.Equal(t, before, after, "storage.json must be untouched")

	machineID, err := os.ReadFile(s.machineIDFile)
	require.NoError(t, err)
	assert.Equal(t, "old-machine-id", string(machineID))
}

func TestActivateAppliesAccountToStores(t *testing.T) {
	s := newStore(t)
	acct, err := s.Create("erin", "erin@example.com", "access-tok", "refresh-tok")
	require.NoError(t, err)

	res := &types.Result{}
	require.NoError(t, s.Activate(acct.ID, res))
	assert.True(t, res.Success)

	m, err := jsonfile.ReadMap(s.sync.StorageJSON)
	require.NoError(t, err)
	assert.Equal(t, types.SignUpTypeMarker, m[types.KeySignUpType])
	assert.Equal(t, "erin@example.com", m[types.KeyCachedEmail])
	assert.Equal(t, "access-tok", m[types.KeyAccessToken])
	assert.Equal(t, "refresh-tok", m[types.KeyRefreshToken])
	assert.Equal(t, acct.MachineID, m[types.KeyMachineID])
	assert.Equal(t, acct.DevDeviceID, m[types.KeyDevDeviceID])
	assert.Equal(t, "kept", m["existing"], "unrelated keys survive activation")

	db, err := itemstore.Open(s.sync.StateDB)
	require.NoError(t, err)
	defer db.Close()
	got, err := db.Get(types.KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access-tok", got)

	machineID, err := os.ReadFile(s.machineIDFile)
	require.NoError(t, err)
	assert.Equal(t, acct.MachineID, string(machineID))
}

func TestActivateWithoutRefreshTokenSkipsKey(t *testing.T) {
	s := newStore(t)
	acct, err := s.Create("frank", "frank@example.com", "tok", "")
	require.NoError(t, err)

	res := &types.Result{}
	require.NoError(t, s.Activate(acct.ID, res))

	m, err := jsonfile.ReadMap(s.sync.StorageJSON)
	require.NoError(t, err)
	_, present := m[types.KeyRefreshToken]
	assert.False(t, present)
}

func TestActivateBacksUpStoresBeforeMutate(t *testing.T) {
	s := newStore(t)
	acct, err := s.Create("ivy", "ivy@example.com", "tok", "")
	require.NoError(t, err)

	res := &types.Result{}
	require.NoError(t, s.Activate(acct.ID, res))

	for _, target := range []string{s.sync.StorageJSON, s.sync.StateDB, s.machineIDFile} {
		matches, err := filepath.Glob(target + ".bak.*")
		require.NoError(t, err)
		assert.Len(t, matches, 1, "expected one backup of %s", filepath.Base(target))
	}

	// The backup holds the pre-activation content.
	bak, err := filepath.Glob(s.machineIDFile + ".bak.*")
	require.NoError(t, err)
	require.Len(t, bak, 1)
	data, err := os.ReadFile(bak[0])
	require.NoError(t, err)
	assert.Equal(t, "old-machine-id", string(data))
}

func TestActivateBackupFailureAborts(t *testing.T) {
	s := newStore(t)
	acct, err := s.Create("jack", "jack@example.com", "tok", "")
	require.NoError(t, err)

	before, err := os.ReadFile(s.sync.StorageJSON)
	require.NoError(t, err)

	// A directory at the machine-id path can be opened but not copied, so
	// its backup fails.
	require.NoError(t, os.Remove(s.machineIDFile))
	require.NoError(t, os.Mkdir(s.machineIDFile, 0o755))

	res := &types.Result{}
	err = s.Activate(acct.ID, res)
	assert.ErrorIs(t, err, types.ErrBackupFailed)
	assert.False(t, res.Success)

	after, err := os.ReadFile(s.sync.StorageJSON)
	require.NoError(t, err)
	assert.Equal(t, before, after, "storage.json must be untouched when a backup fails")
}

func TestActivateDoesNotMutateRecord(t *testing.T) {
	s := newStore(t)
	acct, err := s.Create("grace", "grace@example.com", "tok", "")
	require.NoError(t, err)

	res := &types.Result{}
	require.NoError(t, s.Activate(acct.ID, res))

	accounts, err := s.List()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, *acct, accounts[0])
}

func TestImportFrom(t *testing.T) {
	s := newStore(t)
	dir := t.TempDir()

	t.Run("valid array", func(t *testing.T) {
		path := filepath.Join(dir, "in.json")
		in := []types.Account{{ID: "id-1", Name: "n", Email: "e@example.com", AccessToken: "t"}}
		data, err := json.Marshal(in)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data, 0o644))

		got, err := s.ImportFrom(path)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "id-1", got[0].ID)
	})

	t.Run("object is invalid format", func(t *testing.T) {
		path := filepath.Join(dir, "obj.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"id":"x"}`), 0o644))

		_, err := s.ImportFrom(path)
		assert.ErrorIs(t, err, types.ErrInvalidFormat)
	})

	t.Run("garbage is invalid format", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`oops`), 0o644))

		_, err := s.ImportFrom(path)
		assert.ErrorIs(t, err, types.ErrInvalidFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := s.ImportFrom(filepath.Join(dir, "absent.json"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, types.ErrInvalidFormat)
	})
}

func TestMergeReplacesByID(t *testing.T) {
	s := newStore(t)
	acct, err := s.Create("henry", "old@example.com", "tok", "")
	require.NoError(t, err)

	replacement := *acct
	replacement.Email = "new@example.com"
	fresh := types.Account{ID: "fresh-id", Name: "new", Email: "n@example.com", AccessToken: "t"}

	require.NoError(t, s.Merge([]types.Account{replacement, fresh}))

	accounts, err := s.List()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "new@example.com", accounts[0].Email)
	assert.Equal(t, "fresh-id", accounts[1].ID)
}
