// Unit tests for the dual-store update primitive.
package dualstore

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/wardrobe/internal/itemstore"
	"github.com/mesh-intelligence/wardrobe/internal/jsonfile"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// newPair creates a populated storage.json and state.vscdb in a temp dir.
func newPair(t *testing.T, existing map[string]any) *Sync {
	t.Helper()
	dir := t.TempDir()
	s := New(filepath.Join(dir, "storage.json"), filepath.Join(dir, "state.vscdb"))

	if existing != nil {
		require.NoError(t, jsonfile.WriteMap(s.StorageJSON, existing, jsonfile.IndentIdentity))
	}

	store, err := itemstore.Open(s.StateDB)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	return s
}

func TestApplyMergesIntoBothStores(t *testing.T) {
	s := newPair(t, map[string]any{"unrelated": "kept", "telemetry.machineId": "old"})
	res := &types.Result{}

	out, err := s.Apply(map[string]string{
		"telemetry.machineId":   "new",
		"telemetry.devDeviceId": "dev",
	}, res)
	require.NoError(t, err)

	assert.True(t, out.JSONAvailable)
	assert.True(t, out.TableAvailable)
	assert.True(t, out.JSONApplied["telemetry.machineId"])
	assert.True(t, out.TableApplied["telemetry.devDeviceId"])

	// JSON store: updated keys present, unrelated keys untouched.
	m, err := jsonfile.ReadMap(s.StorageJSON)
	require.NoError(t, err)
	assert.Equal(t, "new", m["telemetry.machineId"])
	assert.Equal(t, "dev", m["telemetry.devDeviceId"])
	assert.Equal(t, "kept", m["unrelated"])

	// Table store converged to the same values.
	store, err := itemstore.Open(s.StateDB)
	require.NoError(t, err)
	defer store.Close()
	got, err := store.Get("telemetry.machineId")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestApplyMissingJSONSkipsPhase(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "storage.json"), filepath.Join(dir, "state.vscdb"))

	store, err := itemstore.Open(s.StateDB)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	res := &types.Result{}
	out, err := s.Apply(map[string]string{"k": "v"}, res)
	require.NoError(t, err)

	assert.False(t, out.JSONAvailable)
	assert.True(t, out.TableAvailable)
	assert.NoFileExists(t, s.StorageJSON, "a missing JSON store must not be created by apply")
	assert.Contains(t, strings.Join(res.Log, "\n"), "skipping JSON store")
}

func TestApplyMissingTableIsSoft(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "storage.json"), filepath.Join(dir, "state.vscdb"))
	require.NoError(t, jsonfile.WriteMap(s.StorageJSON, map[string]any{}, jsonfile.IndentIdentity))

	res := &types.Result{}
	out, err := s.Apply(map[string]string{"k": "v"}, res)
	require.NoError(t, err)

	assert.True(t, out.JSONAvailable)
	assert.False(t, out.TableAvailable)
	assert.NoFileExists(t, s.StateDB, "a missing state db must not be created by apply")
	assert.Contains(t, strings.Join(res.Log, "\n"), "skipping ItemTable store")
}

func TestApplyCorruptJSONWarnsAndContinues(t *testing.T) {
	dir := t.TempDir()
	s := New(filepath.Join(dir, "storage.json"), filepath.Join(dir, "state.vscdb"))
	require.NoError(t, os.WriteFile(s.StorageJSON, []byte("not json"), 0o644))

	store, err := itemstore.Open(s.StateDB)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	res := &types.Result{}
	out, err := s.Apply(map[string]string{"k": "v"}, res)
	require.NoError(t, err)

	assert.False(t, out.JSONAvailable)
	assert.True(t, out.TableAvailable, "table phase still runs when the JSON side is corrupt")

	// The corrupt file is left exactly as it was.
	data, err := os.ReadFile(s.StorageJSON)
	require.NoError(t, err)
	assert.Equal(t, "not json", string(data))

	var sawWarning bool
	for _, line := range res.Log {
		if strings.HasPrefix(line, types.WarningPrefix) {
			sawWarning = true
		}
	}
	assert.True(t, sawWarning)
}

func TestApplyCorruptJSONLogsWarning(t *testing.T) {
	var buf bytes.Buffer
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(old) })

	dir := t.TempDir()
	s := New(filepath.Join(dir, "storage.json"), filepath.Join(dir, "state.vscdb"))
	require.NoError(t, os.WriteFile(s.StorageJSON, []byte("not json"), 0o644))

	res := &types.Result{}
	_, err := s.Apply(map[string]string{"k": "v"}, res)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "json store unreadable")
}

func TestApplyTranscriptLinePerKeyPerStore(t *testing.T) {
	s := newPair(t, map[string]any{})
	res := &types.Result{}

	_, err := s.Apply(map[string]string{"a": "1", "b": "2"}, res)
	require.NoError(t, err)

	joined := strings.Join(res.Log, "\n")
	assert.Contains(t, joined, "a: updated")
	assert.Contains(t, joined, "b: updated")
	assert.Contains(t, joined, "a: updated in ItemTable")
	assert.Contains(t, joined, "b: updated in ItemTable")
}
