package types

import "errors"

// Standard errors returned by store and orchestrator operations.
// Callers match these with errors.Is; operations wrap them with context
// via fmt.Errorf("...: %w", err).
var (
	// ErrNotFound is returned when an account or required file does not exist.
	ErrNotFound = errors.New("not found")

	// ErrStoreMissing is returned when the identity store file is absent but
	// the operation requires it to exist.
	ErrStoreMissing = errors.New("identity store file missing")

	// ErrCorruptStore is returned when the identity store file cannot be
	// parsed as JSON. The wrapping error carries a content snippet.
	ErrCorruptStore = errors.New("identity store is not valid JSON")

	// ErrBackupFailed is returned when the pre-mutation backup copy could not
	// be written. It is fatal: the primary file must not be mutated.
	ErrBackupFailed = errors.New("backup failed")

	// ErrStoreUnavailable indicates the embedded table engine or its database
	// file is not usable. Soft failure: callers continue with JSON-only state.
	ErrStoreUnavailable = errors.New("item table store unavailable")

	// ErrInvalidFormat is returned by account import when the file's top-level
	// value is not an array.
	ErrInvalidFormat = errors.New("account file must contain a JSON array")

	// ErrRandomSource is returned when the system random source fails while
	// generating identifiers. Non-recoverable.
	ErrRandomSource = errors.New("random source exhausted")
)
