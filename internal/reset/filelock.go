package reset

import (
	"fmt"
	"os"
)

// FileLock toggles the read-only attribute on a file. Mutating writes in
// the rotate flow are wrapped symmetrically: detect, unlock, write, relock.
type FileLock interface {
	// Lock marks the file read-only.
	Lock(path string) error
	// Unlock clears the read-only marking.
	Unlock(path string) error
	// Locked reports whether the file is currently read-only.
	Locked(path string) (bool, error)
}

// chmodLock implements FileLock via permission bits. On Windows, chmod of
// the owner-write bit maps onto the file's read-only attribute, so the same
// implementation serves every platform.
type chmodLock struct{}

// NewFileLock returns the platform FileLock.
func NewFileLock() FileLock {
	return chmodLock{}
}

func (chmodLock) Lock(path string) error {
	if err := os.Chmod(path, 0o444); err != nil {
		return fmt.Errorf("marking %s read-only: %w", path, err)
	}
	return nil
}

func (chmodLock) Unlock(path string) error {
	if err := os.Chmod(path, 0o644); err != nil {
		return fmt.Errorf("clearing read-only on %s: %w", path, err)
	}
	return nil
}

func (chmodLock) Locked(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Mode().Perm()&0o200 == 0, nil
}
