// Package backup copies files to timestamped sibling paths before they are
// mutated. Backups are never read back or deleted by Wardrobe; they exist as
// an operator safety net.
package backup

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// now is replaced in tests to pin the timestamp.
var now = time.Now

// Timestamp formats t for use in a backup filename: ISO 8601 with
// sub-second digits, colons and dots replaced by dashes so the result is a
// valid filename on every platform.
func Timestamp(t time.Time) string {
	s := t.Format("2006-01-02T15:04:05.000000000Z07:00")
	s = strings.ReplaceAll(s, ":", "-")
	return strings.ReplaceAll(s, ".", "-")
}

// Create copies path byte-for-byte to path + ".bak." + timestamp and returns
// the backup path. A missing source is a no-op ("", nil). Existing backups
// are never overwritten: the destination is opened exclusively, so a
// timestamp collision surfaces as an error instead of clobbering a backup.
func Create(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	bakPath := path + ".bak." + Timestamp(now())
	dst, err := os.OpenFile(bakPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating backup %s: %w", bakPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("copying to %s: %w", bakPath, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("closing backup %s: %w", bakPath, err)
	}
	return bakPath, nil
}
