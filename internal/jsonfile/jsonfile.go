// Package jsonfile reads and writes JSON key/value map files. Reads tolerate
// a UTF-8 byte-order mark and surrounding whitespace; writes are
// pretty-printed without a BOM and end with a newline.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// Indentation used by the two map files Wardrobe writes. The identity store
// uses four spaces (the target application's own format); the account list
// uses two.
const (
	IndentIdentity = "    "
	IndentAccounts = "  "
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// snippetLen bounds how much of a corrupt file is quoted in errors.
const snippetLen = 100

// ReadMap parses the JSON object at path. A missing file surfaces the
// underlying os error so callers can distinguish absence from corruption;
// unparseable content returns ErrCorruptStore with a content snippet.
func ReadMap(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	data = Normalize(data)

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parsing %s (content: %q): %v",
			types.ErrCorruptStore, path, Snippet(data), err)
	}
	return m, nil
}

// WriteMap serializes m to path with the given indentation. The whole file
// is replaced; keys marshal in sorted order per encoding/json.
func WriteMap(path string, m map[string]any, indent string) error {
	data, err := json.MarshalIndent(m, "", indent)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Normalize strips a leading UTF-8 BOM and surrounding whitespace.
func Normalize(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	return bytes.TrimSpace(data)
}

// Snippet returns at most the first 100 characters of data for diagnostics.
func Snippet(data []byte) string {
	s := string(data)
	if len(s) > snippetLen {
		return s[:snippetLen]
	}
	return s
}
