//go:build !windows

package reset

import "github.com/mesh-intelligence/wardrobe/pkg/types"

// noopSecondary is used on platforms without a secondary identifier store.
type noopSecondary struct{}

// NewSecondaryStore returns a no-op store on non-Windows platforms.
func NewSecondaryStore() SecondaryStore {
	return noopSecondary{}
}

func (noopSecondary) Update(*types.IdentitySet, *types.Result) {}
