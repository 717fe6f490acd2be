//go:build windows

package reset

import (
	"golang.org/x/sys/windows/registry"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// registryStore updates the machine GUID the platform keeps alongside the
// application's own identifiers. Best-effort: writing the key requires
// elevation, and failure is reported as a warning only.
type registryStore struct{}

// NewSecondaryStore returns the Windows registry-backed secondary store.
func NewSecondaryStore() SecondaryStore {
	return registryStore{}
}

func (registryStore) Update(set *types.IdentitySet, res *types.Result) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE,
		`SOFTWARE\Microsoft\Cryptography`, registry.SET_VALUE)
	if err != nil {
		res.Warnf("opening registry key: %v", err)
		return
	}
	defer key.Close()

	if err := key.SetStringValue("MachineGuid", set.DevDeviceID); err != nil {
		res.Warnf("updating MachineGuid: %v", err)
		return
	}
	res.Infof("MachineGuid updated")
}
