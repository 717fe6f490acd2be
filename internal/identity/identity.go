// Package identity generates fresh identifier sets from the system
// cryptographic random source.
package identity

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// Generate produces a fresh IdentitySet. Each call yields a statistically
// independent set:
//
//   - DevDeviceID: random v4 UUID
//   - MachineID: hex SHA-256 digest of 32 random bytes
//   - MacMachineID: hex SHA-512 digest of 64 random bytes
//   - SqmID: uppercase v4 UUID wrapped in braces
//   - ServiceMachineID: mirrors DevDeviceID
//
// The only failure mode is exhaustion of the random source, which is fatal.
func Generate() (*types.IdentitySet, error) {
	device, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("%w: generating device id: %v", types.ErrRandomSource, err)
	}

	machineID, err := randomDigest(32, func(b []byte) []byte {
		sum := sha256.Sum256(b)
		return sum[:]
	})
	if err != nil {
		return nil, err
	}

	macMachineID, err := randomDigest(64, func(b []byte) []byte {
		sum := sha512.Sum512(b)
		return sum[:]
	})
	if err != nil {
		return nil, err
	}

	sqm, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("%w: generating sqm id: %v", types.ErrRandomSource, err)
	}

	return &types.IdentitySet{
		DevDeviceID:      device.String(),
		MachineID:        machineID,
		MacMachineID:     macMachineID,
		SqmID:            "{" + strings.ToUpper(sqm.String()) + "}",
		ServiceMachineID: device.String(),
	}, nil
}

// randomDigest reads n random bytes and returns the hex encoding of their
// digest.
func randomDigest(n int, digest func([]byte) []byte) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: reading %d random bytes: %v", types.ErrRandomSource, n, err)
	}
	return hex.EncodeToString(digest(buf)), nil
}
