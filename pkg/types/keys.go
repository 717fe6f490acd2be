package types

// Logical keys stored in both the JSON store and the ItemTable. The two
// stores carry the same keys; Wardrobe keeps them converged by mirrored
// writes.
const (
	KeyDevDeviceID      = "telemetry.devDeviceId"
	KeyMachineID        = "telemetry.machineId"
	KeyMacMachineID     = "telemetry.macMachineId"
	KeySqmID            = "telemetry.sqmId"
	KeyServiceMachineID = "storage.serviceMachineId"
)

// IdentityKeys lists the five identity keys in a stable order.
var IdentityKeys = []string{
	KeyDevDeviceID,
	KeyMachineID,
	KeyMacMachineID,
	KeySqmID,
	KeyServiceMachineID,
}

// Authentication keys written by account activation.
const (
	KeySignUpType   = "wardrobeAuth/cachedSignUpType"
	KeyCachedEmail  = "wardrobeAuth/cachedEmail"
	KeyAccessToken  = "wardrobeAuth/accessToken"
	KeyRefreshToken = "wardrobeAuth/refreshToken"
)

// SignUpTypeMarker is the fixed value written under KeySignUpType when an
// account becomes the active identity.
const SignUpTypeMarker = "Auth_0"

// ItemTableName is the generic key/value table inside the embedded database.
const ItemTableName = "ItemTable"
