package types

import "time"

// Account is one saved identity in the account list file. Accounts are
// immutable after creation: activation applies their values to the live
// store without touching the record itself.
//
// RefreshToken, MachineID and DevDeviceID are optional; absence is encoded
// as the empty string and omitted from the JSON representation.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	MachineID    string    `json:"machineId,omitempty"`
	DevDeviceID  string    `json:"devDeviceId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
