package types

// IdentitySet is the five-key bundle of randomly generated identifiers that
// represents one identity of the target application. All five values are
// generated together as one set; values from different sets are never mixed.
type IdentitySet struct {
	DevDeviceID      string `json:"devDeviceId"`
	MachineID        string `json:"machineId"`
	MacMachineID     string `json:"macMachineId"`
	SqmID            string `json:"sqmId"`
	ServiceMachineID string `json:"serviceMachineId"`
}

// Keys returns the set as a storage-key to value map suitable for a dual
// store apply.
func (s *IdentitySet) Keys() map[string]string {
	return map[string]string{
		KeyDevDeviceID:      s.DevDeviceID,
		KeyMachineID:        s.MachineID,
		KeyMacMachineID:     s.MacMachineID,
		KeySqmID:            s.SqmID,
		KeyServiceMachineID: s.ServiceMachineID,
	}
}
