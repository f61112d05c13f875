package types

import (
	"encoding/json"

	vaulterrors "github.com/sonr-io/vaultcore/errors"
)

// RecoveryType is the alternate spending mechanism of a vault's recovery path. Its byte
// value is committed on chain.
type RecoveryType uint8

const (
	EmergencyKey RecoveryType = 0
	TimelockOnly RecoveryType = 1
	MultiSig     RecoveryType = 2
)

var recoveryNames = [...]string{
	EmergencyKey: "emergency_key",
	TimelockOnly: "timelock_only",
	MultiSig:     "multi_sig",
}

// RecoveryTypeFromByte maps an encoded byte to a RecoveryType.
func RecoveryTypeFromByte(b byte) (RecoveryType, bool) {
	if b > byte(MultiSig) {
		return 0, false
	}
	return RecoveryType(b), true
}

// ParseRecoveryType converts a snake_case name into a RecoveryType.
func ParseRecoveryType(name string) (RecoveryType, error) {
	for i, n := range recoveryNames {
		if n == name {
			return RecoveryType(i), nil
		}
	}
	return 0, vaulterrors.InvalidInput("Invalid recovery type: %q", name)
}

// Valid reports whether r is one of the closed values.
func (r RecoveryType) Valid() bool {
	return r <= MultiSig
}

// Byte returns the committed encoding of r.
func (r RecoveryType) Byte() byte {
	return byte(r)
}

func (r RecoveryType) String() string {
	if !r.Valid() {
		return "unknown"
	}
	return recoveryNames[r]
}

// MarshalJSON encodes the recovery type by name.
func (r RecoveryType) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, vaulterrors.Serialization("Invalid recovery_type: %d", uint8(r))
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a recovery type name.
func (r *RecoveryType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return vaulterrors.InvalidInput("recovery_type must be a string")
	}
	parsed, err := ParseRecoveryType(name)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
