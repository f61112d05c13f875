package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	vaulterrors "github.com/sonr-io/vaultcore/errors"
)

// MetadataVersion1 is the only schema version currently defined.
const MetadataVersion1 uint8 = 1

// Length limits imposed by the one byte length prefixes of the committed layout.
const (
	MaxTemplateIDLen   = 255
	MaxDestinationsLen = 255
)

// DestinationIndices are indices into an external approved-destination list. They
// encode to JSON as an array of integers rather than base64.
type DestinationIndices []byte

// MarshalJSON encodes the indices as a JSON number array.
func (d DestinationIndices) MarshalJSON() ([]byte, error) {
	out := make([]uint16, len(d))
	for i, b := range d {
		out[i] = uint16(b)
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a JSON number array, rejecting values outside 0..255.
func (d *DestinationIndices) UnmarshalJSON(data []byte) error {
	var in []int64
	if err := json.Unmarshal(data, &in); err != nil {
		return vaulterrors.InvalidInput("destination_indices must be an array of integers")
	}
	if len(in) == 0 {
		*d = nil
		return nil
	}
	out := make(DestinationIndices, len(in))
	for i, v := range in {
		if v < 0 || v > 255 {
			return vaulterrors.InvalidInput("destination index %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	*d = out
	return nil
}

// VaultMetadata is the record committed into a vault's recovery leaf. Once encoded its
// bytes are permanent, so the value must be treated as immutable after construction.
type VaultMetadata struct {
	// Schema version, selects the decoder
	Version uint8 `json:"version"`
	// Stable template identifier, at most 255 bytes
	TemplateID string `json:"template_id"`
	// Relative timelock of the default spend path
	DelayBlocks uint32 `json:"delay_blocks"`
	// At most 255 entries
	DestinationIndices DestinationIndices `json:"destination_indices"`
	// Recovery mechanism
	RecoveryType RecoveryType `json:"recovery_type"`
	// Block height at vault creation
	CreatedAtBlock uint32 `json:"created_at_block"`
	// Derivation index of this vault
	VaultIndex uint32 `json:"vault_index"`
}

// NewVaultMetadata builds version 1 metadata for a vault created from template. A
// CustomTemplate carries its own recovery type, which takes precedence over recovery.
// The destination slice is copied.
func NewVaultMetadata(
	template VaultTemplate,
	recovery RecoveryType,
	destinations []byte,
	createdAtBlock uint32,
	vaultIndex uint32,
) VaultMetadata {
	if custom, ok := template.(CustomTemplate); ok {
		recovery = custom.Recovery
	}

	var dests DestinationIndices
	if len(destinations) > 0 {
		dests = append(DestinationIndices(nil), destinations...)
	}

	return VaultMetadata{
		Version:            MetadataVersion1,
		TemplateID:         template.TemplateID(),
		DelayBlocks:        template.DelayBlocks(),
		DestinationIndices: dests,
		RecoveryType:       recovery,
		CreatedAtBlock:     createdAtBlock,
		VaultIndex:         vaultIndex,
	}
}

// Validate checks the invariants the binary layout depends on.
func (m VaultMetadata) Validate() error {
	err := validation.ValidateStruct(&m,
		validation.Field(&m.Version, validation.By(supportedVersion)),
		validation.Field(&m.TemplateID, validation.By(maxByteLen(MaxTemplateIDLen))),
		validation.Field(&m.DestinationIndices, validation.Length(0, MaxDestinationsLen)),
		validation.Field(&m.RecoveryType, validation.By(validRecoveryType)),
	)
	if err != nil {
		return vaulterrors.Metadata("%s", err.Error())
	}
	return nil
}

// Equal reports whether two metadata values carry the same fields. A nil and an empty
// destination list compare equal since they encode identically.
func (m VaultMetadata) Equal(other VaultMetadata) bool {
	return m.Version == other.Version &&
		m.TemplateID == other.TemplateID &&
		m.DelayBlocks == other.DelayBlocks &&
		bytes.Equal(m.DestinationIndices, other.DestinationIndices) &&
		m.RecoveryType == other.RecoveryType &&
		m.CreatedAtBlock == other.CreatedAtBlock &&
		m.VaultIndex == other.VaultIndex
}

func maxByteLen(limit int) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if len(s) > limit {
			return validation.NewError("validation_max_bytes", fmt.Sprintf("must be at most %d bytes", limit))
		}
		return nil
	}
}

func supportedVersion(value any) error {
	v, _ := value.(uint8)
	if v != MetadataVersion1 {
		return validation.NewError("validation_version", fmt.Sprintf("unsupported metadata version %d", v))
	}
	return nil
}

func validRecoveryType(value any) error {
	r, _ := value.(RecoveryType)
	if !r.Valid() {
		return validation.NewError("validation_recovery_type", "must be emergency_key, timelock_only or multi_sig")
	}
	return nil
}
