// Package codec implements the binary form of vault metadata committed into a Taproot
// recovery leaf.
//
// Version 1 layout, integers little-endian:
//
//	[version:1][tid_len:1][tid:tid_len][delay_blocks:4]
//	[dest_count:1][dest:dest_count][recovery_type:1]
//	[created_at_block:4][vault_index:4]
//
// The leading version byte selects the decoder. A layout is never extended in place; a
// schema change requires a new version value.
package codec

import (
	"encoding/binary"
	"unicode/utf8"

	vaulterrors "github.com/sonr-io/vaultcore/errors"
	"github.com/sonr-io/vaultcore/types"
)

// fixedLenV1 is the size of a version 1 encoding with empty variable fields.
const fixedLenV1 = 1 + 1 + 4 + 1 + 1 + 4 + 4

// EncodedLen returns the size of the encoding of m under the version 1 layout.
func EncodedLen(m types.VaultMetadata) int {
	return fixedLenV1 + len(m.TemplateID) + len(m.DestinationIndices)
}

// Encode serializes m. It is deterministic and rejects, rather than truncates, a
// template_id longer than 255 bytes or more than 255 destination indices.
func Encode(m types.VaultMetadata) ([]byte, error) {
	switch m.Version {
	case types.MetadataVersion1:
		return encodeV1(m)
	default:
		return nil, vaulterrors.Metadata("Unsupported metadata version: %d", m.Version)
	}
}

func encodeV1(m types.VaultMetadata) ([]byte, error) {
	if len(m.TemplateID) > types.MaxTemplateIDLen {
		return nil, vaulterrors.Metadata(
			"template_id is %d bytes, limit is %d", len(m.TemplateID), types.MaxTemplateIDLen)
	}
	if len(m.DestinationIndices) > types.MaxDestinationsLen {
		return nil, vaulterrors.Metadata(
			"destination_indices has %d entries, limit is %d", len(m.DestinationIndices), types.MaxDestinationsLen)
	}
	if !m.RecoveryType.Valid() {
		return nil, vaulterrors.Metadata("Invalid recovery_type: %d", uint8(m.RecoveryType))
	}

	buf := make([]byte, 0, EncodedLen(m))
	buf = append(buf, m.Version)
	buf = append(buf, byte(len(m.TemplateID)))
	buf = append(buf, m.TemplateID...)
	buf = binary.LittleEndian.AppendUint32(buf, m.DelayBlocks)
	buf = append(buf, byte(len(m.DestinationIndices)))
	buf = append(buf, m.DestinationIndices...)
	buf = append(buf, m.RecoveryType.Byte())
	buf = binary.LittleEndian.AppendUint32(buf, m.CreatedAtBlock)
	buf = binary.LittleEndian.AppendUint32(buf, m.VaultIndex)
	return buf, nil
}

// Decode parses metadata read back from a script leaf. Every field boundary is bounds
// checked; the first violation is returned as a metadata error naming the field.
// Bytes after vault_index are ignored.
func Decode(data []byte) (types.VaultMetadata, error) {
	if len(data) == 0 {
		return types.VaultMetadata{}, vaulterrors.Metadata("Empty metadata bytes")
	}

	switch data[0] {
	case types.MetadataVersion1:
		return decodeV1(&reader{data: data, pos: 1})
	default:
		return types.VaultMetadata{}, vaulterrors.Metadata("Unsupported metadata version: %d", data[0])
	}
}

func decodeV1(r *reader) (types.VaultMetadata, error) {
	m := types.VaultMetadata{Version: types.MetadataVersion1}

	tidLen, err := r.readByte("template_id length")
	if err != nil {
		return types.VaultMetadata{}, err
	}
	tid, err := r.readBytes(int(tidLen), "template_id")
	if err != nil {
		return types.VaultMetadata{}, err
	}
	if !utf8.Valid(tid) {
		return types.VaultMetadata{}, vaulterrors.Metadata("Invalid UTF-8 in template_id")
	}
	m.TemplateID = string(tid)

	if m.DelayBlocks, err = r.readUint32("delay_blocks"); err != nil {
		return types.VaultMetadata{}, err
	}

	destCount, err := r.readByte("destination_indices count")
	if err != nil {
		return types.VaultMetadata{}, err
	}
	dests, err := r.readBytes(int(destCount), "destination_indices")
	if err != nil {
		return types.VaultMetadata{}, err
	}
	if len(dests) > 0 {
		m.DestinationIndices = append(types.DestinationIndices(nil), dests...)
	}

	rt, err := r.readByte("recovery_type")
	if err != nil {
		return types.VaultMetadata{}, err
	}
	recovery, ok := types.RecoveryTypeFromByte(rt)
	if !ok {
		return types.VaultMetadata{}, vaulterrors.Metadata("Invalid recovery_type: %d", rt)
	}
	m.RecoveryType = recovery

	if m.CreatedAtBlock, err = r.readUint32("created_at_block"); err != nil {
		return types.VaultMetadata{}, err
	}
	if m.VaultIndex, err = r.readUint32("vault_index"); err != nil {
		return types.VaultMetadata{}, err
	}
	return m, nil
}

// reader is a bounds checked cursor over an encoded buffer.
type reader struct {
	data []byte
	pos  int
}

func (r *reader) remaining() int {
	return len(r.data) - r.pos
}

func (r *reader) readBytes(n int, field string) ([]byte, error) {
	if n > r.remaining() {
		return nil, vaulterrors.Metadata("Truncated %s", field)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) readByte(field string) (byte, error) {
	b, err := r.readBytes(1, field)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) readUint32(field string) (uint32, error) {
	b, err := r.readBytes(4, field)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
