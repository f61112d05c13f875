package ffi

import (
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/sonr-io/vaultcore/codec"
	vaulterrors "github.com/sonr-io/vaultcore/errors"
	"github.com/sonr-io/vaultcore/keys"
	"github.com/sonr-io/vaultcore/types"
)

// Operation names accepted by Call.
const (
	OpEncodeMetadata = "encode_metadata"
	OpDecodeMetadata = "decode_metadata"
	OpTemplateInfo   = "template_info"
	OpValidateXpub   = "validate_xpub"
)

// Handler runs one structured operation over a JSON request.
type Handler func(input []byte) (any, error)

var handlers = map[string]Handler{
	OpEncodeMetadata: func(in []byte) (any, error) { return EncodeMetadata(in) },
	OpDecodeMetadata: func(in []byte) (any, error) { return DecodeMetadata(in) },
	OpTemplateInfo:   func(in []byte) (any, error) { return TemplateInfo(in) },
	OpValidateXpub:   func(in []byte) (any, error) { return ValidateXpub(in) },
}

// Operations lists the structured operation names in sorted order.
func Operations() []string {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call runs the named operation and renders its response document.
func Call(op string, input []byte) []byte {
	h, ok := handlers[op]
	if !ok {
		return ErrorResponse(vaulterrors.InvalidInput("unknown operation %q", op))
	}
	return Respond(h(input))
}

func decodeRequest(input []byte, v any) error {
	if len(input) == 0 {
		return vaulterrors.InvalidInput("empty request")
	}
	if err := json.Unmarshal(input, v); err != nil {
		return vaulterrors.From(err)
	}
	return nil
}

// EncodeMetadataResponse carries the committed bytes of a metadata record.
type EncodeMetadataResponse struct {
	MetadataHex string `json:"metadata_hex"`
	Length      int    `json:"length"`
}

// EncodeMetadata encodes a VaultMetadata JSON document.
func EncodeMetadata(input []byte) (*EncodeMetadataResponse, error) {
	var m types.VaultMetadata
	if err := decodeRequest(input, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	data, err := codec.Encode(m)
	if err != nil {
		return nil, err
	}
	return &EncodeMetadataResponse{MetadataHex: hex.EncodeToString(data), Length: len(data)}, nil
}

// DecodeMetadataRequest carries hex encoded metadata bytes.
type DecodeMetadataRequest struct {
	MetadataHex string `json:"metadata_hex"`
}

// DecodeMetadata decodes hex metadata bytes into a VaultMetadata.
func DecodeMetadata(input []byte) (*types.VaultMetadata, error) {
	var req DecodeMetadataRequest
	if err := decodeRequest(input, &req); err != nil {
		return nil, err
	}

	data, err := hex.DecodeString(req.MetadataHex)
	if err != nil {
		return nil, vaulterrors.InvalidInput("metadata_hex: %s", err.Error())
	}

	m, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// TemplateInfoResponse describes a resolved template.
type TemplateInfoResponse struct {
	Type         string              `json:"type"`
	TemplateID   string              `json:"template_id"`
	DelayBlocks  uint32              `json:"delay_blocks"`
	RecoveryType *types.RecoveryType `json:"recovery_type,omitempty"`
}

// TemplateInfo resolves a template JSON document, applying named defaults.
func TemplateInfo(input []byte) (*TemplateInfoResponse, error) {
	if len(input) == 0 {
		return nil, vaulterrors.InvalidInput("empty request")
	}
	tmpl, err := types.UnmarshalTemplate(input)
	if err != nil {
		return nil, err
	}

	resp := &TemplateInfoResponse{
		Type:        tmpl.Type(),
		TemplateID:  tmpl.TemplateID(),
		DelayBlocks: tmpl.DelayBlocks(),
	}
	if custom, ok := tmpl.(types.CustomTemplate); ok {
		recovery := custom.Recovery
		resp.RecoveryType = &recovery
	}
	return resp, nil
}

// ValidateXpubRequest names an extended public key and the network it must belong to.
// The network is given by name or numeric code.
type ValidateXpubRequest struct {
	Xpub    string         `json:"xpub"`
	Network *types.Network `json:"network"`
}

// ValidateXpubResponse reports the Taproot internal key of a valid xpub.
type ValidateXpubResponse struct {
	Network  types.Network `json:"network"`
	XOnlyKey string        `json:"x_only_key"`
}

// ValidateXpub checks an extended public key against a network.
func ValidateXpub(input []byte) (*ValidateXpubResponse, error) {
	var req ValidateXpubRequest
	if err := decodeRequest(input, &req); err != nil {
		return nil, err
	}
	if req.Network == nil {
		return nil, vaulterrors.InvalidInput("network is required")
	}

	xpub, err := keys.ParseXpub(req.Xpub, *req.Network)
	if err != nil {
		return nil, err
	}
	xonly, err := xpub.XOnlyKey()
	if err != nil {
		return nil, err
	}
	return &ValidateXpubResponse{Network: xpub.Network(), XOnlyKey: hex.EncodeToString(xonly)}, nil
}
