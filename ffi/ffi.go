// Package ffi is the process boundary of the vault core. It is shared by the C shared
// library in cmd/libvault and the WASM plugin in cmd/vault, neither of which contains
// logic of its own.
//
// Structured operations take a JSON request and always produce a JSON document: the
// success payload, or an error envelope
//
//	{"error": true, "code": <int>, "message": "<string>"}
//
// whose code is the stable numeric code of the error kind.
package ffi

import (
	"encoding/json"

	vaulterrors "github.com/sonr-io/vaultcore/errors"
	"github.com/sonr-io/vaultcore/types"
)

// LibraryVersion is the semantic version reported by Version.
const LibraryVersion = "0.1.0"

// Status codes returned by Init.
const (
	StatusOK      int32 = 0
	StatusInvalid int32 = -1
)

// Version returns the library's semantic version.
func Version() string {
	return LibraryVersion
}

// Init validates a network code. Nothing is retained: every later operation takes its
// network explicitly.
func Init(network int32) int32 {
	if _, err := types.NetworkFromCode(network); err != nil {
		return StatusInvalid
	}
	return StatusOK
}

// fallbackEnvelope is returned if an envelope cannot be marshaled.
const fallbackEnvelope = `{"error":true,"code":4001,"message":"Serialization error: envelope"}`

// ErrorEnvelope is the JSON form of a failed boundary call.
type ErrorEnvelope struct {
	Error   bool   `json:"error"`
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse renders err as an error envelope. It never fails.
func ErrorResponse(err error) []byte {
	e := vaulterrors.From(err)
	if e == nil {
		e = vaulterrors.Serialization("missing error")
	}

	out, mErr := json.Marshal(ErrorEnvelope{Error: true, Code: e.Code(), Message: e.Error()})
	if mErr != nil {
		return []byte(fallbackEnvelope)
	}
	return out
}

// SuccessResponse serializes v, reporting a marshal failure as a serialization error
// envelope.
func SuccessResponse(v any) []byte {
	out, err := json.Marshal(v)
	if err != nil {
		return ErrorResponse(vaulterrors.Serialization("%s", err.Error()))
	}
	return out
}

// Respond renders the outcome of an operation.
func Respond(v any, err error) []byte {
	if err != nil {
		return ErrorResponse(err)
	}
	return SuccessResponse(v)
}

// IsError reports whether a response produced by this package is an error envelope.
func IsError(response []byte) bool {
	var env struct {
		Error bool `json:"error"`
	}
	if err := json.Unmarshal(response, &env); err != nil {
		return false
	}
	return env.Error
}
