// Package errors defines the closed error taxonomy shared by every vaultcore package.
//
// Each kind is registered once with a stable numeric code. Codes are grouped by range:
// 1xxx validation, 2xxx transaction construction and policy, 3xxx derivation and metadata,
// 4xxx serialization and input. Callers across the process boundary dispatch on the code,
// never on the message text, so a code must never be reassigned.
package errors

import (
	"errors"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
)

// Codespace is the registration namespace for all vaultcore errors.
const Codespace = "vault"

// Stable error codes.
const (
	// Validation errors
	CodeInvalidXpub     uint32 = 1001
	CodeInvalidAddress  uint32 = 1002
	CodeNetworkMismatch uint32 = 1003

	// Transaction construction and policy errors
	CodePsbt              uint32 = 2001
	CodeInsufficientFunds uint32 = 2002
	CodePolicyViolation   uint32 = 2003

	// Derivation and metadata errors
	CodeDerivation uint32 = 3001
	CodeMetadata   uint32 = 3002

	// Serialization and input errors
	CodeSerialization uint32 = 4001
	CodeInvalidInput  uint32 = 4002
)

var (
	// Validation errors
	ErrInvalidXpub     = sdkerrors.Register(Codespace, CodeInvalidXpub, "invalid xpub format")
	ErrInvalidAddress  = sdkerrors.Register(Codespace, CodeInvalidAddress, "invalid address")
	ErrNetworkMismatch = sdkerrors.Register(Codespace, CodeNetworkMismatch, "network mismatch")

	// Transaction construction and policy errors
	ErrPsbt              = sdkerrors.Register(Codespace, CodePsbt, "PSBT building failed")
	ErrInsufficientFunds = sdkerrors.Register(Codespace, CodeInsufficientFunds, "insufficient funds")
	ErrPolicyViolation   = sdkerrors.Register(Codespace, CodePolicyViolation, "policy violation")

	// Derivation and metadata errors
	ErrDerivation = sdkerrors.Register(Codespace, CodeDerivation, "key derivation failed")
	ErrMetadata   = sdkerrors.Register(Codespace, CodeMetadata, "invalid metadata encoding")

	// Serialization and input errors
	ErrSerialization = sdkerrors.Register(Codespace, CodeSerialization, "serialization error")
	ErrInvalidInput  = sdkerrors.Register(Codespace, CodeInvalidInput, "invalid input")
)

// Error is a single instance of one taxonomy kind together with the data needed to
// render its message. It unwraps to the registered kind, so errors.Is(err, ErrMetadata)
// holds for any metadata failure.
type Error struct {
	kind   *sdkerrors.Error
	detail string

	// NetworkMismatch
	Expected string
	Actual   string

	// InsufficientFunds, in satoshis
	Needed    uint64
	Available uint64
}

// Error renders the human readable message for the kind.
func (e *Error) Error() string {
	switch e.kind {
	case ErrInvalidXpub:
		return fmt.Sprintf("Invalid xpub format: %s", e.detail)
	case ErrInvalidAddress:
		return fmt.Sprintf("Invalid address: %s", e.detail)
	case ErrNetworkMismatch:
		return fmt.Sprintf("Invalid network: expected %s, got %s", e.Expected, e.Actual)
	case ErrPsbt:
		return fmt.Sprintf("PSBT building failed: %s", e.detail)
	case ErrInsufficientFunds:
		return fmt.Sprintf("Insufficient funds: need %d sats, have %d sats", e.Needed, e.Available)
	case ErrPolicyViolation:
		return fmt.Sprintf("Policy violation: %s", e.detail)
	case ErrDerivation:
		return fmt.Sprintf("Key derivation failed: %s", e.detail)
	case ErrMetadata:
		return fmt.Sprintf("Invalid metadata encoding: %s", e.detail)
	case ErrSerialization:
		return fmt.Sprintf("Serialization error: %s", e.detail)
	default:
		return fmt.Sprintf("Invalid input: %s", e.detail)
	}
}

// Unwrap returns the registered kind.
func (e *Error) Unwrap() error {
	return e.kind
}

// Kind returns the registered root error for this instance.
func (e *Error) Kind() *sdkerrors.Error {
	return e.kind
}

// Detail returns the kind specific detail text, empty for structured kinds.
func (e *Error) Detail() string {
	return e.detail
}

// Code returns the stable numeric code of the kind.
func (e *Error) Code() int32 {
	return int32(e.kind.ABCICode())
}

func newError(kind *sdkerrors.Error, format string, args ...any) *Error {
	return &Error{kind: kind, detail: fmt.Sprintf(format, args...)}
}

// InvalidXpub reports an extended public key that could not be decoded or used.
func InvalidXpub(format string, args ...any) *Error {
	return newError(ErrInvalidXpub, format, args...)
}

// InvalidAddress reports a destination address that failed validation.
func InvalidAddress(format string, args ...any) *Error {
	return newError(ErrInvalidAddress, format, args...)
}

// NetworkMismatch reports that an input belongs to a different chain than expected.
func NetworkMismatch(expected, actual string) *Error {
	return &Error{kind: ErrNetworkMismatch, Expected: expected, Actual: actual}
}

// Psbt reports a transaction assembly failure.
func Psbt(format string, args ...any) *Error {
	return newError(ErrPsbt, format, args...)
}

// InsufficientFunds reports a spend that needs more than is available.
func InsufficientFunds(needed, available uint64) *Error {
	return &Error{kind: ErrInsufficientFunds, Needed: needed, Available: available}
}

// PolicyViolation reports a request rejected by a vault spending policy.
func PolicyViolation(format string, args ...any) *Error {
	return newError(ErrPolicyViolation, format, args...)
}

// Derivation reports a key derivation failure.
func Derivation(format string, args ...any) *Error {
	return newError(ErrDerivation, format, args...)
}

// Metadata reports malformed vault metadata.
func Metadata(format string, args ...any) *Error {
	return newError(ErrMetadata, format, args...)
}

// Serialization reports a payload that could not be serialized or parsed.
func Serialization(format string, args ...any) *Error {
	return newError(ErrSerialization, format, args...)
}

// InvalidInput reports a caller supplied value outside the accepted domain.
func InvalidInput(format string, args ...any) *Error {
	return newError(ErrInvalidInput, format, args...)
}

// From coerces err into the taxonomy. Errors that already carry a kind are returned
// unchanged; anything else is reported as a serialization error. From(nil) is nil.
func From(err error) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return e
	}

	var root *sdkerrors.Error
	if errors.As(err, &root) && root.Codespace() == Codespace {
		return &Error{kind: root, detail: err.Error()}
	}

	return Serialization("%s", err.Error())
}

// Code extracts the stable code from err, or 0 when err is nil or foreign.
func Code(err error) int32 {
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}

	var root *sdkerrors.Error
	if errors.As(err, &root) && root.Codespace() == Codespace {
		return int32(root.ABCICode())
	}
	return 0
}

func inRange(err error, lo, hi int32) bool {
	code := Code(err)
	return code >= lo && code < hi
}

// IsValidationError returns true for 1xxx errors.
func IsValidationError(err error) bool {
	return inRange(err, 1000, 2000)
}

// IsTransactionError returns true for 2xxx errors.
func IsTransactionError(err error) bool {
	return inRange(err, 2000, 3000)
}

// IsDerivationError returns true for 3xxx errors.
func IsDerivationError(err error) bool {
	return inRange(err, 3000, 4000)
}

// IsSerializationError returns true for 4xxx errors.
func IsSerializationError(err error) bool {
	return inRange(err, 4000, 5000)
}
