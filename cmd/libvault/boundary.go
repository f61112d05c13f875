// Command libvault builds the vault core as a C shared library:
//
//	go build -buildmode=c-shared -o libvault.so ./cmd/libvault
package main

import (
	"strings"
	"unicode/utf8"

	vaulterrors "github.com/sonr-io/vaultcore/errors"
	"github.com/sonr-io/vaultcore/ffi"
)

// invalidString replaces a response that cannot cross the boundary as a C string.
const invalidString = "error: invalid string"

// handle validates a raw C request and runs op on it.
func handle(op string, input []byte, null bool) string {
	if null {
		return string(ffi.ErrorResponse(vaulterrors.InvalidInput("null pointer")))
	}
	if !utf8.Valid(input) {
		return string(ffi.ErrorResponse(vaulterrors.InvalidInput("invalid utf-8 sequence")))
	}
	return cSafe(string(ffi.Call(op, input)))
}

// cSafe guards against interior NUL bytes, which would silently truncate a C string.
func cSafe(s string) string {
	if strings.IndexByte(s, 0) >= 0 {
		return invalidString
	}
	return s
}

func main() {}
