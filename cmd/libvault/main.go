//go:build cgo

package main

/*
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
*/
import "C"

import (
	"unsafe"

	"github.com/sonr-io/vaultcore/ffi"
)

// Every *C.char returned from this library is allocated with malloc and is owned by the
// caller, who must release it exactly once with vault_free_string.

//export vault_version
func vault_version() *C.char {
	return (*C.char)(version())
}

//export vault_init
func vault_init(network C.int32_t) C.int32_t {
	return C.int32_t(ffi.Init(int32(network)))
}

//export vault_free_string
func vault_free_string(s *C.char) {
	freeString(unsafe.Pointer(s))
}

//export vault_encode_metadata
func vault_encode_metadata(request *C.char) *C.char {
	return (*C.char)(call(ffi.OpEncodeMetadata, unsafe.Pointer(request)))
}

//export vault_decode_metadata
func vault_decode_metadata(request *C.char) *C.char {
	return (*C.char)(call(ffi.OpDecodeMetadata, unsafe.Pointer(request)))
}

//export vault_template_info
func vault_template_info(request *C.char) *C.char {
	return (*C.char)(call(ffi.OpTemplateInfo, unsafe.Pointer(request)))
}

//export vault_validate_xpub
func vault_validate_xpub(request *C.char) *C.char {
	return (*C.char)(call(ffi.OpValidateXpub, unsafe.Pointer(request)))
}

// version returns an owned C copy of the library version.
func version() unsafe.Pointer {
	return cString(ffi.Version())
}

// freeString releases a string returned by this library. A nil handle is ignored.
func freeString(p unsafe.Pointer) {
	if p == nil {
		return
	}
	C.free(p)
}

// call runs op over a NUL terminated request and returns an owned C response.
func call(op string, request unsafe.Pointer) unsafe.Pointer {
	var input []byte
	if request != nil {
		input = C.GoBytes(request, C.int(C.strlen((*C.char)(request))))
	}
	return unsafe.Pointer(C.CString(handle(op, input, request == nil)))
}

// cString allocates a C copy of s, which the caller releases with freeString.
func cString(s string) unsafe.Pointer {
	return unsafe.Pointer(C.CString(cSafe(s)))
}

// goString copies a NUL terminated C string into Go memory.
func goString(p unsafe.Pointer) string {
	return C.GoString((*C.char)(p))
}
