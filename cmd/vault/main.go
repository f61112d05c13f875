//go:build wasip1

// Command vault is the vault core as an Extism plugin. Each export reads a JSON request
// from the plugin input and writes a JSON response document to the plugin output.
// Exports return 0 on success and 1 when the response is an error envelope.
package main

import (
	"fmt"

	"github.com/extism/go-pdk"

	"github.com/sonr-io/vaultcore/ffi"
)

type VersionResponse struct {
	Version string `json:"version"`
}

type InitRequest struct {
	Network int32 `json:"network"`
}

type InitResponse struct {
	Status int32 `json:"status"`
}

func main() {
	pdk.Log(pdk.LogInfo, fmt.Sprintf("vault core %s loaded", ffi.Version()))
}

//go:wasmexport vault_version
func vaultVersion() int32 {
	if err := pdk.OutputJSON(&VersionResponse{Version: ffi.Version()}); err != nil {
		pdk.SetError(fmt.Errorf("failed to write response: %w", err))
		return 1
	}
	return 0
}

//go:wasmexport vault_init
func vaultInit() int32 {
	req := &InitRequest{}
	if err := pdk.InputJSON(req); err != nil {
		pdk.SetError(fmt.Errorf("failed to parse request: %w", err))
		return 1
	}

	status := ffi.Init(req.Network)
	if status != ffi.StatusOK {
		pdk.Log(pdk.LogWarn, fmt.Sprintf("rejected network code %d", req.Network))
	}
	if err := pdk.OutputJSON(&InitResponse{Status: status}); err != nil {
		pdk.SetError(fmt.Errorf("failed to write response: %w", err))
		return 1
	}
	if status != ffi.StatusOK {
		return 1
	}
	return 0
}

//go:wasmexport encode_metadata
func encodeMetadata() int32 {
	return call(ffi.OpEncodeMetadata)
}

//go:wasmexport decode_metadata
func decodeMetadata() int32 {
	return call(ffi.OpDecodeMetadata)
}

//go:wasmexport template_info
func templateInfo() int32 {
	return call(ffi.OpTemplateInfo)
}

//go:wasmexport validate_xpub
func validateXpub() int32 {
	return call(ffi.OpValidateXpub)
}

// call runs op over the plugin input. The host owns both buffers, so nothing needs to
// be released on this side.
func call(op string) int32 {
	out := ffi.Call(op, pdk.Input())
	pdk.Output(out)
	if ffi.IsError(out) {
		pdk.Log(pdk.LogWarn, fmt.Sprintf("%s failed: %s", op, out))
		return 1
	}
	return 0
}
