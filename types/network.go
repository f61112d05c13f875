// Package types defines the vault data model: chain network selection, recovery
// mechanisms, spending policy templates and the metadata committed into a recovery leaf.
// Every value here is immutable plain data owned by its caller.
package types

import (
	"encoding/json"

	"github.com/btcsuite/btcd/chaincfg"

	vaulterrors "github.com/sonr-io/vaultcore/errors"
)

// Network selects the Bitcoin chain an operation targets. Its integer value is the
// code used across the process boundary.
type Network int32

const (
	Mainnet Network = 0
	Testnet Network = 1
	Signet  Network = 2
	Regtest Network = 3
)

var networkNames = [...]string{
	Mainnet: "mainnet",
	Testnet: "testnet",
	Signet:  "signet",
	Regtest: "regtest",
}

// Networks returns every supported network in code order.
func Networks() []Network {
	return []Network{Mainnet, Testnet, Signet, Regtest}
}

// NetworkFromCode converts a boundary integer into a Network. Only 0 through 3 are
// accepted.
func NetworkFromCode(code int32) (Network, error) {
	switch Network(code) {
	case Mainnet, Testnet, Signet, Regtest:
		return Network(code), nil
	default:
		return 0, vaulterrors.InvalidInput("Invalid network value: %d", code)
	}
}

// ParseNetwork converts a lower case network name into a Network.
func ParseNetwork(name string) (Network, error) {
	for i, n := range networkNames {
		if n == name {
			return Network(i), nil
		}
	}
	return 0, vaulterrors.InvalidInput("Invalid network name: %q", name)
}

// Code returns the boundary integer for the network.
func (n Network) Code() int32 {
	return int32(n)
}

// String returns the lower case network name.
func (n Network) String() string {
	if n < Mainnet || n > Regtest {
		return "unknown"
	}
	return networkNames[n]
}

// Params returns the btcd chain parameters for the network. Values outside the closed
// set cannot be constructed through NetworkFromCode or ParseNetwork; a raw conversion
// falls back to mainnet parameters.
func (n Network) Params() *chaincfg.Params {
	switch n {
	case Testnet:
		return &chaincfg.TestNet3Params
	case Signet:
		return &chaincfg.SigNetParams
	case Regtest:
		return &chaincfg.RegressionNetParams
	default:
		return &chaincfg.MainNetParams
	}
}

// MarshalJSON encodes the network by name.
func (n Network) MarshalJSON() ([]byte, error) {
	if n < Mainnet || n > Regtest {
		return nil, vaulterrors.Serialization("Invalid network value: %d", int32(n))
	}
	return json.Marshal(n.String())
}

// UnmarshalJSON accepts either the network name or its integer code.
func (n *Network) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseNetwork(name)
		if err != nil {
			return err
		}
		*n = parsed
		return nil
	}

	var code int32
	if err := json.Unmarshal(data, &code); err != nil {
		return vaulterrors.InvalidInput("network must be a name or an integer code")
	}
	parsed, err := NetworkFromCode(code)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
