// Package keys inspects the extended public keys a vault is built from.
package keys

import (
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"

	vaulterrors "github.com/sonr-io/vaultcore/errors"
	"github.com/sonr-io/vaultcore/types"
)

// Xpub is a decoded BIP32 extended public key bound to the network it was checked against.
type Xpub struct {
	key     *hdkeychain.ExtendedKey
	network types.Network
}

// ParseXpub decodes a base58 extended public key and checks that its version bytes
// belong to network. Signet and regtest share the testnet version bytes.
func ParseXpub(s string, network types.Network) (*Xpub, error) {
	params := network.Params()

	key, err := hdkeychain.NewKeyFromString(s)
	if err != nil {
		return nil, vaulterrors.InvalidXpub("%s", err.Error())
	}
	if key.IsPrivate() {
		return nil, vaulterrors.InvalidXpub("extended private key given, expected a public key")
	}

	if !key.IsForNet(params) {
		actual, ok := versionNetwork(key)
		if !ok {
			return nil, vaulterrors.InvalidXpub("unrecognized version bytes %x", key.Version())
		}
		return nil, vaulterrors.NetworkMismatch(network.String(), actual)
	}

	if _, err := key.ECPubKey(); err != nil {
		return nil, vaulterrors.Derivation("%s", err.Error())
	}
	return &Xpub{key: key, network: network}, nil
}

// versionNetwork names the chain family an extended key's version bytes belong to.
func versionNetwork(key *hdkeychain.ExtendedKey) (string, bool) {
	switch {
	case key.IsForNet(&chaincfg.MainNetParams):
		return types.Mainnet.String(), true
	case key.IsForNet(&chaincfg.TestNet3Params):
		return types.Testnet.String(), true
	default:
		return "", false
	}
}

// Network returns the network the key was validated for.
func (x *Xpub) Network() types.Network {
	return x.network
}

// Depth returns the BIP32 depth of the key.
func (x *Xpub) Depth() uint8 {
	return x.key.Depth()
}

// Child derives the non-hardened child at index, the per-vault key for a vault_index.
func (x *Xpub) Child(index uint32) (*Xpub, error) {
	if index >= hdkeychain.HardenedKeyStart {
		return nil, vaulterrors.Derivation("hardened index %d cannot be derived from a public key", index)
	}
	child, err := x.key.Derive(index)
	if err != nil {
		return nil, vaulterrors.Derivation("child %d: %s", index, err.Error())
	}
	return &Xpub{key: child, network: x.network}, nil
}

// PublicKey returns the 33 byte compressed public key.
func (x *Xpub) PublicKey() ([]byte, error) {
	pub, err := x.key.ECPubKey()
	if err != nil {
		return nil, vaulterrors.Derivation("%s", err.Error())
	}
	return pub.SerializeCompressed(), nil
}

// XOnlyKey returns the 32 byte BIP340 form of the public key, as used for a Taproot
// internal key.
func (x *Xpub) XOnlyKey() ([]byte, error) {
	pub, err := x.key.ECPubKey()
	if err != nil {
		return nil, vaulterrors.Derivation("%s", err.Error())
	}
	return schnorr.SerializePubKey(pub), nil
}

func (x *Xpub) String() string {
	return x.key.String()
}
