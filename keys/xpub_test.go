package keys

import (
	"encoding/hex"
	"testing"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vaulterrors "github.com/sonr-io/vaultcore/errors"
	"github.com/sonr-io/vaultcore/types"
)

// BIP32 test vector 1 master key, serialized for mainnet and testnet.
const (
	masterXpub = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"
	masterTpub = "tpubD6NzVbkrYhZ4XgiXtGrdW5XDAPFCL9h7we1vwNCpn8tGbBcgfVYjXyhWo4E1xkh56hjod1RhGjxbaTLV3X4FyWuejifB9jusQ46QzG87VKp"
	masterXprv = "xprv9s21ZrQH143K3QTDL4LXw2F7HEK3wJUD2nW2nRk4stbPy6cq3jPPqjiChkVvvNKmPGJxWUtg6LnF5kejMRNNU3TGtRBeJgk33yuGBxrMPHi"

	masterPubHex = "0339a36013301597daef41fbe593a02cc513d0b55527ec2df1050e2e8ff49c85c2"
)

func TestParseXpub(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		network types.Network
	}{
		{"mainnet", masterXpub, types.Mainnet},
		{"testnet", masterTpub, types.Testnet},
		{"signet shares testnet versions", masterTpub, types.Signet},
		{"regtest shares testnet versions", masterTpub, types.Regtest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := ParseXpub(tt.key, tt.network)
			require.NoError(t, err)
			assert.Equal(t, tt.network, x.Network())
			assert.Equal(t, uint8(0), x.Depth())
			assert.Equal(t, tt.key, x.String())

			pub, err := x.PublicKey()
			require.NoError(t, err)
			assert.Equal(t, masterPubHex, hex.EncodeToString(pub))

			xonly, err := x.XOnlyKey()
			require.NoError(t, err)
			assert.Len(t, xonly, 32)
			assert.Equal(t, masterPubHex[2:], hex.EncodeToString(xonly))
		})
	}
}

func TestParseXpubRejects(t *testing.T) {
	badChecksum := masterXpub[:len(masterXpub)-1] + "9"

	tests := []struct {
		name    string
		key     string
		network types.Network
		kind    error
		message string
	}{
		{"empty", "", types.Mainnet, vaulterrors.ErrInvalidXpub, ""},
		{"garbage", "not-an-xpub", types.Mainnet, vaulterrors.ErrInvalidXpub, ""},
		{"bad checksum", badChecksum, types.Mainnet, vaulterrors.ErrInvalidXpub, ""},
		{"private key", masterXprv, types.Mainnet, vaulterrors.ErrInvalidXpub, "extended private key"},
		{"mainnet key on testnet", masterXpub, types.Testnet, vaulterrors.ErrNetworkMismatch, "Invalid network: expected testnet, got mainnet"},
		{"mainnet key on regtest", masterXpub, types.Regtest, vaulterrors.ErrNetworkMismatch, "Invalid network: expected regtest, got mainnet"},
		{"testnet key on mainnet", masterTpub, types.Mainnet, vaulterrors.ErrNetworkMismatch, "Invalid network: expected mainnet, got testnet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, err := ParseXpub(tt.key, tt.network)
			require.Error(t, err)
			assert.Nil(t, x)
			assert.ErrorIs(t, err, tt.kind)
			assert.True(t, vaulterrors.IsValidationError(err))
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func TestParseXpubMismatchFields(t *testing.T) {
	_, err := ParseXpub(masterTpub, types.Mainnet)

	var verr *vaulterrors.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "mainnet", verr.Expected)
	assert.Equal(t, "testnet", verr.Actual)
	assert.Equal(t, int32(1003), verr.Code())
}

func TestXpubChild(t *testing.T) {
	tests := []struct {
		index uint32
		pub   string
	}{
		{0, "027c4b09ffb985c298afe7e5813266cbfcb7780b480ac294b0b43dc21f2be3d13c"},
		{42, "03b09707ac82dafc0fcc17c1485a5fb12295d4f17985a088e6d02d55b21a1271fe"},
	}

	for _, key := range []string{masterXpub, masterTpub} {
		network := types.Mainnet
		if key == masterTpub {
			network = types.Testnet
		}
		x, err := ParseXpub(key, network)
		require.NoError(t, err)

		for _, tt := range tests {
			child, err := x.Child(tt.index)
			require.NoError(t, err)
			assert.Equal(t, uint8(1), child.Depth())
			assert.Equal(t, network, child.Network())

			pub, err := child.PublicKey()
			require.NoError(t, err)
			assert.Equal(t, tt.pub, hex.EncodeToString(pub))
		}
	}
}

func TestXpubChildRejectsHardened(t *testing.T) {
	x, err := ParseXpub(masterXpub, types.Mainnet)
	require.NoError(t, err)

	_, err = x.Child(hdkeychain.HardenedKeyStart)
	require.Error(t, err)
	assert.ErrorIs(t, err, vaulterrors.ErrDerivation)
	assert.Equal(t, int32(3001), vaulterrors.Code(err))
}
