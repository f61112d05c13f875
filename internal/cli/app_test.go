package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vaulterrors "github.com/sonr-io/vaultcore/errors"
)

const (
	masterXpub = "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8"
	masterTpub = "tpubD6NzVbkrYhZ4XgiXtGrdW5XDAPFCL9h7we1vwNCpn8tGbBcgfVYjXyhWo4E1xkh56hjod1RhGjxbaTLV3X4FyWuejifB9jusQ46QzG87VKp"

	savingsHex = "010a736176696e67735f7631f0030000030001020000350c002a000000"

	savingsJSON = `{
		"version": 1,
		"template_id": "savings_v1",
		"delay_blocks": 1008,
		"destination_indices": [0, 1, 2],
		"recovery_type": "emergency_key",
		"created_at_block": 800000,
		"vault_index": 42
	}`
)

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes vaultctl with the given config file contents; an empty config means no
// file exists.
func run(t *testing.T, config string, args ...string) result {
	t.Helper()

	path := filepath.Join(t.TempDir(), "vaultctl.yaml")
	if config != "" {
		require.NoError(t, os.WriteFile(path, []byte(config), 0o600))
	}

	var stdout, stderr bytes.Buffer
	cmd := NewCommand(&stdout, &stderr)
	err := cmd.Run(context.Background(), append([]string{"vaultctl", "--config", path}, args...))
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestVersionCommand(t *testing.T) {
	r := run(t, "", "version")
	require.NoError(t, r.err)
	assert.Equal(t, "0.1.0\n", r.stdout)
}

func TestNetworksCommand(t *testing.T) {
	r := run(t, "", "networks")
	require.NoError(t, r.err)
	assert.Equal(t, "0\tmainnet\tmainnet\n1\ttestnet\ttestnet3\n2\tsignet\tsignet\n3\tregtest\tregtest\n", r.stdout)
}

func TestTemplateCommand(t *testing.T) {
	tests := []struct {
		name   string
		config string
		args   []string
		want   string
	}{
		{"configured default", "", nil, `{"type":"savings","template_id":"savings_v1","delay_blocks":1008}`},
		{"configured spending", "template: spending\n", nil, `{"type":"spending","template_id":"spending_v1","delay_blocks":144}`},
		{"delay override", "", []string{"--delay", "2016"}, `{"type":"savings","template_id":"savings_v1","delay_blocks":2016}`},
		{
			"custom",
			"",
			[]string{"--template", "custom", "--delay", "4320", "--recovery", "multi_sig"},
			`{"type":"custom","template_id":"custom_v1","delay_blocks":4320,"recovery_type":"multi_sig"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, tt.config, append([]string{"template"}, tt.args...)...)
			require.NoError(t, r.err)
			assert.JSONEq(t, tt.want, r.stdout)
		})
	}

	r := run(t, "", "template", "--template", "custom", "--delay", "10")
	assert.ErrorIs(t, r.err, vaulterrors.ErrInvalidInput)
}

func TestEncodeCommand(t *testing.T) {
	args := []string{"encode", "-d", "0", "-d", "1", "-d", "2", "--created-at", "800000", "--vault-index", "42"}

	r := run(t, "", args...)
	require.NoError(t, r.err)
	assert.Equal(t, "f"+savingsHex+"\n", r.stdout)

	r = run(t, "output_encoding: base58btc\n", args...)
	require.NoError(t, r.err)
	assert.True(t, strings.HasPrefix(r.stdout, "z"), r.stdout)

	decoded := run(t, "", "decode", strings.TrimSpace(r.stdout))
	require.NoError(t, decoded.err)
	assert.JSONEq(t, savingsJSON, decoded.stdout)
}

func TestEncodeCommandRejects(t *testing.T) {
	r := run(t, "", "encode", "-d", "256")
	assert.ErrorIs(t, r.err, vaulterrors.ErrInvalidInput)

	r = run(t, "", "encode", "--vault-index", "4294967296")
	assert.ErrorIs(t, r.err, vaulterrors.ErrInvalidInput)

	r = run(t, "", "encode", "--recovery", "social")
	assert.ErrorIs(t, r.err, vaulterrors.ErrInvalidInput)
}

func TestEncodeCommandLogs(t *testing.T) {
	r := run(t, "log_json: true\n", "encode")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, `"metadata encoded"`)
	assert.Contains(t, r.stderr, `"module":"vaultctl"`)

	quiet := run(t, "log_level: error\n", "encode")
	require.NoError(t, quiet.err)
	assert.Empty(t, quiet.stderr)
}

func TestDecodeCommand(t *testing.T) {
	for _, input := range []string{savingsHex, "f" + savingsHex} {
		r := run(t, "", "decode", input)
		require.NoError(t, r.err)
		assert.JSONEq(t, savingsJSON, r.stdout)
	}

	r := run(t, "", "decode", savingsHex[:30])
	require.Error(t, r.err)
	assert.ErrorIs(t, r.err, vaulterrors.ErrMetadata)

	r = run(t, "", "decode", "not bytes")
	assert.ErrorIs(t, r.err, vaulterrors.ErrInvalidInput)

	r = run(t, "", "decode")
	assert.ErrorIs(t, r.err, vaulterrors.ErrInvalidInput)
}

func TestXpubCommand(t *testing.T) {
	r := run(t, "", "xpub", masterTpub)
	require.NoError(t, r.err)
	assert.JSONEq(t, `{
		"network": "testnet",
		"x_only_key": "39a36013301597daef41fbe593a02cc513d0b55527ec2df1050e2e8ff49c85c2"
	}`, r.stdout)

	r = run(t, "", "xpub", "--network", "mainnet", "--child", "42", masterXpub)
	require.NoError(t, r.err)
	assert.JSONEq(t, `{
		"network": "mainnet",
		"x_only_key": "b09707ac82dafc0fcc17c1485a5fb12295d4f17985a088e6d02d55b21a1271fe"
	}`, r.stdout)

	r = run(t, "network: regtest\n", "xpub", masterXpub)
	require.Error(t, r.err)
	assert.ErrorIs(t, r.err, vaulterrors.ErrNetworkMismatch)
	assert.EqualError(t, r.err, "Invalid network: expected regtest, got mainnet")
}

func TestInvalidConfig(t *testing.T) {
	r := run(t, "network: moon\n", "version")
	require.Error(t, r.err)
	assert.Contains(t, r.err.Error(), "config validation failed")
	assert.Contains(t, r.err.Error(), "network: must be a valid value")
}

func TestConfigFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("network: ${VAULTCTL_TEST_NETWORK}\n"), 0o600))
	t.Setenv("VAULTCTL_TEST_NETWORK", "mainnet")
	t.Setenv(ConfigEnv, path)

	var stdout, stderr bytes.Buffer
	err := NewCommand(&stdout, &stderr).Run(context.Background(), []string{"vaultctl", "xpub", masterXpub})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), `"network": "mainnet"`)
}
