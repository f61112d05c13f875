package cli

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/multiformats/go-multibase"
	ucli "github.com/urfave/cli/v3"

	"github.com/sonr-io/vaultcore/codec"
	vaulterrors "github.com/sonr-io/vaultcore/errors"
	"github.com/sonr-io/vaultcore/ffi"
	"github.com/sonr-io/vaultcore/keys"
	"github.com/sonr-io/vaultcore/types"
)

func (a *App) versionCommand() *ucli.Command {
	return &ucli.Command{
		Name:  "version",
		Usage: "Print the vault core library version",
		Action: func(_ context.Context, cmd *ucli.Command) error {
			_, err := fmt.Fprintln(cmd.Root().Writer, ffi.Version())
			return err
		},
	}
}

func (a *App) networksCommand() *ucli.Command {
	return &ucli.Command{
		Name:  "networks",
		Usage: "List network codes and the chain parameters they select",
		Action: func(_ context.Context, cmd *ucli.Command) error {
			for _, n := range types.Networks() {
				if _, err := fmt.Fprintf(cmd.Root().Writer, "%d\t%s\t%s\n", n.Code(), n, n.Params().Name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func templateFlags() []ucli.Flag {
	return []ucli.Flag{
		&ucli.StringFlag{Name: "template", Aliases: []string{"t"}, Usage: "savings, spending or custom; defaults to the configured template"},
		&ucli.UintFlag{Name: "delay", Usage: "delay in blocks; overrides the template default, required for custom"},
		&ucli.StringFlag{Name: "recovery", Usage: "recovery type: emergency_key, timelock_only or multi_sig"},
	}
}

func (a *App) templateCommand() *ucli.Command {
	return &ucli.Command{
		Name:  "template",
		Usage: "Resolve a vault template and print its identifier and delay",
		Flags: templateFlags(),
		Action: func(_ context.Context, cmd *ucli.Command) error {
			request, err := a.templateRequest(cmd)
			if err != nil {
				return err
			}
			info, err := ffi.TemplateInfo(request)
			if err != nil {
				return err
			}
			return writeJSON(cmd, info)
		},
	}
}

// templateRequest builds the JSON template document described by the template flags.
func (a *App) templateRequest(cmd *ucli.Command) ([]byte, error) {
	doc := map[string]any{"type": a.cfg.Template}
	if cmd.IsSet("template") {
		doc["type"] = cmd.String("template")
	}
	if cmd.IsSet("delay") {
		delay := cmd.Uint("delay")
		if delay > math.MaxUint32 {
			return nil, vaulterrors.InvalidInput("delay %d exceeds %d blocks", delay, uint64(math.MaxUint32))
		}
		doc["delay_blocks"] = delay
	}
	if cmd.IsSet("recovery") {
		doc["recovery_type"] = cmd.String("recovery")
	}
	return json.Marshal(doc)
}

func (a *App) encodeCommand() *ucli.Command {
	flags := append([]ucli.Flag{
		&ucli.UintSliceFlag{Name: "destination", Aliases: []string{"d"}, Usage: "approved destination index, repeatable"},
		&ucli.UintFlag{Name: "created-at", Usage: "block height at vault creation"},
		&ucli.UintFlag{Name: "vault-index", Usage: "derivation index of the vault"},
	}, templateFlags()...)

	return &ucli.Command{
		Name:  "encode",
		Usage: "Encode vault metadata and print it in the configured multibase encoding",
		Flags: flags,
		Action: func(_ context.Context, cmd *ucli.Command) error {
			m, err := a.metadataFromFlags(cmd)
			if err != nil {
				return err
			}
			if err := m.Validate(); err != nil {
				return err
			}
			data, err := codec.Encode(m)
			if err != nil {
				return err
			}

			enc, err := a.cfg.Encoder()
			if err != nil {
				return vaulterrors.InvalidInput("output encoding %q: %s", a.cfg.OutputEncoding, err.Error())
			}
			a.logger.Info("metadata encoded", "template_id", m.TemplateID, "length", len(data))
			_, err = fmt.Fprintln(cmd.Root().Writer, enc.Encode(data))
			return err
		},
	}
}

func (a *App) metadataFromFlags(cmd *ucli.Command) (types.VaultMetadata, error) {
	request, err := a.templateRequest(cmd)
	if err != nil {
		return types.VaultMetadata{}, err
	}
	tmpl, err := types.UnmarshalTemplate(request)
	if err != nil {
		return types.VaultMetadata{}, err
	}
	recovery := types.EmergencyKey
	if cmd.IsSet("recovery") {
		if recovery, err = types.ParseRecoveryType(cmd.String("recovery")); err != nil {
			return types.VaultMetadata{}, err
		}
	}

	var dests []byte
	for _, d := range cmd.UintSlice("destination") {
		if d > math.MaxUint8 {
			return types.VaultMetadata{}, vaulterrors.InvalidInput("destination index out of range: %d", d)
		}
		dests = append(dests, byte(d))
	}

	createdAt, err := uint32Flag(cmd, "created-at")
	if err != nil {
		return types.VaultMetadata{}, err
	}
	vaultIndex, err := uint32Flag(cmd, "vault-index")
	if err != nil {
		return types.VaultMetadata{}, err
	}
	return types.NewVaultMetadata(tmpl, recovery, dests, createdAt, vaultIndex), nil
}

func (a *App) decodeCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "decode",
		Usage:     "Decode multibase or hex metadata bytes and print them as JSON",
		ArgsUsage: "<metadata>",
		Action: func(_ context.Context, cmd *ucli.Command) error {
			if cmd.NArg() != 1 {
				return vaulterrors.InvalidInput("decode takes exactly one argument")
			}
			data, err := decodeBytes(cmd.Args().First())
			if err != nil {
				return err
			}
			m, err := codec.Decode(data)
			if err != nil {
				return err
			}
			a.logger.Debug("metadata decoded", "template_id", m.TemplateID, "input_length", len(data))
			return writeJSON(cmd, m)
		},
	}
}

// decodeBytes accepts a multibase string, falling back to bare hex.
func decodeBytes(s string) ([]byte, error) {
	if _, data, err := multibase.Decode(s); err == nil {
		return data, nil
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, vaulterrors.InvalidInput("metadata is neither multibase nor hex")
	}
	return data, nil
}

func (a *App) xpubCommand() *ucli.Command {
	return &ucli.Command{
		Name:      "xpub",
		Usage:     "Validate an extended public key and print its Taproot internal key",
		ArgsUsage: "<xpub>",
		Flags: []ucli.Flag{
			&ucli.StringFlag{Name: "network", Aliases: []string{"n"}, Usage: "expected network; defaults to the configured network"},
			&ucli.UintFlag{Name: "child", Usage: "derive the non-hardened child at this vault index"},
		},
		Action: func(_ context.Context, cmd *ucli.Command) error {
			if cmd.NArg() != 1 {
				return vaulterrors.InvalidInput("xpub takes exactly one argument")
			}

			name := a.cfg.Network
			if cmd.IsSet("network") {
				name = cmd.String("network")
			}
			network, err := types.ParseNetwork(name)
			if err != nil {
				return err
			}

			xpub, err := keys.ParseXpub(cmd.Args().First(), network)
			if err != nil {
				a.logger.Warn("xpub rejected", "network", network.String(), "code", vaulterrors.Code(err))
				return err
			}
			if cmd.IsSet("child") {
				index, err := uint32Flag(cmd, "child")
				if err != nil {
					return err
				}
				if xpub, err = xpub.Child(index); err != nil {
					return err
				}
			}

			xonly, err := xpub.XOnlyKey()
			if err != nil {
				return err
			}
			return writeJSON(cmd, &ffi.ValidateXpubResponse{Network: network, XOnlyKey: hex.EncodeToString(xonly)})
		},
	}
}

func uint32Flag(cmd *ucli.Command, name string) (uint32, error) {
	v := cmd.Uint(name)
	if v > math.MaxUint32 {
		return 0, vaulterrors.InvalidInput("%s %d exceeds %d", name, v, uint64(math.MaxUint32))
	}
	return uint32(v), nil
}

func writeJSON(cmd *ucli.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return vaulterrors.Serialization("%s", err.Error())
	}
	_, err = fmt.Fprintln(cmd.Root().Writer, string(out))
	return err
}
