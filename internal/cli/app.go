// Package cli implements vaultctl, an operator tool for inspecting vault templates,
// metadata commitments and extended public keys.
package cli

import (
	"context"
	"fmt"
	"io"

	"cosmossdk.io/log"
	ucli "github.com/urfave/cli/v3"

	"github.com/sonr-io/vaultcore/ffi"
	pkgconfig "github.com/sonr-io/vaultcore/pkg/config"
)

// ConfigEnv names the environment variable holding the config file path.
const ConfigEnv = "VAULTCTL_CONFIG"

// App carries the state shared by vaultctl commands once the root command has loaded
// its configuration.
type App struct {
	cfg    *Config
	logger log.Logger
	stderr io.Writer
}

// NewCommand builds the vaultctl command tree writing to stdout and stderr.
func NewCommand(stdout, stderr io.Writer) *ucli.Command {
	app := &App{
		cfg:    NewDefaultConfig(),
		logger: log.NewNopLogger(),
		stderr: stderr,
	}

	return &ucli.Command{
		Name:      "vaultctl",
		Usage:     "Inspect Bitcoin vault templates, metadata commitments and extended keys",
		Version:   ffi.Version(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file; built-in defaults are used when it does not exist",
				Value:   "vaultctl.yaml",
				Sources: ucli.EnvVars(ConfigEnv),
			},
		},
		Before: app.before,
		Commands: []*ucli.Command{
			app.versionCommand(),
			app.networksCommand(),
			app.templateCommand(),
			app.encodeCommand(),
			app.decodeCommand(),
			app.xpubCommand(),
		},
	}
}

func (a *App) before(ctx context.Context, cmd *ucli.Command) (context.Context, error) {
	configPath := cmd.String("config")
	if err := pkgconfig.LoadWithDefaults(configPath, a.cfg); err != nil {
		return ctx, fmt.Errorf("failed to load config: %w", err)
	}

	opts := []log.Option{log.LevelOption(a.cfg.Level()), log.ColorOption(false)}
	if a.cfg.LogJSON {
		opts = append(opts, log.OutputJSONOption())
	}
	a.logger = log.NewLogger(a.stderr, opts...).With("module", "vaultctl")
	a.logger.Debug("configuration loaded", "path", configPath, "network", a.cfg.Network)
	return ctx, nil
}
