package cli

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/multiformats/go-multibase"
	"github.com/rs/zerolog"

	"github.com/sonr-io/vaultcore/types"
)

// Config is the vaultctl configuration file.
type Config struct {
	// Network used when a command is not given one explicitly
	Network string `yaml:"network" json:"network"`
	// zerolog level name
	LogLevel string `yaml:"log_level" json:"log_level"`
	// Emit JSON log lines instead of console output
	LogJSON bool `yaml:"log_json" json:"log_json"`
	// Multibase encoding for metadata bytes printed by encode
	OutputEncoding string `yaml:"output_encoding" json:"output_encoding"`
	// Template used by encode when none is given
	Template string `yaml:"template" json:"template"`
}

// NewDefaultConfig returns the configuration used when no file is present.
func NewDefaultConfig() *Config {
	return &Config{
		Network:        types.Testnet.String(),
		LogLevel:       zerolog.InfoLevel.String(),
		OutputEncoding: "base16",
		Template:       "savings",
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	networks := make([]any, 0, len(types.Networks()))
	for _, n := range types.Networks() {
		networks = append(networks, n.String())
	}

	return validation.ValidateStruct(c,
		validation.Field(&c.Network, validation.Required, validation.In(networks...)),
		validation.Field(&c.LogLevel, validation.Required, validation.By(logLevel)),
		validation.Field(&c.OutputEncoding, validation.Required, validation.By(encoding)),
		validation.Field(&c.Template, validation.Required, validation.In("savings", "spending")),
	)
}

// NetworkValue resolves the configured network.
func (c *Config) NetworkValue() (types.Network, error) {
	return types.ParseNetwork(c.Network)
}

// Level resolves the configured log level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// Encoder resolves the configured output encoding.
func (c *Config) Encoder() (multibase.Encoder, error) {
	return multibase.EncoderByName(c.OutputEncoding)
}

func logLevel(value any) error {
	s, _ := value.(string)
	if _, err := zerolog.ParseLevel(strings.ToLower(s)); err != nil {
		return errors.New("must be a log level such as debug, info, warn or error")
	}
	return nil
}

func encoding(value any) error {
	s, _ := value.(string)
	if _, err := multibase.EncoderByName(s); err != nil {
		return errors.New("must be a multibase encoding name such as base16 or base58btc")
	}
	return nil
}
