// Package config loads the coinctl configuration from flags, environment
// variables (prefix COINCTL_) and an optional .env file.
package config

import (
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	ModuleName = "coinctl"
	EnvPrefix  = "COINCTL"
)

type Logger struct {
	Level              string `mapstructure:"level" json:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	PrettyPrintConsole bool   `mapstructure:"pretty_print_console" json:"prettyPrintConsole"`
}

// ZerologLevel defaults to info for an empty or unknown level.
func (l Logger) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}

type Registry struct {
	// Path of a YAML or TOML registry file. Empty uses the embedded registry.
	Path string `mapstructure:"path" json:"path"`
}

type Keystore struct {
	Path string `mapstructure:"path" json:"path"`
	// LightScrypt uses cheap KDF parameters. Only meant for development.
	LightScrypt bool `mapstructure:"light_scrypt" json:"lightScrypt"`
}

type Metrics struct {
	// Enabled writes the collected counters to stderr after each command.
	Enabled bool `mapstructure:"enabled" json:"enabled"`
}

type Config struct {
	Logger   Logger   `mapstructure:"logger" json:"logger"`
	Registry Registry `mapstructure:"registry" json:"registry"`
	Keystore Keystore `mapstructure:"keystore" json:"keystore"`
	Metrics  Metrics  `mapstructure:"metrics" json:"metrics"`
}

// SetDefaults registers every key so environment variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.pretty_print_console", false)
	v.SetDefault("registry.path", "")
	v.SetDefault("keystore.path", "")
	v.SetDefault("keystore.light_scrypt", false)
	v.SetDefault("metrics.enabled", false)
}

// NewViper returns a viper instance bound to the COINCTL_ environment.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// DefaultServiceConfigFromEnv loads the configuration from the environment,
// after trying the .env file in the working directory.
func DefaultServiceConfigFromEnv() Config {
	DotEnvTryLoad(".env")

	cfg, err := Load(NewViper())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	return cfg
}

// DotEnvTryLoad loads path into the environment without overriding variables
// that are already set. A missing file is not an error.
func DotEnvTryLoad(path string) {
	if _, err := os.Stat(path); err != nil {
		return
	}

	if err := gotenv.Load(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to load .env file")
	}
}
