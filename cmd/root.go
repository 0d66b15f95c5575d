package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/wallet-core/cmd/address"
	"github/chapool/wallet-core/cmd/coins"
	"github/chapool/wallet-core/cmd/key"
	"github/chapool/wallet-core/cmd/keystore"
	"github/chapool/wallet-core/cmd/tx"
	"github/chapool/wallet-core/internal/config"
)

// NewRoot returns the coinctl command tree bound to v.
func NewRoot(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   config.ModuleName,
		Short: "Multi-chain address and transaction signing tool",
		Long: fmt.Sprintf(`%v

Parses and derives addresses, signs transactions locally and prepares or compiles
transactions for external signers. Configuration is read from flags, from
%v_ prefixed environment variables and from an optional .env file.`, config.ModuleName, config.EnvPrefix),
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error, disabled)")
	flags.Bool("pretty", false, "Human readable log output")
	flags.String("registry", "", "Path of a YAML or TOML coin registry, empty uses the embedded one")
	flags.Bool("metrics", false, "Write the operation counters to stderr when done")

	_ = v.BindPFlag("logger.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("logger.pretty_print_console", flags.Lookup("pretty"))
	_ = v.BindPFlag("registry.path", flags.Lookup("registry"))
	_ = v.BindPFlag("metrics.enabled", flags.Lookup("metrics"))

	// attach the subcommands
	rootCmd.AddCommand(
		coins.New(v),
		address.New(v),
		tx.New(v),
		key.New(v),
		keystore.New(v),
	)

	return rootCmd
}

// Execute builds the command tree and runs it. This is called by main.main().
func Execute() {
	config.DotEnvTryLoad(".env")

	if err := NewRoot(config.NewViper()).Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
