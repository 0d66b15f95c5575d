// Package command holds the helpers shared by the coinctl subcommands.
package command

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github/chapool/wallet-core/internal/app"
	"github/chapool/wallet-core/internal/config"
	"github/chapool/wallet-core/internal/util"
)

// NewSubcommandGroup returns a command that only groups subcommands and
// prints its help when invoked directly.
func NewSubcommandGroup(use string, subcommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: use + " commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(subcommands...)
	return cmd
}

// WithApp configures logging, initializes the App from cfg and runs f.
// With metrics enabled the collected counters are written to stderr afterwards.
func WithApp(ctx context.Context, cfg config.Config, f func(ctx context.Context, a *app.App) error) error {
	util.ConfigureLogger(os.Stderr, cfg.Logger.ZerologLevel(), cfg.Logger.PrettyPrintConsole)

	a, err := app.InitNewApp(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to initialize app")
	}

	logger := log.With().Str("component", config.ModuleName).Logger()
	ctx = logger.WithContext(ctx)

	runErr := f(ctx, a)

	if cfg.Metrics.Enabled {
		if err := a.WriteMetrics(os.Stderr); err != nil {
			log.Warn().Err(err).Msg("Failed to write metrics")
		}
	}

	return runErr
}
