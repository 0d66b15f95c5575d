package command

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/wallet-core/internal/app"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/config"
	"github/chapool/wallet-core/internal/registry"
)

const (
	CoinFlag       = "coin"
	DerivationFlag = "derivation"
)

var ErrUnknownCoin = errors.New("unknown coin")

// AppFunc is the body of a subcommand that needs the App.
type AppFunc func(ctx context.Context, cmd *cobra.Command, args []string, a *app.App) error

// AppRunE loads the configuration held by v and runs f through WithApp.
func AppRunE(v *viper.Viper, f AppFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v)
		if err != nil {
			return err
		}

		return WithApp(cmd.Context(), cfg, func(ctx context.Context, a *app.App) error {
			return f(ctx, cmd, args, a)
		})
	}
}

// AddCoinFlag registers the required --coin flag.
func AddCoinFlag(cmd *cobra.Command) {
	cmd.Flags().String(CoinFlag, "", "Coin id (e.g. ethereum) or SLIP-44 coin type (e.g. 60)")
	_ = cmd.MarkFlagRequired(CoinFlag)
}

// AddDerivationFlag registers the --derivation flag.
func AddDerivationFlag(cmd *cobra.Command) {
	cmd.Flags().Uint32(DerivationFlag, 0, "Derivation index of the coin, 0 is the default derivation")
}

// CoinFromFlags resolves the --coin flag against reg.
func CoinFromFlags(cmd *cobra.Command, reg *registry.Registry) (*registry.CoinItem, error) {
	value, err := cmd.Flags().GetString(CoinFlag)
	if err != nil {
		return nil, err
	}
	return ParseCoin(reg, value)
}

// ParseCoin accepts a registry id or a numeric coin type.
func ParseCoin(reg *registry.Registry, value string) (*registry.CoinItem, error) {
	if coin, ok := reg.CoinByID(value); ok {
		return coin, nil
	}

	coinType, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownCoin, "%q", value)
	}

	coin, ok := reg.CoinByType(uint32(coinType))
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCoin, "coin type %d", coinType)
	}
	return coin, nil
}

// DerivationFromFlags reads the --derivation flag.
func DerivationFromFlags(cmd *cobra.Command) (coinentry.Derivation, error) {
	raw, err := cmd.Flags().GetUint32(DerivationFlag)
	if err != nil {
		return 0, err
	}

	derivation, ok := coinentry.DerivationFromRaw(raw)
	if !ok {
		return 0, errors.Errorf("invalid derivation %d", raw)
	}
	return derivation, nil
}
