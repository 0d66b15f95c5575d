package address

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/wallet-core/internal/app"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/util"
	"github/chapool/wallet-core/internal/util/command"
)

const (
	publicKeyFlag string = "pubkey"
	hrpFlag       string = "hrp"
)

func New(v *viper.Viper) *cobra.Command {
	return command.NewSubcommandGroup("address",
		newParse(v),
		newDerive(v),
	)
}

func newParse(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <address>",
		Short: "Validate an address and print its canonical form and raw bytes",
		Args:  cobra.ExactArgs(1),
		RunE:  command.AppRunE(v, parseCmdFunc),
	}

	command.AddCoinFlag(cmd)
	cmd.Flags().String(hrpFlag, "", "Address prefix, for chains with more than one address encoding")

	return cmd
}

func parseCmdFunc(ctx context.Context, cmd *cobra.Command, args []string, a *app.App) error {
	coin, err := command.CoinFromFlags(cmd, a.Registry)
	if err != nil {
		return err
	}

	var prefix *coinentry.PrefixType
	if cmd.Flags().Changed(hrpFlag) {
		hrp, _ := cmd.Flags().GetString(hrpFlag)
		prefix = &coinentry.PrefixType{Hrp: hrp}
	}

	addr, err := a.Dispatcher.ParseAddress(ctx, coin.CoinType, args[0], prefix)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), addr.String())
	fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(addr.Data()))

	return nil
}

func newDerive(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive the address of a public key",
		Args:  cobra.NoArgs,
		RunE:  command.AppRunE(v, deriveCmdFunc),
	}

	command.AddCoinFlag(cmd)
	command.AddDerivationFlag(cmd)
	cmd.Flags().String(publicKeyFlag, "", "Hex encoded public key")
	_ = cmd.MarkFlagRequired(publicKeyFlag)

	return cmd
}

func deriveCmdFunc(ctx context.Context, cmd *cobra.Command, _ []string, a *app.App) error {
	coin, err := command.CoinFromFlags(cmd, a.Registry)
	if err != nil {
		return err
	}

	derivation, err := command.DerivationFromFlags(cmd)
	if err != nil {
		return err
	}

	rawKey, _ := cmd.Flags().GetString(publicKeyFlag)
	publicKey, err := util.DecodeHex(rawKey)
	if err != nil {
		return err
	}

	addr, err := a.Dispatcher.DeriveAddress(ctx, coin.CoinType, publicKey, derivation)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), addr.String())

	return nil
}
