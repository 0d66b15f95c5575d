package key

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/wallet-core/internal/app"
	"github/chapool/wallet-core/internal/hd"
	"github/chapool/wallet-core/internal/util"
	"github/chapool/wallet-core/internal/util/command"
)

const (
	wordsFlag      string = "words"
	mnemonicFlag   string = "mnemonic"
	passphraseFlag string = "passphrase"
	pathFlag       string = "path"
	keystoreFlag   string = "keystore"
)

func New(v *viper.Viper) *cobra.Command {
	return command.NewSubcommandGroup("key",
		newNew(),
		newDerive(v),
	)
}

func newNew() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a new BIP-39 mnemonic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			words, _ := cmd.Flags().GetInt(wordsFlag)
			if words < 12 || words > 24 || words%3 != 0 {
				return errors.Errorf("invalid word count %d, expected 12, 15, 18, 21 or 24", words)
			}

			mnemonic, err := hd.GenerateMnemonic(words / 3 * 32)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), mnemonic)
			return nil
		},
	}

	cmd.Flags().Int(wordsFlag, 24, "Number of mnemonic words")

	return cmd
}

func newDerive(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive the account of a coin from a mnemonic or keystore",
		Args:  cobra.NoArgs,
		RunE:  command.AppRunE(v, deriveCmdFunc),
	}

	command.AddCoinFlag(cmd)
	command.AddDerivationFlag(cmd)
	cmd.Flags().String(mnemonicFlag, "", "BIP-39 mnemonic, prompted for if empty and no keystore is given")
	cmd.Flags().String(keystoreFlag, "", "Keystore file holding the mnemonic, defaults to the configured keystore")
	cmd.Flags().String(passphraseFlag, "", "BIP-39 passphrase")
	cmd.Flags().String(pathFlag, "", "Derivation path, overrides the registry path of --derivation")

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

	mnemonic, err := readMnemonic(cmd, a)
	if err != nil {
		return err
	}

	passphrase, _ := cmd.Flags().GetString(passphraseFlag)
	wallet, err := hd.NewWallet(mnemonic, passphrase)
	if err != nil {
		return err
	}
	defer wallet.Clear()

	path, _ := cmd.Flags().GetString(pathFlag)
	account, err := a.Dispatcher.DeriveAccount(ctx, coin.CoinType, wallet, derivation, path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(account)
}

func readMnemonic(cmd *cobra.Command, a *app.App) (string, error) {
	if mnemonic, _ := cmd.Flags().GetString(mnemonicFlag); mnemonic != "" {
		return mnemonic, nil
	}

	keystorePath, _ := cmd.Flags().GetString(keystoreFlag)
	if keystorePath == "" {
		keystorePath = a.Config.Keystore.Path
	}

	if keystorePath == "" {
		return util.ReadSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Mnemonic: ")
	}

	ks, err := hd.ReadKeystore(keystorePath)
	if err != nil {
		return "", err
	}

	password, err := util.ReadSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Keystore password: ")
	if err != nil {
		return "", err
	}

	return hd.DecryptMnemonic(ks, password)
}
