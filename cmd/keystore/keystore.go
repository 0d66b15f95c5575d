package keystore

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/wallet-core/internal/app"
	"github/chapool/wallet-core/internal/hd"
	"github/chapool/wallet-core/internal/util"
	"github/chapool/wallet-core/internal/util/command"
)

const (
	outFlag      string = "out"
	mnemonicFlag string = "mnemonic"

	generatedMnemonicBits = 256
	minPasswordLength     = 8
)

func New(v *viper.Viper) *cobra.Command {
	return command.NewSubcommandGroup("keystore",
		newCreate(v),
		newVerify(v),
	)
}

func newCreate(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Encrypt a mnemonic into a keystore file",
		Long: `Encrypts a mnemonic with a password (scrypt + aes-128-ctr) and writes it as a
keystore file. Without --mnemonic a new 24 word mnemonic is generated and printed once.`,
		Args: cobra.NoArgs,
		RunE: command.AppRunE(v, createCmdFunc),
	}

	cmd.Flags().String(outFlag, "", "Keystore file to write, defaults to the configured keystore path")
	cmd.Flags().String(mnemonicFlag, "", "Mnemonic to encrypt")

	return cmd
}

func keystorePath(cmd *cobra.Command, a *app.App) (string, error) {
	path, _ := cmd.Flags().GetString(outFlag)
	if path == "" {
		path = a.Config.Keystore.Path
	}
	if path == "" {
		return "", errors.New("no keystore path, use --out or COINCTL_KEYSTORE_PATH")
	}
	return path, nil
}

func createCmdFunc(ctx context.Context, cmd *cobra.Command, _ []string, a *app.App) error {
	logger := util.LogFromContext(ctx)

	path, err := keystorePath(cmd, a)
	if err != nil {
		return err
	}

	mnemonic, _ := cmd.Flags().GetString(mnemonicFlag)
	generated := mnemonic == ""
	if generated {
		mnemonic, err = hd.GenerateMnemonic(generatedMnemonicBits)
		if err != nil {
			return err
		}
	}

	// Validate before encrypting
	wallet, err := hd.NewWallet(mnemonic, "")
	if err != nil {
		return err
	}
	wallet.Clear()

	password, err := util.ReadSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "New keystore password: ")
	if err != nil {
		return err
	}
	if len(password) < minPasswordLength {
		return errors.Errorf("password must have at least %d characters", minPasswordLength)
	}

	params := hd.StandardScryptParams()
	if a.Config.Keystore.LightScrypt {
		logger.Warn().Msg("Using light scrypt parameters, do not use this keystore in production")
		params = hd.LightScryptParams()
	}

	ks, err := hd.EncryptMnemonic(mnemonic, password, params)
	if err != nil {
		return err
	}

	if err := hd.WriteKeystore(path, ks); err != nil {
		return err
	}

	logger.Info().Str("path", path).Str("id", ks.ID).Msg("Keystore created")

	if generated {
		fmt.Fprintln(cmd.OutOrStdout(), mnemonic)
	}

	return nil
}

func newVerify(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that a password decrypts a keystore",
		Args:  cobra.NoArgs,
		RunE:  command.AppRunE(v, verifyCmdFunc),
	}

	cmd.Flags().String(outFlag, "", "Keystore file to check, defaults to the configured keystore path")

	return cmd
}

func verifyCmdFunc(_ context.Context, cmd *cobra.Command, _ []string, a *app.App) error {
	path, err := keystorePath(cmd, a)
	if err != nil {
		return err
	}

	ks, err := hd.ReadKeystore(path)
	if err != nil {
		return err
	}

	password, err := util.ReadSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Keystore password: ")
	if err != nil {
		return err
	}

	if _, err := hd.DecryptMnemonic(ks, password); err != nil {
		return err
	}

	log.Info().Str("path", path).Msg("Keystore password is valid")
	fmt.Fprintln(cmd.OutOrStdout(), "ok")

	return nil
}
