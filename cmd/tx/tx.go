package tx

import (
	"context"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/wallet-core/internal/app"
	"github/chapool/wallet-core/internal/coinentry"
	"github/chapool/wallet-core/internal/util"
	"github/chapool/wallet-core/internal/util/command"
)

const (
	inputFlag     string = "input"
	signatureFlag string = "signature"
	publicKeyFlag string = "pubkey"
	fromFlag      string = "from"
	toFlag        string = "to"
	amountFlag    string = "amount"
	assetFlag     string = "asset"
	memoFlag      string = "memo"
	chainIDFlag   string = "chain-id"
	jsonFlag      string = "json"
	keyFlag       string = "key"
)

func New(v *viper.Viper) *cobra.Command {
	return command.NewSubcommandGroup("tx",
		newSign(v),
		newPreimage(v),
		newCompile(v),
		newBuild(v),
		newSignJSON(v),
	)
}

func addInputFlag(cmd *cobra.Command) {
	cmd.Flags().String(inputFlag, "", "Hex encoded signing input message, or @file with the hex")
	_ = cmd.MarkFlagRequired(inputFlag)
}

// readInput returns the decoded --input value. A leading @ reads the hex from a file.
func readInput(cmd *cobra.Command) ([]byte, error) {
	value, _ := cmd.Flags().GetString(inputFlag)

	if len(value) > 0 && value[0] == '@' {
		data, err := os.ReadFile(value[1:])
		if err != nil {
			return nil, errors.Wrap(err, "failed to read input file")
		}
		value = string(data)
	}

	return util.DecodeHex(value)
}

func newSign(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a signing input that carries its private key",
		Args:  cobra.NoArgs,
		RunE:  command.AppRunE(v, signCmdFunc),
	}

	command.AddCoinFlag(cmd)
	addInputFlag(cmd)

	return cmd
}

func signCmdFunc(ctx context.Context, cmd *cobra.Command, _ []string, a *app.App) error {
	coin, err := command.CoinFromFlags(cmd, a.Registry)
	if err != nil {
		return err
	}

	input, err := readInput(cmd)
	if err != nil {
		return err
	}

	out, err := a.Dispatcher.Sign(ctx, coin.CoinType, input)
	if err != nil {
		return err
	}

	return printSigningOutput(cmd.OutOrStdout(), coin, out)
}

func newPreimage(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preimage",
		Short: "Print the digest an external signer has to sign",
		Args:  cobra.NoArgs,
		RunE:  command.AppRunE(v, preimageCmdFunc),
	}

	command.AddCoinFlag(cmd)
	addInputFlag(cmd)

	return cmd
}

func preimageCmdFunc(ctx context.Context, cmd *cobra.Command, _ []string, a *app.App) error {
	coin, err := command.CoinFromFlags(cmd, a.Registry)
	if err != nil {
		return err
	}

	input, err := readInput(cmd)
	if err != nil {
		return err
	}

	out, err := a.Dispatcher.PreimageHashes(ctx, coin.CoinType, input)
	if err != nil {
		return err
	}

	return printPreSigningOutput(cmd.OutOrStdout(), out)
}

func newCompile(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Assemble a signed transaction from external signatures",
		Args:  cobra.NoArgs,
		RunE:  command.AppRunE(v, compileCmdFunc),
	}

	command.AddCoinFlag(cmd)
	addInputFlag(cmd)
	cmd.Flags().StringSlice(signatureFlag, nil, "Hex encoded signature (r || s || recovery id), repeatable")
	cmd.Flags().StringSlice(publicKeyFlag, nil, "Hex encoded public key of the signer, repeatable")
	_ = cmd.MarkFlagRequired(signatureFlag)

	return cmd
}

func compileCmdFunc(ctx context.Context, cmd *cobra.Command, _ []string, a *app.App) error {
	coin, err := command.CoinFromFlags(cmd, a.Registry)
	if err != nil {
		return err
	}

	input, err := readInput(cmd)
	if err != nil {
		return err
	}

	rawSignatures, _ := cmd.Flags().GetStringSlice(signatureFlag)
	signatures, err := util.DecodeHexList(rawSignatures)
	if err != nil {
		return err
	}

	rawKeys, _ := cmd.Flags().GetStringSlice(publicKeyFlag)
	publicKeys, err := util.DecodeHexList(rawKeys)
	if err != nil {
		return err
	}

	out, err := a.Dispatcher.Compile(ctx, coin.CoinType, input, signatures, publicKeys)
	if err != nil {
		return err
	}

	return printSigningOutput(cmd.OutOrStdout(), coin, out)
}

func newBuild(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the signing input of a simple transfer",
		Args:  cobra.NoArgs,
		RunE:  command.AppRunE(v, buildCmdFunc),
	}

	command.AddCoinFlag(cmd)
	cmd.Flags().String(fromFlag, "", "Sender address")
	cmd.Flags().String(toFlag, "", "Recipient address")
	cmd.Flags().String(amountFlag, "0", "Amount in the smallest unit of the coin")
	cmd.Flags().String(assetFlag, "", "Asset to transfer, empty for the native coin")
	cmd.Flags().String(memoFlag, "", "Transfer memo")
	cmd.Flags().String(chainIDFlag, "", "Chain id, defaults to the registry value")
	_ = cmd.MarkFlagRequired(toFlag)

	return cmd
}

func buildCmdFunc(ctx context.Context, cmd *cobra.Command, _ []string, a *app.App) error {
	coin, err := command.CoinFromFlags(cmd, a.Registry)
	if err != nil {
		return err
	}

	var params coinentry.SigningInputParams
	params.From, _ = cmd.Flags().GetString(fromFlag)
	params.To, _ = cmd.Flags().GetString(toFlag)
	params.Amount, _ = cmd.Flags().GetString(amountFlag)
	params.Asset, _ = cmd.Flags().GetString(assetFlag)
	params.Memo, _ = cmd.Flags().GetString(memoFlag)
	params.ChainID, _ = cmd.Flags().GetString(chainIDFlag)

	input, err := a.Dispatcher.BuildSigningInput(ctx, coin.CoinType, params)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(input))

	return nil
}

func newSignJSON(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign-json",
		Short: "Sign a signing input given in its JSON form",
		Args:  cobra.NoArgs,
		RunE:  command.AppRunE(v, signJSONCmdFunc),
	}

	command.AddCoinFlag(cmd)
	cmd.Flags().String(jsonFlag, "", "Signing input JSON, or @file with the JSON")
	cmd.Flags().String(keyFlag, "", "Hex encoded private key, prompted for if empty")
	_ = cmd.MarkFlagRequired(jsonFlag)

	return cmd
}

func signJSONCmdFunc(ctx context.Context, cmd *cobra.Command, _ []string, a *app.App) error {
	coin, err := command.CoinFromFlags(cmd, a.Registry)
	if err != nil {
		return err
	}

	if !a.Dispatcher.SupportsJSONSigning(coin.CoinType) {
		return errors.Wrapf(coinentry.ErrNotSupported, "json signing for %s", coin.ID)
	}

	inputJSON, _ := cmd.Flags().GetString(jsonFlag)
	if len(inputJSON) > 0 && inputJSON[0] == '@' {
		data, err := os.ReadFile(inputJSON[1:])
		if err != nil {
			return errors.Wrap(err, "failed to read json file")
		}
		inputJSON = string(data)
	}

	rawKey, _ := cmd.Flags().GetString(keyFlag)
	if rawKey == "" {
		rawKey, err = util.ReadSecret(cmd.InOrStdin(), cmd.ErrOrStderr(), "Private key (hex): ")
		if err != nil {
			return err
		}
	}

	privateKey, err := util.DecodeHex(rawKey)
	if err != nil {
		return errors.New("invalid private key hex")
	}
	defer clear(privateKey)

	encoded, err := a.Dispatcher.SignJSON(ctx, coin.CoinType, inputJSON, privateKey)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), encoded)

	return nil
}
