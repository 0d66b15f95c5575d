package coins

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/wallet-core/internal/app"
	"github/chapool/wallet-core/internal/util/command"
)

func New(v *viper.Viper) *cobra.Command {
	return command.NewSubcommandGroup("coins",
		newList(v),
	)
}

func newList(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the coins of the registry",
		Args:  cobra.NoArgs,
		RunE:  command.AppRunE(v, listCmdFunc),
	}
}

func listCmdFunc(_ context.Context, cmd *cobra.Command, _ []string, a *app.App) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TYPE\tID\tSYMBOL\tBLOCKCHAIN\tCHAIN ID\tSUPPORTED")

	for _, coin := range a.Registry.Coins() {
		chainID := "-"
		if id := coin.EVMChainID(); id != nil {
			chainID = id.Dec()
		}

		_, _, err := a.Dispatcher.EntryFor(coin.CoinType)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%t\n",
			coin.CoinType, coin.ID, coin.Symbol, coin.Blockchain, chainID, err == nil)
	}

	return w.Flush()
}
