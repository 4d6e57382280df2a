package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Print the balance of an address.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		balance, err := newClient().Balance(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		pterm.Info.Printfln("Address: %s", args[0])
		pterm.Success.Printfln("Balance: %s", balance)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
