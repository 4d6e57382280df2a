package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Ask the node to mine a block.",
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, _ := pterm.DefaultSpinner.Start("Searching for a proof...")

		block, err := newClient().Mine(cmd.Context())
		if err != nil {
			spinner.Fail(err.Error())
			return err
		}

		spinner.Success(fmt.Sprintf("%s: block %d proof %d", block.Message, block.Index, block.Proof))

		return renderTransactions(block.Transactions)
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
}
