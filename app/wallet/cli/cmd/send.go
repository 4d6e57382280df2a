package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	from   string
	to     string
	amount string
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("invalid amount %q: %w", amount, err)
		}

		msg, err := newClient().Send(cmd.Context(), from, to, value)
		if err != nil {
			return err
		}

		pterm.Success.Println(msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&from, "from", "f", "", "Address sending the amount.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Address receiving the amount.")
	sendCmd.Flags().StringVarP(&amount, "amount", "v", "", "Amount to send.")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("amount")
}
