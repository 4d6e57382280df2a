package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Issue a new address.",
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := newClient().CreateAddress(cmd.Context())
		if err != nil {
			return err
		}

		pterm.Success.Printfln("Address: %s", address)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
}
