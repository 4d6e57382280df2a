// Package cmd contains the wallet app commands.
package cmd

import (
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	nodeURL string
	timeout time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&nodeURL, "url", "u", "http://localhost:5000", "Url of the node.")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "How long to wait for the node.")
}

var rootCmd = &cobra.Command{
	Use:           "wallet",
	Short:         "Simple wallet for a VRX ledger node",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command line and exits with a failure status when the
// command fails.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func newClient() *Client {
	return NewClient(nodeURL, timeout)
}
