package cmd

import (
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/vrxcoin/ledger/foundation/blockchain/database"
)

var blocksAddress string

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Print the chain.",
	RunE: func(cmd *cobra.Command, args []string) error {
		blocks, err := newClient().Blocks(cmd.Context(), blocksAddress)
		if err != nil {
			return err
		}

		return pterm.DefaultTable.WithHasHeader().WithData(blockTable(blocks)).Render()
	},
}

func init() {
	rootCmd.AddCommand(blocksCmd)
	blocksCmd.Flags().StringVarP(&blocksAddress, "address", "a", "", "Only blocks holding transactions for this address.")
}

func blockTable(blocks []database.Block) pterm.TableData {
	data := pterm.TableData{{"Index", "Proof", "Txs", "Previous Hash", "Hash"}}
	for _, block := range blocks {
		data = append(data, []string{
			strconv.FormatUint(block.Index, 10),
			strconv.FormatUint(block.Proof, 10),
			strconv.Itoa(len(block.Transactions)),
			block.PrevHash,
			block.Hash(),
		})
	}

	return data
}

func renderTransactions(trans []database.Tx) error {
	data := pterm.TableData{{"Sender", "Recipient", "Amount"}}
	for _, tx := range trans {
		data = append(data, []string{tx.Sender, tx.Recipient, tx.Amount.String()})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
