// This program is a command line client for a ledger node.
package main

import "github.com/vrxcoin/ledger/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
