package commands

import (
	"sort"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/vrxcoin/ledger/foundation/blockchain/database"
	"github.com/vrxcoin/ledger/foundation/blockchain/genesis"
	"github.com/vrxcoin/ledger/foundation/blockchain/storage"
)

// Balances prints the balance of every address in the stored chain or only
// the one provided.
func Balances(strg storage.Storage, gen genesis.Genesis, address string) error {
	chain, err := loadChain(strg)
	if err != nil {
		return err
	}

	pterm.Info.Printfln("LatestBlock: %s", chain[len(chain)-1].Hash())

	return pterm.DefaultTable.WithHasHeader().WithData(balanceTable(chain, address, gen.Coin)).Render()
}

func balanceTable(chain []database.Block, address string, coin string) pterm.TableData {
	bals := map[string]decimal.Decimal{}
	switch address {
	case "":
		bals = database.Balances(chain)
	default:
		bals[address] = database.Balance(chain, address)
	}

	addresses := make([]string, 0, len(bals))
	for addr := range bals {
		addresses = append(addresses, addr)
	}
	sort.Strings(addresses)

	data := pterm.TableData{{"Address", "Balance " + coin}}
	for _, addr := range addresses {
		data = append(data, []string{addr, bals[addr].String()})
	}

	return data
}
