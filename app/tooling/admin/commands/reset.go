package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/vrxcoin/ledger/foundation/blockchain/database"
	"github.com/vrxcoin/ledger/foundation/blockchain/genesis"
	"github.com/vrxcoin/ledger/foundation/blockchain/state"
	"github.com/vrxcoin/ledger/foundation/blockchain/storage"
	"github.com/vrxcoin/ledger/foundation/wallet"
)

// Reset forgets the issued addresses and replaces the stored chain with a
// new genesis block. A corrupted chain is discarded as well.
func Reset(strg storage.Storage, gen genesis.Genesis, ev state.EventHandler) error {
	wlt := wallet.New(strg)
	if err := wlt.Reset(); err != nil {
		return fmt.Errorf("removing addresses: %w", err)
	}

	cfg := state.Config{
		Storage:    strg,
		Genesis:    gen,
		NewAddress: wlt.Create,
		EvHandler:  ev,
	}

	st, err := state.New(cfg)
	if err != nil {
		if !database.IsChainCorruption(err) {
			return err
		}

		if err := strg.Remove(storage.KeyChain); err != nil {
			return fmt.Errorf("removing corrupted chain: %w", err)
		}

		if st, err = state.New(cfg); err != nil {
			return err
		}
	}

	if err := st.Reset(); err != nil {
		return err
	}

	founder := st.RetrieveBlocks()[0].Transactions[0].Recipient
	pterm.Success.Printfln("Chain reset: founder[%s] allocation[%s %s]", founder, gen.GenesisReward, gen.Coin)

	return nil
}
