package commands

import (
	"github.com/pterm/pterm"
	"github.com/vrxcoin/ledger/foundation/blockchain/database"
	"github.com/vrxcoin/ledger/foundation/blockchain/genesis"
	"github.com/vrxcoin/ledger/foundation/blockchain/storage"
)

// Verify checks the stored chain and reports the first broken block.
func Verify(strg storage.Storage, gen genesis.Genesis) error {
	chain, err := loadChain(strg)
	if err != nil {
		return err
	}

	if err := database.VerifyChain(chain, gen.DifficultyPrefix); err != nil {
		pterm.Error.Println(err)
		return err
	}

	last := chain[len(chain)-1]
	pterm.Success.Printfln("Chain verified: blocks[%d] latest[%s]", len(chain), last.Hash())

	return nil
}
