// Package commands contains the functionality for the set of commands
// currently supported by the admin tool.
package commands

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/vrxcoin/ledger/foundation/blockchain/database"
	"github.com/vrxcoin/ledger/foundation/blockchain/storage"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

// ErrNoChain is returned when the storage holds no chain.
var ErrNoChain = errors.New("no chain stored")

// loadChain reads the stored chain. Unlike the node, a missing or malformed
// document is reported since there is nothing to administer.
func loadChain(strg storage.Storage) ([]database.Block, error) {
	if _, err := strg.Read(storage.KeyChain); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoChain
		}
		return nil, err
	}

	chain, found := storage.Load(strg, storage.KeyChain, []database.Block{})
	if !found {
		return nil, fmt.Errorf("chain document is malformed")
	}
	if len(chain) == 0 {
		return nil, ErrNoChain
	}

	return chain, nil
}
