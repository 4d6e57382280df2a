package state

import (
	"github.com/shopspring/decimal"
	"github.com/vrxcoin/ledger/foundation/blockchain/database"
)

// QueryBalance replays the chain and returns the balance of the address.
func (s *State) QueryBalance(address string) decimal.Decimal {
	s.mu.RLock()
	chain := s.chain
	s.mu.RUnlock()

	return database.Balance(chain, address)
}

// QueryBalances replays the chain and returns the balance of every address
// that appears in it.
func (s *State) QueryBalances() map[string]decimal.Decimal {
	s.mu.RLock()
	chain := s.chain
	s.mu.RUnlock()

	return database.Balances(chain)
}

// QueryMempoolLength returns the current length of the mempool.
func (s *State) QueryMempoolLength() int {
	return s.mempool.Count()
}

// QueryBlocksByAddress returns the set of blocks holding a transaction sent
// or received by the address. If the address is empty, all blocks are
// returned.
func (s *State) QueryBlocksByAddress(address string) []database.Block {
	s.mu.RLock()
	chain := s.chain
	s.mu.RUnlock()

	out := []database.Block{}
	for _, block := range chain {
		for _, tx := range block.Transactions {
			if address == "" || tx.Sender == address || tx.Recipient == address {
				out = append(out, block)
				break
			}
		}
	}

	return out
}

// VerifyChain checks the linkage of the chain currently held in memory.
func (s *State) VerifyChain() error {
	s.mu.RLock()
	chain := s.chain
	s.mu.RUnlock()

	return database.VerifyChain(chain, s.genesis.DifficultyPrefix)
}
