package state

import (
	"github.com/shopspring/decimal"
	"github.com/vrxcoin/ledger/foundation/blockchain/database"
)

// SubmitTransaction adds a new transaction to the mempool and returns the
// index of the block it is expected to land in. This is a prediction, other
// mining calls may intervene.
func (s *State) SubmitTransaction(sender string, recipient string, amount decimal.Decimal) (uint64, error) {
	tx, err := database.NewTx(sender, recipient, amount)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.chain) == 0 {
		return 0, ErrEmptyChain
	}

	n := s.mempool.Add(tx)
	s.evHandler("state: SubmitTransaction: tx[%s]: Txs[%d]", tx, n)

	return s.chain[len(s.chain)-1].Index + 1, nil
}
