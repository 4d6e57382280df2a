// Package database handles all the lower level support for the blockchain
// data model: blocks, transactions, the proof of work puzzle, verification of
// a chain and deriving balances by replaying it.
package database

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ChainCorruptionError is returned when a chain breaks one of the linkage
// rules. A corrupted chain is never repaired.
type ChainCorruptionError struct {
	Index  uint64
	Reason string
}

// Error implements the error interface.
func (e *ChainCorruptionError) Error() string {
	return fmt.Sprintf("chain corrupted at block %d: %s", e.Index, e.Reason)
}

// IsChainCorruption checks if an error of type ChainCorruptionError exists.
func IsChainCorruption(err error) bool {
	var ce *ChainCorruptionError
	return errors.As(err, &ce)
}

// =============================================================================

// VerifyChain walks the chain from the genesis block and checks every block
// links to its parent, has the next index and carries a proof that solves the
// puzzle against the parent proof. The first violation is returned. Amounts
// are bounds checked for every block before any block is hashed.
func VerifyChain(chain []Block, prefix string) error {
	if len(chain) == 0 {
		return nil
	}

	for i, block := range chain {
		if err := block.validateAmounts(); err != nil {
			return &ChainCorruptionError{Index: uint64(i + 1), Reason: err.Error()}
		}
	}

	if err := chain[0].validateGenesis(); err != nil {
		return &ChainCorruptionError{Index: chain[0].Index, Reason: err.Error()}
	}

	for i := 1; i < len(chain); i++ {
		if err := chain[i].ValidateBlock(chain[i-1], prefix); err != nil {
			return &ChainCorruptionError{Index: uint64(i + 1), Reason: err.Error()}
		}
	}

	return nil
}

// Balance replays every transaction in the chain and returns what the address
// received minus what it sent. An address that never transacted has a zero
// balance. Balances can be negative since nothing checks funds.
func Balance(chain []Block, address string) decimal.Decimal {
	balance := decimal.Zero

	for _, block := range chain {
		for _, tx := range block.Transactions {
			if tx.Recipient == address {
				balance = balance.Add(tx.Amount)
			}
			if tx.Sender == address {
				balance = balance.Sub(tx.Amount)
			}
		}
	}

	return balance
}

// Balances replays the chain once and returns the balance of every address
// that appears in it, reserved senders excluded.
func Balances(chain []Block) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)

	for _, block := range chain {
		for _, tx := range block.Transactions {
			balances[tx.Recipient] = balances[tx.Recipient].Add(tx.Amount)

			if tx.IsCoinbase() || tx.IsGenesis() {
				continue
			}
			balances[tx.Sender] = balances[tx.Sender].Sub(tx.Amount)
		}
	}

	return balances
}
