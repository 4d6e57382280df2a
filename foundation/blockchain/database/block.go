package database

import (
	"fmt"

	"github.com/vrxcoin/ledger/foundation/blockchain/signature"
)

// Values that identify the genesis block.
const (
	GenesisIndex        = 1
	GenesisProof        = 100
	GenesisPreviousHash = "1"
)

// =============================================================================

// Block represents a group of transactions batched together.
type Block struct {
	Index        uint64  `json:"index"`         // Position in the chain, starting at 1.
	TimeStamp    float64 `json:"timestamp"`     // Unix time the block was created.
	Transactions []Tx    `json:"transactions"`  // Transactions drained from the pool, in order.
	Proof        uint64  `json:"proof"`         // Value that solves the puzzle against the parent proof.
	PrevHash     string  `json:"previous_hash"` // Hash of the parent block.
}

// NewBlock constructs the block that follows the specified parent block.
func NewBlock(parent Block, proof uint64, trans []Tx) Block {
	if trans == nil {
		trans = []Tx{}
	}

	return Block{
		Index:        parent.Index + 1,
		TimeStamp:    Now(),
		Transactions: trans,
		Proof:        proof,
		PrevHash:     parent.Hash(),
	}
}

// NewGenesisBlock constructs the first block of the chain. The proof is a
// fixed value and not the result of any search.
func NewGenesisBlock(tx Tx) Block {
	return Block{
		Index:        GenesisIndex,
		TimeStamp:    Now(),
		Transactions: []Tx{tx},
		Proof:        GenesisProof,
		PrevHash:     GenesisPreviousHash,
	}
}

// Hash returns the unique hash for the Block.
func (b Block) Hash() string {
	return signature.Hash(b)
}

// IsGenesis reports whether the block is in the genesis position.
func (b Block) IsGenesis() bool {
	return b.Index == GenesisIndex
}

// Equal compares two blocks field by field.
func (b Block) Equal(other Block) bool {
	if b.Index != other.Index || b.TimeStamp != other.TimeStamp || b.Proof != other.Proof || b.PrevHash != other.PrevHash {
		return false
	}

	if len(b.Transactions) != len(other.Transactions) {
		return false
	}

	for i, tx := range b.Transactions {
		if !tx.Equal(other.Transactions[i]) {
			return false
		}
	}

	return true
}

// ValidateBlock takes a block and validates it can follow the specified
// parent block in the chain.
func (b Block) ValidateBlock(parent Block, prefix string) error {
	nextIndex := parent.Index + 1
	if b.Index != nextIndex {
		return fmt.Errorf("this block is not the next index, got %d, exp %d", b.Index, nextIndex)
	}

	if hash := parent.Hash(); b.PrevHash != hash {
		return fmt.Errorf("parent block hash doesn't match our known parent, got %s, exp %s", b.PrevHash, hash)
	}

	if !ValidProof(parent.Proof, b.Proof, prefix) {
		return fmt.Errorf("proof %d does not solve the puzzle for parent proof %d", b.Proof, parent.Proof)
	}

	return nil
}

// validateAmounts checks every transaction amount is within the size bounds.
func (b Block) validateAmounts() error {
	for i, tx := range b.Transactions {
		if err := ValidateAmount(tx.Amount); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}

	return nil
}

// validateGenesis checks the block has the shape of a genesis block.
func (b Block) validateGenesis() error {
	if b.Index != GenesisIndex {
		return fmt.Errorf("first block has index %d, exp %d", b.Index, GenesisIndex)
	}

	if b.PrevHash != GenesisPreviousHash {
		return fmt.Errorf("first block previous hash is %q, exp %q", b.PrevHash, GenesisPreviousHash)
	}

	return nil
}
