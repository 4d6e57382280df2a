package state

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vrxcoin/ledger/foundation/blockchain/database"
	"github.com/vrxcoin/ledger/foundation/blockchain/storage"
)

// MineNewBlock solves the puzzle against the latest block, pays the block
// reward and moves every pending transaction into a new block appended to
// the chain. The search for a proof can be cancelled through the context.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {

	// Only one mining operation at a time so the proof found is always for
	// the block it will be appended after.
	s.miningMu.Lock()
	defer s.miningMu.Unlock()

	lastBlock, err := s.RetrieveLatestBlock()
	if err != nil {
		return database.Block{}, err
	}

	s.evHandler("state: MineNewBlock: MINING: find proof: lastBlock[%d]: lastProof[%d]", lastBlock.Index, lastBlock.Proof)

	// The chain isn't locked while searching so queries and new transactions
	// are served during a long search.
	proof, err := database.FindProof(ctx, lastBlock.Proof, s.genesis.DifficultyPrefix, s.evHandler)
	if err != nil {
		return database.Block{}, err
	}

	recipient := s.minerAddress
	if recipient == "" {
		if recipient, err = s.newAddress(); err != nil {
			return database.Block{}, fmt.Errorf("issuing reward address: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MineNewBlock: MINING: drain mempool: proof[%d]: Txs[%d]", proof, s.mempool.Count())

	// The reward is queued last so it always follows the user transactions.
	s.mempool.Add(database.NewCoinbaseTx(recipient, s.genesis.BlockReward))
	trans := s.mempool.DrainAll()

	block := database.NewBlock(lastBlock, proof, trans)

	chain := make([]database.Block, len(s.chain), len(s.chain)+1)
	copy(chain, s.chain)
	chain = append(chain, block)

	s.evHandler("state: MineNewBlock: MINING: write to disk: blk[%d]", block.Index)

	if err := storage.Save(s.storage, storage.KeyChain, chain); err != nil {

		// Nothing changed, put the user transactions back for the next
		// attempt. The reward belongs to this attempt only.
		s.mempool.Requeue(trans[:len(trans)-1])
		return database.Block{}, err
	}
	s.chain = chain

	// Send an event about this new block.
	s.blockEvent(block)

	return block, nil
}

// =============================================================================

// blockEvent provides a specific event about a new block in the chain for
// application specific support.
func (s *State) blockEvent(block database.Block) {
	blockJSON, err := json.Marshal(block)
	if err != nil {
		blockJSON = []byte(fmt.Sprintf("%q", err.Error()))
	}

	s.evHandler(`viewer: block: {"hash":%q,"block":%s}`, block.Hash(), string(blockJSON))
}
