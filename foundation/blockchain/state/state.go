// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vrxcoin/ledger/foundation/blockchain/database"
	"github.com/vrxcoin/ledger/foundation/blockchain/genesis"
	"github.com/vrxcoin/ledger/foundation/blockchain/mempool"
	"github.com/vrxcoin/ledger/foundation/blockchain/storage"
	"github.com/vrxcoin/ledger/foundation/wallet"
)

// ErrEmptyChain is returned when the chain is read before it was initialized.
var ErrEmptyChain = errors.New("chain is empty")

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of persisting blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for running mining off the caller's goroutine.
type Worker interface {
	Shutdown()
	RequestMining(ctx context.Context) (database.Block, error)
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	MinerAddress string                 // Receives block rewards. A fresh address per block when empty.
	Storage      storage.Storage        // Where the chain is persisted.
	Genesis      genesis.Genesis        // Chain constants.
	NewAddress   func() (string, error) // Issues addresses for the founder and rewards. Defaults to random identifiers.
	EvHandler    EventHandler
}

// State manages the blockchain database.
type State struct {
	mu       sync.RWMutex
	miningMu sync.Mutex

	minerAddress string
	newAddress   func() (string, error)
	evHandler    EventHandler

	genesis genesis.Genesis
	storage storage.Storage
	mempool *mempool.Mempool
	chain   []database.Block

	Worker Worker
}

// New constructs a new blockchain for data management. The chain is loaded
// from storage and verified. When storage holds no usable chain a genesis
// block is created and persisted.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if cfg.Storage == nil {
		return nil, errors.New("storage is required")
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, fmt.Errorf("invalid genesis: %w", err)
	}

	newAddress := cfg.NewAddress
	if newAddress == nil {
		newAddress = func() (string, error) {
			return wallet.NewAddress(), nil
		}
	}

	// Create the State to provide support for managing the blockchain.
	state := State{
		minerAddress: cfg.MinerAddress,
		newAddress:   newAddress,
		evHandler:    ev,

		genesis: cfg.Genesis,
		storage: cfg.Storage,
		mempool: mempool.New(),
	}

	// Load the chain from storage. A missing or unreadable chain is replaced
	// by a new genesis block, a chain that fails verification is not.
	chain, found := storage.Load(cfg.Storage, storage.KeyChain, []database.Block{})
	if !found || len(chain) == 0 {
		ev("state: New: no chain in storage: creating genesis block")

		if err := state.createGenesis(); err != nil {
			return nil, err
		}

		return &state, nil
	}

	ev("state: New: verify chain: blocks[%d]", len(chain))

	if err := database.VerifyChain(chain, cfg.Genesis.DifficultyPrefix); err != nil {
		return nil, err
	}
	state.chain = chain

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all blockchain writing activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return s.storage.Close()
}

// Reset discards the chain and the pending transactions and starts over
// with a new genesis block. The new genesis block replaces the stored chain
// in a single write, so a failed reset leaves the old chain in place.
func (s *State) Reset() error {
	s.miningMu.Lock()
	defer s.miningMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: Reset: replacing chain")

	if err := s.createGenesis(); err != nil {
		return fmt.Errorf("replacing chain: %w", err)
	}
	s.mempool.Truncate()

	return nil
}

// =============================================================================

// createGenesis builds the genesis block and persists it as the whole chain.
// The caller must hold the write lock or own the state exclusively.
func (s *State) createGenesis() error {
	founder, err := s.newAddress()
	if err != nil {
		return fmt.Errorf("issuing founder address: %w", err)
	}

	block := database.NewGenesisBlock(database.NewGenesisTx(founder, s.genesis.GenesisReward))
	chain := []database.Block{block}

	if err := storage.Save(s.storage, storage.KeyChain, chain); err != nil {
		return err
	}
	s.chain = chain

	s.evHandler("state: createGenesis: founder[%s]: reward[%s]", founder, s.genesis.GenesisReward)
	s.blockEvent(block)

	return nil
}
