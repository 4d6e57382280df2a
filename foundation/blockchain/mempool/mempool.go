// Package mempool maintains the pool of transactions waiting to be mined
// into the next block.
package mempool

import (
	"sync"

	"github.com/vrxcoin/ledger/foundation/blockchain/database"
)

// Mempool represents an ordered cache of transactions. Transactions leave the
// pool in the order they arrived.
type Mempool struct {
	mu   sync.RWMutex
	pool []database.Tx
}

// New constructs a new empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the tail of the pool and returns the new
// number of transactions. No balance checks are performed.
func (mp *Mempool) Add(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// DrainAll returns every transaction in the pool and leaves it empty in a
// single step. The returned slice is never nil.
func (mp *Mempool) DrainAll() []database.Tx {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	trans := mp.pool
	if trans == nil {
		trans = []database.Tx{}
	}
	mp.pool = nil

	return trans
}

// Requeue puts transactions back at the head of the pool, ahead of anything
// that arrived after they were drained.
func (mp *Mempool) Requeue(trans []database.Tx) {
	if len(trans) == 0 {
		return
	}

	mp.mu.Lock()
	defer mp.mu.Unlock()

	pool := make([]database.Tx, 0, len(trans)+len(mp.pool))
	pool = append(pool, trans...)
	pool = append(pool, mp.pool...)
	mp.pool = pool
}

// Copy returns a copy of the transactions in the pool in arrival order.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	trans := make([]database.Tx, len(mp.pool))
	copy(trans, mp.pool)

	return trans
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}
