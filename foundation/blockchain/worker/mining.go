package worker

import (
	"context"
	"errors"
	"time"

	"github.com/vrxcoin/ledger/foundation/blockchain/database"
)

// miningOperations handles mining.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case req := <-w.requests:
			block, err := w.runMiningOperation(req.ctx)
			req.result <- miningResult{block: block, err: err}
		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation solves the puzzle and writes a new block to the
// database. The search stops when the requester goes away, the mining
// timeout passes or the worker is shut down.
func (w *Worker) runMiningOperation(parent context.Context) (database.Block, error) {
	w.evHandler("worker: runMiningOperation: MINING: started")
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	var ctx context.Context
	var cancel context.CancelFunc
	switch {
	case w.timeout > 0:
		ctx, cancel = context.WithTimeout(parent, w.timeout)
	default:
		ctx, cancel = context.WithCancel(parent)
	}
	defer cancel()

	// This G exists to cancel the mining operation on shutdown.
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-w.shut:
			w.evHandler("worker: runMiningOperation: MINING: CANCEL: shutdown")
			cancel()
		case <-done:
		}
	}()

	t := time.Now()
	block, err := w.state.MineNewBlock(ctx)
	duration := time.Since(t)

	w.evHandler("worker: runMiningOperation: MINING: mining duration[%v]", duration)

	if err != nil {
		switch {
		case errors.Is(err, database.ErrProofSearchTimeout):
			w.evHandler("worker: runMiningOperation: MINING: TIMEOUT: after[%v]", w.timeout)
		case ctx.Err() != nil:
			w.evHandler("worker: runMiningOperation: MINING: CANCEL: complete")
		default:
			w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
		}
		return database.Block{}, err
	}

	w.evHandler("worker: runMiningOperation: MINING: SOLVED: blk[%d]: Txs[%d]", block.Index, len(block.Transactions))

	return block, nil
}
