// Package worker runs mining on a dedicated goroutine for the blockchain so
// request handlers only wait on the result.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vrxcoin/ledger/foundation/blockchain/database"
	"github.com/vrxcoin/ledger/foundation/blockchain/state"
)

// ErrShutdown is returned when mining is requested from a stopped worker.
var ErrShutdown = errors.New("worker is shut down")

// miningRequest is a single request to mine a block.
type miningRequest struct {
	ctx    context.Context
	result chan miningResult
}

// miningResult is the outcome of a mining request.
type miningResult struct {
	block database.Block
	err   error
}

// =============================================================================

// Worker manages the POW workflows for the blockchain.
type Worker struct {
	state     *state.State
	timeout   time.Duration
	wg        sync.WaitGroup
	shut      chan struct{}
	shutOnce  sync.Once
	requests  chan miningRequest
	evHandler state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up the mining goroutine. A zero timeout lets a proof search run
// until the request is cancelled.
func Run(st *state.State, timeout time.Duration, evHandler state.EventHandler) *Worker {
	w := Worker{
		state:    st,
		timeout:  timeout,
		shut:     make(chan struct{}),
		requests: make(chan miningRequest),
		evHandler: func(v string, args ...any) {
			if evHandler != nil {
				evHandler(v, args...)
			}
		},
	}

	// Register this worker with the state package.
	st.Worker = &w

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.miningOperations()
	}()

	<-hasStarted

	return &w
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutine performing work. A proof search in
// progress is cancelled.
func (w *Worker) Shutdown() {
	w.shutOnce.Do(func() {
		w.evHandler("worker: shutdown: started")
		defer w.evHandler("worker: shutdown: completed")

		w.evHandler("worker: shutdown: terminate goroutines")
		close(w.shut)
		w.wg.Wait()
	})
}

// RequestMining hands a mining request to the mining goroutine and waits for
// the block. Requests are served one at a time in arrival order.
func (w *Worker) RequestMining(ctx context.Context) (database.Block, error) {
	req := miningRequest{
		ctx:    ctx,
		result: make(chan miningResult, 1),
	}

	select {
	case w.requests <- req:
		w.evHandler("worker: RequestMining: mining signaled")
	case <-w.shut:
		return database.Block{}, ErrShutdown
	case <-ctx.Done():
		return database.Block{}, ctx.Err()
	}

	// The mining goroutine always answers an accepted request.
	res := <-req.result
	return res.block, res.err
}
