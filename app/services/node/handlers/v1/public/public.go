// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vrxcoin/ledger/business/sys/metrics"
	"github.com/vrxcoin/ledger/business/sys/validate"
	"github.com/vrxcoin/ledger/business/web/errs"
	"github.com/vrxcoin/ledger/foundation/blockchain/database"
	"github.com/vrxcoin/ledger/foundation/blockchain/state"
	"github.com/vrxcoin/ledger/foundation/blockchain/worker"
	"github.com/vrxcoin/ledger/foundation/events"
	"github.com/vrxcoin/ledger/foundation/wallet"
	"github.com/vrxcoin/ledger/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log    *zap.SugaredLogger
	State  *state.State
	Wallet *wallet.Wallet
	WS     websocket.Upgrader
	Evts   *events.Events
}

// Mine asks the mining worker for a new block and waits for it.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.State.Worker == nil {
		return errs.NewTrusted(errors.New("mining is not running"), http.StatusServiceUnavailable)
	}

	start := time.Now()
	block, err := h.State.Worker.RequestMining(ctx)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrProofSearchTimeout):
			metrics.ObserveMining(metrics.StatusTimeout, start)
			return errs.NewTrusted(err, http.StatusGatewayTimeout)
		case errors.Is(err, worker.ErrShutdown), errors.Is(err, context.Canceled):
			metrics.ObserveMining(metrics.StatusError, start)
			return errs.NewTrusted(err, http.StatusServiceUnavailable)
		}

		metrics.ObserveMining(metrics.StatusError, start)
		return fmt.Errorf("mining block: %w", err)
	}

	metrics.ObserveMining(metrics.StatusSuccess, start)
	metrics.SetChainLength(int(block.Index))

	resp := minedBlock{
		Message:      "New block forged",
		Index:        block.Index,
		TimeStamp:    block.TimeStamp,
		Transactions: block.Transactions,
		Proof:        block.Proof,
		PrevHash:     block.PrevHash,
		Hash:         block.Hash(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var tx newTx
	if err := web.Decode(r, &tx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if err := validate.Check(tx); err != nil {
		return err
	}

	h.Log.Infow("add tran", "traceid", web.GetTraceID(ctx), "sender", tx.Sender, "recipient", tx.Recipient, "amount", tx.Amount)

	index, err := h.State.SubmitTransaction(tx.Sender, tx.Recipient, *tx.Amount)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	metrics.AddTransaction()

	resp := message{
		Message: fmt.Sprintf("Transaction will be added to Block %d", index),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Blocks returns the chain. When an address is provided only the blocks
// holding a transaction for that address are returned.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	addr := web.Query(r, "address")
	if addr == "" {
		return web.Respond(ctx, w, h.State.RetrieveBlocks(), http.StatusOK)
	}

	return web.Respond(ctx, w, h.State.QueryBlocksByAddress(addr), http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveMempool(), http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveGenesis(), http.StatusOK)
}

// CreateAddress issues a new address.
func (h Handlers) CreateAddress(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	addr, err := h.Wallet.Create()
	if err != nil {
		return fmt.Errorf("issuing address: %w", err)
	}

	return web.Respond(ctx, w, address{Address: addr}, http.StatusOK)
}

// Balance returns the balance of the address in the query string.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	addr := web.Query(r, "address")
	if addr == "" {
		return errs.NewTrusted(errors.New("missing address parameter"), http.StatusBadRequest)
	}

	resp := balance{
		Address: addr,
		Balance: h.State.QueryBalance(addr),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Addresses returns the addresses issued by this node, oldest first.
func (h Handlers) Addresses(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	records := h.Wallet.Copy()

	list := make([]issued, 0, len(records))
	for addr, rec := range records {
		list = append(list, issued{Address: addr, Issued: rec.Issued})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Issued == list[j].Issued {
			return list[i].Address < list[j].Address
		}
		return list[i].Issued < list[j].Issued
	})

	return web.Respond(ctx, w, list, http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// The status code is only recorded for the logs, the upgrade already
	// wrote the response.
	web.SetStatusCode(ctx, http.StatusSwitchingProtocols)

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}

		case <-ctx.Done():
			return nil
		}
	}
}
