// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/vrxcoin/ledger/app/services/node/handlers/v1/public"
	"github.com/vrxcoin/ledger/foundation/blockchain/state"
	"github.com/vrxcoin/ledger/foundation/events"
	"github.com/vrxcoin/ledger/foundation/wallet"
	"github.com/vrxcoin/ledger/foundation/web"
	"go.uber.org/zap"
)

// The ledger routes are bound at the root so existing clients keep working.
const version = ""

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log    *zap.SugaredLogger
	State  *state.State
	Wallet *wallet.Wallet
	Evts   *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:    cfg.Log,
		State:  cfg.State,
		Wallet: cfg.Wallet,
		Evts:   cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/mine", pbl.Mine)
	app.Handle(http.MethodPost, version, "/transactions/new", pbl.SubmitTransaction)
	app.Handle(http.MethodGet, version, "/blocks", pbl.Blocks)
	app.Handle(http.MethodGet, version, "/mempool", pbl.Mempool)
	app.Handle(http.MethodGet, version, "/genesis", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/wallet/create", pbl.CreateAddress)
	app.Handle(http.MethodGet, version, "/wallet/balance", pbl.Balance)
	app.Handle(http.MethodGet, version, "/wallet/list", pbl.Addresses)
}
