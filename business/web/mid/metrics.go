package mid

import (
	"context"
	"net/http"

	"github.com/vrxcoin/ledger/business/sys/metrics"
	"github.com/vrxcoin/ledger/foundation/web"
)

// Metrics updates program counters.
func Metrics() web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			// Call the next handler.
			err := handler(ctx, w, r)

			// The status code is set by the time the error middleware
			// has responded.
			if v, verr := web.GetValues(ctx); verr == nil {
				metrics.ObserveRequest(r.Method, r.URL.Path, v.StatusCode, v.Now)
			}

			// Return the error so it can be handled further up the chain.
			return err
		}

		return h
	}

	return m
}
