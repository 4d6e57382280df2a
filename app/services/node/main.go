package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"github.com/vrxcoin/ledger/app/services/node/handlers"
	"github.com/vrxcoin/ledger/business/sys/metrics"
	"github.com/vrxcoin/ledger/foundation/blockchain/genesis"
	"github.com/vrxcoin/ledger/foundation/blockchain/state"
	"github.com/vrxcoin/ledger/foundation/blockchain/storage"
	"github.com/vrxcoin/ledger/foundation/blockchain/storage/disk"
	"github.com/vrxcoin/ledger/foundation/blockchain/worker"
	"github.com/vrxcoin/ledger/foundation/events"
	"github.com/vrxcoin/ledger/foundation/logger"
	"github.com/vrxcoin/ledger/foundation/wallet"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("NODE")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	// This is all the configuration for the application and the default values.
	// Configuration values will be passed through the application as individual
	// values.
	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:120s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
			PublicHost      string        `conf:"default:0.0.0.0:5000"`
		}
		State struct {
			DBPath        string        `conf:"default:zblock/"`
			MinerAddress  string        `conf:"help:receives block rewards, a fresh address per block when empty"`
			MiningTimeout time.Duration `conf:"default:110s"`
			ResetOnStart  bool          `conf:"default:false"`
		}
		Genesis struct {
			Path string `conf:"help:optional JSON file overriding the genesis constants"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "VRX proof of work ledger node",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "NODE"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Storage Support

	// The chain and the issued addresses are persisted as JSON documents in
	// the database folder.
	strg, err := disk.New(cfg.State.DBPath)
	if err != nil {
		return fmt.Errorf("unable to open storage: %w", err)
	}

	gen, err := genesis.Load(cfg.Genesis.Path)
	if err != nil {
		return fmt.Errorf("unable to load genesis: %w", err)
	}

	// =========================================================================
	// Wallet Support

	// The wallet package issues the random identifiers used as addresses.
	wlt := wallet.New(strg)

	// A reset clears the stored chain before the state loads it, so a chain
	// that no longer verifies can still be started over.
	if cfg.State.ResetOnStart {
		log.Infow("startup", "status", "resetting chain and wallet", "path", cfg.State.DBPath)
		if err := resetStorage(strg, wlt); err != nil {
			return err
		}
	}

	log.Infow("startup", "status", "wallet", "addresses", len(wlt.Copy()))

	// =========================================================================
	// Blockchain Support

	// The blockchain packages accept a function of this signature to allow the
	// application to log. Block events are also sent to any websocket client
	// that is connected into the system through the events package.
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
		evts.Forward(s)
	}

	// The state value represents the blockchain node and manages the blockchain
	// database and provides an API for application support.
	state, err := state.New(state.Config{
		MinerAddress: cfg.State.MinerAddress,
		Storage:      strg,
		Genesis:      gen,
		NewAddress:   wlt.Create,
		EvHandler:    ev,
	})
	if err != nil {
		return err
	}
	defer state.Shutdown()

	metrics.SetChainLength(len(state.RetrieveBlocks()))

	// The worker package runs mining on its own goroutine. The worker will
	// register itself with the state.
	worker.Run(state, cfg.State.MiningTimeout, ev)

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	// The Debug function returns a mux to listen and serve on for all the debug
	// related endpoints. This includes the standard library endpoints.

	// Construct the mux for the debug calls.
	debugMux := handlers.DebugMux(build, log, state)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Service Start/Stop Support

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// =========================================================================
	// Start Public Service

	log.Infow("startup", "status", "initializing V1 public API support")

	// Construct the mux for the public API calls.
	publicMux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		State:    state,
		Wallet:   wlt,
		Evts:     evts,
	})

	// Construct a server to service the requests against the mux.
	public := http.Server{
		Addr:         cfg.Web.PublicHost,
		Handler:      publicMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "public api router started", "host", public.Addr)
		serverErrors <- public.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Stop mining so requests waiting on a block return right away.
		log.Infow("shutdown", "status", "shutdown mining worker")
		state.Worker.Shutdown()

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		log.Infow("shutdown", "status", "shutdown public API started")
		if err := public.Shutdown(ctx); err != nil {
			public.Close()
			return fmt.Errorf("could not stop public service gracefully: %w", err)
		}
	}

	return nil
}

// resetStorage forgets the issued addresses and removes the stored chain.
func resetStorage(strg storage.Storage, wlt *wallet.Wallet) error {
	if err := wlt.Reset(); err != nil {
		return fmt.Errorf("unable to reset wallet: %w", err)
	}

	if err := strg.Remove(storage.KeyChain); err != nil {
		return fmt.Errorf("unable to remove chain: %w", err)
	}

	return nil
}
