// This program performs administrative tasks for the ledger node.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ardanlabs/conf/v3"
	"github.com/vrxcoin/ledger/app/tooling/admin/commands"
	"github.com/vrxcoin/ledger/foundation/blockchain/genesis"
	"github.com/vrxcoin/ledger/foundation/blockchain/storage/disk"
	"github.com/vrxcoin/ledger/foundation/logger"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

type config struct {
	conf.Version
	Args  conf.Args
	State struct {
		DBPath string `conf:"default:zblock/"`
	}
	Genesis struct {
		Path string
	}
}

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			log.Errorw("admin", "ERROR", err)
		}
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg := config{
		Version: conf.Version{
			Build: build,
			Desc:  "VRX ledger administration",
		},
	}

	const prefix = "NODE"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	return processCommands(cfg.Args, log, cfg)
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(args conf.Args, log *zap.SugaredLogger, cfg config) error {
	strg, err := disk.New(cfg.State.DBPath)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer strg.Close()

	gen, err := genesis.Load(cfg.Genesis.Path)
	if err != nil {
		return fmt.Errorf("loading genesis: %w", err)
	}

	switch args.Num(0) {
	case "verify":
		if err := commands.Verify(strg, gen); err != nil {
			return fmt.Errorf("verifying chain: %w", err)
		}

	case "balances":
		if err := commands.Balances(strg, gen, args.Num(1)); err != nil {
			return fmt.Errorf("getting balances: %w", err)
		}

	case "reset":
		ev := func(v string, args ...any) {
			log.Infow(fmt.Sprintf(v, args...))
		}
		if err := commands.Reset(strg, gen, ev); err != nil {
			return fmt.Errorf("resetting chain: %w", err)
		}

	default:
		fmt.Println("verify:   check the linkage and proofs of the stored chain")
		fmt.Println("balances: replay the stored chain and print every balance, or one address")
		fmt.Println("reset:    discard the stored chain and addresses and start a new chain")
		fmt.Println("provide a command to get more help.")
		return commands.ErrHelp
	}

	return nil
}
