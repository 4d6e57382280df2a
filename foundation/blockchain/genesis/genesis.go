// Package genesis maintains access to the chain constants used to build the
// genesis block and reward miners.
package genesis

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vrxcoin/ledger/foundation/blockchain/database"
)

// Default values used when no genesis file is provided.
const (
	DefaultCoin             = "VRX"
	DefaultDifficultyPrefix = "0000"
	DefaultBlockTime        = 600
	DefaultAdjustmentBlocks = 2016
)

// Genesis represents the constants the chain is built with.
type Genesis struct {
	Coin             string          `json:"coin"`
	GenesisReward    decimal.Decimal `json:"genesis_reward"`    // Allocated to the founder address in the genesis block.
	BlockReward      decimal.Decimal `json:"block_reward"`      // Paid by the coinbase transaction of every mined block.
	DifficultyPrefix string          `json:"difficulty_prefix"` // Leading hex characters a proof digest must have.
	BlockTime        uint            `json:"block_time"`        // Target seconds between blocks. Informational.
	AdjustmentBlocks uint            `json:"adjustment_blocks"` // Retargeting interval. Not consumed, see DESIGN.md.
}

// Default returns the genesis values the chain launches with.
func Default() Genesis {
	return Genesis{
		Coin:             DefaultCoin,
		GenesisReward:    decimal.NewFromInt(1_000_000),
		BlockReward:      decimal.NewFromInt(50),
		DifficultyPrefix: DefaultDifficultyPrefix,
		BlockTime:        DefaultBlockTime,
		AdjustmentBlocks: DefaultAdjustmentBlocks,
	}
}

// =============================================================================

// Load opens and consumes the genesis file. Fields missing from the file keep
// their default value. An empty path returns the defaults.
func Load(path string) (Genesis, error) {
	gen := Default()
	if path == "" {
		return gen, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	if err := json.Unmarshal(content, &gen); err != nil {
		return Genesis{}, fmt.Errorf("decoding genesis file: %w", err)
	}

	if err := gen.Validate(); err != nil {
		return Genesis{}, err
	}

	return gen, nil
}

// Validate checks the genesis values can be used to run a chain.
func (g Genesis) Validate() error {
	if g.DifficultyPrefix == "" {
		return errors.New("difficulty prefix is empty")
	}

	if len(g.DifficultyPrefix) > 64 {
		return fmt.Errorf("difficulty prefix is longer than a digest: %d", len(g.DifficultyPrefix))
	}

	if strings.Trim(g.DifficultyPrefix, "0123456789abcdef") != "" {
		return fmt.Errorf("difficulty prefix is not lowercase hex: %q", g.DifficultyPrefix)
	}

	if g.GenesisReward.IsNegative() {
		return errors.New("genesis reward is negative")
	}

	if g.BlockReward.IsNegative() {
		return errors.New("block reward is negative")
	}

	if err := database.ValidateAmount(g.GenesisReward); err != nil {
		return fmt.Errorf("genesis reward: %w", err)
	}

	if err := database.ValidateAmount(g.BlockReward); err != nil {
		return fmt.Errorf("block reward: %w", err)
	}

	return nil
}
