package database_test

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vrxcoin/ledger/foundation/blockchain/database"
	"github.com/vrxcoin/ledger/foundation/blockchain/signature"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const prefix = "00"

// =============================================================================

func Test_ValidProof(t *testing.T) {
	type table struct {
		name      string
		lastProof uint64
		proof     uint64
		prefix    string
		valid     bool
	}

	tt := []table{
		{name: "solved4", lastProof: 100, proof: 35293, prefix: "0000", valid: true},
		{name: "solved2", lastProof: 100, proof: 226, prefix: "00", valid: true},
		{name: "solved1", lastProof: 100, proof: 16, prefix: "0", valid: true},
		{name: "unsolved", lastProof: 100, proof: 35292, prefix: "0000", valid: false},
		{name: "reversed", lastProof: 35293, proof: 100, prefix: "0000", valid: false},
	}

	t.Log("Given the need to validate proofs of work.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen checking proof %d against %d.", testID, tst.proof, tst.lastProof)
				{
					got := database.ValidProof(tst.lastProof, tst.proof, tst.prefix)
					if got != tst.valid {
						t.Fatalf("\t%s\tTest %d:\tShould get back %v, got %v.", failed, testID, tst.valid, got)
					}
					t.Logf("\t%s\tTest %d:\tShould get back %v.", success, testID, tst.valid)

					guess := strconv.FormatUint(tst.lastProof, 10) + strconv.FormatUint(tst.proof, 10)
					exp := strings.HasPrefix(signature.Digest([]byte(guess)), tst.prefix)
					if got != exp {
						t.Fatalf("\t%s\tTest %d:\tShould agree with the digest of the concatenation.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould agree with the digest of the concatenation.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_FindProof(t *testing.T) {
	t.Log("Given the need to search for a proof of work.")
	{
		t.Logf("\tTest 0:\tWhen searching with a short prefix.")
		{
			for _, lastProof := range []uint64{0, 100, 226, 987654321} {
				proof, err := database.FindProof(context.Background(), lastProof, prefix, nil)
				if err != nil {
					t.Fatalf("\t%s\tTest 0:\tShould be able to find a proof for %d: %v", failed, lastProof, err)
				}

				if !database.ValidProof(lastProof, proof, prefix) {
					t.Fatalf("\t%s\tTest 0:\tShould find a valid proof for %d, got %d.", failed, lastProof, proof)
				}
				t.Logf("\t%s\tTest 0:\tShould find a valid proof for %d: %d", success, lastProof, proof)
			}

			proof, err := database.FindProof(context.Background(), 100, "0000", nil)
			if err != nil || proof != 35293 {
				t.Fatalf("\t%s\tTest 0:\tShould find the first proof counting from zero, got %d: %v", failed, proof, err)
			}
			t.Logf("\t%s\tTest 0:\tShould find the first proof counting from zero.", success)
		}

		t.Logf("\tTest 1:\tWhen the deadline passes before a proof is found.")
		{
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()

			// Nothing can match a digest of all f's this long.
			impossible := strings.Repeat("f", 64)

			_, err := database.FindProof(ctx, 100, impossible, nil)
			if !errors.Is(err, database.ErrProofSearchTimeout) {
				t.Fatalf("\t%s\tTest 1:\tShould get a proof search timeout, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get a proof search timeout.", success)
		}

		t.Logf("\tTest 2:\tWhen the search is cancelled.")
		{
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := database.FindProof(ctx, 100, strings.Repeat("f", 64), nil)
			if !errors.Is(err, context.Canceled) || errors.Is(err, database.ErrProofSearchTimeout) {
				t.Fatalf("\t%s\tTest 2:\tShould get a cancellation distinct from a timeout, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould get a cancellation distinct from a timeout.", success)
		}
	}
}

func Test_VerifyChain(t *testing.T) {
	chain := buildChain(t, 3)

	t.Log("Given the need to verify a chain.")
	{
		t.Logf("\tTest 0:\tWhen the chain was built by mining.")
		{
			if err := database.VerifyChain(chain, prefix); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould verify the chain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould verify the chain.", success)

			for i := 1; i < len(chain); i++ {
				if chain[i].PrevHash != chain[i-1].Hash() {
					t.Fatalf("\t%s\tTest 0:\tShould link block %d to its parent.", failed, chain[i].Index)
				}
			}
			t.Logf("\t%s\tTest 0:\tShould link every block to its parent.", success)
		}

		t.Logf("\tTest 1:\tWhen a block in the middle was altered.")
		{
			bad := append([]database.Block(nil), chain...)
			bad[1].Transactions = append([]database.Tx(nil), bad[1].Transactions...)
			bad[1].Transactions[0].Amount = decimal.NewFromInt(1_000_000_000)

			err := database.VerifyChain(bad, prefix)
			var ce *database.ChainCorruptionError
			if !errors.As(err, &ce) {
				t.Fatalf("\t%s\tTest 1:\tShould get a chain corruption error, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get a chain corruption error.", success)

			if ce.Index != 3 {
				t.Fatalf("\t%s\tTest 1:\tShould point at the child of the altered block, got %d.", failed, ce.Index)
			}
			t.Logf("\t%s\tTest 1:\tShould point at the child of the altered block.", success)
		}

		t.Logf("\tTest 2:\tWhen the indexes are not contiguous.")
		{
			bad := append([]database.Block(nil), chain[:2]...)
			skipped := bad[1]
			skipped.Index = 3
			bad[1] = skipped

			if err := database.VerifyChain(bad, prefix); !database.IsChainCorruption(err) {
				t.Fatalf("\t%s\tTest 2:\tShould get a chain corruption error, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 2:\tShould get a chain corruption error.", success)
		}

		t.Logf("\tTest 3:\tWhen the first block is not a genesis block.")
		{
			if err := database.VerifyChain(chain[1:], prefix); !database.IsChainCorruption(err) {
				t.Fatalf("\t%s\tTest 3:\tShould get a chain corruption error, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 3:\tShould get a chain corruption error.", success)
		}

		t.Logf("\tTest 4:\tWhen a stored block carries an oversized amount.")
		{
			var tx database.Tx
			if err := json.Unmarshal([]byte(`{"sender":"a","recipient":"b","amount":"1e50000000"}`), &tx); err != nil {
				t.Fatalf("\t%s\tTest 4:\tShould be able to decode the transaction: %v", failed, err)
			}

			bad := append([]database.Block(nil), chain...)
			last := bad[len(bad)-1]
			last.Transactions = append([]database.Tx{tx}, last.Transactions...)
			bad[len(bad)-1] = last

			start := time.Now()
			err := database.VerifyChain(bad, prefix)

			var ce *database.ChainCorruptionError
			if !errors.As(err, &ce) || ce.Index != uint64(len(bad)) || !strings.Contains(ce.Reason, database.ErrAmountOutOfRange.Error()) {
				t.Fatalf("\t%s\tTest 4:\tShould reject the amount at block %d, got %v.", failed, len(bad), err)
			}
			t.Logf("\t%s\tTest 4:\tShould reject the amount.", success)

			if d := time.Since(start); d > time.Second {
				t.Fatalf("\t%s\tTest 4:\tShould reject without rendering the amount, took %v.", failed, d)
			}
			t.Logf("\t%s\tTest 4:\tShould reject without rendering the amount.", success)
		}
	}
}

func Test_ValidateAmount(t *testing.T) {
	type table struct {
		name   string
		amount string
		valid  bool
	}

	tt := []table{
		{name: "integer", amount: "1000000", valid: true},
		{name: "fraction", amount: "12.5", valid: true},
		{name: "negative", amount: "-3", valid: true},
		{name: "smallestFraction", amount: "0.000000000000000001", valid: true},
		{name: "largestExponent", amount: "1e30", valid: true},
		{name: "hugeExponent", amount: "1e50000000", valid: false},
		{name: "tinyExponent", amount: "1e-50000000", valid: false},
		{name: "zeroHugeExponent", amount: "0e2000000000", valid: false},
		{name: "tooManyDigits", amount: strings.Repeat("9", database.MaxAmountDigits+1), valid: false},
	}

	t.Log("Given the need to bound the size of amounts.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				amount, err := decimal.NewFromString(tst.amount)
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to parse %q: %v", failed, testID, tst.amount, err)
				}

				err = database.ValidateAmount(amount)
				if (err == nil) != tst.valid {
					t.Fatalf("\t%s\tTest %d:\tShould get valid=%v for %s, got %v.", failed, testID, tst.valid, tst.name, err)
				}
				t.Logf("\t%s\tTest %d:\tShould get valid=%v for %s.", success, testID, tst.valid, tst.name)

				if _, err := database.NewTx("a", "b", amount); (err == nil) != tst.valid {
					t.Fatalf("\t%s\tTest %d:\tShould construct a transaction only for valid amounts, got %v.", failed, testID, err)
				}
				if !tst.valid && !errors.Is(err, database.ErrAmountOutOfRange) {
					t.Fatalf("\t%s\tTest %d:\tShould get the out of range error, got %v.", failed, testID, err)
				}
				t.Logf("\t%s\tTest %d:\tShould construct a transaction only for valid amounts.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Balance(t *testing.T) {
	const (
		founder = "a1b2c3"
		other   = "d4e5f6"
	)

	genesis := database.NewGenesisBlock(database.NewGenesisTx(founder, decimal.NewFromInt(1_000_000)))

	t.Log("Given the need to derive balances from the chain.")
	{
		t.Logf("\tTest 0:\tWhen the chain only holds the genesis allocation.")
		{
			chain := []database.Block{genesis}

			if got := database.Balance(chain, founder); !got.Equal(decimal.NewFromInt(1_000_000)) {
				t.Fatalf("\t%s\tTest 0:\tShould credit the founder, got %s.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould credit the founder.", success)

			if got := database.Balance(chain, other); !got.IsZero() {
				t.Fatalf("\t%s\tTest 0:\tShould have a zero balance for an unknown address, got %s.", failed, got)
			}
			t.Logf("\t%s\tTest 0:\tShould have a zero balance for an unknown address.", success)
		}

		t.Logf("\tTest 1:\tWhen transfers and rewards are mined.")
		{
			send, err := database.NewTx(founder, other, decimal.RequireFromString("250.5"))
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to create a transaction: %v", failed, err)
			}
			overdraw, err := database.NewTx(other, founder, decimal.NewFromInt(1000))
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to create a transaction: %v", failed, err)
			}
			reward := database.NewCoinbaseTx(other, decimal.NewFromInt(50))

			chain := []database.Block{genesis, database.NewBlock(genesis, 226, []database.Tx{send, overdraw, reward})}

			exp := map[string]string{
				founder: "1000749.5",
				other:   "-699.5",
				"zzz":   "0",
			}
			for address, bal := range exp {
				if got := database.Balance(chain, address); !got.Equal(decimal.RequireFromString(bal)) {
					t.Fatalf("\t%s\tTest 1:\tShould compute %s for %s, got %s.", failed, bal, address, got)
				}
			}
			t.Logf("\t%s\tTest 1:\tShould compute signed balances including negatives.", success)

			all := database.Balances(chain)
			if len(all) != 2 {
				t.Fatalf("\t%s\tTest 1:\tShould exclude reserved senders, got %v.", failed, all)
			}
			for address, bal := range all {
				if !bal.Equal(database.Balance(chain, address)) {
					t.Fatalf("\t%s\tTest 1:\tShould agree with the single address replay for %s.", failed, address)
				}
			}
			t.Logf("\t%s\tTest 1:\tShould agree with the single address replay.", success)
		}
	}
}

// =============================================================================

// buildChain mines a chain of the specified length using the test prefix.
func buildChain(t *testing.T, length int) []database.Block {
	t.Helper()

	chain := []database.Block{
		database.NewGenesisBlock(database.NewGenesisTx("founder", decimal.NewFromInt(1_000_000))),
	}

	for len(chain) < length {
		parent := chain[len(chain)-1]

		proof, err := database.FindProof(context.Background(), parent.Proof, prefix, nil)
		if err != nil {
			t.Fatalf("Should be able to find a proof: %v", err)
		}

		trans := []database.Tx{database.NewCoinbaseTx("miner", decimal.NewFromInt(50))}
		chain = append(chain, database.NewBlock(parent, proof, trans))
	}

	return chain
}
