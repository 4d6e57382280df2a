package database

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/vrxcoin/ledger/foundation/blockchain/signature"
)

// ErrProofSearchTimeout is returned when the deadline for finding a proof
// passes before a proof is found.
var ErrProofSearchTimeout = errors.New("proof search timed out")

// How often the search checks for cancellation and reports progress.
const (
	checkInterval  = 10_000
	reportInterval = 1_000_000
)

// =============================================================================

// ValidProof reports whether the digest of the last proof followed by the
// proof, both in decimal, starts with the difficulty prefix.
func ValidProof(lastProof uint64, proof uint64, prefix string) bool {
	guess := make([]byte, 0, 40)
	guess = strconv.AppendUint(guess, lastProof, 10)
	guess = strconv.AppendUint(guess, proof, 10)

	return strings.HasPrefix(signature.Digest(guess), prefix)
}

// FindProof searches for a proof that solves the puzzle against the last
// proof, starting at zero and counting up. The search runs until a proof is
// found or the context is done.
func FindProof(ctx context.Context, lastProof uint64, prefix string, evHandler func(v string, args ...any)) (uint64, error) {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	ev("database: FindProof: MINING: started: lastProof[%d]: prefix[%s]", lastProof, prefix)

	for proof := uint64(0); ; proof++ {
		if proof%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				ev("database: FindProof: MINING: CANCELLED: attempts[%d]", proof)
				if errors.Is(err, context.DeadlineExceeded) {
					return 0, ErrProofSearchTimeout
				}
				return 0, err
			}

			if proof > 0 && proof%reportInterval == 0 {
				ev("database: FindProof: MINING: attempts[%d]", proof)
			}
		}

		if ValidProof(lastProof, proof, prefix) {
			ev("database: FindProof: MINING: SOLVED: proof[%d]: attempts[%d]", proof, proof+1)
			return proof, nil
		}
	}
}
