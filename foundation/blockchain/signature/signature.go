// Package signature provides helper functions for producing the canonical
// digests the blockchain uses to link blocks and check proofs of work.
package signature

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// DigestLength is the number of hex characters in a digest.
const DigestLength = sha256.Size * 2

// ZeroHash represents a hash code of zeros.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Hash returns the hex encoded sha256 digest of the canonical encoding of
// the specified value. Values that can't be encoded hash to ZeroHash.
func Hash(value any) string {
	data, err := Canonical(value)
	if err != nil {
		return ZeroHash
	}

	return Digest(data)
}

// Digest returns the lowercase hex encoded sha256 digest of the data.
func Digest(data []byte) string {
	hash := sha256.Sum256(data)
	return common.Bytes2Hex(hash[:])
}

// Canonical produces the encoding used for hashing. Object keys are sorted,
// there is no insignificant whitespace and numbers keep the exact text the
// json package produced for them.
func Canonical(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal value: %w", err)
	}

	// Round tripping through generic values puts every object into a map
	// which the json package always writes with sorted keys.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("decode value: %w", err)
	}

	canonical, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("marshal canonical value: %w", err)
	}

	return canonical, nil
}
