// Package storage handles all the lower level support for reading and writing
// whole documents, such as the chain and the issued addresses, to a backing
// store.
package storage

import (
	"encoding/json"
	"fmt"
)

// Keys of the documents the node persists.
const (
	KeyChain   = "blockchain_data"
	KeyWallets = "wallet_data"
)

// Storage interface represents the behavior required to be implemented by any
// package providing support for reading and writing documents. Read must
// return an error matching fs.ErrNotExist when the key has never been written.
type Storage interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Remove(key string) error
	Close() error
}

// =============================================================================

// Load reads and decodes the document stored under the key. A missing or
// malformed document is not an error: the default value is returned and the
// boolean reports false.
func Load[T any](strg Storage, key string, def T) (T, bool) {
	data, err := strg.Read(key)
	if err != nil {
		return def, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return def, false
	}

	return value, true
}

// Save encodes the value in a human readable format and replaces the whole
// document stored under the key.
func Save[T any](strg Storage, key string, value T) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := strg.Write(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}

	return nil
}
