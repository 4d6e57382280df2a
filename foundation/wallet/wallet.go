// Package wallet issues account addresses and keeps the record of every
// address it issued. An address is a random identifier and nothing more: no
// key material is derived from it and nothing is ever signed with it.
package wallet

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vrxcoin/ledger/foundation/blockchain/storage"
)

// Record represents what is stored for an issued address.
type Record struct {
	Secret string `json:"secret"` // Opaque random value handed out with the address.
	Issued int64  `json:"issued"` // Unix time the address was issued.
}

// Wallet maintains the set of issued addresses.
type Wallet struct {
	mu      sync.RWMutex
	storage storage.Storage
	records map[string]Record
}

// New constructs a wallet and loads the addresses issued by earlier runs. A
// missing or malformed address store starts an empty wallet.
func New(strg storage.Storage) *Wallet {
	records, _ := storage.Load(strg, storage.KeyWallets, map[string]Record{})
	if records == nil {
		records = make(map[string]Record)
	}

	return &Wallet{
		storage: strg,
		records: records,
	}
}

// NewAddress returns a fresh random identifier that can be used as an address.
func NewAddress() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Create issues a new address, records it and persists the whole address
// store before returning.
func (w *Wallet) Create() (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	address := NewAddress()
	w.records[address] = Record{
		Secret: NewAddress(),
		Issued: time.Now().UTC().Unix(),
	}

	if err := storage.Save(w.storage, storage.KeyWallets, w.records); err != nil {
		delete(w.records, address)
		return "", fmt.Errorf("saving addresses: %w", err)
	}

	return address, nil
}

// Exists reports whether the address was issued by this wallet.
func (w *Wallet) Exists(address string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	_, exists := w.records[address]
	return exists
}

// Copy returns a copy of the map of issued addresses and their records.
func (w *Wallet) Copy() map[string]Record {
	w.mu.RLock()
	defer w.mu.RUnlock()

	cpy := make(map[string]Record, len(w.records))
	for address, record := range w.records {
		cpy[address] = record
	}
	return cpy
}

// Reset forgets every issued address and removes the address store.
func (w *Wallet) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.records = make(map[string]Record)
	return w.storage.Remove(storage.KeyWallets)
}
