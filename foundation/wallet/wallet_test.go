package wallet_test

import (
	"encoding/hex"
	"testing"

	"github.com/vrxcoin/ledger/foundation/blockchain/storage"
	"github.com/vrxcoin/ledger/foundation/blockchain/storage/memory"
	"github.com/vrxcoin/ledger/foundation/wallet"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestCreate(t *testing.T) {
	strg := memory.New()

	t.Log("Given the need to issue addresses.")
	{
		w := wallet.New(strg)

		address, err := w.Create()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to issue an address: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to issue an address: %s", success, address)

		if _, err := hex.DecodeString(address); err != nil || len(address) != 32 {
			t.Fatalf("\t%s\tShould get a 32 character hex identifier, got %q.", failed, address)
		}
		t.Logf("\t%s\tShould get a 32 character hex identifier.", success)

		if !w.Exists(address) || w.Exists(wallet.NewAddress()) {
			t.Fatalf("\t%s\tShould only know the issued address.", failed)
		}
		t.Logf("\t%s\tShould only know the issued address.", success)

		second, err := w.Create()
		if err != nil || second == address {
			t.Fatalf("\t%s\tShould issue a different address: %v", failed, err)
		}
		t.Logf("\t%s\tShould issue a different address.", success)

		records, found := storage.Load(strg, storage.KeyWallets, map[string]wallet.Record{})
		if !found || len(records) != 2 {
			t.Fatalf("\t%s\tShould persist every issued address, got %d.", failed, len(records))
		}
		t.Logf("\t%s\tShould persist every issued address.", success)

		reloaded := wallet.New(strg)
		if len(reloaded.Copy()) != 2 || !reloaded.Exists(second) {
			t.Fatalf("\t%s\tShould load the issued addresses on restart.", failed)
		}
		t.Logf("\t%s\tShould load the issued addresses on restart.", success)

		if err := reloaded.Reset(); err != nil {
			t.Fatalf("\t%s\tShould be able to reset: %v", failed, err)
		}
		if len(wallet.New(strg).Copy()) != 0 {
			t.Fatalf("\t%s\tShould forget every address after a reset.", failed)
		}
		t.Logf("\t%s\tShould forget every address after a reset.", success)
	}
}

func TestCorruptStore(t *testing.T) {
	strg := memory.New()
	if err := strg.Write(storage.KeyWallets, []byte("not json")); err != nil {
		t.Fatalf("Should be able to write raw data: %v", err)
	}

	t.Log("Given an address store that can't be decoded.")
	{
		w := wallet.New(strg)
		if len(w.Copy()) != 0 {
			t.Fatalf("\t%s\tShould start with an empty wallet.", failed)
		}
		t.Logf("\t%s\tShould start with an empty wallet.", success)

		if _, err := w.Create(); err != nil {
			t.Fatalf("\t%s\tShould still be able to issue addresses: %v", failed, err)
		}
		t.Logf("\t%s\tShould still be able to issue addresses.", success)
	}
}
