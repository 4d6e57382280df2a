package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vrxcoin/ledger/foundation/blockchain/database"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func TestClient(t *testing.T) {
	var sent map[string]string

	mux := http.NewServeMux()
	mux.HandleFunc("/wallet/create", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":"abc"}`))
	})
	mux.HandleFunc("/wallet/balance", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("address") == "" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"missing address parameter"}`))
			return
		}
		w.Write([]byte(`{"address":"abc","balance":"12.5"}`))
	})
	mux.HandleFunc("/transactions/new", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&sent)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"Transaction will be added to Block 2"}`))
	})
	mux.HandleFunc("/blocks", func(w http.ResponseWriter, r *http.Request) {
		gen := database.NewGenesisBlock(database.NewGenesisTx("abc", decimal.NewFromInt(100)))
		json.NewEncoder(w).Encode([]database.Block{gen})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second)
	ctx := context.Background()

	t.Log("Given the need to talk to a node.")
	{
		address, err := client.CreateAddress(ctx)
		if err != nil || address != "abc" {
			t.Fatalf("\t%s\tShould issue an address, got %q: %v", failed, address, err)
		}
		t.Logf("\t%s\tShould issue an address.", success)

		bal, err := client.Balance(ctx, address)
		if err != nil || !bal.Equal(decimal.RequireFromString("12.5")) {
			t.Fatalf("\t%s\tShould read the balance, got %s: %v", failed, bal, err)
		}
		t.Logf("\t%s\tShould read the balance.", success)

		if _, err := client.Balance(ctx, ""); err == nil || !strings.Contains(err.Error(), "missing address parameter") {
			t.Fatalf("\t%s\tShould surface the node error, got %v.", failed, err)
		}
		t.Logf("\t%s\tShould surface the node error.", success)

		msg, err := client.Send(ctx, "abc", "def", decimal.NewFromInt(3))
		if err != nil || msg != "Transaction will be added to Block 2" {
			t.Fatalf("\t%s\tShould submit the transaction, got %q: %v", failed, msg, err)
		}
		if sent["sender"] != "abc" || sent["recipient"] != "def" || sent["amount"] != "3" {
			t.Fatalf("\t%s\tShould send the fields, got %v.", failed, sent)
		}
		t.Logf("\t%s\tShould submit the transaction.", success)

		blocks, err := client.Blocks(ctx, "")
		if err != nil || len(blocks) != 1 || !blocks[0].IsGenesis() {
			t.Fatalf("\t%s\tShould read the chain: %v", failed, err)
		}
		t.Logf("\t%s\tShould read the chain.", success)

		if rows := blockTable(blocks); len(rows) != 2 || rows[1][0] != "1" {
			t.Fatalf("\t%s\tShould render a row per block, got %v.", failed, rows)
		}
		t.Logf("\t%s\tShould render a row per block.", success)
	}
}
