package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vrxcoin/ledger/business/web/errs"
	"github.com/vrxcoin/ledger/foundation/blockchain/database"
)

// MinedBlock is the node's answer to a mining request.
type MinedBlock struct {
	Message      string        `json:"message"`
	Index        uint64        `json:"index"`
	TimeStamp    float64       `json:"timestamp"`
	Transactions []database.Tx `json:"transactions"`
	Proof        uint64        `json:"proof"`
	PrevHash     string        `json:"previous_hash"`
	Hash         string        `json:"hash"`
}

// Client talks to the public API of a node.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a client for the node at the url.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// CreateAddress asks the node to issue a new address.
func (c *Client) CreateAddress(ctx context.Context) (string, error) {
	var resp struct {
		Address string `json:"address"`
	}
	if err := c.do(ctx, http.MethodGet, "/wallet/create", nil, &resp); err != nil {
		return "", err
	}

	return resp.Address, nil
}

// Balance returns the balance of the address.
func (c *Client) Balance(ctx context.Context, address string) (decimal.Decimal, error) {
	var resp struct {
		Balance decimal.Decimal `json:"balance"`
	}

	path := "/wallet/balance?address=" + url.QueryEscape(address)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return decimal.Zero, err
	}

	return resp.Balance, nil
}

// Send submits a transaction and returns the node's message.
func (c *Client) Send(ctx context.Context, sender string, recipient string, amount decimal.Decimal) (string, error) {
	req := struct {
		Sender    string          `json:"sender"`
		Recipient string          `json:"recipient"`
		Amount    decimal.Decimal `json:"amount"`
	}{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, "/transactions/new", req, &resp); err != nil {
		return "", err
	}

	return resp.Message, nil
}

// Mine asks the node to mine a block and waits for it.
func (c *Client) Mine(ctx context.Context) (MinedBlock, error) {
	var block MinedBlock
	if err := c.do(ctx, http.MethodGet, "/mine", nil, &block); err != nil {
		return MinedBlock{}, err
	}

	return block, nil
}

// Blocks returns the chain, or only the blocks for the address when one
// is provided.
func (c *Client) Blocks(ctx context.Context, address string) ([]database.Block, error) {
	path := "/blocks"
	if address != "" {
		path += "?address=" + url.QueryEscape(address)
	}

	var blocks []database.Block
	if err := c.do(ctx, http.MethodGet, path, nil, &blocks); err != nil {
		return nil, err
	}

	return blocks, nil
}

// =============================================================================

func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling node: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var er errs.Response
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil || er.Error == "" {
			return fmt.Errorf("node responded %s", resp.Status)
		}
		if len(er.Fields) > 0 {
			return fmt.Errorf("node responded %s: %s %v", resp.Status, er.Error, er.Fields)
		}
		return fmt.Errorf("node responded %s: %s", resp.Status, er.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
