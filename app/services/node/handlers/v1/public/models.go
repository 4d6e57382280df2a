package public

import (
	"github.com/shopspring/decimal"
	"github.com/vrxcoin/ledger/foundation/blockchain/database"
)

type newTx struct {
	Sender    string           `json:"sender" validate:"required"`
	Recipient string           `json:"recipient" validate:"required"`
	Amount    *decimal.Decimal `json:"amount" validate:"required,amount"`
}

type message struct {
	Message string `json:"message"`
}

type minedBlock struct {
	Message      string        `json:"message"`
	Index        uint64        `json:"index"`
	TimeStamp    float64       `json:"timestamp"`
	Transactions []database.Tx `json:"transactions"`
	Proof        uint64        `json:"proof"`
	PrevHash     string        `json:"previous_hash"`
	Hash         string        `json:"hash"`
}

type address struct {
	Address string `json:"address"`
}

type balance struct {
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
}

type issued struct {
	Address string `json:"address"`
	Issued  int64  `json:"issued"`
}
