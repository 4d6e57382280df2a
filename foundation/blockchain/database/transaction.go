package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Reserved sender values.
const (
	CoinbaseSender   = "0"             // Reward transaction created by mining.
	GenesisSender    = "genesis_block" // One time allocation in the genesis block.
	GenesisSignature = "genesis_signature"
)

// Bounds on the size of an amount. A decimal carries its exponent apart from
// its digits so a short input can stand for a number with billions of digits.
const (
	MaxAmountDigits   = 40  // Significant digits.
	MaxAmountExponent = 30  // Largest power of ten.
	MinAmountExponent = -18 // Smallest fraction.
)

// ErrAmountOutOfRange is returned when an amount exceeds the size bounds.
var ErrAmountOutOfRange = errors.New("amount is out of range")

// ValidateAmount checks the amount is within the size bounds. The check only
// inspects the exponent and the digit count, never the rendered value.
func ValidateAmount(amount decimal.Decimal) error {
	exp := amount.Exponent()
	if exp > MaxAmountExponent || exp < MinAmountExponent {
		return fmt.Errorf("%w: exponent %d", ErrAmountOutOfRange, exp)
	}

	if n := amount.NumDigits(); n > MaxAmountDigits {
		return fmt.Errorf("%w: %d digits", ErrAmountOutOfRange, n)
	}

	return nil
}

// =============================================================================

// Tx is the transactional information between two parties. Once a Tx is
// included in a block it is never changed.
type Tx struct {
	Sender    string          `json:"sender"`              // Address sending the amount or a reserved sender.
	Recipient string          `json:"recipient"`           // Address receiving the amount.
	Amount    decimal.Decimal `json:"amount"`              // Value moved by this transaction.
	TimeStamp float64         `json:"timestamp"`           // Unix time the transaction was received.
	Signature string          `json:"signature,omitempty"` // Opaque value, nothing verifies it.
}

// NewTx constructs a new transaction stamped with the current time.
func NewTx(sender string, recipient string, amount decimal.Decimal) (Tx, error) {
	if sender == "" {
		return Tx{}, errors.New("sender is required")
	}

	if recipient == "" {
		return Tx{}, errors.New("recipient is required")
	}

	if err := ValidateAmount(amount); err != nil {
		return Tx{}, err
	}

	tx := Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		TimeStamp: Now(),
	}

	return tx, nil
}

// NewCoinbaseTx constructs the reward transaction for a mined block.
func NewCoinbaseTx(recipient string, reward decimal.Decimal) Tx {
	return Tx{
		Sender:    CoinbaseSender,
		Recipient: recipient,
		Amount:    reward,
		TimeStamp: Now(),
	}
}

// NewGenesisTx constructs the one time allocation carried by the genesis block.
func NewGenesisTx(recipient string, reward decimal.Decimal) Tx {
	return Tx{
		Sender:    GenesisSender,
		Recipient: recipient,
		Amount:    reward,
		TimeStamp: Now(),
		Signature: GenesisSignature,
	}
}

// IsCoinbase reports whether the transaction is a mining reward.
func (tx Tx) IsCoinbase() bool {
	return tx.Sender == CoinbaseSender
}

// IsGenesis reports whether the transaction is the genesis allocation.
func (tx Tx) IsGenesis() bool {
	return tx.Sender == GenesisSender
}

// Equal compares two transactions field by field.
func (tx Tx) Equal(other Tx) bool {
	return tx.Sender == other.Sender &&
		tx.Recipient == other.Recipient &&
		tx.Amount.Equal(other.Amount) &&
		tx.TimeStamp == other.TimeStamp &&
		tx.Signature == other.Signature
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%s", tx.Sender, tx.Recipient, tx.Amount)
}

// =============================================================================

// Now returns the current unix time in seconds with sub-second precision.
func Now() float64 {
	return float64(time.Now().UTC().UnixMicro()) / 1e6
}
