package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the direction of a wallet movement.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// PayStatus is the administrative settlement flag on a transaction. It is
// managed by platform admins and has no effect on wallet balances.
type PayStatus string

const (
	PayStatusPaid   PayStatus = "paid"
	PayStatusUnpaid PayStatus = "unpaid"
)

// Transaction is an immutable ledger entry for a wallet movement.
// BalanceAfter snapshots the customer's balance once this entry applied;
// consecutive entries for one customer must chain by +/- Points.
type Transaction struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	MerchantID      uuid.UUID       `json:"merchant_id"`
	BranchID        uuid.UUID       `json:"branch_id"`
	WorkerID        uuid.UUID       `json:"worker_id"`
	Type            TransactionType `json:"type"`
	Points          int64           `json:"points"`
	CashValue       decimal.Decimal `json:"cash_value"`
	Commission      decimal.Decimal `json:"commission"`
	BalanceAfter    int64           `json:"balance_after"`
	PayStatus       PayStatus       `json:"pay_status"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SignedPoints returns the balance delta this entry represents.
func (t *Transaction) SignedPoints() int64 {
	if t.Type == TransactionTypeDebit {
		return -t.Points
	}
	return t.Points
}
