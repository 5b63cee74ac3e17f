package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferRequest describes a transfer out of one of the actor's accounts.
// A nil ToAccountID sends the funds to an external sink.
type TransferRequest struct {
	FromAccountID string
	ToAccountID   *string
	Amount        decimal.Decimal
	Note          string
}

// IsExternal reports whether the transfer leaves the ledger.
func (r TransferRequest) IsExternal() bool {
	return r.ToAccountID == nil
}

// MovementResult is returned by the movement engines on success.
type MovementResult struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	TransactionIDs []string `json:"transactionIDs"`
}

// MovementKind names the engine that produced a MovementEvent.
type MovementKind string

const (
	MovementTransfer    MovementKind = "transfer"
	MovementBillPayment MovementKind = "bill_payment"
)

// MovementEvent is published after a movement has been committed.
type MovementEvent struct {
	Kind           MovementKind    `json:"kind"`
	ActorID        string          `json:"actorID"`
	FromAccountID  string          `json:"fromAccountID"`
	ToAccountID    string          `json:"toAccountID,omitempty"`
	PaymentID      string          `json:"paymentID,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	TransactionIDs []string        `json:"transactionIDs"`
	OccurredAt     time.Time       `json:"occurredAt"`
}
