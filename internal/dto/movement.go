package dto

import (
	"github.com/SscSPs/bank_dashboard/internal/core/domain"
)

// ExternalDestination selects the external sink instead of a ledger account.
const ExternalDestination = "external"

// TransferRequest is the body of POST /transfers.
type TransferRequest struct {
	FromAccountID string `json:"fromAccountId" binding:"required"`
	ToAccountID   string `json:"toAccountId" binding:"required"`
	Amount        string `json:"amount" binding:"required,money"`
	Notes         string `json:"notes" binding:"max=255"`
}

// ToDomain parses the amount and resolves the destination.
func (r TransferRequest) ToDomain() (domain.TransferRequest, error) {
	amount, err := domain.ParseAmount(r.Amount)
	if err != nil {
		return domain.TransferRequest{}, err
	}
	out := domain.TransferRequest{
		FromAccountID: r.FromAccountID,
		Amount:        amount,
		Note:          r.Notes,
	}
	if r.ToAccountID != ExternalDestination {
		to := r.ToAccountID
		out.ToAccountID = &to
	}
	return out, nil
}

// MovementResponse reports the outcome of a transfer or bill payment.
type MovementResponse struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	TransactionIDs []string `json:"transactionIDs"`
}

func ToMovementResponse(r *domain.MovementResult) MovementResponse {
	return MovementResponse{
		Success:        r.Success,
		Message:        r.Message,
		TransactionIDs: r.TransactionIDs,
	}
}
