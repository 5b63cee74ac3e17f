package repositories

import (
	"context"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
)

// ProvisionBatch is a set of rows inserted together, used for demo data.
type ProvisionBatch struct {
	Users             []domain.User
	Accounts          []domain.Account
	Transactions      []domain.Transaction
	ScheduledPayments []domain.ScheduledPayment
}

// Provisioner bulk-loads reference data outside the movement engines.
type Provisioner interface {
	CountUsers(ctx context.Context) (int, error)
	Provision(ctx context.Context, batch ProvisionBatch) error
}
