package pgsql

import (
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:          newPgxAccountRepository(dbPool),
		TransactionRepo:      newPgxTransactionRepository(dbPool),
		ScheduledPaymentRepo: newPgxScheduledPaymentRepository(dbPool),
		UserRepo:             newPgxUserRepository(dbPool),
		ReportingRepo:        newReportingRepository(dbPool),
		UnitOfWork:           newPgxUnitOfWork(dbPool),
		Provisioner:          newPgxProvisioner(dbPool),
	}
}
