package services

import (
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_dashboard/internal/core/ports/services"
	"github.com/SscSPs/bank_dashboard/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher portssvc.EventPublisher) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.AccountRepo, repos.TransactionRepo, repos.ScheduledPaymentRepo),
		User:      NewUserService(repos.UserRepo),
		Token:     NewTokenService(cfg, repos.UserRepo),
		Transfer:  NewTransferService(repos.UnitOfWork, WithEventPublisher(publisher)),
		Payment:   NewPaymentService(repos.UnitOfWork, WithEventPublisher(publisher)),
		Reporting: NewReportingService(repos.ReportingRepo, repos.AccountRepo),
	}
}
