package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_dashboard/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_dashboard/internal/core/ports/services"
)

// movementEngine is the shared plumbing of the transfer and payment engines.
type movementEngine struct {
	BaseService
	uow       portsrepo.UnitOfWork
	publisher portssvc.EventPublisher
	now       func() time.Time
}

// EngineOption is a functional option for configuring a movement engine
type EngineOption func(*movementEngine)

// WithEventPublisher sets where committed movements are announced.
func WithEventPublisher(publisher portssvc.EventPublisher) EngineOption {
	return func(e *movementEngine) {
		if publisher != nil {
			e.publisher = publisher
		}
	}
}

// WithClock overrides the time source used for transaction dates.
func WithClock(now func() time.Time) EngineOption {
	return func(e *movementEngine) {
		if now != nil {
			e.now = now
		}
	}
}

func newMovementEngine(uow portsrepo.UnitOfWork, options ...EngineOption) movementEngine {
	e := movementEngine{
		uow: uow,
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(&e)
	}
	return e
}

// publish announces a committed movement. The ledger result is already
// durable, so a failure here is only logged.
func (e *movementEngine) publish(ctx context.Context, event domain.MovementEvent) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(ctx, event); err != nil {
		e.LogError(ctx, err, "Failed to publish movement event",
			slog.String("kind", string(event.Kind)),
			slog.Any("transaction_ids", event.TransactionIDs))
	}
}
