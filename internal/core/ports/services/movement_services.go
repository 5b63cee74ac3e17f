package services

import (
	"context"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
)

// TransferSvc moves funds out of one of the actor's accounts.
type TransferSvc interface {
	Transfer(ctx context.Context, actor domain.Actor, req domain.TransferRequest) (*domain.MovementResult, error)
}

// PaymentSvc settles one of the actor's scheduled payments.
type PaymentSvc interface {
	PayBill(ctx context.Context, actor domain.Actor, paymentID string) (*domain.MovementResult, error)
}

// EventPublisher delivers committed movements to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.MovementEvent) error
	Close() error
}
