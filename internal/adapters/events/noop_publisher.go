package events

import (
	"context"

	"github.com/SscSPs/bank_dashboard/internal/core/domain"
	portssvc "github.com/SscSPs/bank_dashboard/internal/core/ports/services"
)

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

var _ portssvc.EventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(context.Context, domain.MovementEvent) error { return nil }

func (NoopPublisher) Close() error { return nil }
