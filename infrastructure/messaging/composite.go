package messaging

import (
	"context"

	"journaline/application/ports"
	"journaline/domain/events"
)

// CompositePublisher fans events out to several publishers, typically the
// in-process Dispatcher plus EventBridge. The first error is returned but
// every publisher is attempted.
type CompositePublisher struct {
	publishers []ports.EventPublisher
}

// NewCompositePublisher wraps the given publishers
func NewCompositePublisher(publishers ...ports.EventPublisher) *CompositePublisher {
	return &CompositePublisher{publishers: publishers}
}

var _ ports.EventPublisher = (*CompositePublisher)(nil)

// Publish sends the event to every wrapped publisher
func (c *CompositePublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	var firstErr error
	for _, p := range c.publishers {
		if err := p.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// PublishBatch sends the batch to every wrapped publisher
func (c *CompositePublisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	var firstErr error
	for _, p := range c.publishers {
		if err := p.PublishBatch(ctx, domainEvents); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
