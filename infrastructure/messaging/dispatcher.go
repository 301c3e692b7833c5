// Package messaging carries domain events to interested parties. The
// Dispatcher handles in-process delivery; the eventbridge subpackage
// handles delivery off the box.
package messaging

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"journaline/application/ports"
	"journaline/domain/events"
)

// Handler consumes one domain event. Handler failures are isolated; one
// failing subscriber never blocks delivery to the rest.
type Handler func(ctx context.Context, event events.DomainEvent) error

// Dispatcher is an in-process, type-keyed event fan-out. It implements
// ports.EventPublisher so services can broadcast without knowing who
// listens. It is the notification channel behind change broadcasts:
// subscribers are told something changed and re-fetch state themselves,
// no payload diffing.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

var _ ports.EventPublisher = (*Dispatcher)(nil)

// Subscribe registers a handler for one event type
func (d *Dispatcher) Subscribe(eventType string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

// Publish delivers an event to every handler subscribed to its type.
// Delivery is synchronous and best effort.
func (d *Dispatcher) Publish(ctx context.Context, event events.DomainEvent) error {
	d.mu.RLock()
	subscribers := d.handlers[event.GetEventType()]
	d.mu.RUnlock()

	for _, handler := range subscribers {
		if err := handler(ctx, event); err != nil {
			d.logger.Warn("Event handler failed",
				zap.String("eventType", event.GetEventType()),
				zap.String("aggregateID", event.GetAggregateID()),
				zap.Error(err),
			)
		}
	}

	return nil
}

// PublishBatch delivers events in order
func (d *Dispatcher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	for _, event := range domainEvents {
		if err := d.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
