package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"journaline/domain/core/valueobjects"
	"journaline/domain/events"
)

func TestDispatcher_DeliversByType(t *testing.T) {
	d := NewDispatcher(zap.NewNop())

	var changed, created int
	d.Subscribe("events.changed", func(ctx context.Context, e events.DomainEvent) error {
		changed++
		return nil
	})
	d.Subscribe("event.created", func(ctx context.Context, e events.DomainEvent) error {
		created++
		return nil
	})

	err := d.Publish(context.Background(), events.NewEventsChanged("", time.Now()))
	require.NoError(t, err)

	assert.Equal(t, 1, changed)
	assert.Equal(t, 0, created)
}

func TestDispatcher_HandlerErrorDoesNotBlockOthers(t *testing.T) {
	d := NewDispatcher(zap.NewNop())

	var delivered int
	d.Subscribe("events.changed", func(ctx context.Context, e events.DomainEvent) error {
		return errors.New("subscriber broke")
	})
	d.Subscribe("events.changed", func(ctx context.Context, e events.DomainEvent) error {
		delivered++
		return nil
	})

	err := d.Publish(context.Background(), events.NewEventsChanged("", time.Now()))
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)
}

func TestDispatcher_PublishBatchInOrder(t *testing.T) {
	d := NewDispatcher(zap.NewNop())

	var seen []string
	d.Subscribe("event.created", func(ctx context.Context, e events.DomainEvent) error {
		seen = append(seen, e.GetAggregateID())
		return nil
	})

	a := valueobjects.NewEventID()
	b := valueobjects.NewEventID()
	now := time.Now()
	batch := []events.DomainEvent{
		events.NewEventCreated(a, "first", now, now),
		events.NewEventCreated(b, "second", now, now),
	}

	err := d.PublishBatch(context.Background(), batch)
	require.NoError(t, err)
	assert.Equal(t, []string{a.String(), b.String()}, seen)
}

func TestCompositePublisher_FansOut(t *testing.T) {
	first := NewDispatcher(zap.NewNop())
	second := NewDispatcher(zap.NewNop())

	var a, b int
	first.Subscribe("events.changed", func(ctx context.Context, e events.DomainEvent) error {
		a++
		return nil
	})
	second.Subscribe("events.changed", func(ctx context.Context, e events.DomainEvent) error {
		b++
		return nil
	})

	composite := NewCompositePublisher(first, second)
	err := composite.Publish(context.Background(), events.NewEventsChanged("", time.Now()))
	require.NoError(t, err)

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
