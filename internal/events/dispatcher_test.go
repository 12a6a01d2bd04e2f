package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()

	var placed, accepted int
	d.Subscribe(EventBidPlaced, func(ctx context.Context, e Event) error {
		placed++
		return nil
	})
	d.Subscribe(EventBidPlaced, func(ctx context.Context, e Event) error {
		placed++
		return nil
	})
	d.Subscribe(EventBidAccepted, func(ctx context.Context, e Event) error {
		accepted++
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventBidPlaced}))

	assert.Equal(t, 2, placed, "every subscriber of the type runs")
	assert.Equal(t, 0, accepted, "other types are untouched")
}

func TestDispatcherContinuesPastHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()

	var reached bool
	d.Subscribe(EventBidPlaced, func(ctx context.Context, e Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventBidPlaced, func(ctx context.Context, e Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventBidPlaced}))
	assert.True(t, reached)
}
