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

	var got []Event
	d.Subscribe(EventStampAdded, func(ctx context.Context, event Event) error {
		got = append(got, event)
		return nil
	})
	d.Subscribe(EventRewardRedeemed, func(ctx context.Context, event Event) error {
		t.Fatal("handler for a different event type invoked")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventStampAdded, CustomerID: "C00001"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "C00001", got[0].CustomerID)
}

func TestDispatcherHandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()

	second := false
	d.Subscribe(EventCustomerJoined, func(ctx context.Context, event Event) error {
		return errors.New("boom")
	})
	d.Subscribe(EventCustomerJoined, func(ctx context.Context, event Event) error {
		second = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventCustomerJoined})
	require.NoError(t, err)
	assert.True(t, second)
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventRewardUnlocked}))
}
