package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishInvokesSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var seen []int64

	d.Subscribe(EventTicketCreated, func(_ context.Context, e Event) error {
		seen = append(seen, e.TicketID)
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: 101}))
	assert.Equal(t, []int64{101}, seen)
}

func TestPublishSkipsOtherEventTypes(t *testing.T) {
	d := NewInMemoryDispatcher()
	called := false

	d.Subscribe(EventTicketUpdated, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCreated, TicketID: 101}))
	assert.False(t, called)
}

func TestFailingHandlerDoesNotStopOthers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var order []string

	d.Subscribe(EventTicketCommented, func(context.Context, Event) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventTicketCommented, func(context.Context, Event) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventTicketCommented}))
	assert.Equal(t, []string{"first", "second"}, order)
}
