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

	var seen []Event
	d.Subscribe(EventBugCreated, func(_ context.Context, e Event) error {
		seen = append(seen, e)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventBugCreated, BugID: "b-1"})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, "b-1", seen[0].BugID)
}

func TestDispatcherIgnoresOtherTypes(t *testing.T) {
	d := NewInMemoryDispatcher()

	called := false
	d.Subscribe(EventBugDeleted, func(_ context.Context, e Event) error {
		called = true
		return nil
	})

	_ = d.Publish(context.Background(), Event{Type: EventBugCreated})
	assert.False(t, called)
}

func TestDispatcherContinuesAfterHandlerError(t *testing.T) {
	d := NewInMemoryDispatcher()

	second := false
	d.Subscribe(EventBugUpdated, func(_ context.Context, e Event) error {
		return errors.New("first handler failed")
	})
	d.Subscribe(EventBugUpdated, func(_ context.Context, e Event) error {
		second = true
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventBugUpdated})
	require.NoError(t, err)
	assert.True(t, second)
}
