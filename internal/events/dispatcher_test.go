package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublishRunsEveryHandler(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	d := NewInMemoryDispatcher(zap.New(core))

	var calls []string
	d.Subscribe(EventOrderSubmitted, func(_ context.Context, e Event) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventOrderSubmitted, func(_ context.Context, e Event) error {
		calls = append(calls, "second")
		assert.NotEmpty(t, e.ID)
		return nil
	})
	d.Subscribe(EventComplaintRaised, func(context.Context, Event) error {
		calls = append(calls, "unrelated")
		return nil
	})

	d.Publish(context.Background(), Event{Type: EventOrderSubmitted, AggregateID: "o1"})

	assert.Equal(t, []string{"first", "second"}, calls)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "event handler failed", entry.Message)
	assert.Equal(t, "o1", entry.ContextMap()["aggregate_id"])
}

func TestPublishWithoutSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	assert.NotPanics(t, func() {
		d.Publish(context.Background(), Event{Type: EventComplaintStatusChanged})
	})
}
