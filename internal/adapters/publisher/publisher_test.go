package publisher

import (
	"context"
	"roadtrip-planner/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderKeepsOrder(t *testing.T) {
	var r Recorder
	ctx := context.Background()

	require.NoError(t, r.Publish(ctx, ports.Event{Type: ports.EventStopsChanged}))
	require.NoError(t, r.Publish(ctx, ports.Event{Type: ports.EventTripCalculated}))

	assert.Equal(t, []string{ports.EventStopsChanged, ports.EventTripCalculated}, r.Types())
}

func TestNATSPublisherRejectsCancelledContext(t *testing.T) {
	p := NewNATSPublisherConn(nil, "roadtrip.session")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Publish(ctx, ports.Event{Type: ports.EventTripFailed})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNopDropsEvents(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), ports.Event{Type: ports.EventStopsChanged}))
}
