package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturePublisher records published events and can be told to fail.
type capturePublisher struct {
	mu   sync.Mutex
	evs  []Event
	fail bool
}

func (p *capturePublisher) Publish(_ context.Context, ev Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker unavailable")
	}
	p.evs = append(p.evs, ev)
	return nil
}

func (p *capturePublisher) events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.evs...)
}

func TestDispatcherDeliversEmittedEvents(t *testing.T) {
	pub := &capturePublisher{}
	d := NewDispatcher(pub, 8, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx, 2)

	require.True(t, d.Emit("order.created", map[string]string{"order_id": "o1"}))
	require.True(t, d.Emit("order.cancelled", map[string]string{"order_id": "o1"}))

	drainCtx, drainCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer drainCancel()
	require.True(t, d.DrainUntil(drainCtx))

	got := pub.events()
	require.Len(t, got, 2)
	types := map[string]bool{}
	for _, ev := range got {
		assert.NotEmpty(t, ev.ID)
		assert.False(t, ev.OccurredAt.IsZero())
		types[ev.Type] = true
	}
	assert.True(t, types["order.created"])
	assert.True(t, types["order.cancelled"])

	emitted, published, failed, backlog := d.Metrics()
	assert.Equal(t, uint64(2), emitted)
	assert.Equal(t, uint64(2), published)
	assert.Equal(t, uint64(0), failed)
	assert.Equal(t, 0, backlog)
}

func TestDispatcherCountsFailures(t *testing.T) {
	pub := &capturePublisher{fail: true}
	d := NewDispatcher(pub, 8, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx, 1)

	require.True(t, d.Emit("order.created", nil))

	drainCtx, drainCancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer drainCancel()
	require.True(t, d.DrainUntil(drainCtx))

	_, published, failed, _ := d.Metrics()
	assert.Equal(t, uint64(0), published)
	assert.Equal(t, uint64(1), failed)
}

func TestDispatcherClosedIntakeRejectsEmit(t *testing.T) {
	d := NewDispatcher(&capturePublisher{}, 8, time.Second)

	require.True(t, d.Emit("order.created", nil))
	d.CloseIntake()
	assert.True(t, d.IsShuttingDown())
	assert.False(t, d.Emit("order.created", nil), "no intake after shutdown begins")
	assert.Equal(t, 1, d.BacklogSize())
}

func TestDrainUntilHonorsContext(t *testing.T) {
	d := NewDispatcher(&capturePublisher{}, 8, time.Second)
	// Never started, so the backlog cannot drain.
	require.True(t, d.Emit("order.created", nil))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.False(t, d.DrainUntil(ctx))
}
