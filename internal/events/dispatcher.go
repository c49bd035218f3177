package events

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fairyhunter13/salon-management-service/internal/obs"
)

// Dispatcher buffers emitted events and publishes them from background
// workers, so request handlers never block on the broker. Intake is closed on
// shutdown and the backlog drained before the process exits.
type Dispatcher struct {
	mu           sync.Mutex
	backlog      []Event
	notify       chan struct{}
	out          chan Event
	shuttingDown atomic.Bool

	emitted   atomic.Uint64
	published atomic.Uint64
	failed    atomic.Uint64

	pub            Publisher
	publishTimeout time.Duration
	wg             sync.WaitGroup
}

// NewDispatcher creates a Dispatcher delivering through pub with a buffered
// output channel.
func NewDispatcher(pub Publisher, outBuffer int, publishTimeout time.Duration) *Dispatcher {
	if outBuffer <= 0 {
		outBuffer = 64
	}
	if publishTimeout <= 0 {
		publishTimeout = 5 * time.Second
	}
	return &Dispatcher{
		notify:         make(chan struct{}, 1),
		out:            make(chan Event, outBuffer),
		pub:            pub,
		publishTimeout: publishTimeout,
	}
}

// Start runs the broker loop and the publish workers.
func (d *Dispatcher) Start(ctx context.Context, workers int) {
	if workers < 1 {
		workers = 1
	}
	d.wg.Add(1)
	go d.broker(ctx)
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx)
	}
}

// broker moves backlog items to the output channel.
func (d *Dispatcher) broker(ctx context.Context) {
	defer d.wg.Done()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		d.flushOnce()
		select {
		case <-ctx.Done():
			return
		case <-d.notify:
		case <-ticker.C:
		}
	}
}

// flushOnce drains backlog into the output buffer.
func (d *Dispatcher) flushOnce() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for len(d.backlog) > 0 && len(d.out) < cap(d.out) {
		ev := d.backlog[0]
		d.backlog = d.backlog[1:]
		d.out <- ev
	}
}

// worker publishes buffered events until the context ends.
func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.out:
			pctx, cancel := context.WithTimeout(context.Background(), d.publishTimeout)
			err := d.pub.Publish(pctx, ev)
			cancel()
			if err != nil {
				d.failed.Add(1)
				obs.Logger.Error("event_publish_failed",
					zap.String("event_id", ev.ID),
					zap.String("type", ev.Type),
					zap.Error(err),
				)
				continue
			}
			d.published.Add(1)
		}
	}
}

// Emit enqueues a lifecycle event. It returns false once intake is closed.
func (d *Dispatcher) Emit(evType string, payload any) bool {
	if d.shuttingDown.Load() {
		return false
	}
	ev := Event{
		ID:         uuid.NewString(),
		Type:       evType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	d.emitted.Add(1)
	d.mu.Lock()
	d.backlog = append(d.backlog, ev)
	d.mu.Unlock()
	select {
	case d.notify <- struct{}{}:
	default:
	}
	return true
}

// BacklogSize returns the number of emitted-but-not-yet-output events.
func (d *Dispatcher) BacklogSize() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.backlog)
}

// Metrics returns counters and sizes for observability.
func (d *Dispatcher) Metrics() (emitted, published, failed uint64, backlog int) {
	return d.emitted.Load(), d.published.Load(), d.failed.Load(), d.BacklogSize()
}

// CloseIntake disallows future emits.
func (d *Dispatcher) CloseIntake() { d.shuttingDown.Store(true) }

// IsShuttingDown reports if intake has been closed.
func (d *Dispatcher) IsShuttingDown() bool { return d.shuttingDown.Load() }

// DrainUntil blocks until every emitted event was published or failed, or the
// context is done.
func (d *Dispatcher) DrainUntil(ctx context.Context) bool {
	for {
		emitted, published, failed, backlog := d.Metrics()
		if backlog == 0 && len(d.out) == 0 && emitted == published+failed {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(50 * time.Millisecond):
		}
	}
}
