// Package queue moves audit writes off the request path.
package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wishlistapp/accounts/internal/core/domain"
	"github.com/wishlistapp/accounts/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

var (
	// ErrQueueFull is returned when the worker for an event has no buffer left.
	ErrQueueFull = errors.New("audit queue full")
	// ErrClosed is returned for events enqueued after Close.
	ErrClosed = errors.New("audit dispatcher closed")
)

// AuditDispatcher implements ports.AuditRepository by handing events to a
// fixed set of workers that write them to the underlying store. Events are
// sharded by email so one account's events are written in order.
type AuditDispatcher struct {
	workers []chan domain.AuthEvent
	store   ports.AuditRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, store ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuthEvent, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches the workers. ctx is used for the store writes; workers exit
// when ctx is cancelled or after Close has drained their queue.
func (d *AuditDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// InsertEvent enqueues the event without blocking.
func (d *AuditDispatcher) InsertEvent(_ context.Context, event *domain.AuthEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return ErrClosed
	}
	select {
	case d.workers[d.shardIndex(event.Email)] <- *event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *AuditDispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps an email deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuthEvent) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.store.InsertEvent(ctx, &event); err != nil {
				d.log.Error().Err(err).
					Str("event", string(event.Kind)).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
