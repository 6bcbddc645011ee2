// Package publisher emits audit events to a store, synchronously or through
// a buffered background worker.
package publisher

import (
	"context"
	"sync"
	"time"

	audit "member-gateway/pkg/platform/audit"
)

// Publisher writes audit events to its store. With an async buffer, Emit
// never blocks the request path; events that cannot be queued are dropped
// rather than failing the business operation.
type Publisher struct {
	store audit.Store

	inbox  chan audit.Event
	done   chan struct{}
	closed sync.Once
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithAsyncBuffer enables background publishing through a channel of the
// given capacity.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.inbox = make(chan audit.Event, size)
	}
}

// NewPublisher constructs a publisher over the given store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store, done: make(chan struct{})}
	for _, opt := range opts {
		opt(p)
	}
	if p.inbox != nil {
		go p.drain()
	}
	return p
}

// Emit records an event. Timestamps default to now.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if p.inbox == nil {
		return p.store.Append(ctx, event)
	}
	select {
	case p.inbox <- event:
	default:
		// Full buffer: drop rather than stall the caller.
	}
	return nil
}

// Close flushes the async buffer and stops the worker. Safe to call more
// than once.
func (p *Publisher) Close() {
	p.closed.Do(func() {
		if p.inbox == nil {
			close(p.done)
			return
		}
		close(p.inbox)
		<-p.done
	})
}

func (p *Publisher) drain() {
	defer close(p.done)
	for event := range p.inbox {
		_ = p.store.Append(context.Background(), event)
	}
}
