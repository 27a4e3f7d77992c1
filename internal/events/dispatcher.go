package events

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"
)

const defaultQueueSize = 256

// Sink consumes dispatched events.
type Sink interface {
	Name() string
	Handle(ctx context.Context, evt Event) error
}

// Dispatcher decouples event producers from sinks through a bounded queue.
type Dispatcher struct {
	queue   chan Event
	sinks   []Sink
	logger  zerolog.Logger
	dropped atomic.Int64
}

var _ Emitter = (*Dispatcher)(nil)

// NewDispatcher builds a dispatcher; call Run to start delivery.
func NewDispatcher(queueSize int, logger zerolog.Logger, sinks ...Sink) *Dispatcher {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Dispatcher{
		queue:  make(chan Event, queueSize),
		sinks:  sinks,
		logger: logger.With().Str("component", "event_dispatcher").Logger(),
	}
}

// Emit enqueues evt. When the queue is full the event is dropped and false returned.
func (d *Dispatcher) Emit(evt Event) bool {
	select {
	case d.queue <- evt:
		return true
	default:
		d.dropped.Add(1)
		d.logger.Warn().Str("kind", string(evt.Kind)).Msg("event queue full, dropping")
		return false
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Run blocks until context cancellation, delivering queued events to every sink.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt := <-d.queue:
			d.deliver(ctx, evt)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, evt Event) {
	for _, sink := range d.sinks {
		if err := sink.Handle(ctx, evt); err != nil {
			d.logger.Warn().Err(err).
				Str("sink", sink.Name()).
				Str("kind", string(evt.Kind)).
				Msg("sink failed")
		}
	}
}
