package notify

import (
	"context"

	"go.uber.org/zap"
)

// Event describes a session change delivered to the counterparty. UserID is
// the recipient, ActorID whoever triggered the change.
type Event struct {
	UserID   uint
	ActorID  *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Sink interface {
	Deliver(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sinks []Sink
	queue chan Event
	log   *zap.Logger
}

func NewDispatcher(log *zap.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan Event, 100),
		log:   log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		for _, sink := range d.sinks {
			if err := sink.Deliver(context.Background(), ev); err != nil {
				d.log.Warn("notify delivery failed",
					zap.String("action", ev.Action),
					zap.Uint("user_id", ev.UserID),
					zap.Error(err),
				)
			}
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// Full queue: drop rather than block a request.
		d.log.Warn("notify queue full, dropping event",
			zap.String("action", ev.Action),
			zap.Uint("user_id", ev.UserID),
		)
	}
}
