package message

import (
	"context"
	"fmt"
)

type StateApplier interface {
	Apply(ctx context.Context, event any) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event any) error
}

// Dispatcher is the sink for every widget event. The session state is
// updated before the event leaves the process, so callers observe their own
// writes as soon as Publish returns.
type Dispatcher struct {
	state StateApplier
	bus   EventPublisher
}

func NewDispatcher(state StateApplier, bus EventPublisher) *Dispatcher {
	return &Dispatcher{
		state: state,
		bus:   bus,
	}
}

func (d *Dispatcher) Publish(ctx context.Context, event any) error {
	if err := d.state.Apply(ctx, event); err != nil {
		return fmt.Errorf("applying %T: %w", event, err)
	}

	if d.bus == nil {
		return nil
	}

	if err := d.bus.Publish(ctx, event); err != nil {
		return fmt.Errorf("publishing %T: %w", event, err)
	}

	return nil
}
