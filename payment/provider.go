package payment

import (
	"context"
	"errors"
	"fmt"
	"registration/entity"
	"sort"
	"sync"
)

var (
	ErrUnknownProvider     = errors.New("unknown payment provider")
	ErrNoActiveReservation = errors.New("no active reservation to pay")
)

type Publisher interface {
	Publish(ctx context.Context, event any) error
}

// Context is everything a provider gets to collect payment for one
// reservation.
type Context struct {
	Reservation    entity.Reservation
	SummitID       int64
	UserProfile    *entity.Profile
	AccessToken    string
	APIBaseURL     string
	Publisher      Publisher
	IdempotencyKey string
}

// Params are the provider specific inputs gathered by the payment form,
// such as a tokenized card or billing address.
type Params map[string]string

// Provider collects payment for the reservation it was built for and
// publishes event.ReservationPaid when done.
type Provider interface {
	PayTicket(ctx context.Context, params Params) error
}

type Constructor func(pctx Context) (Provider, error)

type Registry struct {
	lock         sync.RWMutex
	constructors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{
		constructors: make(map[string]Constructor),
	}
}

func (r *Registry) Register(id string, c Constructor) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.constructors[id] = c
}

func (r *Registry) Providers() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	ids := make([]string, 0, len(r.constructors))
	for id := range r.constructors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) Build(id string, pctx Context) (Provider, error) {
	r.lock.RLock()
	c, ok := r.constructors[id]
	r.lock.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, id)
	}

	p, err := c(pctx)
	if err != nil {
		return nil, fmt.Errorf("building payment provider %q: %w", id, err)
	}

	return p, nil
}

// Pay builds the provider for id and immediately collects payment.
func (r *Registry) Pay(ctx context.Context, id string, pctx Context, params Params) error {
	if pctx.Reservation.Hash == "" {
		return ErrNoActiveReservation
	}

	p, err := r.Build(id, pctx)
	if err != nil {
		return err
	}

	if err := p.PayTicket(ctx, params); err != nil {
		return fmt.Errorf("paying with %q: %w", id, err)
	}

	return nil
}
