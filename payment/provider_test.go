package payment_test

import (
	"context"
	"errors"
	"registration/entity"
	"registration/payment"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	lock   sync.Mutex
	Events []any
}

func (m *MockPublisher) Publish(_ context.Context, e any) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.Events = append(m.Events, e)
	return nil
}

type fakeProvider struct {
	pctx   payment.Context
	params payment.Params
	err    error
}

func (p *fakeProvider) PayTicket(_ context.Context, params payment.Params) error {
	p.params = params
	return p.err
}

func TestRegistry_Pay_builds_and_invokes_provider(t *testing.T) {
	r := payment.NewRegistry()

	var built *fakeProvider
	r.Register("fake", func(pctx payment.Context) (payment.Provider, error) {
		built = &fakeProvider{pctx: pctx}
		return built, nil
	})

	pctx := payment.Context{
		Reservation: entity.Reservation{Hash: "abc"},
		SummitID:    31,
		AccessToken: "token",
	}
	err := r.Pay(context.Background(), "fake", pctx, payment.Params{"token": "tok_1"})
	require.NoError(t, err)

	require.NotNil(t, built)
	assert.Equal(t, "abc", built.pctx.Reservation.Hash)
	assert.Equal(t, "tok_1", built.params["token"])
}

func TestRegistry_unknown_provider_fails_fast(t *testing.T) {
	r := payment.NewRegistry()
	payment.RegisterDefaults(r, nil)

	_, err := r.Build("paypal", payment.Context{})
	assert.ErrorIs(t, err, payment.ErrUnknownProvider)

	err = r.Pay(context.Background(), "paypal", payment.Context{Reservation: entity.Reservation{Hash: "abc"}}, nil)
	assert.ErrorIs(t, err, payment.ErrUnknownProvider)
}

func TestRegistry_Pay_requires_reservation(t *testing.T) {
	r := payment.NewRegistry()
	payment.RegisterDefaults(r, nil)

	err := r.Pay(context.Background(), payment.ProviderStripe, payment.Context{}, nil)
	assert.ErrorIs(t, err, payment.ErrNoActiveReservation)
}

func TestRegistry_Pay_wraps_provider_error(t *testing.T) {
	r := payment.NewRegistry()
	declined := errors.New("card declined")
	r.Register("fake", func(pctx payment.Context) (payment.Provider, error) {
		return &fakeProvider{err: declined}, nil
	})

	err := r.Pay(context.Background(), "fake", payment.Context{Reservation: entity.Reservation{Hash: "abc"}}, nil)
	assert.ErrorIs(t, err, declined)
}

func TestRegistry_Providers(t *testing.T) {
	r := payment.NewRegistry()
	payment.RegisterDefaults(r, nil)

	assert.Equal(t, []string{payment.ProviderLawPay, payment.ProviderStripe}, r.Providers())
}
