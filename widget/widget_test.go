package widget_test

import (
	"context"
	"fmt"
	"registration/clients"
	"registration/entity"
	"registration/payment"
	"registration/session"
	"registration/widget"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

type recordingPublisher struct {
	lock   sync.Mutex
	store  *session.Store
	events []any
}

func (p *recordingPublisher) Publish(ctx context.Context, e any) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.events = append(p.events, e)
	return p.store.Apply(ctx, e)
}

func (p *recordingPublisher) names() []string {
	p.lock.Lock()
	defer p.lock.Unlock()

	names := make([]string, 0, len(p.events))
	for _, e := range p.events {
		names = append(names, fmt.Sprintf("%T", e))
	}
	return names
}

func (p *recordingPublisher) reset() {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.events = nil
}

type fakeAPI struct {
	lock sync.Mutex

	ticketTypes    []entity.TicketType
	ticketTypesErr error
	taxTypes       []entity.TaxType
	taxTypesErr    error

	reservation entity.Reservation
	reserveErr  error
	reserved    []entity.ReservationEntity

	deleteErr error
	deleted   []string

	invitation    entity.Invitation
	invitationErr error
}

func (f *fakeAPI) TicketTypes(context.Context, int64) ([]entity.TicketType, error) {
	return f.ticketTypes, f.ticketTypesErr
}

func (f *fakeAPI) TaxTypes(context.Context, int64) ([]entity.TaxType, error) {
	return f.taxTypes, f.taxTypesErr
}

func (f *fakeAPI) Reserve(_ context.Context, _ int64, r entity.ReservationEntity) (entity.Reservation, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.reserved = append(f.reserved, r)
	return f.reservation, f.reserveErr
}

func (f *fakeAPI) DeleteReservation(_ context.Context, _ int64, hash string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.deleted = append(f.deleted, hash)
	return f.deleteErr
}

func (f *fakeAPI) MyInvitation(context.Context, int64) (entity.Invitation, error) {
	return f.invitation, f.invitationErr
}

type payCall struct {
	pctx   payment.Context
	params payment.Params
}

type recordingProvider struct {
	lock  *sync.Mutex
	calls *[]payCall
	pctx  payment.Context
}

func (p recordingProvider) PayTicket(_ context.Context, params payment.Params) error {
	p.lock.Lock()
	defer p.lock.Unlock()

	*p.calls = append(*p.calls, payCall{pctx: p.pctx, params: params})
	return nil
}

type authRecorder struct {
	lock sync.Mutex
	errs []error
}

func (a *authRecorder) HandleAuthError(_ context.Context, err error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.errs = append(a.errs, err)
}

func (a *authRecorder) count() int {
	a.lock.Lock()
	defer a.lock.Unlock()

	return len(a.errs)
}

type harness struct {
	widget    *widget.Widget
	api       *fakeAPI
	store     *session.Store
	publisher *recordingPublisher
	auth      *authRecorder

	payLock sync.Mutex
	paid    []payCall
}

const testSummitID = 31

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		api:   &fakeAPI{},
		store: session.NewStore(),
		auth:  &authRecorder{},
	}
	h.publisher = &recordingPublisher{store: h.store}

	providers := payment.NewRegistry()
	providers.Register("test", func(pctx payment.Context) (payment.Provider, error) {
		return recordingProvider{lock: &h.payLock, calls: &h.paid, pctx: pctx}, nil
	})

	h.widget = widget.New(widget.Deps{
		API:        h.api,
		Publisher:  h.publisher,
		Providers:  providers,
		Tokens:     clients.StaticToken("token"),
		AuthErrors: h.auth,
	})

	h.widget.LoadSession(context.Background(), widget.InitialSettings{
		APIBaseURL: "https://api.example.com",
		Summit:     entity.SummitData{ID: testSummitID, Name: "Summit"},
	})
	h.publisher.reset()

	return h
}

func (h *harness) payments() []payCall {
	h.payLock.Lock()
	defer h.payLock.Unlock()

	return append([]payCall(nil), h.paid...)
}

func statusError(code int, message string) error {
	return &clients.StatusError{StatusCode: code, Message: message}
}

func reservationRequest() entity.ReservationRequest {
	return entity.ReservationRequest{
		Provider: "test",
		PersonalInformation: entity.PersonalInformation{
			Email:     "ada@example.com",
			FirstName: "Ada",
			LastName:  "Lovelace",
			Company:   entity.Company{Name: "Analytical Engines"},
		},
		TicketType:     entity.TicketType{ID: 7, Cost: decimal.NewFromInt(20)},
		TicketQuantity: 1,
	}
}
