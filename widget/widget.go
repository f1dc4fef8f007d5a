package widget

import (
	"context"
	"errors"
	"registration/clients"
	"registration/entity"
	"registration/payment"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/google/uuid"
)

var (
	ErrNoActiveReservation = errors.New("no active reservation")
	ErrNoPendingChallenge  = errors.New("no passwordless code was requested")
)

type OrderingAPI interface {
	TicketTypes(ctx context.Context, summitID int64) ([]entity.TicketType, error)
	TaxTypes(ctx context.Context, summitID int64) ([]entity.TaxType, error)
	Reserve(ctx context.Context, summitID int64, reservation entity.ReservationEntity) (entity.Reservation, error)
	DeleteReservation(ctx context.Context, summitID int64, hash string) error
	MyInvitation(ctx context.Context, summitID int64) (entity.Invitation, error)
}

type Publisher interface {
	Publish(ctx context.Context, event any) error
}

type PaymentRegistry interface {
	Pay(ctx context.Context, id string, pctx payment.Context, params payment.Params) error
}

// AuthErrorHandler owns session expiry and re-authentication. It receives
// every failure the widget does not classify itself.
type AuthErrorHandler interface {
	HandleAuthError(ctx context.Context, err error)
}

type AuthErrorHandlerFunc func(ctx context.Context, err error)

func (f AuthErrorHandlerFunc) HandleAuthError(ctx context.Context, err error) {
	f(ctx, err)
}

type Deps struct {
	API        OrderingAPI
	Publisher  Publisher
	Providers  PaymentRegistry
	Tokens     clients.TokenSource
	AuthErrors AuthErrorHandler
}

type Widget struct {
	api        OrderingAPI
	publisher  Publisher
	providers  PaymentRegistry
	tokens     clients.TokenSource
	authErrors AuthErrorHandler
}

func New(deps Deps) *Widget {
	authErrors := deps.AuthErrors
	if authErrors == nil {
		authErrors = AuthErrorHandlerFunc(func(ctx context.Context, err error) {
			log.FromContext(ctx).WithError(err).Error("Unhandled auth error")
		})
	}

	return &Widget{
		api:        deps.API,
		publisher:  deps.Publisher,
		providers:  deps.Providers,
		tokens:     deps.Tokens,
		authErrors: authErrors,
	}
}

// operation returns the idempotency key shared by all events one call emits.
func operation(ctx context.Context) (context.Context, string) {
	key := uuid.NewString()
	logger := log.FromContext(ctx).WithField("operation_id", key)
	return log.ToContext(ctx, logger), key
}

// emit publishes a state change. Delivery problems are logged; they never
// change the outcome of the operation that caused them.
func (w *Widget) emit(ctx context.Context, e any) {
	if err := w.publisher.Publish(ctx, e); err != nil {
		log.FromContext(ctx).WithError(err).Errorf("Failed to publish %T", e)
	}
}
