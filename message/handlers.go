package message

import (
	"context"
	"fmt"
	"registration/entity"
	"registration/event"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

type CheckoutRepo interface {
	Add(ctx context.Context, checkout entity.Checkout) error
}

// PurchaseListener is told about every completed purchase, once per
// reservation as far as the bus guarantees delivery.
type PurchaseListener interface {
	PurchaseCompleted(ctx context.Context, checkout entity.Checkout) error
}

type PurchaseListenerFunc func(ctx context.Context, checkout entity.Checkout) error

func (f PurchaseListenerFunc) PurchaseCompleted(ctx context.Context, checkout entity.Checkout) error {
	return f(ctx, checkout)
}

func handleRecordCheckout(repo CheckoutRepo) func(context.Context, *event.ReservationPaid) error {
	return func(ctx context.Context, e *event.ReservationPaid) error {
		if err := repo.Add(ctx, e.Checkout()); err != nil {
			return fmt.Errorf("recording checkout: %w", err)
		}

		return nil
	}
}

func handleAnnouncePurchase(l PurchaseListener) func(context.Context, *event.ReservationPaid) error {
	return func(ctx context.Context, e *event.ReservationPaid) error {
		log.FromContext(ctx).
			WithField("reservation_hash", e.ReservationHash).
			WithField("idempotency_key", e.Header.IdempotencyKey).
			Info("Announcing purchase")

		if err := l.PurchaseCompleted(ctx, e.Checkout()); err != nil {
			return fmt.Errorf("announcing purchase: %w", err)
		}

		return nil
	}
}
