package widget

import (
	"context"
	"fmt"
	"registration/apierr"
	"registration/entity"
	"registration/event"
	"registration/payment"
	"registration/session"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

// ErrorCallback receives reservation failures the caller asked to handle
// itself, such as sold out inventory or an exhausted promo code.
type ErrorCallback func(ctx context.Context, err *apierr.Error)

// ReserveTicket creates the session's reservation. The caller must not call
// it while snapshot already holds one.
//
// A reservation with nothing to pay goes straight to the payment provider
// chosen in req; otherwise the flow moves to the payment step.
func (w *Widget) ReserveTicket(ctx context.Context, snapshot session.Snapshot, req entity.ReservationRequest, onError ErrorCallback) (entity.Reservation, error) {
	body, err := req.Normalize()
	if err != nil {
		return entity.Reservation{}, fmt.Errorf("invalid reservation request: %w", err)
	}

	ctx, key := operation(ctx)
	w.startLoading(ctx, key)

	reservation, err := w.api.Reserve(ctx, snapshot.Settings.SummitID, body)
	if err != nil {
		classified := w.handleReserveError(ctx, key, err, onError)
		w.emit(ctx, event.NewReservationCreateFailed(key, classified.Kind.String(), classified.StatusCode, classified.Message))
		w.stopLoading(ctx, key)
		return entity.Reservation{}, classified
	}

	reservation = reservation.WithPromoCode(req)
	w.emit(ctx, event.NewReservationCreated(key, reservation))
	w.stopLoading(ctx, key)

	log.FromContext(ctx).
		WithField("reservation_hash", reservation.Hash).
		WithField("amount", reservation.Amount.String()).
		Info("Reservation created")

	if !reservation.AmountDue() {
		snapshot.Reservation = &reservation
		if err := w.PayTicketWithProvider(ctx, snapshot, req.Provider, nil); err != nil {
			return reservation, fmt.Errorf("completing free reservation: %w", err)
		}
		return reservation, nil
	}

	if err := w.ChangeStep(ctx, entity.StepPayment); err != nil {
		return reservation, err
	}

	return reservation, nil
}

func (w *Widget) handleReserveError(ctx context.Context, key string, err error, onError ErrorCallback) *apierr.Error {
	classified := apierr.Classify(err)
	logger := log.FromContext(ctx).WithError(err).WithField("kind", classified.Kind)

	switch {
	case classified.Kind == apierr.KindConflict && onError != nil:
		logger.Info("Reservation precondition failed")
		onError(ctx, classified)
	case classified.Kind == apierr.KindNotFound:
		logger.Info("Reservation rejected")
		w.notify(ctx, key, "Validation Error", classified.Message, entity.NoticeWarning)
	case classified.Kind == apierr.KindServerError:
		logger.Error("Reservation failed on the server")
		w.notify(ctx, key, "Server Error", classified.Message, entity.NoticeError)
	case classified.Kind == apierr.KindTimeout, classified.Kind == apierr.KindCanceled:
		logger.Warn("Reservation did not complete")
	default:
		w.authErrors.HandleAuthError(ctx, classified)
	}

	return classified
}

// RemoveReservedTicket abandons the active reservation and restarts the
// flow. The step is reset whether or not the server accepted the delete;
// the local record is cleared only when it did.
func (w *Widget) RemoveReservedTicket(ctx context.Context, snapshot session.Snapshot) error {
	if snapshot.Reservation == nil {
		return ErrNoActiveReservation
	}
	hash := snapshot.Reservation.Hash

	ctx, key := operation(ctx)
	w.startLoading(ctx, key)

	if err := w.api.DeleteReservation(ctx, snapshot.Settings.SummitID, hash); err != nil {
		classified := w.handleDeleteError(ctx, key, err)
		w.emit(ctx, event.NewReservationDeleteFailed(key, hash, classified.Kind.String(), classified.StatusCode, classified.Message))
		w.resetStep(ctx)
		w.stopLoading(ctx, key)
		return classified
	}

	w.emit(ctx, event.NewReservationDeleted(key, hash))
	w.stopLoading(ctx, key)
	w.resetStep(ctx)

	return nil
}

func (w *Widget) handleDeleteError(ctx context.Context, key string, err error) *apierr.Error {
	classified := apierr.Classify(err)
	logger := log.FromContext(ctx).WithError(err).WithField("kind", classified.Kind)

	switch classified.Kind {
	case apierr.KindTimeout, apierr.KindCanceled, apierr.KindNotFound:
		logger.Warn("Reservation delete failed")
	case apierr.KindServerError:
		logger.Error("Reservation delete failed on the server")
		w.notify(ctx, key, "Server Error", classified.Message, entity.NoticeError)
	default:
		w.authErrors.HandleAuthError(ctx, classified)
	}

	return classified
}

func (w *Widget) resetStep(ctx context.Context) {
	if err := w.ChangeStep(ctx, entity.StepSelectTicket); err != nil {
		log.FromContext(ctx).WithError(err).Error("Failed to reset step")
	}
}

// PayTicketWithProvider collects payment for the snapshot's reservation with
// the provider registered under provider.
func (w *Widget) PayTicketWithProvider(ctx context.Context, snapshot session.Snapshot, provider string, params payment.Params) error {
	if snapshot.Reservation == nil {
		return ErrNoActiveReservation
	}

	token, err := w.tokens.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("getting access token: %w", err)
	}

	ctx, key := operation(ctx)
	w.startLoading(ctx, key)
	defer w.stopLoading(ctx, key)

	pctx := payment.Context{
		Reservation:    *snapshot.Reservation,
		SummitID:       snapshot.Settings.SummitID,
		UserProfile:    snapshot.Settings.UserProfile,
		AccessToken:    token,
		APIBaseURL:     snapshot.Settings.APIBaseURL,
		Publisher:      w.publisher,
		IdempotencyKey: key,
	}

	if err := w.providers.Pay(ctx, provider, pctx, params); err != nil {
		log.FromContext(ctx).WithError(err).WithField("provider", provider).Error("Payment failed")
		return err
	}

	return nil
}

func (w *Widget) notify(ctx context.Context, key, title, message, severity string) {
	w.emit(ctx, event.NewUserNotified(key, entity.Notice{
		Title:    title,
		Message:  message,
		Severity: severity,
	}))
}
