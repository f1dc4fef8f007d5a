package widget

import (
	"context"
	"registration/apierr"
	"registration/entity"
	"registration/event"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

// GetMyInvitation loads the registration invitation of the current user.
// Having no invitation, or no scope to read it, is not an error.
func (w *Widget) GetMyInvitation(ctx context.Context, summitID int64) (*entity.Invitation, error) {
	ctx, key := operation(ctx)
	w.emit(ctx, event.NewInvitationCleared(key))

	invitation, err := w.api.MyInvitation(ctx, summitID)
	if err != nil {
		classified := apierr.Classify(err)
		logger := log.FromContext(ctx).WithError(err).WithField("kind", classified.Kind)

		switch classified.Kind {
		case apierr.KindNotFound, apierr.KindForbidden:
			logger.Debug("No invitation available")
			return nil, nil
		case apierr.KindCanceled:
			logger.Debug("Invitation request canceled")
		case apierr.KindServerError:
			logger.Error("Failed to load invitation")
			w.notify(ctx, key, "Server Error", classified.Message, entity.NoticeError)
		default:
			w.authErrors.HandleAuthError(ctx, classified)
		}

		return nil, classified
	}

	w.emit(ctx, event.NewInvitationLoaded(key, invitation))

	return &invitation, nil
}
