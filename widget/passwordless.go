package widget

import (
	"context"
	"fmt"
	"registration/entity"
	"registration/event"
	"registration/session"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

// CodeDispatcher asks the identity provider to send a one-time code.
type CodeDispatcher func(ctx context.Context, email string) (entity.CodeRequestResponse, error)

// CodeRedeemer exchanges a one-time code for a login.
type CodeRedeemer func(ctx context.Context, code, email string) (entity.LoginResult, error)

// GetLoginCode records email as the pending challenge and requests a code
// for it. The code length the provider chose is recorded on success.
func (w *Widget) GetLoginCode(ctx context.Context, email string, dispatch CodeDispatcher) (entity.CodeRequestResponse, error) {
	ctx, key := operation(ctx)
	w.emit(ctx, event.NewPasswordlessCodeRequested(key, email))

	res, err := dispatch(ctx, email)
	if err != nil {
		return entity.CodeRequestResponse{}, err
	}

	w.emit(ctx, event.NewPasswordlessCodeLengthSet(key, res.Response))

	return res, nil
}

// PasswordlessLogin redeems code for the pending challenge. Rejected codes
// and transport failures flag the challenge and are not returned as errors.
func (w *Widget) PasswordlessLogin(ctx context.Context, snapshot session.Snapshot, code string, redeem CodeRedeemer) (entity.LoginResult, error) {
	if !snapshot.Passwordless.Pending() {
		return entity.LoginResult{}, ErrNoPendingChallenge
	}

	ctx, key := operation(ctx)

	res, err := redeem(ctx, code, snapshot.Passwordless.Email)
	if err != nil {
		log.FromContext(ctx).WithError(err).Warn("Failed to redeem login code")
		w.emit(ctx, event.NewPasswordlessErrorSet(key))
		return entity.LoginResult{Error: fmt.Sprintf("redeeming code: %v", err)}, nil
	}

	if res.Failed() {
		w.emit(ctx, event.NewPasswordlessErrorSet(key))
	}

	return res, nil
}
