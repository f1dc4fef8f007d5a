package widget_test

import (
	"context"
	"errors"
	"registration/entity"
	"registration/widget"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoginCode(t *testing.T) {
	h := newHarness(t)

	var sentTo string
	res, err := h.widget.GetLoginCode(context.Background(), "a@b.com", func(_ context.Context, email string) (entity.CodeRequestResponse, error) {
		sentTo = email
		return entity.CodeRequestResponse{Response: "6"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "6", res.Response)
	assert.Equal(t, "a@b.com", sentTo)

	state := h.store.Snapshot()
	assert.Equal(t, entity.PasswordlessChallenge{Email: "a@b.com", CodeLength: "6"}, state.Passwordless)
}

func TestGetLoginCode_failure_is_returned(t *testing.T) {
	h := newHarness(t)
	dispatchErr := errors.New("network down")

	_, err := h.widget.GetLoginCode(context.Background(), "a@b.com", func(context.Context, string) (entity.CodeRequestResponse, error) {
		return entity.CodeRequestResponse{}, dispatchErr
	})
	require.ErrorIs(t, err, dispatchErr)

	state := h.store.Snapshot()
	assert.Equal(t, "a@b.com", state.Passwordless.Email)
	assert.Empty(t, state.Passwordless.CodeLength)
}

func TestPasswordlessLogin(t *testing.T) {
	testCases := []struct {
		name      string
		result    entity.LoginResult
		err       error
		wantError bool
	}{
		{
			name:   "accepted",
			result: entity.LoginResult{AccessToken: "at"},
		},
		{
			name:      "rejected",
			result:    entity.LoginResult{Error: "invalid_grant", ErrorDescription: "code expired"},
			wantError: true,
		},
		{
			name:      "network failure",
			err:       errors.New("connection reset"),
			wantError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			_, err := h.widget.GetLoginCode(context.Background(), "a@b.com", func(context.Context, string) (entity.CodeRequestResponse, error) {
				return entity.CodeRequestResponse{Response: "6"}, nil
			})
			require.NoError(t, err)

			var gotCode, gotEmail string
			res, err := h.widget.PasswordlessLogin(context.Background(), h.store.Snapshot(), "123456", func(_ context.Context, code, email string) (entity.LoginResult, error) {
				gotCode, gotEmail = code, email
				return tc.result, tc.err
			})
			require.NoError(t, err)

			assert.Equal(t, "123456", gotCode)
			assert.Equal(t, "a@b.com", gotEmail)
			assert.Equal(t, tc.wantError, res.Failed())
			assert.Equal(t, tc.wantError, h.store.Snapshot().Passwordless.Error)
		})
	}
}

func TestPasswordlessLogin_requires_pending_challenge(t *testing.T) {
	h := newHarness(t)

	_, err := h.widget.PasswordlessLogin(context.Background(), h.store.Snapshot(), "123456", func(context.Context, string, string) (entity.LoginResult, error) {
		t.Fatal("redeem must not be called")
		return entity.LoginResult{}, nil
	})
	require.ErrorIs(t, err, widget.ErrNoPendingChallenge)
}
