package session_test

import (
	"context"
	"registration/entity"
	"registration/event"
	"registration/session"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apply(t *testing.T, s *session.Store, events ...any) {
	t.Helper()
	for _, e := range events {
		require.NoError(t, s.Apply(context.Background(), e))
	}
}

func TestStore_reservation_lifecycle(t *testing.T) {
	s := session.NewStore()
	reservation := entity.Reservation{Hash: "abc", Amount: decimal.NewFromInt(20)}

	apply(t, s, event.NewReservationCreated("k", reservation))
	require.NotNil(t, s.Snapshot().Reservation)
	assert.Equal(t, "abc", s.Snapshot().Reservation.Hash)

	apply(t, s, event.NewReservationDeleteFailed("k", "abc", "server_error", 500, "boom"))
	require.NotNil(t, s.Snapshot().Reservation, "failed delete keeps the reservation")
	assert.Equal(t, "boom", s.Snapshot().LastError)

	apply(t, s, event.NewReservationDeleted("k", "abc"))
	assert.Nil(t, s.Snapshot().Reservation)
}

func TestStore_payment_completion_clears_reservation(t *testing.T) {
	s := session.NewStore()

	apply(t, s,
		event.NewReservationCreated("k", entity.Reservation{Hash: "abc"}),
		event.NewReservationPaid("k", entity.Checkout{
			Provider:             "stripe",
			ReservationHash:      "abc",
			Amount:               decimal.NewFromInt(20),
			TransactionReference: "pi_1",
		}),
	)

	snap := s.Snapshot()
	assert.Nil(t, snap.Reservation)
	require.NotNil(t, snap.Checkout)
	assert.Equal(t, "pi_1", snap.Checkout.TransactionReference)
	assert.False(t, snap.Checkout.CompletedAt.IsZero())
}

func TestStore_catalog_is_replaced_not_merged(t *testing.T) {
	s := session.NewStore()

	apply(t, s,
		event.NewTicketTypesLoaded("k", 1, []entity.TicketType{{ID: 1}, {ID: 2}}),
		event.NewTicketTypesLoaded("k", 1, []entity.TicketType{{ID: 3}}),
		event.NewTaxTypesLoaded("k", 1, []entity.TaxType{{ID: 9}}),
	)

	settings := s.Snapshot().Settings
	require.Len(t, settings.TicketTypes, 1)
	assert.Equal(t, int64(3), settings.TicketTypes[0].ID)
	assert.Len(t, settings.TaxTypes, 1)
}

func TestStore_passwordless_request_overwrites_challenge(t *testing.T) {
	s := session.NewStore()

	apply(t, s,
		event.NewPasswordlessCodeRequested("k", "old@example.com"),
		event.NewPasswordlessCodeLengthSet("k", "6"),
		event.NewPasswordlessErrorSet("k"),
		event.NewPasswordlessCodeRequested("k", "new@example.com"),
	)

	assert.Equal(t, entity.PasswordlessChallenge{Email: "new@example.com"}, s.Snapshot().Passwordless)
}

func TestStore_loading_flag(t *testing.T) {
	s := session.NewStore()

	apply(t, s, event.NewLoadingStarted("k"))
	assert.True(t, s.Snapshot().Loading)

	apply(t, s, event.NewLoadingStopped("k"))
	assert.False(t, s.Snapshot().Loading)
}

func TestStore_step(t *testing.T) {
	s := session.NewStore()

	apply(t, s, event.NewStepChanged("k", entity.StepPayment))
	assert.Equal(t, entity.StepPayment, s.Snapshot().Step)

	err := s.Apply(context.Background(), event.NewStepChanged("k", entity.PurchaseStep(7)))
	assert.ErrorIs(t, err, entity.ErrInvalidStep)
	assert.Equal(t, entity.StepPayment, s.Snapshot().Step)
}

func TestStore_initial_settings_and_clear(t *testing.T) {
	s := session.NewStore()
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	apply(t, s,
		event.NewInitialSettingsLoaded("k", "https://api.example.com",
			entity.SummitData{ID: 31, TicketTypes: []entity.TicketType{{ID: 1}}},
			map[string]string{"color_primary": "#000"},
			&entity.Profile{Email: "jane@example.com"},
		),
		event.NewClockUpdated("k", now),
		event.NewStepChanged("k", entity.StepEnterDetails),
		event.NewReservationCreated("k", entity.Reservation{Hash: "abc"}),
		event.NewWidgetStateCleared("k"),
	)

	snap := s.Snapshot()
	assert.Equal(t, int64(31), snap.Settings.SummitID)
	assert.Equal(t, "jane@example.com", snap.Settings.UserProfile.Email)
	assert.Equal(t, now, snap.Now)
	assert.Equal(t, entity.StepSelectTicket, snap.Step)
	assert.Nil(t, snap.Reservation)
}

func TestStore_invitation_and_notice(t *testing.T) {
	s := session.NewStore()

	apply(t, s,
		event.NewInvitationLoaded("k", entity.Invitation{ID: 4, Email: "jane@example.com"}),
		event.NewUserNotified("k", entity.Notice{Title: "Server Error", Message: "boom", Severity: entity.NoticeError}),
	)
	require.NotNil(t, s.Snapshot().Invitation)
	require.NotNil(t, s.Snapshot().Notice)
	assert.Equal(t, "boom", s.Snapshot().Notice.Message)

	apply(t, s, event.NewInvitationCleared("k"))
	assert.Nil(t, s.Snapshot().Invitation)
}
