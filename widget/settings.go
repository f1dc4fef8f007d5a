package widget

import (
	"context"
	"registration/entity"
	"registration/event"
	"time"
)

type InitialSettings struct {
	APIBaseURL    string
	Summit        entity.SummitData
	MarketingData map[string]string
	Profile       *entity.Profile
}

func (w *Widget) LoadSession(ctx context.Context, settings InitialSettings) {
	ctx, key := operation(ctx)
	w.emit(ctx, event.NewInitialSettingsLoaded(key, settings.APIBaseURL, settings.Summit, settings.MarketingData, settings.Profile))
}

func (w *Widget) LoadProfileData(ctx context.Context, profile *entity.Profile) {
	ctx, key := operation(ctx)
	w.emit(ctx, event.NewProfileDataLoaded(key, profile))
}

func (w *Widget) ClearWidgetState(ctx context.Context) {
	ctx, key := operation(ctx)
	w.emit(ctx, event.NewWidgetStateCleared(key))
}

func (w *Widget) GoToLogin(ctx context.Context) {
	ctx, key := operation(ctx)
	w.emit(ctx, event.NewLoginRequested(key))
}

func (w *Widget) UpdateClock(ctx context.Context, ts time.Time) {
	ctx, key := operation(ctx)
	w.emit(ctx, event.NewClockUpdated(key, ts))
}

// ClearReservation forgets the active reservation locally without asking the
// server to release it.
func (w *Widget) ClearReservation(ctx context.Context) {
	ctx, key := operation(ctx)
	w.emit(ctx, event.NewReservationCleared(key))
}
