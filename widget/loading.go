package widget

import (
	"context"
	"registration/event"
)

// The busy flag is a UI liveness signal: set before a network operation
// starts and cleared once it settles, whatever the outcome.

func (w *Widget) startLoading(ctx context.Context, key string) {
	w.emit(ctx, event.NewLoadingStarted(key))
}

func (w *Widget) stopLoading(ctx context.Context, key string) {
	w.emit(ctx, event.NewLoadingStopped(key))
}
