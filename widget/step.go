package widget

import (
	"context"
	"fmt"
	"registration/entity"
	"registration/event"
)

// ChangeStep moves the purchase flow to step. Manual navigation between
// valid steps is never refused here; components that trigger automatic
// transitions check their own preconditions.
func (w *Widget) ChangeStep(ctx context.Context, step entity.PurchaseStep) error {
	if !step.Valid() {
		return fmt.Errorf("%w: %d", entity.ErrInvalidStep, step)
	}

	ctx, key := operation(ctx)
	w.startLoading(ctx, key)
	w.emit(ctx, event.NewStepChanged(key, step))
	w.stopLoading(ctx, key)

	return nil
}
