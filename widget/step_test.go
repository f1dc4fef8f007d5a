package widget_test

import (
	"context"
	"registration/entity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeStep(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.widget.ChangeStep(context.Background(), entity.StepEnterDetails))
	assert.Equal(t, entity.StepEnterDetails, h.store.Snapshot().Step)

	// Going back is allowed.
	require.NoError(t, h.widget.ChangeStep(context.Background(), entity.StepSelectTicket))
	assert.Equal(t, entity.StepSelectTicket, h.store.Snapshot().Step)
	assert.False(t, h.store.Snapshot().Loading)
}

func TestChangeStep_rejects_unknown_step(t *testing.T) {
	h := newHarness(t)

	err := h.widget.ChangeStep(context.Background(), entity.PurchaseStep(7))
	require.ErrorIs(t, err, entity.ErrInvalidStep)
	assert.Empty(t, h.publisher.names())
}
