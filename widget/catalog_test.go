package widget_test

import (
	"context"
	"registration/apierr"
	"registration/entity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTicketTypesAndTaxes(t *testing.T) {
	h := newHarness(t)
	h.api.ticketTypes = []entity.TicketType{{ID: 1, Name: "General"}, {ID: 2, Name: "VIP"}}
	h.api.taxTypes = []entity.TaxType{{ID: 9, Name: "VAT"}}

	catalog, err := h.widget.LoadTicketTypesAndTaxes(context.Background(), testSummitID)
	require.NoError(t, err)
	assert.Len(t, catalog.TicketTypes, 2)
	assert.Len(t, catalog.TaxTypes, 1)

	state := h.store.Snapshot()
	assert.Equal(t, h.api.ticketTypes, state.Settings.TicketTypes)
	assert.Equal(t, h.api.taxTypes, state.Settings.TaxTypes)
	assert.False(t, state.Loading)

	assert.Equal(t, []string{
		"event.LoadingStarted",
		"event.TicketTypesLoaded",
		"event.TaxTypesLoaded",
		"event.LoadingStopped",
	}, h.publisher.names())
}

func TestLoadTicketTypesAndTaxes_tax_failure_keeps_nothing(t *testing.T) {
	h := newHarness(t)
	h.api.ticketTypes = []entity.TicketType{{ID: 1, Name: "General"}}
	h.api.taxTypesErr = statusError(500, "boom")

	_, err := h.widget.LoadTicketTypesAndTaxes(context.Background(), testSummitID)
	require.Error(t, err)
	assert.True(t, apierr.Is(err, apierr.KindServerError))

	state := h.store.Snapshot()
	assert.Empty(t, state.Settings.TicketTypes)
	assert.Empty(t, state.Settings.TaxTypes)
	assert.False(t, state.Loading)
	assert.Zero(t, h.auth.count())
}

func TestLoadTicketTypesAndTaxes_auth_failure_is_escalated(t *testing.T) {
	h := newHarness(t)
	h.api.ticketTypesErr = statusError(401, "")

	_, err := h.widget.LoadTicketTypesAndTaxes(context.Background(), testSummitID)
	require.Error(t, err)
	assert.Equal(t, 1, h.auth.count())
	assert.False(t, h.store.Snapshot().Loading)
}

func TestLoadTicketTypesAndTaxes_transient_failures_are_not_escalated(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		wantKind apierr.Kind
	}{
		{name: "timeout", err: context.DeadlineExceeded, wantKind: apierr.KindTimeout},
		{name: "canceled", err: context.Canceled, wantKind: apierr.KindCanceled},
		{name: "not found", err: statusError(404, "summit not found"), wantKind: apierr.KindNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			h.api.ticketTypesErr = tc.err

			_, err := h.widget.LoadTicketTypesAndTaxes(context.Background(), testSummitID)
			require.Error(t, err)
			assert.Equal(t, tc.wantKind, apierr.KindOf(err))

			state := h.store.Snapshot()
			assert.False(t, state.Loading)
			assert.False(t, state.LoginRequested)
			assert.Empty(t, state.Settings.TicketTypes)
			assert.Zero(t, h.auth.count())
		})
	}
}
