package widget

import (
	"context"
	"registration/apierr"
	"registration/entity"
	"registration/event"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"golang.org/x/sync/errgroup"
)

// LoadTicketTypesAndTaxes fetches ticket types and tax types concurrently.
// Both must succeed; on failure nothing is published and the first error is
// returned classified.
func (w *Widget) LoadTicketTypesAndTaxes(ctx context.Context, summitID int64) (entity.Catalog, error) {
	ctx, key := operation(ctx)
	w.startLoading(ctx, key)
	defer w.stopLoading(ctx, key)

	var catalog entity.Catalog
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticketTypes, err := w.api.TicketTypes(gctx, summitID)
		if err != nil {
			return err
		}
		catalog.TicketTypes = ticketTypes
		return nil
	})

	g.Go(func() error {
		taxTypes, err := w.api.TaxTypes(gctx, summitID)
		if err != nil {
			return err
		}
		catalog.TaxTypes = taxTypes
		return nil
	})

	if err := g.Wait(); err != nil {
		classified := apierr.Classify(err)
		log.FromContext(ctx).WithError(err).WithField("kind", classified.Kind).Warn("Failed to load ticket catalog")

		switch classified.Kind {
		case apierr.KindTimeout, apierr.KindCanceled, apierr.KindNotFound, apierr.KindServerError:
		default:
			w.authErrors.HandleAuthError(ctx, classified)
		}

		return entity.Catalog{}, classified
	}

	w.emit(ctx, event.NewTicketTypesLoaded(key, summitID, catalog.TicketTypes))
	w.emit(ctx, event.NewTaxTypesLoaded(key, summitID, catalog.TaxTypes))

	return catalog, nil
}
