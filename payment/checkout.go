package payment

import (
	"context"
	"fmt"
	"net/http"
	"registration/clients"
	"registration/entity"
	"registration/event"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
)

const (
	ProviderStripe = "stripe"
	ProviderLawPay = "lawpay"
)

// Checkout completes a reservation through the ordering API's checkout
// endpoint. The vendor widget tokenizes the card on the client; the token
// arrives in Params under tokenParam.
type Checkout struct {
	name       string
	tokenParam string
	pctx       Context
	orders     clients.OrderingClient
}

// NewCheckoutProvider returns a Constructor for a checkout based vendor.
func NewCheckoutProvider(name, tokenParam string, httpClient *http.Client) Constructor {
	return func(pctx Context) (Provider, error) {
		opts := []clients.Option{}
		if httpClient != nil {
			opts = append(opts, clients.WithHTTPClient(httpClient))
		}

		c, err := clients.New(pctx.APIBaseURL, clients.StaticToken(pctx.AccessToken), opts...)
		if err != nil {
			return nil, fmt.Errorf("creating ordering client: %w", err)
		}

		return &Checkout{
			name:       name,
			tokenParam: tokenParam,
			pctx:       pctx,
			orders:     clients.NewOrderingClient(c),
		}, nil
	}
}

func (c *Checkout) PayTicket(ctx context.Context, params Params) error {
	reservation := c.pctx.Reservation

	req := clients.CheckoutRequest{
		BillingAddress1: params["billing_address_1"],
		BillingAddress2: params["billing_address_2"],
		BillingCity:     params["billing_address_city"],
		BillingState:    params["billing_address_state"],
		BillingZipCode:  params["billing_address_zip_code"],
		BillingCountry:  params["billing_address_country"],
	}

	if reservation.AmountDue() {
		token := params[c.tokenParam]
		if token == "" {
			return fmt.Errorf("missing %s for a reservation with amount due", c.tokenParam)
		}
		switch c.tokenParam {
		case "payment_method_id":
			req.PaymentMethodID = token
		default:
			req.PaymentToken = token
		}
		req.PaymentProviderID = c.name
	}

	order, err := c.orders.Checkout(ctx, c.pctx.SummitID, reservation.Hash, req)
	if err != nil {
		return err
	}

	reference := order.PaymentGatewayCartID
	if reference == "" {
		reference = order.Number
	}

	amount := order.Amount
	if amount.IsZero() {
		amount = reservation.Amount
	}

	currency := order.Currency
	if currency == "" {
		currency = reservation.Currency
	}

	paid := event.NewReservationPaid(c.pctx.IdempotencyKey, entity.Checkout{
		Provider:             c.name,
		ReservationHash:      reservation.Hash,
		OrderNumber:          order.Number,
		Amount:               amount,
		Currency:             currency,
		TransactionReference: reference,
	})
	if err := c.pctx.Publisher.Publish(ctx, paid); err != nil {
		return fmt.Errorf("publishing reservation paid: %w", err)
	}

	log.FromContext(ctx).WithField("order_number", order.Number).Info("Reservation checked out")

	return nil
}

// RegisterDefaults adds the built-in providers.
func RegisterDefaults(r *Registry, httpClient *http.Client) {
	r.Register(ProviderStripe, NewCheckoutProvider(ProviderStripe, "payment_method_id", httpClient))
	r.Register(ProviderLawPay, NewCheckoutProvider(ProviderLawPay, "token", httpClient))
}
