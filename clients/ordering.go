package clients

import (
	"context"
	"fmt"
	"net/url"
	"registration/entity"

	"github.com/shopspring/decimal"
)

const (
	ticketTypesExpand = "badge_type,badge_type.access_levels,badge_type.badge_features"
	reserveExpand     = "tickets,tickets.owner,tickets.ticket_type,tickets.ticket_type.taxes"
	deleteExpand      = "tickets,tickets.owner"
)

type page[T any] struct {
	Total int `json:"total"`
	Data  []T `json:"data"`
}

type OrderingClient struct {
	client *Client
}

func NewOrderingClient(c *Client) OrderingClient {
	return OrderingClient{
		client: c,
	}
}

func summitPath(summitID int64, format string, args ...any) string {
	return fmt.Sprintf("/api/v1/summits/%d", summitID) + fmt.Sprintf(format, args...)
}

func (c OrderingClient) TicketTypes(ctx context.Context, summitID int64) ([]entity.TicketType, error) {
	params := url.Values{"expand": {ticketTypesExpand}}

	var res page[entity.TicketType]
	if err := c.client.Get(ctx, summitPath(summitID, "/ticket-types/allowed"), params, &res); err != nil {
		return nil, fmt.Errorf("getting ticket types: %w", err)
	}

	return res.Data, nil
}

func (c OrderingClient) TaxTypes(ctx context.Context, summitID int64) ([]entity.TaxType, error) {
	var res page[entity.TaxType]
	if err := c.client.Get(ctx, summitPath(summitID, "/tax-types"), nil, &res); err != nil {
		return nil, fmt.Errorf("getting tax types: %w", err)
	}

	return res.Data, nil
}

func (c OrderingClient) Reserve(ctx context.Context, summitID int64, reservation entity.ReservationEntity) (entity.Reservation, error) {
	params := url.Values{"expand": {reserveExpand}}

	var res entity.Reservation
	if err := c.client.Post(ctx, summitPath(summitID, "/orders/reserve"), params, reservation, &res); err != nil {
		return entity.Reservation{}, fmt.Errorf("reserving tickets: %w", err)
	}

	return res, nil
}

func (c OrderingClient) DeleteReservation(ctx context.Context, summitID int64, hash string) error {
	params := url.Values{"expand": {deleteExpand}}

	if err := c.client.Delete(ctx, summitPath(summitID, "/orders/%s", url.PathEscape(hash)), params); err != nil {
		return fmt.Errorf("deleting reservation: %w", err)
	}

	return nil
}

func (c OrderingClient) MyInvitation(ctx context.Context, summitID int64) (entity.Invitation, error) {
	var res entity.Invitation
	if err := c.client.Get(ctx, summitPath(summitID, "/registration-invitations/me"), nil, &res); err != nil {
		return entity.Invitation{}, fmt.Errorf("getting invitation: %w", err)
	}

	return res, nil
}

type CheckoutRequest struct {
	BillingAddress1   string `json:"billing_address_1,omitempty"`
	BillingAddress2   string `json:"billing_address_2,omitempty"`
	BillingCity       string `json:"billing_address_city,omitempty"`
	BillingState      string `json:"billing_address_state,omitempty"`
	BillingZipCode    string `json:"billing_address_zip_code,omitempty"`
	BillingCountry    string `json:"billing_address_country,omitempty"`
	PaymentMethodID   string `json:"payment_method_id,omitempty"`
	PaymentToken      string `json:"token,omitempty"`
	PaymentProviderID string `json:"payment_provider,omitempty"`
}

type Order struct {
	ID                   int64           `json:"id"`
	Number               string          `json:"number"`
	Hash                 string          `json:"hash"`
	Status               string          `json:"status"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	PaymentGatewayCartID string          `json:"payment_gateway_cart_id"`
}

func (c OrderingClient) Checkout(ctx context.Context, summitID int64, hash string, req CheckoutRequest) (Order, error) {
	var res Order
	if err := c.client.Put(ctx, summitPath(summitID, "/orders/%s/checkout", url.PathEscape(hash)), nil, req, &res); err != nil {
		return Order{}, fmt.Errorf("checking out reservation: %w", err)
	}

	return res, nil
}
