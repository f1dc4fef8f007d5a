package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"registration/apierr"
	"registration/entity"
	"registration/payment"
	"registration/session"
	"registration/widget"
	"strconv"
	"sync"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
)

type Widget interface {
	ChangeStep(ctx context.Context, step entity.PurchaseStep) error
	LoadTicketTypesAndTaxes(ctx context.Context, summitID int64) (entity.Catalog, error)
	ReserveTicket(ctx context.Context, snapshot session.Snapshot, req entity.ReservationRequest, onError widget.ErrorCallback) (entity.Reservation, error)
	RemoveReservedTicket(ctx context.Context, snapshot session.Snapshot) error
	PayTicketWithProvider(ctx context.Context, snapshot session.Snapshot, provider string, params payment.Params) error
	GetLoginCode(ctx context.Context, email string, dispatch widget.CodeDispatcher) (entity.CodeRequestResponse, error)
	PasswordlessLogin(ctx context.Context, snapshot session.Snapshot, code string, redeem widget.CodeRedeemer) (entity.LoginResult, error)
	GetMyInvitation(ctx context.Context, summitID int64) (*entity.Invitation, error)
	ClearWidgetState(ctx context.Context)
}

type StateReader interface {
	Snapshot() session.Snapshot
}

type Identity interface {
	RequestCode(ctx context.Context, email string) (entity.CodeRequestResponse, error)
	RedeemCode(ctx context.Context, code, email string) (entity.LoginResult, error)
}

type ProviderLister interface {
	Providers() []string
}

type handler struct {
	widget    Widget
	state     StateReader
	identity  Identity
	providers ProviderLister

	// reserving serializes the active reservation check with its creation.
	reserving *sync.Mutex
}

type providersResponse struct {
	Providers []string `json:"providers"`
}

func (h handler) ListProviders(c echo.Context) error {
	return c.JSON(http.StatusOK, providersResponse{Providers: h.providers.Providers()})
}

func (h handler) GetState(c echo.Context) error {
	return c.JSON(http.StatusOK, h.state.Snapshot())
}

func (h handler) ClearState(c echo.Context) error {
	h.widget.ClearWidgetState(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

type stepRequest struct {
	Step int `json:"step"`
}

func (h handler) PutStep(c echo.Context) error {
	var request stepRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(err)
	}

	step, err := entity.ParseStep(request.Step)
	if err != nil {
		return toHTTPError(err)
	}

	if err := h.widget.ChangeStep(c.Request().Context(), step); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, h.state.Snapshot())
}

func (h handler) LoadCatalog(c echo.Context) error {
	summitID, err := summitIDParam(c)
	if err != nil {
		return err
	}

	catalog, err := h.widget.LoadTicketTypesAndTaxes(c.Request().Context(), summitID)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, newCatalogResponse(catalog))
}

type ticketTypeResponse struct {
	entity.TicketType
	InPerson bool `json:"in_person"`
	Free     bool `json:"free"`
	SoldOut  bool `json:"sold_out"`
	// MaxQuantity is absent when the ticket type has no limit.
	MaxQuantity *int `json:"max_quantity,omitempty"`
}

type catalogResponse struct {
	TicketTypes []ticketTypeResponse `json:"ticket_types"`
	TaxTypes    []entity.TaxType     `json:"tax_types"`
}

func newCatalogResponse(catalog entity.Catalog) catalogResponse {
	res := catalogResponse{
		TicketTypes: make([]ticketTypeResponse, 0, len(catalog.TicketTypes)),
		TaxTypes:    catalog.TaxTypes,
	}

	for _, t := range catalog.TicketTypes {
		tt := ticketTypeResponse{
			TicketType: t,
			InPerson:   t.IsInPerson(),
			Free:       t.Free(),
			SoldOut:    t.SoldOut(),
		}
		if limit := t.MaxQuantity(); limit != entity.UnlimitedQuantity {
			tt.MaxQuantity = &limit
		}
		res.TicketTypes = append(res.TicketTypes, tt)
	}

	return res
}

func (h handler) GetInvitation(c echo.Context) error {
	summitID, err := summitIDParam(c)
	if err != nil {
		return err
	}

	invitation, err := h.widget.GetMyInvitation(c.Request().Context(), summitID)
	if err != nil {
		return toHTTPError(err)
	}
	if invitation == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, invitation)
}

func (h handler) CreateReservation(c echo.Context) error {
	var request entity.ReservationRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(err)
	}

	h.reserving.Lock()
	defer h.reserving.Unlock()

	snapshot := h.state.Snapshot()
	if snapshot.HasReservation() {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "a reservation is already active",
		}
	}

	ticketType, err := orderableTicketType(snapshot.Settings.Catalog(), request)
	if err != nil {
		return err
	}
	request.TicketType = ticketType

	ctx := c.Request().Context()
	reservation, err := h.widget.ReserveTicket(ctx, snapshot, request, func(ctx context.Context, err *apierr.Error) {
		log.FromContext(ctx).WithError(err).Info("Reservation refused by the server")
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, reservation)
}

// orderableTicketType resolves the requested ticket type against the loaded
// catalog and checks the quantity against what one order may hold.
func orderableTicketType(catalog entity.Catalog, request entity.ReservationRequest) (entity.TicketType, error) {
	ticketType, ok := catalog.TicketType(request.TicketType.ID)
	if !ok {
		return entity.TicketType{}, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("unknown ticket type %d", request.TicketType.ID),
		}
	}

	if ticketType.SoldOut() {
		return entity.TicketType{}, &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: fmt.Sprintf("ticket type %d is sold out", ticketType.ID),
		}
	}

	if request.TicketQuantity > ticketType.MaxQuantity() {
		return entity.TicketType{}, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: fmt.Sprintf("at most %d tickets of type %d per order", ticketType.MaxQuantity(), ticketType.ID),
		}
	}

	return ticketType, nil
}

func (h handler) DeleteReservation(c echo.Context) error {
	if err := h.widget.RemoveReservedTicket(c.Request().Context(), h.state.Snapshot()); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

type paymentRequest struct {
	Provider string            `json:"provider"`
	Params   map[string]string `json:"params"`
}

func (h handler) PayReservation(c echo.Context) error {
	var request paymentRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(err)
	}

	err := h.widget.PayTicketWithProvider(c.Request().Context(), h.state.Snapshot(), request.Provider, request.Params)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, h.state.Snapshot().Checkout)
}

type loginCodeRequest struct {
	Email string `json:"email"`
}

func (h handler) RequestLoginCode(c echo.Context) error {
	var request loginCodeRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(err)
	}
	if request.Email == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "email is required",
		}
	}

	res, err := h.widget.GetLoginCode(c.Request().Context(), request.Email, h.identity.RequestCode)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, res)
}

type loginRequest struct {
	Code string `json:"code"`
}

func (h handler) Login(c echo.Context) error {
	var request loginRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(err)
	}

	res, err := h.widget.PasswordlessLogin(c.Request().Context(), h.state.Snapshot(), request.Code, h.identity.RedeemCode)
	if err != nil {
		return toHTTPError(err)
	}
	if res.Failed() {
		return c.JSON(http.StatusUnauthorized, res)
	}

	return c.JSON(http.StatusOK, res)
}

func summitIDParam(c echo.Context) (int64, error) {
	summitID, err := strconv.ParseInt(c.Param("summitID"), 10, 64)
	if err != nil {
		return 0, &echo.HTTPError{
			Code:     http.StatusBadRequest,
			Message:  "invalid summit id",
			Internal: fmt.Errorf("parsing summit id: %w", err),
		}
	}
	return summitID, nil
}

func badRequest(err error) error {
	return &echo.HTTPError{
		Code:     http.StatusBadRequest,
		Message:  "failed to parse request",
		Internal: fmt.Errorf("failed to bind request: %w", err),
	}
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, widget.ErrNoActiveReservation),
		errors.Is(err, payment.ErrNoActiveReservation),
		errors.Is(err, widget.ErrNoPendingChallenge):
		return &echo.HTTPError{Code: http.StatusConflict, Message: err.Error(), Internal: err}
	case errors.Is(err, entity.ErrInvalidStep),
		errors.Is(err, entity.ErrNoTickets),
		errors.Is(err, entity.ErrNoTicketType),
		errors.Is(err, payment.ErrUnknownProvider):
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: err.Error(), Internal: err}
	}

	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Kind.String()
		}
		return &echo.HTTPError{Code: apierr.HTTPStatus(err), Message: message, Internal: err}
	}

	return &echo.HTTPError{
		Code:     http.StatusInternalServerError,
		Message:  http.StatusText(http.StatusInternalServerError),
		Internal: err,
	}
}
