package event

import (
	"registration/entity"
	"time"

	"github.com/shopspring/decimal"
)

type LoadingStarted struct {
	Header header `json:"header"`
}

func NewLoadingStarted(idempotencyKey string) LoadingStarted {
	return LoadingStarted{Header: newHeader(idempotencyKey)}
}

type LoadingStopped struct {
	Header header `json:"header"`
}

func NewLoadingStopped(idempotencyKey string) LoadingStopped {
	return LoadingStopped{Header: newHeader(idempotencyKey)}
}

type InitialSettingsLoaded struct {
	Header        header            `json:"header"`
	APIBaseURL    string            `json:"api_base_url"`
	MarketingData map[string]string `json:"marketing_data"`
	Summit        entity.SummitData `json:"summit"`
	Profile       *entity.Profile   `json:"profile"`
}

func NewInitialSettingsLoaded(idempotencyKey, apiBaseURL string, summit entity.SummitData, marketing map[string]string, profile *entity.Profile) InitialSettingsLoaded {
	return InitialSettingsLoaded{
		Header:        newHeader(idempotencyKey),
		APIBaseURL:    apiBaseURL,
		MarketingData: marketing,
		Summit:        summit,
		Profile:       profile,
	}
}

type ProfileDataLoaded struct {
	Header  header          `json:"header"`
	Profile *entity.Profile `json:"profile"`
}

func NewProfileDataLoaded(idempotencyKey string, profile *entity.Profile) ProfileDataLoaded {
	return ProfileDataLoaded{Header: newHeader(idempotencyKey), Profile: profile}
}

type WidgetStateCleared struct {
	Header header `json:"header"`
}

func NewWidgetStateCleared(idempotencyKey string) WidgetStateCleared {
	return WidgetStateCleared{Header: newHeader(idempotencyKey)}
}

type ClockUpdated struct {
	Header    header    `json:"header"`
	Timestamp time.Time `json:"timestamp"`
}

func NewClockUpdated(idempotencyKey string, ts time.Time) ClockUpdated {
	return ClockUpdated{Header: newHeader(idempotencyKey), Timestamp: ts}
}

type LoginRequested struct {
	Header header `json:"header"`
}

func NewLoginRequested(idempotencyKey string) LoginRequested {
	return LoginRequested{Header: newHeader(idempotencyKey)}
}

type StepChanged struct {
	Header header              `json:"header"`
	Step   entity.PurchaseStep `json:"step"`
}

func NewStepChanged(idempotencyKey string, step entity.PurchaseStep) StepChanged {
	return StepChanged{Header: newHeader(idempotencyKey), Step: step}
}

type TicketTypesLoaded struct {
	Header      header              `json:"header"`
	SummitID    int64               `json:"summit_id"`
	TicketTypes []entity.TicketType `json:"ticket_types"`
}

func NewTicketTypesLoaded(idempotencyKey string, summitID int64, ticketTypes []entity.TicketType) TicketTypesLoaded {
	return TicketTypesLoaded{Header: newHeader(idempotencyKey), SummitID: summitID, TicketTypes: ticketTypes}
}

type TaxTypesLoaded struct {
	Header   header           `json:"header"`
	SummitID int64            `json:"summit_id"`
	TaxTypes []entity.TaxType `json:"tax_types"`
}

func NewTaxTypesLoaded(idempotencyKey string, summitID int64, taxTypes []entity.TaxType) TaxTypesLoaded {
	return TaxTypesLoaded{Header: newHeader(idempotencyKey), SummitID: summitID, TaxTypes: taxTypes}
}

type ReservationCreated struct {
	Header      header             `json:"header"`
	Reservation entity.Reservation `json:"reservation"`
}

func NewReservationCreated(idempotencyKey string, r entity.Reservation) ReservationCreated {
	return ReservationCreated{Header: newHeader(idempotencyKey), Reservation: r}
}

type ReservationCreateFailed struct {
	Header     header `json:"header"`
	Kind       string `json:"kind"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

func NewReservationCreateFailed(idempotencyKey, kind string, statusCode int, message string) ReservationCreateFailed {
	return ReservationCreateFailed{
		Header:     newHeader(idempotencyKey),
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
	}
}

type ReservationDeleted struct {
	Header header `json:"header"`
	Hash   string `json:"hash"`
}

func NewReservationDeleted(idempotencyKey, hash string) ReservationDeleted {
	return ReservationDeleted{Header: newHeader(idempotencyKey), Hash: hash}
}

type ReservationDeleteFailed struct {
	Header     header `json:"header"`
	Hash       string `json:"hash"`
	Kind       string `json:"kind"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

func NewReservationDeleteFailed(idempotencyKey, hash, kind string, statusCode int, message string) ReservationDeleteFailed {
	return ReservationDeleteFailed{
		Header:     newHeader(idempotencyKey),
		Hash:       hash,
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
	}
}

type ReservationCleared struct {
	Header header `json:"header"`
}

func NewReservationCleared(idempotencyKey string) ReservationCleared {
	return ReservationCleared{Header: newHeader(idempotencyKey)}
}

// ReservationPaid is the normalized completion event every payment provider
// emits.
type ReservationPaid struct {
	Header               header          `json:"header"`
	Provider             string          `json:"provider"`
	ReservationHash      string          `json:"reservation_hash"`
	OrderNumber          string          `json:"order_number"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	TransactionReference string          `json:"transaction_reference"`
}

func NewReservationPaid(idempotencyKey string, checkout entity.Checkout) ReservationPaid {
	return ReservationPaid{
		Header:               newHeader(idempotencyKey),
		Provider:             checkout.Provider,
		ReservationHash:      checkout.ReservationHash,
		OrderNumber:          checkout.OrderNumber,
		Amount:               checkout.Amount,
		Currency:             checkout.Currency,
		TransactionReference: checkout.TransactionReference,
	}
}

func (e ReservationPaid) Checkout() entity.Checkout {
	return entity.Checkout{
		Provider:             e.Provider,
		ReservationHash:      e.ReservationHash,
		OrderNumber:          e.OrderNumber,
		Amount:               e.Amount,
		Currency:             e.Currency,
		TransactionReference: e.TransactionReference,
		CompletedAt:          e.Header.PublishedAt,
	}
}

type PasswordlessCodeRequested struct {
	Header header `json:"header"`
	Email  string `json:"email"`
}

func NewPasswordlessCodeRequested(idempotencyKey, email string) PasswordlessCodeRequested {
	return PasswordlessCodeRequested{Header: newHeader(idempotencyKey), Email: email}
}

type PasswordlessCodeLengthSet struct {
	Header header `json:"header"`
	Length string `json:"length"`
}

func NewPasswordlessCodeLengthSet(idempotencyKey, length string) PasswordlessCodeLengthSet {
	return PasswordlessCodeLengthSet{Header: newHeader(idempotencyKey), Length: length}
}

type PasswordlessErrorSet struct {
	Header header `json:"header"`
}

func NewPasswordlessErrorSet(idempotencyKey string) PasswordlessErrorSet {
	return PasswordlessErrorSet{Header: newHeader(idempotencyKey)}
}

type InvitationCleared struct {
	Header header `json:"header"`
}

func NewInvitationCleared(idempotencyKey string) InvitationCleared {
	return InvitationCleared{Header: newHeader(idempotencyKey)}
}

type InvitationLoaded struct {
	Header     header            `json:"header"`
	Invitation entity.Invitation `json:"invitation"`
}

func NewInvitationLoaded(idempotencyKey string, invitation entity.Invitation) InvitationLoaded {
	return InvitationLoaded{Header: newHeader(idempotencyKey), Invitation: invitation}
}

// UserNotified carries a message the UI should show to the user.
type UserNotified struct {
	Header header        `json:"header"`
	Notice entity.Notice `json:"notice"`
}

func NewUserNotified(idempotencyKey string, notice entity.Notice) UserNotified {
	return UserNotified{Header: newHeader(idempotencyKey), Notice: notice}
}
