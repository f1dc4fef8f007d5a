package entity

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNoTickets    = errors.New("reservation needs at least one ticket")
	ErrNoTicketType = errors.New("reservation needs a ticket type")
)

type Company struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

type PersonalInformation struct {
	Email     string  `json:"email"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Company   Company `json:"company"`
	PromoCode string  `json:"promo_code"`
}

type ReservationRequest struct {
	Provider            string              `json:"provider"`
	PersonalInformation PersonalInformation `json:"personal_information"`
	TicketType          TicketType          `json:"ticket_type"`
	TicketQuantity      int                 `json:"ticket_quantity"`
}

type TicketLineItem struct {
	TypeID    int64   `json:"type_id"`
	PromoCode *string `json:"promo_code"`
}

// ReservationEntity is the body of the reserve call. Exactly one of
// OwnerCompany and OwnerCompanyID is set, or neither when no affiliation
// was given.
type ReservationEntity struct {
	OwnerEmail     string           `json:"owner_email"`
	OwnerFirstName string           `json:"owner_first_name"`
	OwnerLastName  string           `json:"owner_last_name"`
	OwnerCompany   string           `json:"owner_company,omitempty"`
	OwnerCompanyID int64            `json:"owner_company_id,omitempty"`
	Tickets        []TicketLineItem `json:"tickets"`
}

func (r ReservationRequest) promoCode() *string {
	if r.PersonalInformation.PromoCode == "" {
		return nil
	}
	code := r.PersonalInformation.PromoCode
	return &code
}

func (r ReservationRequest) Normalize() (ReservationEntity, error) {
	if r.TicketType.ID == 0 {
		return ReservationEntity{}, ErrNoTicketType
	}
	if r.TicketQuantity < 1 {
		return ReservationEntity{}, ErrNoTickets
	}

	info := r.PersonalInformation
	e := ReservationEntity{
		OwnerEmail:     info.Email,
		OwnerFirstName: info.FirstName,
		OwnerLastName:  info.LastName,
		Tickets:        make([]TicketLineItem, 0, r.TicketQuantity),
	}

	if info.Company.ID != 0 {
		e.OwnerCompanyID = info.Company.ID
	} else {
		e.OwnerCompany = info.Company.Name
	}

	for i := 0; i < r.TicketQuantity; i++ {
		e.Tickets = append(e.Tickets, TicketLineItem{
			TypeID:    r.TicketType.ID,
			PromoCode: r.promoCode(),
		})
	}

	return e, nil
}

type Reservation struct {
	ID             int64           `json:"id"`
	Hash           string          `json:"hash"`
	OwnerEmail     string          `json:"owner_email"`
	OwnerFirstName string          `json:"owner_first_name"`
	OwnerLastName  string          `json:"owner_surname"`
	OwnerCompany   string          `json:"owner_company"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	Tickets        []Ticket        `json:"tickets"`
	PromoCode      *string         `json:"promo_code"`
}

// AmountDue reports whether the reservation needs a payment step.
func (r Reservation) AmountDue() bool {
	return !r.Amount.IsZero()
}

// WithPromoCode stamps the code the reservation was requested with; the
// reserve call does not echo it back.
func (r Reservation) WithPromoCode(req ReservationRequest) Reservation {
	r.PromoCode = req.promoCode()
	return r
}
