package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	NoticeWarning = "warning"
	NoticeError   = "error"
)

type Profile struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	FirstName string  `json:"given_name"`
	LastName  string  `json:"family_name"`
	Company   Company `json:"company"`
}

type SummitData struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	TicketTypes []TicketType `json:"ticket_types"`
}

type Settings struct {
	SummitID      int64             `json:"summit_id"`
	APIBaseURL    string            `json:"api_base_url"`
	MarketingData map[string]string `json:"marketing_data,omitempty"`
	UserProfile   *Profile          `json:"user_profile,omitempty"`
	TicketTypes   []TicketType      `json:"ticket_types"`
	TaxTypes      []TaxType         `json:"tax_types"`
}

func (s Settings) Catalog() Catalog {
	return Catalog{TicketTypes: s.TicketTypes, TaxTypes: s.TaxTypes}
}

type Invitation struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Accepted    bool    `json:"is_accepted"`
	TicketTypes []int64 `json:"allowed_ticket_types"`
}

// Checkout is the normalized outcome of a payment provider completing a
// reservation.
type Checkout struct {
	Provider             string          `json:"provider"`
	ReservationHash      string          `json:"reservation_hash"`
	OrderNumber          string          `json:"order_number"`
	Amount               decimal.Decimal `json:"amount"`
	Currency             string          `json:"currency"`
	TransactionReference string          `json:"transaction_reference"`
	CompletedAt          time.Time       `json:"completed_at"`
}

// Notice is a message meant for the end user, carrying the server text
// verbatim.
type Notice struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}
