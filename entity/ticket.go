package entity

import (
	"math"

	"github.com/shopspring/decimal"
)

const AccessLevelInPerson = "IN_PERSON"

// UnlimitedQuantity is the MaxQuantity of a ticket type with neither a stock
// limit nor a per order cap.
const UnlimitedQuantity = math.MaxInt

type AccessLevel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BadgeFeature struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BadgeType struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	AccessLevels  []AccessLevel  `json:"access_levels"`
	BadgeFeatures []BadgeFeature `json:"badge_features"`
}

type TaxType struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	TaxID     string          `json:"tax_id"`
	Rate      decimal.Decimal `json:"rate"`
	TicketIDs []int64         `json:"ticket_types"`
}

type TicketType struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Cost                decimal.Decimal `json:"cost"`
	Currency            string          `json:"currency"`
	CurrencySymbol      string          `json:"currency_symbol"`
	QuantityToSell      int             `json:"quantity_2_sell"`
	QuantitySold        int             `json:"quantity_sold"`
	MaxQuantityPerOrder int             `json:"max_quantity_per_order"`
	BadgeType           *BadgeType      `json:"badge_type,omitempty"`
	Taxes               []TaxType       `json:"taxes,omitempty"`
}

// IsInPerson reports whether the ticket's badge grants in-person access.
func (t TicketType) IsInPerson() bool {
	if t.BadgeType == nil {
		return false
	}
	for _, al := range t.BadgeType.AccessLevels {
		if al.Name == AccessLevelInPerson {
			return true
		}
	}
	return false
}

// MaxQuantity is the largest number of tickets of this type a single order
// may hold. A zero QuantityToSell means unlimited stock and a zero
// MaxQuantityPerOrder means no cap.
func (t TicketType) MaxQuantity() int {
	remaining := -1
	if t.QuantityToSell > 0 {
		remaining = t.QuantityToSell - t.QuantitySold
		if remaining < 0 {
			remaining = 0
		}
	}

	switch {
	case remaining < 0 && t.MaxQuantityPerOrder < 1:
		return UnlimitedQuantity
	case remaining < 0:
		return t.MaxQuantityPerOrder
	case t.MaxQuantityPerOrder > 0 && t.MaxQuantityPerOrder < remaining:
		return t.MaxQuantityPerOrder
	default:
		return remaining
	}
}

func (t TicketType) SoldOut() bool {
	return t.MaxQuantity() < 1
}

func (t TicketType) Free() bool {
	return t.Cost.IsZero()
}

type Attendee struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"surname"`
}

type Ticket struct {
	ID         int64      `json:"id"`
	Number     string     `json:"number"`
	TicketType TicketType `json:"ticket_type"`
	Owner      *Attendee  `json:"owner,omitempty"`
}

type Catalog struct {
	TicketTypes []TicketType `json:"ticket_types"`
	TaxTypes    []TaxType    `json:"tax_types"`
}

func (c Catalog) TicketType(id int64) (TicketType, bool) {
	for _, t := range c.TicketTypes {
		if t.ID == id {
			return t, true
		}
	}
	return TicketType{}, false
}
