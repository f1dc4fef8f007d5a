package entity

import (
	"errors"
	"fmt"
)

var ErrInvalidStep = errors.New("invalid purchase step")

type PurchaseStep int

const (
	StepSelectTicket PurchaseStep = iota
	StepEnterDetails
	StepPayment
)

func (s PurchaseStep) Valid() bool {
	return s >= StepSelectTicket && s <= StepPayment
}

func (s PurchaseStep) String() string {
	switch s {
	case StepSelectTicket:
		return "select_ticket"
	case StepEnterDetails:
		return "enter_details"
	case StepPayment:
		return "payment"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

func ParseStep(n int) (PurchaseStep, error) {
	s := PurchaseStep(n)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStep, n)
	}
	return s, nil
}
