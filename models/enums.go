package models

import "fmt"

// MovementKind classifies stock ledger entries. The ledger stores signed
// quantity deltas; the kind fixes which sign is legal.
type MovementKind string

const (
	MovementKindSale      MovementKind = "sale"
	MovementKindManualIn  MovementKind = "manual_in"
	MovementKindManualOut MovementKind = "manual_out"
)

// Inbound reports whether entries of this kind carry a positive delta.
func (k MovementKind) Inbound() bool {
	return k == MovementKindManualIn
}

func (k MovementKind) Valid() bool {
	switch k {
	case MovementKindSale, MovementKindManualIn, MovementKindManualOut:
		return true
	}
	return false
}

type PaymentMode string

const (
	PaymentModeCash  PaymentMode = "Cash"
	PaymentModeUPI   PaymentMode = "UPI"
	PaymentModeCard  PaymentMode = "Card"
	PaymentModeOther PaymentMode = "Other"
)

func (p PaymentMode) Valid() bool {
	switch p {
	case PaymentModeCash, PaymentModeUPI, PaymentModeCard, PaymentModeOther, "":
		return true
	}
	return false
}

func validatePaymentMode(p PaymentMode) error {
	if !p.Valid() {
		return fmt.Errorf("invalid payment mode %q", string(p))
	}
	return nil
}
