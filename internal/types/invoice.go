package types

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
)

// ReminderStage is the position of an invoice in the dunning escalation
// sequence. Stage 0 means no reminder sent yet; stage 3 is the last one.
type ReminderStage int

const (
	ReminderStageNone   ReminderStage = 0
	ReminderStageFirst  ReminderStage = 1
	ReminderStageSecond ReminderStage = 2
	ReminderStageThird  ReminderStage = 3

	MaxReminderStage = ReminderStageThird
)

// TaxRate is the flat tax applied to every invoice net amount.
var TaxRate = decimal.NewFromFloat(0.05)

// PaymentTerm is how long after issuance an invoice falls due.
const PaymentTerm = 72 * time.Hour

// surchargeTable maps a reminder stage to the late-fee percentage applied
// to the ORIGINAL gross amount. The first reminder carries no surcharge.
var surchargeTable = map[ReminderStage]decimal.Decimal{
	ReminderStageNone:   decimal.Zero,
	ReminderStageFirst:  decimal.Zero,
	ReminderStageSecond: decimal.NewFromFloat(0.05),
	ReminderStageThird:  decimal.NewFromFloat(0.10),
}

// Surcharge returns the late-fee rate for the stage. Stages past the last
// one keep the final rate, matching repeat reminders on a stage-3 invoice.
func (s ReminderStage) Surcharge() decimal.Decimal {
	if s > MaxReminderStage {
		return surchargeTable[MaxReminderStage]
	}
	if rate, ok := surchargeTable[s]; ok {
		return rate
	}
	return decimal.Zero
}

// Next returns the following stage, capped at the last one.
func (s ReminderStage) Next() ReminderStage {
	if s >= MaxReminderStage {
		return MaxReminderStage
	}
	return s + 1
}

func (s ReminderStage) Validate() error {
	if s < ReminderStageNone || s > MaxReminderStage {
		return ierr.NewError("invalid reminder stage").
			WithHintf("Reminder stage must be between %d and %d", ReminderStageNone, MaxReminderStage).
			Mark(ierr.ErrValidation)
	}
	return nil
}
