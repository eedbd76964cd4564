package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/insuranceguard/insuranceguard/internal/domain/invoice"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

type IssueInvoiceRequest struct {
	CustomerID string `json:"customer_id" binding:"required"`
}

type InvoiceResponse struct {
	ID             string              `json:"id"`
	CustomerID     string              `json:"customer_id"`
	AmountNet      decimal.Decimal     `json:"amount_net"`
	AmountTax      decimal.Decimal     `json:"amount_tax"`
	AmountGross    decimal.Decimal     `json:"amount_gross"`
	AmountOriginal decimal.Decimal     `json:"amount_original"`
	Paid           bool                `json:"paid"`
	PaidAt         *time.Time          `json:"paid_at,omitempty"`
	DueDate        time.Time           `json:"due_date"`
	ReminderStage  types.ReminderStage `json:"reminder_stage"`
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:             inv.ID,
		CustomerID:     inv.CustomerID,
		AmountNet:      inv.AmountNet,
		AmountTax:      inv.AmountTax,
		AmountGross:    inv.AmountGross,
		AmountOriginal: inv.AmountOriginal,
		Paid:           inv.Paid,
		PaidAt:         inv.PaidAt,
		DueDate:        inv.DueDate,
		ReminderStage:  inv.ReminderStage,
	}
}

type ListInvoicesResponse struct {
	Items []*InvoiceResponse `json:"items"`
	Total int                `json:"total"`
}
