package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/insuranceguard/insuranceguard/internal/domain/payout"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

type CreatePayoutRequest struct {
	CustomerID  string          `json:"customer_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

type RejectPayoutRequest struct {
	Reason string `json:"reason"`
}

type PayoutResponse struct {
	ID              string             `json:"id"`
	CustomerID      string             `json:"customer_id"`
	Amount          decimal.Decimal    `json:"amount"`
	Description     string             `json:"description"`
	Status          types.PayoutStatus `json:"status"`
	RequestedBy     string             `json:"requested_by"`
	ResolvedBy      string             `json:"resolved_by,omitempty"`
	ResolvedAt      *time.Time         `json:"resolved_at,omitempty"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
}

func NewPayoutResponse(p *payout.PayoutRequest) *PayoutResponse {
	return &PayoutResponse{
		ID:              p.ID,
		CustomerID:      p.CustomerID,
		Amount:          p.Amount,
		Description:     p.Description,
		Status:          p.Status,
		RequestedBy:     p.RequestedBy,
		ResolvedBy:      p.ResolvedBy,
		ResolvedAt:      p.ResolvedAt,
		RejectionReason: p.RejectionReason,
	}
}

type ListPayoutsResponse struct {
	Items []*PayoutResponse `json:"items"`
	Total int               `json:"total"`
}
