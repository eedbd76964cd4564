package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/insuranceguard/insuranceguard/internal/domain/ledger"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

type BalanceOperationRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Reason string          `json:"reason" binding:"required"`
}

type LedgerEntryResponse struct {
	ID           string                `json:"id"`
	CustomerID   string                `json:"customer_id"`
	Timestamp    time.Time             `json:"timestamp"`
	Amount       decimal.Decimal       `json:"amount"`
	Type         types.LedgerEntryType `json:"type"`
	Reason       string                `json:"reason"`
	ActorID      string                `json:"actor_id"`
	BalanceAfter decimal.Decimal       `json:"balance_after"`
	ReferenceID  string                `json:"reference_id,omitempty"`
}

func NewLedgerEntryResponse(e *ledger.Entry) *LedgerEntryResponse {
	return &LedgerEntryResponse{
		ID:           e.ID,
		CustomerID:   e.CustomerID,
		Timestamp:    e.Timestamp,
		Amount:       e.Amount,
		Type:         e.Type,
		Reason:       e.Reason,
		ActorID:      e.ActorID,
		BalanceAfter: e.BalanceAfter,
		ReferenceID:  e.ReferenceID,
	}
}

type BalanceResponse struct {
	CustomerID string          `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
}

type LedgerHistoryResponse struct {
	Items []*LedgerEntryResponse `json:"items"`
	Total int                    `json:"total"`
}
