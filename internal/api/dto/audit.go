package dto

import (
	"time"

	"github.com/insuranceguard/insuranceguard/internal/domain/audit"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

type AuditEntryResponse struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Action    types.AuditAction `json:"action"`
	ActorID   string            `json:"actor_id"`
	Details   types.Metadata    `json:"details,omitempty"`
}

func NewAuditEntryResponse(e *audit.Entry) *AuditEntryResponse {
	return &AuditEntryResponse{
		ID:        e.ID,
		Timestamp: e.Timestamp,
		Action:    e.Action,
		ActorID:   e.ActorID,
		Details:   e.Details,
	}
}

type ListAuditEntriesResponse struct {
	Items []*AuditEntryResponse `json:"items"`
	Total int                   `json:"total"`
}
