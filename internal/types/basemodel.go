package types

import (
	"context"
	"time"
)

// BaseModel carries the audit fields shared by all persisted records.
type BaseModel struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy string    `json:"created_by"`
	UpdatedBy string    `json:"updated_by"`
}

// NewBaseModel stamps the audit fields from the context and the given time.
// The time is passed in rather than read from the wall clock so date-based
// behavior stays testable.
func NewBaseModel(ctx context.Context, now time.Time) BaseModel {
	return BaseModel{
		CreatedAt: now,
		UpdatedAt: now,
		CreatedBy: GetActorID(ctx),
		UpdatedBy: GetActorID(ctx),
	}
}
