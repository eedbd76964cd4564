package audit

import (
	"time"

	"github.com/insuranceguard/insuranceguard/internal/types"
)

// Entry is one record in the flat action log shown in the staff log
// channel. Append-only.
type Entry struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Action    types.AuditAction `json:"action"`
	ActorID   string            `json:"actor_id"`
	Details   types.Metadata    `json:"details,omitempty"`
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Details != nil {
		clone.Details = make(types.Metadata, len(e.Details))
		for k, v := range e.Details {
			clone.Details[k] = v
		}
	}
	return &clone
}
