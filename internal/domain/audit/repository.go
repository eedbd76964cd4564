package audit

import "context"

// Repository provides access to the action log.
type Repository interface {
	Append(ctx context.Context, e *Entry) error
	// List returns the most recent entries, newest first, up to limit.
	// limit <= 0 returns everything.
	List(ctx context.Context, limit int) ([]*Entry, error)
}
