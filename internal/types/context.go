package types

import "context"

type ContextKey string

const (
	CtxActorID ContextKey = "ctx_actor_id"

	// DefaultActorID is recorded when no acting party is present in the
	// context, e.g. the periodic dunning sweep.
	DefaultActorID = "system"
)

// WithActorID stamps the acting party (staff member or system job) onto the
// context so mutations can attribute ledger and audit entries.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, CtxActorID, actorID)
}

// GetActorID returns the acting party from the context.
func GetActorID(ctx context.Context) string {
	if id, ok := ctx.Value(CtxActorID).(string); ok && id != "" {
		return id
	}
	return DefaultActorID
}
