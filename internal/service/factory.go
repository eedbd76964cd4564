package service

import (
	"context"

	"github.com/insuranceguard/insuranceguard/internal/clock"
	"github.com/insuranceguard/insuranceguard/internal/config"
	"github.com/insuranceguard/insuranceguard/internal/domain/audit"
	"github.com/insuranceguard/insuranceguard/internal/domain/customer"
	"github.com/insuranceguard/insuranceguard/internal/domain/invoice"
	"github.com/insuranceguard/insuranceguard/internal/domain/ledger"
	"github.com/insuranceguard/insuranceguard/internal/domain/payout"
	"github.com/insuranceguard/insuranceguard/internal/logger"
	"github.com/insuranceguard/insuranceguard/internal/notifier"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

// TxRunner serializes a multi-repository mutation into one atomic commit.
// The dataset store implements it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     TxRunner
	Clock  clock.Clock
	IDGen  *types.IDGenerator

	// Repositories
	CustomerRepo customer.Repository
	InvoiceRepo  invoice.Repository
	PayoutRepo   payout.Repository
	LedgerRepo   ledger.Repository
	AuditRepo    audit.Repository

	Notifier notifier.Notifier
}

// generateID draws fresh identifiers until kind's store stops reporting a
// collision, up to maxIDAttempts. The generator itself gives no uniqueness
// guarantee.
const maxIDAttempts = 5

// notify delivers best-effort: failures are logged and swallowed, never
// propagated to the caller, and never roll back a committed mutation.
func (p ServiceParams) notify(ctx context.Context, n *notifier.Notification) {
	if p.Notifier == nil {
		return
	}
	if err := p.Notifier.Notify(ctx, n); err != nil {
		p.Logger.Errorw("notification delivery failed",
			"target", n.Target,
			"title", n.Title,
			"error", err,
		)
	}
}

// appendAudit writes an action log entry inside the current commit.
func (p ServiceParams) appendAudit(ctx context.Context, action types.AuditAction, details types.Metadata) error {
	return p.AuditRepo.Append(ctx, &audit.Entry{
		ID:        types.GenerateUUIDWithPrefix(types.UUIDPrefixAuditEntry),
		Timestamp: p.Clock.Now(),
		Action:    action,
		ActorID:   types.GetActorID(ctx),
		Details:   details,
	})
}
