package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/insuranceguard/insuranceguard/internal/domain/ledger"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/notifier"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

// LedgerService owns every balance movement. The balance check and the
// mutation happen inside one commit, so two racing debits can never both
// succeed against a balance that covers only one of them.
type LedgerService interface {
	// TopUp credits the customer's balance ("aufladung").
	TopUp(ctx context.Context, customerID string, amount decimal.Decimal, reason string) (*ledger.Entry, error)

	// Adjust debits the customer's balance by a manual staff deduction
	// ("abzug"). Fails when the balance does not cover the amount.
	Adjust(ctx context.Context, customerID string, amount decimal.Decimal, reason string) (*ledger.Entry, error)

	// Apply runs an arbitrary ledger operation. Exposed for workflows that
	// compose a balance movement with other mutations in one commit, e.g.
	// payout approval.
	Apply(ctx context.Context, op *ledger.Operation) (*ledger.Entry, error)

	// History returns a customer's balance history in append order.
	History(ctx context.Context, customerID string) ([]*ledger.Entry, error)

	// Balance returns the customer's committed balance.
	Balance(ctx context.Context, customerID string) (decimal.Decimal, error)
}

type ledgerService struct {
	ServiceParams
}

func NewLedgerService(params ServiceParams) LedgerService {
	return &ledgerService{ServiceParams: params}
}

func (s *ledgerService) TopUp(ctx context.Context, customerID string, amount decimal.Decimal, reason string) (*ledger.Entry, error) {
	entry, err := s.Apply(ctx, &ledger.Operation{
		CustomerID: customerID,
		Type:       types.LedgerEntryTypeTopUp,
		Amount:     amount,
		Reason:     reason,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &notifier.Notification{
		Target: notifier.TargetLog,
		Title:  "💰 Guthaben aufgeladen",
		Color:  notifier.ColorSuccess,
		Fields: []notifier.Field{
			{Name: "Kunde", Value: customerID, Inline: true},
			{Name: "Betrag", Value: formatAmount(amount), Inline: true},
			{Name: "Neues Guthaben", Value: formatAmount(entry.BalanceAfter), Inline: true},
		},
	})
	return entry, nil
}

func (s *ledgerService) Adjust(ctx context.Context, customerID string, amount decimal.Decimal, reason string) (*ledger.Entry, error) {
	entry, err := s.Apply(ctx, &ledger.Operation{
		CustomerID: customerID,
		Type:       types.LedgerEntryTypeAdjustment,
		Amount:     amount,
		Reason:     reason,
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &notifier.Notification{
		Target: notifier.TargetLog,
		Title:  "📉 Guthaben abgezogen",
		Color:  notifier.ColorWarning,
		Fields: []notifier.Field{
			{Name: "Kunde", Value: customerID, Inline: true},
			{Name: "Betrag", Value: formatAmount(amount.Neg()), Inline: true},
			{Name: "Neues Guthaben", Value: formatAmount(entry.BalanceAfter), Inline: true},
		},
	})
	return entry, nil
}

// Apply validates the operation, moves the balance and appends the history
// entry, all inside one commit. The entry's BalanceAfter snapshots the
// balance the commit produced.
func (s *ledgerService) Apply(ctx context.Context, op *ledger.Operation) (*ledger.Entry, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	var entry *ledger.Entry
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		cust, err := s.CustomerRepo.Get(ctx, op.CustomerID)
		if err != nil {
			return err
		}

		newBalance := cust.Balance.Add(op.SignedAmount())
		if newBalance.IsNegative() {
			return ierr.NewError("insufficient balance").
				WithHintf("Balance %s does not cover a debit of %s",
					formatAmount(cust.Balance), formatAmount(op.Amount)).
				WithReportableDetails(map[string]any{
					"customer_id": op.CustomerID,
					"balance":     cust.Balance,
					"amount":      op.Amount,
				}).
				Mark(ierr.ErrInsufficientBalance)
		}

		now := s.Clock.Now()
		cust.Balance = newBalance
		cust.UpdatedAt = now
		cust.UpdatedBy = types.GetActorID(ctx)
		if err := s.CustomerRepo.Update(ctx, cust); err != nil {
			return err
		}

		entry = &ledger.Entry{
			ID:           types.GenerateUUIDWithPrefix(types.UUIDPrefixLedgerEntry),
			CustomerID:   op.CustomerID,
			Timestamp:    now,
			Amount:       op.SignedAmount(),
			Type:         op.Type,
			Reason:       op.Reason,
			ActorID:      types.GetActorID(ctx),
			BalanceAfter: newBalance,
			ReferenceID:  op.ReferenceID,
		}
		if err := s.LedgerRepo.Append(ctx, entry); err != nil {
			return err
		}

		if op.Type == types.LedgerEntryTypePayout {
			// the payout workflow records the approval itself
			return nil
		}
		action := types.AuditActionBalanceTopUp
		if op.Type == types.LedgerEntryTypeAdjustment {
			action = types.AuditActionBalanceAdjusted
		}
		return s.appendAudit(ctx, action, types.Metadata{
			"customer_id":   op.CustomerID,
			"type":          op.Type.String(),
			"amount":        op.Amount.StringFixed(2),
			"balance_after": newBalance.StringFixed(2),
			"reason":        op.Reason,
			"reference_id":  op.ReferenceID,
		})
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *ledgerService) History(ctx context.Context, customerID string) ([]*ledger.Entry, error) {
	if _, err := s.CustomerRepo.Get(ctx, customerID); err != nil {
		return nil, err
	}
	return s.LedgerRepo.ListByCustomer(ctx, customerID)
}

func (s *ledgerService) Balance(ctx context.Context, customerID string) (decimal.Decimal, error) {
	cust, err := s.CustomerRepo.Get(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	return cust.Balance, nil
}

func formatAmount(amount decimal.Decimal) string {
	return fmt.Sprintf("%s €", amount.StringFixed(2))
}
