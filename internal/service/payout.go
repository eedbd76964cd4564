package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/insuranceguard/insuranceguard/internal/domain/ledger"
	"github.com/insuranceguard/insuranceguard/internal/domain/payout"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/notifier"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

// PayoutService manages the payout request approval workflow:
// pending -> approved | rejected, resolved exactly once. The balance is
// checked at request time only as advice; the binding check happens at
// approval, inside the commit that debits the balance.
type PayoutService interface {
	Request(ctx context.Context, customerID string, amount decimal.Decimal, description string) (*payout.PayoutRequest, error)
	Approve(ctx context.Context, payoutID string) (*payout.PayoutRequest, error)
	Reject(ctx context.Context, payoutID string, reason string) (*payout.PayoutRequest, error)
	Get(ctx context.Context, payoutID string) (*payout.PayoutRequest, error)
	ListPending(ctx context.Context) ([]*payout.PayoutRequest, error)
}

type payoutService struct {
	ServiceParams
	ledger LedgerService
}

func NewPayoutService(params ServiceParams) PayoutService {
	return &payoutService{
		ServiceParams: params,
		ledger:        NewLedgerService(params),
	}
}

func (s *payoutService) Request(ctx context.Context, customerID string, amount decimal.Decimal, description string) (*payout.PayoutRequest, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ierr.NewError("payout amount must be greater than 0").
			WithHint("Payout amount must be greater than 0").
			Mark(ierr.ErrValidation)
	}

	var req *payout.PayoutRequest
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		cust, err := s.CustomerRepo.Get(ctx, customerID)
		if err != nil {
			return err
		}

		// Advisory check only: the balance may change before approval, and
		// approval re-validates under its own commit.
		if amount.GreaterThan(cust.Balance) {
			return ierr.NewError("insufficient balance").
				WithHintf("Balance %s does not cover a payout of %s",
					formatAmount(cust.Balance), formatAmount(amount)).
				WithReportableDetails(map[string]any{
					"customer_id": customerID,
					"balance":     cust.Balance,
					"amount":      amount,
				}).
				Mark(ierr.ErrInsufficientBalance)
		}

		now := s.Clock.Now()
		for attempt := 0; ; attempt++ {
			id, err := s.IDGen.Generate(types.IDKindPayout)
			if err != nil {
				return err
			}
			req = &payout.PayoutRequest{
				ID:          id,
				CustomerID:  customerID,
				Amount:      amount,
				Description: description,
				Status:      types.PayoutStatusPending,
				RequestedBy: types.GetActorID(ctx),
				BaseModel:   types.NewBaseModel(ctx, now),
			}
			err = s.PayoutRepo.Create(ctx, req)
			if err == nil {
				break
			}
			if !ierr.IsAlreadyExists(err) || attempt+1 >= maxIDAttempts {
				return err
			}
		}

		return s.appendAudit(ctx, types.AuditActionPayoutRequested, types.Metadata{
			"payout_id":   req.ID,
			"customer_id": customerID,
			"amount":      amount.StringFixed(2),
			"description": description,
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &notifier.Notification{
		Target:      notifier.TargetPayouts,
		Title:       "💰 Neue Auszahlungsanfrage",
		Description: "Eine Auszahlung wartet auf Genehmigung.",
		Color:       notifier.ColorWarning,
		Fields: []notifier.Field{
			{Name: "Auszahlungs-ID", Value: req.ID, Inline: true},
			{Name: "Kunde", Value: customerID, Inline: true},
			{Name: "Betrag", Value: formatAmount(amount), Inline: true},
			{Name: "Beschreibung", Value: description},
		},
		Footer: "Auszahlung " + req.ID,
	})
	return req, nil
}

// Approve resolves the request and debits the balance in one commit. When
// the balance no longer covers the amount the request STAYS pending, so the
// approver can retry after a top-up or reject it instead.
func (s *payoutService) Approve(ctx context.Context, payoutID string) (*payout.PayoutRequest, error) {
	var (
		req          *payout.PayoutRequest
		balanceAfter decimal.Decimal
		accountRef   string
	)
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		req, err = s.PayoutRepo.Get(ctx, payoutID)
		if err != nil {
			return err
		}

		if err := req.Approve(types.GetActorID(ctx), s.Clock.Now()); err != nil {
			return err
		}

		cust, err := s.CustomerRepo.Get(ctx, req.CustomerID)
		if err != nil {
			return err
		}
		accountRef = cust.AccountRef

		// The debit re-checks the balance inside this same commit; an
		// insufficient balance aborts everything, leaving the request
		// pending.
		entry, err := s.ledger.Apply(ctx, &ledger.Operation{
			CustomerID:  req.CustomerID,
			Type:        types.LedgerEntryTypePayout,
			Amount:      req.Amount,
			Reason:      "Auszahlung genehmigt: " + req.Description,
			ReferenceID: req.ID,
		})
		if err != nil {
			return err
		}
		balanceAfter = entry.BalanceAfter

		if err := s.PayoutRepo.Update(ctx, req); err != nil {
			return err
		}

		return s.appendAudit(ctx, types.AuditActionPayoutApproved, types.Metadata{
			"payout_id":     req.ID,
			"customer_id":   req.CustomerID,
			"amount":        req.Amount.StringFixed(2),
			"balance_after": balanceAfter.StringFixed(2),
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &notifier.Notification{
		Target: notifier.TargetLog,
		Title:  "✅ Auszahlung genehmigt",
		Color:  notifier.ColorSuccess,
		Fields: []notifier.Field{
			{Name: "Auszahlungs-ID", Value: req.ID, Inline: true},
			{Name: "Kunde", Value: req.CustomerID, Inline: true},
			{Name: "Betrag", Value: formatAmount(req.Amount), Inline: true},
		},
	})

	if balanceAfter.IsZero() {
		s.notify(ctx, &notifier.Notification{
			Target:      notifier.TargetCustomer,
			Recipient:   accountRef,
			Title:       "⚠️ Versicherungsguthaben aufgebraucht",
			Description: "Ihr Versicherungsguthaben ist aufgebraucht. Bitte wenden Sie sich an unsere Versicherung für eine Aufladung.",
			Color:       notifier.ColorError,
			Fields: []notifier.Field{
				{Name: "Aktuelles Guthaben", Value: formatAmount(decimal.Zero), Inline: true},
			},
		})
	}
	return req, nil
}

func (s *payoutService) Reject(ctx context.Context, payoutID string, reason string) (*payout.PayoutRequest, error) {
	if reason == "" {
		reason = "Kein Grund angegeben"
	}

	var req *payout.PayoutRequest
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		req, err = s.PayoutRepo.Get(ctx, payoutID)
		if err != nil {
			return err
		}
		if err := req.Reject(types.GetActorID(ctx), reason, s.Clock.Now()); err != nil {
			return err
		}
		if err := s.PayoutRepo.Update(ctx, req); err != nil {
			return err
		}
		return s.appendAudit(ctx, types.AuditActionPayoutRejected, types.Metadata{
			"payout_id":   req.ID,
			"customer_id": req.CustomerID,
			"amount":      req.Amount.StringFixed(2),
			"reason":      reason,
		})
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, &notifier.Notification{
		Target: notifier.TargetLog,
		Title:  "❌ Auszahlung abgelehnt",
		Color:  notifier.ColorError,
		Fields: []notifier.Field{
			{Name: "Auszahlungs-ID", Value: req.ID, Inline: true},
			{Name: "Kunde", Value: req.CustomerID, Inline: true},
			{Name: "Grund", Value: reason},
		},
	})
	return req, nil
}

func (s *payoutService) Get(ctx context.Context, payoutID string) (*payout.PayoutRequest, error) {
	return s.PayoutRepo.Get(ctx, payoutID)
}

func (s *payoutService) ListPending(ctx context.Context) ([]*payout.PayoutRequest, error) {
	return s.PayoutRepo.ListPending(ctx)
}
