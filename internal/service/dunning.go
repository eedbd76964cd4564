package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/insuranceguard/insuranceguard/internal/domain/invoice"
	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
	"github.com/insuranceguard/insuranceguard/internal/notifier"
	"github.com/insuranceguard/insuranceguard/internal/types"
)

// DunningService escalates overdue invoices through the reminder stages.
//
// Advancement is threshold-based, not day-equality-based: an invoice moves
// from stage N to N+1 once days_overdue >= N and it still sits at stage N.
// A sweep that was skipped for days therefore advances the invoice one
// stage per run until it catches up, instead of silently skipping stages.
// At most one stage advances per sweep per invoice.
type DunningService interface {
	// Sweep evaluates every unpaid invoice once and advances those that
	// crossed their threshold. Each advance commits before its reminder is
	// sent, so a failed notification never loses the stage change.
	Sweep(ctx context.Context) (*SweepResult, error)

	// ManualReminder force-advances an invoice one stage, bypassing the
	// day gating. The surcharge table, the stage ceiling and the terminal
	// paid state still apply; at the final stage the notice is re-sent
	// without further surcharge.
	ManualReminder(ctx context.Context, invoiceID string) (*invoice.Invoice, error)
}

// SweepResult summarizes one sweep run.
type SweepResult struct {
	Scanned  int      `json:"scanned"`
	Advanced int      `json:"advanced"`
	Failed   int      `json:"failed"`
	Invoices []string `json:"invoices,omitempty"`
}

type dunningService struct {
	ServiceParams
}

func NewDunningService(params ServiceParams) DunningService {
	return &dunningService{ServiceParams: params}
}

func (s *dunningService) Sweep(ctx context.Context) (*SweepResult, error) {
	ctx = types.WithActorID(ctx, types.DefaultActorID)

	unpaid, err := s.InvoiceRepo.ListUnpaid(ctx)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{Scanned: len(unpaid)}

	for _, inv := range unpaid {
		if !s.eligible(inv) {
			continue
		}

		// Each invoice advances in its own commit: one failing invoice
		// does not lose the progress of the others, and a sweep
		// interrupted mid-run re-evaluates cleanly from persisted state.
		advanced, err := s.advance(ctx, inv.ID)
		if err != nil {
			result.Failed++
			s.Logger.Errorw("dunning advance failed",
				"invoice_id", inv.ID,
				"error", err,
			)
			continue
		}
		result.Advanced++
		result.Invoices = append(result.Invoices, advanced.ID)
	}

	s.Logger.Infow("dunning sweep finished",
		"scanned", result.Scanned,
		"advanced", result.Advanced,
		"failed", result.Failed,
	)
	return result, nil
}

// eligible applies the threshold rule to the committed invoice state.
func (s *dunningService) eligible(inv *invoice.Invoice) bool {
	if inv.Paid || inv.ReminderStage >= types.MaxReminderStage {
		return false
	}
	return inv.DaysOverdue(s.Clock.Now()) >= int(inv.ReminderStage)
}

// advance re-reads the invoice inside the commit, re-checks eligibility and
// moves it one stage. The re-check makes the sweep safe to run concurrently
// with interactive mutations on the same invoice.
func (s *dunningService) advance(ctx context.Context, invoiceID string) (*invoice.Invoice, error) {
	var inv *invoice.Invoice
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.InvoiceRepo.Get(ctx, invoiceID)
		if err != nil {
			return err
		}
		if !s.eligible(inv) {
			return ierr.NewError("invoice no longer eligible").
				WithHintf("Invoice %s was settled or advanced concurrently", invoiceID).
				Mark(ierr.ErrInvalidOperation)
		}
		if err := inv.AdvanceStage(s.Clock.Now()); err != nil {
			return err
		}
		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		return s.appendAudit(ctx, types.ReminderAuditAction(inv.ReminderStage), types.Metadata{
			"invoice_id":  inv.ID,
			"customer_id": inv.CustomerID,
			"stage":       fmt.Sprintf("%d", inv.ReminderStage),
			"surcharge":   inv.ReminderStage.Surcharge().Mul(hundred).StringFixed(0) + "%",
			"original":    inv.AmountOriginal.StringFixed(2),
			"gross":       inv.AmountGross.StringFixed(2),
		})
	})
	if err != nil {
		return nil, err
	}

	s.sendReminder(ctx, inv)
	return inv, nil
}

func (s *dunningService) ManualReminder(ctx context.Context, invoiceID string) (*invoice.Invoice, error) {
	var inv *invoice.Invoice
	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		var err error
		inv, err = s.InvoiceRepo.Get(ctx, invoiceID)
		if err != nil {
			return err
		}
		// AdvanceStage rejects settled invoices and caps the stage; the
		// day gating is deliberately not applied here.
		if err := inv.AdvanceStage(s.Clock.Now()); err != nil {
			return err
		}
		if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
			return err
		}
		return s.appendAudit(ctx, types.ReminderAuditAction(inv.ReminderStage), types.Metadata{
			"invoice_id":  inv.ID,
			"customer_id": inv.CustomerID,
			"stage":       fmt.Sprintf("%d", inv.ReminderStage),
			"surcharge":   inv.ReminderStage.Surcharge().Mul(hundred).StringFixed(0) + "%",
			"original":    inv.AmountOriginal.StringFixed(2),
			"gross":       inv.AmountGross.StringFixed(2),
			"manual":      "true",
		})
	})
	if err != nil {
		return nil, err
	}

	s.sendReminder(ctx, inv)
	return inv, nil
}

// sendReminder posts the reminder notice after the stage change has been
// committed. Best-effort: the mutation is the source of truth.
func (s *dunningService) sendReminder(ctx context.Context, inv *invoice.Invoice) {
	var recipient string
	if cust, err := s.CustomerRepo.Get(ctx, inv.CustomerID); err == nil {
		recipient = cust.AccountRef
	}

	color := notifier.ColorWarning
	if inv.ReminderStage >= types.MaxReminderStage {
		color = notifier.ColorError
	}

	surcharge := inv.ReminderStage.Surcharge()
	currentValue := formatAmount(inv.AmountGross)
	if surcharge.IsPositive() {
		currentValue = fmt.Sprintf("%s (+%s%% Mahngebühr)",
			formatAmount(inv.AmountGross), surcharge.Mul(hundred).StringFixed(0))
	}

	s.notify(ctx, &notifier.Notification{
		Target:      notifier.TargetInvoices,
		Recipient:   recipient,
		Title:       fmt.Sprintf("⚠️ %d. Mahnung", inv.ReminderStage),
		Description: fmt.Sprintf("Die Rechnung %s ist überfällig", inv.ID),
		Color:       color,
		Fields: []notifier.Field{
			{Name: "Rechnungsnummer", Value: inv.ID, Inline: true},
			{Name: "Mahnstufe", Value: fmt.Sprintf("%d. Mahnung", inv.ReminderStage), Inline: true},
			{Name: "Ursprünglicher Betrag", Value: formatAmount(inv.AmountOriginal), Inline: true},
			{Name: "Aktueller Betrag", Value: currentValue, Inline: true},
		},
		Footer: "Bitte begleichen Sie den Betrag umgehend",
	})
}

var hundred = decimal.NewFromInt(100)
