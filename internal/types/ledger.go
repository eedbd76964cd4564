package types

import ierr "github.com/insuranceguard/insuranceguard/internal/errors"

// LedgerEntryType classifies a balance change. The German names are the
// wire values the community tooling has always used, so they are kept.
type LedgerEntryType string

const (
	// LedgerEntryTypeTopUp is a staff credit to the balance ("aufladung")
	LedgerEntryTypeTopUp LedgerEntryType = "aufladung"
	// LedgerEntryTypePayout is an approved payout debit ("auszahlung")
	LedgerEntryTypePayout LedgerEntryType = "auszahlung"
	// LedgerEntryTypeAdjustment is a manual staff deduction ("abzug")
	LedgerEntryTypeAdjustment LedgerEntryType = "abzug"
)

func (t LedgerEntryType) String() string {
	return string(t)
}

func (t LedgerEntryType) Validate() error {
	switch t {
	case LedgerEntryTypeTopUp, LedgerEntryTypePayout, LedgerEntryTypeAdjustment:
		return nil
	}
	return ierr.NewError("invalid ledger entry type").
		WithHint("Invalid ledger entry type").
		Mark(ierr.ErrValidation)
}
