package types

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
)

// IDKind selects the format of a generated identifier.
type IDKind string

const (
	IDKindCustomer IDKind = "customer"
	IDKindInvoice  IDKind = "invoice"
	IDKindClaim    IDKind = "claim"
	IDKindPayout   IDKind = "payout"
)

const (
	IDPrefixCustomer = "VN"
	IDPrefixInvoice  = "RE"
	IDPrefixClaim    = "SM"
	IDPrefixPayout   = "AZ"

	// Prefixes for internal k-sortable identifiers
	UUIDPrefixLedgerEntry = "txn"
	UUIDPrefixAuditEntry  = "audit"
)

const (
	alphanumAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	digitAlphabet    = "0123456789"
)

// RandomSource yields random characters for ID suffixes. Injected so
// generated IDs are reproducible in tests.
type RandomSource interface {
	// Pick returns n characters drawn from alphabet.
	Pick(alphabet string, n int) string
}

// MathRandSource is the default randomness source.
type MathRandSource struct{}

func (MathRandSource) Pick(alphabet string, n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(alphabet[rand.Intn(len(alphabet))])
	}
	return b.String()
}

// IDGenerator produces the structured human-readable identifiers used across
// the community tooling: VN-YYNNNNNN for customers, PREFIX-YYMM-XXXX for
// invoices, claims and payouts. The generator gives no uniqueness guarantee;
// stores reject duplicate IDs on insert and callers retry.
type IDGenerator struct {
	now  func() time.Time
	rand RandomSource
}

// NewIDGenerator builds a generator over the given time and randomness
// sources.
func NewIDGenerator(now func() time.Time, rand RandomSource) *IDGenerator {
	return &IDGenerator{now: now, rand: rand}
}

// Generate returns a fresh identifier for the given kind.
func (g *IDGenerator) Generate(kind IDKind) (string, error) {
	now := g.now()
	year := now.Format("06")
	month := now.Format("01")

	switch kind {
	case IDKindCustomer:
		return fmt.Sprintf("%s-%s%s", IDPrefixCustomer, year, g.rand.Pick(digitAlphabet, 6)), nil
	case IDKindInvoice:
		return fmt.Sprintf("%s-%s%s-%s", IDPrefixInvoice, year, month, g.rand.Pick(alphanumAlphabet, 4)), nil
	case IDKindClaim:
		return fmt.Sprintf("%s-%s%s-%s", IDPrefixClaim, year, month, g.rand.Pick(alphanumAlphabet, 4)), nil
	case IDKindPayout:
		return fmt.Sprintf("%s-%s%s-%s", IDPrefixPayout, year, month, g.rand.Pick(alphanumAlphabet, 4)), nil
	}

	return "", ierr.NewError("unknown id kind").
		WithHintf("No identifier format registered for kind %q", kind).
		Mark(ierr.ErrValidation)
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier with a
// prefix, e.g. txn_01J8ZQ3V9FZ3R8. Used for ledger and audit entries where
// insertion order matters.
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return ulid.Make().String()
	}
	return fmt.Sprintf("%s_%s", prefix, ulid.Make().String())
}
