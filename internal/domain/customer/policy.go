package customer

import (
	"github.com/shopspring/decimal"

	ierr "github.com/insuranceguard/insuranceguard/internal/errors"
)

// PolicyCatalog maps each offered policy type to its monthly premium.
var PolicyCatalog = map[string]decimal.Decimal{
	"Krankenversicherung (Gesetzlich)": decimal.NewFromInt(3000),
	"Krankenversicherung (Privat)":     decimal.NewFromInt(5000),
	"Haftpflichtversicherung":          decimal.NewFromInt(3000),
	"Hausratversicherung":              decimal.NewFromInt(10000),
	"Kfz-Versicherung":                 decimal.NewFromInt(3000),
	"Rechtsschutzversicherung":         decimal.NewFromInt(3000),
	"Berufsunfähigkeitsversicherung":   decimal.NewFromInt(6000),
}

// PremiumFor sums the monthly premium for the given policy types. Unknown
// policy types are rejected.
func PremiumFor(policies []string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range policies {
		premium, ok := PolicyCatalog[p]
		if !ok {
			return decimal.Zero, ierr.NewError("unknown policy type").
				WithHintf("Policy type %q is not in the catalog", p).
				Mark(ierr.ErrValidation)
		}
		total = total.Add(premium)
	}
	return total, nil
}
