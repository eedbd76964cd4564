package types

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRandSource struct{ out string }

func (s stubRandSource) Pick(alphabet string, n int) string { return s.out }

func fixedNow() time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestGenerateFormats(t *testing.T) {
	tests := []struct {
		kind   IDKind
		suffix string
		want   string
	}{
		{IDKindCustomer, "123456", "VN-25123456"},
		{IDKindInvoice, "A1B2", "RE-2503-A1B2"},
		{IDKindClaim, "A1B2", "SM-2503-A1B2"},
		{IDKindPayout, "A1B2", "AZ-2503-A1B2"},
	}
	for _, tt := range tests {
		g := NewIDGenerator(fixedNow, stubRandSource{out: tt.suffix})
		id, err := g.Generate(tt.kind)
		require.NoError(t, err)
		assert.Equal(t, tt.want, id)
	}
}

func TestGenerateUnknownKind(t *testing.T) {
	g := NewIDGenerator(fixedNow, MathRandSource{})
	_, err := g.Generate(IDKind("vertrag"))
	assert.Error(t, err)
}

func TestMathRandSourceRespectsAlphabet(t *testing.T) {
	out := MathRandSource{}.Pick(digitAlphabet, 6)
	require.Len(t, out, 6)
	for _, c := range out {
		assert.True(t, strings.ContainsRune(digitAlphabet, c))
	}
}

func TestGenerateUUIDWithPrefix(t *testing.T) {
	id := GenerateUUIDWithPrefix(UUIDPrefixLedgerEntry)
	assert.True(t, strings.HasPrefix(id, "txn_"))

	// ULIDs are k-sortable, so later entries order after earlier ones
	other := GenerateUUIDWithPrefix(UUIDPrefixLedgerEntry)
	assert.NotEqual(t, id, other)
}
