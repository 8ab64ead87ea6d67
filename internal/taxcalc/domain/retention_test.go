package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRetentionAmount(t *testing.T) {
	cases := []struct {
		name    string
		tax     float64
		rate    float64
		applied bool
		want    float64
	}{
		{"not applied", 18, 0.30, false, 0},
		{"default rate", 18, 0.30, true, 5.4},
		{"full retention", 18, 1, true, 18},
		{"zero tax", 0, 0.30, true, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, RetentionAmount(tc.tax, tc.rate, tc.applied), 0.0001)
		})
	}
}

func TestAmountPayable(t *testing.T) {
	assert.InDelta(t, 11.8, AmountPayable(118, 0.10), 0.0001)
	assert.Zero(t, AmountPayable(118, 0))
}

func TestTaxDue(t *testing.T) {
	// ITBIS 18 with 30% withheld plus 10% of a 118 total.
	got := TaxDue(18, 118, 0.30, 0.10, true)
	assert.InDelta(t, 18-5.4+11.8, got, 0.0001)

	// Without retention the full ITBIS stays due.
	got = TaxDue(18, 118, 0.30, 0, false)
	assert.InDelta(t, 18.0, got, 0.0001)
}

func TestTaxDueDecomposition(t *testing.T) {
	// TaxDue is always the two named parts combined, whatever the inputs.
	for _, applied := range []bool{true, false} {
		tax, total, rate, percent := 27.5, 180.0, 0.3, 0.05
		want := (tax - RetentionAmount(tax, rate, applied)) + AmountPayable(total, percent)
		assert.InDelta(t, want, TaxDue(tax, total, rate, percent, applied), 0.0001)
	}
}
