// Package premium implements the transit-insurance premium calculation.
//
// The premium is 0.2% of the declared consignment value (quantity x per-unit
// rate), rounded to paise and clamped to the storage precision ceiling of the
// decimal(10,2) premium column. The calculation is pure and deterministic; it
// is applied once at submission time (provisional) and again at approval time
// (finalization).
package premium

import "github.com/shopspring/decimal"

// PremiumRate is the fraction of the consignment value charged as premium.
var PremiumRate = decimal.NewFromFloat(0.002)

// MaxPremium is the largest value the premium column can store (decimal(10,2)).
var MaxPremium = decimal.RequireFromString("99999999.99")

// Compute returns the premium for a consignment of quantity units at the
// given per-unit rate: min(quantity x rate x 0.002, MaxPremium), rounded to
// two decimal places. A zero or negative rate yields a zero premium; the
// result is never negative.
func Compute(quantity int, rate decimal.Decimal) decimal.Decimal {
	if quantity <= 0 || rate.Sign() <= 0 {
		return decimal.Zero
	}
	p := rate.Mul(decimal.NewFromInt(int64(quantity))).Mul(PremiumRate).Round(2)
	return Clamp(p)
}

// Clamp bounds an already-computed premium to [0, MaxPremium]. Stored
// provisional premiums are re-clamped at approval so a value persisted above
// the ceiling can never survive finalization.
func Clamp(p decimal.Decimal) decimal.Decimal {
	if p.Sign() < 0 {
		return decimal.Zero
	}
	if p.GreaterThan(MaxPremium) {
		return MaxPremium
	}
	return p
}

// Total returns the declared consignment value quantity x rate, rounded to
// two decimal places. Used for the invoice line item and totals block.
func Total(quantity int, rate decimal.Decimal) decimal.Decimal {
	if quantity <= 0 {
		return decimal.Zero
	}
	return rate.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
