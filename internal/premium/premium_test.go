package premium

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCompute_Formula(t *testing.T) {
	cases := []struct {
		name     string
		quantity int
		rate     string
		want     string
	}{
		// 45 x 98.50 = 4432.50; 0.2% = 8.865 -> 8.87 in paise
		{"tender coconut example", 45, "98.50", "8.87"},
		{"unit quantity", 1, "100", "0.2"},
		{"zero rate", 10, "0", "0"},
		{"large but under cap", 1000000, "500", "1000000"},
		{"rounds half up", 3, "12.25", "0.07"}, // 36.75 * 0.002 = 0.0735
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Compute(tc.quantity, dec(tc.rate))
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("Compute(%d, %s) = %s, want %s", tc.quantity, tc.rate, got, tc.want)
			}
		})
	}
}

func TestCompute_CapsAtStorageCeiling(t *testing.T) {
	// 2e9 x 99999.99 x 0.002 is far above the decimal(10,2) ceiling.
	got := Compute(2_000_000_000, dec("99999.99"))
	if !got.Equal(MaxPremium) {
		t.Fatalf("expected cap %s, got %s", MaxPremium, got)
	}
}

func TestCompute_NeverNegative(t *testing.T) {
	if got := Compute(-5, dec("100")); !got.IsZero() {
		t.Fatalf("negative quantity should yield zero, got %s", got)
	}
	if got := Compute(5, dec("-100")); !got.IsZero() {
		t.Fatalf("negative rate should yield zero, got %s", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(dec("100000000.00")); !got.Equal(MaxPremium) {
		t.Fatalf("over-cap value not clamped: %s", got)
	}
	if got := Clamp(dec("-1")); !got.IsZero() {
		t.Fatalf("negative value not clamped to zero: %s", got)
	}
	if got := Clamp(dec("8.87")); !got.Equal(dec("8.87")) {
		t.Fatalf("in-range value changed: %s", got)
	}
}

func TestTotal(t *testing.T) {
	if got := Total(45, dec("98.50")); !got.Equal(dec("4432.50")) {
		t.Fatalf("Total(45, 98.50) = %s", got)
	}
	if got := Total(0, dec("98.50")); !got.IsZero() {
		t.Fatalf("Total with zero quantity = %s", got)
	}
}
