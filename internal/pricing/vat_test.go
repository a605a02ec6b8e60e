package pricing

import (
	"math"
	"testing"
)

func TestSplit(t *testing.T) {
	cases := []struct {
		name       string
		base       float64
		rate       float64
		refundable bool
		wantVat    float64
		wantTotal  float64
	}{
		{"refundable 24", 1000, 24, true, 240, 1240},
		{"refundable 20", 500, 20, true, 100, 600},
		{"not refundable", 1000, 24, false, 0, 1000},
		{"zero rate", 1000, 0, true, 0, 1000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			vat, total := Split(tc.base, tc.rate, tc.refundable)
			if vat != tc.wantVat {
				t.Fatalf("expected vat %v got %v", tc.wantVat, vat)
			}
			if total != tc.wantTotal {
				t.Fatalf("expected total %v got %v", tc.wantTotal, total)
			}
		})
	}
}

func TestRefundable(t *testing.T) {
	for _, v := range []string{"jah", "JAH", "yes", " true ", "1"} {
		if !Refundable(v) {
			t.Fatalf("expected %q to be refundable", v)
		}
	}
	for _, v := range []string{"ei", "no", "", "false", "0", "maybe"} {
		if Refundable(v) {
			t.Fatalf("expected %q to not be refundable", v)
		}
	}
}

func TestBaseFromTotalRoundTrip(t *testing.T) {
	rates := []float64{5, 9, 20, 24}
	totals := []float64{100, 999.9, 1240, 15000, 33333.3}

	for _, rate := range rates {
		for _, total := range totals {
			base := BaseFromTotal(total, rate, true)
			_, back := Split(base, rate, true)
			if math.Abs(back-total) > 0.15 {
				t.Fatalf("round trip total %v rate %v: base %v reapplied to %v", total, rate, base, back)
			}
		}
	}
}

func TestBaseFromTotalNotRefundable(t *testing.T) {
	if got := BaseFromTotal(1240, 24, false); got != 1240 {
		t.Fatalf("expected total unchanged for non-refundable, got %v", got)
	}
	// A stored total carrying cents must come back exactly, not rounded:
	// otherwise the detail view reports a phantom VAT amount.
	if got := BaseFromTotal(1000.55, 24, false); got != 1000.55 {
		t.Fatalf("expected 1000.55 unchanged for non-refundable, got %v", got)
	}
	vat, total := Split(BaseFromTotal(1000.55, 24, false), 24, false)
	if vat != 0 || total != 1000.55 {
		t.Fatalf("expected vat 0 and total 1000.55, got vat %v total %v", vat, total)
	}
}

func TestBaseFromTotalRounding(t *testing.T) {
	// 1240 / 1.24 = 1000 exactly.
	if got := BaseFromTotal(1240, 24, true); got != 1000 {
		t.Fatalf("expected base 1000, got %v", got)
	}
	// 1000 / 1.24 = 806.451..., rounds to one decimal.
	if got := BaseFromTotal(1000, 24, true); got != 806.5 {
		t.Fatalf("expected base 806.5, got %v", got)
	}
}
