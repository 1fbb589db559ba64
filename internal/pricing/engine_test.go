package pricing

import "testing"

func TestQuoteBelowFreeShipping(t *testing.T) {
	items := []Item{{Qty: 2, UnitPrice: 1000}}
	got := Quote(items, 0, DefaultRates())
	if got.Subtotal != 2000 {
		t.Fatalf("expected subtotal 2000, got %d", got.Subtotal)
	}
	if got.Shipping != 250 {
		t.Fatalf("expected shipping 250, got %d", got.Shipping)
	}
	if got.Discount != 0 {
		t.Fatalf("expected discount 0, got %d", got.Discount)
	}
	if got.Total != 2250 {
		t.Fatalf("expected total 2250, got %d", got.Total)
	}
}

func TestQuoteFreeShipping(t *testing.T) {
	items := []Item{{Qty: 2, UnitPrice: 2000}}
	got := Quote(items, 0, DefaultRates())
	if got.Shipping != 0 {
		t.Fatalf("expected free shipping, got %d", got.Shipping)
	}
	if got.Total != 4000 {
		t.Fatalf("expected total 4000, got %d", got.Total)
	}
}

func TestQuoteThresholdBoundary(t *testing.T) {
	// exactly at the threshold shipping is free
	got := Quote([]Item{{Qty: 3, UnitPrice: 1000}}, 0, DefaultRates())
	if got.Shipping != 0 {
		t.Fatalf("expected free shipping at threshold, got %d", got.Shipping)
	}
	got = Quote([]Item{{Qty: 1, UnitPrice: 2999}}, 0, DefaultRates())
	if got.Shipping != 250 {
		t.Fatalf("expected flat fee just below threshold, got %d", got.Shipping)
	}
}

func TestQuoteWithDiscount(t *testing.T) {
	got := Quote([]Item{{Qty: 2, UnitPrice: 1000}}, 300, DefaultRates())
	if got.Total != 1950 {
		t.Fatalf("expected total 1950, got %d", got.Total)
	}
}

func TestQuoteNeverNegative(t *testing.T) {
	got := Quote([]Item{{Qty: 1, UnitPrice: 100}}, 500, DefaultRates())
	if got.Total != 0 {
		t.Fatalf("expected total floored at 0, got %d", got.Total)
	}
	if got.Subtotal != 100 {
		t.Fatalf("expected subtotal 100, got %d", got.Subtotal)
	}
}

func TestQuoteEmptyCart(t *testing.T) {
	got := Quote(nil, 500, DefaultRates())
	if got != (Totals{}) {
		t.Fatalf("expected all-zero totals for empty cart, got %+v", got)
	}
}

func TestQuoteIgnoresNonPositiveQty(t *testing.T) {
	got := Quote([]Item{{Qty: 0, UnitPrice: 900}, {Qty: -2, UnitPrice: 900}, {Qty: 1, UnitPrice: 400}}, 0, DefaultRates())
	if got.Subtotal != 400 {
		t.Fatalf("expected subtotal 400, got %d", got.Subtotal)
	}
}

func TestQuoteNegativeDiscountClamped(t *testing.T) {
	got := Quote([]Item{{Qty: 1, UnitPrice: 1000}}, -50, DefaultRates())
	if got.Discount != 0 || got.Total != 1250 {
		t.Fatalf("expected clamped discount, got %+v", got)
	}
}

func TestFormatAmount(t *testing.T) {
	if got := FormatAmount(2250); got != "2250.00" {
		t.Fatalf("expected 2250.00, got %s", got)
	}
	if got := FormatAmount(0); got != "0.00" {
		t.Fatalf("expected 0.00, got %s", got)
	}
}
