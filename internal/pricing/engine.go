package pricing

// Money represents a monetary value in whole rupees.
type Money = int64

// Item describes a line item used for totals calculation.
type Item struct {
	Qty       int
	UnitPrice Money
}

// Rates holds the shipping fee schedule.
type Rates struct {
	// FreeShippingMin is the subtotal at which shipping becomes free.
	FreeShippingMin Money
	// FlatFee is charged whenever the subtotal is below FreeShippingMin.
	FlatFee Money
}

// DefaultRates returns the storefront fee schedule.
func DefaultRates() Rates {
	return Rates{FreeShippingMin: 3000, FlatFee: 250}
}

// Totals aggregates computed order components.
type Totals struct {
	Subtotal Money
	Shipping Money
	Discount Money
	Total    Money
}

// Quote calculates order totals for the given items and active discount.
// An empty cart quotes zero across the board; a discount can never push
// the total below zero.
func Quote(items []Item, discount Money, r Rates) Totals {
	var subtotal Money
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		subtotal += Money(it.Qty) * it.UnitPrice
	}
	if subtotal == 0 {
		return Totals{}
	}
	shipping := r.FlatFee
	if subtotal >= r.FreeShippingMin {
		shipping = 0
	}
	if discount < 0 {
		discount = 0
	}
	total := subtotal + shipping - discount
	if total < 0 {
		total = 0
	}
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Discount: discount,
		Total:    total,
	}
}
