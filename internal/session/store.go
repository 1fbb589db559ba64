// Package session models the browser-local storage the storefront pages use
// to carry pricing context between the cart and checkout page sessions.
package session

import "context"

// Storage slot names shared by the cart and checkout pages. The promo code
// and discount live in their own slots so the checkout page can seed its
// promo state before any network call resolves.
const (
	SlotPromoCode     = "appliedPromoCode"
	SlotPromoDiscount = "promoDiscountAmount"
	SlotPromoType     = "promoDiscountType"
	SlotCheckoutData  = "checkoutData"
)

// Store is a string-keyed slot store. Implementations must treat a missing
// slot as (value "", ok false) rather than an error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}
