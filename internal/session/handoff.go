package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// HandoffVersion is the schema version of the consolidated checkout blob.
// The checkout page ignores blobs written under a different version so a
// schema change on one page cannot silently break the other.
const HandoffVersion = 1

// HandoffItem is a display snapshot of a cart line. The checkout page treats
// it as a formatting hint only, never as authoritative cart state.
type HandoffItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Handoff is the consolidated pricing snapshot carried from the cart page to
// the checkout page. It is transient, single-use data.
type Handoff struct {
	Version   int           `json:"version"`
	Items     []HandoffItem `json:"items"`
	Subtotal  int64         `json:"subtotal"`
	Shipping  int64         `json:"shipping"`
	Discount  int64         `json:"discount"`
	Total     int64         `json:"total"`
	PromoCode string        `json:"promoCode,omitempty"`
}

// WriteHandoff stores the consolidated blob and the separately-keyed promo
// slots. When no promo is active any stale promo slots from a previous
// session are explicitly deleted so a dropped discount cannot leak into
// checkout.
func WriteHandoff(ctx context.Context, store Store, h Handoff, discountType string) error {
	h.Version = HandoffVersion
	blob, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("session: encode handoff: %w", err)
	}
	if err := store.Set(ctx, SlotCheckoutData, string(blob)); err != nil {
		return fmt.Errorf("session: write handoff: %w", err)
	}
	if h.PromoCode == "" {
		if err := store.Del(ctx, SlotPromoCode, SlotPromoDiscount, SlotPromoType); err != nil {
			return fmt.Errorf("session: clear stale promo slots: %w", err)
		}
		return nil
	}
	if err := store.Set(ctx, SlotPromoCode, h.PromoCode); err != nil {
		return fmt.Errorf("session: write promo code: %w", err)
	}
	if err := store.Set(ctx, SlotPromoDiscount, strconv.FormatInt(h.Discount, 10)); err != nil {
		return fmt.Errorf("session: write promo discount: %w", err)
	}
	if discountType != "" {
		if err := store.Set(ctx, SlotPromoType, discountType); err != nil {
			return fmt.Errorf("session: write promo type: %w", err)
		}
	}
	return nil
}

// ReadHandoff loads the consolidated blob. A missing, malformed or
// version-mismatched blob reads as absent.
func ReadHandoff(ctx context.Context, store Store) (Handoff, bool, error) {
	raw, ok, err := store.Get(ctx, SlotCheckoutData)
	if err != nil {
		return Handoff{}, false, fmt.Errorf("session: read handoff: %w", err)
	}
	if !ok || raw == "" {
		return Handoff{}, false, nil
	}
	var h Handoff
	if err := json.Unmarshal([]byte(raw), &h); err != nil {
		return Handoff{}, false, nil
	}
	if h.Version != HandoffVersion {
		return Handoff{}, false, nil
	}
	return h, true, nil
}

// PromoSlots holds the fast-path promo state read before any network call.
type PromoSlots struct {
	Code         string
	Discount     int64
	DiscountType string
}

// ReadPromoSlots reads the separately-keyed promo slots. It reports false
// when no promo code was handed off.
func ReadPromoSlots(ctx context.Context, store Store) (PromoSlots, bool, error) {
	code, ok, err := store.Get(ctx, SlotPromoCode)
	if err != nil {
		return PromoSlots{}, false, fmt.Errorf("session: read promo code: %w", err)
	}
	if !ok || code == "" {
		return PromoSlots{}, false, nil
	}
	slots := PromoSlots{Code: code}
	if raw, ok, err := store.Get(ctx, SlotPromoDiscount); err != nil {
		return PromoSlots{}, false, fmt.Errorf("session: read promo discount: %w", err)
	} else if ok {
		if v, perr := strconv.ParseInt(raw, 10, 64); perr == nil && v >= 0 {
			slots.Discount = v
		}
	}
	if raw, ok, err := store.Get(ctx, SlotPromoType); err != nil {
		return PromoSlots{}, false, fmt.Errorf("session: read promo type: %w", err)
	} else if ok {
		slots.DiscountType = raw
	}
	return slots, true, nil
}

// ClearPromoSlots removes the promo slots after an order is placed.
func ClearPromoSlots(ctx context.Context, store Store) error {
	return store.Del(ctx, SlotPromoCode, SlotPromoDiscount, SlotPromoType)
}

// ClearHandoff removes the consolidated blob once it has served its single use.
func ClearHandoff(ctx context.Context, store Store) error {
	return store.Del(ctx, SlotCheckoutData)
}
