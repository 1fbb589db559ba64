package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/pahana-edu/storefront/internal/api"
	"github.com/pahana-edu/storefront/internal/common"
	"github.com/pahana-edu/storefront/internal/events"
	"github.com/pahana-edu/storefront/internal/obs"
	"github.com/pahana-edu/storefront/internal/pricing"
	"github.com/pahana-edu/storefront/internal/session"
	"github.com/pahana-edu/storefront/internal/ui"
)

// ErrNotFound indicates the referenced cart item is not in the local copy.
var ErrNotFound = errors.New("cart item not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// ErrEmptyCart is returned for operations that require a non-empty cart.
var ErrEmptyCart = errors.New("cart is empty")

// Gateway is the slice of the collaborator API the cart page consumes.
type Gateway interface {
	Items(ctx context.Context) ([]api.Item, error)
	UpdateQuantity(ctx context.Context, itemID string, qty int) error
	Remove(ctx context.Context, itemID string) error
	Clear(ctx context.Context) error
	ApplyPromo(ctx context.Context, code string) (api.PromoResult, error)
	Count(ctx context.Context) (int, error)
}

// Controller owns the cart page session state: the local item copy, the
// promo state machine and the derived totals. All state lives on the
// instance, never in package globals, and a single mutex serializes
// mutations so rapid repeated actions stay last-write-wins consistent with
// the server. The local copy changes only after a confirmed success
// response; there is no optimistic mutation and no retry.
type Controller struct {
	Gateway Gateway
	Store   session.Store
	Rates   pricing.Rates
	Notify  ui.Notifier
	Confirm ui.Confirmer
	Bus     *events.Bus
	Logger  zerolog.Logger

	mu    sync.Mutex
	items []api.Item
	promo *Promo
	stage PromoStage
}

// Load fetches the cart contents from the collaborator and replaces the
// local copy.
func (c *Controller) Load(ctx context.Context) error {
	if c == nil || c.Gateway == nil {
		return errors.New("cart controller not configured")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	items, err := c.Gateway.Items(ctx)
	if err != nil {
		c.notifier().Error(common.UserMessage(err))
		return err
	}
	c.items = items
	if len(c.items) == 0 {
		c.clearPromoLocked()
	}
	c.Logger.Debug().Int("items", len(c.items)).Msg("cart loaded")
	c.publishTotalsLocked()
	c.refreshBadgeLocked(ctx)
	return nil
}

// Items returns a snapshot of the local item copy in display order.
func (c *Controller) Items() []api.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Totals derives the current order totals from the local state.
func (c *Controller) Totals() pricing.Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalsLocked()
}

// PromoState returns the current promo stage and, when applied, a copy of
// the promo details.
func (c *Controller) PromoState() (PromoStage, *Promo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.promo == nil {
		return c.stage, nil
	}
	p := *c.promo
	return c.stage, &p
}

// SetQuantity changes an item's quantity. A quantity above stock is refused
// locally without touching the network; a quantity below one is treated as
// a remove request.
func (c *Controller) SetQuantity(ctx context.Context, itemID string, qty int) error {
	if c == nil || c.Gateway == nil {
		return errors.New("cart controller not configured")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexLocked(itemID)
	if idx < 0 {
		c.notifier().Warning("That item is no longer in your cart.")
		return ErrNotFound
	}
	if qty < 1 {
		return c.removeLocked(ctx, idx)
	}
	if qty > c.items[idx].Stock {
		c.notifier().Warning(fmt.Sprintf("Only %d of %q in stock.", c.items[idx].Stock, c.items[idx].Title))
		return fmt.Errorf("quantity %d exceeds stock %d: %w", qty, c.items[idx].Stock, ErrInvalidInput)
	}
	if err := c.Gateway.UpdateQuantity(ctx, itemID, qty); err != nil {
		c.notifier().Error(common.UserMessage(err))
		return err
	}
	c.items[idx].Quantity = qty
	c.publishTotalsLocked()
	c.refreshBadgeLocked(ctx)
	return nil
}

// RemoveItem deletes an item after explicit user confirmation. Removing the
// last item clears the promo state as well.
func (c *Controller) RemoveItem(ctx context.Context, itemID string) error {
	if c == nil || c.Gateway == nil {
		return errors.New("cart controller not configured")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexLocked(itemID)
	if idx < 0 {
		c.notifier().Warning("That item is no longer in your cart.")
		return ErrNotFound
	}
	return c.removeLocked(ctx, idx)
}

func (c *Controller) removeLocked(ctx context.Context, idx int) error {
	item := c.items[idx]
	if !c.confirmer().Confirm(fmt.Sprintf("Remove %q from your cart?", item.Title)) {
		return nil
	}
	if err := c.Gateway.Remove(ctx, item.ID); err != nil {
		c.notifier().Error(common.UserMessage(err))
		return err
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
	if len(c.items) == 0 {
		c.clearPromoLocked()
	}
	c.notifier().Success("Item removed from cart.")
	c.publishTotalsLocked()
	c.refreshBadgeLocked(ctx)
	return nil
}

// ClearCart empties the cart after confirmation. An already-empty cart
// no-ops with a message and issues no request.
func (c *Controller) ClearCart(ctx context.Context) error {
	if c == nil || c.Gateway == nil {
		return errors.New("cart controller not configured")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		c.notifier().Info("Your cart is already empty.")
		return nil
	}
	if !c.confirmer().Confirm("Clear all items from your cart?") {
		return nil
	}
	if err := c.Gateway.Clear(ctx); err != nil {
		c.notifier().Error(common.UserMessage(err))
		return err
	}
	c.items = nil
	c.clearPromoLocked()
	c.notifier().Success("Cart cleared.")
	c.publishTotalsLocked()
	c.refreshBadgeLocked(ctx)
	return nil
}

// ApplyPromo validates a promo code with the server. Re-applying the code
// that is already active is answered locally without a network call. On
// failure the pre-existing promo state is left untouched.
func (c *Controller) ApplyPromo(ctx context.Context, code string) error {
	if c == nil || c.Gateway == nil {
		return errors.New("cart controller not configured")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		c.notifier().Warning("Please enter a promo code.")
		return fmt.Errorf("promo code required: %w", ErrInvalidInput)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		c.notifier().Warning("Add items to your cart before applying a promo code.")
		return ErrEmptyCart
	}
	if c.stage == StageApplied && c.promo != nil && c.promo.Code == code {
		c.notifier().Info("Promo code already applied.")
		return nil
	}
	prevPromo, prevStage := c.promo, c.stage
	c.stage = StageApplying
	res, err := c.Gateway.ApplyPromo(ctx, code)
	if err != nil {
		c.promo, c.stage = prevPromo, prevStage
		obs.CountPromoApply("rejected")
		c.notifier().Error(common.UserMessage(err))
		return err
	}
	c.promo = &Promo{
		Code:        strings.ToUpper(strings.TrimSpace(res.PromoCode)),
		Discount:    res.DiscountAmount,
		Kind:        res.DiscountType,
		Description: res.Description,
	}
	c.stage = StageApplied
	obs.CountPromoApply("applied")
	message := "Promo code applied."
	if res.Description != "" {
		message = res.Description
	}
	c.notifier().Success(message)
	c.publishLocked(events.TopicPromoApplied, *c.promo)
	c.publishTotalsLocked()
	return nil
}

// RemovePromo clears the active promo locally. By design no request is
// issued: the server contract has no promo release endpoint.
func (c *Controller) RemovePromo() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.promo == nil && c.stage == StageNone {
		return
	}
	c.clearPromoLocked()
	c.notifier().Info("Promo code removed.")
	c.publishTotalsLocked()
}

// ProceedToCheckout snapshots the current pricing state into the session
// store for the checkout page. An empty cart aborts with an error and
// writes nothing.
func (c *Controller) ProceedToCheckout(ctx context.Context) error {
	if c == nil || c.Store == nil {
		return errors.New("cart controller not configured")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) == 0 {
		c.notifier().Error("Your cart is empty.")
		return ErrEmptyCart
	}
	totals := c.totalsLocked()
	h := session.Handoff{
		Items:    make([]session.HandoffItem, 0, len(c.items)),
		Subtotal: totals.Subtotal,
		Shipping: totals.Shipping,
		Discount: totals.Discount,
		Total:    totals.Total,
	}
	for _, it := range c.items {
		h.Items = append(h.Items, session.HandoffItem{
			ID:       it.ID,
			Title:    it.Title,
			Author:   it.Author,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}
	discountType := ""
	if c.promo != nil && c.stage == StageApplied {
		h.PromoCode = c.promo.Code
		discountType = c.promo.Kind
	}
	if err := session.WriteHandoff(ctx, c.Store, h, discountType); err != nil {
		c.notifier().Error(common.FallbackMessage)
		return err
	}
	c.Logger.Info().
		Int("items", len(h.Items)).
		Int64("total", h.Total).
		Str("promo", h.PromoCode).
		Msg("checkout handoff written")
	return nil
}

func (c *Controller) indexLocked(itemID string) int {
	for i, it := range c.items {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

func (c *Controller) totalsLocked() pricing.Totals {
	items := make([]pricing.Item, 0, len(c.items))
	for _, it := range c.items {
		items = append(items, pricing.Item{Qty: it.Quantity, UnitPrice: it.Price})
	}
	var discount int64
	if c.promo != nil && c.stage == StageApplied {
		discount = c.promo.Discount
	}
	return pricing.Quote(items, discount, c.rates())
}

func (c *Controller) clearPromoLocked() {
	if c.promo != nil || c.stage != StageNone {
		c.promo = nil
		c.stage = StageNone
		c.publishLocked(events.TopicPromoRemoved, nil)
	}
}

func (c *Controller) publishTotalsLocked() {
	c.publishLocked(events.TopicTotalsUpdated, c.totalsLocked())
}

// refreshBadgeLocked updates the cart badge from the count endpoint,
// degrading to a zero display when the read fails.
func (c *Controller) refreshBadgeLocked(ctx context.Context) {
	count, err := c.Gateway.Count(ctx)
	if err != nil {
		c.Logger.Warn().Err(err).Msg("cart count unavailable")
		count = 0
	}
	c.publishLocked(events.TopicCartBadge, count)
}

func (c *Controller) publishLocked(topic string, payload any) {
	if c.Bus != nil {
		c.Bus.Publish(topic, payload)
	}
}

func (c *Controller) rates() pricing.Rates {
	if c.Rates == (pricing.Rates{}) {
		return pricing.DefaultRates()
	}
	return c.Rates
}

func (c *Controller) notifier() ui.Notifier {
	if c.Notify != nil {
		return c.Notify
	}
	return ui.LogNotifier{Logger: c.Logger}
}

func (c *Controller) confirmer() ui.Confirmer {
	if c.Confirm != nil {
		return c.Confirm
	}
	return ui.StaticConfirmer{Answer: true}
}
