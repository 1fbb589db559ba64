package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pahana-edu/storefront/internal/api"
	"github.com/pahana-edu/storefront/internal/cart"
	"github.com/pahana-edu/storefront/internal/common"
	"github.com/pahana-edu/storefront/internal/events"
	"github.com/pahana-edu/storefront/internal/obs"
	"github.com/pahana-edu/storefront/internal/pricing"
	"github.com/pahana-edu/storefront/internal/session"
	"github.com/pahana-edu/storefront/internal/ui"
)

// ErrSubmitInFlight is returned when an order submission is already pending.
var ErrSubmitInFlight = errors.New("order submission already in flight")

// Gateway is the slice of the collaborator API the checkout page consumes.
type Gateway interface {
	Items(ctx context.Context) ([]api.Item, error)
	PromoStatusCheck(ctx context.Context) (api.PromoStatus, error)
	PlaceOrder(ctx context.Context, order api.Order) (api.OrderResult, error)
	Clear(ctx context.Context) error
}

// OrderInput carries the shipping and contact fields collected on the
// checkout form. Validation happens locally before any request is issued.
type OrderInput struct {
	CustomerName  string `validate:"required"`
	Phone         string `validate:"required"`
	Address       string `validate:"required"`
	City          string `validate:"required"`
	PostalCode    string
	PaymentMethod string
	Notes         string
}

// Controller drives the checkout page session. It seeds promo state from
// the handoff slots before any network call resolves, re-fetches the cart
// from the collaborator as the authoritative item source, reconciles the
// promo against the server and recomputes totals with the same pricing
// function the cart page uses.
type Controller struct {
	Gateway  Gateway
	Store    session.Store
	Rates    pricing.Rates
	Notify   ui.Notifier
	Bus      *events.Bus
	Logger   zerolog.Logger
	Validate *validator.Validate

	mu       sync.Mutex
	items    []api.Item
	promo    *cart.Promo
	handoff  session.Handoff
	seeded   bool
	inFlight bool
}

// Load prepares the checkout page. The promo slots are read first so the
// totals block is never blank while the item fetch resolves; the handoff
// item snapshot is kept only as a formatting hint.
func (c *Controller) Load(ctx context.Context) error {
	if c == nil || c.Gateway == nil || c.Store == nil {
		return errors.New("checkout controller not configured")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if slots, ok, err := session.ReadPromoSlots(ctx, c.Store); err != nil {
		c.Logger.Warn().Err(err).Msg("promo slots unreadable")
	} else if ok {
		c.promo = &cart.Promo{Code: slots.Code, Discount: slots.Discount, Kind: slots.DiscountType}
		c.seeded = true
	}
	if h, ok, err := session.ReadHandoff(ctx, c.Store); err != nil {
		c.Logger.Warn().Err(err).Msg("checkout handoff unreadable")
	} else if ok {
		c.handoff = h
	}
	// seed the totals display from the handoff before any network call
	c.publishLocked(events.TopicTotalsUpdated, pricing.Totals{
		Subtotal: c.handoff.Subtotal,
		Shipping: c.handoff.Shipping,
		Discount: c.handoff.Discount,
		Total:    c.handoff.Total,
	})

	items, err := c.Gateway.Items(ctx)
	if err != nil {
		c.notifier().Error(common.UserMessage(err))
		return err
	}
	c.items = items

	c.reconcilePromoLocked(ctx)
	c.publishTotalsLocked()
	return nil
}

// reconcilePromoLocked asks the server for its view of the applied promo.
// Server figures win when the endpoint answers with a code; an unavailable
// endpoint falls back to the handoff-seeded state instead of silently
// dropping the discount.
func (c *Controller) reconcilePromoLocked(ctx context.Context) {
	st, err := c.Gateway.PromoStatusCheck(ctx)
	if err != nil {
		c.Logger.Debug().Err(err).Msg("promo status unavailable, keeping handoff promo")
		return
	}
	if st.PromoCode == "" {
		return
	}
	kind := ""
	if c.promo != nil && c.promo.Code == st.PromoCode {
		kind = c.promo.Kind
	}
	c.promo = &cart.Promo{Code: st.PromoCode, Discount: st.DiscountAmount, Kind: kind}
}

// Items returns the authoritative item snapshot loaded from the collaborator.
func (c *Controller) Items() []api.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.Item, len(c.items))
	copy(out, c.items)
	return out
}

// DisplayHint returns the handoff snapshot for rendering while the item
// fetch is still resolving.
func (c *Controller) DisplayHint() session.Handoff {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handoff
}

// Promo returns a copy of the reconciled promo state, if any.
func (c *Controller) Promo() *cart.Promo {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.promo == nil {
		return nil
	}
	p := *c.promo
	return &p
}

// Totals derives order totals from the loaded items and reconciled promo.
func (c *Controller) Totals() pricing.Totals {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalsLocked()
}

// PlaceOrder validates the form, submits the order and performs post-order
// cleanup: the promo slots and handoff blob are cleared and the server-side
// cart is emptied. Duplicate submissions are refused while a request is in
// flight.
func (c *Controller) PlaceOrder(ctx context.Context, in OrderInput) (api.OrderResult, error) {
	if c == nil || c.Gateway == nil || c.Store == nil {
		return api.OrderResult{}, errors.New("checkout controller not configured")
	}
	if err := c.validate().Struct(in); err != nil {
		c.notifier().Warning("Please fill in all required shipping fields.")
		return api.OrderResult{}, fmt.Errorf("invalid order input: %w", err)
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		c.notifier().Warning("Your order is already being placed.")
		return api.OrderResult{}, ErrSubmitInFlight
	}
	if len(c.items) == 0 {
		c.mu.Unlock()
		c.notifier().Error("Your cart is empty.")
		return api.OrderResult{}, cart.ErrEmptyCart
	}
	totals := c.totalsLocked()
	order := api.Order{
		ClientRef:     uuid.NewString(),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		Phone:         strings.TrimSpace(in.Phone),
		Address:       strings.TrimSpace(in.Address),
		City:          strings.TrimSpace(in.City),
		PostalCode:    strings.TrimSpace(in.PostalCode),
		Notes:         strings.TrimSpace(in.Notes),
		PaymentMethod: in.PaymentMethod,
		Items:         make([]api.OrderItem, 0, len(c.items)),
		Subtotal:      totals.Subtotal,
		Shipping:      totals.Shipping,
		Discount:      totals.Discount,
		Total:         totals.Total,
	}
	for _, it := range c.items {
		order.Items = append(order.Items, api.OrderItem{ID: it.ID, Title: it.Title, Price: it.Price, Quantity: it.Quantity})
	}
	if c.promo != nil {
		order.PromoCode = c.promo.Code
	}
	c.inFlight = true
	c.mu.Unlock()

	res, err := c.Gateway.PlaceOrder(ctx, order)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		c.notifier().Error(common.UserMessage(err))
		return api.OrderResult{}, err
	}

	if cerr := session.ClearPromoSlots(ctx, c.Store); cerr != nil {
		c.Logger.Warn().Err(cerr).Msg("clear promo slots after order")
	}
	if cerr := session.ClearHandoff(ctx, c.Store); cerr != nil {
		c.Logger.Warn().Err(cerr).Msg("clear handoff after order")
	}
	if cerr := c.Gateway.Clear(ctx); cerr != nil {
		c.Logger.Warn().Err(cerr).Msg("clear server cart after order")
	}
	c.items = nil
	c.promo = nil
	c.handoff = session.Handoff{}

	obs.CountOrderPlaced()
	c.Logger.Info().Str("order_id", res.OrderID).Int64("total", res.TotalAmount).Msg("order placed")
	c.notifier().Success(fmt.Sprintf("Order %s placed successfully.", res.OrderID))
	c.publishLocked(events.TopicOrderPlaced, res)
	c.publishLocked(events.TopicCartBadge, 0)
	c.publishTotalsLocked()
	return res, nil
}

func (c *Controller) totalsLocked() pricing.Totals {
	items := make([]pricing.Item, 0, len(c.items))
	for _, it := range c.items {
		items = append(items, pricing.Item{Qty: it.Quantity, UnitPrice: it.Price})
	}
	var discount int64
	if c.promo != nil {
		discount = c.promo.Discount
	}
	return pricing.Quote(items, discount, c.rates())
}

func (c *Controller) publishTotalsLocked() {
	c.publishLocked(events.TopicTotalsUpdated, c.totalsLocked())
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

func (c *Controller) validate() *validator.Validate {
	if c.Validate != nil {
		return c.Validate
	}
	return validator.New(validator.WithRequiredStructEnabled())
}
