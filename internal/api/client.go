package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pahana-edu/storefront/internal/common"
	"github.com/pahana-edu/storefront/internal/obs"
)

// ErrRejected indicates the server answered 2xx with success:false.
var ErrRejected = errors.New("request rejected by server")

// ErrUnavailable indicates a transport failure or non-2xx response.
var ErrUnavailable = errors.New("cart api unavailable")

// Client talks to the cart/order collaborator API. Every call is a single
// request/response cycle bounded by Timeout: there are no retries and no
// backoff, a failure is terminal for that user action.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Timeout time.Duration
	Logger  zerolog.Logger
}

// New constructs a Client with an instrumented transport.
func New(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		Timeout: timeout,
		Logger:  logger,
	}
}

// Items fetches the current server-side cart contents.
func (c *Client) Items(ctx context.Context) ([]Item, error) {
	var out struct {
		envelope
		Items []Item `json:"items"`
	}
	if err := c.call(ctx, http.MethodGet, "/cart-items", nil, &out, "items"); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// UpdateQuantity sets the quantity for a cart item.
func (c *Client) UpdateQuantity(ctx context.Context, itemID string, qty int) error {
	payload := map[string]any{"cartItemId": itemID, "quantity": qty}
	var out envelope
	return c.call(ctx, http.MethodPost, "/cart-update", payload, &out, "update")
}

// Remove deletes a cart item.
func (c *Client) Remove(ctx context.Context, itemID string) error {
	payload := map[string]any{"cartItemId": itemID}
	var out envelope
	return c.call(ctx, http.MethodPost, "/cart-remove", payload, &out, "remove")
}

// Clear empties the server-side cart.
func (c *Client) Clear(ctx context.Context) error {
	var out envelope
	return c.call(ctx, http.MethodPost, "/cart-clear", nil, &out, "clear")
}

// ApplyPromo validates a promo code server-side and returns the computed discount.
func (c *Client) ApplyPromo(ctx context.Context, code string) (PromoResult, error) {
	payload := map[string]any{"promoCode": code}
	var out struct {
		envelope
		PromoResult
	}
	if err := c.call(ctx, http.MethodPost, "/cart-apply-promo", payload, &out, "apply_promo"); err != nil {
		return PromoResult{}, err
	}
	if out.PromoCode == "" {
		out.PromoCode = code
	}
	return out.PromoResult, nil
}

// PromoStatusCheck asks the server for its view of the currently applied promo.
func (c *Client) PromoStatusCheck(ctx context.Context) (PromoStatus, error) {
	var out struct {
		envelope
		PromoStatus
	}
	if err := c.call(ctx, http.MethodGet, "/cart-promo-status", nil, &out, "promo_status"); err != nil {
		return PromoStatus{}, err
	}
	return out.PromoStatus, nil
}

// Count returns the server-side cart item count. Failures degrade to zero so
// badge rendering never blocks a page.
func (c *Client) Count(ctx context.Context) (int, error) {
	var out struct {
		envelope
		Count int `json:"count"`
	}
	if err := c.call(ctx, http.MethodGet, "/cart-count", nil, &out, "count"); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// PlaceOrder submits the full order payload.
func (c *Client) PlaceOrder(ctx context.Context, order Order) (OrderResult, error) {
	var out struct {
		envelope
		OrderResult
	}
	if err := c.call(ctx, http.MethodPost, "/place-order", order, &out, "place_order"); err != nil {
		return OrderResult{}, err
	}
	return out.OrderResult, nil
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e envelope) result() (bool, string) { return e.Success, e.Message }

type resulter interface {
	result() (bool, string)
}

func (c *Client) call(ctx context.Context, method, path string, payload any, out resulter, op string) error {
	if c == nil || c.HTTP == nil {
		return errors.New("api client not configured")
	}
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s payload: %w", op, err)
		}
		body = bytes.NewReader(data)
	}
	callCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(callCtx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		obs.CountRequest(op, "transport_error")
		c.Logger.Warn().Err(err).Str("op", op).Msg("cart api transport failure")
		return fmt.Errorf("%w: %w", ErrUnavailable, common.Unavailable(err))
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		obs.CountRequest(op, "http_error")
		c.Logger.Warn().Int("status", resp.StatusCode).Str("op", op).Msg("cart api non-2xx response")
		return fmt.Errorf("%w: %w", ErrUnavailable, common.Unavailable(errors.New(resp.Status)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		obs.CountRequest(op, "decode_error")
		return fmt.Errorf("%w: %w", ErrUnavailable, common.Unavailable(err))
	}
	if ok, message := out.result(); !ok {
		obs.CountRequest(op, "rejected")
		return fmt.Errorf("%w: %w", ErrRejected, common.Rejected(message))
	}
	obs.CountRequest(op, "ok")
	return nil
}
