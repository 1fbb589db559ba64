package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/pahana-edu/storefront/internal/api"
	"github.com/pahana-edu/storefront/internal/common"
)

func newServer(t *testing.T, wire func(r chi.Router)) *api.Client {
	t.Helper()
	r := chi.NewRouter()
	wire(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return api.New(srv.URL, 2*time.Second, zerolog.Nop())
}

func jsonDecode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func TestItemsDecodesEnvelope(t *testing.T) {
	client := newServer(t, func(r chi.Router) {
		r.Get("/cart-items", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"success":true,"items":[{"id":"b1","title":"Madol Doova","author":"Martin Wickramasinghe","price":1000,"quantity":2,"stock":3}]}`)
		})
	})

	items, err := client.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "b1", items[0].ID)
	require.Equal(t, int64(1000), items[0].Price)
	require.Equal(t, 3, items[0].Stock)
}

func TestServerRejectionCarriesMessage(t *testing.T) {
	client := newServer(t, func(r chi.Router) {
		r.Post("/cart-update", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"success":false,"message":"Not enough stock"}`)
		})
	})

	err := client.UpdateQuantity(context.Background(), "b1", 9)
	require.ErrorIs(t, err, api.ErrRejected)
	require.Equal(t, "Not enough stock", common.UserMessage(err))
}

func TestTransportFailureUsesFallbackMessage(t *testing.T) {
	client := api.New("http://127.0.0.1:0", time.Second, zerolog.Nop())

	err := client.Clear(context.Background())
	require.ErrorIs(t, err, api.ErrUnavailable)
	require.Equal(t, common.FallbackMessage, common.UserMessage(err))
}

func TestNonOKStatusIsUnavailable(t *testing.T) {
	client := newServer(t, func(r chi.Router) {
		r.Post("/cart-remove", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
	})

	err := client.Remove(context.Background(), "b1")
	require.ErrorIs(t, err, api.ErrUnavailable)
	require.Equal(t, common.FallbackMessage, common.UserMessage(err))
}

func TestApplyPromoReturnsServerFigures(t *testing.T) {
	client := newServer(t, func(r chi.Router) {
		r.Post("/cart-apply-promo", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"success":true,"discountAmount":150,"discountType":"percentage","discountValue":10,"promoCode":"SAVE10","description":"10% off your order"}`)
		})
	})

	res, err := client.ApplyPromo(context.Background(), "save10")
	require.NoError(t, err)
	require.Equal(t, "SAVE10", res.PromoCode)
	require.Equal(t, int64(150), res.DiscountAmount)
	require.Equal(t, "percentage", res.DiscountType)
}

func TestApplyPromoFallsBackToRequestedCode(t *testing.T) {
	client := newServer(t, func(r chi.Router) {
		r.Post("/cart-apply-promo", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"success":true,"discountAmount":100,"discountType":"fixed"}`)
		})
	})

	res, err := client.ApplyPromo(context.Background(), "SAVE10")
	require.NoError(t, err)
	require.Equal(t, "SAVE10", res.PromoCode)
}

func TestCountAndPromoStatus(t *testing.T) {
	client := newServer(t, func(r chi.Router) {
		r.Get("/cart-count", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"success":true,"count":4}`)
		})
		r.Get("/cart-promo-status", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, `{"success":true,"promoCode":"SAVE10","discountAmount":150}`)
		})
	})

	count, err := client.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4, count)

	status, err := client.PromoStatusCheck(context.Background())
	require.NoError(t, err)
	require.Equal(t, "SAVE10", status.PromoCode)
	require.Equal(t, int64(150), status.DiscountAmount)
}

func TestPlaceOrderSubmitsPayload(t *testing.T) {
	var seen api.Order
	client := newServer(t, func(r chi.Router) {
		r.Post("/place-order", func(w http.ResponseWriter, req *http.Request) {
			require.NoError(t, jsonDecode(req, &seen))
			writeJSON(w, `{"success":true,"orderId":"ORD-7","totalAmount":2100,"transactionId":"TX-9"}`)
		})
	})

	order := api.Order{
		ClientRef:    "ref-1",
		CustomerName: "Nimal Perera",
		Phone:        "0771234567",
		Address:      "12 Galle Road",
		City:         "Colombo",
		Items:        []api.OrderItem{{ID: "b1", Title: "Madol Doova", Price: 1000, Quantity: 2}},
		Subtotal:     2000,
		Shipping:     250,
		Discount:     150,
		Total:        2100,
		PromoCode:    "SAVE10",
	}
	res, err := client.PlaceOrder(context.Background(), order)
	require.NoError(t, err)
	require.Equal(t, "ORD-7", res.OrderID)
	require.Equal(t, "TX-9", res.TransactionID)
	require.Equal(t, order.PromoCode, seen.PromoCode)
	require.Equal(t, order.Total, seen.Total)
	require.Len(t, seen.Items, 1)
}
