package session_test

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/pahana-edu/storefront/internal/session"
)

func TestHandoffRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemory()

	h := session.Handoff{
		Items:     []session.HandoffItem{{ID: "b1", Title: "Madol Doova", Price: 1500, Quantity: 2}},
		Subtotal:  3000,
		Shipping:  0,
		Discount:  150,
		Total:     2850,
		PromoCode: "SAVE10",
	}
	require.NoError(t, session.WriteHandoff(ctx, store, h, "percentage"))

	// fast-path promo slots are readable before any network call
	slots, ok, err := session.ReadPromoSlots(ctx, store)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "SAVE10", slots.Code)
	require.Equal(t, int64(150), slots.Discount)
	require.Equal(t, "percentage", slots.DiscountType)

	got, ok, err := session.ReadHandoff(ctx, store)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, session.HandoffVersion, got.Version)
	require.Equal(t, h.Items, got.Items)
	require.Equal(t, h.Total, got.Total)
	require.Equal(t, "SAVE10", got.PromoCode)
}

func TestWriteHandoffClearsStalePromoSlots(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemory()
	require.NoError(t, store.Set(ctx, session.SlotPromoCode, "OLD20"))
	require.NoError(t, store.Set(ctx, session.SlotPromoDiscount, "500"))
	require.NoError(t, store.Set(ctx, session.SlotPromoType, "fixed"))

	h := session.Handoff{Subtotal: 1000, Shipping: 250, Total: 1250}
	require.NoError(t, session.WriteHandoff(ctx, store, h, ""))

	_, ok, err := session.ReadPromoSlots(ctx, store)
	require.NoError(t, err)
	require.False(t, ok, "stale promo slots must be deleted, not merely left absent")
}

func TestReadHandoffVersionMismatch(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemory()
	require.NoError(t, store.Set(ctx, session.SlotCheckoutData, `{"version":99,"total":10}`))

	_, ok, err := session.ReadHandoff(ctx, store)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReadHandoffMalformedBlob(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemory()
	require.NoError(t, store.Set(ctx, session.SlotCheckoutData, "{not json"))

	_, ok, err := session.ReadHandoff(ctx, store)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	store := session.NewRedis(client, "tab-1", time.Minute)

	_, ok, err := store.Get(ctx, session.SlotPromoCode)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Set(ctx, session.SlotPromoCode, "SAVE10"))
	v, ok, err := store.Get(ctx, session.SlotPromoCode)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "SAVE10", v)

	require.NoError(t, store.Del(ctx, session.SlotPromoCode))
	_, ok, err = store.Get(ctx, session.SlotPromoCode)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisStoresAreSessionScoped(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	first := session.NewRedis(client, "tab-1", time.Minute)
	second := session.NewRedis(client, "tab-2", time.Minute)

	require.NoError(t, first.Set(ctx, session.SlotPromoCode, "SAVE10"))
	_, ok, err := second.Get(ctx, session.SlotPromoCode)
	require.NoError(t, err)
	require.False(t, ok)
}
