// Command cartflow runs a headless storefront session against a configured
// cart API: it loads the cart, optionally applies a promo code, hands the
// pricing state off to a checkout session and can place the order. Useful
// for smoke-testing a storefront deployment end to end.
package main

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"

	"github.com/pahana-edu/storefront/internal/api"
	"github.com/pahana-edu/storefront/internal/cart"
	"github.com/pahana-edu/storefront/internal/checkout"
	"github.com/pahana-edu/storefront/internal/config"
	"github.com/pahana-edu/storefront/internal/events"
	"github.com/pahana-edu/storefront/internal/obs"
	"github.com/pahana-edu/storefront/internal/pricing"
	"github.com/pahana-edu/storefront/internal/session"
	"github.com/pahana-edu/storefront/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()
	obs.MustRegisterDomainMetrics(envOrDefault("OBS_METRICS_NAMESPACE", "storefront"), nil)

	ctx := context.Background()
	if envBool("OBS_ENABLE_TRACING", false) {
		shutdown, err := obs.InitTracer(ctx, obs.TracingConfig{
			ServiceName:   "storefront-cartflow",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			SamplingRatio: 1.0,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	var store session.Store
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("parse redis url")
		}
		client := redis.NewClient(opts)
		defer func() { _ = client.Close() }()
		if err := redisotel.InstrumentTracing(client); err != nil {
			logger.Warn().Err(err).Msg("instrument redis client")
		}
		store = session.NewRedis(client, uuid.NewString(), cfg.SessionTTL)
	} else {
		store = session.NewMemory()
	}

	client := api.New(cfg.APIBaseURL, cfg.APITimeout, logger)
	rates := pricing.Rates{FreeShippingMin: cfg.FreeShippingMin, FlatFee: cfg.ShippingFlatFee}
	notify := ui.LogNotifier{Logger: logger}

	bus := events.NewBus()
	bus.Subscribe(events.TopicTotalsUpdated, func(ev events.Event) {
		if t, ok := ev.Payload.(pricing.Totals); ok {
			logger.Info().
				Str("subtotal", pricing.FormatAmount(t.Subtotal)).
				Str("shipping", pricing.FormatAmount(t.Shipping)).
				Str("discount", pricing.FormatAmount(t.Discount)).
				Str("total", pricing.FormatAmount(t.Total)).
				Msg("totals")
		}
	})
	bus.Subscribe(events.TopicCartBadge, func(ev events.Event) {
		logger.Info().Interface("count", ev.Payload).Msg("cart badge")
	})
	bus.Subscribe(events.TopicOrderPlaced, func(ev events.Event) {
		logger.Info().Interface("order", ev.Payload).Msg("order placed")
	})

	cartPage := &cart.Controller{
		Gateway: client,
		Store:   store,
		Rates:   rates,
		Notify:  notify,
		Confirm: ui.StaticConfirmer{Answer: true},
		Bus:     bus,
		Logger:  logger,
	}
	if err := cartPage.Load(ctx); err != nil {
		logger.Fatal().Err(err).Msg("load cart")
	}

	if code := strings.TrimSpace(os.Getenv("APPLY_PROMO")); code != "" {
		if err := cartPage.ApplyPromo(ctx, code); err != nil {
			logger.Warn().Err(err).Str("code", code).Msg("apply promo")
		}
	}

	if err := cartPage.ProceedToCheckout(ctx); err != nil {
		logger.Fatal().Err(err).Msg("proceed to checkout")
	}

	checkoutPage := &checkout.Controller{
		Gateway: client,
		Store:   store,
		Rates:   rates,
		Notify:  notify,
		Bus:     bus,
		Logger:  logger,
	}
	if err := checkoutPage.Load(ctx); err != nil {
		logger.Fatal().Err(err).Msg("load checkout")
	}

	if !envBool("PLACE_ORDER", false) {
		logger.Info().Msg("dry run complete, set PLACE_ORDER=true to submit")
		return
	}

	res, err := checkoutPage.PlaceOrder(ctx, checkout.OrderInput{
		CustomerName:  os.Getenv("SHIP_NAME"),
		Phone:         os.Getenv("SHIP_PHONE"),
		Address:       os.Getenv("SHIP_ADDRESS"),
		City:          os.Getenv("SHIP_CITY"),
		PostalCode:    os.Getenv("SHIP_POSTAL_CODE"),
		PaymentMethod: envOrDefault("PAYMENT_METHOD", "cash_on_delivery"),
		Notes:         os.Getenv("ORDER_NOTES"),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("place order")
	}
	logger.Info().
		Str("order_id", res.OrderID).
		Str("total", pricing.FormatAmount(res.TotalAmount)).
		Msg("cartflow finished")
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
