package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// CollaboratorRequestsTotal counts requests issued to the cart/order API by operation and outcome.
	CollaboratorRequestsTotal *prometheus.CounterVec
	// PromoApplyTotal counts promo-code application outcomes.
	PromoApplyTotal *prometheus.CounterVec
	// OrdersPlacedTotal counts successfully placed orders.
	OrdersPlacedTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers storefront Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		CollaboratorRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collaborator_requests_total",
			Help:      "Count of cart API requests by operation and result.",
		}, []string{"op", "result"})
		PromoApplyTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promo_apply_total",
			Help:      "Count of promo code application outcomes.",
		}, []string{"result"})
		OrdersPlacedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_placed_total",
			Help:      "Count of successfully placed orders.",
		})
		reg.MustRegister(CollaboratorRequestsTotal, PromoApplyTotal, OrdersPlacedTotal)
	})
}

// CountRequest records a collaborator request outcome when metrics are registered.
func CountRequest(op, result string) {
	if CollaboratorRequestsTotal != nil {
		CollaboratorRequestsTotal.WithLabelValues(op, result).Inc()
	}
}

// CountPromoApply records a promo application outcome when metrics are registered.
func CountPromoApply(result string) {
	if PromoApplyTotal != nil {
		PromoApplyTotal.WithLabelValues(result).Inc()
	}
}

// CountOrderPlaced records a placed order when metrics are registered.
func CountOrderPlaced() {
	if OrdersPlacedTotal != nil {
		OrdersPlacedTotal.Inc()
	}
}
