package events

// Topic constants for UI events emitted by the page controllers.
const (
	TopicTotalsUpdated = "totals.updated"
	TopicCartBadge     = "cart.badge"
	TopicPromoApplied  = "promo.applied"
	TopicPromoRemoved  = "promo.removed"
	TopicOrderPlaced   = "order.placed"
)
