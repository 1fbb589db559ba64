package api

// Item is a cart line item as owned by the server-side cart.
// The page controllers keep a read/write-through copy for the duration of a
// page session; mutations only land in the copy after a confirmed success.
type Item struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Price         int64  `json:"price"`
	Quantity      int    `json:"quantity"`
	Stock         int    `json:"stock"`
	ImagePath     string `json:"imagePath,omitempty"`
	OriginalPrice int64  `json:"originalPrice,omitempty"`
}

// PromoResult carries the server-computed discount for a validated promo code.
// The client never derives discount figures itself.
type PromoResult struct {
	PromoCode      string `json:"promoCode"`
	DiscountAmount int64  `json:"discountAmount"`
	DiscountType   string `json:"discountType"`
	DiscountValue  int64  `json:"discountValue"`
	Description    string `json:"description"`
}

// PromoStatus reports the server's current view of an applied promo.
type PromoStatus struct {
	PromoCode      string `json:"promoCode"`
	DiscountAmount int64  `json:"discountAmount"`
}

// OrderItem is the line-item snapshot submitted with an order.
type OrderItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Order is the full order payload accepted by the place-order endpoint.
type Order struct {
	ClientRef     string      `json:"clientRef"`
	CustomerName  string      `json:"customerName"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	PostalCode    string      `json:"postalCode,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	PaymentMethod string      `json:"paymentMethod,omitempty"`
	Items         []OrderItem `json:"items"`
	Subtotal      int64       `json:"subtotal"`
	Shipping      int64       `json:"shipping"`
	Discount      int64       `json:"discount"`
	Total         int64       `json:"total"`
	PromoCode     string      `json:"promoCode,omitempty"`
}

// OrderResult is returned by a successful place-order call.
type OrderResult struct {
	OrderID       string `json:"orderId"`
	TotalAmount   int64  `json:"totalAmount"`
	TransactionID string `json:"transactionId,omitempty"`
}
