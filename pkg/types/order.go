package types

import "github.com/marqenbd/marqen-backend/pkg/enums"

// OrderUserInfo mirrors the upstream Order API's userInfo block.
type OrderUserInfo struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// OrderShippingAddress mirrors the upstream Order API's shippingAddress
// block.
type OrderShippingAddress struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
}

// OrderItemRef is the minimal line reference the upstream Order API
// accepts.
type OrderItemRef struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OrderPayload is the transient request body posted to the upstream Order
// API at submission time. It is never persisted here.
type OrderPayload struct {
	UserInfo        OrderUserInfo        `json:"userInfo"`
	OrderItems      []OrderItemRef       `json:"orderItems"`
	ShippingAddress OrderShippingAddress `json:"shippingAddress"`
	PaymentMethod   enums.PaymentMethod  `json:"paymentMethod"`
}

// OrderSnapshot is the full confirmation blob held for the confirmation
// page. It is written once after submission and read exactly once; it is
// never reconciled with the upstream's authoritative order record.
type OrderSnapshot struct {
	OrderNumber      string                 `json:"orderNumber"`
	CustomerName     string                 `json:"customerName"`
	Email            string                 `json:"email"`
	Phone            string                 `json:"phone"`
	Address          string                 `json:"address"`
	City             string                 `json:"city"`
	Items            []CartLine             `json:"items"`
	Subtotal         int64                  `json:"subtotal"`
	PromoDiscount    int64                  `json:"promoDiscount"`
	AppliedPromoCode string                 `json:"appliedPromoCode,omitempty"`
	Shipping         int64                  `json:"shipping"`
	ShippingLocation enums.ShippingLocation `json:"shippingLocation"`
	Total            int64                  `json:"total"`
	PaymentMethod    string                 `json:"paymentMethod"`
	OrderDate        string                 `json:"orderDate"`
}

// OrderStats is the dashboard passthrough of GET /orders/total-items.
type OrderStats struct {
	TotalItems  int `json:"totalItems"`
	TotalOrders int `json:"totalOrders"`
}
