package types

import "github.com/marqenbd/marqen-backend/pkg/enums"

// CartLine is the wire shape of a single cart entry. Prices are whole-taka
// unit prices with the catalog discount already applied upstream.
type CartLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image"`
	Size      string `json:"size,omitempty"`
}

// CartView is the cart plus its derived figures, recomputed on every read.
type CartView struct {
	Token              string                 `json:"token"`
	Items              []CartLine             `json:"items"`
	DirectPurchaseItem *CartLine              `json:"directPurchaseItem,omitempty"`
	ShippingLocation   enums.ShippingLocation `json:"shippingLocation"`
	Subtotal           int64                  `json:"subtotal"`
	ItemCount          int                    `json:"itemCount"`
	ShippingCost       int64                  `json:"shippingCost"`
}
