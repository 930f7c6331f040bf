package pixel

import (
	"github.com/marqenbd/marqen-backend/pkg/enums"
	"github.com/marqenbd/marqen-backend/pkg/types"
)

const defaultCurrency = "BDT"

// Event is one analytics event bound for the Meta pixel.
type Event struct {
	Name enums.PixelEvent
	// Key deduplicates the event when non-empty (e.g. "order_ORD-12345678"
	// so a confirmation-page refresh cannot double-fire).
	Key    string
	Params map[string]any
}

// AddToCart builds the event fired as a side effect of a cart add.
func AddToCart(line types.CartLine) Event {
	return Event{
		Name: enums.PixelAddToCart,
		Params: map[string]any{
			"content_name": line.Name,
			"content_ids":  []string{line.ProductID},
			"content_type": "product",
			"value":        line.Price * int64(line.Quantity),
			"num_items":    line.Quantity,
			"currency":     defaultCurrency,
		},
	}
}

// InitiateCheckout builds the event fired when a checkout submission
// starts. Not deduped: each checkout attempt counts, only the placed
// order carries a dedup key.
func InitiateCheckout(lines []types.CartLine, total int64) Event {
	return Event{
		Name: enums.PixelInitiateCheckout,
		Params: map[string]any{
			"content_ids": contentIDs(lines),
			"contents":    contents(lines),
			"num_items":   numItems(lines),
			"value":       total,
			"currency":    defaultCurrency,
		},
	}
}

// OrderPlaced builds the custom event fired once per placed order. Every
// payment method here is manual, so the standard Purchase event is not
// used.
func OrderPlaced(orderNumber string, method enums.PaymentMethod, lines []types.CartLine, total int64) Event {
	return Event{
		Name: enums.PixelOrderPlaced,
		Key:  "order_" + orderNumber,
		Params: map[string]any{
			"order_id":       orderNumber,
			"payment_method": method.String(),
			"content_ids":    contentIDs(lines),
			"num_items":      numItems(lines),
			"value":          total,
			"currency":       defaultCurrency,
		},
	}
}

func contentIDs(lines []types.CartLine) []string {
	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}
	return ids
}

func contents(lines []types.CartLine) []map[string]any {
	entries := make([]map[string]any, len(lines))
	for i, line := range lines {
		entries[i] = map[string]any{
			"id":         line.ProductID,
			"quantity":   line.Quantity,
			"item_price": line.Price,
		}
	}
	return entries
}

func numItems(lines []types.CartLine) int {
	var count int
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}
