package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/marqenbd/marqen-backend/pkg/enums"
)

func adminSubject(input OrderEmailInput) string {
	if input.OrderNumber != "" {
		return fmt.Sprintf("New Order %s from %s", input.OrderNumber, input.CustomerName)
	}
	return fmt.Sprintf("New Order from %s", input.CustomerName)
}

func customerSubject(input OrderEmailInput) string {
	if input.OrderNumber != "" {
		return fmt.Sprintf("Your Marqen order %s is confirmed", input.OrderNumber)
	}
	return "Your Marqen order is confirmed"
}

// renderOrderHTML builds the shared order-summary body. Item rows carry
// name, size, quantity, and line totals in taka.
func renderOrderHTML(heading string, input OrderEmailInput) string {
	var b strings.Builder

	b.WriteString(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">`)
	fmt.Fprintf(&b, `<h2 style="color:#1a1a1a">%s</h2>`, html.EscapeString(heading))

	b.WriteString(`<h3>Customer</h3><p>`)
	fmt.Fprintf(&b, "%s<br/>", html.EscapeString(input.CustomerName))
	if input.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s<br/>", html.EscapeString(input.Phone))
	}
	if input.Email != "" {
		fmt.Fprintf(&b, "Email: %s<br/>", html.EscapeString(input.Email))
	}
	if input.Address != "" {
		fmt.Fprintf(&b, "Address: %s", html.EscapeString(input.Address))
		if input.City != "" {
			fmt.Fprintf(&b, ", %s", html.EscapeString(input.City))
		}
		b.WriteString("<br/>")
	}
	b.WriteString(`</p>`)

	b.WriteString(`<h3>Items</h3>`)
	b.WriteString(`<table style="width:100%;border-collapse:collapse">`)
	b.WriteString(`<tr style="background:#f5f5f5"><th align="left" style="padding:8px">Product</th><th align="center" style="padding:8px">Qty</th><th align="right" style="padding:8px">Price</th></tr>`)
	for _, item := range input.CartItems {
		name := item.Name
		if item.Size != "" {
			name = fmt.Sprintf("%s (Size: %s)", name, item.Size)
		}
		fmt.Fprintf(&b,
			`<tr><td style="padding:8px;border-bottom:1px solid #eee">%s</td><td align="center" style="padding:8px;border-bottom:1px solid #eee">%d</td><td align="right" style="padding:8px;border-bottom:1px solid #eee">Tk %d</td></tr>`,
			html.EscapeString(name), item.Quantity, item.Price*int64(item.Quantity))
	}
	b.WriteString(`</table>`)

	b.WriteString(`<h3>Summary</h3><p>`)
	fmt.Fprintf(&b, "Subtotal: Tk %d<br/>", input.Subtotal)
	if input.PromoDiscount > 0 {
		fmt.Fprintf(&b, "Promo discount: -Tk %d<br/>", input.PromoDiscount)
	}
	fmt.Fprintf(&b, "Shipping: Tk %d<br/>", input.Shipping)
	fmt.Fprintf(&b, "<strong>Total: Tk %d</strong>", input.TotalAmount)
	b.WriteString(`</p>`)

	if input.PaymentMethod.IsValid() {
		b.WriteString(`<h3>Payment</h3><p>`)
		fmt.Fprintf(&b, "Method: %s<br/>", html.EscapeString(input.PaymentMethod.DisplayName()))
		if !input.PaymentMethod.IsCOD() {
			fmt.Fprintf(&b, "Send payment to: %s<br/>", enums.ReceivingNumber)
		}
		b.WriteString(`</p>`)
	}

	b.WriteString(`</div>`)
	return b.String()
}
