package enums

import "fmt"

// PixelEvent names the analytics events forwarded to the Meta pixel.
type PixelEvent string

const (
	PixelPageView         PixelEvent = "PageView"
	PixelViewContent      PixelEvent = "ViewContent"
	PixelAddToCart        PixelEvent = "AddToCart"
	PixelInitiateCheckout PixelEvent = "InitiateCheckout"
	PixelPurchase         PixelEvent = "Purchase"
	// PixelOrderPlaced is the custom event fired for manual-payment orders
	// (bKash/Nagad/Rocket) instead of the standard Purchase event.
	PixelOrderPlaced PixelEvent = "OrderPlaced"
)

var validPixelEvents = []PixelEvent{
	PixelPageView,
	PixelViewContent,
	PixelAddToCart,
	PixelInitiateCheckout,
	PixelPurchase,
	PixelOrderPlaced,
}

// String implements fmt.Stringer.
func (p PixelEvent) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PixelEvent.
func (p PixelEvent) IsValid() bool {
	for _, candidate := range validPixelEvents {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsCustom reports whether the event is dispatched as a custom (non
// standard) pixel event.
func (p PixelEvent) IsCustom() bool {
	return p == PixelOrderPlaced
}

// ParsePixelEvent converts raw input into a PixelEvent.
func ParsePixelEvent(value string) (PixelEvent, error) {
	for _, candidate := range validPixelEvents {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pixel event %q", value)
}
