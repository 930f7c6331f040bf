package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod is the fixed set of manual payment options at checkout.
// The mobile-money methods carry a static receiving number; no payment
// gateway is involved anywhere.
type PaymentMethod string

const (
	PaymentBkash          PaymentMethod = "bkash"
	PaymentNagad          PaymentMethod = "nagad"
	PaymentRocket         PaymentMethod = "rocket"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// ReceivingNumber is the merchant's mobile-money account shown for manual
// transfers.
const ReceivingNumber = "01650-278889"

var validPaymentMethods = []PaymentMethod{
	PaymentBkash,
	PaymentNagad,
	PaymentRocket,
	PaymentCashOnDelivery,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsCOD reports whether the method is cash on delivery.
func (p PaymentMethod) IsCOD() bool {
	return p == PaymentCashOnDelivery
}

// DisplayName returns the customer-facing label used in emails and
// confirmation snapshots.
func (p PaymentMethod) DisplayName() string {
	switch p {
	case PaymentBkash:
		return "bKash"
	case PaymentNagad:
		return "Nagad"
	case PaymentRocket:
		return "Rocket"
	case PaymentCashOnDelivery:
		return "Cash on Delivery"
	}
	return string(p)
}

// Number returns the receiving account for mobile-money methods; empty for
// cash on delivery.
func (p PaymentMethod) Number() string {
	if p.IsCOD() {
		return ""
	}
	return ReceivingNumber
}

// ParsePaymentMethod converts raw input into a PaymentMethod. Both the
// wire value ("bkash") and the customer-facing label ("bKash") are
// accepted, case-insensitively; storefront callers send either.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	for _, candidate := range validPaymentMethods {
		if strings.EqualFold(string(candidate), value) || strings.EqualFold(candidate.DisplayName(), value) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
