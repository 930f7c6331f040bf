package enums

import "fmt"

// ShippingLocation selects the flat delivery fee for an order.
type ShippingLocation string

const (
	ShippingInsideDhaka  ShippingLocation = "inside-dhaka"
	ShippingOutsideDhaka ShippingLocation = "outside-dhaka"
)

var validShippingLocations = []ShippingLocation{
	ShippingInsideDhaka,
	ShippingOutsideDhaka,
}

// String implements fmt.Stringer.
func (s ShippingLocation) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShippingLocation.
func (s ShippingLocation) IsValid() bool {
	for _, candidate := range validShippingLocations {
		if candidate == s {
			return true
		}
	}
	return false
}

// Fee returns the flat shipping fee in taka for the location.
func (s ShippingLocation) Fee() int64 {
	if s == ShippingInsideDhaka {
		return 60
	}
	return 100
}

// ParseShippingLocation converts raw input into a ShippingLocation.
func ParseShippingLocation(value string) (ShippingLocation, error) {
	for _, candidate := range validShippingLocations {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipping location %q", value)
}
