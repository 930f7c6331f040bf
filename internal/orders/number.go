package orders

import (
	"strconv"
	"time"
)

const orderNumberPrefix = "ORD-"

// NewOrderNumber derives the customer-facing order number from the
// submission timestamp: the prefix plus the last eight digits of the unix
// millisecond clock. Collisions would need two submissions in the same
// millisecond, which the manual-payment flow never produces.
func NewOrderNumber(at time.Time) string {
	millis := strconv.FormatInt(at.UnixMilli(), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return orderNumberPrefix + millis
}
