package pricing

import "time"

// Remaining is a countdown split for flash-sale display.
type Remaining struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// IsFlashSaleActive reports whether now falls inside the sale window. The
// window is cosmetic; nothing enforces it server-side.
func IsFlashSaleActive(start, end, now time.Time) bool {
	return !now.Before(start) && !now.After(end)
}

// RemainingTime splits the time until end into countdown components. An
// expired window yields all zeros.
func RemainingTime(end, now time.Time) Remaining {
	diff := end.Sub(now).Milliseconds()
	if diff <= 0 {
		return Remaining{}
	}
	return Remaining{
		Days:    diff / (1000 * 60 * 60 * 24),
		Hours:   (diff / (1000 * 60 * 60)) % 24,
		Minutes: (diff / 1000 / 60) % 60,
		Seconds: (diff / 1000) % 60,
	}
}
