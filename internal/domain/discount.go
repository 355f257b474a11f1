package domain

import "time"

// Discount is a named percentage cut valid inside [StartsAt, EndsAt].
type Discount struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Percentage float64   `json:"percentage"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

func (d Discount) ActiveAt(t time.Time) bool {
	return !t.Before(d.StartsAt) && !t.After(d.EndsAt)
}

// Apply returns the price after the percentage cut.
func (d Discount) Apply(price float64) float64 {
	return price - price*d.Percentage/100
}

// BestActiveDiscount picks the discount to apply when several are active
// at once: the highest percentage wins, ties broken by the lowest id.
// The selection must be deterministic because the frozen line price
// depends on it.
func BestActiveDiscount(discounts []Discount, now time.Time) (Discount, bool) {
	var (
		best  Discount
		found bool
	)
	for _, d := range discounts {
		if !d.ActiveAt(now) {
			continue
		}
		if !found ||
			d.Percentage > best.Percentage ||
			(d.Percentage == best.Percentage && d.ID < best.ID) {
			best = d
			found = true
		}
	}

	return best, found
}
