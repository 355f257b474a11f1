package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiscountActiveAt(t *testing.T) {
	d := Discount{
		StartsAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC),
	}

	assert.False(t, d.ActiveAt(time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC)))
	assert.True(t, d.ActiveAt(d.StartsAt))
	assert.True(t, d.ActiveAt(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)))
	assert.True(t, d.ActiveAt(d.EndsAt))
	assert.False(t, d.ActiveAt(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDiscountApply(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		price      float64
		want       float64
	}{
		{"twenty percent off", 20, 10000, 8000},
		{"full discount", 100, 5000, 0},
		{"one percent", 1, 100, 99},
		{"zero price", 50, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Discount{Percentage: tt.percentage}
			assert.InDelta(t, tt.want, d.Apply(tt.price), 0.001)
		})
	}
}

func TestBestActiveDiscount(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	window := func(active bool) (time.Time, time.Time) {
		if active {
			return now.AddDate(0, 0, -1), now.AddDate(0, 0, 1)
		}

		return now.AddDate(0, 0, -10), now.AddDate(0, 0, -5)
	}

	active := func(id uint, pct float64) Discount {
		starts, ends := window(true)

		return Discount{ID: id, Percentage: pct, StartsAt: starts, EndsAt: ends}
	}
	expired := func(id uint, pct float64) Discount {
		starts, ends := window(false)

		return Discount{ID: id, Percentage: pct, StartsAt: starts, EndsAt: ends}
	}

	t.Run("highest percentage wins", func(t *testing.T) {
		best, found := BestActiveDiscount([]Discount{active(1, 10), active(2, 25), active(3, 15)}, now)

		assert.True(t, found)
		assert.Equal(t, uint(2), best.ID)
	})

	t.Run("tie broken by lowest id", func(t *testing.T) {
		best, found := BestActiveDiscount([]Discount{active(7, 20), active(3, 20), active(5, 20)}, now)

		assert.True(t, found)
		assert.Equal(t, uint(3), best.ID)
	})

	t.Run("expired discounts are skipped", func(t *testing.T) {
		best, found := BestActiveDiscount([]Discount{expired(1, 90), active(2, 5)}, now)

		assert.True(t, found)
		assert.Equal(t, uint(2), best.ID)
	})

	t.Run("nothing active", func(t *testing.T) {
		_, found := BestActiveDiscount([]Discount{expired(1, 50)}, now)

		assert.False(t, found)
	})

	t.Run("empty input", func(t *testing.T) {
		_, found := BestActiveDiscount(nil, now)

		assert.False(t, found)
	})
}
