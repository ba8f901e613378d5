package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBillableHours(t *testing.T) {
	t.Run("No reward hours", func(t *testing.T) {
		h := BillableHours(10*time.Hour, decimal.Zero)
		assert.True(t, h.Equal(dec("10")), "got %s", h)
	})

	t.Run("Reward hours subtract", func(t *testing.T) {
		h := BillableHours(10*time.Hour, dec("2"))
		assert.True(t, h.Equal(dec("8")), "got %s", h)
	})

	t.Run("Fractional reward hours", func(t *testing.T) {
		h := BillableHours(10*time.Hour, dec("1.5"))
		assert.True(t, h.Equal(dec("8.5")), "got %s", h)
	})

	t.Run("Reward hours exceeding duration clamp to zero", func(t *testing.T) {
		h := BillableHours(4*time.Hour, dec("10"))
		assert.True(t, h.IsZero(), "got %s", h)
	})

	t.Run("Negative reward hours ignored", func(t *testing.T) {
		h := BillableHours(4*time.Hour, dec("-3"))
		assert.True(t, h.Equal(dec("4")), "got %s", h)
	})

	t.Run("Zero duration", func(t *testing.T) {
		assert.True(t, BillableHours(0, decimal.Zero).IsZero())
	})

	t.Run("Negative duration", func(t *testing.T) {
		assert.True(t, BillableHours(-3*time.Hour, decimal.Zero).IsZero())
	})
}

func TestCalculatedDurationHours(t *testing.T) {
	t.Run("Under tier one cap bills full rate", func(t *testing.T) {
		got := CalculatedDurationHours(dec("5"))
		assert.True(t, got.Equal(dec("5")), "got %s", got)
	})

	t.Run("Exactly eight hours", func(t *testing.T) {
		got := CalculatedDurationHours(dec("8"))
		assert.True(t, got.Equal(dec("8")), "got %s", got)
	})

	t.Run("Ten hours spans tier two", func(t *testing.T) {
		// 8 + 2*0.25 = 8.5
		got := CalculatedDurationHours(dec("10"))
		assert.True(t, got.Equal(dec("8.5")), "got %s", got)
	})

	t.Run("Two hundred hours spans all three tiers", func(t *testing.T) {
		// 8 + 160*0.25 + 32*0.15 = 8 + 40 + 4.8 = 52.8
		got := CalculatedDurationHours(dec("200"))
		assert.True(t, got.Equal(dec("52.8")), "got %s", got)
	})

	t.Run("Continuous at tier boundaries", func(t *testing.T) {
		atEight := CalculatedDurationHours(dec("8"))
		justPast := CalculatedDurationHours(dec("8.01"))
		assert.True(t, justPast.Sub(atEight).Equal(dec("0.0025")), "got %s", justPast.Sub(atEight))

		atWeek := CalculatedDurationHours(dec("168"))
		pastWeek := CalculatedDurationHours(dec("168.01"))
		assert.True(t, pastWeek.Sub(atWeek).Equal(dec("0.0015")), "got %s", pastWeek.Sub(atWeek))
	})

	t.Run("Monotonically non-decreasing", func(t *testing.T) {
		prev := decimal.Zero
		for h := int64(0); h <= 300; h += 7 {
			got := CalculatedDurationHours(decimal.NewFromInt(h))
			assert.True(t, got.GreaterThanOrEqual(prev), "decreased at h=%d", h)
			prev = got
		}
	})

	t.Run("Zero and negative yield zero", func(t *testing.T) {
		assert.True(t, CalculatedDurationHours(decimal.Zero).IsZero())
		assert.True(t, CalculatedDurationHours(dec("-4")).IsZero())
	})
}

func TestDurationRevenue(t *testing.T) {
	t.Run("Ten hour reservation at rate ten", func(t *testing.T) {
		calc := CalculatedDurationHours(BillableHours(10*time.Hour, decimal.Zero))
		rev := DurationRevenue(calc, dec("10.00"), dec("1.0"), dec("1.0"))
		assert.True(t, rev.Equal(dec("85")), "got %s", rev)
	})

	t.Run("Two reward hours redeemed", func(t *testing.T) {
		calc := CalculatedDurationHours(BillableHours(10*time.Hour, dec("2")))
		rev := DurationRevenue(calc, dec("10.00"), dec("1.0"), dec("1.0"))
		assert.True(t, rev.Equal(dec("80")), "got %s", rev)
	})

	t.Run("Factors multiply", func(t *testing.T) {
		rev := DurationRevenue(dec("8"), dec("10.00"), dec("1.2"), dec("0.5"))
		assert.True(t, rev.Equal(dec("48")), "got %s", rev)
	})
}

func TestBillableDays(t *testing.T) {
	tests := []struct {
		hours    string
		expected int64
	}{
		{"0", 0},
		{"-5", 0},
		{"1", 1},
		{"24", 1},
		{"25", 2},
		{"48", 2},
		{"200", 9},
	}

	for _, tt := range tests {
		t.Run(tt.hours+" hours", func(t *testing.T) {
			assert.Equal(t, tt.expected, BillableDays(dec(tt.hours)))
		})
	}
}

func TestMileagePackageCost(t *testing.T) {
	t.Run("Base rate from duration rate", func(t *testing.T) {
		base := MileageBaseRate(nil, dec("10.00"), dec("1.0"), dec("0.05"))
		assert.True(t, base.Equal(dec("0.5")), "got %s", base)

		cost := MileagePackageCost(base, dec("100"), dec("80"))
		assert.True(t, cost.Equal(dec("40")), "got %s", cost)
	})

	t.Run("Explicit override wins", func(t *testing.T) {
		override := dec("0.30")
		base := MileageBaseRate(&override, dec("10.00"), dec("1.0"), dec("0.05"))
		assert.True(t, base.Equal(dec("0.30")))
	})
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(18550), ToMinorUnits(dec("185.50")))
	assert.Equal(t, int64(18550), ToMinorUnits(dec("185.499")))
	assert.Equal(t, int64(0), ToMinorUnits(decimal.Zero))
}
