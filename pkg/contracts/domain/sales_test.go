package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestParseOrderStatus tests status taxonomy mapping
func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected OrderStatus
	}{
		{"delivered", "delivered", StatusDelivered},
		{"shipped", "shipped", StatusShipped},
		{"canceled", "canceled", StatusCanceled},
		{"unavailable", "unavailable", StatusUnavailable},
		{"unknown value buckets to other", "lost_in_transit", StatusOther},
		{"empty buckets to other", "", StatusOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseOrderStatus(tt.raw))
		})
	}
}

// TestSalesRecord tests derived record values
func TestSalesRecord(t *testing.T) {
	t.Run("Revenue", func(t *testing.T) {
		r := SalesRecord{Price: 100, FreightValue: 10}
		assert.Equal(t, 110.0, r.Revenue())
	})

	t.Run("DeliveryDays", func(t *testing.T) {
		purchased := date(2023, 1, 5)
		delivered := purchased.Add(48 * time.Hour)
		r := SalesRecord{PurchasedAt: purchased, DeliveredAt: &delivered}

		days, ok := r.DeliveryDays()
		require.True(t, ok)
		assert.InDelta(t, 2.0, days, 1e-9)
	})

	t.Run("DeliveryDays without delivery", func(t *testing.T) {
		r := SalesRecord{PurchasedAt: date(2023, 1, 5)}
		_, ok := r.DeliveryDays()
		assert.False(t, ok)
	})
}

// TestDateWindow tests window semantics
func TestDateWindow(t *testing.T) {
	window := DateWindow{Start: date(2023, 1, 1), End: date(2023, 2, 1)}

	t.Run("Contains is half-open", func(t *testing.T) {
		assert.True(t, window.Contains(date(2023, 1, 1)), "start is inclusive")
		assert.True(t, window.Contains(date(2023, 1, 31)))
		assert.False(t, window.Contains(date(2023, 2, 1)), "end is exclusive")
		assert.False(t, window.Contains(date(2022, 12, 31)))
	})

	t.Run("Previous is adjacent and equal length", func(t *testing.T) {
		prev := window.Previous()
		assert.Equal(t, window.Start, prev.End)
		assert.Equal(t, window.Duration(), prev.Duration())
		assert.Equal(t, date(2022, 12, 1), prev.Start)
	})

	t.Run("Validate", func(t *testing.T) {
		assert.NoError(t, window.Validate())

		inverted := DateWindow{Start: date(2023, 2, 1), End: date(2023, 1, 1)}
		assert.ErrorIs(t, inverted.Validate(), ErrInvalidWindow)

		empty := DateWindow{Start: date(2023, 1, 1), End: date(2023, 1, 1)}
		assert.ErrorIs(t, empty.Validate(), ErrInvalidWindow)
	})

	t.Run("IsZero", func(t *testing.T) {
		assert.True(t, DateWindow{}.IsZero())
		assert.False(t, window.IsZero())
	})
}
