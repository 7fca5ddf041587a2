package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomcli/pkg/contracts/domain"
)

// TestMonthlyTrends tests the chronological month series
func TestMonthlyTrends(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("empty input yields an empty series", func(t *testing.T) {
		assert.Empty(t, engine.MonthlyTrends(nil))
	})

	t.Run("months are chronological with gap months zero-filled", func(t *testing.T) {
		records := []domain.SalesRecord{
			record("O1", date(2023, 1, 5), 100, 0),
			record("O2", date(2023, 4, 10), 50, 0),
		}

		trends := engine.MonthlyTrends(records)
		require.Len(t, trends, 4, "january through april, no silent gaps")

		assert.Equal(t, "2023-01", trends[0].Month)
		assert.Equal(t, 100.0, trends[0].Revenue)
		assert.Equal(t, 1, trends[0].OrderCount)

		for _, gap := range trends[1:3] {
			assert.Equal(t, 0.0, gap.Revenue)
			assert.Equal(t, 0, gap.OrderCount)
			assert.Equal(t, 0, gap.ItemCount)
		}

		assert.Equal(t, "2023-04", trends[3].Month)
		assert.Equal(t, 50.0, trends[3].Revenue)
	})

	t.Run("canceled orders count as activity but not revenue", func(t *testing.T) {
		canceled := record("O1", date(2023, 1, 5), 100, 0)
		canceled.Status = domain.StatusCanceled

		trends := engine.MonthlyTrends([]domain.SalesRecord{canceled})
		require.Len(t, trends, 1)
		assert.Equal(t, 0.0, trends[0].Revenue)
		assert.Equal(t, 1, trends[0].OrderCount)
	})

	t.Run("month-over-month growth", func(t *testing.T) {
		records := []domain.SalesRecord{
			record("O1", date(2023, 1, 5), 100, 0),
			record("O2", date(2023, 2, 5), 150, 0),
			record("O3", date(2023, 3, 5), 0, 0),
			record("O4", date(2023, 4, 5), 80, 0),
		}

		trends := engine.MonthlyTrends(records)
		require.Len(t, trends, 4)

		assert.False(t, trends[0].MoMGrowth.Valid, "first month has no predecessor")
		require.True(t, trends[1].MoMGrowth.Valid)
		assert.InDelta(t, 50.0, trends[1].MoMGrowth.Pct, 1e-9)
		require.True(t, trends[2].MoMGrowth.Valid)
		assert.InDelta(t, -100.0, trends[2].MoMGrowth.Pct, 1e-9)
		assert.False(t, trends[3].MoMGrowth.Valid, "growth from a zero month is undefined")
	})
}
