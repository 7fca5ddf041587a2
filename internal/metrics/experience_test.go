package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomcli/pkg/contracts/domain"
)

// TestExperience tests review and delivery metrics
func TestExperience(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("end-to-end scenario", func(t *testing.T) {
		r := record("O1", date(2023, 1, 5), 100, 10)
		r.ReviewScore = intPtr(5)
		r.DeliveredAt = timePtr(date(2023, 1, 5).Add(48 * time.Hour))

		m := engine.Experience([]domain.SalesRecord{r})
		require.True(t, m.AvgReviewScore.Valid)
		assert.Equal(t, 5.0, m.AvgReviewScore.Value)
		require.True(t, m.SatisfactionRate.Valid)
		assert.Equal(t, 1.0, m.SatisfactionRate.Value)
		require.True(t, m.AvgDeliveryDays.Valid)
		assert.InDelta(t, 2.0, m.AvgDeliveryDays.Value, 1e-9)
		require.True(t, m.FastDeliveryRate.Valid)
		assert.Equal(t, 1.0, m.FastDeliveryRate.Value)
		assert.Equal(t, 1, m.DeliverySpeedDist[SpeedFast])
	})

	t.Run("rows lacking fields leave the denominator", func(t *testing.T) {
		scored := record("O1", date(2023, 1, 5), 100, 0)
		scored.ReviewScore = intPtr(2)
		unscored := record("O2", date(2023, 1, 6), 50, 0)

		m := engine.Experience([]domain.SalesRecord{scored, unscored})
		require.True(t, m.AvgReviewScore.Valid)
		assert.Equal(t, 2.0, m.AvgReviewScore.Value, "unscored row is excluded, not zero")
		assert.Equal(t, 0.0, m.SatisfactionRate.Value)
	})

	t.Run("canceled order without delivery is excluded from delivery averages", func(t *testing.T) {
		canceled := record("O1", date(2023, 1, 5), 100, 0)
		canceled.Status = domain.StatusCanceled

		m := engine.Experience([]domain.SalesRecord{canceled})
		assert.False(t, m.AvgDeliveryDays.Valid)
		assert.False(t, m.FastDeliveryRate.Valid)
	})

	t.Run("delivery is order-level, item rows are deduplicated", func(t *testing.T) {
		delivered := date(2023, 1, 5).Add(5 * 24 * time.Hour)
		item1 := record("O1", date(2023, 1, 5), 100, 0)
		item1.DeliveredAt = &delivered
		item2 := item1
		item2.OrderItemID = "2"

		m := engine.Experience([]domain.SalesRecord{item1, item2})
		require.True(t, m.AvgDeliveryDays.Valid)
		assert.InDelta(t, 5.0, m.AvgDeliveryDays.Value, 1e-9)
		assert.Equal(t, 1, m.DeliverySpeedDist[SpeedNormal])
	})

	t.Run("speed distribution buckets", func(t *testing.T) {
		mk := func(orderID string, days int) domain.SalesRecord {
			r := record(orderID, date(2023, 1, 5), 10, 0)
			r.DeliveredAt = timePtr(date(2023, 1, 5).Add(time.Duration(days) * 24 * time.Hour))
			return r
		}

		m := engine.Experience([]domain.SalesRecord{mk("O1", 1), mk("O2", 6), mk("O3", 12)})
		assert.Equal(t, 1, m.DeliverySpeedDist[SpeedFast])
		assert.Equal(t, 1, m.DeliverySpeedDist[SpeedNormal])
		assert.Equal(t, 1, m.DeliverySpeedDist[SpeedSlow])
		require.True(t, m.FastDeliveryRate.Valid)
		assert.InDelta(t, 1.0/3.0, m.FastDeliveryRate.Value, 1e-9)
	})
}

// TestOperations tests fulfillment rates
func TestOperations(t *testing.T) {
	engine := NewEngine(nil)

	statusRecord := func(orderID string, status domain.OrderStatus) domain.SalesRecord {
		r := record(orderID, date(2023, 1, 5), 10, 0)
		r.Status = status
		return r
	}

	t.Run("rates over distinct orders", func(t *testing.T) {
		records := []domain.SalesRecord{
			statusRecord("O1", domain.StatusDelivered),
			statusRecord("O2", domain.StatusShipped),
			statusRecord("O3", domain.StatusCanceled),
			statusRecord("O4", domain.StatusReturned),
		}

		m := engine.Operations(records)
		assert.Equal(t, 4, m.TotalOrders)
		assert.Equal(t, 0.25, m.DeliveryRate)
		assert.Equal(t, 0.5, m.FulfillmentRate)
		assert.Equal(t, 0.25, m.CancellationRate)
		assert.Equal(t, 0.25, m.ReturnRate)
		assert.False(t, m.ZeroOrders)
	})

	t.Run("canceled order counts in cancellation rate only", func(t *testing.T) {
		// The canceled order has no delivery timestamp; it feeds the
		// cancellation numerator here while Experience excludes it from
		// the delivery-time denominator.
		m := engine.Operations([]domain.SalesRecord{statusRecord("O1", domain.StatusCanceled)})
		assert.Equal(t, 1.0, m.CancellationRate)
		assert.Equal(t, 0.0, m.DeliveryRate)
	})

	t.Run("unrecognized statuses land in the other bucket", func(t *testing.T) {
		m := engine.Operations([]domain.SalesRecord{statusRecord("O1", domain.StatusOther)})
		assert.Equal(t, 1, m.StatusCounts[domain.StatusOther])
		assert.Equal(t, 0.0, m.DeliveryRate)
	})

	t.Run("multi-item orders count once", func(t *testing.T) {
		item1 := statusRecord("O1", domain.StatusDelivered)
		item2 := item1
		item2.OrderItemID = "2"

		m := engine.Operations([]domain.SalesRecord{item1, item2})
		assert.Equal(t, 1, m.TotalOrders)
		assert.Equal(t, 1.0, m.DeliveryRate)
	})

	t.Run("empty set flags zero orders", func(t *testing.T) {
		m := engine.Operations(nil)
		assert.True(t, m.ZeroOrders)
		assert.Equal(t, 0.0, m.DeliveryRate)
	})
}
