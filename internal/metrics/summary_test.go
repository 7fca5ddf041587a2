package metrics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomcli/pkg/contracts/domain"
)

// TestSummary tests the combined metric catalog
func TestSummary(t *testing.T) {
	engine := NewEngine(nil)

	fullRecord := func() domain.SalesRecord {
		r := record("O1", date(2023, 1, 5), 100, 10)
		r.Category = strPtr("Electronics")
		r.CustomerState = strPtr("CA")
		r.ReviewScore = intPtr(5)
		return r
	}

	t.Run("composes every group", func(t *testing.T) {
		window := domain.DateWindow{Start: date(2023, 1, 1), End: date(2023, 2, 1)}
		current := []domain.SalesRecord{fullRecord()}
		comparison := []domain.SalesRecord{record("P1", date(2022, 12, 10), 55, 0)}

		s := engine.Summary(current, comparison, SummaryOptions{Period: "2023-01", Window: &window})

		assert.Equal(t, "2023-01", s.Period)
		assert.Equal(t, 1, s.RecordCount)
		assert.Equal(t, 110.0, s.Revenue.TotalRevenue)
		require.NotNil(t, s.Growth)
		assert.True(t, s.Growth.Revenue.Valid)
		require.Len(t, s.Trends, 1)
		require.Len(t, s.Categories, 1)
		require.Len(t, s.Geography, 1)
		assert.Equal(t, 1.0, s.Operations.DeliveryRate)
	})

	t.Run("missing comparison leaves growth explicitly nil", func(t *testing.T) {
		s := engine.Summary([]domain.SalesRecord{fullRecord()}, nil, SummaryOptions{Period: "All data"})
		assert.Nil(t, s.Growth)
	})

	t.Run("empty current period never fails", func(t *testing.T) {
		s := engine.Summary(nil, nil, SummaryOptions{Period: "empty"})

		assert.True(t, s.Revenue.ZeroOrders)
		assert.Empty(t, s.Trends)
		assert.Empty(t, s.Categories)
		assert.Empty(t, s.Geography)
		assert.True(t, s.Operations.ZeroOrders)
		assert.False(t, s.Experience.AvgReviewScore.Valid)
	})

	t.Run("output is JSON-encodable without NaN or Inf", func(t *testing.T) {
		cases := [][]domain.SalesRecord{
			nil,
			{fullRecord()},
		}
		for _, current := range cases {
			s := engine.Summary(current, []domain.SalesRecord{}, SummaryOptions{Period: "x"})
			data, err := json.Marshal(s)
			require.NoError(t, err, "NaN or Inf would fail encoding")
			assert.NotEmpty(t, data)
		}
	})
}

// TestNumericGuards tests the shared zero-denominator helpers
func TestNumericGuards(t *testing.T) {
	t.Run("safeDiv", func(t *testing.T) {
		assert.Equal(t, 0.0, safeDiv(10, 0))
		assert.Equal(t, 5.0, safeDiv(10, 2))
	})

	t.Run("ratio", func(t *testing.T) {
		assert.False(t, ratio(10, 0).Valid)
		r := ratio(10, 4)
		assert.True(t, r.Valid)
		assert.Equal(t, 2.5, r.Value)
	})

	t.Run("growthRate", func(t *testing.T) {
		assert.False(t, growthRate(10, 0).Valid)

		g := growthRate(150, 100)
		require.True(t, g.Valid)
		assert.InDelta(t, 50.0, g.Pct, 1e-9)
		assert.False(t, math.IsInf(g.Pct, 0))

		// Change is measured against the comparison magnitude.
		g = growthRate(50, -100)
		require.True(t, g.Valid)
		assert.InDelta(t, 150.0, g.Pct, 1e-9)
	})
}
