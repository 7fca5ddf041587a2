package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecomcli/pkg/contracts/domain"
)

// TestCategories tests the category breakdown
func TestCategories(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("end-to-end scenario", func(t *testing.T) {
		r := record("O1", date(2023, 1, 5), 100, 10)
		r.Category = strPtr("Electronics")
		r.ReviewScore = intPtr(5)

		groups := engine.Categories([]domain.SalesRecord{r})
		require.Len(t, groups, 1)
		assert.Equal(t, "Electronics", groups[0].Category)
		assert.Equal(t, 110.0, groups[0].Revenue)
		assert.Equal(t, 1, groups[0].OrderCount)
		assert.Equal(t, 1.0, groups[0].RevenueShare)
		require.True(t, groups[0].AvgReviewScore.Valid)
		assert.Equal(t, 5.0, groups[0].AvgReviewScore.Value)
	})

	t.Run("nil categories are bucketed, never dropped", func(t *testing.T) {
		classified := record("O1", date(2023, 1, 5), 100, 0)
		classified.Category = strPtr("toys")
		unclassified := record("O2", date(2023, 1, 6), 300, 0)

		groups := engine.Categories([]domain.SalesRecord{classified, unclassified})
		require.Len(t, groups, 2)
		assert.Equal(t, CategoryUnclassified, groups[0].Category, "ordered by descending revenue")
		assert.Equal(t, "toys", groups[1].Category)
	})

	t.Run("grouping conserves distinct orders", func(t *testing.T) {
		records := []domain.SalesRecord{}
		for i, category := range []string{"a", "b", "a", "c"} {
			r := record(string(rune('A'+i)), date(2023, 1, 5), 10, 0)
			r.Category = strPtr(category)
			records = append(records, r)
		}

		groups := engine.Categories(records)
		total := 0
		for _, g := range groups {
			total += g.OrderCount
		}
		assert.Equal(t, 4, total)
	})

	t.Run("revenue ties order by name", func(t *testing.T) {
		a := record("O1", date(2023, 1, 5), 100, 0)
		a.Category = strPtr("beta")
		b := record("O2", date(2023, 1, 5), 100, 0)
		b.Category = strPtr("alpha")

		groups := engine.Categories([]domain.SalesRecord{a, b})
		require.Len(t, groups, 2)
		assert.Equal(t, "alpha", groups[0].Category)
	})

	t.Run("unscored category has an invalid average", func(t *testing.T) {
		r := record("O1", date(2023, 1, 5), 100, 0)
		r.Category = strPtr("books")

		groups := engine.Categories([]domain.SalesRecord{r})
		require.Len(t, groups, 1)
		assert.False(t, groups[0].AvgReviewScore.Valid)
	})
}

// TestGeography tests the state breakdown
func TestGeography(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("end-to-end scenario", func(t *testing.T) {
		r := record("O1", date(2023, 1, 5), 100, 10)
		r.CustomerState = strPtr("CA")

		groups := engine.Geography([]domain.SalesRecord{r})
		require.Len(t, groups, 1)
		assert.Equal(t, "CA", groups[0].State)
		assert.Equal(t, 110.0, groups[0].Revenue)
		assert.Equal(t, 1.0, groups[0].MarketShare)
	})

	t.Run("market shares sum to one over delivered revenue", func(t *testing.T) {
		ca := record("O1", date(2023, 1, 5), 75, 0)
		ca.CustomerState = strPtr("CA")
		ny := record("O2", date(2023, 1, 6), 25, 0)
		ny.CustomerState = strPtr("NY")

		groups := engine.Geography([]domain.SalesRecord{ca, ny})
		require.Len(t, groups, 2)
		assert.InDelta(t, 0.75, groups[0].MarketShare, 1e-9)
		assert.InDelta(t, 0.25, groups[1].MarketShare, 1e-9)
	})

	t.Run("nil states are bucketed under Unknown", func(t *testing.T) {
		groups := engine.Geography([]domain.SalesRecord{record("O1", date(2023, 1, 5), 10, 0)})
		require.Len(t, groups, 1)
		assert.Equal(t, StateUnknown, groups[0].State)
	})

	t.Run("zero total revenue yields zero shares, not NaN", func(t *testing.T) {
		canceled := record("O1", date(2023, 1, 5), 100, 0)
		canceled.Status = domain.StatusCanceled
		canceled.CustomerState = strPtr("CA")

		groups := engine.Geography([]domain.SalesRecord{canceled})
		require.Len(t, groups, 1)
		assert.Equal(t, 0.0, groups[0].MarketShare)
		assert.Equal(t, 1, groups[0].OrderCount)
	})
}
