package metrics

import (
	"ecomcli/pkg/contracts/domain"
)

// Ratio is a division result with an explicit validity flag. Valid is false
// when the denominator was empty, so callers can render "N/A" instead of a
// misleading zero.
type Ratio struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// GrowthRate is a percentage change between two periods. Valid is false
// when the comparison value was zero, where the rate is undefined.
type GrowthRate struct {
	Pct   float64 `json:"pct"`
	Valid bool    `json:"valid"`
}

// RevenueMetrics summarizes recognized revenue for one period. Only
// delivered orders contribute to revenue and to the counts below.
type RevenueMetrics struct {
	TotalRevenue       float64 `json:"total_revenue"`
	OrderCount         int     `json:"order_count"`
	CustomerCount      int     `json:"customer_count"`
	ItemCount          int     `json:"item_count"`
	AvgOrderValue      float64 `json:"avg_order_value"`
	MedianOrderValue   float64 `json:"median_order_value"`
	RevenuePerCustomer float64 `json:"revenue_per_customer"`
	AvgItemsPerOrder   float64 `json:"avg_items_per_order"`
	// ZeroOrders marks an empty filtered period; all ratios above are 0.
	ZeroOrders bool `json:"zero_orders"`
}

// GrowthMetrics compares two periods' revenue metrics.
type GrowthMetrics struct {
	Revenue            GrowthRate `json:"revenue"`
	Orders             GrowthRate `json:"orders"`
	AvgOrderValue      GrowthRate `json:"avg_order_value"`
	RevenuePerCustomer GrowthRate `json:"revenue_per_customer"`
	RevenueChange      float64    `json:"revenue_change_absolute"`
	OrderChange        int        `json:"order_change_absolute"`
}

// MonthlyTrend is one calendar month's activity. Months with no records
// inside the observed span are present with zero values.
type MonthlyTrend struct {
	Month      string     `json:"month"`
	Revenue    float64    `json:"revenue"`
	OrderCount int        `json:"order_count"`
	ItemCount  int        `json:"item_count"`
	MoMGrowth  GrowthRate `json:"mom_growth"`
}

// CategoryMetrics is one product category's slice of the period. Records
// without a category are bucketed under Unclassified.
type CategoryMetrics struct {
	Category       string  `json:"category"`
	Revenue        float64 `json:"revenue"`
	OrderCount     int     `json:"order_count"`
	ItemCount      int     `json:"item_count"`
	AvgOrderValue  float64 `json:"avg_order_value"`
	AvgReviewScore Ratio   `json:"avg_review_score"`
	RevenueShare   float64 `json:"revenue_share"`
}

// StateMetrics is one customer state's slice of the period. Records without
// a state are bucketed under Unknown.
type StateMetrics struct {
	State         string  `json:"state"`
	Revenue       float64 `json:"revenue"`
	OrderCount    int     `json:"order_count"`
	CustomerCount int     `json:"customer_count"`
	MarketShare   float64 `json:"market_share"`
}

// ExperienceMetrics covers review satisfaction and delivery speed. Each
// ratio's denominator only includes rows carrying the needed fields.
type ExperienceMetrics struct {
	AvgReviewScore    Ratio          `json:"avg_review_score"`
	SatisfactionRate  Ratio          `json:"satisfaction_rate"`
	AvgDeliveryDays   Ratio          `json:"avg_delivery_days"`
	FastDeliveryRate  Ratio          `json:"fast_delivery_rate"`
	DeliverySpeedDist map[string]int `json:"delivery_speed_distribution"`
}

// Delivery speed buckets used in ExperienceMetrics.DeliverySpeedDist.
const (
	SpeedFast   = "1-3 days"
	SpeedNormal = "4-7 days"
	SpeedSlow   = "8+ days"
)

// CohortRow is one first-purchase month's retention series. Retention is
// indexed by month offset since first purchase; index 0 is always 1 for a
// non-empty cohort.
type CohortRow struct {
	CohortMonth string    `json:"cohort_month"`
	Customers   int       `json:"customers"`
	Retention   []float64 `json:"retention"`
}

// OperationalMetrics covers order fulfillment over distinct orders.
// Unrecognized statuses are tolerated under the "other" bucket.
type OperationalMetrics struct {
	TotalOrders      int                        `json:"total_orders"`
	StatusCounts     map[domain.OrderStatus]int `json:"status_counts"`
	DeliveryRate     float64                    `json:"delivery_rate"`
	FulfillmentRate  float64                    `json:"fulfillment_rate"`
	CancellationRate float64                    `json:"cancellation_rate"`
	ReturnRate       float64                    `json:"return_rate"`
	ZeroOrders       bool                       `json:"zero_orders"`
}

// Summary composes every metric group for a current period, optionally
// compared against a previous one. A group that cannot be computed is
// present as nil or an empty slice, never omitted.
type Summary struct {
	Period      string             `json:"period"`
	Window      *domain.DateWindow `json:"window,omitempty"`
	RecordCount int                `json:"record_count"`

	Revenue    RevenueMetrics     `json:"revenue"`
	Growth     *GrowthMetrics     `json:"growth"`
	Trends     []MonthlyTrend     `json:"trends"`
	Categories []CategoryMetrics  `json:"categories"`
	Geography  []StateMetrics     `json:"geography"`
	Experience ExperienceMetrics  `json:"experience"`
	Operations OperationalMetrics `json:"operations"`
}

// Group labels for records missing enrichment data.
const (
	CategoryUnclassified = "Unclassified"
	StateUnknown         = "Unknown"
)
