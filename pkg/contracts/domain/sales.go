package domain

import (
	"errors"
	"time"
)

// ErrInvalidWindow indicates a DateWindow whose end does not follow its start.
var ErrInvalidWindow = errors.New("date window end must be after start")

// SalesRecord is the denormalized, item-level join of the five source tables.
// One record per order item; enrichment fields are nil when the joined table
// had no matching row.
type SalesRecord struct {
	OrderID     string      `json:"order_id"`
	OrderItemID string      `json:"order_item_id"`
	ProductID   string      `json:"product_id"`
	CustomerID  string      `json:"customer_id"`
	Status      OrderStatus `json:"order_status"`

	PurchasedAt time.Time  `json:"order_purchase_timestamp"`
	ApprovedAt  *time.Time `json:"order_approved_at,omitempty"`
	DeliveredAt *time.Time `json:"order_delivered_customer_date,omitempty"`

	Price        float64 `json:"price"`
	FreightValue float64 `json:"freight_value"`

	Category      *string `json:"product_category_name,omitempty"`
	CustomerCity  *string `json:"customer_city,omitempty"`
	CustomerState *string `json:"customer_state,omitempty"`

	ReviewScore     *int       `json:"review_score,omitempty"`
	ReviewCreatedAt *time.Time `json:"review_creation_date,omitempty"`
}

// Revenue returns the gross item revenue, item price plus freight.
func (r SalesRecord) Revenue() float64 {
	return r.Price + r.FreightValue
}

// DeliveryDays returns the purchase-to-delivery duration in fractional days.
// The second return is false when the record has no delivery timestamp.
func (r SalesRecord) DeliveryDays() (float64, bool) {
	if r.DeliveredAt == nil {
		return 0, false
	}
	return r.DeliveredAt.Sub(r.PurchasedAt).Hours() / 24, true
}

// DateWindow is a half-open interval [Start, End) applied to the purchase
// timestamp when deriving period subsets from one SalesRecord set.
type DateWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Duration returns the window length.
func (w DateWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Previous returns the adjacent window of equal length ending at Start,
// used as the default comparison period.
func (w DateWindow) Previous() DateWindow {
	return DateWindow{Start: w.Start.Add(-w.Duration()), End: w.Start}
}

// IsZero reports whether the window is unset.
func (w DateWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Validate checks that the window is well-formed.
func (w DateWindow) Validate() error {
	if !w.End.After(w.Start) {
		return ErrInvalidWindow
	}
	return nil
}
