package domain

import (
	"time"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusCreated     OrderStatus = "created"
	StatusApproved    OrderStatus = "approved"
	StatusInvoiced    OrderStatus = "invoiced"
	StatusProcessing  OrderStatus = "processing"
	StatusShipped     OrderStatus = "shipped"
	StatusDelivered   OrderStatus = "delivered"
	StatusCanceled    OrderStatus = "canceled"
	StatusReturned    OrderStatus = "returned"
	StatusUnavailable OrderStatus = "unavailable"
	// StatusOther buckets statuses not in the known taxonomy so that
	// operational rates tolerate new upstream values without rejecting rows.
	StatusOther OrderStatus = "other"
)

// knownStatuses is the recognized order-status taxonomy.
var knownStatuses = map[OrderStatus]bool{
	StatusCreated:     true,
	StatusApproved:    true,
	StatusInvoiced:    true,
	StatusProcessing:  true,
	StatusShipped:     true,
	StatusDelivered:   true,
	StatusCanceled:    true,
	StatusReturned:    true,
	StatusUnavailable: true,
}

// ParseOrderStatus maps a raw status string onto the known taxonomy,
// bucketing unrecognized values under StatusOther.
func ParseOrderStatus(raw string) OrderStatus {
	s := OrderStatus(raw)
	if knownStatuses[s] {
		return s
	}
	return StatusOther
}

// IsFulfilled reports whether the order reached the carrier or the customer.
func (s OrderStatus) IsFulfilled() bool {
	return s == StatusShipped || s == StatusDelivered
}

// Order represents a single row of the orders table
type Order struct {
	OrderID             string      `json:"order_id"`
	CustomerID          string      `json:"customer_id"`
	Status              OrderStatus `json:"order_status"`
	PurchasedAt         *time.Time  `json:"order_purchase_timestamp"`
	ApprovedAt          *time.Time  `json:"order_approved_at,omitempty"`
	DeliveredCarrierAt  *time.Time  `json:"order_delivered_carrier_date,omitempty"`
	DeliveredCustomerAt *time.Time  `json:"order_delivered_customer_date,omitempty"`
	EstimatedDeliveryAt *time.Time  `json:"order_estimated_delivery_date,omitempty"`
}

// OrderItem represents a single row of the order_items table.
// The pair (OrderID, OrderItemID) identifies one purchased item.
type OrderItem struct {
	OrderID      string  `json:"order_id"`
	OrderItemID  string  `json:"order_item_id"`
	ProductID    string  `json:"product_id"`
	Price        float64 `json:"price"`
	FreightValue float64 `json:"freight_value"`
}

// Product represents a single row of the products table
type Product struct {
	ProductID string  `json:"product_id"`
	Category  *string `json:"product_category_name,omitempty"`
}

// Customer represents a single row of the customers table
type Customer struct {
	CustomerID string  `json:"customer_id"`
	City       *string `json:"customer_city,omitempty"`
	State      *string `json:"customer_state,omitempty"`
	ZipPrefix  *string `json:"customer_zip_code_prefix,omitempty"`
}

// Review represents a single row of the order_reviews table
type Review struct {
	ReviewID  string     `json:"review_id"`
	OrderID   string     `json:"order_id"`
	Score     *int       `json:"review_score,omitempty"`
	CreatedAt *time.Time `json:"review_creation_date,omitempty"`
	AnswerAt  *time.Time `json:"review_answer_timestamp,omitempty"`
}
