package dataset

import (
	"log/slog"
	"strconv"
	"time"

	"ecomcli/pkg/contracts/domain"
)

// Timestamp layouts accepted in the source files, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Clean parses typed fields out of the raw tables, deduplicates primary
// keys keeping the first-seen record, and excludes order rows that lack a
// parseable purchase timestamp. It never fails: every malformed value
// degrades to a nil field (or a zero price) plus a quality event.
func (l *Loader) Clean(raw *RawTables) *Tables {
	tables := &Tables{
		Orders:    l.cleanOrders(raw.Orders),
		Items:     l.cleanItems(raw.Items),
		Products:  l.cleanProducts(raw.Products),
		Customers: l.cleanCustomers(raw.Customers),
		Reviews:   l.cleanReviews(raw.Reviews),
	}

	l.logger.Info("datasets cleaned",
		slog.Int("orders", len(tables.Orders)),
		slog.Int("order_items", len(tables.Items)),
		slog.Int("products", len(tables.Products)),
		slog.Int("customers", len(tables.Customers)),
		slog.Int("reviews", len(tables.Reviews)))

	return tables
}

// parseTimestamp converts a raw timestamp value. The second return reports
// whether the value was present but unparseable.
func parseTimestamp(value string) (*time.Time, bool) {
	if value == "" {
		return nil, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, false
		}
	}
	return nil, true
}

// timestampField parses an optional timestamp column, recording invalid
// values under the table/column pair.
func (l *Loader) timestampField(value, table, column string) *time.Time {
	t, invalid := parseTimestamp(value)
	if invalid {
		l.quality.record(EventInvalidTimestamp, table, column, 1)
	}
	return t
}

func (l *Loader) cleanOrders(raw []RawOrder) []domain.Order {
	seen := make(map[string]bool, len(raw))
	duplicates := 0
	rejected := 0
	orders := make([]domain.Order, 0, len(raw))

	for _, row := range raw {
		if row.OrderID == "" {
			rejected++
			continue
		}
		if seen[row.OrderID] {
			duplicates++
			continue
		}
		seen[row.OrderID] = true

		purchasedAt, invalid := parseTimestamp(row.PurchasedAt)
		if invalid {
			l.quality.record(EventInvalidTimestamp, TableOrders, "order_purchase_timestamp", 1)
		}
		// Purchase timestamp is mandatory; rows without one cannot be
		// placed in any date window and are excluded from the merge base.
		if purchasedAt == nil {
			rejected++
			continue
		}

		orders = append(orders, domain.Order{
			OrderID:             row.OrderID,
			CustomerID:          row.CustomerID,
			Status:              domain.ParseOrderStatus(row.Status),
			PurchasedAt:         purchasedAt,
			ApprovedAt:          l.timestampField(row.ApprovedAt, TableOrders, "order_approved_at"),
			DeliveredCarrierAt:  l.timestampField(row.DeliveredCarrierAt, TableOrders, "order_delivered_carrier_date"),
			DeliveredCustomerAt: l.timestampField(row.DeliveredCustomerAt, TableOrders, "order_delivered_customer_date"),
			EstimatedDeliveryAt: l.timestampField(row.EstimatedDeliveryAt, TableOrders, "order_estimated_delivery_date"),
		})
	}

	l.quality.record(EventDuplicateKey, TableOrders, "order_id", duplicates)
	l.quality.record(EventRejectedRow, TableOrders, "order_purchase_timestamp", rejected)
	return orders
}

// priceField parses a monetary column, degrading to 0 with a quality event.
func (l *Loader) priceField(value, column string) float64 {
	if value == "" {
		l.quality.record(EventNullValue, TableItems, column, 1)
		return 0
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		l.quality.record(EventInvalidNumber, TableItems, column, 1)
		return 0
	}
	return v
}

func (l *Loader) cleanItems(raw []RawOrderItem) []domain.OrderItem {
	type itemKey struct{ orderID, itemID string }
	seen := make(map[itemKey]bool, len(raw))
	duplicates := 0
	rejected := 0
	items := make([]domain.OrderItem, 0, len(raw))

	for _, row := range raw {
		if row.OrderID == "" || row.OrderItemID == "" {
			rejected++
			continue
		}
		key := itemKey{row.OrderID, row.OrderItemID}
		if seen[key] {
			duplicates++
			continue
		}
		seen[key] = true

		items = append(items, domain.OrderItem{
			OrderID:      row.OrderID,
			OrderItemID:  row.OrderItemID,
			ProductID:    row.ProductID,
			Price:        l.priceField(row.Price, "price"),
			FreightValue: l.priceField(row.FreightValue, "freight_value"),
		})
	}

	l.quality.record(EventDuplicateKey, TableItems, "order_item_id", duplicates)
	l.quality.record(EventRejectedRow, TableItems, "order_id", rejected)
	return items
}

func (l *Loader) cleanProducts(raw []RawProduct) []domain.Product {
	seen := make(map[string]bool, len(raw))
	duplicates := 0
	nullCategories := 0
	products := make([]domain.Product, 0, len(raw))

	for _, row := range raw {
		if row.ProductID == "" || seen[row.ProductID] {
			if seen[row.ProductID] {
				duplicates++
			}
			continue
		}
		seen[row.ProductID] = true

		product := domain.Product{ProductID: row.ProductID}
		if row.Category == "" {
			nullCategories++
		} else {
			category := row.Category
			product.Category = &category
		}
		products = append(products, product)
	}

	l.quality.record(EventDuplicateKey, TableProducts, "product_id", duplicates)
	l.quality.record(EventNullValue, TableProducts, "product_category_name", nullCategories)
	return products
}

func (l *Loader) cleanCustomers(raw []RawCustomer) []domain.Customer {
	seen := make(map[string]bool, len(raw))
	duplicates := 0
	nullStates := 0
	customers := make([]domain.Customer, 0, len(raw))

	optional := func(value string) *string {
		if value == "" {
			return nil
		}
		return &value
	}

	for _, row := range raw {
		if row.CustomerID == "" || seen[row.CustomerID] {
			if seen[row.CustomerID] {
				duplicates++
			}
			continue
		}
		seen[row.CustomerID] = true

		if row.State == "" {
			nullStates++
		}
		customers = append(customers, domain.Customer{
			CustomerID: row.CustomerID,
			City:       optional(row.City),
			State:      optional(row.State),
			ZipPrefix:  optional(row.ZipPrefix),
		})
	}

	l.quality.record(EventDuplicateKey, TableCustomers, "customer_id", duplicates)
	l.quality.record(EventNullValue, TableCustomers, "customer_state", nullStates)
	return customers
}

func (l *Loader) cleanReviews(raw []RawReview) []domain.Review {
	seen := make(map[string]bool, len(raw))
	duplicates := 0
	nullScores := 0
	reviews := make([]domain.Review, 0, len(raw))

	for _, row := range raw {
		if row.ReviewID == "" || seen[row.ReviewID] {
			if seen[row.ReviewID] {
				duplicates++
			}
			continue
		}
		seen[row.ReviewID] = true

		review := domain.Review{
			ReviewID:  row.ReviewID,
			OrderID:   row.OrderID,
			CreatedAt: l.timestampField(row.CreatedAt, TableReviews, "review_creation_date"),
			AnswerAt:  l.timestampField(row.AnswerAt, TableReviews, "review_answer_timestamp"),
		}

		switch score, err := strconv.Atoi(row.Score); {
		case row.Score == "":
			nullScores++
		case err != nil:
			l.quality.record(EventInvalidNumber, TableReviews, "review_score", 1)
		case score < 1 || score > 5:
			l.quality.record(EventInvalidScore, TableReviews, "review_score", 1)
		default:
			review.Score = &score
		}

		reviews = append(reviews, review)
	}

	l.quality.record(EventDuplicateKey, TableReviews, "review_id", duplicates)
	l.quality.record(EventNullValue, TableReviews, "review_score", nullScores)
	return reviews
}
