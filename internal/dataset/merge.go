package dataset

import (
	"log/slog"

	"ecomcli/pkg/contracts/domain"
)

// Merge joins the cleaned tables into the item-level sales record set. The
// join chain is left-outer from the order-item base: every purchased
// item whose order survived cleaning produces exactly one record, however
// incomplete its enrichment. Rows left unenriched are counted as
// unmatched-key quality events.
func (l *Loader) Merge(tables *Tables) []domain.SalesRecord {
	records := l.joinBase(tables.Items, tables.Orders)
	records = l.attachCategories(records, tables.Products)
	records = l.attachGeography(records, tables.Customers)
	records = l.attachReviews(records, tables.Reviews)

	l.logger.Info("sales dataset merged",
		slog.Int("records", len(records)),
		slog.Int("order_items", len(tables.Items)))

	return records
}

// joinBase builds one SalesRecord per order item carrying the order's
// identity, status and timestamps. Items whose order is absent (missing
// from the file or rejected during cleaning) are dropped and counted.
func (l *Loader) joinBase(items []domain.OrderItem, orders []domain.Order) []domain.SalesRecord {
	byID := make(map[string]domain.Order, len(orders))
	for _, order := range orders {
		byID[order.OrderID] = order
	}

	unmatched := 0
	records := make([]domain.SalesRecord, 0, len(items))
	for _, item := range items {
		order, ok := byID[item.OrderID]
		if !ok {
			unmatched++
			continue
		}
		records = append(records, domain.SalesRecord{
			OrderID:      item.OrderID,
			OrderItemID:  item.OrderItemID,
			ProductID:    item.ProductID,
			CustomerID:   order.CustomerID,
			Status:       order.Status,
			PurchasedAt:  *order.PurchasedAt,
			ApprovedAt:   order.ApprovedAt,
			DeliveredAt:  order.DeliveredCustomerAt,
			Price:        item.Price,
			FreightValue: item.FreightValue,
		})
	}

	l.quality.record(EventUnmatchedKey, TableItems, "order_id", unmatched)
	return records
}

// attachCategories copies the product category onto each record.
func (l *Loader) attachCategories(records []domain.SalesRecord, products []domain.Product) []domain.SalesRecord {
	byID := make(map[string]domain.Product, len(products))
	for _, product := range products {
		byID[product.ProductID] = product
	}

	unmatched := 0
	for i := range records {
		product, ok := byID[records[i].ProductID]
		if !ok {
			unmatched++
			continue
		}
		records[i].Category = product.Category
	}

	l.quality.record(EventUnmatchedKey, TableProducts, "product_id", unmatched)
	return records
}

// attachGeography copies the customer's city and state onto each record.
func (l *Loader) attachGeography(records []domain.SalesRecord, customers []domain.Customer) []domain.SalesRecord {
	byID := make(map[string]domain.Customer, len(customers))
	for _, customer := range customers {
		byID[customer.CustomerID] = customer
	}

	unmatched := 0
	for i := range records {
		customer, ok := byID[records[i].CustomerID]
		if !ok {
			unmatched++
			continue
		}
		records[i].CustomerCity = customer.City
		records[i].CustomerState = customer.State
	}

	l.quality.record(EventUnmatchedKey, TableCustomers, "customer_id", unmatched)
	return records
}

// attachReviews copies a single deterministic review per order onto each of
// the order's records: the one with the most recent creation date, nil
// dates losing, ties broken by the lexically greater review id. Picking one
// review keeps repeated reviews from fanning out item rows.
func (l *Loader) attachReviews(records []domain.SalesRecord, reviews []domain.Review) []domain.SalesRecord {
	best := make(map[string]domain.Review, len(reviews))
	for _, review := range reviews {
		current, ok := best[review.OrderID]
		if !ok || reviewPrecedes(current, review) {
			best[review.OrderID] = review
		}
	}

	unmatched := 0
	for i := range records {
		review, ok := best[records[i].OrderID]
		if !ok {
			unmatched++
			continue
		}
		records[i].ReviewScore = review.Score
		records[i].ReviewCreatedAt = review.CreatedAt
	}

	l.quality.record(EventUnmatchedKey, TableReviews, "order_id", unmatched)
	return records
}

// reviewPrecedes reports whether candidate should replace current as the
// order's representative review.
func reviewPrecedes(current, candidate domain.Review) bool {
	switch {
	case current.CreatedAt == nil && candidate.CreatedAt == nil:
		return candidate.ReviewID > current.ReviewID
	case current.CreatedAt == nil:
		return true
	case candidate.CreatedAt == nil:
		return false
	case candidate.CreatedAt.After(*current.CreatedAt):
		return true
	case current.CreatedAt.After(*candidate.CreatedAt):
		return false
	default:
		return candidate.ReviewID > current.ReviewID
	}
}

// FilterByDate returns the records whose purchase timestamp falls inside
// the half-open window [start, end). The input is never mutated; an empty
// result is valid. A zero window returns a copy of the full set.
func FilterByDate(records []domain.SalesRecord, window domain.DateWindow) []domain.SalesRecord {
	filtered := make([]domain.SalesRecord, 0, len(records))
	for _, record := range records {
		if window.IsZero() || window.Contains(record.PurchasedAt) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
