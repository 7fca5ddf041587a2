package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	apierrors "ecomcli/internal/errors"
)

// Loader reads, cleans and merges the five source tables from one data
// directory. It is safe to reuse for repeated loads; quality totals
// accumulate across all phases since construction.
type Loader struct {
	dir     string
	logger  *slog.Logger
	quality *qualityRecorder
}

// NewLoader creates a loader over the given data directory. A nil sink
// discards quality events.
func NewLoader(dir string, logger *slog.Logger, sink QualitySink) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		dir:     dir,
		logger:  logger,
		quality: newQualityRecorder(sink),
	}
}

// Report returns the aggregated data-quality totals recorded so far,
// ordered deterministically.
func (l *Loader) Report() []QualityEvent {
	return l.quality.report()
}

// Load reads the five CSV files concurrently. It fails with a
// MissingFileError naming every absent file, or a SchemaError when a
// required column is missing from a present file. Empty tables are valid.
func (l *Loader) Load(ctx context.Context) (*RawTables, error) {
	var missing []string
	paths := make(map[string]string, len(tableFiles))
	for table, filename := range tableFiles {
		path := filepath.Join(l.dir, filename)
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, filename)
			continue
		}
		paths[table] = path
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &apierrors.MissingFileError{Files: missing}
	}

	raw := &RawTables{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		table, err := readTable(paths[TableOrders], TableOrders)
		if err != nil {
			return err
		}
		raw.Orders = parseOrders(table)
		return ctx.Err()
	})
	g.Go(func() error {
		table, err := readTable(paths[TableItems], TableItems)
		if err != nil {
			return err
		}
		raw.Items = parseItems(table)
		return ctx.Err()
	})
	g.Go(func() error {
		table, err := readTable(paths[TableProducts], TableProducts)
		if err != nil {
			return err
		}
		raw.Products = parseProducts(table)
		return ctx.Err()
	})
	g.Go(func() error {
		table, err := readTable(paths[TableCustomers], TableCustomers)
		if err != nil {
			return err
		}
		raw.Customers = parseCustomers(table)
		return ctx.Err()
	})
	g.Go(func() error {
		table, err := readTable(paths[TableReviews], TableReviews)
		if err != nil {
			return err
		}
		raw.Reviews = parseReviews(table)
		return ctx.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	l.logger.InfoContext(ctx, "datasets loaded",
		slog.Int("orders", len(raw.Orders)),
		slog.Int("order_items", len(raw.Items)),
		slog.Int("products", len(raw.Products)),
		slog.Int("customers", len(raw.Customers)),
		slog.Int("reviews", len(raw.Reviews)))

	return raw, nil
}

func parseOrders(t *csvTable) []RawOrder {
	orders := make([]RawOrder, 0, len(t.rows))
	for _, row := range t.rows {
		orders = append(orders, RawOrder{
			OrderID:             t.get(row, "order_id"),
			CustomerID:          t.get(row, "customer_id"),
			Status:              t.get(row, "order_status"),
			PurchasedAt:         t.get(row, "order_purchase_timestamp"),
			ApprovedAt:          t.get(row, "order_approved_at"),
			DeliveredCarrierAt:  t.get(row, "order_delivered_carrier_date"),
			DeliveredCustomerAt: t.get(row, "order_delivered_customer_date"),
			EstimatedDeliveryAt: t.get(row, "order_estimated_delivery_date"),
		})
	}
	return orders
}

func parseItems(t *csvTable) []RawOrderItem {
	items := make([]RawOrderItem, 0, len(t.rows))
	for _, row := range t.rows {
		items = append(items, RawOrderItem{
			OrderID:      t.get(row, "order_id"),
			OrderItemID:  t.get(row, "order_item_id"),
			ProductID:    t.get(row, "product_id"),
			Price:        t.get(row, "price"),
			FreightValue: t.get(row, "freight_value"),
		})
	}
	return items
}

func parseProducts(t *csvTable) []RawProduct {
	products := make([]RawProduct, 0, len(t.rows))
	for _, row := range t.rows {
		products = append(products, RawProduct{
			ProductID: t.get(row, "product_id"),
			Category:  t.get(row, "product_category_name"),
		})
	}
	return products
}

func parseCustomers(t *csvTable) []RawCustomer {
	customers := make([]RawCustomer, 0, len(t.rows))
	for _, row := range t.rows {
		customers = append(customers, RawCustomer{
			CustomerID: t.get(row, "customer_id"),
			City:       t.get(row, "customer_city"),
			State:      t.get(row, "customer_state"),
			ZipPrefix:  t.get(row, "customer_zip_code_prefix"),
		})
	}
	return customers
}

func parseReviews(t *csvTable) []RawReview {
	reviews := make([]RawReview, 0, len(t.rows))
	for _, row := range t.rows {
		reviews = append(reviews, RawReview{
			ReviewID:  t.get(row, "review_id"),
			OrderID:   t.get(row, "order_id"),
			Score:     t.get(row, "review_score"),
			CreatedAt: t.get(row, "review_creation_date"),
			AnswerAt:  t.get(row, "review_answer_timestamp"),
		})
	}
	return reviews
}
