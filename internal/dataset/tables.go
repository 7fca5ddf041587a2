package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	apierrors "ecomcli/internal/errors"
	"ecomcli/pkg/contracts/domain"
)

// Table names used in errors and data-quality events.
const (
	TableOrders    = "orders"
	TableItems     = "order_items"
	TableProducts  = "products"
	TableCustomers = "customers"
	TableReviews   = "reviews"
)

// Expected file name per table, matching the upstream dataset dumps.
var tableFiles = map[string]string{
	TableOrders:    "orders_dataset.csv",
	TableItems:     "order_items_dataset.csv",
	TableProducts:  "products_dataset.csv",
	TableCustomers: "customers_dataset.csv",
	TableReviews:   "order_reviews_dataset.csv",
}

// Required columns per table. A header missing any of these is a fatal
// SchemaError; all other columns are optional and degrade to nil fields.
var requiredColumns = map[string][]string{
	TableOrders:    {"order_id", "customer_id", "order_status", "order_purchase_timestamp"},
	TableItems:     {"order_id", "order_item_id", "product_id", "price", "freight_value"},
	TableProducts:  {"product_id"},
	TableCustomers: {"customer_id"},
	TableReviews:   {"review_id", "order_id", "review_score"},
}

// RawOrder is an orders row exactly as read from the file, prior to cleaning.
type RawOrder struct {
	OrderID             string
	CustomerID          string
	Status              string
	PurchasedAt         string
	ApprovedAt          string
	DeliveredCarrierAt  string
	DeliveredCustomerAt string
	EstimatedDeliveryAt string
}

// RawOrderItem is an order_items row prior to cleaning.
type RawOrderItem struct {
	OrderID      string
	OrderItemID  string
	ProductID    string
	Price        string
	FreightValue string
}

// RawProduct is a products row prior to cleaning.
type RawProduct struct {
	ProductID string
	Category  string
}

// RawCustomer is a customers row prior to cleaning.
type RawCustomer struct {
	CustomerID string
	City       string
	State      string
	ZipPrefix  string
}

// RawReview is an order_reviews row prior to cleaning.
type RawReview struct {
	ReviewID  string
	OrderID   string
	Score     string
	CreatedAt string
	AnswerAt  string
}

// RawTables holds the five tables as read, before cleaning.
type RawTables struct {
	Orders    []RawOrder
	Items     []RawOrderItem
	Products  []RawProduct
	Customers []RawCustomer
	Reviews   []RawReview
}

// Tables holds the five cleaned, typed, deduplicated tables.
type Tables struct {
	Orders    []domain.Order
	Items     []domain.OrderItem
	Products  []domain.Product
	Customers []domain.Customer
	Reviews   []domain.Review
}

// csvTable is a parsed CSV file: a column-index map over raw rows.
type csvTable struct {
	columns map[string]int
	rows    [][]string
}

// get returns the named column's value in row, or "" when the column is
// absent or the row is too short.
func (t *csvTable) get(row []string, column string) string {
	idx, ok := t.columns[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// readTable parses one CSV file and verifies its required columns. Header
// matching trims whitespace and is case-insensitive; ragged rows are
// tolerated. An empty data section is valid.
func readTable(path, table string) (*csvTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apierrors.NewIngestionError(table, "open file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apierrors.NewIngestionError(table, "file has no header row", nil)
	}
	if err != nil {
		return nil, apierrors.NewIngestionError(table, "read header", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, exists := columns[key]; !exists {
			columns[key] = i
		}
	}

	for _, required := range requiredColumns[table] {
		if _, ok := columns[required]; !ok {
			return nil, &apierrors.SchemaError{Table: table, Column: required}
		}
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apierrors.NewIngestionError(table, fmt.Sprintf("read row %d", len(rows)+2), err)
		}
		rows = append(rows, row)
	}

	return &csvTable{columns: columns, rows: rows}, nil
}
