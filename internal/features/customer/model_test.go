package customer

import (
	"testing"
	"time"

	"go-marketing/internal/features/product"
	"go-marketing/internal/features/sale"
	"go-marketing/pkg/filter"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sales reference customers by ERP code, so the record id a customer exposes
// to the evaluator must be that code, not the Mongo ObjectID hex.
func TestToRecordUsesErpCode(t *testing.T) {
	c := Customer{
		ID:   primitive.NewObjectID(),
		Code: "KH001",
		Name: "Nguyễn Văn An",
	}

	rec := c.ToRecord()
	if rec.ID != "KH001" {
		t.Fatalf("record ID = %q, want %q", rec.ID, "KH001")
	}
}

func TestToRecordFallsBackToObjectID(t *testing.T) {
	c := Customer{ID: primitive.NewObjectID()}

	rec := c.ToRecord()
	if rec.ID != c.ID.Hex() {
		t.Fatalf("record ID = %q, want ObjectID hex %q", rec.ID, c.ID.Hex())
	}
}

// Builds the data source through the real ToRecord mappers on all three
// entities and checks that invoice and product fields resolve for a customer
// whose sales are keyed by code.
func TestRecordMappersJoinSalesToCustomers(t *testing.T) {
	cust := Customer{
		ID:   primitive.NewObjectID(),
		Code: "KH001",
		Name: "Nguyễn Văn An",
	}
	s := sale.Sale{
		ID:         primitive.NewObjectID(),
		Code:       "HD0001",
		CustomerID: "KH001",
		ProductIDs: []string{"SP001"},
		Amount:     500000,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:     "completed",
	}
	p := product.Product{
		ID:       primitive.NewObjectID(),
		SKU:      "SP001",
		Name:     "Trà sữa trân châu",
		Category: "Đồ uống",
	}

	ds := &filter.DataSource{
		Customers: []filter.CustomerRecord{cust.ToRecord()},
		Sales:     []filter.SaleRecord{s.ToRecord()},
		Products:  []filter.ProductRecord{p.ToRecord()},
	}

	e := filter.NewEvaluator(nil)

	byOrders := filter.NewAdvancedFilter(filter.LogicAnd)
	g := filter.NewGroup(filter.LogicAnd)
	c := filter.NewCondition()
	c.Field = "order_count"
	c.Operator = filter.OpGreaterEqual
	c.Value = 1.0
	g.Conditions = []filter.Condition{c}
	byOrders.Groups = []filter.Group{g}

	result := e.Evaluate(byOrders, ds)
	if result.TotalCount != 1 || len(result.Customers) != 1 || result.Customers[0] != "KH001" {
		t.Fatalf("order_count >= 1 matched %v, want [KH001]", result.Customers)
	}

	byCategory := filter.NewAdvancedFilter(filter.LogicAnd)
	g2 := filter.NewGroup(filter.LogicAnd)
	c2 := filter.NewCondition()
	c2.Field = "purchased_categories"
	c2.Operator = filter.OpContains
	c2.Value = "Đồ uống"
	g2.Conditions = []filter.Condition{c2}
	byCategory.Groups = []filter.Group{g2}

	result = e.Evaluate(byCategory, ds)
	if result.TotalCount != 1 || len(result.Customers) != 1 || result.Customers[0] != "KH001" {
		t.Fatalf("purchased_categories contains Đồ uống matched %v, want [KH001]", result.Customers)
	}
}
