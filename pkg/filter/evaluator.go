package filter

import (
	"strconv"
	"strings"
	"time"
)

// CustomerRecord is the evaluator's view of one customer entity.
type CustomerRecord struct {
	ID            string    `json:"id" bson:"id"`
	Group         string    `json:"group" bson:"group"`
	Name          string    `json:"name" bson:"name"`
	Phone         string    `json:"phone" bson:"phone"`
	Email         string    `json:"email" bson:"email"`
	Address       string    `json:"address" bson:"address"`
	DeliveryArea  string    `json:"delivery_area" bson:"delivery_area"`
	TotalSpent    float64   `json:"total_spent" bson:"total_spent"`
	LoyaltyPoints float64   `json:"loyalty_points" bson:"loyalty_points"`
	TotalDebt     float64   `json:"total_debt" bson:"total_debt"`
	CreatedDate   time.Time `json:"created_date" bson:"created_date"`
	Status        string    `json:"status" bson:"status"`
}

// SaleRecord is one invoice/sale tagged with the owning customer.
type SaleRecord struct {
	ID         string    `json:"id" bson:"id"`
	CustomerID string    `json:"customer_id" bson:"customer_id"`
	ProductIDs []string  `json:"product_ids" bson:"product_ids"`
	Amount     float64   `json:"amount" bson:"amount"`
	Date       time.Time `json:"date" bson:"date"`
	Status     string    `json:"status" bson:"status"`
	Channel    string    `json:"channel" bson:"channel"`
	Branch     string    `json:"branch" bson:"branch"`
}

// ProductRecord resolves a product id to its category and brand.
type ProductRecord struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	Category string `json:"category" bson:"category"`
	Brand    string `json:"brand" bson:"brand"`
}

// DataSource holds the fully materialized populations the evaluator reads.
// The evaluator performs no I/O and never mutates the data source.
type DataSource struct {
	Customers []CustomerRecord
	Sales     []SaleRecord
	Products  []ProductRecord
}

// Result is the evaluator output. Recomputed on every execute, never stored.
type Result struct {
	Customers       []string `json:"customers"`
	TotalCount      int      `json:"total_count"`
	ExecutionTimeMs int64    `json:"execution_time_ms"`
}

// Evaluator matches customers against an AdvancedFilter tree using the
// set-based semantics: every effective condition filters the whole
// population independently, then group logic combines the id sets
// (and = intersection, or = union). Malformed conditions never raise;
// an unknown field or operator simply contributes no matches.
type Evaluator struct {
	registry *Registry
}

func NewEvaluator(registry *Registry) *Evaluator {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Evaluator{registry: registry}
}

type idSet map[string]struct{}

// sourceIndex precomputes the per-customer sale slices and the product
// catalog lookup so condition evaluation stays linear in the population.
type sourceIndex struct {
	customers       []CustomerRecord
	salesByCustomer map[string][]SaleRecord
	productByID     map[string]ProductRecord
}

func buildIndex(ds *DataSource) *sourceIndex {
	idx := &sourceIndex{
		customers:       ds.Customers,
		salesByCustomer: make(map[string][]SaleRecord),
		productByID:     make(map[string]ProductRecord, len(ds.Products)),
	}
	for _, s := range ds.Sales {
		idx.salesByCustomer[s.CustomerID] = append(idx.salesByCustomer[s.CustomerID], s)
	}
	for _, p := range ds.Products {
		idx.productByID[p.ID] = p
	}
	return idx
}

// Evaluate runs the filter against the data source and returns the matched
// customer ids, their count and the wall-clock duration.
func (e *Evaluator) Evaluate(f *AdvancedFilter, ds *DataSource) *Result {
	start := time.Now()

	result := &Result{Customers: []string{}}
	if f == nil || len(f.Groups) == 0 {
		result.ExecutionTimeMs = time.Since(start).Milliseconds()
		return result
	}

	idx := buildIndex(ds)

	sets := make([]idSet, 0, len(f.Groups))
	for i := range f.Groups {
		sets = append(sets, e.evaluateGroup(&f.Groups[i], idx))
	}

	matched := combineSets(f.Logic, sets)
	for _, c := range ds.Customers {
		if _, ok := matched[c.ID]; ok {
			result.Customers = append(result.Customers, c.ID)
		}
	}
	result.TotalCount = len(result.Customers)
	result.ExecutionTimeMs = time.Since(start).Milliseconds()
	return result
}

// evaluateGroup computes the id set of one group. Conditions with an empty
// field or operator are excluded from the effective set entirely; a group
// left with nothing effective yields the empty set, never the universe.
func (e *Evaluator) evaluateGroup(g *Group, idx *sourceIndex) idSet {
	var sets []idSet

	for i := range g.Conditions {
		c := &g.Conditions[i]
		if c.Field == "" || c.Operator == "" {
			continue
		}
		sets = append(sets, e.conditionSet(c, idx))
	}
	for i := range g.Groups {
		sets = append(sets, e.evaluateGroup(&g.Groups[i], idx))
	}

	return combineSets(g.Logic, sets)
}

func combineSets(logic GroupLogic, sets []idSet) idSet {
	if len(sets) == 0 {
		return idSet{}
	}
	out := idSet{}
	if logic == LogicOr {
		for _, s := range sets {
			for id := range s {
				out[id] = struct{}{}
			}
		}
		return out
	}
	// and: intersection seeded from the first set
	for id := range sets[0] {
		out[id] = struct{}{}
	}
	for _, s := range sets[1:] {
		for id := range out {
			if _, ok := s[id]; !ok {
				delete(out, id)
			}
		}
	}
	return out
}

// conditionSet filters the entire population by a single condition.
func (e *Evaluator) conditionSet(c *Condition, idx *sourceIndex) idSet {
	out := idSet{}
	field, ok := e.registry.FieldByID(c.Field)
	if !ok {
		// unknown field: silent no-match
		return out
	}
	for i := range idx.customers {
		cust := &idx.customers[i]
		fieldValue := resolveFieldValue(field, cust, idx)
		if evalOperator(c.Operator, fieldValue, c.Value) {
			out[cust.ID] = struct{}{}
		}
	}
	return out
}

// resolveFieldValue dispatches on the registry category tag. Customer fields
// read the entity directly; invoice and product fields aggregate over the
// customer's sale history.
func resolveFieldValue(field FilterField, cust *CustomerRecord, idx *sourceIndex) interface{} {
	switch field.Category {
	case CategoryCustomer:
		return resolveCustomerField(field.ID, cust)
	case CategoryInvoice:
		return resolveInvoiceField(field.ID, idx.salesByCustomer[cust.ID])
	case CategoryProduct:
		return resolveProductField(field.ID, idx.salesByCustomer[cust.ID], idx.productByID)
	default:
		return nil
	}
}

func resolveCustomerField(id string, c *CustomerRecord) interface{} {
	switch id {
	case "customer_group":
		return c.Group
	case "customer_name":
		return c.Name
	case "customer_phone":
		return c.Phone
	case "customer_email":
		return c.Email
	case "customer_address":
		return c.Address
	case "delivery_area":
		return c.DeliveryArea
	case "total_spent":
		return c.TotalSpent
	case "loyalty_points":
		return c.LoyaltyPoints
	case "total_debt":
		return c.TotalDebt
	case "created_date":
		if c.CreatedDate.IsZero() {
			return nil
		}
		return c.CreatedDate
	case "status":
		return c.Status
	default:
		return nil
	}
}

func resolveInvoiceField(id string, sales []SaleRecord) interface{} {
	switch id {
	case "order_count":
		return float64(len(sales))
	case "total_amount":
		var sum float64
		for _, s := range sales {
			sum += s.Amount
		}
		return sum
	case "avg_order_value":
		if len(sales) == 0 {
			return float64(0)
		}
		var sum float64
		for _, s := range sales {
			sum += s.Amount
		}
		return sum / float64(len(sales))
	case "last_purchase_date":
		var last time.Time
		for _, s := range sales {
			if s.Date.After(last) {
				last = s.Date
			}
		}
		if last.IsZero() {
			return nil
		}
		return last
	case "order_status":
		return collectStrings(sales, func(s SaleRecord) string { return s.Status })
	case "sales_channel":
		return collectStrings(sales, func(s SaleRecord) string { return s.Channel })
	case "branch":
		return collectStrings(sales, func(s SaleRecord) string { return s.Branch })
	default:
		return nil
	}
}

func resolveProductField(id string, sales []SaleRecord, products map[string]ProductRecord) interface{} {
	switch id {
	case "purchased_products":
		var ids []string
		for _, s := range sales {
			ids = append(ids, s.ProductIDs...)
		}
		return dedup(ids)
	case "purchased_categories":
		var cats []string
		for _, s := range sales {
			for _, pid := range s.ProductIDs {
				if p, ok := products[pid]; ok {
					cats = append(cats, p.Category)
				}
			}
		}
		return dedup(cats)
	case "purchased_brands":
		var brands []string
		for _, s := range sales {
			for _, pid := range s.ProductIDs {
				if p, ok := products[pid]; ok {
					brands = append(brands, p.Brand)
				}
			}
		}
		return dedup(brands)
	case "distinct_product_count":
		var ids []string
		for _, s := range sales {
			ids = append(ids, s.ProductIDs...)
		}
		return float64(len(dedup(ids)))
	default:
		return nil
	}
}

func collectStrings(sales []SaleRecord, pick func(SaleRecord) string) []string {
	out := make([]string, 0, len(sales))
	for _, s := range sales {
		out = append(out, pick(s))
	}
	return out
}

func dedup(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// evalOperator applies one operator to a resolved field value. A nil field
// value short-circuits: it matches only is_null/is_empty, never any other
// operator (not even not_equals). Unknown operators evaluate to false.
func evalOperator(op Operator, fieldValue, condValue interface{}) bool {
	if isNil(fieldValue) {
		return op == OpIsNull || op == OpIsEmpty
	}

	switch op {
	case OpEquals:
		return valueEquals(fieldValue, condValue)
	case OpNotEquals:
		return !valueEquals(fieldValue, condValue)
	case OpContains:
		return strings.Contains(lowerString(fieldValue), lowerString(condValue))
	case OpNotContains:
		return !strings.Contains(lowerString(fieldValue), lowerString(condValue))
	case OpStartsWith:
		return strings.HasPrefix(lowerString(fieldValue), lowerString(condValue))
	case OpEndsWith:
		return strings.HasSuffix(lowerString(fieldValue), lowerString(condValue))
	case OpGreaterThan:
		fv, cv, ok := numericPair(fieldValue, condValue)
		return ok && fv > cv
	case OpLessThan:
		fv, cv, ok := numericPair(fieldValue, condValue)
		return ok && fv < cv
	case OpGreaterEqual:
		fv, cv, ok := numericPair(fieldValue, condValue)
		return ok && fv >= cv
	case OpLessEqual:
		fv, cv, ok := numericPair(fieldValue, condValue)
		return ok && fv <= cv
	case OpBetween:
		r, ok := toRange(condValue)
		if !ok {
			return false
		}
		fv, ok := toFloat(fieldValue)
		return ok && fv >= r.From && fv <= r.To
	case OpIn:
		return inList(fieldValue, condValue)
	case OpNotIn:
		return !inList(fieldValue, condValue)
	case OpIsNull:
		return false // non-nil handled above
	case OpIsNotNull:
		return true
	case OpIsEmpty:
		return isEmptyValue(fieldValue)
	case OpIsNotEmpty:
		return !isEmptyValue(fieldValue)
	default:
		return false
	}
}

// inList implements in/not_in: membership against whichever side is a list,
// intersection when both are, plain equality when neither is.
func inList(fieldValue, condValue interface{}) bool {
	fvList, fvIsList := toStringList(fieldValue)
	cvList, cvIsList := toStringList(condValue)

	switch {
	case fvIsList && cvIsList:
		for _, fv := range fvList {
			for _, cv := range cvList {
				if fv == cv {
					return true
				}
			}
		}
		return false
	case cvIsList:
		fv := stringify(fieldValue)
		for _, cv := range cvList {
			if fv == cv {
				return true
			}
		}
		return false
	case fvIsList:
		cv := stringify(condValue)
		for _, fv := range fvList {
			if fv == cv {
				return true
			}
		}
		return false
	default:
		return valueEquals(fieldValue, condValue)
	}
}

func isNil(v interface{}) bool {
	return v == nil
}

// isEmptyValue treats nil, an empty string and an empty list as "empty".
// This is deliberately wider than is_null, which stays strictly nil-only.
func isEmptyValue(v interface{}) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t) == ""
	case []string:
		return len(t) == 0
	case []interface{}:
		return len(t) == 0
	}
	return false
}

func valueEquals(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return stringify(a) == stringify(b)
}

func numericPair(a, b interface{}) (float64, float64, bool) {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	return fa, fb, okA && okB
}

// toFloat coerces numbers, numeric strings, dates and date strings into a
// single comparable axis. Dates compare as unix seconds.
func toFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case time.Time:
		return float64(t.Unix()), true
	case string:
		if f, err := strconv.ParseFloat(t, 64); err == nil {
			return f, true
		}
		if ts, ok := parseTime(t); ok {
			return float64(ts.Unix()), true
		}
	}
	return 0, false
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func toRange(v interface{}) (Range, bool) {
	switch t := v.(type) {
	case Range:
		return t, true
	case *Range:
		if t != nil {
			return *t, true
		}
	case map[string]interface{}:
		from, okF := toFloat(t["from"])
		to, okT := toFloat(t["to"])
		if okF && okT {
			return Range{From: from, To: to}, true
		}
	}
	return Range{}, false
}

func toStringList(v interface{}) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []interface{}:
		out := make([]string, len(t))
		for i, e := range t {
			out[i] = stringify(e)
		}
		return out, true
	}
	return nil, false
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	}
	if list, ok := toStringList(v); ok {
		return strings.Join(list, ",")
	}
	return ""
}

func lowerString(v interface{}) string {
	return strings.ToLower(stringify(v))
}
