package filter

// FieldType describes the value type of a filterable field
type FieldType string

const (
	FieldTypeText        FieldType = "text"
	FieldTypeNumber      FieldType = "number"
	FieldTypeDate        FieldType = "date"
	FieldTypeSelect      FieldType = "select"
	FieldTypeMultiSelect FieldType = "multiselect"
	FieldTypeBoolean     FieldType = "boolean"
)

// FieldCategory determines which data source resolves a field's value
type FieldCategory string

const (
	CategoryCustomer FieldCategory = "customer"
	CategoryInvoice  FieldCategory = "invoice"
	CategoryProduct  FieldCategory = "product"
)

// Operator is a comparison operator usable in a FilterCondition
type Operator string

const (
	OpEquals       Operator = "equals"
	OpNotEquals    Operator = "not_equals"
	OpContains     Operator = "contains"
	OpNotContains  Operator = "not_contains"
	OpStartsWith   Operator = "starts_with"
	OpEndsWith     Operator = "ends_with"
	OpGreaterThan  Operator = "greater_than"
	OpLessThan     Operator = "less_than"
	OpGreaterEqual Operator = "greater_equal"
	OpLessEqual    Operator = "less_equal"
	OpBetween      Operator = "between"
	OpIn           Operator = "in"
	OpNotIn        Operator = "not_in"
	OpIsNull       Operator = "is_null"
	OpIsNotNull    Operator = "is_not_null"
	OpIsEmpty      Operator = "is_empty"
	OpIsNotEmpty   Operator = "is_not_empty"
)

// FieldOption is an enumerated value choice for select/multiselect fields
type FieldOption struct {
	Value string `json:"value" bson:"value"`
	Label string `json:"label" bson:"label"`
}

// FilterField describes one filterable attribute
type FilterField struct {
	ID        string        `json:"id" bson:"id"`
	Label     string        `json:"label" bson:"label"`
	Type      FieldType     `json:"type" bson:"type"`
	Category  FieldCategory `json:"category" bson:"category"`
	Operators []Operator    `json:"operators" bson:"operators"`
	Options   []FieldOption `json:"options,omitempty" bson:"options,omitempty"`
}

// HasOperator reports whether op belongs to the field's operator set
func (f FilterField) HasOperator(op Operator) bool {
	for _, o := range f.Operators {
		if o == op {
			return true
		}
	}
	return false
}

// Registry is a static catalog of filterable fields. It is built once at
// process start and never mutated afterwards.
type Registry struct {
	fields []FilterField
	byID   map[string]FilterField
}

func NewRegistry(fields []FilterField) *Registry {
	byID := make(map[string]FilterField, len(fields))
	for _, f := range fields {
		byID[f.ID] = f
	}
	return &Registry{fields: fields, byID: byID}
}

// FieldByID returns the field with the given id. Absence is signaled with
// the ok bool, not an error.
func (r *Registry) FieldByID(id string) (FilterField, bool) {
	f, ok := r.byID[id]
	return f, ok
}

// FieldsByCategory returns all fields in a category, in catalog order.
func (r *Registry) FieldsByCategory(cat FieldCategory) []FilterField {
	var out []FilterField
	for _, f := range r.fields {
		if f.Category == cat {
			out = append(out, f)
		}
	}
	return out
}

// Fields returns the full catalog in order.
func (r *Registry) Fields() []FilterField {
	return r.fields
}

var (
	textOperators = []Operator{
		OpEquals, OpNotEquals, OpContains, OpNotContains,
		OpStartsWith, OpEndsWith, OpIsEmpty, OpIsNotEmpty,
	}
	numberOperators = []Operator{
		OpEquals, OpNotEquals, OpGreaterThan, OpLessThan,
		OpGreaterEqual, OpLessEqual, OpBetween, OpIsNull, OpIsNotNull,
	}
	dateOperators = []Operator{
		OpEquals, OpNotEquals, OpGreaterThan, OpLessThan,
		OpGreaterEqual, OpLessEqual, OpBetween, OpIsNull, OpIsNotNull,
	}
	selectOperators = []Operator{
		OpEquals, OpNotEquals, OpIn, OpNotIn, OpIsNull, OpIsNotNull,
	}
	multiselectOperators = []Operator{
		OpIn, OpNotIn, OpContains, OpNotContains, OpIsEmpty, OpIsNotEmpty,
	}
	booleanOperators = []Operator{OpEquals, OpNotEquals}
)

// DefaultRegistry builds the standard field catalog for the marketing module.
func DefaultRegistry() *Registry {
	return NewRegistry([]FilterField{
		// Customer attributes
		{ID: "customer_group", Label: "Nhóm khách hàng", Type: FieldTypeSelect, Category: CategoryCustomer, Operators: selectOperators,
			Options: []FieldOption{
				{Value: "VIP", Label: "VIP"},
				{Value: "Thân thiết", Label: "Thân thiết"},
				{Value: "Thường", Label: "Thường"},
				{Value: "Mới", Label: "Mới"},
			}},
		{ID: "customer_name", Label: "Tên khách hàng", Type: FieldTypeText, Category: CategoryCustomer, Operators: textOperators},
		{ID: "customer_phone", Label: "Số điện thoại", Type: FieldTypeText, Category: CategoryCustomer, Operators: textOperators},
		{ID: "customer_email", Label: "Email", Type: FieldTypeText, Category: CategoryCustomer, Operators: textOperators},
		{ID: "customer_address", Label: "Địa chỉ", Type: FieldTypeText, Category: CategoryCustomer, Operators: textOperators},
		{ID: "delivery_area", Label: "Khu vực giao hàng", Type: FieldTypeSelect, Category: CategoryCustomer, Operators: selectOperators,
			Options: []FieldOption{
				{Value: "Quận 1", Label: "Quận 1"},
				{Value: "Quận 3", Label: "Quận 3"},
				{Value: "Quận 5", Label: "Quận 5"},
				{Value: "Quận 7", Label: "Quận 7"},
				{Value: "Thủ Đức", Label: "Thủ Đức"},
			}},
		{ID: "total_spent", Label: "Tổng chi tiêu", Type: FieldTypeNumber, Category: CategoryCustomer, Operators: numberOperators},
		{ID: "loyalty_points", Label: "Điểm tích lũy", Type: FieldTypeNumber, Category: CategoryCustomer, Operators: numberOperators},
		{ID: "total_debt", Label: "Tổng công nợ", Type: FieldTypeNumber, Category: CategoryCustomer, Operators: numberOperators},
		{ID: "created_date", Label: "Ngày tạo", Type: FieldTypeDate, Category: CategoryCustomer, Operators: dateOperators},
		{ID: "status", Label: "Trạng thái", Type: FieldTypeSelect, Category: CategoryCustomer, Operators: selectOperators,
			Options: []FieldOption{
				{Value: "Hoạt động", Label: "Hoạt động"},
				{Value: "Ngừng hoạt động", Label: "Ngừng hoạt động"},
			}},

		// Invoice aggregates
		{ID: "order_count", Label: "Số đơn hàng", Type: FieldTypeNumber, Category: CategoryInvoice, Operators: numberOperators},
		{ID: "total_amount", Label: "Tổng giá trị đơn hàng", Type: FieldTypeNumber, Category: CategoryInvoice, Operators: numberOperators},
		{ID: "avg_order_value", Label: "Giá trị đơn trung bình", Type: FieldTypeNumber, Category: CategoryInvoice, Operators: numberOperators},
		{ID: "last_purchase_date", Label: "Ngày mua gần nhất", Type: FieldTypeDate, Category: CategoryInvoice, Operators: dateOperators},
		{ID: "order_status", Label: "Trạng thái đơn hàng", Type: FieldTypeMultiSelect, Category: CategoryInvoice, Operators: multiselectOperators,
			Options: []FieldOption{
				{Value: "Hoàn thành", Label: "Hoàn thành"},
				{Value: "Đang giao", Label: "Đang giao"},
				{Value: "Đã hủy", Label: "Đã hủy"},
			}},
		{ID: "sales_channel", Label: "Kênh bán hàng", Type: FieldTypeMultiSelect, Category: CategoryInvoice, Operators: multiselectOperators,
			Options: []FieldOption{
				{Value: "Cửa hàng", Label: "Cửa hàng"},
				{Value: "Online", Label: "Online"},
				{Value: "Zalo", Label: "Zalo"},
				{Value: "Shopee", Label: "Shopee"},
			}},
		{ID: "branch", Label: "Chi nhánh", Type: FieldTypeMultiSelect, Category: CategoryInvoice, Operators: multiselectOperators},

		// Purchased product aggregates
		{ID: "purchased_products", Label: "Sản phẩm đã mua", Type: FieldTypeMultiSelect, Category: CategoryProduct, Operators: multiselectOperators},
		{ID: "purchased_categories", Label: "Danh mục đã mua", Type: FieldTypeMultiSelect, Category: CategoryProduct, Operators: multiselectOperators},
		{ID: "purchased_brands", Label: "Thương hiệu đã mua", Type: FieldTypeMultiSelect, Category: CategoryProduct, Operators: multiselectOperators},
		{ID: "distinct_product_count", Label: "Số sản phẩm khác nhau", Type: FieldTypeNumber, Category: CategoryProduct, Operators: numberOperators},
	})
}
