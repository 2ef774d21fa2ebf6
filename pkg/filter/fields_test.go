package filter

import "testing"

func TestRegistryLookups(t *testing.T) {
	reg := DefaultRegistry()

	f, ok := reg.FieldByID("total_spent")
	if !ok {
		t.Fatal("total_spent missing from default registry")
	}
	if f.Category != CategoryCustomer || f.Type != FieldTypeNumber {
		t.Errorf("total_spent = %s/%s, want customer/number", f.Category, f.Type)
	}

	if _, ok := reg.FieldByID("nope"); ok {
		t.Error("unknown id should report !ok, not a zero field")
	}

	for _, cat := range []FieldCategory{CategoryCustomer, CategoryInvoice, CategoryProduct} {
		fields := reg.FieldsByCategory(cat)
		if len(fields) == 0 {
			t.Errorf("category %s has no fields", cat)
		}
		for _, f := range fields {
			if f.Category != cat {
				t.Errorf("field %s returned for category %s", f.ID, cat)
			}
			if len(f.Operators) == 0 {
				t.Errorf("field %s has no operators", f.ID)
			}
		}
	}
}

func TestSelectFieldsCarryOptions(t *testing.T) {
	reg := DefaultRegistry()
	for _, f := range reg.Fields() {
		if f.Type == FieldTypeSelect && len(f.Options) == 0 && f.ID != "branch" {
			t.Errorf("select field %s has no options", f.ID)
		}
	}
}

func TestHasOperator(t *testing.T) {
	reg := DefaultRegistry()
	f, _ := reg.FieldByID("customer_name")
	if !f.HasOperator(OpContains) {
		t.Error("text field should allow contains")
	}
	if f.HasOperator(OpBetween) {
		t.Error("text field should not allow between")
	}
}
