package filter

import (
	"testing"
)

func TestSetFieldResetsOperatorAndValue(t *testing.T) {
	reg := DefaultRegistry()

	c := NewCondition()
	c.SetField(reg, "customer_name")
	c.Operator = OpContains
	c.Value = "trà"

	c.SetField(reg, "total_spent")
	if c.Operator != OpEquals {
		t.Errorf("operator = %q, want first operator of number fields (%q)", c.Operator, OpEquals)
	}
	if c.Value != nil {
		t.Errorf("value = %v, want nil after field change", c.Value)
	}

	c.SetField(reg, "no_such_field")
	if c.Operator != "" {
		t.Errorf("operator = %q, want empty for unknown field", c.Operator)
	}
}

func TestGroupConditionOps(t *testing.T) {
	g := NewGroup(LogicAnd)

	id := g.AddCondition()
	if len(g.Conditions) != 1 || g.Conditions[0].ID != id {
		t.Fatalf("AddCondition did not append with returned id")
	}

	updated := g.Conditions[0]
	updated.Field = "status"
	updated.Operator = OpEquals
	updated.Value = "Hoạt động"
	if !g.UpdateCondition(updated) {
		t.Fatal("UpdateCondition returned false for existing id")
	}
	if g.Conditions[0].Field != "status" {
		t.Errorf("condition not updated in place")
	}

	if g.UpdateCondition(Condition{ID: "missing"}) {
		t.Error("UpdateCondition returned true for unknown id")
	}
	if !g.RemoveCondition(id) {
		t.Error("RemoveCondition returned false for existing id")
	}
	if g.RemoveCondition(id) {
		t.Error("RemoveCondition returned true for already removed id")
	}
}

func TestAddGroupRespectsDepthCap(t *testing.T) {
	g := NewGroup(LogicAnd)

	if _, ok := g.AddGroup(1); !ok {
		t.Fatal("AddGroup at depth 1 should succeed")
	}
	if _, ok := g.Groups[0].AddGroup(2); !ok {
		t.Fatal("AddGroup at depth 2 should succeed")
	}
	if _, ok := g.Groups[0].Groups[0].AddGroup(MaxNestingDepth); ok {
		t.Fatal("AddGroup at the cap should be rejected")
	}
}

func collectIDs(g Group, ids map[string]bool) {
	ids[g.ID] = true
	for _, c := range g.Conditions {
		ids[c.ID] = true
	}
	for _, sub := range g.Groups {
		collectIDs(sub, ids)
	}
}

func sameShape(a, b Group) bool {
	if a.Logic != b.Logic || len(a.Conditions) != len(b.Conditions) || len(a.Groups) != len(b.Groups) {
		return false
	}
	for i := range a.Conditions {
		ca, cb := a.Conditions[i], b.Conditions[i]
		if ca.Field != cb.Field || ca.Operator != cb.Operator {
			return false
		}
	}
	for i := range a.Groups {
		if !sameShape(a.Groups[i], b.Groups[i]) {
			return false
		}
	}
	return true
}

func TestDuplicateGeneratesFreshIDsAtAllDepths(t *testing.T) {
	inner := NewGroup(LogicOr)
	inner.Conditions = []Condition{cond("total_debt", OpGreaterThan, 0.0)}

	mid := NewGroup(LogicAnd)
	mid.Conditions = []Condition{cond("status", OpEquals, "Hoạt động")}
	mid.Groups = []Group{inner}

	root := NewGroup(LogicAnd)
	root.Conditions = []Condition{
		cond("customer_group", OpEquals, "VIP"),
		cond("total_spent", OpGreaterEqual, 500000.0),
	}
	root.Groups = []Group{mid}

	dup := root.Duplicate()

	if !sameShape(root, dup) {
		t.Fatal("duplicate is not structurally equal to the source")
	}

	orig := map[string]bool{}
	copies := map[string]bool{}
	collectIDs(root, orig)
	collectIDs(dup, copies)

	for id := range copies {
		if orig[id] {
			t.Errorf("duplicate shares id %q with the source", id)
		}
	}
}

func TestFilterGroupOps(t *testing.T) {
	f := NewAdvancedFilter(LogicOr)
	id := f.AddGroup(LogicAnd)
	if len(f.Groups) != 1 || f.Groups[0].ID != id {
		t.Fatal("AddGroup did not append with returned id")
	}
	if !f.RemoveGroup(id) {
		t.Error("RemoveGroup returned false for existing id")
	}
	if f.RemoveGroup(id) {
		t.Error("RemoveGroup returned true for missing id")
	}
}
