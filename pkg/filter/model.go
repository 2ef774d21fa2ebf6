package filter

import (
	"time"

	"github.com/google/uuid"
)

// GroupLogic is the boolean combinator of a group or filter root
type GroupLogic string

const (
	LogicAnd GroupLogic = "and"
	LogicOr  GroupLogic = "or"
)

// Range is the value shape of the between operator. Bounds are inclusive.
type Range struct {
	From float64 `json:"from" bson:"from"`
	To   float64 `json:"to" bson:"to"`
}

// Condition is a single leaf predicate. Field and Operator may be empty
// while the condition is still being edited; such a condition is inert and
// the evaluator skips it entirely.
type Condition struct {
	ID       string      `json:"id" bson:"id"`
	Field    string      `json:"field" bson:"field"`
	Operator Operator    `json:"operator" bson:"operator"`
	Value    interface{} `json:"value,omitempty" bson:"value,omitempty"`
}

// NewCondition returns an empty condition with a fresh id.
func NewCondition() Condition {
	return Condition{ID: uuid.NewString()}
}

// SetField changes the condition's field. The operator resets to the first
// operator valid for the new field and the value is cleared, so a stale
// operator/value pair can never survive a field change.
func (c *Condition) SetField(reg *Registry, fieldID string) {
	c.Field = fieldID
	c.Operator = ""
	c.Value = nil
	if f, ok := reg.FieldByID(fieldID); ok && len(f.Operators) > 0 {
		c.Operator = f.Operators[0]
	}
}

// Group is a boolean node combining conditions and nested sub-groups.
type Group struct {
	ID         string      `json:"id" bson:"id"`
	Logic      GroupLogic  `json:"logic" bson:"logic"`
	Conditions []Condition `json:"conditions" bson:"conditions"`
	Groups     []Group     `json:"groups,omitempty" bson:"groups,omitempty"`
}

// MaxNestingDepth is the UI cap for nested sub-groups. The evaluator itself
// recurses to any depth.
const MaxNestingDepth = 3

func NewGroup(logic GroupLogic) Group {
	return Group{ID: uuid.NewString(), Logic: logic}
}

// AddCondition appends an empty condition and returns its id.
func (g *Group) AddCondition() string {
	c := NewCondition()
	g.Conditions = append(g.Conditions, c)
	return c.ID
}

// RemoveCondition deletes the condition with the given id.
func (g *Group) RemoveCondition(id string) bool {
	for i, c := range g.Conditions {
		if c.ID == id {
			g.Conditions = append(g.Conditions[:i], g.Conditions[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateCondition replaces the condition with the same id.
func (g *Group) UpdateCondition(cond Condition) bool {
	for i, c := range g.Conditions {
		if c.ID == cond.ID {
			g.Conditions[i] = cond
			return true
		}
	}
	return false
}

// AddGroup appends a nested sub-group when the current depth is still below
// MaxNestingDepth. depth is the nesting level of g itself (top-level = 1).
func (g *Group) AddGroup(depth int) (string, bool) {
	if depth >= MaxNestingDepth {
		return "", false
	}
	sub := NewGroup(LogicAnd)
	g.Groups = append(g.Groups, sub)
	return sub.ID, true
}

// RemoveGroup deletes the immediate sub-group with the given id.
func (g *Group) RemoveGroup(id string) bool {
	for i, sub := range g.Groups {
		if sub.ID == id {
			g.Groups = append(g.Groups[:i], g.Groups[i+1:]...)
			return true
		}
	}
	return false
}

// Duplicate deep-copies the group, assigning fresh ids to the copy and to
// every nested condition and sub-group. The copy never shares identity with
// the source at any depth.
func (g Group) Duplicate() Group {
	dup := Group{
		ID:    uuid.NewString(),
		Logic: g.Logic,
	}
	if len(g.Conditions) > 0 {
		dup.Conditions = make([]Condition, len(g.Conditions))
		for i, c := range g.Conditions {
			c.ID = uuid.NewString()
			dup.Conditions[i] = c
		}
	}
	if len(g.Groups) > 0 {
		dup.Groups = make([]Group, len(g.Groups))
		for i, sub := range g.Groups {
			dup.Groups[i] = sub.Duplicate()
		}
	}
	return dup
}

// AdvancedFilter is the root aggregate: a top-level combinator over groups
// plus metadata for persistence.
type AdvancedFilter struct {
	ID          string     `json:"id" bson:"id"`
	Name        string     `json:"name,omitempty" bson:"name,omitempty"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Logic       GroupLogic `json:"logic" bson:"logic"`
	Groups      []Group    `json:"groups" bson:"groups"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty" bson:"created_by,omitempty"`
	Tags        []string   `json:"tags,omitempty" bson:"tags,omitempty"`
}

func NewAdvancedFilter(logic GroupLogic) *AdvancedFilter {
	return &AdvancedFilter{
		ID:        uuid.NewString(),
		Logic:     logic,
		CreatedAt: time.Now(),
	}
}

// AddGroup appends a top-level group and returns its id.
func (f *AdvancedFilter) AddGroup(logic GroupLogic) string {
	g := NewGroup(logic)
	f.Groups = append(f.Groups, g)
	return g.ID
}

// RemoveGroup deletes the top-level group with the given id.
func (f *AdvancedFilter) RemoveGroup(id string) bool {
	for i, g := range f.Groups {
		if g.ID == id {
			f.Groups = append(f.Groups[:i], f.Groups[i+1:]...)
			return true
		}
	}
	return false
}
