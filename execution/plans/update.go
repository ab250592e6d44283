package plans

import (
	"github.com/fathurwithyou/silberschatz/execution/expression"
)

// Assignment is one SET clause: target column and the expression producing
// its new value. The expression may reference the row's current values.
type Assignment struct {
	ColName string
	Expr    expression.Expression
}

// UpdatePlanNode updates the rows its child (typically scan->selection)
// produces.
type UpdatePlanNode struct {
	*AbstractPlanNode
	assignments []Assignment
	tableOID    uint32
}

func NewUpdatePlanNode(child Plan, assignments []Assignment, tableOID uint32) *UpdatePlanNode {
	return &UpdatePlanNode{&AbstractPlanNode{MutationOutputSchema(), []Plan{child}}, assignments, tableOID}
}

func (p *UpdatePlanNode) GetAssignments() []Assignment { return p.assignments }
func (p *UpdatePlanNode) GetTableOID() uint32          { return p.tableOID }
func (p *UpdatePlanNode) GetType() PlanType            { return Update }
