package plans

import (
	"github.com/fathurwithyou/silberschatz/execution/expression"
)

// SelectionPlanNode filters its child's tuples by a predicate. Tuples whose
// predicate evaluates to false or unknown are discarded. The output schema is
// the child's schema unchanged.
type SelectionPlanNode struct {
	*AbstractPlanNode
	predicate expression.Expression
}

func NewSelectionPlanNode(child Plan, predicate expression.Expression) *SelectionPlanNode {
	return &SelectionPlanNode{&AbstractPlanNode{child.OutputSchema(), []Plan{child}}, predicate}
}

func (p *SelectionPlanNode) GetPredicate() expression.Expression { return p.predicate }
func (p *SelectionPlanNode) GetType() PlanType                   { return Selection }
