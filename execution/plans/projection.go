package plans

import (
	"github.com/fathurwithyou/silberschatz/execution/expression"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
)

// ProjectionPlanNode maps each child tuple onto the output schema: one
// expression per output column, aliases already applied to the output column
// names.
type ProjectionPlanNode struct {
	*AbstractPlanNode
	exprs []expression.Expression
}

func NewProjectionPlanNode(child Plan, outputSchema *schema.Schema,
	exprs []expression.Expression) *ProjectionPlanNode {
	return &ProjectionPlanNode{&AbstractPlanNode{outputSchema, []Plan{child}}, exprs}
}

func (p *ProjectionPlanNode) GetExprs() []expression.Expression { return p.exprs }
func (p *ProjectionPlanNode) GetType() PlanType                 { return Projection }
