package plans

import (
	"github.com/fathurwithyou/silberschatz/common"
	"github.com/fathurwithyou/silberschatz/execution/expression"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
)

type JoinType int32

const (
	InnerJoin JoinType = iota
	LeftOuterJoin
	RightOuterJoin
	FullOuterJoin
)

// NestedLoopJoinPlanNode joins two children. A nil onPredicate makes the join
// a cross product. The output schema is the concatenation of the children's
// schemas; name collisions are resolved by the table qualifiers the planner
// put on the column names.
type NestedLoopJoinPlanNode struct {
	*AbstractPlanNode
	joinType    JoinType
	onPredicate expression.Expression
}

func NewNestedLoopJoinPlanNode(left Plan, right Plan, joinType JoinType,
	onPredicate expression.Expression) *NestedLoopJoinPlanNode {
	outputSchema := schema.Concat(left.OutputSchema(), right.OutputSchema())
	return &NestedLoopJoinPlanNode{&AbstractPlanNode{outputSchema, []Plan{left, right}}, joinType, onPredicate}
}

func (p *NestedLoopJoinPlanNode) GetJoinType() JoinType               { return p.joinType }
func (p *NestedLoopJoinPlanNode) OnPredicate() expression.Expression  { return p.onPredicate }
func (p *NestedLoopJoinPlanNode) GetType() PlanType                   { return NestedLoopJoin }

func (p *NestedLoopJoinPlanNode) GetLeftPlan() Plan {
	common.SH_Assert(len(p.GetChildren()) == 2, "join should have exactly two children plans.")
	return p.GetChildAt(0)
}

func (p *NestedLoopJoinPlanNode) GetRightPlan() Plan {
	common.SH_Assert(len(p.GetChildren()) == 2, "join should have exactly two children plans.")
	return p.GetChildAt(1)
}
