package plans

import (
	"github.com/fathurwithyou/silberschatz/execution/expression"
)

type OrderbyType int32

const (
	ASC OrderbyType = iota
	DESC
)

// SortKey is one ORDER BY key: the expression to sort on and its direction.
type SortKey struct {
	Expr  expression.Expression
	Order OrderbyType
}

// OrderbyPlanNode sorts its child's entire output before producing anything.
// Ties on a key are broken by the following keys; nulls sort before all
// non-null values regardless of direction.
type OrderbyPlanNode struct {
	*AbstractPlanNode
	sortKeys []SortKey
}

func NewOrderbyPlanNode(child Plan, sortKeys []SortKey) *OrderbyPlanNode {
	return &OrderbyPlanNode{&AbstractPlanNode{child.OutputSchema(), []Plan{child}}, sortKeys}
}

func (p *OrderbyPlanNode) GetSortKeys() []SortKey { return p.sortKeys }
func (p *OrderbyPlanNode) GetType() PlanType      { return Orderby }
