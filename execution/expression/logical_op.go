package expression

import (
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

type LogicalOpType int32

const (
	AND LogicalOpType = iota
	OR
	NOT
)

// LogicalOp combines predicate results under Kleene three-valued logic.
// For NOT, right must be nil.
type LogicalOp struct {
	logicalOpType LogicalOpType
	left          Expression
	right         Expression
}

func NewLogicalOp(left Expression, right Expression, logicalOpType LogicalOpType) Expression {
	return &LogicalOp{logicalOpType, left, right}
}

func (l *LogicalOp) GetLogicalOpType() LogicalOpType { return l.logicalOpType }
func (l *LogicalOp) GetLeft() Expression             { return l.left }
func (l *LogicalOp) GetRight() Expression            { return l.right }

func (l *LogicalOp) Evaluate(tuple_ *tuple.Tuple, schema_ *schema.Schema) types.Value {
	lhs := l.left.Evaluate(tuple_, schema_).ToTriBool()
	if l.logicalOpType == NOT {
		return types.NewBooleanFromTriBool(lhs.Not())
	}
	rhs := l.right.Evaluate(tuple_, schema_).ToTriBool()
	return types.NewBooleanFromTriBool(l.performLogicalOp(lhs, rhs))
}

func (l *LogicalOp) EvaluateJoin(leftTuple *tuple.Tuple, leftSchema *schema.Schema,
	rightTuple *tuple.Tuple, rightSchema *schema.Schema) types.Value {
	lhs := l.left.EvaluateJoin(leftTuple, leftSchema, rightTuple, rightSchema).ToTriBool()
	if l.logicalOpType == NOT {
		return types.NewBooleanFromTriBool(lhs.Not())
	}
	rhs := l.right.EvaluateJoin(leftTuple, leftSchema, rightTuple, rightSchema).ToTriBool()
	return types.NewBooleanFromTriBool(l.performLogicalOp(lhs, rhs))
}

func (l *LogicalOp) performLogicalOp(lhs types.TriBool, rhs types.TriBool) types.TriBool {
	switch l.logicalOpType {
	case AND:
		return lhs.And(rhs)
	case OR:
		return lhs.Or(rhs)
	default:
		panic("unknown logicalOpType is passed!")
	}
}
