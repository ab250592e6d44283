package expression

import (
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

// Expression is a node of a predicate or value expression tree, evaluated
// against one tuple (Evaluate) or a pair of join inputs (EvaluateJoin).
// Predicate nodes produce boolean values under three-valued logic: the null
// boolean stands for Unknown.
type Expression interface {
	Evaluate(tuple_ *tuple.Tuple, schema_ *schema.Schema) types.Value
	EvaluateJoin(leftTuple *tuple.Tuple, leftSchema *schema.Schema,
		rightTuple *tuple.Tuple, rightSchema *schema.Schema) types.Value
}
