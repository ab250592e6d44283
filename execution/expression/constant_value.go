package expression

import (
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

// ConstantValue wraps a literal.
type ConstantValue struct {
	value types.Value
}

func NewConstantValue(value types.Value) Expression {
	return &ConstantValue{value}
}

func (c *ConstantValue) Evaluate(tuple_ *tuple.Tuple, schema_ *schema.Schema) types.Value {
	return c.value
}

func (c *ConstantValue) EvaluateJoin(leftTuple *tuple.Tuple, leftSchema *schema.Schema,
	rightTuple *tuple.Tuple, rightSchema *schema.Schema) types.Value {
	return c.value
}
