package expression

import (
	"math"

	"github.com/fathurwithyou/silberschatz/common"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

// ColumnValue reads one column out of a tuple. tupleIndex selects the join
// side: 0 for the left (or only) input, 1 for the right. Names are resolved
// against the schema at evaluation; executors validate the reference at open
// time, so a failed lookup here is a programming error.
type ColumnValue struct {
	tupleIndex uint32
	colName    string
}

func NewColumnValue(tupleIndex uint32, colName string) Expression {
	return &ColumnValue{tupleIndex, colName}
}

func (c *ColumnValue) GetTupleIndex() uint32 { return c.tupleIndex }
func (c *ColumnValue) GetColName() string    { return c.colName }

func (c *ColumnValue) Evaluate(tuple_ *tuple.Tuple, schema_ *schema.Schema) types.Value {
	colIndex := schema_.GetColIndex(c.colName)
	common.SH_Assert(colIndex != math.MaxUint32, "unresolved column "+c.colName)
	return tuple_.GetValue(colIndex)
}

func (c *ColumnValue) EvaluateJoin(leftTuple *tuple.Tuple, leftSchema *schema.Schema,
	rightTuple *tuple.Tuple, rightSchema *schema.Schema) types.Value {
	if c.tupleIndex == 0 {
		return c.Evaluate(leftTuple, leftSchema)
	}
	return c.Evaluate(rightTuple, rightSchema)
}
