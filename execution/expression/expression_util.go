package expression

import (
	"github.com/fathurwithyou/silberschatz/dberr"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
)

// TraverseColumnRefs walks the expression tree and calls fn for every column
// reference in it.
func TraverseColumnRefs(expr Expression, fn func(col *ColumnValue)) {
	switch e := expr.(type) {
	case *ColumnValue:
		fn(e)
	case *Comparison:
		TraverseColumnRefs(e.left, fn)
		TraverseColumnRefs(e.right, fn)
	case *LogicalOp:
		TraverseColumnRefs(e.left, fn)
		if e.right != nil {
			TraverseColumnRefs(e.right, fn)
		}
	}
}

// ValidateColumns checks at open time that every column an expression
// references exists in its input schema. For join predicates the right schema
// is non-nil and side selection follows each reference's tuple index.
func ValidateColumns(expr Expression, leftSchema *schema.Schema, rightSchema *schema.Schema) error {
	if expr == nil {
		return nil
	}
	var invalid string
	TraverseColumnRefs(expr, func(col *ColumnValue) {
		schema_ := leftSchema
		if col.GetTupleIndex() == 1 {
			schema_ = rightSchema
		}
		if schema_ == nil || !schema_.IsHaveColumn(col.GetColName()) {
			if invalid == "" {
				invalid = col.GetColName()
			}
		}
	})
	if invalid != "" {
		return dberr.NewUnknownColumn(invalid)
	}
	return nil
}
