package executors

import (
	"fmt"

	"github.com/fathurwithyou/silberschatz/catalog"
	"github.com/fathurwithyou/silberschatz/dberr"
	"github.com/fathurwithyou/silberschatz/execution/plans"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

// InsertExecutor appends the plan's literal rows to a table and produces a
// single row-count tuple. Every row is validated against the table schema
// before the first write, so a bad row fails the statement without touching
// the heap.
type InsertExecutor struct {
	context  *ExecutorContext
	plan     *plans.InsertPlanNode
	metadata *catalog.TableMetadata
	executed bool
}

func NewInsertExecutor(context *ExecutorContext, plan *plans.InsertPlanNode) Executor {
	return &InsertExecutor{context: context, plan: plan}
}

func (e *InsertExecutor) Init() error {
	metadata, err := e.context.GetCatalog().GetTableByOID(e.plan.GetTableOID())
	if err != nil {
		return err
	}
	e.metadata = metadata
	e.executed = false

	txn := e.context.GetTransaction()
	if err := e.context.GetLockManager().LockExclusive(txn, metadata.Name()); err != nil {
		return err
	}

	for _, row := range e.plan.GetRawValues() {
		if err := validateRow(row, metadata); err != nil {
			return err
		}
	}
	return nil
}

func (e *InsertExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.executed {
		return nil, true, nil
	}
	e.executed = true

	txn := e.context.GetTransaction()
	heap := e.metadata.Table()
	pkColumn := e.metadata.PrimaryKeyColumn()
	inserted := 0

	for _, row := range e.plan.GetRawValues() {
		values := coerceRow(row, e.metadata.Schema())

		var pkValue types.Value
		if pkColumn >= 0 {
			pkValue = values[pkColumn]
			if _, ok := e.metadata.PrimaryKeyIndex().GetEntry(pkValue); ok {
				return nil, true, dberr.NewConstraintViolation(e.metadata.Name(),
					"duplicate primary key "+pkValue.ToString())
			}
		}

		t := tuple.NewTupleFromSchema(values, e.metadata.Schema())
		rid, err := heap.InsertTuple(t, txn)
		if err != nil {
			return nil, true, err
		}

		if pkColumn >= 0 {
			if err := e.metadata.PrimaryKeyIndex().InsertEntry(pkValue, rid); err != nil {
				return nil, true, err
			}
			txn.LastWriteRecord().SetPKUndo(e.metadata.PrimaryKeyIndex(), nil, &pkValue)
		}
		inserted++
	}

	count := tuple.NewTupleFromSchema([]types.Value{types.NewInteger(int32(inserted))}, e.GetOutputSchema())
	return count, false, nil
}

func (e *InsertExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }

// validateRow checks one literal row's arity, types and nullability against
// the table schema. An integer literal is acceptable for a float column; any
// other type mismatch fails.
func validateRow(row []types.Value, metadata *catalog.TableMetadata) error {
	schema_ := metadata.Schema()
	if uint32(len(row)) != schema_.GetColumnCount() {
		return dberr.NewConstraintViolation(metadata.Name(),
			fmt.Sprintf("row has %d values, table has %d columns", len(row), schema_.GetColumnCount()))
	}
	for i := uint32(0); i < schema_.GetColumnCount(); i++ {
		col := schema_.GetColumn(i)
		v := row[i]
		if v.IsNull() {
			if !col.IsNullable() || int32(i) == metadata.PrimaryKeyColumn() {
				return dberr.NewConstraintViolation(metadata.Name(),
					"null value for non-nullable column "+col.GetColumnName())
			}
			continue
		}
		if v.ValueType() == col.GetColumnType() {
			continue
		}
		if v.ValueType() == types.Integer && col.GetColumnType() == types.Float {
			continue
		}
		return dberr.NewConstraintViolation(metadata.Name(),
			fmt.Sprintf("type mismatch for column %s: %s given, %s expected",
				col.GetColumnName(), v.ValueType().String(), col.GetColumnType().String()))
	}
	return nil
}

// coerceRow aligns a validated row's values with the column types, widening
// integer literals bound for float columns and retyping nulls.
func coerceRow(row []types.Value, schema_ *schema.Schema) []types.Value {
	values := make([]types.Value, 0, len(row))
	for i := uint32(0); i < schema_.GetColumnCount(); i++ {
		col := schema_.GetColumn(i)
		v := row[i]
		switch {
		case v.IsNull():
			values = append(values, types.NewNull(col.GetColumnType()))
		case v.ValueType() == types.Integer && col.GetColumnType() == types.Float:
			values = append(values, types.NewFloat(float32(v.ToInteger())))
		default:
			values = append(values, v)
		}
	}
	return values
}
