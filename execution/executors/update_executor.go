package executors

import (
	"math"

	"github.com/fathurwithyou/silberschatz/catalog"
	"github.com/fathurwithyou/silberschatz/dberr"
	"github.com/fathurwithyou/silberschatz/execution/expression"
	"github.com/fathurwithyou/silberschatz/execution/plans"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

// UpdateExecutor rewrites the rows its child produces and emits a single
// row-count tuple. The table's exclusive lock is taken before the child
// opens, so the child's shared request degenerates to a reentrant no-op.
// Assignment expressions see the row's values before any assignment of the
// same statement applies.
type UpdateExecutor struct {
	context  *ExecutorContext
	plan     *plans.UpdatePlanNode
	child    Executor
	metadata *catalog.TableMetadata
	executed bool

	// colIndexes aligns each assignment with its target column, resolved once
	// at open time.
	colIndexes []uint32
}

func NewUpdateExecutor(context *ExecutorContext, plan *plans.UpdatePlanNode, child Executor) Executor {
	return &UpdateExecutor{context: context, plan: plan, child: child}
}

func (e *UpdateExecutor) Init() error {
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
	if err := e.child.Init(); err != nil {
		return err
	}

	e.colIndexes = e.colIndexes[:0]
	for _, assignment := range e.plan.GetAssignments() {
		idx := metadata.Schema().GetColIndex(assignment.ColName)
		if idx == math.MaxUint32 {
			return dberr.NewUnknownColumn(assignment.ColName)
		}
		e.colIndexes = append(e.colIndexes, idx)
		if err := expression.ValidateColumns(assignment.Expr, e.child.GetOutputSchema(), nil); err != nil {
			return err
		}
	}
	return nil
}

func (e *UpdateExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.executed {
		return nil, true, nil
	}
	e.executed = true

	txn := e.context.GetTransaction()
	heap := e.metadata.Table()
	schema_ := e.metadata.Schema()
	pkColumn := e.metadata.PrimaryKeyColumn()
	updated := 0

	for {
		old, done, err := e.child.Next()
		if err != nil {
			return nil, true, err
		}
		if done {
			break
		}

		values := make([]types.Value, old.Size())
		copy(values, old.Values())
		for i, assignment := range e.plan.GetAssignments() {
			values[e.colIndexes[i]] = assignment.Expr.Evaluate(old, e.child.GetOutputSchema())
		}
		if err := validateRow(values, e.metadata); err != nil {
			return nil, true, err
		}
		values = coerceRow(values, schema_)

		pkChanged := false
		var oldPK, newPK types.Value
		if pkColumn >= 0 {
			oldPK = old.GetValue(uint32(pkColumn))
			newPK = values[pkColumn]
			pkChanged = oldPK.CompareTo(newPK) != 0
			if pkChanged {
				if _, ok := e.metadata.PrimaryKeyIndex().GetEntry(newPK); ok {
					return nil, true, dberr.NewConstraintViolation(e.metadata.Name(),
						"duplicate primary key "+newPK.ToString())
				}
			}
		}

		rid := old.GetRID()
		newTuple := tuple.NewTupleFromSchema(values, schema_)
		if err := heap.UpdateTuple(newTuple, rid, txn); err != nil {
			return nil, true, err
		}

		if pkChanged {
			e.metadata.PrimaryKeyIndex().DeleteEntry(oldPK)
			if err := e.metadata.PrimaryKeyIndex().InsertEntry(newPK, rid); err != nil {
				return nil, true, err
			}
			txn.LastWriteRecord().SetPKUndo(e.metadata.PrimaryKeyIndex(), &oldPK, &newPK)
		}
		updated++
	}

	count := tuple.NewTupleFromSchema([]types.Value{types.NewInteger(int32(updated))}, e.GetOutputSchema())
	return count, false, nil
}

func (e *UpdateExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }
