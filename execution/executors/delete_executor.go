package executors

import (
	"github.com/fathurwithyou/silberschatz/catalog"
	"github.com/fathurwithyou/silberschatz/execution/plans"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

// DeleteExecutor delete-marks the rows its child produces and emits a single
// row-count tuple. Like the update path, the exclusive lock goes first so the
// child's shared request is a reentrant no-op. The marks become final at
// commit; abort rolls them back.
type DeleteExecutor struct {
	context  *ExecutorContext
	plan     *plans.DeletePlanNode
	child    Executor
	metadata *catalog.TableMetadata
	executed bool
}

func NewDeleteExecutor(context *ExecutorContext, plan *plans.DeletePlanNode, child Executor) Executor {
	return &DeleteExecutor{context: context, plan: plan, child: child}
}

func (e *DeleteExecutor) Init() error {
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
	return e.child.Init()
}

func (e *DeleteExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.executed {
		return nil, true, nil
	}
	e.executed = true

	txn := e.context.GetTransaction()
	heap := e.metadata.Table()
	pkColumn := e.metadata.PrimaryKeyColumn()
	deleted := 0

	for {
		t, done, err := e.child.Next()
		if err != nil {
			return nil, true, err
		}
		if done {
			break
		}

		if err := heap.MarkDelete(t.GetRID(), txn); err != nil {
			return nil, true, err
		}
		if pkColumn >= 0 {
			pkValue := t.GetValue(uint32(pkColumn))
			e.metadata.PrimaryKeyIndex().DeleteEntry(pkValue)
			txn.LastWriteRecord().SetPKUndo(e.metadata.PrimaryKeyIndex(), &pkValue, nil)
		}
		deleted++
	}

	count := tuple.NewTupleFromSchema([]types.Value{types.NewInteger(int32(deleted))}, e.GetOutputSchema())
	return count, false, nil
}

func (e *DeleteExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }
