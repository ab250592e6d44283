package executors

import (
	"github.com/fathurwithyou/silberschatz/catalog"
	"github.com/fathurwithyou/silberschatz/execution/plans"
	"github.com/fathurwithyou/silberschatz/storage/access"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
)

// SeqScanExecutor produces a table's live rows in storage order. It takes the
// table's shared lock before the first row is read; under strict 2PL the lock
// stays until the transaction ends, so re-Init only reopens the cursor.
type SeqScanExecutor struct {
	context  *ExecutorContext
	plan     *plans.SeqScanPlanNode
	metadata *catalog.TableMetadata
	it       *access.TableHeapIterator
}

func NewSeqScanExecutor(context *ExecutorContext, plan *plans.SeqScanPlanNode) Executor {
	return &SeqScanExecutor{context: context, plan: plan}
}

func (e *SeqScanExecutor) Init() error {
	metadata, err := e.context.GetCatalog().GetTableByOID(e.plan.GetTableOID())
	if err != nil {
		return err
	}
	e.metadata = metadata

	txn := e.context.GetTransaction()
	if err := e.context.GetLockManager().LockShared(txn, metadata.Name()); err != nil {
		return err
	}
	e.it = metadata.Table().Iterator(txn)
	return nil
}

func (e *SeqScanExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.it.End() {
		if err := e.it.Err(); err != nil {
			return nil, true, err
		}
		return nil, true, nil
	}
	t := e.it.Current()
	e.it.Next()
	return t, false, nil
}

func (e *SeqScanExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }
