package executors

import (
	"github.com/fathurwithyou/silberschatz/catalog"
	"github.com/fathurwithyou/silberschatz/storage/access"
)

// ExecutorContext stores all the context necessary to run an executor: the
// catalog, the lock manager and the transaction the statement runs in. It is
// handed top-down through the operator tree.
type ExecutorContext struct {
	catalog     *catalog.Catalog
	lockManager *access.LockManager
	txn         *access.Transaction
}

func NewExecutorContext(c *catalog.Catalog, lockManager *access.LockManager,
	txn *access.Transaction) *ExecutorContext {
	return &ExecutorContext{c, lockManager, txn}
}

func (e *ExecutorContext) GetCatalog() *catalog.Catalog         { return e.catalog }
func (e *ExecutorContext) GetLockManager() *access.LockManager  { return e.lockManager }
func (e *ExecutorContext) GetTransaction() *access.Transaction  { return e.txn }
