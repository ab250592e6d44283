package processor

import (
	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"

	"github.com/fathurwithyou/silberschatz/common"
	"github.com/fathurwithyou/silberschatz/execution/executors"
	"github.com/fathurwithyou/silberschatz/parser"
	"github.com/fathurwithyou/silberschatz/storage/access"
)

// handleDML plans and runs one SELECT/INSERT/UPDATE/DELETE. Without an
// explicit transaction the statement runs in an implicit one: committed on
// success, aborted on failure. Inside an explicit transaction a failed
// statement leaves the transaction ACTIVE but gives back the locks the
// statement itself acquired.
func (p *QueryProcessor) handleDML(stmt *parser.Statement) *ExecutionResult {
	txn := p.current
	implicit := txn == nil
	if implicit {
		txn = p.txnManager.Begin(true)
	}

	// Lock-set snapshot for the failed-statement delta release.
	sharedBefore := txn.GetSharedLockSet().Clone()
	exclusiveBefore := txn.GetExclusiveLockSet().Clone()

	plan, err := p.planner.MakePlan(stmt, txn)
	if err != nil {
		return p.failDML(txn, implicit, sharedBefore, exclusiveBefore, err)
	}

	context := executors.NewExecutorContext(p.catalog, p.lockManager, txn)
	tuples, err := p.engine.Execute(plan, context)
	if err != nil {
		return p.failDML(txn, implicit, sharedBefore, exclusiveBefore, err)
	}

	if implicit {
		p.txnManager.Commit(txn)
	}

	if stmt.StatementType_ == parser.SELECT {
		return newRowsResult(plan.OutputSchema(), tuples)
	}
	count := 0
	if len(tuples) > 0 {
		count = int(tuples[0].GetValue(0).ToInteger())
	}
	return newCountResult(count, stmt.StatementType_.String()+" ok")
}

func (p *QueryProcessor) failDML(txn *access.Transaction, implicit bool,
	sharedBefore mapset.Set[string], exclusiveBefore mapset.Set[string], err error) *ExecutionResult {
	common.Logger().Debug("statement failed", zap.Error(err),
		zap.Int32("txn", int32(txn.GetTransactionId())), zap.Bool("implicit", implicit))

	if implicit {
		p.txnManager.Abort(txn)
		return newErrorResult(err)
	}

	// The explicit transaction stays ACTIVE, but the statement's own locks
	// must not outlive it. An exclusive lock the statement obtained by
	// upgrading a shared lock held before the statement is downgraded, not
	// released: the earlier hold belongs to the transaction, not the statement.
	for _, resource := range txn.GetSharedLockSet().Difference(sharedBefore).ToSlice() {
		p.lockManager.Release(txn, resource)
	}
	for _, resource := range txn.GetExclusiveLockSet().Difference(exclusiveBefore).ToSlice() {
		if sharedBefore.Contains(resource) {
			p.lockManager.Downgrade(txn, resource)
		} else {
			p.lockManager.Release(txn, resource)
		}
	}
	return newErrorResult(err)
}
