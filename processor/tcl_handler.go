package processor

import (
	"go.uber.org/zap"

	"github.com/fathurwithyou/silberschatz/common"
	"github.com/fathurwithyou/silberschatz/dberr"
)

// The TCL state machine:
//
//	no transaction -(BEGIN)-> ACTIVE -(COMMIT|ABORT)-> no transaction
//
// Illegal transitions fail with TransactionStateError and leave the current
// state untouched.

func (p *QueryProcessor) handleBegin() *ExecutionResult {
	if p.current != nil {
		return newErrorResult(dberr.NewTransactionState("transaction already in progress"))
	}
	p.current = p.txnManager.Begin(false)
	common.Logger().Debug("transaction started", zap.Int32("txn", int32(p.current.GetTransactionId())))
	return newMessageResult("transaction started")
}

func (p *QueryProcessor) handleCommit() *ExecutionResult {
	if p.current == nil {
		return newErrorResult(dberr.NewTransactionState("no transaction to commit"))
	}
	txn := p.current
	p.current = nil
	p.txnManager.Commit(txn)
	common.Logger().Debug("transaction committed", zap.Int32("txn", int32(txn.GetTransactionId())))
	return newMessageResult("transaction committed")
}

func (p *QueryProcessor) handleAbort() *ExecutionResult {
	if p.current == nil {
		return newErrorResult(dberr.NewTransactionState("no transaction to abort"))
	}
	txn := p.current
	p.current = nil
	p.txnManager.Abort(txn)
	common.Logger().Debug("transaction aborted", zap.Int32("txn", int32(txn.GetTransactionId())))
	return newMessageResult("transaction aborted")
}
