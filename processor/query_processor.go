// Package processor routes validated statements to their handlers and owns
// the per-connection transaction context. It is the single entry point a
// server or shell layer calls.
package processor

import (
	"go.uber.org/zap"

	"github.com/fathurwithyou/silberschatz/catalog"
	"github.com/fathurwithyou/silberschatz/common"
	"github.com/fathurwithyou/silberschatz/dberr"
	"github.com/fathurwithyou/silberschatz/execution/executors"
	"github.com/fathurwithyou/silberschatz/parser"
	"github.com/fathurwithyou/silberschatz/planner"
	"github.com/fathurwithyou/silberschatz/storage/access"
)

// QueryProcessor executes statements for one connection. The engine state it
// points at (catalog, lock manager, transaction manager) is shared between
// connections; the current explicit transaction is per-connection.
type QueryProcessor struct {
	catalog     *catalog.Catalog
	lockManager *access.LockManager
	txnManager  *access.TransactionManager
	planner     planner.Planner
	engine      *executors.ExecutionEngine

	// current is the connection's explicit transaction, nil when outside a
	// BEGIN...COMMIT/ABORT block. Implicit transactions never land here.
	current *access.Transaction
}

func NewQueryProcessor(c *catalog.Catalog, lockManager *access.LockManager,
	txnManager *access.TransactionManager, planner_ planner.Planner) *QueryProcessor {
	return &QueryProcessor{
		catalog:     c,
		lockManager: lockManager,
		txnManager:  txnManager,
		planner:     planner_,
		engine:      &executors.ExecutionEngine{},
	}
}

// ExecuteStatement dispatches one statement and always returns exactly one
// result. Routing is exhaustive over the statement-type enum; anything else
// is a routing error.
func (p *QueryProcessor) ExecuteStatement(stmt *parser.Statement) *ExecutionResult {
	common.Logger().Debug("execute statement", zap.String("type", stmt.StatementType_.String()))

	switch stmt.StatementType_ {
	case parser.SELECT, parser.INSERT, parser.UPDATE, parser.DELETE:
		return p.handleDML(stmt)
	case parser.CREATE_TABLE, parser.DROP_TABLE:
		return p.handleDDL(stmt)
	case parser.BEGIN:
		return p.handleBegin()
	case parser.COMMIT:
		return p.handleCommit()
	case parser.ABORT:
		return p.handleAbort()
	default:
		return newErrorResult(dberr.NewRouting("unrecognized statement category"))
	}
}

// InTransaction reports whether the connection has an explicit transaction
// open.
func (p *QueryProcessor) InTransaction() bool { return p.current != nil }
