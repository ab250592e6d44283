package processor

import (
	"github.com/fathurwithyou/silberschatz/dberr"
	"github.com/fathurwithyou/silberschatz/parser"
	"github.com/fathurwithyou/silberschatz/storage/access"
	"github.com/fathurwithyou/silberschatz/storage/table/column"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
)

// catalogResource is the lock-manager resource protecting schema changes.
// DDL serializes on its exclusive lock the way DML serializes on tables.
const catalogResource = "__catalog__"

// handleDDL runs CREATE TABLE / DROP TABLE under the same implicit/explicit
// transaction discipline as DML. Catalog changes apply immediately and are
// not part of the write-set undo: inside an explicit transaction a later
// ABORT rolls back DML effects but not the DDL itself, only the catalog lock
// follows the transaction's lifetime.
func (p *QueryProcessor) handleDDL(stmt *parser.Statement) *ExecutionResult {
	txn := p.current
	implicit := txn == nil
	if implicit {
		txn = p.txnManager.Begin(true)
	}
	sharedBefore := txn.GetSharedLockSet().Clone()
	exclusiveBefore := txn.GetExclusiveLockSet().Clone()

	if err := p.lockManager.LockExclusive(txn, catalogResource); err != nil {
		return p.failDML(txn, implicit, sharedBefore, exclusiveBefore, err)
	}

	var err error
	var message string
	switch stmt.StatementType_ {
	case parser.CREATE_TABLE:
		err = p.createTable(stmt, txn)
		message = "table " + stmt.TableName_ + " created"
	default:
		err = p.catalog.DropTable(stmt.TableName_, txn)
		message = "table " + stmt.TableName_ + " dropped"
	}
	if err != nil {
		return p.failDML(txn, implicit, sharedBefore, exclusiveBefore, err)
	}

	if implicit {
		p.txnManager.Commit(txn)
	}
	return newMessageResult(message)
}

func (p *QueryProcessor) createTable(stmt *parser.Statement, txn *access.Transaction) error {
	if len(stmt.ColDefExpressions_) == 0 {
		return dberr.NewConstraintViolation(stmt.TableName_, "table needs at least one column")
	}

	pkColumn := int32(-1)
	columns := make([]*column.Column, 0, len(stmt.ColDefExpressions_))
	for i, def := range stmt.ColDefExpressions_ {
		nullable := def.Nullable_
		if stmt.PrimaryKeyCol_ != "" && def.ColName_ == stmt.PrimaryKeyCol_ {
			pkColumn = int32(i)
			nullable = false
		}
		columns = append(columns, column.NewColumn(def.ColName_, def.ColType_, nullable))
	}
	if stmt.PrimaryKeyCol_ != "" && pkColumn < 0 {
		return dberr.NewUnknownColumn(stmt.PrimaryKeyCol_)
	}

	_, err := p.catalog.CreateTable(stmt.TableName_, schema.NewSchema(columns), pkColumn, txn)
	return err
}
