package access

import (
	"github.com/sasha-s/go-deadlock"

	"github.com/fathurwithyou/silberschatz/common"
	"github.com/fathurwithyou/silberschatz/recovery"
	"github.com/fathurwithyou/silberschatz/types"
)

// TransactionManager keeps track of the transactions running in the system
// and sequences the calls that end them: undo of the write set, the recovery
// log record, and the lock release that strict 2PL defers to this point.
type TransactionManager struct {
	mutex       deadlock.Mutex
	nextTxnID   types.TxnID
	lockManager *LockManager
	logManager  *recovery.LogManager
	txnMap      map[types.TxnID]*Transaction
}

func NewTransactionManager(lockManager *LockManager, logManager *recovery.LogManager) *TransactionManager {
	return &TransactionManager{
		lockManager: lockManager,
		logManager:  logManager,
		txnMap:      make(map[types.TxnID]*Transaction),
	}
}

// Begin starts a new transaction. implicit marks a transaction wrapped
// automatically around a single statement.
func (tm *TransactionManager) Begin(implicit bool) *Transaction {
	tm.mutex.Lock()
	tm.nextTxnID++
	txn := NewTransaction(tm.nextTxnID, implicit)
	tm.txnMap[txn.GetTransactionId()] = txn
	tm.mutex.Unlock()

	if tm.logManager.IsEnabledLogging() {
		record := recovery.NewLogRecordTxn(txn.GetTransactionId(), txn.GetPrevLSN(), recovery.BEGIN)
		txn.SetPrevLSN(tm.logManager.AppendLogRecord(record))
	}
	return txn
}

// Commit moves txn to COMMITTED: delete marks become final, the COMMIT record
// is logged and every lock is released.
func (tm *TransactionManager) Commit(txn *Transaction) {
	common.SH_Assert(txn.GetState() == ACTIVE, "commit of a non-active transaction")

	for _, item := range txn.GetWriteSet() {
		if item.wtype == DELETE {
			item.table.ApplyDelete(item.rid, txn)
		}
	}
	txn.SetWriteSet(nil)
	txn.SetState(COMMITTED)

	if tm.logManager.IsEnabledLogging() {
		record := recovery.NewLogRecordTxn(txn.GetTransactionId(), txn.GetPrevLSN(), recovery.COMMIT)
		txn.SetPrevLSN(tm.logManager.AppendLogRecord(record))
	}

	tm.lockManager.ReleaseAll(txn)
	tm.forget(txn)
}

// Abort moves txn to ABORTED, undoing its write set in reverse order so the
// table and index state observed afterwards is the state from before the
// transaction began.
func (tm *TransactionManager) Abort(txn *Transaction) {
	common.SH_Assert(txn.GetState() == ACTIVE, "abort of a non-active transaction")

	writeSet := txn.GetWriteSet()
	for i := len(writeSet) - 1; i >= 0; i-- {
		item := writeSet[i]
		switch item.wtype {
		case INSERT:
			item.table.rollbackInsert(item.rid)
			if item.pkIndex != nil && item.newPK != nil {
				item.pkIndex.DeleteEntry(*item.newPK)
			}
		case DELETE:
			item.table.RollbackDelete(item.rid, txn)
			if item.pkIndex != nil && item.oldPK != nil {
				item.pkIndex.InsertEntry(*item.oldPK, item.rid)
			}
		case UPDATE:
			item.table.rollbackUpdate(item.rid, item.oldTuple)
			if item.pkIndex != nil && item.newPK != nil {
				item.pkIndex.DeleteEntry(*item.newPK)
				if item.oldPK != nil {
					item.pkIndex.InsertEntry(*item.oldPK, item.rid)
				}
			}
		}
	}
	txn.SetWriteSet(nil)
	txn.SetState(ABORTED)

	if tm.logManager.IsEnabledLogging() {
		record := recovery.NewLogRecordTxn(txn.GetTransactionId(), txn.GetPrevLSN(), recovery.ABORT)
		txn.SetPrevLSN(tm.logManager.AppendLogRecord(record))
	}

	tm.lockManager.ReleaseAll(txn)
	tm.forget(txn)
}

func (tm *TransactionManager) forget(txn *Transaction) {
	tm.mutex.Lock()
	delete(tm.txnMap, txn.GetTransactionId())
	tm.mutex.Unlock()
}
