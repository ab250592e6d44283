package access

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/fathurwithyou/silberschatz/storage/index"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

// Transaction states:
//
//	ACTIVE -> COMMITTED
//	ACTIVE -> ABORTED
//
// A context is ACTIVE from BEGIN (or implicit start) until exactly one of
// COMMIT/ABORT moves it to a terminal state.
type TransactionState int32

const (
	ACTIVE TransactionState = iota
	COMMITTED
	ABORTED
)

// WType is the kind of a write a transaction performed.
type WType int32

const (
	INSERT WType = iota
	DELETE
	UPDATE
)

// WriteRecord tracks one write for undo. The before image is kept for UPDATE
// and DELETE; primary-key undo information is attached by the executor that
// touched the index.
type WriteRecord struct {
	rid      *tuple.RID
	wtype    WType
	oldTuple *tuple.Tuple
	table    *TableHeap

	pkIndex *index.PrimaryKeyIndex
	oldPK   *types.Value
	newPK   *types.Value
}

func NewWriteRecord(rid *tuple.RID, wtype WType, oldTuple *tuple.Tuple, table *TableHeap) *WriteRecord {
	return &WriteRecord{rid: rid, wtype: wtype, oldTuple: oldTuple, table: table}
}

// SetPKUndo records how to undo this write's primary-key index change.
func (w *WriteRecord) SetPKUndo(pkIndex *index.PrimaryKeyIndex, oldPK *types.Value, newPK *types.Value) {
	w.pkIndex = pkIndex
	w.oldPK = oldPK
	w.newPK = newPK
}

// Transaction tracks the state of one transaction: its id, lifecycle state,
// whether it was started implicitly around a single statement, the undo write
// set and the resources it holds locks on.
type Transaction struct {
	txnID    types.TxnID
	state    TransactionState
	implicit bool

	writeSet []*WriteRecord
	prevLSN  types.LSN

	sharedLockSet    mapset.Set[string]
	exclusiveLockSet mapset.Set[string]
}

func NewTransaction(txnID types.TxnID, implicit bool) *Transaction {
	return &Transaction{
		txnID:            txnID,
		state:            ACTIVE,
		implicit:         implicit,
		writeSet:         make([]*WriteRecord, 0),
		prevLSN:          types.InvalidLSN,
		sharedLockSet:    mapset.NewSet[string](),
		exclusiveLockSet: mapset.NewSet[string](),
	}
}

func (txn *Transaction) GetTransactionId() types.TxnID { return txn.txnID }
func (txn *Transaction) GetState() TransactionState    { return txn.state }
func (txn *Transaction) SetState(s TransactionState)   { txn.state = s }
func (txn *Transaction) IsImplicit() bool              { return txn.implicit }

func (txn *Transaction) GetWriteSet() []*WriteRecord         { return txn.writeSet }
func (txn *Transaction) SetWriteSet(ws []*WriteRecord)       { txn.writeSet = ws }
func (txn *Transaction) AddIntoWriteSet(record *WriteRecord) { txn.writeSet = append(txn.writeSet, record) }

// LastWriteRecord returns the most recently added write record, so the
// executor that just performed a write can attach index undo info.
func (txn *Transaction) LastWriteRecord() *WriteRecord {
	if len(txn.writeSet) == 0 {
		return nil
	}
	return txn.writeSet[len(txn.writeSet)-1]
}

func (txn *Transaction) GetPrevLSN() types.LSN    { return txn.prevLSN }
func (txn *Transaction) SetPrevLSN(lsn types.LSN) { txn.prevLSN = lsn }

func (txn *Transaction) GetSharedLockSet() mapset.Set[string]    { return txn.sharedLockSet }
func (txn *Transaction) GetExclusiveLockSet() mapset.Set[string] { return txn.exclusiveLockSet }
