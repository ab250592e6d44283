package access

import (
	"github.com/sasha-s/go-deadlock"

	"github.com/fathurwithyou/silberschatz/dberr"
	"github.com/fathurwithyou/silberschatz/recovery"
	"github.com/fathurwithyou/silberschatz/storage/disk"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

type slotEntry struct {
	offset int64
	length int32
	// deleted marks a slot whose delete was applied at commit; it never
	// becomes visible again.
	deleted bool
	// markedBy is the transaction that has delete-marked this slot, or
	// InvalidTxnID. Marked slots are invisible to scans; the mark is applied
	// at commit and rolled back at abort.
	markedBy types.TxnID
}

// TableHeap stores one table's tuples in storage order: encoded rows in an
// append-only disk segment, addressed through an in-memory slot table.
// Updates append the new version and repoint the slot, so a slot's RID stays
// stable for the row's lifetime.
type TableHeap struct {
	diskManager *disk.DiskManager
	logManager  *recovery.LogManager
	tableName   string
	schema      *schema.Schema

	mutex deadlock.RWMutex
	slots []slotEntry
}

func NewTableHeap(dm *disk.DiskManager, logManager *recovery.LogManager,
	tableName string, schema_ *schema.Schema) (*TableHeap, error) {
	if err := dm.CreateSegment(tableName); err != nil {
		return nil, dberr.NewStorage(err, "create segment for "+tableName)
	}
	return &TableHeap{
		diskManager: dm,
		logManager:  logManager,
		tableName:   tableName,
		schema:      schema_,
	}, nil
}

func (th *TableHeap) TableName() string      { return th.tableName }
func (th *TableHeap) Schema() *schema.Schema { return th.schema }

// InsertTuple appends t and registers the insert in txn's write set.
func (th *TableHeap) InsertTuple(t *tuple.Tuple, txn *Transaction) (*tuple.RID, error) {
	data := t.Serialize()

	th.mutex.Lock()
	defer th.mutex.Unlock()

	offset, err := th.diskManager.Append(th.tableName, data)
	if err != nil {
		return nil, err
	}
	rid := tuple.NewRID(uint32(len(th.slots)))
	th.slots = append(th.slots, slotEntry{offset: offset, length: int32(len(data)), markedBy: types.InvalidTxnID})
	t.SetRID(rid)

	if th.logManager.IsEnabledLogging() {
		record := recovery.NewLogRecordWrite(txn.GetTransactionId(), txn.GetPrevLSN(),
			recovery.INSERT, th.tableName, rid.GetSlotNum(), nil, data)
		txn.SetPrevLSN(th.logManager.AppendLogRecord(record))
	}
	txn.AddIntoWriteSet(NewWriteRecord(rid, INSERT, nil, th))
	return rid, nil
}

// UpdateTuple replaces the row at rid with newTuple, keeping the before image
// in txn's write set.
func (th *TableHeap) UpdateTuple(newTuple *tuple.Tuple, rid *tuple.RID, txn *Transaction) error {
	oldTuple, err := th.GetTuple(rid)
	if err != nil {
		return err
	}

	data := newTuple.Serialize()

	th.mutex.Lock()
	defer th.mutex.Unlock()

	offset, err := th.diskManager.Append(th.tableName, data)
	if err != nil {
		return err
	}
	slot := &th.slots[rid.GetSlotNum()]
	slot.offset = offset
	slot.length = int32(len(data))
	newTuple.SetRID(rid)

	if th.logManager.IsEnabledLogging() {
		record := recovery.NewLogRecordWrite(txn.GetTransactionId(), txn.GetPrevLSN(),
			recovery.UPDATE, th.tableName, rid.GetSlotNum(), oldTuple.Serialize(), data)
		txn.SetPrevLSN(th.logManager.AppendLogRecord(record))
	}
	txn.AddIntoWriteSet(NewWriteRecord(rid, UPDATE, oldTuple, th))
	return nil
}

// MarkDelete hides the row at rid from scans. The delete is applied for good
// at commit and rolled back at abort.
func (th *TableHeap) MarkDelete(rid *tuple.RID, txn *Transaction) error {
	oldTuple, err := th.GetTuple(rid)
	if err != nil {
		return err
	}

	th.mutex.Lock()
	defer th.mutex.Unlock()

	slot := &th.slots[rid.GetSlotNum()]
	if slot.deleted || slot.markedBy != types.InvalidTxnID {
		return dberr.NewStorage(nil, "tuple already deleted at "+rid.ToString())
	}
	slot.markedBy = txn.GetTransactionId()

	if th.logManager.IsEnabledLogging() {
		record := recovery.NewLogRecordWrite(txn.GetTransactionId(), txn.GetPrevLSN(),
			recovery.MARKDELETE, th.tableName, rid.GetSlotNum(), oldTuple.Serialize(), nil)
		txn.SetPrevLSN(th.logManager.AppendLogRecord(record))
	}
	txn.AddIntoWriteSet(NewWriteRecord(rid, DELETE, oldTuple, th))
	return nil
}

// ApplyDelete finalizes a marked delete at commit.
func (th *TableHeap) ApplyDelete(rid *tuple.RID, txn *Transaction) {
	th.mutex.Lock()
	defer th.mutex.Unlock()
	slot := &th.slots[rid.GetSlotNum()]
	slot.deleted = true
	slot.markedBy = types.InvalidTxnID
	if th.logManager.IsEnabledLogging() {
		record := recovery.NewLogRecordWrite(txn.GetTransactionId(), txn.GetPrevLSN(),
			recovery.APPLYDELETE, th.tableName, rid.GetSlotNum(), nil, nil)
		txn.SetPrevLSN(th.logManager.AppendLogRecord(record))
	}
}

// RollbackDelete clears a delete mark at abort.
func (th *TableHeap) RollbackDelete(rid *tuple.RID, txn *Transaction) {
	th.mutex.Lock()
	defer th.mutex.Unlock()
	slot := &th.slots[rid.GetSlotNum()]
	slot.markedBy = types.InvalidTxnID
	if th.logManager.IsEnabledLogging() {
		record := recovery.NewLogRecordWrite(txn.GetTransactionId(), txn.GetPrevLSN(),
			recovery.ROLLBACKDELETE, th.tableName, rid.GetSlotNum(), nil, nil)
		txn.SetPrevLSN(th.logManager.AppendLogRecord(record))
	}
}

// rollbackUpdate restores the before image of rid during abort.
func (th *TableHeap) rollbackUpdate(rid *tuple.RID, oldTuple *tuple.Tuple) error {
	data := oldTuple.Serialize()

	th.mutex.Lock()
	defer th.mutex.Unlock()

	offset, err := th.diskManager.Append(th.tableName, data)
	if err != nil {
		return err
	}
	slot := &th.slots[rid.GetSlotNum()]
	slot.offset = offset
	slot.length = int32(len(data))
	return nil
}

// rollbackInsert removes an inserted row during abort.
func (th *TableHeap) rollbackInsert(rid *tuple.RID) {
	th.mutex.Lock()
	defer th.mutex.Unlock()
	th.slots[rid.GetSlotNum()].deleted = true
}

// GetTuple reads and decodes the row at rid regardless of delete marks; the
// iterator is the visibility-aware path.
func (th *TableHeap) GetTuple(rid *tuple.RID) (*tuple.Tuple, error) {
	th.mutex.RLock()
	if int(rid.GetSlotNum()) >= len(th.slots) {
		th.mutex.RUnlock()
		return nil, dberr.NewStorage(nil, "no such slot "+rid.ToString())
	}
	slot := th.slots[rid.GetSlotNum()]
	th.mutex.RUnlock()

	data, err := th.diskManager.ReadAt(th.tableName, slot.offset, slot.length)
	if err != nil {
		return nil, err
	}
	t, err := tuple.DeserializeFrom(data, th.schema)
	if err != nil {
		return nil, dberr.NewStorage(err, "decode tuple at "+rid.ToString())
	}
	t.SetRID(rid)
	return t, nil
}

// Iterator opens a cursor over the table's live rows in storage order.
func (th *TableHeap) Iterator(txn *Transaction) *TableHeapIterator {
	return NewTableHeapIterator(th, txn)
}

func (th *TableHeap) slotCount() int {
	th.mutex.RLock()
	defer th.mutex.RUnlock()
	return len(th.slots)
}

func (th *TableHeap) slotVisible(slotNum int) bool {
	th.mutex.RLock()
	defer th.mutex.RUnlock()
	slot := th.slots[slotNum]
	return !slot.deleted && slot.markedBy == types.InvalidTxnID
}
