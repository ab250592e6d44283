package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathurwithyou/silberschatz/recovery"
	"github.com/fathurwithyou/silberschatz/storage/disk"
	"github.com/fathurwithyou/silberschatz/storage/table/column"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

func newTestHeap(t *testing.T) (*TableHeap, *TransactionManager) {
	schema_ := schema.NewSchema([]*column.Column{
		column.NewColumn("id", types.Integer, false),
		column.NewColumn("name", types.Varchar, false),
	})
	dm := disk.NewDiskManager("test")
	logManager := recovery.NewLogManager()
	heap, err := NewTableHeap(dm, logManager, "users", schema_)
	require.NoError(t, err)
	return heap, NewTransactionManager(NewLockManager(time.Second), logManager)
}

func row(id int32, name string, schema_ *schema.Schema) *tuple.Tuple {
	return tuple.NewTupleFromSchema(
		[]types.Value{types.NewInteger(id), types.NewVarchar(name)}, schema_)
}

func scanAll(heap *TableHeap, txn *Transaction) []*tuple.Tuple {
	var tuples []*tuple.Tuple
	for it := heap.Iterator(txn); !it.End(); it.Next() {
		tuples = append(tuples, it.Current())
	}
	return tuples
}

func TestInsertAndScan(t *testing.T) {
	heap, tm := newTestHeap(t)
	txn := tm.Begin(false)

	rid1, err := heap.InsertTuple(row(1, "alice", heap.Schema()), txn)
	require.NoError(t, err)
	rid2, err := heap.InsertTuple(row(2, "bob", heap.Schema()), txn)
	require.NoError(t, err)
	assert.NotEqual(t, rid1.GetSlotNum(), rid2.GetSlotNum())

	tuples := scanAll(heap, txn)
	require.Len(t, tuples, 2)
	assert.Equal(t, "alice", tuples[0].GetValue(1).ToVarchar())
	assert.Equal(t, "bob", tuples[1].GetValue(1).ToVarchar())
}

func TestUpdateKeepsRID(t *testing.T) {
	heap, tm := newTestHeap(t)
	txn := tm.Begin(false)

	rid, err := heap.InsertTuple(row(1, "alice", heap.Schema()), txn)
	require.NoError(t, err)

	require.NoError(t, heap.UpdateTuple(row(1, "alicia", heap.Schema()), rid, txn))

	got, err := heap.GetTuple(rid)
	require.NoError(t, err)
	assert.Equal(t, "alicia", got.GetValue(1).ToVarchar())
	assert.Equal(t, rid.GetSlotNum(), got.GetRID().GetSlotNum())
}

func TestMarkDeleteHidesRow(t *testing.T) {
	heap, tm := newTestHeap(t)
	txn := tm.Begin(false)

	rid, err := heap.InsertTuple(row(1, "alice", heap.Schema()), txn)
	require.NoError(t, err)

	require.NoError(t, heap.MarkDelete(rid, txn))
	assert.Empty(t, scanAll(heap, txn))

	// A second mark on the same row is a storage error.
	assert.Error(t, heap.MarkDelete(rid, txn))

	heap.RollbackDelete(rid, txn)
	assert.Len(t, scanAll(heap, txn), 1)
}

func TestCommitAppliesDeletes(t *testing.T) {
	heap, tm := newTestHeap(t)
	txn := tm.Begin(false)
	rid, err := heap.InsertTuple(row(1, "alice", heap.Schema()), txn)
	require.NoError(t, err)
	tm.Commit(txn)

	txn2 := tm.Begin(false)
	require.NoError(t, heap.MarkDelete(rid, txn2))
	tm.Commit(txn2)

	txn3 := tm.Begin(false)
	assert.Empty(t, scanAll(heap, txn3))
}

func TestAbortUndoesWritesInReverse(t *testing.T) {
	heap, tm := newTestHeap(t)

	setup := tm.Begin(false)
	rid, err := heap.InsertTuple(row(1, "alice", heap.Schema()), setup)
	require.NoError(t, err)
	tm.Commit(setup)

	txn := tm.Begin(false)
	require.NoError(t, heap.UpdateTuple(row(1, "alicia", heap.Schema()), rid, txn))
	_, err = heap.InsertTuple(row(2, "bob", heap.Schema()), txn)
	require.NoError(t, err)
	require.NoError(t, heap.MarkDelete(rid, txn))
	tm.Abort(txn)

	after := tm.Begin(false)
	tuples := scanAll(heap, after)
	require.Len(t, tuples, 1)
	assert.Equal(t, "alice", tuples[0].GetValue(1).ToVarchar())
}
