package access

import (
	"github.com/fathurwithyou/silberschatz/storage/tuple"
)

// TableHeapIterator is the storage cursor a scan pulls from: live rows in
// storage order, one at a time.
type TableHeapIterator struct {
	tableHeap *TableHeap
	txn       *Transaction
	current   *tuple.Tuple
	slotNum   int
	err       error
	closed    bool
}

func NewTableHeapIterator(tableHeap *TableHeap, txn *Transaction) *TableHeapIterator {
	it := &TableHeapIterator{tableHeap: tableHeap, txn: txn, slotNum: -1}
	it.advance()
	return it
}

func (it *TableHeapIterator) Current() *tuple.Tuple { return it.current }

// End reports cursor exhaustion, whether by running off the table or by a
// storage error (see Err).
func (it *TableHeapIterator) End() bool { return it.current == nil }

func (it *TableHeapIterator) Err() error { return it.err }

// Next advances to the following live row and returns it.
func (it *TableHeapIterator) Next() *tuple.Tuple {
	it.advance()
	return it.current
}

// Close releases the cursor. The table lock is not released here; that
// happens at the transaction's terminal state.
func (it *TableHeapIterator) Close() {
	it.closed = true
	it.current = nil
}

func (it *TableHeapIterator) advance() {
	if it.closed || it.err != nil {
		it.current = nil
		return
	}
	count := it.tableHeap.slotCount()
	for it.slotNum++; it.slotNum < count; it.slotNum++ {
		if !it.tableHeap.slotVisible(it.slotNum) {
			continue
		}
		t, err := it.tableHeap.GetTuple(tuple.NewRID(uint32(it.slotNum)))
		if err != nil {
			it.err = err
			it.current = nil
			return
		}
		it.current = t
		return
	}
	it.current = nil
}
