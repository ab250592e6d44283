// Package index holds the unique primary-key index. The mutation executors
// keep it in sync with the heap and use it to detect duplicate keys before a
// write happens.
package index

import (
	"github.com/google/btree"
	"github.com/sasha-s/go-deadlock"

	"github.com/fathurwithyou/silberschatz/dberr"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

type pkItem struct {
	key  types.Value
	slot uint32
}

func (i *pkItem) Less(than btree.Item) bool {
	return i.key.CompareTo(than.(*pkItem).key) < 0
}

// PrimaryKeyIndex maps primary-key values to heap slots, one entry per live
// row.
type PrimaryKeyIndex struct {
	mutex deadlock.RWMutex
	tree  *btree.BTree
	table string
}

func NewPrimaryKeyIndex(table string) *PrimaryKeyIndex {
	return &PrimaryKeyIndex{tree: btree.New(8), table: table}
}

// InsertEntry adds key -> rid, failing on a duplicate key.
func (idx *PrimaryKeyIndex) InsertEntry(key types.Value, rid *tuple.RID) error {
	idx.mutex.Lock()
	defer idx.mutex.Unlock()
	item := &pkItem{key, rid.GetSlotNum()}
	if idx.tree.Has(item) {
		return dberr.NewConstraintViolation(idx.table, "duplicate primary key "+key.ToString())
	}
	idx.tree.ReplaceOrInsert(item)
	return nil
}

func (idx *PrimaryKeyIndex) DeleteEntry(key types.Value) {
	idx.mutex.Lock()
	defer idx.mutex.Unlock()
	idx.tree.Delete(&pkItem{key: key})
}

// GetEntry returns the slot for key, if present.
func (idx *PrimaryKeyIndex) GetEntry(key types.Value) (*tuple.RID, bool) {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()
	item := idx.tree.Get(&pkItem{key: key})
	if item == nil {
		return nil, false
	}
	return tuple.NewRID(item.(*pkItem).slot), true
}

func (idx *PrimaryKeyIndex) Len() int {
	idx.mutex.RLock()
	defer idx.mutex.RUnlock()
	return idx.tree.Len()
}
