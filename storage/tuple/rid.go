package tuple

import "fmt"

// RID identifies a tuple's slot within its table heap.
type RID struct {
	slotNum uint32
}

func NewRID(slotNum uint32) *RID {
	return &RID{slotNum}
}

func (r *RID) GetSlotNum() uint32 { return r.slotNum }

func (r *RID) ToString() string {
	return fmt.Sprintf("slot:%d", r.slotNum)
}
