package plans

import (
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
)

// SeqScanPlanNode scans all tuples of one table in storage order. It performs
// no transformation; filtering and projection are separate nodes above it.
type SeqScanPlanNode struct {
	*AbstractPlanNode
	tableOID uint32
}

func NewSeqScanPlanNode(outputSchema *schema.Schema, tableOID uint32) *SeqScanPlanNode {
	return &SeqScanPlanNode{&AbstractPlanNode{outputSchema, nil}, tableOID}
}

func (p *SeqScanPlanNode) GetTableOID() uint32 { return p.tableOID }
func (p *SeqScanPlanNode) GetType() PlanType   { return SeqScan }
