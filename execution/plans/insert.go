package plans

import (
	"github.com/fathurwithyou/silberschatz/types"
)

// InsertPlanNode inserts literal rows into a table. Arity and types of each
// row are validated against the table schema when the executor opens.
type InsertPlanNode struct {
	*AbstractPlanNode
	rawValues [][]types.Value
	tableOID  uint32
}

func NewInsertPlanNode(rawValues [][]types.Value, tableOID uint32) *InsertPlanNode {
	return &InsertPlanNode{&AbstractPlanNode{MutationOutputSchema(), nil}, rawValues, tableOID}
}

func (p *InsertPlanNode) GetRawValues() [][]types.Value { return p.rawValues }
func (p *InsertPlanNode) GetTableOID() uint32           { return p.tableOID }
func (p *InsertPlanNode) GetType() PlanType             { return Insert }
