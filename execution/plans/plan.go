package plans

import (
	"github.com/fathurwithyou/silberschatz/storage/table/column"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/types"
)

type PlanType int32

const (
	SeqScan PlanType = iota
	Selection
	Projection
	NestedLoopJoin
	Orderby
	Insert
	Update
	Delete
)

// Plan is one node of the physical operator tree the optimizer hands to the
// execution engine. The tree is acyclic and owned top-down.
type Plan interface {
	OutputSchema() *schema.Schema
	GetChildAt(childIndex uint32) Plan
	GetChildren() []Plan
	GetType() PlanType
}

type AbstractPlanNode struct {
	outputSchema *schema.Schema
	children     []Plan
}

func (p *AbstractPlanNode) GetChildAt(childIndex uint32) Plan { return p.children[childIndex] }
func (p *AbstractPlanNode) GetChildren() []Plan               { return p.children }
func (p *AbstractPlanNode) OutputSchema() *schema.Schema      { return p.outputSchema }

// MutationOutputSchema is the one-column schema every mutating plan produces:
// a single tuple carrying the affected-row count.
func MutationOutputSchema() *schema.Schema {
	return schema.NewSchema([]*column.Column{
		column.NewColumn("rows_affected", types.Integer, false),
	})
}
