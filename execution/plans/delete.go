package plans

// DeletePlanNode removes the rows its child produces.
type DeletePlanNode struct {
	*AbstractPlanNode
	tableOID uint32
}

func NewDeletePlanNode(child Plan, tableOID uint32) *DeletePlanNode {
	return &DeletePlanNode{&AbstractPlanNode{MutationOutputSchema(), []Plan{child}}, tableOID}
}

func (p *DeletePlanNode) GetTableOID() uint32 { return p.tableOID }
func (p *DeletePlanNode) GetType() PlanType   { return Delete }
