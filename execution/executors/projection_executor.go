package executors

import (
	"github.com/fathurwithyou/silberschatz/execution/expression"
	"github.com/fathurwithyou/silberschatz/execution/plans"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

// ProjectionExecutor rebuilds each child tuple into the plan's output shape,
// one expression per output column.
type ProjectionExecutor struct {
	context *ExecutorContext
	plan    *plans.ProjectionPlanNode
	child   Executor
}

func NewProjectionExecutor(context *ExecutorContext, plan *plans.ProjectionPlanNode, child Executor) Executor {
	return &ProjectionExecutor{context, plan, child}
}

func (e *ProjectionExecutor) Init() error {
	if err := e.child.Init(); err != nil {
		return err
	}
	for _, expr := range e.plan.GetExprs() {
		if err := expression.ValidateColumns(expr, e.child.GetOutputSchema(), nil); err != nil {
			return err
		}
	}
	return nil
}

func (e *ProjectionExecutor) Next() (*tuple.Tuple, Done, error) {
	t, done, err := e.child.Next()
	if err != nil || done {
		return nil, done, err
	}
	exprs := e.plan.GetExprs()
	values := make([]types.Value, 0, len(exprs))
	for _, expr := range exprs {
		values = append(values, expr.Evaluate(t, e.child.GetOutputSchema()))
	}
	return tuple.NewTupleFromSchema(values, e.GetOutputSchema()), false, nil
}

func (e *ProjectionExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }
