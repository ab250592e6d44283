package executors

import (
	"github.com/fathurwithyou/silberschatz/execution/expression"
	"github.com/fathurwithyou/silberschatz/execution/plans"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
)

// SelectionExecutor forwards the child tuples its predicate evaluates to
// true. False and unknown both filter the row out.
type SelectionExecutor struct {
	context *ExecutorContext
	plan    *plans.SelectionPlanNode
	child   Executor
}

func NewSelectionExecutor(context *ExecutorContext, plan *plans.SelectionPlanNode, child Executor) Executor {
	return &SelectionExecutor{context, plan, child}
}

func (e *SelectionExecutor) Init() error {
	if err := e.child.Init(); err != nil {
		return err
	}
	return expression.ValidateColumns(e.plan.GetPredicate(), e.child.GetOutputSchema(), nil)
}

func (e *SelectionExecutor) Next() (*tuple.Tuple, Done, error) {
	for {
		t, done, err := e.child.Next()
		if err != nil || done {
			return nil, done, err
		}
		v := e.plan.GetPredicate().Evaluate(t, e.child.GetOutputSchema())
		if v.ToTriBool().IsTrue() {
			return t, false, nil
		}
	}
}

func (e *SelectionExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }
