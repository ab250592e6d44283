package executors

import (
	"github.com/fathurwithyou/silberschatz/common"
	"github.com/fathurwithyou/silberschatz/execution/plans"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
)

// ExecutionEngine builds the executor tree for a plan and drives it to
// completion.
type ExecutionEngine struct {
}

// Execute opens the plan's executor tree and pulls it until exhaustion,
// returning every produced tuple. On error the partial result is discarded
// and the error propagates to the caller, which decides the transaction's
// fate.
func (e *ExecutionEngine) Execute(plan plans.Plan, context *ExecutorContext) ([]*tuple.Tuple, error) {
	executor := e.CreateExecutor(plan, context)

	if err := executor.Init(); err != nil {
		return nil, err
	}

	tuples := make([]*tuple.Tuple, 0)
	for {
		t, done, err := executor.Next()
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
		if t != nil {
			tuples = append(tuples, t)
		}
	}
	return tuples, nil
}

// CreateExecutor maps a plan node onto its executor, recursively building the
// children first.
func (e *ExecutionEngine) CreateExecutor(plan plans.Plan, context *ExecutorContext) Executor {
	switch p := plan.(type) {
	case *plans.SeqScanPlanNode:
		return NewSeqScanExecutor(context, p)
	case *plans.SelectionPlanNode:
		return NewSelectionExecutor(context, p, e.CreateExecutor(p.GetChildAt(0), context))
	case *plans.ProjectionPlanNode:
		return NewProjectionExecutor(context, p, e.CreateExecutor(p.GetChildAt(0), context))
	case *plans.NestedLoopJoinPlanNode:
		return NewNestedLoopJoinExecutor(context, p,
			e.CreateExecutor(p.GetLeftPlan(), context), e.CreateExecutor(p.GetRightPlan(), context))
	case *plans.OrderbyPlanNode:
		return NewOrderbyExecutor(context, p, e.CreateExecutor(p.GetChildAt(0), context))
	case *plans.InsertPlanNode:
		return NewInsertExecutor(context, p)
	case *plans.UpdatePlanNode:
		return NewUpdateExecutor(context, p, e.CreateExecutor(p.GetChildAt(0), context))
	case *plans.DeletePlanNode:
		return NewDeleteExecutor(context, p, e.CreateExecutor(p.GetChildAt(0), context))
	default:
		common.SH_Assert(false, "unknown plan node type")
		return nil
	}
}
