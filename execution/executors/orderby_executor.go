package executors

import (
	"sort"

	pair "github.com/notEpsilon/go-pair"

	"github.com/fathurwithyou/silberschatz/execution/expression"
	"github.com/fathurwithyou/silberschatz/execution/plans"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

// OrderbyExecutor materializes its child's whole output, sorts it and then
// streams the sorted rows. Each row is decorated with its evaluated key
// values up front so keys are computed once per row, not once per
// comparison. The sort is stable, keys after the first break ties and nulls
// order before every non-null value in both directions.
type OrderbyExecutor struct {
	context *ExecutorContext
	plan    *plans.OrderbyPlanNode
	child   Executor

	sorted []pair.Pair[[]types.Value, *tuple.Tuple]
	cursor int
}

func NewOrderbyExecutor(context *ExecutorContext, plan *plans.OrderbyPlanNode, child Executor) Executor {
	return &OrderbyExecutor{context: context, plan: plan, child: child}
}

func (e *OrderbyExecutor) Init() error {
	if err := e.child.Init(); err != nil {
		return err
	}
	keys := e.plan.GetSortKeys()
	for _, key := range keys {
		if err := expression.ValidateColumns(key.Expr, e.child.GetOutputSchema(), nil); err != nil {
			return err
		}
	}

	e.sorted = e.sorted[:0]
	e.cursor = 0
	for {
		t, done, err := e.child.Next()
		if err != nil {
			return err
		}
		if done {
			break
		}
		decorated := make([]types.Value, 0, len(keys))
		for _, key := range keys {
			decorated = append(decorated, key.Expr.Evaluate(t, e.child.GetOutputSchema()))
		}
		e.sorted = append(e.sorted, pair.Pair[[]types.Value, *tuple.Tuple]{First: decorated, Second: t})
	}

	sort.SliceStable(e.sorted, func(i, j int) bool {
		return e.keyLess(e.sorted[i].First, e.sorted[j].First)
	})
	return nil
}

// keyLess orders two decorated key slices per the plan's sort keys. A null
// key value sorts before every non-null value whatever the direction, so the
// direction flip only applies to two non-null values.
func (e *OrderbyExecutor) keyLess(a []types.Value, b []types.Value) bool {
	for k, key := range e.plan.GetSortKeys() {
		av, bv := a[k], b[k]
		if av.IsNull() || bv.IsNull() {
			if av.IsNull() && bv.IsNull() {
				continue
			}
			return av.IsNull()
		}
		cmp := av.CompareTo(bv)
		if cmp == 0 {
			continue
		}
		if key.Order == plans.DESC {
			return cmp > 0
		}
		return cmp < 0
	}
	return false
}

func (e *OrderbyExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.cursor >= len(e.sorted) {
		return nil, true, nil
	}
	t := e.sorted[e.cursor].Second
	e.cursor++
	return t, false, nil
}

func (e *OrderbyExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }
