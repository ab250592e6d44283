package executors

import (
	"github.com/fathurwithyou/silberschatz/execution/expression"
	"github.com/fathurwithyou/silberschatz/execution/plans"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

// NestedLoopJoinExecutor joins its children by rescanning the right child for
// every left tuple. A nil ON predicate matches every pair (cross product); a
// predicate evaluating to unknown does not match.
//
// Output order: for each left tuple in left order, its matches in right
// order. A left outer (or full) join emits a null-padded row for a left tuple
// with no match, in that tuple's position. A right outer (or full) join
// appends null-padded rows for the never-matched right tuples after all left
// tuples, in right order.
type NestedLoopJoinExecutor struct {
	context *ExecutorContext
	plan    *plans.NestedLoopJoinPlanNode
	left    Executor
	right   Executor

	leftTuple   *tuple.Tuple
	leftMatched bool

	// rightMatched tracks, by right-side ordinal, which right tuples matched
	// at least one left tuple. It grows as the first rescan discovers rows.
	rightMatched []bool
	rightOrdinal int

	// tailPhase is the final pass a right/full outer join makes over the right
	// child to emit its never-matched tuples.
	tailPhase bool
}

func NewNestedLoopJoinExecutor(context *ExecutorContext, plan *plans.NestedLoopJoinPlanNode,
	left Executor, right Executor) Executor {
	return &NestedLoopJoinExecutor{context: context, plan: plan, left: left, right: right}
}

func (e *NestedLoopJoinExecutor) Init() error {
	if err := e.left.Init(); err != nil {
		return err
	}
	if err := e.right.Init(); err != nil {
		return err
	}
	if err := expression.ValidateColumns(e.plan.OnPredicate(),
		e.left.GetOutputSchema(), e.right.GetOutputSchema()); err != nil {
		return err
	}
	e.leftTuple = nil
	e.leftMatched = false
	e.rightMatched = e.rightMatched[:0]
	e.rightOrdinal = 0
	e.tailPhase = false
	return nil
}

func (e *NestedLoopJoinExecutor) Next() (*tuple.Tuple, Done, error) {
	if e.tailPhase {
		return e.nextUnmatchedRight()
	}

	for {
		if e.leftTuple == nil {
			lt, done, err := e.left.Next()
			if err != nil {
				return nil, true, err
			}
			if done {
				if e.joinsRight() {
					if err := e.right.Init(); err != nil {
						return nil, true, err
					}
					e.tailPhase = true
					e.rightOrdinal = 0
					return e.nextUnmatchedRight()
				}
				return nil, true, nil
			}
			e.leftTuple = lt
			e.leftMatched = false
			e.rightOrdinal = 0
			if err := e.right.Init(); err != nil {
				return nil, true, err
			}
		}

		rt, done, err := e.right.Next()
		if err != nil {
			return nil, true, err
		}
		if done {
			lt := e.leftTuple
			matched := e.leftMatched
			e.leftTuple = nil
			if !matched && e.joinsLeft() {
				return e.padRight(lt), false, nil
			}
			continue
		}

		ordinal := e.rightOrdinal
		e.rightOrdinal++
		for len(e.rightMatched) <= ordinal {
			e.rightMatched = append(e.rightMatched, false)
		}

		if e.matches(e.leftTuple, rt) {
			e.leftMatched = true
			e.rightMatched[ordinal] = true
			return e.combine(e.leftTuple, rt), false, nil
		}
	}
}

// nextUnmatchedRight walks the rescanned right child and emits the tuples
// whose ordinals never matched, padded with nulls on the left.
func (e *NestedLoopJoinExecutor) nextUnmatchedRight() (*tuple.Tuple, Done, error) {
	for {
		rt, done, err := e.right.Next()
		if err != nil {
			return nil, true, err
		}
		if done {
			return nil, true, nil
		}
		ordinal := e.rightOrdinal
		e.rightOrdinal++
		if ordinal < len(e.rightMatched) && e.rightMatched[ordinal] {
			continue
		}
		return e.padLeft(rt), false, nil
	}
}

func (e *NestedLoopJoinExecutor) matches(lt *tuple.Tuple, rt *tuple.Tuple) bool {
	pred := e.plan.OnPredicate()
	if pred == nil {
		return true
	}
	v := pred.EvaluateJoin(lt, e.left.GetOutputSchema(), rt, e.right.GetOutputSchema())
	return v.ToTriBool().IsTrue()
}

func (e *NestedLoopJoinExecutor) combine(lt *tuple.Tuple, rt *tuple.Tuple) *tuple.Tuple {
	values := make([]types.Value, 0, lt.Size()+rt.Size())
	values = append(values, lt.Values()...)
	values = append(values, rt.Values()...)
	return tuple.NewTupleFromSchema(values, e.GetOutputSchema())
}

// padRight joins lt with an all-null right side.
func (e *NestedLoopJoinExecutor) padRight(lt *tuple.Tuple) *tuple.Tuple {
	values := make([]types.Value, 0, e.GetOutputSchema().GetColumnCount())
	values = append(values, lt.Values()...)
	values = append(values, e.nullsFor(e.right.GetOutputSchema())...)
	return tuple.NewTupleFromSchema(values, e.GetOutputSchema())
}

// padLeft joins an all-null left side with rt.
func (e *NestedLoopJoinExecutor) padLeft(rt *tuple.Tuple) *tuple.Tuple {
	values := make([]types.Value, 0, e.GetOutputSchema().GetColumnCount())
	values = append(values, e.nullsFor(e.left.GetOutputSchema())...)
	values = append(values, rt.Values()...)
	return tuple.NewTupleFromSchema(values, e.GetOutputSchema())
}

func (e *NestedLoopJoinExecutor) nullsFor(schema_ *schema.Schema) []types.Value {
	nulls := make([]types.Value, 0, schema_.GetColumnCount())
	for i := uint32(0); i < schema_.GetColumnCount(); i++ {
		nulls = append(nulls, types.NewNull(schema_.GetColumn(i).GetColumnType()))
	}
	return nulls
}

func (e *NestedLoopJoinExecutor) joinsLeft() bool {
	jt := e.plan.GetJoinType()
	return jt == plans.LeftOuterJoin || jt == plans.FullOuterJoin
}

func (e *NestedLoopJoinExecutor) joinsRight() bool {
	jt := e.plan.GetJoinType()
	return jt == plans.RightOuterJoin || jt == plans.FullOuterJoin
}

func (e *NestedLoopJoinExecutor) GetOutputSchema() *schema.Schema { return e.plan.OutputSchema() }
