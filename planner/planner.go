// Package planner turns validated statements into operator trees. It plays
// the optimizer's role in the engine without doing any cost-based work: plan
// shapes are fixed per statement type.
package planner

import (
	"github.com/fathurwithyou/silberschatz/execution/plans"
	"github.com/fathurwithyou/silberschatz/parser"
	"github.com/fathurwithyou/silberschatz/storage/access"
)

// Planner is the optimizer collaborator the DML handler calls. The engine
// treats the returned plan as opaque apart from its node types.
type Planner interface {
	MakePlan(stmt *parser.Statement, txn *access.Transaction) (plans.Plan, error)
}
