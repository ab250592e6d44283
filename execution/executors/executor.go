package executors

import (
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
)

// Done reports iterator exhaustion from Next.
type Done = bool

// Executor is the pull-based iterator contract every physical operator
// implements.
//
// Init opens the operator: it acquires locks, validates column references
// against child schemas and opens storage cursors. It must be called before
// Next, and calling it again restarts the operator from its beginning (the
// join operator relies on this to re-scan its inner child).
//
// Next produces the operator's next tuple. Errors propagate synchronously to
// the driver, which owns the abort-vs-passthrough decision.
type Executor interface {
	Init() error
	Next() (*tuple.Tuple, Done, error)
	GetOutputSchema() *schema.Schema
}
