package processor

import (
	"github.com/fathurwithyou/silberschatz/dberr"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

// ExecutionResult is the envelope every statement returns, success or not.
// Reads carry rows and their column names; mutations carry the affected-row
// count; failures carry the error kind and a message naming the offending
// identifier where one exists.
type ExecutionResult struct {
	Success  bool
	RowCount int
	Columns  []string
	Rows     [][]types.Value
	Message  string
	ErrKind  dberr.Kind
	Err      error
}

func newMessageResult(message string) *ExecutionResult {
	return &ExecutionResult{Success: true, Message: message}
}

func newRowsResult(schema_ *schema.Schema, tuples []*tuple.Tuple) *ExecutionResult {
	columns := make([]string, 0, schema_.GetColumnCount())
	for i := uint32(0); i < schema_.GetColumnCount(); i++ {
		columns = append(columns, schema_.GetColumn(i).GetColumnName())
	}
	rows := make([][]types.Value, 0, len(tuples))
	for _, t := range tuples {
		rows = append(rows, t.Values())
	}
	return &ExecutionResult{Success: true, RowCount: len(rows), Columns: columns, Rows: rows}
}

func newCountResult(count int, message string) *ExecutionResult {
	return &ExecutionResult{Success: true, RowCount: count, Message: message}
}

func newErrorResult(err error) *ExecutionResult {
	return &ExecutionResult{
		Success: false,
		Message: err.Error(),
		ErrKind: dberr.KindOf(err),
		Err:     err,
	}
}
