package schema

import (
	"math"
	"strings"

	"github.com/fathurwithyou/silberschatz/storage/table/column"
)

// Schema is the ordered column list an operator produces. It is immutable
// once the operator tree is opened.
type Schema struct {
	columns []*column.Column
}

func NewSchema(columns []*column.Column) *Schema {
	return &Schema{columns: columns}
}

func (s *Schema) GetColumn(colIndex uint32) *column.Column {
	return s.columns[colIndex]
}

func (s *Schema) GetColumnCount() uint32 {
	return uint32(len(s.columns))
}

func (s *Schema) GetColumns() []*column.Column {
	return s.columns
}

// GetColIndex resolves a column reference against the schema. An exact match
// wins; an unqualified name also matches a single qualified column whose
// suffix after the qualifier equals it ("name" matches "users.name"). Returns
// math.MaxUint32 when the name resolves to nothing.
func (s *Schema) GetColIndex(columnName string) uint32 {
	for i := uint32(0); i < s.GetColumnCount(); i++ {
		if s.columns[i].GetColumnName() == columnName {
			return i
		}
	}
	if !strings.Contains(columnName, ".") {
		for i := uint32(0); i < s.GetColumnCount(); i++ {
			name := s.columns[i].GetColumnName()
			if idx := strings.LastIndex(name, "."); idx >= 0 && name[idx+1:] == columnName {
				return i
			}
		}
	}
	return math.MaxUint32
}

func (s *Schema) IsHaveColumn(columnName string) bool {
	return s.GetColIndex(columnName) != math.MaxUint32
}

// Concat builds the output schema of a join: left columns followed by right
// columns. Name collisions are expected to be pre-resolved by qualification.
func Concat(left *Schema, right *Schema) *Schema {
	cols := make([]*column.Column, 0, left.GetColumnCount()+right.GetColumnCount())
	cols = append(cols, left.columns...)
	cols = append(cols, right.columns...)
	return NewSchema(cols)
}
