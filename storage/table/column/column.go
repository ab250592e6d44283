package column

import (
	"github.com/fathurwithyou/silberschatz/types"
)

// Column describes one attribute of a schema: its (possibly qualified) name,
// declared type and nullability.
type Column struct {
	columnName string
	columnType types.TypeID
	nullable   bool
}

func NewColumn(name string, columnType types.TypeID, nullable bool) *Column {
	return &Column{name, columnType, nullable}
}

func (c *Column) GetColumnName() string        { return c.columnName }
func (c *Column) GetColumnType() types.TypeID  { return c.columnType }
func (c *Column) IsNullable() bool             { return c.nullable }
func (c *Column) SetColumnName(name string)    { c.columnName = name }

// WithName returns a copy of the column under a different (e.g. qualified or
// aliased) name.
func (c *Column) WithName(name string) *Column {
	return &Column{name, c.columnType, c.nullable}
}
