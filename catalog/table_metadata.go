package catalog

import (
	"github.com/fathurwithyou/silberschatz/storage/access"
	"github.com/fathurwithyou/silberschatz/storage/index"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
)

// TableMetadata ties a table's name and schema to its heap and, when a
// primary key is declared, its unique index.
type TableMetadata struct {
	schema_ *schema.Schema
	name    string
	table   *access.TableHeap
	oid     uint32

	// pkColumn is the primary-key column index, or -1 when the table has no
	// primary key.
	pkColumn int32
	pkIndex  *index.PrimaryKeyIndex
}

func NewTableMetadata(schema_ *schema.Schema, name string, table *access.TableHeap,
	oid uint32, pkColumn int32) *TableMetadata {
	tm := &TableMetadata{
		schema_:  schema_,
		name:     name,
		table:    table,
		oid:      oid,
		pkColumn: pkColumn,
	}
	if pkColumn >= 0 {
		tm.pkIndex = index.NewPrimaryKeyIndex(name)
	}
	return tm
}

func (t *TableMetadata) Schema() *schema.Schema          { return t.schema_ }
func (t *TableMetadata) Name() string                    { return t.name }
func (t *TableMetadata) Table() *access.TableHeap        { return t.table }
func (t *TableMetadata) OID() uint32                     { return t.oid }
func (t *TableMetadata) PrimaryKeyColumn() int32         { return t.pkColumn }
func (t *TableMetadata) PrimaryKeyIndex() *index.PrimaryKeyIndex { return t.pkIndex }
