package catalog

import (
	"github.com/sasha-s/go-deadlock"

	"github.com/fathurwithyou/silberschatz/dberr"
	"github.com/fathurwithyou/silberschatz/recovery"
	"github.com/fathurwithyou/silberschatz/storage/access"
	"github.com/fathurwithyou/silberschatz/storage/disk"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
)

// Catalog is the schema registry: it owns every table's metadata and answers
// lookups by name or OID. Unknown names surface as UnknownTableError.
type Catalog struct {
	diskManager *disk.DiskManager
	logManager  *recovery.LogManager

	mutex      deadlock.RWMutex
	tables     map[string]*TableMetadata
	tablesByOID map[uint32]*TableMetadata
	nextOID    uint32
}

func NewCatalog(diskManager *disk.DiskManager, logManager *recovery.LogManager) *Catalog {
	return &Catalog{
		diskManager: diskManager,
		logManager:  logManager,
		tables:      make(map[string]*TableMetadata),
		tablesByOID: make(map[uint32]*TableMetadata),
	}
}

// CreateTable registers a new table and its heap. pkColumn designates the
// primary-key column, -1 for none.
func (c *Catalog) CreateTable(name string, schema_ *schema.Schema, pkColumn int32,
	txn *access.Transaction) (*TableMetadata, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, ok := c.tables[name]; ok {
		return nil, dberr.NewConstraintViolation(name, "table already exists")
	}

	heap, err := access.NewTableHeap(c.diskManager, c.logManager, name, schema_)
	if err != nil {
		return nil, err
	}
	c.nextOID++
	meta := NewTableMetadata(schema_, name, heap, c.nextOID, pkColumn)
	c.tables[name] = meta
	c.tablesByOID[meta.OID()] = meta
	return meta, nil
}

func (c *Catalog) DropTable(name string, txn *access.Transaction) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	meta, ok := c.tables[name]
	if !ok {
		return dberr.NewUnknownTable(name)
	}
	delete(c.tables, name)
	delete(c.tablesByOID, meta.OID())
	c.diskManager.DropSegment(name)
	return nil
}

func (c *Catalog) GetTableByName(name string) (*TableMetadata, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if meta, ok := c.tables[name]; ok {
		return meta, nil
	}
	return nil, dberr.NewUnknownTable(name)
}

func (c *Catalog) GetTableByOID(oid uint32) (*TableMetadata, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	if meta, ok := c.tablesByOID[oid]; ok {
		return meta, nil
	}
	return nil, dberr.NewUnknownTable("")
}
