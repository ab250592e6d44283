package sildb

import (
	"github.com/fathurwithyou/silberschatz/catalog"
	"github.com/fathurwithyou/silberschatz/common"
	"github.com/fathurwithyou/silberschatz/config"
	"github.com/fathurwithyou/silberschatz/planner"
	"github.com/fathurwithyou/silberschatz/processor"
	"github.com/fathurwithyou/silberschatz/recovery"
)

// Database is one running engine. Connections share its catalog, lock
// manager and transaction manager; each connection gets its own query
// processor so explicit transactions stay per-connection.
type Database struct {
	instance *Instance
	catalog  *catalog.Catalog
	planner  planner.Planner
}

func NewDatabase(cfg *config.Config) *Database {
	common.InitLogger(cfg.LogLevel)

	instance := NewInstance(cfg.DBName, cfg.LockTimeout())
	c := catalog.NewCatalog(instance.GetDiskManager(), instance.GetLogManager())
	instance.GetLogManager().ActivateLogging()

	return &Database{
		instance: instance,
		catalog:  c,
		planner:  planner.NewSimplePlanner(c),
	}
}

// NewConnection opens a statement executor bound to this database. One
// connection runs one statement at a time.
func (db *Database) NewConnection() *processor.QueryProcessor {
	return processor.NewQueryProcessor(db.catalog, db.instance.GetLockManager(),
		db.instance.GetTransactionManager(), db.planner)
}

func (db *Database) Catalog() *catalog.Catalog       { return db.catalog }
func (db *Database) Instance() *Instance             { return db.instance }
func (db *Database) LogManager() *recovery.LogManager { return db.instance.GetLogManager() }
