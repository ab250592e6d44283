// Package sildb assembles the engine: storage, logging, locking and the
// per-connection query processors on top of them.
package sildb

import (
	"time"

	"github.com/fathurwithyou/silberschatz/recovery"
	"github.com/fathurwithyou/silberschatz/storage/access"
	"github.com/fathurwithyou/silberschatz/storage/disk"
)

// Instance owns the singletons every connection shares.
type Instance struct {
	diskManager        *disk.DiskManager
	logManager         *recovery.LogManager
	lockManager        *access.LockManager
	transactionManager *access.TransactionManager
}

func NewInstance(dbName string, lockTimeout time.Duration) *Instance {
	diskManager := disk.NewDiskManager(dbName)
	logManager := recovery.NewLogManager()
	lockManager := access.NewLockManager(lockTimeout)
	transactionManager := access.NewTransactionManager(lockManager, logManager)
	return &Instance{diskManager, logManager, lockManager, transactionManager}
}

func (si *Instance) GetDiskManager() *disk.DiskManager { return si.diskManager }

func (si *Instance) GetLogManager() *recovery.LogManager { return si.logManager }

func (si *Instance) GetLockManager() *access.LockManager { return si.lockManager }

func (si *Instance) GetTransactionManager() *access.TransactionManager {
	return si.transactionManager
}
