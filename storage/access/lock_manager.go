package access

import (
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/golang-collections/collections/queue"
	"github.com/sasha-s/go-deadlock"
	"github.com/spaolacci/murmur3"
	"go.uber.org/zap"

	"github.com/fathurwithyou/silberschatz/common"
	"github.com/fathurwithyou/silberschatz/dberr"
	"github.com/fathurwithyou/silberschatz/types"
)

// LockMode is the mode of a table lock request.
type LockMode int32

const (
	SHARED LockMode = iota
	EXCLUSIVE
)

const numLockShards = 16

// lockWakeInterval bounds how long a waiter can oversleep its deadline: a
// broadcast can fire between the deadline check and cond.Wait and be missed,
// so the waker ticks instead of firing once.
const lockWakeInterval = 10 * time.Millisecond

type lockRequest struct {
	txnID types.TxnID
	mode  LockMode
}

type lockEntry struct {
	sharedHolders   mapset.Set[types.TxnID]
	exclusiveHolder types.TxnID
	// FIFO of *lockRequest; only the head is considered for granting.
	waiters *queue.Queue
}

func newLockEntry() *lockEntry {
	return &lockEntry{
		sharedHolders:   mapset.NewSet[types.TxnID](),
		exclusiveHolder: types.InvalidTxnID,
		waiters:         queue.New(),
	}
}

type lockShard struct {
	mutex   *deadlock.Mutex
	cond    *sync.Cond
	entries map[string]*lockEntry
}

// LockManager grants table-granularity shared/exclusive locks under strict
// two-phase locking: every lock a transaction acquires is held until
// ReleaseAll at the transaction's terminal state. A request that cannot be
// granted waits FIFO up to the configured timeout; a wait that would close a
// cycle in the waits-for graph fails immediately as a deadlock.
type LockManager struct {
	shards  [numLockShards]*lockShard
	timeout time.Duration

	graphMutex deadlock.Mutex
	waitsFor   map[types.TxnID]mapset.Set[types.TxnID]
}

func NewLockManager(timeout time.Duration) *LockManager {
	lm := &LockManager{
		timeout:  timeout,
		waitsFor: make(map[types.TxnID]mapset.Set[types.TxnID]),
	}
	for i := range lm.shards {
		mutex := new(deadlock.Mutex)
		lm.shards[i] = &lockShard{
			mutex:   mutex,
			cond:    sync.NewCond(mutex),
			entries: make(map[string]*lockEntry),
		}
	}
	return lm
}

func (lm *LockManager) shardFor(resource string) *lockShard {
	return lm.shards[murmur3.Sum32([]byte(resource))%numLockShards]
}

// LockShared acquires a shared lock on resource for txn, blocking until
// granted, timed out or found deadlocked.
func (lm *LockManager) LockShared(txn *Transaction, resource string) error {
	return lm.lock(txn, resource, SHARED)
}

// LockExclusive acquires an exclusive lock on resource for txn. A holder of
// the shared lock is upgraded once it is the only shared holder.
func (lm *LockManager) LockExclusive(txn *Transaction, resource string) error {
	return lm.lock(txn, resource, EXCLUSIVE)
}

func (lm *LockManager) lock(txn *Transaction, resource string, mode LockMode) error {
	shard := lm.shardFor(resource)
	shard.mutex.Lock()
	defer shard.mutex.Unlock()

	entry, ok := shard.entries[resource]
	if !ok {
		entry = newLockEntry()
		shard.entries[resource] = entry
	}

	txnID := txn.GetTransactionId()

	// Reentrant cases: an exclusive holder implicitly holds shared too, and a
	// repeated request in an already-held mode is a no-op.
	if entry.exclusiveHolder == txnID {
		return nil
	}
	if mode == SHARED && entry.sharedHolders.Contains(txnID) {
		return nil
	}

	req := &lockRequest{txnID, mode}
	entry.waiters.Enqueue(req)

	deadline := time.Now().Add(lm.timeout)
	stopWake := make(chan struct{})
	defer close(stopWake)
	go func() {
		ticker := time.NewTicker(lockWakeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stopWake:
				return
			case <-ticker.C:
				shard.cond.Broadcast()
			}
		}
	}()

	for {
		if entry.waiters.Peek() == req && lm.grantable(entry, req) {
			entry.waiters.Dequeue()
			lm.grant(txn, entry, resource, mode)
			lm.clearEdges(txnID)
			shard.cond.Broadcast()
			return nil
		}

		lm.updateEdges(txnID, entry)
		if lm.hasCycleFrom(txnID) {
			lm.abandonRequest(entry, req)
			lm.clearEdges(txnID)
			if common.EnableDebug {
				common.RuntimeStack()
			}
			common.Logger().Warn("deadlock detected on lock request",
				zap.Int32("txn", int32(txnID)), zap.String("resource", resource))
			return dberr.NewDeadlock(resource)
		}

		if !time.Now().Before(deadline) {
			lm.abandonRequest(entry, req)
			lm.clearEdges(txnID)
			common.Logger().Warn("lock wait timed out",
				zap.Int32("txn", int32(txnID)), zap.String("resource", resource))
			return dberr.NewLockTimeout(resource)
		}

		shard.cond.Wait()
	}
}

func (lm *LockManager) grantable(entry *lockEntry, req *lockRequest) bool {
	if entry.exclusiveHolder != types.InvalidTxnID {
		return false
	}
	if req.mode == SHARED {
		return true
	}
	// Exclusive: the only shared holder allowed is the requester itself
	// (lock upgrade).
	switch entry.sharedHolders.Cardinality() {
	case 0:
		return true
	case 1:
		return entry.sharedHolders.Contains(req.txnID)
	default:
		return false
	}
}

func (lm *LockManager) grant(txn *Transaction, entry *lockEntry, resource string, mode LockMode) {
	if mode == SHARED {
		entry.sharedHolders.Add(txn.GetTransactionId())
		txn.GetSharedLockSet().Add(resource)
		return
	}
	// Upgrade drops the shared hold in favor of the exclusive one.
	entry.sharedHolders.Remove(txn.GetTransactionId())
	txn.GetSharedLockSet().Remove(resource)
	entry.exclusiveHolder = txn.GetTransactionId()
	txn.GetExclusiveLockSet().Add(resource)
}

// abandonRequest removes req from the entry's FIFO, preserving the order of
// the remaining requests.
func (lm *LockManager) abandonRequest(entry *lockEntry, req *lockRequest) {
	remaining := make([]interface{}, 0, entry.waiters.Len())
	for entry.waiters.Len() > 0 {
		r := entry.waiters.Dequeue()
		if r != req {
			remaining = append(remaining, r)
		}
	}
	for _, r := range remaining {
		entry.waiters.Enqueue(r)
	}
}

// ReleaseAll releases every lock held by txn. Called exactly once, at the
// transaction's terminal transition (strict 2PL).
func (lm *LockManager) ReleaseAll(txn *Transaction) {
	txnID := txn.GetTransactionId()
	for _, resource := range txn.GetSharedLockSet().ToSlice() {
		shard := lm.shardFor(resource)
		shard.mutex.Lock()
		if entry, ok := shard.entries[resource]; ok {
			entry.sharedHolders.Remove(txnID)
		}
		shard.cond.Broadcast()
		shard.mutex.Unlock()
	}
	for _, resource := range txn.GetExclusiveLockSet().ToSlice() {
		shard := lm.shardFor(resource)
		shard.mutex.Lock()
		if entry, ok := shard.entries[resource]; ok && entry.exclusiveHolder == txnID {
			entry.exclusiveHolder = types.InvalidTxnID
		}
		shard.cond.Broadcast()
		shard.mutex.Unlock()
	}
	txn.GetSharedLockSet().Clear()
	txn.GetExclusiveLockSet().Clear()
	lm.clearEdges(txnID)
}

// Release drops txn's lock on a single resource. The DML handler uses this to
// give back locks a failed statement took inside an explicit transaction.
func (lm *LockManager) Release(txn *Transaction, resource string) {
	txnID := txn.GetTransactionId()
	shard := lm.shardFor(resource)
	shard.mutex.Lock()
	if entry, ok := shard.entries[resource]; ok {
		entry.sharedHolders.Remove(txnID)
		if entry.exclusiveHolder == txnID {
			entry.exclusiveHolder = types.InvalidTxnID
		}
	}
	shard.cond.Broadcast()
	shard.mutex.Unlock()
	txn.GetSharedLockSet().Remove(resource)
	txn.GetExclusiveLockSet().Remove(resource)
}

// Downgrade demotes txn's exclusive lock on resource back to shared. The DML
// handler uses this when a failed statement had upgraded a lock the
// transaction already held as shared before the statement started; fully
// releasing would drop the pre-statement hold and break strict 2PL.
func (lm *LockManager) Downgrade(txn *Transaction, resource string) {
	txnID := txn.GetTransactionId()
	shard := lm.shardFor(resource)
	shard.mutex.Lock()
	if entry, ok := shard.entries[resource]; ok && entry.exclusiveHolder == txnID {
		entry.exclusiveHolder = types.InvalidTxnID
		entry.sharedHolders.Add(txnID)
	}
	shard.cond.Broadcast()
	shard.mutex.Unlock()
	txn.GetExclusiveLockSet().Remove(resource)
	txn.GetSharedLockSet().Add(resource)
}

// updateEdges records that txnID currently waits for every holder of entry.
func (lm *LockManager) updateEdges(txnID types.TxnID, entry *lockEntry) {
	lm.graphMutex.Lock()
	defer lm.graphMutex.Unlock()
	edges := mapset.NewSet[types.TxnID]()
	for _, holder := range entry.sharedHolders.ToSlice() {
		if holder != txnID {
			edges.Add(holder)
		}
	}
	if entry.exclusiveHolder != types.InvalidTxnID && entry.exclusiveHolder != txnID {
		edges.Add(entry.exclusiveHolder)
	}
	lm.waitsFor[txnID] = edges
}

func (lm *LockManager) clearEdges(txnID types.TxnID) {
	lm.graphMutex.Lock()
	defer lm.graphMutex.Unlock()
	delete(lm.waitsFor, txnID)
}

// hasCycleFrom reports whether the waits-for graph has a cycle reachable from
// start, i.e. whether start's wait can never be satisfied.
func (lm *LockManager) hasCycleFrom(start types.TxnID) bool {
	lm.graphMutex.Lock()
	defer lm.graphMutex.Unlock()
	visited := mapset.NewThreadUnsafeSet[types.TxnID]()
	var visit func(id types.TxnID) bool
	visit = func(id types.TxnID) bool {
		edges, ok := lm.waitsFor[id]
		if !ok {
			return false
		}
		for _, next := range edges.ToSlice() {
			if next == start {
				return true
			}
			if visited.Contains(next) {
				continue
			}
			visited.Add(next)
			if visit(next) {
				return true
			}
		}
		return false
	}
	return visit(start)
}
