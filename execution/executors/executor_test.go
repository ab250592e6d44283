package executors_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathurwithyou/silberschatz/catalog"
	"github.com/fathurwithyou/silberschatz/dberr"
	"github.com/fathurwithyou/silberschatz/execution/executors"
	"github.com/fathurwithyou/silberschatz/execution/expression"
	"github.com/fathurwithyou/silberschatz/execution/plans"
	"github.com/fathurwithyou/silberschatz/recovery"
	"github.com/fathurwithyou/silberschatz/storage/access"
	"github.com/fathurwithyou/silberschatz/storage/disk"
	"github.com/fathurwithyou/silberschatz/storage/table/column"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

type testEnv struct {
	catalog     *catalog.Catalog
	lockManager *access.LockManager
	txnManager  *access.TransactionManager
	engine      *executors.ExecutionEngine
}

func newTestEnv() *testEnv {
	logManager := recovery.NewLogManager()
	lockManager := access.NewLockManager(time.Second)
	return &testEnv{
		catalog:     catalog.NewCatalog(disk.NewDiskManager("test"), logManager),
		lockManager: lockManager,
		txnManager:  access.NewTransactionManager(lockManager, logManager),
		engine:      &executors.ExecutionEngine{},
	}
}

func (e *testEnv) context(txn *access.Transaction) *executors.ExecutorContext {
	return executors.NewExecutorContext(e.catalog, e.lockManager, txn)
}

func (e *testEnv) run(t *testing.T, plan plans.Plan, txn *access.Transaction) []*tuple.Tuple {
	tuples, err := e.engine.Execute(plan, e.context(txn))
	require.NoError(t, err)
	return tuples
}

// users(id integer primary key, name varchar, age integer nullable)
func (e *testEnv) createUsers(t *testing.T, txn *access.Transaction) *catalog.TableMetadata {
	schema_ := schema.NewSchema([]*column.Column{
		column.NewColumn("id", types.Integer, false),
		column.NewColumn("name", types.Varchar, false),
		column.NewColumn("age", types.Integer, true),
	})
	meta, err := e.catalog.CreateTable("users", schema_, 0, txn)
	require.NoError(t, err)
	return meta
}

func (e *testEnv) seedUsers(t *testing.T, meta *catalog.TableMetadata, txn *access.Transaction) {
	plan := plans.NewInsertPlanNode([][]types.Value{
		{types.NewInteger(1), types.NewVarchar("alice"), types.NewInteger(34)},
		{types.NewInteger(2), types.NewVarchar("bob"), types.NewNull(types.Integer)},
		{types.NewInteger(3), types.NewVarchar("carol"), types.NewInteger(27)},
	}, meta.OID())
	tuples := e.run(t, plan, txn)
	require.Len(t, tuples, 1)
	require.Equal(t, int32(3), tuples[0].GetValue(0).ToInteger())
}

// orders(order_id integer primary key, user_id integer, amount integer)
func (e *testEnv) createOrders(t *testing.T, txn *access.Transaction) *catalog.TableMetadata {
	schema_ := schema.NewSchema([]*column.Column{
		column.NewColumn("order_id", types.Integer, false),
		column.NewColumn("user_id", types.Integer, false),
		column.NewColumn("amount", types.Integer, false),
	})
	meta, err := e.catalog.CreateTable("orders", schema_, 0, txn)
	require.NoError(t, err)

	plan := plans.NewInsertPlanNode([][]types.Value{
		{types.NewInteger(10), types.NewInteger(1), types.NewInteger(100)},
		{types.NewInteger(11), types.NewInteger(1), types.NewInteger(50)},
		{types.NewInteger(12), types.NewInteger(3), types.NewInteger(75)},
		{types.NewInteger(13), types.NewInteger(9), types.NewInteger(20)},
	}, meta.OID())
	e.run(t, plan, txn)
	return meta
}

func scanPlan(meta *catalog.TableMetadata) *plans.SeqScanPlanNode {
	return plans.NewSeqScanPlanNode(meta.Schema(), meta.OID())
}

func TestInsertAndSeqScan(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	meta := env.createUsers(t, txn)
	env.seedUsers(t, meta, txn)

	tuples := env.run(t, scanPlan(meta), txn)
	require.Len(t, tuples, 3)
	assert.Equal(t, "alice", tuples[0].GetValue(1).ToVarchar())
	assert.True(t, tuples[1].GetValue(2).IsNull())
	assert.Equal(t, "carol", tuples[2].GetValue(1).ToVarchar())
}

func TestInsertValidation(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	meta := env.createUsers(t, txn)

	// Wrong arity.
	_, err := env.engine.Execute(plans.NewInsertPlanNode([][]types.Value{
		{types.NewInteger(1), types.NewVarchar("alice")},
	}, meta.OID()), env.context(txn))
	assert.True(t, dberr.IsKind(err, dberr.ConstraintViolation))

	// Type mismatch.
	_, err = env.engine.Execute(plans.NewInsertPlanNode([][]types.Value{
		{types.NewVarchar("one"), types.NewVarchar("alice"), types.NewInteger(1)},
	}, meta.OID()), env.context(txn))
	assert.True(t, dberr.IsKind(err, dberr.ConstraintViolation))

	// Null into the primary-key column.
	_, err = env.engine.Execute(plans.NewInsertPlanNode([][]types.Value{
		{types.NewNull(types.Integer), types.NewVarchar("alice"), types.NewInteger(1)},
	}, meta.OID()), env.context(txn))
	assert.True(t, dberr.IsKind(err, dberr.ConstraintViolation))

	// Nothing was written by the failed statements.
	assert.Empty(t, env.run(t, scanPlan(meta), txn))
}

func TestInsertDuplicatePrimaryKey(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	meta := env.createUsers(t, txn)
	env.seedUsers(t, meta, txn)

	_, err := env.engine.Execute(plans.NewInsertPlanNode([][]types.Value{
		{types.NewInteger(2), types.NewVarchar("mallory"), types.NewInteger(99)},
	}, meta.OID()), env.context(txn))
	require.Error(t, err)
	assert.True(t, dberr.IsKind(err, dberr.ConstraintViolation))
	assert.Len(t, env.run(t, scanPlan(meta), txn), 3)
}

func TestSelectionExcludesUnknown(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	meta := env.createUsers(t, txn)
	env.seedUsers(t, meta, txn)

	// age > 30 is unknown for bob's null age, so bob is filtered out with
	// carol, not returned.
	pred := expression.NewComparison(
		expression.NewColumnValue(0, "age"),
		expression.NewConstantValue(types.NewInteger(30)), expression.GreaterThan)
	tuples := env.run(t, plans.NewSelectionPlanNode(scanPlan(meta), pred), txn)

	require.Len(t, tuples, 1)
	assert.Equal(t, "alice", tuples[0].GetValue(1).ToVarchar())
}

func TestProjection(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	meta := env.createUsers(t, txn)
	env.seedUsers(t, meta, txn)

	outSchema := schema.NewSchema([]*column.Column{
		column.NewColumn("name", types.Varchar, false),
		column.NewColumn("id", types.Integer, false),
	})
	plan := plans.NewProjectionPlanNode(scanPlan(meta), outSchema, []expression.Expression{
		expression.NewColumnValue(0, "name"),
		expression.NewColumnValue(0, "id"),
	})
	tuples := env.run(t, plan, txn)

	require.Len(t, tuples, 3)
	assert.Equal(t, "alice", tuples[0].GetValue(0).ToVarchar())
	assert.Equal(t, int32(1), tuples[0].GetValue(1).ToInteger())
}

func TestProjectionUnknownColumnFailsBeforeRows(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	meta := env.createUsers(t, txn)
	env.seedUsers(t, meta, txn)

	outSchema := schema.NewSchema([]*column.Column{column.NewColumn("salary", types.Integer, true)})
	plan := plans.NewProjectionPlanNode(scanPlan(meta), outSchema, []expression.Expression{
		expression.NewColumnValue(0, "salary"),
	})
	tuples, err := env.engine.Execute(plan, env.context(txn))
	require.Error(t, err)
	assert.True(t, dberr.IsKind(err, dberr.UnknownColumn))
	assert.Nil(t, tuples)
}

func joinOn() expression.Expression {
	return expression.NewComparison(
		expression.NewColumnValue(0, "id"),
		expression.NewColumnValue(1, "user_id"), expression.Equal)
}

func TestInnerJoin(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	users := env.createUsers(t, txn)
	env.seedUsers(t, users, txn)
	orders := env.createOrders(t, txn)

	plan := plans.NewNestedLoopJoinPlanNode(scanPlan(users), scanPlan(orders), plans.InnerJoin, joinOn())
	tuples := env.run(t, plan, txn)

	require.Len(t, tuples, 3)
	// Left order outside, right order inside.
	assert.Equal(t, int32(10), tuples[0].GetValue(3).ToInteger())
	assert.Equal(t, int32(11), tuples[1].GetValue(3).ToInteger())
	assert.Equal(t, int32(12), tuples[2].GetValue(3).ToInteger())
	assert.Equal(t, "carol", tuples[2].GetValue(1).ToVarchar())
}

func TestLeftOuterJoin(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	users := env.createUsers(t, txn)
	env.seedUsers(t, users, txn)
	orders := env.createOrders(t, txn)

	plan := plans.NewNestedLoopJoinPlanNode(scanPlan(users), scanPlan(orders), plans.LeftOuterJoin, joinOn())
	tuples := env.run(t, plan, txn)

	require.Len(t, tuples, 4)
	// bob has no orders: his row is padded with nulls in his position.
	assert.Equal(t, "bob", tuples[2].GetValue(1).ToVarchar())
	assert.True(t, tuples[2].GetValue(3).IsNull())
	assert.True(t, tuples[2].GetValue(5).IsNull())
}

func TestRightOuterJoin(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	users := env.createUsers(t, txn)
	env.seedUsers(t, users, txn)
	orders := env.createOrders(t, txn)

	plan := plans.NewNestedLoopJoinPlanNode(scanPlan(users), scanPlan(orders), plans.RightOuterJoin, joinOn())
	tuples := env.run(t, plan, txn)

	require.Len(t, tuples, 4)
	// The orphan order (user 9) comes after all matched rows, left side null.
	last := tuples[3]
	assert.True(t, last.GetValue(0).IsNull())
	assert.True(t, last.GetValue(1).IsNull())
	assert.Equal(t, int32(13), last.GetValue(3).ToInteger())
}

func TestFullOuterJoin(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	users := env.createUsers(t, txn)
	env.seedUsers(t, users, txn)
	orders := env.createOrders(t, txn)

	inner := env.run(t, plans.NewNestedLoopJoinPlanNode(
		scanPlan(users), scanPlan(orders), plans.InnerJoin, joinOn()), txn)
	left := env.run(t, plans.NewNestedLoopJoinPlanNode(
		scanPlan(users), scanPlan(orders), plans.LeftOuterJoin, joinOn()), txn)
	full := env.run(t, plans.NewNestedLoopJoinPlanNode(
		scanPlan(users), scanPlan(orders), plans.FullOuterJoin, joinOn()), txn)

	assert.LessOrEqual(t, len(inner), len(left))
	assert.LessOrEqual(t, len(left), len(full))
	require.Len(t, full, 5)

	// Unmatched left row in position, unmatched right row at the end.
	assert.Equal(t, "bob", full[2].GetValue(1).ToVarchar())
	assert.True(t, full[2].GetValue(3).IsNull())
	assert.True(t, full[4].GetValue(0).IsNull())
	assert.Equal(t, int32(13), full[4].GetValue(3).ToInteger())
}

func TestCrossJoinWithNilPredicate(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	users := env.createUsers(t, txn)
	env.seedUsers(t, users, txn)
	orders := env.createOrders(t, txn)

	plan := plans.NewNestedLoopJoinPlanNode(scanPlan(users), scanPlan(orders), plans.InnerJoin, nil)
	tuples := env.run(t, plan, txn)
	assert.Len(t, tuples, 12)
}

func orderbyAge(child plans.Plan, order plans.OrderbyType) *plans.OrderbyPlanNode {
	return plans.NewOrderbyPlanNode(child, []plans.SortKey{
		{Expr: expression.NewColumnValue(0, "age"), Order: order},
	})
}

func TestOrderbyAscWithNullsFirst(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	meta := env.createUsers(t, txn)
	env.seedUsers(t, meta, txn)

	tuples := env.run(t, orderbyAge(scanPlan(meta), plans.ASC), txn)
	require.Len(t, tuples, 3)
	assert.Equal(t, "bob", tuples[0].GetValue(1).ToVarchar())
	assert.Equal(t, "carol", tuples[1].GetValue(1).ToVarchar())
	assert.Equal(t, "alice", tuples[2].GetValue(1).ToVarchar())
}

func TestOrderbyDescKeepsNullsFirst(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	meta := env.createUsers(t, txn)
	env.seedUsers(t, meta, txn)

	tuples := env.run(t, orderbyAge(scanPlan(meta), plans.DESC), txn)
	require.Len(t, tuples, 3)
	assert.Equal(t, "bob", tuples[0].GetValue(1).ToVarchar())
	assert.Equal(t, "alice", tuples[1].GetValue(1).ToVarchar())
	assert.Equal(t, "carol", tuples[2].GetValue(1).ToVarchar())
}

func TestOrderbyIsStableAndIdempotent(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	meta := env.createUsers(t, txn)
	env.seedUsers(t, meta, txn)

	once := env.run(t, orderbyAge(scanPlan(meta), plans.ASC), txn)
	twice := env.run(t, orderbyAge(orderbyAge(scanPlan(meta), plans.ASC), plans.ASC), txn)

	require.Equal(t, len(once), len(twice))
	for i := range once {
		assert.Equal(t, once[i].GetValue(0).ToInteger(), twice[i].GetValue(0).ToInteger())
	}
}

func TestUpdate(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	meta := env.createUsers(t, txn)
	env.seedUsers(t, meta, txn)

	pred := expression.NewComparison(
		expression.NewColumnValue(0, "name"),
		expression.NewConstantValue(types.NewVarchar("carol")), expression.Equal)
	child := plans.NewSelectionPlanNode(scanPlan(meta), pred)
	plan := plans.NewUpdatePlanNode(child, []plans.Assignment{
		{ColName: "age", Expr: expression.NewConstantValue(types.NewInteger(28))},
	}, meta.OID())

	tuples := env.run(t, plan, txn)
	require.Len(t, tuples, 1)
	assert.Equal(t, int32(1), tuples[0].GetValue(0).ToInteger())

	rows := env.run(t, scanPlan(meta), txn)
	assert.Equal(t, int32(28), rows[2].GetValue(2).ToInteger())
}

func TestUpdatePrimaryKeyToDuplicateFails(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	meta := env.createUsers(t, txn)
	env.seedUsers(t, meta, txn)

	pred := expression.NewComparison(
		expression.NewColumnValue(0, "id"),
		expression.NewConstantValue(types.NewInteger(3)), expression.Equal)
	child := plans.NewSelectionPlanNode(scanPlan(meta), pred)
	plan := plans.NewUpdatePlanNode(child, []plans.Assignment{
		{ColName: "id", Expr: expression.NewConstantValue(types.NewInteger(1))},
	}, meta.OID())

	_, err := env.engine.Execute(plan, env.context(txn))
	require.Error(t, err)
	assert.True(t, dberr.IsKind(err, dberr.ConstraintViolation))
}

func TestDelete(t *testing.T) {
	env := newTestEnv()
	txn := env.txnManager.Begin(false)
	meta := env.createUsers(t, txn)
	env.seedUsers(t, meta, txn)

	pred := expression.NewComparison(
		expression.NewColumnValue(0, "age"),
		expression.NewConstantValue(types.NewInteger(30)), expression.GreaterThan)
	plan := plans.NewDeletePlanNode(plans.NewSelectionPlanNode(scanPlan(meta), pred), meta.OID())

	tuples := env.run(t, plan, txn)
	require.Len(t, tuples, 1)
	assert.Equal(t, int32(1), tuples[0].GetValue(0).ToInteger())

	rows := env.run(t, scanPlan(meta), txn)
	require.Len(t, rows, 2)
	assert.Equal(t, "bob", rows[0].GetValue(1).ToVarchar())
}

func TestAbortRestoresPrimaryKeyIndex(t *testing.T) {
	env := newTestEnv()

	setup := env.txnManager.Begin(false)
	meta := env.createUsers(t, setup)
	env.seedUsers(t, meta, setup)
	env.txnManager.Commit(setup)

	txn := env.txnManager.Begin(false)
	plan := plans.NewDeletePlanNode(scanPlan(meta), meta.OID())
	env.run(t, plan, txn)
	env.txnManager.Abort(txn)

	// After the abort the old keys are taken again.
	txn2 := env.txnManager.Begin(false)
	_, err := env.engine.Execute(plans.NewInsertPlanNode([][]types.Value{
		{types.NewInteger(1), types.NewVarchar("dup"), types.NewInteger(1)},
	}, meta.OID()), env.context(txn2))
	require.Error(t, err)
	assert.True(t, dberr.IsKind(err, dberr.ConstraintViolation))
	assert.Len(t, env.run(t, scanPlan(meta), txn2), 3)
}
