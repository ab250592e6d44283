package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fathurwithyou/silberschatz/dberr"
	"github.com/fathurwithyou/silberschatz/storage/table/column"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

func usersSchema() *schema.Schema {
	return schema.NewSchema([]*column.Column{
		column.NewColumn("id", types.Integer, false),
		column.NewColumn("name", types.Varchar, false),
		column.NewColumn("age", types.Integer, true),
	})
}

func userRow(id int32, name string, age types.Value) *tuple.Tuple {
	return tuple.NewTupleFromSchema(
		[]types.Value{types.NewInteger(id), types.NewVarchar(name), age}, usersSchema())
}

func TestComparisonOnColumn(t *testing.T) {
	schema_ := usersSchema()
	row := userRow(1, "alice", types.NewInteger(34))

	gt := NewComparison(NewColumnValue(0, "age"), NewConstantValue(types.NewInteger(30)), GreaterThan)
	assert.Equal(t, types.True, gt.Evaluate(row, schema_).ToTriBool())

	eq := NewComparison(NewColumnValue(0, "name"), NewConstantValue(types.NewVarchar("bob")), Equal)
	assert.Equal(t, types.False, eq.Evaluate(row, schema_).ToTriBool())
}

func TestComparisonWithNullIsUnknown(t *testing.T) {
	schema_ := usersSchema()
	row := userRow(2, "bob", types.NewNull(types.Integer))

	for _, cmpType := range []ComparisonType{Equal, NotEqual, GreaterThan, LessThanOrEqual} {
		cmp := NewComparison(NewColumnValue(0, "age"), NewConstantValue(types.NewInteger(30)), cmpType)
		result := cmp.Evaluate(row, schema_)
		assert.True(t, result.IsNull())
		assert.Equal(t, types.Unknown, result.ToTriBool())
	}
}

func TestLogicalOpKleene(t *testing.T) {
	schema_ := usersSchema()
	row := userRow(2, "bob", types.NewNull(types.Integer))

	ageOver30 := NewComparison(NewColumnValue(0, "age"), NewConstantValue(types.NewInteger(30)), GreaterThan)
	nameIsBob := NewComparison(NewColumnValue(0, "name"), NewConstantValue(types.NewVarchar("bob")), Equal)
	nameIsEve := NewComparison(NewColumnValue(0, "name"), NewConstantValue(types.NewVarchar("eve")), Equal)

	// unknown OR true = true
	assert.Equal(t, types.True, NewLogicalOp(ageOver30, nameIsBob, OR).Evaluate(row, schema_).ToTriBool())
	// unknown AND true = unknown
	assert.Equal(t, types.Unknown, NewLogicalOp(ageOver30, nameIsBob, AND).Evaluate(row, schema_).ToTriBool())
	// unknown AND false = false
	assert.Equal(t, types.False, NewLogicalOp(ageOver30, nameIsEve, AND).Evaluate(row, schema_).ToTriBool())
	// NOT unknown = unknown
	assert.Equal(t, types.Unknown, NewLogicalOp(ageOver30, nil, NOT).Evaluate(row, schema_).ToTriBool())
}

func TestLikeComparison(t *testing.T) {
	schema_ := usersSchema()

	like := func(name string, pattern string) types.TriBool {
		cmp := NewComparison(NewColumnValue(0, "name"), NewConstantValue(types.NewVarchar(pattern)), Like)
		return cmp.Evaluate(userRow(1, name, types.NewInteger(1)), schema_).ToTriBool()
	}

	assert.Equal(t, types.True, like("alice", "ali%"))
	assert.Equal(t, types.True, like("alice", "%ice"))
	assert.Equal(t, types.True, like("alice", "a_ice"))
	assert.Equal(t, types.False, like("alice", "bob%"))
	assert.Equal(t, types.False, like("alice", "a_ce"))
	// Meta characters in the pattern match literally.
	assert.Equal(t, types.True, like("a.c", "a.c"))
	assert.Equal(t, types.False, like("abc", "a.c"))
}

func TestLikeWithNullOperandIsUnknown(t *testing.T) {
	schema_ := schema.NewSchema([]*column.Column{column.NewColumn("name", types.Varchar, true)})
	row := tuple.NewTupleFromSchema([]types.Value{types.NewNull(types.Varchar)}, schema_)

	cmp := NewComparison(NewColumnValue(0, "name"), NewConstantValue(types.NewVarchar("a%")), Like)
	assert.Equal(t, types.Unknown, cmp.Evaluate(row, schema_).ToTriBool())
}

func TestEvaluateJoinPicksSide(t *testing.T) {
	leftSchema := schema.NewSchema([]*column.Column{column.NewColumn("users.id", types.Integer, false)})
	rightSchema := schema.NewSchema([]*column.Column{column.NewColumn("orders.user_id", types.Integer, false)})
	lt := tuple.NewTupleFromSchema([]types.Value{types.NewInteger(7)}, leftSchema)
	rt := tuple.NewTupleFromSchema([]types.Value{types.NewInteger(7)}, rightSchema)

	on := NewComparison(NewColumnValue(0, "users.id"), NewColumnValue(1, "orders.user_id"), Equal)
	assert.Equal(t, types.True, on.EvaluateJoin(lt, leftSchema, rt, rightSchema).ToTriBool())
}

func TestValidateColumns(t *testing.T) {
	schema_ := usersSchema()

	ok := NewComparison(NewColumnValue(0, "age"), NewConstantValue(types.NewInteger(1)), Equal)
	assert.NoError(t, ValidateColumns(ok, schema_, nil))

	bad := NewComparison(NewColumnValue(0, "salary"), NewConstantValue(types.NewInteger(1)), Equal)
	err := ValidateColumns(bad, schema_, nil)
	assert.True(t, dberr.IsKind(err, dberr.UnknownColumn))
}
