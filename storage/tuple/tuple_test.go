package tuple

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fathurwithyou/silberschatz/storage/table/column"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/types"
)

func TestTupleSerializeRoundtrip(t *testing.T) {
	schema_ := schema.NewSchema([]*column.Column{
		column.NewColumn("id", types.Integer, false),
		column.NewColumn("name", types.Varchar, false),
		column.NewColumn("age", types.Integer, true),
		column.NewColumn("score", types.Float, true),
		column.NewColumn("active", types.Boolean, false),
	})

	row := []types.Value{
		types.NewInteger(7),
		types.NewVarchar("alice"),
		types.NewNull(types.Integer),
		types.NewFloat(88.5),
		types.NewBoolean(true),
	}
	original := NewTupleFromSchema(row, schema_)

	decoded, err := DeserializeFrom(original.Serialize(), schema_)
	require.NoError(t, err)

	assert.Equal(t, int32(7), decoded.GetValue(0).ToInteger())
	assert.Equal(t, "alice", decoded.GetValue(1).ToVarchar())
	assert.True(t, decoded.GetValue(2).IsNull())
	assert.Equal(t, float32(88.5), decoded.GetValue(3).ToFloat())
	assert.True(t, decoded.GetValue(4).ToBoolean())
}

func TestTupleDeserializeTruncated(t *testing.T) {
	schema_ := schema.NewSchema([]*column.Column{
		column.NewColumn("a", types.Integer, false),
		column.NewColumn("b", types.Integer, false),
	})
	data := NewTupleFromSchema([]types.Value{types.NewInteger(1)}, schema_).Serialize()

	_, err := DeserializeFrom(data, schema_)
	assert.Error(t, err)
}

func TestTupleRID(t *testing.T) {
	schema_ := schema.NewSchema([]*column.Column{column.NewColumn("a", types.Integer, false)})
	tp := NewTupleFromSchema([]types.Value{types.NewInteger(1)}, schema_)
	require.Nil(t, tp.GetRID())

	rid := NewRID(42)
	tp.SetRID(rid)
	assert.Equal(t, uint32(42), tp.GetRID().GetSlotNum())
}
