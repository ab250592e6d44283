package tuple

import (
	"github.com/pkg/errors"

	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/types"
)

// Tuple is one row of a relation. The producing operator owns it; a parent
// either forwards it or builds a new tuple from its values.
type Tuple struct {
	rid    *RID
	values []types.Value
}

func NewTupleFromSchema(values []types.Value, schema_ *schema.Schema) *Tuple {
	_ = schema_ // arity is validated by the operator that builds the row
	return &Tuple{nil, values}
}

func (t *Tuple) GetValue(colIndex uint32) types.Value {
	return t.values[colIndex]
}

func (t *Tuple) Values() []types.Value { return t.values }
func (t *Tuple) Size() uint32          { return uint32(len(t.values)) }

func (t *Tuple) GetRID() *RID     { return t.rid }
func (t *Tuple) SetRID(rid *RID)  { t.rid = rid }

// Serialize encodes the tuple as the concatenation of its values' encodings.
// Decoding needs the schema, which carries the per-column types.
func (t *Tuple) Serialize() []byte {
	data := make([]byte, 0)
	for _, v := range t.values {
		data = append(data, v.Serialize()...)
	}
	return data
}

// DeserializeFrom decodes one tuple laid out per schema_ from data.
func DeserializeFrom(data []byte, schema_ *schema.Schema) (*Tuple, error) {
	values := make([]types.Value, 0, schema_.GetColumnCount())
	offset := 0
	for i := uint32(0); i < schema_.GetColumnCount(); i++ {
		if offset >= len(data) {
			return nil, errors.Errorf("tuple data truncated at column %d", i)
		}
		v, n := types.NewValueFromBytes(data[offset:], schema_.GetColumn(i).GetColumnType())
		values = append(values, v)
		offset += n
	}
	return &Tuple{nil, values}, nil
}
