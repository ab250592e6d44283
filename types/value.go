package types

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
)

// A Value is a view over a single SQL scalar. All values carry a type and a
// null flag; comparison between values follows three-valued logic, so any
// comparison involving a null operand yields Unknown.
type Value struct {
	valueType TypeID
	isNull    bool
	integer   *int32
	boolean   *bool
	varchar   *string
	float     *float32
}

func NewInteger(value int32) Value {
	return Value{Integer, false, &value, nil, nil, nil}
}

func NewFloat(value float32) Value {
	return Value{Float, false, nil, nil, nil, &value}
}

func NewBoolean(value bool) Value {
	return Value{Boolean, false, nil, &value, nil, nil}
}

func NewVarchar(value string) Value {
	return Value{Varchar, false, nil, nil, &value, nil}
}

// NewNull returns the null value of the given type.
func NewNull(valueType TypeID) Value {
	return Value{valueType: valueType, isNull: true}
}

// NewBooleanFromTriBool maps True/False to a boolean value and Unknown to the
// null boolean, which is how a predicate result travels through a tuple.
func NewBooleanFromTriBool(t TriBool) Value {
	if t == Unknown {
		return NewNull(Boolean)
	}
	return NewBoolean(t.IsTrue())
}

func (v Value) ValueType() TypeID { return v.valueType }
func (v Value) IsNull() bool      { return v.isNull }

func (v *Value) SetNull() {
	v.isNull = true
	v.integer = nil
	v.boolean = nil
	v.varchar = nil
	v.float = nil
}

func (v Value) ToBoolean() bool {
	if v.isNull || v.boolean == nil {
		return false
	}
	return *v.boolean
}

// ToTriBool interprets a boolean value under three-valued logic. The null
// boolean is Unknown.
func (v Value) ToTriBool() TriBool {
	if v.isNull {
		return Unknown
	}
	return NewTriBool(v.ToBoolean())
}

func (v Value) ToInteger() int32 {
	if v.integer == nil {
		return 0
	}
	return *v.integer
}

func (v Value) ToFloat() float32 {
	if v.float == nil {
		return 0
	}
	return *v.float
}

func (v Value) ToVarchar() string {
	if v.varchar == nil {
		return ""
	}
	return *v.varchar
}

func (v Value) ToString() string {
	if v.isNull {
		return "NULL"
	}
	switch v.valueType {
	case Integer:
		return strconv.FormatInt(int64(*v.integer), 10)
	case Float:
		return strconv.FormatFloat(float64(*v.float), 'g', -1, 32)
	case Varchar:
		return *v.varchar
	case Boolean:
		return strconv.FormatBool(*v.boolean)
	default:
		return "INVALID"
	}
}

// asFloat widens integers so that INTEGER and FLOAT operands compare
// numerically.
func (v Value) asFloat() (float64, bool) {
	switch v.valueType {
	case Integer:
		return float64(*v.integer), true
	case Float:
		return float64(*v.float), true
	default:
		return 0, false
	}
}

// compare returns -1/0/+1 for non-null operands of comparable types and
// ok=false when the operands cannot be ordered.
func (v Value) compare(right Value) (int, bool) {
	if lf, lok := v.asFloat(); lok {
		rf, rok := right.asFloat()
		if !rok {
			return 0, false
		}
		switch {
		case lf < rf:
			return -1, true
		case lf > rf:
			return 1, true
		default:
			return 0, true
		}
	}
	switch v.valueType {
	case Varchar:
		if right.valueType != Varchar {
			return 0, false
		}
		return bytes.Compare([]byte(*v.varchar), []byte(*right.varchar)), true
	case Boolean:
		if right.valueType != Boolean {
			return 0, false
		}
		l, r := 0, 0
		if *v.boolean {
			l = 1
		}
		if *right.boolean {
			r = 1
		}
		return l - r, true
	default:
		return 0, false
	}
}

func (v Value) CompareEquals(right Value) TriBool {
	if v.isNull || right.isNull {
		return Unknown
	}
	c, ok := v.compare(right)
	return NewTriBool(ok && c == 0)
}

func (v Value) CompareNotEquals(right Value) TriBool {
	if v.isNull || right.isNull {
		return Unknown
	}
	c, ok := v.compare(right)
	return NewTriBool(!ok || c != 0)
}

func (v Value) CompareGreaterThan(right Value) TriBool {
	if v.isNull || right.isNull {
		return Unknown
	}
	c, ok := v.compare(right)
	return NewTriBool(ok && c > 0)
}

func (v Value) CompareGreaterThanOrEqual(right Value) TriBool {
	if v.isNull || right.isNull {
		return Unknown
	}
	c, ok := v.compare(right)
	return NewTriBool(ok && c >= 0)
}

func (v Value) CompareLessThan(right Value) TriBool {
	if v.isNull || right.isNull {
		return Unknown
	}
	c, ok := v.compare(right)
	return NewTriBool(ok && c < 0)
}

func (v Value) CompareLessThanOrEqual(right Value) TriBool {
	if v.isNull || right.isNull {
		return Unknown
	}
	c, ok := v.compare(right)
	return NewTriBool(ok && c <= 0)
}

// CompareTo gives a total order over non-null values of the same comparison
// class. It is used by index and sort code, where operands are known to be
// orderable; incomparable operands are treated as equal.
func (v Value) CompareTo(right Value) int {
	c, _ := v.compare(right)
	return c
}

// Serialize encodes the value as [isNull:1][payload], with varchar payloads
// length-prefixed. Layout follows little-endian like the rest of the engine.
func (v Value) Serialize() []byte {
	buf := new(bytes.Buffer)
	binary.Write(buf, binary.LittleEndian, v.isNull)
	if v.isNull {
		return buf.Bytes()
	}
	switch v.valueType {
	case Integer:
		binary.Write(buf, binary.LittleEndian, *v.integer)
	case Float:
		binary.Write(buf, binary.LittleEndian, *v.float)
	case Varchar:
		binary.Write(buf, binary.LittleEndian, int16(len(*v.varchar)))
		buf.Write([]byte(*v.varchar))
	case Boolean:
		binary.Write(buf, binary.LittleEndian, *v.boolean)
	default:
		panic(fmt.Sprintf("%v can not be serialized", v.valueType))
	}
	return buf.Bytes()
}

// NewValueFromBytes decodes one value of the given type from data and returns
// the value together with the number of bytes consumed.
func NewValueFromBytes(data []byte, valueType TypeID) (Value, int) {
	buf := bytes.NewBuffer(data)
	isNull := new(bool)
	binary.Read(buf, binary.LittleEndian, isNull)
	if *isNull {
		return NewNull(valueType), 1
	}
	switch valueType {
	case Integer:
		v := new(int32)
		binary.Read(buf, binary.LittleEndian, v)
		return NewInteger(*v), 1 + 4
	case Float:
		v := new(float32)
		binary.Read(buf, binary.LittleEndian, v)
		return NewFloat(*v), 1 + 4
	case Varchar:
		length := new(int16)
		binary.Read(buf, binary.LittleEndian, length)
		return NewVarchar(string(data[1+2 : 1+2+int(*length)])), 1 + 2 + int(*length)
	case Boolean:
		v := new(bool)
		binary.Read(buf, binary.LittleEndian, v)
		return NewBoolean(*v), 1 + 1
	default:
		panic(fmt.Sprintf("%v can not be deserialized", valueType))
	}
}
