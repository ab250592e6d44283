package types

type TypeID int32

const (
	Invalid TypeID = iota
	Boolean
	Integer
	Float
	Varchar
)

func (t TypeID) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Integer:
		return "INTEGER"
	case Float:
		return "FLOAT"
	case Varchar:
		return "VARCHAR"
	default:
		return "INVALID"
	}
}
