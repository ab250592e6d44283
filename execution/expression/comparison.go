package expression

import (
	"regexp"
	"strings"

	"github.com/fathurwithyou/silberschatz/storage/table/schema"
	"github.com/fathurwithyou/silberschatz/storage/tuple"
	"github.com/fathurwithyou/silberschatz/types"
)

type ComparisonType int32

const (
	Equal ComparisonType = iota
	NotEqual
	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
	Like
)

// Comparison compares two sub-expressions. The result is three-valued: any
// null operand yields the null boolean (Unknown).
type Comparison struct {
	comparisonType ComparisonType
	left           Expression
	right          Expression
}

func NewComparison(left Expression, right Expression, comparisonType ComparisonType) Expression {
	return &Comparison{comparisonType, left, right}
}

func (c *Comparison) GetComparisonType() ComparisonType { return c.comparisonType }
func (c *Comparison) GetLeft() Expression               { return c.left }
func (c *Comparison) GetRight() Expression              { return c.right }

func (c *Comparison) Evaluate(tuple_ *tuple.Tuple, schema_ *schema.Schema) types.Value {
	lhs := c.left.Evaluate(tuple_, schema_)
	rhs := c.right.Evaluate(tuple_, schema_)
	return types.NewBooleanFromTriBool(c.performComparison(lhs, rhs))
}

func (c *Comparison) EvaluateJoin(leftTuple *tuple.Tuple, leftSchema *schema.Schema,
	rightTuple *tuple.Tuple, rightSchema *schema.Schema) types.Value {
	lhs := c.left.EvaluateJoin(leftTuple, leftSchema, rightTuple, rightSchema)
	rhs := c.right.EvaluateJoin(leftTuple, leftSchema, rightTuple, rightSchema)
	return types.NewBooleanFromTriBool(c.performComparison(lhs, rhs))
}

func (c *Comparison) performComparison(lhs types.Value, rhs types.Value) types.TriBool {
	switch c.comparisonType {
	case Equal:
		return lhs.CompareEquals(rhs)
	case NotEqual:
		return lhs.CompareNotEquals(rhs)
	case GreaterThan:
		return lhs.CompareGreaterThan(rhs)
	case GreaterThanOrEqual:
		return lhs.CompareGreaterThanOrEqual(rhs)
	case LessThan:
		return lhs.CompareLessThan(rhs)
	case LessThanOrEqual:
		return lhs.CompareLessThanOrEqual(rhs)
	case Like:
		return performLike(lhs, rhs)
	default:
		panic("unknown comparisonType is passed!")
	}
}

// performLike matches lhs against a SQL pattern with % (any run) and _ (any
// single character) wildcards. Null operands give Unknown, like every other
// comparison.
func performLike(lhs types.Value, rhs types.Value) types.TriBool {
	if lhs.IsNull() || rhs.IsNull() {
		return types.Unknown
	}
	if lhs.ValueType() != types.Varchar || rhs.ValueType() != types.Varchar {
		return types.False
	}
	pattern := rhs.ToVarchar()
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '%':
			b.WriteString(".*")
		case '_':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	matched, err := regexp.MatchString(b.String(), lhs.ToVarchar())
	if err != nil {
		return types.False
	}
	return types.NewTriBool(matched)
}
