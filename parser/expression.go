package parser

import (
	"github.com/fathurwithyou/silberschatz/types"
)

type ExprKind int32

const (
	ColumnRefExpr ExprKind = iota
	LiteralExpr
	CompareExpr
	LogicalExpr
)

type CompareOp int32

const (
	EQ CompareOp = iota
	NE
	GT
	GE
	LT
	LE
	LIKE
)

type LogicalKind int32

const (
	AND LogicalKind = iota
	OR
	NOT
)

// Expr is one node of a predicate or value expression tree, tagged by Kind_.
// Column references carry names only; binding to operator inputs happens at
// planning time.
type Expr struct {
	Kind_ ExprKind

	ColName_ string       // ColumnRefExpr
	Value_   *types.Value // LiteralExpr

	CompareOp_   CompareOp   // CompareExpr
	LogicalKind_ LogicalKind // LogicalExpr

	Left_  *Expr // CompareExpr, LogicalExpr
	Right_ *Expr // CompareExpr, LogicalExpr (nil for NOT)
}

// Expression-tree constructors. The front end and the tests build predicate
// trees out of these.

func ColRef(name string) *Expr {
	return &Expr{Kind_: ColumnRefExpr, ColName_: name}
}

func Lit(v types.Value) *Expr {
	return &Expr{Kind_: LiteralExpr, Value_: &v}
}

func Cmp(op CompareOp, left *Expr, right *Expr) *Expr {
	return &Expr{Kind_: CompareExpr, CompareOp_: op, Left_: left, Right_: right}
}

func And(left *Expr, right *Expr) *Expr {
	return &Expr{Kind_: LogicalExpr, LogicalKind_: AND, Left_: left, Right_: right}
}

func Or(left *Expr, right *Expr) *Expr {
	return &Expr{Kind_: LogicalExpr, LogicalKind_: OR, Left_: left, Right_: right}
}

func Not(child *Expr) *Expr {
	return &Expr{Kind_: LogicalExpr, LogicalKind_: NOT, Left_: child}
}
