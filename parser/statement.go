// Package parser holds the validated statement model the front end hands to
// the query processor. Text-to-statement parsing lives outside the engine;
// the types here are the contract between the two.
package parser

import (
	"github.com/fathurwithyou/silberschatz/types"
)

type StatementType int32

const (
	SELECT StatementType = iota
	INSERT
	UPDATE
	DELETE
	CREATE_TABLE
	DROP_TABLE
	BEGIN
	COMMIT
	ABORT
)

func (st StatementType) String() string {
	switch st {
	case SELECT:
		return "SELECT"
	case INSERT:
		return "INSERT"
	case UPDATE:
		return "UPDATE"
	case DELETE:
		return "DELETE"
	case CREATE_TABLE:
		return "CREATE TABLE"
	case DROP_TABLE:
		return "DROP TABLE"
	case BEGIN:
		return "BEGIN"
	case COMMIT:
		return "COMMIT"
	case ABORT:
		return "ABORT"
	default:
		return "UNKNOWN"
	}
}

type JoinKind int32

const (
	INNER_JOIN JoinKind = iota
	LEFT_OUTER_JOIN
	RIGHT_OUTER_JOIN
	FULL_OUTER_JOIN
)

// SelectField is one entry of a select list. An empty select list means
// SELECT *. ColName_ may be table-qualified; Alias_ renames the output
// column when non-empty.
type SelectField struct {
	ColName_ string
	Alias_   string
}

// JoinClause joins one more table onto the FROM chain, left to right.
type JoinClause struct {
	JoinKind_  JoinKind
	TableName_ string
	On_        *Expr
}

// OrderByExpression is one ORDER BY key.
type OrderByExpression struct {
	ColName_ string
	IsDesc_  bool
}

// SetExpression is one SET clause of an UPDATE. The value expression may
// reference the row's current column values.
type SetExpression struct {
	ColName_ string
	Value_   *Expr
}

// ColDefExpression is one column of a CREATE TABLE.
type ColDefExpression struct {
	ColName_  string
	ColType_  types.TypeID
	Nullable_ bool
}

// Statement is the validated form of one statement. Which fields are
// populated depends on StatementType_.
type Statement struct {
	StatementType_ StatementType

	TableName_ string // all but BEGIN/COMMIT/ABORT

	SelectFields_       []*SelectField       // SELECT; empty means *
	JoinClauses_        []*JoinClause        // SELECT
	WhereExpression_    *Expr                // SELECT, UPDATE, DELETE
	OrderByExpressions_ []*OrderByExpression // SELECT

	Values_ [][]types.Value // INSERT, one slice per row

	SetExpressions_ []*SetExpression // UPDATE

	ColDefExpressions_ []*ColDefExpression // CREATE TABLE
	PrimaryKeyCol_     string              // CREATE TABLE; empty means none
}

func NewStatement(st StatementType) *Statement {
	return &Statement{StatementType_: st}
}
