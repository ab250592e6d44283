package planner

import (
	"math"

	"github.com/fathurwithyou/silberschatz/catalog"
	"github.com/fathurwithyou/silberschatz/dberr"
	"github.com/fathurwithyou/silberschatz/execution/expression"
	"github.com/fathurwithyou/silberschatz/execution/plans"
	"github.com/fathurwithyou/silberschatz/parser"
	"github.com/fathurwithyou/silberschatz/storage/access"
	"github.com/fathurwithyou/silberschatz/storage/table/column"
	"github.com/fathurwithyou/silberschatz/storage/table/schema"
)

// SimplePlanner builds one fixed plan shape per statement type:
//
//	SELECT: scan -> joins (FROM order) -> selection -> orderby -> projection
//	INSERT: insert of literal rows
//	UPDATE: scan -> selection -> update
//	DELETE: scan -> selection -> delete
//
// Scan schemas of a SELECT are table-qualified so joined columns stay
// unambiguous; unqualified references resolve by suffix.
type SimplePlanner struct {
	catalog *catalog.Catalog
}

func NewSimplePlanner(c *catalog.Catalog) *SimplePlanner {
	return &SimplePlanner{catalog: c}
}

func (p *SimplePlanner) MakePlan(stmt *parser.Statement, txn *access.Transaction) (plans.Plan, error) {
	switch stmt.StatementType_ {
	case parser.SELECT:
		return p.planSelect(stmt)
	case parser.INSERT:
		return p.planInsert(stmt)
	case parser.UPDATE:
		return p.planUpdate(stmt)
	case parser.DELETE:
		return p.planDelete(stmt)
	default:
		return nil, dberr.NewRouting(stmt.StatementType_.String() + " statement is not plannable")
	}
}

func (p *SimplePlanner) planSelect(stmt *parser.Statement) (plans.Plan, error) {
	metadata, err := p.catalog.GetTableByName(stmt.TableName_)
	if err != nil {
		return nil, err
	}

	var plan plans.Plan = plans.NewSeqScanPlanNode(
		qualifiedSchema(metadata.Name(), metadata.Schema()), metadata.OID())

	for _, join := range stmt.JoinClauses_ {
		rightMeta, err := p.catalog.GetTableByName(join.TableName_)
		if err != nil {
			return nil, err
		}
		right := plans.NewSeqScanPlanNode(
			qualifiedSchema(rightMeta.Name(), rightMeta.Schema()), rightMeta.OID())
		onPredicate := convertExpr(join.On_, plan.OutputSchema(), right.OutputSchema())
		plan = plans.NewNestedLoopJoinPlanNode(plan, right, joinType(join.JoinKind_), onPredicate)
	}

	if stmt.WhereExpression_ != nil {
		plan = plans.NewSelectionPlanNode(plan, convertExpr(stmt.WhereExpression_, plan.OutputSchema(), nil))
	}

	if len(stmt.OrderByExpressions_) > 0 {
		sortKeys := make([]plans.SortKey, 0, len(stmt.OrderByExpressions_))
		for _, key := range stmt.OrderByExpressions_ {
			order := plans.ASC
			if key.IsDesc_ {
				order = plans.DESC
			}
			sortKeys = append(sortKeys, plans.SortKey{Expr: expression.NewColumnValue(0, key.ColName_), Order: order})
		}
		plan = plans.NewOrderbyPlanNode(plan, sortKeys)
	}

	if len(stmt.SelectFields_) > 0 {
		return projectionPlan(plan, stmt.SelectFields_)
	}
	return plan, nil
}

// projectionPlan maps the select list onto the child schema, resolving each
// field's type. A field naming no child column fails here, before any tuple
// is pulled.
func projectionPlan(child plans.Plan, fields []*parser.SelectField) (plans.Plan, error) {
	childSchema := child.OutputSchema()
	exprs := make([]expression.Expression, 0, len(fields))
	columns := make([]*column.Column, 0, len(fields))
	for _, field := range fields {
		idx := childSchema.GetColIndex(field.ColName_)
		if idx == math.MaxUint32 {
			return nil, dberr.NewUnknownColumn(field.ColName_)
		}
		src := childSchema.GetColumn(idx)
		name := field.ColName_
		if field.Alias_ != "" {
			name = field.Alias_
		}
		exprs = append(exprs, expression.NewColumnValue(0, field.ColName_))
		columns = append(columns, column.NewColumn(name, src.GetColumnType(), src.IsNullable()))
	}
	return plans.NewProjectionPlanNode(child, schema.NewSchema(columns), exprs), nil
}

func (p *SimplePlanner) planInsert(stmt *parser.Statement) (plans.Plan, error) {
	metadata, err := p.catalog.GetTableByName(stmt.TableName_)
	if err != nil {
		return nil, err
	}
	return plans.NewInsertPlanNode(stmt.Values_, metadata.OID()), nil
}

func (p *SimplePlanner) planUpdate(stmt *parser.Statement) (plans.Plan, error) {
	metadata, err := p.catalog.GetTableByName(stmt.TableName_)
	if err != nil {
		return nil, err
	}
	child := p.mutationChild(stmt, metadata)
	assignments := make([]plans.Assignment, 0, len(stmt.SetExpressions_))
	for _, set := range stmt.SetExpressions_ {
		assignments = append(assignments, plans.Assignment{
			ColName: set.ColName_,
			Expr:    convertExpr(set.Value_, metadata.Schema(), nil),
		})
	}
	return plans.NewUpdatePlanNode(child, assignments, metadata.OID()), nil
}

func (p *SimplePlanner) planDelete(stmt *parser.Statement) (plans.Plan, error) {
	metadata, err := p.catalog.GetTableByName(stmt.TableName_)
	if err != nil {
		return nil, err
	}
	return plans.NewDeletePlanNode(p.mutationChild(stmt, metadata), metadata.OID()), nil
}

// mutationChild is the row source of an UPDATE/DELETE: a scan over the
// table's own schema, filtered when the statement has a WHERE clause. The
// unqualified schema keeps child rows aligned with the heap layout.
func (p *SimplePlanner) mutationChild(stmt *parser.Statement, metadata *catalog.TableMetadata) plans.Plan {
	var child plans.Plan = plans.NewSeqScanPlanNode(metadata.Schema(), metadata.OID())
	if stmt.WhereExpression_ != nil {
		child = plans.NewSelectionPlanNode(child, convertExpr(stmt.WhereExpression_, metadata.Schema(), nil))
	}
	return child
}

// convertExpr lowers a statement expression tree into an executable one.
// With two input schemas (a join's ON predicate) each column reference binds
// to the side that has it, preferring the left; an unresolvable name binds
// left and fails validation when the operator opens.
func convertExpr(e *parser.Expr, left *schema.Schema, right *schema.Schema) expression.Expression {
	if e == nil {
		return nil
	}
	switch e.Kind_ {
	case parser.ColumnRefExpr:
		if right != nil && !left.IsHaveColumn(e.ColName_) && right.IsHaveColumn(e.ColName_) {
			return expression.NewColumnValue(1, e.ColName_)
		}
		return expression.NewColumnValue(0, e.ColName_)
	case parser.LiteralExpr:
		return expression.NewConstantValue(*e.Value_)
	case parser.CompareExpr:
		return expression.NewComparison(
			convertExpr(e.Left_, left, right), convertExpr(e.Right_, left, right), comparisonType(e.CompareOp_))
	default:
		if e.LogicalKind_ == parser.NOT {
			return expression.NewLogicalOp(convertExpr(e.Left_, left, right), nil, expression.NOT)
		}
		kind := expression.AND
		if e.LogicalKind_ == parser.OR {
			kind = expression.OR
		}
		return expression.NewLogicalOp(
			convertExpr(e.Left_, left, right), convertExpr(e.Right_, left, right), kind)
	}
}

func comparisonType(op parser.CompareOp) expression.ComparisonType {
	switch op {
	case parser.EQ:
		return expression.Equal
	case parser.NE:
		return expression.NotEqual
	case parser.GT:
		return expression.GreaterThan
	case parser.GE:
		return expression.GreaterThanOrEqual
	case parser.LT:
		return expression.LessThan
	case parser.LE:
		return expression.LessThanOrEqual
	default:
		return expression.Like
	}
}

func joinType(kind parser.JoinKind) plans.JoinType {
	switch kind {
	case parser.LEFT_OUTER_JOIN:
		return plans.LeftOuterJoin
	case parser.RIGHT_OUTER_JOIN:
		return plans.RightOuterJoin
	case parser.FULL_OUTER_JOIN:
		return plans.FullOuterJoin
	default:
		return plans.InnerJoin
	}
}

// qualifiedSchema prefixes every column with its table name so join outputs
// stay unambiguous. Unqualified references still resolve by suffix matching.
func qualifiedSchema(tableName string, schema_ *schema.Schema) *schema.Schema {
	columns := make([]*column.Column, 0, schema_.GetColumnCount())
	for i := uint32(0); i < schema_.GetColumnCount(); i++ {
		columns = append(columns, schema_.GetColumn(i).WithName(tableName+"."+schema_.GetColumn(i).GetColumnName()))
	}
	return schema.NewSchema(columns)
}
