package ast

import "github.com/sqlfront/sqlfront/internal/lexer"

// TableName references a base table, optionally schema-qualified and
// aliased.
type TableName struct {
	Schema *Ident
	Name   *Ident
	Alias  *Ident
	span   lexer.Span
}

// Span returns the table reference span.
func (t *TableName) Span() lexer.Span { return t.span }

// SetSpan updates the table reference span.
func (t *TableName) SetSpan(span lexer.Span) { t.span = span }

func (*TableName) tableNode() {}

// NewTableName constructs a table reference node.
func NewTableName(schema, name *Ident, span lexer.Span) *TableName {
	return &TableName{
		Schema: schema,
		Name:   name,
		span:   span,
	}
}

// DerivedTable is a subquery in FROM. MySQL requires the alias.
type DerivedTable struct {
	Query Query
	Alias *Ident
	span  lexer.Span
}

// Span returns the derived table span.
func (t *DerivedTable) Span() lexer.Span { return t.span }

// SetSpan updates the derived table span.
func (t *DerivedTable) SetSpan(span lexer.Span) { t.span = span }

func (*DerivedTable) tableNode() {}

// JoinKind enumerates join flavours, including the comma join.
type JoinKind int

const (
	JoinComma JoinKind = iota
	JoinInner
	JoinCross
	JoinLeft
	JoinRight
	JoinStraight
	JoinNatural
	JoinNaturalLeft
	JoinNaturalRight
)

// String returns the SQL keywords introducing the join.
func (k JoinKind) String() string {
	switch k {
	case JoinComma:
		return ","
	case JoinInner:
		return "JOIN"
	case JoinCross:
		return "CROSS JOIN"
	case JoinLeft:
		return "LEFT JOIN"
	case JoinRight:
		return "RIGHT JOIN"
	case JoinStraight:
		return "STRAIGHT_JOIN"
	case JoinNatural:
		return "NATURAL JOIN"
	case JoinNaturalLeft:
		return "NATURAL LEFT JOIN"
	case JoinNaturalRight:
		return "NATURAL RIGHT JOIN"
	default:
		return "JOIN"
	}
}

// JoinExpr joins two table expressions. At most one of On and Using is set.
type JoinExpr struct {
	Kind  JoinKind
	Left  TableExpr
	Right TableExpr
	On    Expr
	Using []*Ident
	span  lexer.Span
}

// Span returns the join span.
func (j *JoinExpr) Span() lexer.Span { return j.span }

// SetSpan updates the join span.
func (j *JoinExpr) SetSpan(span lexer.Span) { j.span = span }

func (*JoinExpr) tableNode() {}

// NewJoinExpr constructs a join node without a condition.
func NewJoinExpr(kind JoinKind, left, right TableExpr, span lexer.Span) *JoinExpr {
	return &JoinExpr{
		Kind:  kind,
		Left:  left,
		Right: right,
		span:  span,
	}
}

// ParenTableExpr groups table expressions: FROM (a JOIN b) JOIN c.
type ParenTableExpr struct {
	Expr TableExpr
	span lexer.Span
}

// Span returns the group span, including the parentheses.
func (p *ParenTableExpr) Span() lexer.Span { return p.span }

// SetSpan updates the group span.
func (p *ParenTableExpr) SetSpan(span lexer.Span) { p.span = span }

func (*ParenTableExpr) tableNode() {}
