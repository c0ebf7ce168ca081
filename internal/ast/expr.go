package ast

import "github.com/sqlfront/sqlfront/internal/lexer"

// BinaryExpr represents an infix operation such as a + b or x AND y.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	span  lexer.Span
}

// Span returns the expression span.
func (e *BinaryExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *BinaryExpr) SetSpan(span lexer.Span) { e.span = span }

func (*BinaryExpr) exprNode() {}

// NewBinaryExpr constructs a binary expression node.
func NewBinaryExpr(op BinaryOp, left, right Expr, span lexer.Span) *BinaryExpr {
	return &BinaryExpr{
		Op:    op,
		Left:  left,
		Right: right,
		span:  span,
	}
}

// UnaryExpr represents a prefix operation such as -x or NOT x.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
	span    lexer.Span
}

// Span returns the expression span.
func (e *UnaryExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *UnaryExpr) SetSpan(span lexer.Span) { e.span = span }

func (*UnaryExpr) exprNode() {}

// NewUnaryExpr constructs a unary expression node.
func NewUnaryExpr(op UnaryOp, operand Expr, span lexer.Span) *UnaryExpr {
	return &UnaryExpr{
		Op:      op,
		Operand: operand,
		span:    span,
	}
}

// LiteralKind classifies literal values.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitString
	LitHex
	LitBit
	LitNull
	LitBool
)

func (k LiteralKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitString:
		return "string"
	case LitHex:
		return "hex"
	case LitBit:
		return "bit"
	case LitNull:
		return "null"
	case LitBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Literal represents a constant. Value holds the source text for numbers,
// the decoded text for strings, "NULL" for NULL and "TRUE"/"FALSE" for
// booleans. Introducer is the character set prefix of _utf8mb4'x' or the N
// of N'x', empty otherwise.
type Literal struct {
	Kind       LiteralKind
	Value      string
	Introducer string
	span       lexer.Span
}

// Span returns the literal span.
func (l *Literal) Span() lexer.Span { return l.span }

// SetSpan updates the literal span.
func (l *Literal) SetSpan(span lexer.Span) { l.span = span }

func (*Literal) exprNode() {}

// NewLiteral constructs a literal node.
func NewLiteral(kind LiteralKind, value string, span lexer.Span) *Literal {
	return &Literal{
		Kind:  kind,
		Value: value,
		span:  span,
	}
}

// ColumnRef references a column, optionally qualified: col, t.col, db.t.col.
type ColumnRef struct {
	Parts []*Ident
	span  lexer.Span
}

// Span returns the reference span.
func (c *ColumnRef) Span() lexer.Span { return c.span }

// SetSpan updates the reference span.
func (c *ColumnRef) SetSpan(span lexer.Span) { c.span = span }

func (*ColumnRef) exprNode() {}

// NewColumnRef constructs a column reference node.
func NewColumnRef(parts []*Ident, span lexer.Span) *ColumnRef {
	return &ColumnRef{
		Parts: parts,
		span:  span,
	}
}

// Name returns the unqualified column name.
func (c *ColumnRef) Name() string {
	if len(c.Parts) == 0 {
		return ""
	}
	return c.Parts[len(c.Parts)-1].Name
}

// StarExpr is * or a qualified t.* in a select list.
type StarExpr struct {
	Qualifier []*Ident
	span      lexer.Span
}

// Span returns the expression span.
func (e *StarExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *StarExpr) SetSpan(span lexer.Span) { e.span = span }

func (*StarExpr) exprNode() {}

// NewStarExpr constructs a star expression node.
func NewStarExpr(qualifier []*Ident, span lexer.Span) *StarExpr {
	return &StarExpr{
		Qualifier: qualifier,
		span:      span,
	}
}

// FuncCall represents a function or aggregate call. Star is set for
// COUNT(*). Schema qualifies a stored function, as in db.f(1).
type FuncCall struct {
	Schema   *Ident
	Name     *Ident
	Distinct bool
	Star     bool
	Args     []Expr
	span     lexer.Span
}

// Span returns the call span.
func (f *FuncCall) Span() lexer.Span { return f.span }

// SetSpan updates the call span.
func (f *FuncCall) SetSpan(span lexer.Span) { f.span = span }

func (*FuncCall) exprNode() {}

// NewFuncCall constructs a function call node.
func NewFuncCall(name *Ident, args []Expr, span lexer.Span) *FuncCall {
	return &FuncCall{
		Name: name,
		Args: args,
		span: span,
	}
}

// SubqueryExpr is a parenthesised query used as a value.
type SubqueryExpr struct {
	Query Query
	span  lexer.Span
}

// Span returns the expression span, including the parentheses.
func (e *SubqueryExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *SubqueryExpr) SetSpan(span lexer.Span) { e.span = span }

func (*SubqueryExpr) exprNode() {}

// NewSubqueryExpr constructs a subquery expression node.
func NewSubqueryExpr(query Query, span lexer.Span) *SubqueryExpr {
	return &SubqueryExpr{
		Query: query,
		span:  span,
	}
}

// ParamKind classifies parameter references.
type ParamKind int

const (
	ParamPositional ParamKind = iota // ?
	ParamUserVar                     // @name
	ParamSysVar                      // @@name
)

// ParamExpr represents a placeholder or a variable reference. Index is the
// 1-based position of a ? within its statement list.
type ParamExpr struct {
	Kind  ParamKind
	Name  string
	Index int
	span  lexer.Span
}

// Span returns the parameter span.
func (p *ParamExpr) Span() lexer.Span { return p.span }

// SetSpan updates the parameter span.
func (p *ParamExpr) SetSpan(span lexer.Span) { p.span = span }

func (*ParamExpr) exprNode() {}

// NewParamExpr constructs a parameter node.
func NewParamExpr(kind ParamKind, name string, index int, span lexer.Span) *ParamExpr {
	return &ParamExpr{
		Kind:  kind,
		Name:  name,
		Index: index,
		span:  span,
	}
}

// InExpr represents x [NOT] IN (list) or x [NOT] IN (subquery). Exactly one
// of List and Query is set.
type InExpr struct {
	Expr  Expr
	Not   bool
	List  []Expr
	Query Query
	span  lexer.Span
}

// Span returns the expression span.
func (e *InExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *InExpr) SetSpan(span lexer.Span) { e.span = span }

func (*InExpr) exprNode() {}

// BetweenExpr represents x [NOT] BETWEEN low AND high.
type BetweenExpr struct {
	Expr Expr
	Not  bool
	Low  Expr
	High Expr
	span lexer.Span
}

// Span returns the expression span.
func (e *BetweenExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *BetweenExpr) SetSpan(span lexer.Span) { e.span = span }

func (*BetweenExpr) exprNode() {}

// LikeExpr represents x [NOT] LIKE pattern [ESCAPE e] and x [NOT] REGEXP
// pattern.
type LikeExpr struct {
	Expr    Expr
	Not     bool
	Regexp  bool
	Pattern Expr
	Escape  Expr
	span    lexer.Span
}

// Span returns the expression span.
func (e *LikeExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *LikeExpr) SetSpan(span lexer.Span) { e.span = span }

func (*LikeExpr) exprNode() {}

// IsValue is the right-hand side of an IS test.
type IsValue int

const (
	IsNull IsValue = iota
	IsTrue
	IsFalse
	IsUnknown
)

func (v IsValue) String() string {
	switch v {
	case IsNull:
		return "NULL"
	case IsTrue:
		return "TRUE"
	case IsFalse:
		return "FALSE"
	default:
		return "UNKNOWN"
	}
}

// IsExpr represents x IS [NOT] NULL|TRUE|FALSE|UNKNOWN.
type IsExpr struct {
	Expr  Expr
	Not   bool
	Value IsValue
	span  lexer.Span
}

// Span returns the expression span.
func (e *IsExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *IsExpr) SetSpan(span lexer.Span) { e.span = span }

func (*IsExpr) exprNode() {}

// ExistsExpr represents EXISTS (subquery).
type ExistsExpr struct {
	Query Query
	span  lexer.Span
}

// Span returns the expression span.
func (e *ExistsExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *ExistsExpr) SetSpan(span lexer.Span) { e.span = span }

func (*ExistsExpr) exprNode() {}

// CaseExpr represents both CASE forms. Operand is nil for the searched form.
type CaseExpr struct {
	Operand Expr
	Whens   []*WhenClause
	Else    Expr
	span    lexer.Span
}

// Span returns the expression span.
func (e *CaseExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *CaseExpr) SetSpan(span lexer.Span) { e.span = span }

func (*CaseExpr) exprNode() {}

// WhenClause is one WHEN cond THEN result arm of a CASE.
type WhenClause struct {
	Cond   Expr
	Result Expr
	span   lexer.Span
}

// Span returns the clause span.
func (w *WhenClause) Span() lexer.Span { return w.span }

// SetSpan updates the clause span.
func (w *WhenClause) SetSpan(span lexer.Span) { w.span = span }

// NewWhenClause constructs a WHEN arm.
func NewWhenClause(cond, result Expr, span lexer.Span) *WhenClause {
	return &WhenClause{
		Cond:   cond,
		Result: result,
		span:   span,
	}
}

// CastExpr represents CAST(x AS type) and CONVERT(x, type).
type CastExpr struct {
	Expr    Expr
	Type    *DataType
	Convert bool
	span    lexer.Span
}

// Span returns the expression span.
func (e *CastExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *CastExpr) SetSpan(span lexer.Span) { e.span = span }

func (*CastExpr) exprNode() {}

// RowExpr is a row constructor: (a, b) or ROW(a, b). INSERT value rows are
// represented the same way.
type RowExpr struct {
	Items []Expr
	Row   bool
	span  lexer.Span
}

// Span returns the expression span.
func (e *RowExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *RowExpr) SetSpan(span lexer.Span) { e.span = span }

func (*RowExpr) exprNode() {}

// NewRowExpr constructs a row constructor node.
func NewRowExpr(items []Expr, span lexer.Span) *RowExpr {
	return &RowExpr{
		Items: items,
		span:  span,
	}
}

// DefaultExpr is the DEFAULT keyword used as a value in INSERT and UPDATE.
type DefaultExpr struct {
	span lexer.Span
}

// Span returns the expression span.
func (e *DefaultExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *DefaultExpr) SetSpan(span lexer.Span) { e.span = span }

func (*DefaultExpr) exprNode() {}

// NewDefaultExpr constructs a DEFAULT value node.
func NewDefaultExpr(span lexer.Span) *DefaultExpr {
	return &DefaultExpr{span: span}
}

// CollateExpr represents x COLLATE name.
type CollateExpr struct {
	Expr      Expr
	Collation string
	span      lexer.Span
}

// Span returns the expression span.
func (e *CollateExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *CollateExpr) SetSpan(span lexer.Span) { e.span = span }

func (*CollateExpr) exprNode() {}

// IntervalExpr is INTERVAL value unit, the operand of date arithmetic such
// as d + INTERVAL 1 DAY. Unit is upper-cased.
type IntervalExpr struct {
	Value Expr
	Unit  string
	span  lexer.Span
}

// Span returns the expression span.
func (e *IntervalExpr) Span() lexer.Span { return e.span }

// SetSpan updates the expression span.
func (e *IntervalExpr) SetSpan(span lexer.Span) { e.span = span }

func (*IntervalExpr) exprNode() {}
