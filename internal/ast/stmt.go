package ast

import "github.com/sqlfront/sqlfront/internal/lexer"

// SelectLock is the row locking clause of a SELECT.
type SelectLock int

const (
	LockNone SelectLock = iota
	LockForUpdate
	LockInShareMode
)

// SelectStmt represents a single SELECT query block.
type SelectStmt struct {
	Distinct      bool
	HighPriority  bool
	StraightJoin  bool
	CalcFoundRows bool
	Columns       []*SelectItem
	From          TableExpr
	Where         Expr
	GroupBy       []Expr
	WithRollup    bool
	Having        Expr
	OrderBy       []*OrderItem
	Limit         *Limit
	Lock          SelectLock
	span          lexer.Span
}

// Span returns the statement span.
func (s *SelectStmt) Span() lexer.Span { return s.span }

// SetSpan updates the statement span.
func (s *SelectStmt) SetSpan(span lexer.Span) { s.span = span }

func (*SelectStmt) stmtNode()  {}
func (*SelectStmt) queryNode() {}

// NewSelectStmt constructs an empty SELECT node; the parser fills in the
// clauses.
func NewSelectStmt(span lexer.Span) *SelectStmt {
	return &SelectStmt{span: span}
}

// SelectItem is one entry of a select list.
type SelectItem struct {
	Expr  Expr
	Alias *Ident
	span  lexer.Span
}

// Span returns the item span.
func (s *SelectItem) Span() lexer.Span { return s.span }

// SetSpan updates the item span.
func (s *SelectItem) SetSpan(span lexer.Span) { s.span = span }

// NewSelectItem constructs a select list entry.
func NewSelectItem(expr Expr, alias *Ident, span lexer.Span) *SelectItem {
	return &SelectItem{
		Expr:  expr,
		Alias: alias,
		span:  span,
	}
}

// OrderItem is one ORDER BY key.
type OrderItem struct {
	Expr Expr
	Desc bool
	span lexer.Span
}

// Span returns the item span.
func (o *OrderItem) Span() lexer.Span { return o.span }

// SetSpan updates the item span.
func (o *OrderItem) SetSpan(span lexer.Span) { o.span = span }

// NewOrderItem constructs an ORDER BY key.
func NewOrderItem(expr Expr, desc bool, span lexer.Span) *OrderItem {
	return &OrderItem{
		Expr: expr,
		Desc: desc,
		span: span,
	}
}

// Limit represents LIMIT count [OFFSET offset] and LIMIT offset, count.
type Limit struct {
	Count  Expr
	Offset Expr
	span   lexer.Span
}

// Span returns the clause span.
func (l *Limit) Span() lexer.Span { return l.span }

// SetSpan updates the clause span.
func (l *Limit) SetSpan(span lexer.Span) { l.span = span }

// NewLimit constructs a LIMIT clause.
func NewLimit(count, offset Expr, span lexer.Span) *Limit {
	return &Limit{
		Count:  count,
		Offset: offset,
		span:   span,
	}
}

// UnionStmt combines two queries. Chains are left-associative, so
// a UNION b UNION c is Union(Union(a, b), c). OrderBy and Limit apply to
// the whole union.
type UnionStmt struct {
	Left    Query
	Right   Query
	All     bool
	OrderBy []*OrderItem
	Limit   *Limit
	span    lexer.Span
}

// Span returns the statement span.
func (s *UnionStmt) Span() lexer.Span { return s.span }

// SetSpan updates the statement span.
func (s *UnionStmt) SetSpan(span lexer.Span) { s.span = span }

func (*UnionStmt) stmtNode()  {}
func (*UnionStmt) queryNode() {}

// NewUnionStmt constructs a UNION node.
func NewUnionStmt(left, right Query, all bool, span lexer.Span) *UnionStmt {
	return &UnionStmt{
		Left:  left,
		Right: right,
		All:   all,
		span:  span,
	}
}

// Assignment is col = value in SET and ON DUPLICATE KEY UPDATE lists.
type Assignment struct {
	Column *ColumnRef
	Value  Expr
	span   lexer.Span
}

// Span returns the assignment span.
func (a *Assignment) Span() lexer.Span { return a.span }

// SetSpan updates the assignment span.
func (a *Assignment) SetSpan(span lexer.Span) { a.span = span }

// NewAssignment constructs an assignment node.
func NewAssignment(column *ColumnRef, value Expr, span lexer.Span) *Assignment {
	return &Assignment{
		Column: column,
		Value:  value,
		span:   span,
	}
}

// InsertStmt represents INSERT and REPLACE. Exactly one of Rows, Query and
// Set is populated.
type InsertStmt struct {
	Replace     bool
	Priority    string // LOW_PRIORITY, DELAYED or HIGH_PRIORITY
	Ignore      bool
	Table       *TableName
	Columns     []*Ident
	Rows        []*RowExpr
	Query       Query
	Set         []*Assignment
	OnDuplicate []*Assignment
	span        lexer.Span
}

// Span returns the statement span.
func (s *InsertStmt) Span() lexer.Span { return s.span }

// SetSpan updates the statement span.
func (s *InsertStmt) SetSpan(span lexer.Span) { s.span = span }

func (*InsertStmt) stmtNode() {}

// NewInsertStmt constructs an empty INSERT node.
func NewInsertStmt(replace bool, span lexer.Span) *InsertStmt {
	return &InsertStmt{
		Replace: replace,
		span:    span,
	}
}

// UpdateStmt represents single- and multi-table UPDATE.
type UpdateStmt struct {
	LowPriority bool
	Ignore      bool
	Table       TableExpr
	Set         []*Assignment
	Where       Expr
	OrderBy     []*OrderItem
	Limit       *Limit
	span        lexer.Span
}

// Span returns the statement span.
func (s *UpdateStmt) Span() lexer.Span { return s.span }

// SetSpan updates the statement span.
func (s *UpdateStmt) SetSpan(span lexer.Span) { s.span = span }

func (*UpdateStmt) stmtNode() {}

// NewUpdateStmt constructs an empty UPDATE node.
func NewUpdateStmt(span lexer.Span) *UpdateStmt {
	return &UpdateStmt{span: span}
}

// DeleteStmt represents the three DELETE forms:
//
//	DELETE FROM t WHERE ...              (From only)
//	DELETE t1, t2 FROM t1 JOIN t2 ...    (Targets and From)
//	DELETE FROM t1, t2 USING t1 JOIN t2  (Targets and Using)
type DeleteStmt struct {
	LowPriority bool
	Quick       bool
	Ignore      bool
	Targets     []*TableName
	From        TableExpr
	Using       TableExpr
	Where       Expr
	OrderBy     []*OrderItem
	Limit       *Limit
	span        lexer.Span
}

// Span returns the statement span.
func (s *DeleteStmt) Span() lexer.Span { return s.span }

// SetSpan updates the statement span.
func (s *DeleteStmt) SetSpan(span lexer.Span) { s.span = span }

func (*DeleteStmt) stmtNode() {}

// NewDeleteStmt constructs an empty DELETE node.
func NewDeleteStmt(span lexer.Span) *DeleteStmt {
	return &DeleteStmt{span: span}
}

// IsMultiTable reports whether the statement names explicit targets.
func (s *DeleteStmt) IsMultiTable() bool {
	return len(s.Targets) > 0
}

// DropTableStmt represents DROP [TEMPORARY] TABLE [IF EXISTS] t, ...
type DropTableStmt struct {
	Temporary bool
	IfExists  bool
	Tables    []*TableName
	Behavior  string // CASCADE or RESTRICT
	span      lexer.Span
}

// Span returns the statement span.
func (s *DropTableStmt) Span() lexer.Span { return s.span }

// SetSpan updates the statement span.
func (s *DropTableStmt) SetSpan(span lexer.Span) { s.span = span }

func (*DropTableStmt) stmtNode() {}

// UseStmt represents USE db.
type UseStmt struct {
	Database *Ident
	span     lexer.Span
}

// Span returns the statement span.
func (s *UseStmt) Span() lexer.Span { return s.span }

// SetSpan updates the statement span.
func (s *UseStmt) SetSpan(span lexer.Span) { s.span = span }

func (*UseStmt) stmtNode() {}

// NewUseStmt constructs a USE node.
func NewUseStmt(db *Ident, span lexer.Span) *UseStmt {
	return &UseStmt{
		Database: db,
		span:     span,
	}
}

// DelimiterStmt is a client DELIMITER line. Statements after it end with
// Delimiter; it is not sent to a server.
type DelimiterStmt struct {
	Delimiter string
	span      lexer.Span
}

// Span returns the directive span.
func (s *DelimiterStmt) Span() lexer.Span { return s.span }

// SetSpan updates the directive span.
func (s *DelimiterStmt) SetSpan(span lexer.Span) { s.span = span }

func (*DelimiterStmt) stmtNode() {}

// NewDelimiterStmt constructs a DELIMITER node.
func NewDelimiterStmt(delimiter string, span lexer.Span) *DelimiterStmt {
	return &DelimiterStmt{
		Delimiter: delimiter,
		span:      span,
	}
}

// TxKind enumerates transaction control statements.
type TxKind int

const (
	TxBegin TxKind = iota
	TxStart
	TxCommit
	TxRollback
)

func (k TxKind) String() string {
	switch k {
	case TxBegin:
		return "BEGIN"
	case TxStart:
		return "START TRANSACTION"
	case TxCommit:
		return "COMMIT"
	default:
		return "ROLLBACK"
	}
}

// TransactionStmt represents BEGIN, START TRANSACTION, COMMIT and ROLLBACK.
type TransactionStmt struct {
	Kind TxKind
	Work bool
	span lexer.Span
}

// Span returns the statement span.
func (s *TransactionStmt) Span() lexer.Span { return s.span }

// SetSpan updates the statement span.
func (s *TransactionStmt) SetSpan(span lexer.Span) { s.span = span }

func (*TransactionStmt) stmtNode() {}

// NewTransactionStmt constructs a transaction control node.
func NewTransactionStmt(kind TxKind, work bool, span lexer.Span) *TransactionStmt {
	return &TransactionStmt{
		Kind: kind,
		Work: work,
		span: span,
	}
}
