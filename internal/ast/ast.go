package ast

import "github.com/sqlfront/sqlfront/internal/lexer"

// Node represents any AST node with an associated source span.
type Node interface {
	Span() lexer.Span
	SetSpan(lexer.Span)
}

// Stmt represents a top-level SQL statement.
type Stmt interface {
	Node
	stmtNode()
}

// Query is a statement that yields rows: a SELECT or a UNION of queries.
type Query interface {
	Stmt
	queryNode()
}

// Expr represents a scalar expression.
type Expr interface {
	Node
	exprNode()
}

// TableExpr represents an entry of a FROM clause.
type TableExpr interface {
	Node
	tableNode()
}

// Script represents a parsed statement list.
//
// Comments holds every comment of the input in source order; they are not
// part of any statement.
type Script struct {
	Stmts    []Stmt
	Comments []lexer.Comment
	span     lexer.Span
}

// Span returns the span covering the entire input.
func (s *Script) Span() lexer.Span { return s.span }

// SetSpan updates the script span.
func (s *Script) SetSpan(span lexer.Span) { s.span = span }

// NewScript constructs a script node with the provided span.
func NewScript(span lexer.Span) *Script {
	return &Script{span: span}
}

// Ident represents an identifier. Quoted records whether the source used
// backticks or ANSI double quotes; Name is always the decoded spelling.
type Ident struct {
	Name   string
	Quoted bool
	span   lexer.Span
}

// Span returns the identifier span.
func (i *Ident) Span() lexer.Span { return i.span }

// SetSpan updates the identifier span.
func (i *Ident) SetSpan(span lexer.Span) { i.span = span }

// NewIdent constructs an identifier node.
func NewIdent(name string, quoted bool, span lexer.Span) *Ident {
	return &Ident{
		Name:   name,
		Quoted: quoted,
		span:   span,
	}
}
