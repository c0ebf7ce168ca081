package ast

import "github.com/sqlfront/sqlfront/internal/lexer"

// CreateTableStmt represents CREATE [TEMPORARY] TABLE. A definition list,
// LIKE and AS SELECT are alternatives; Select may also follow a definition
// list.
type CreateTableStmt struct {
	Temporary   bool
	IfNotExists bool
	Table       *TableName
	Columns     []*ColumnDef
	Constraints []*TableConstraint
	Options     []*TableOption
	Like        *TableName
	Select      Query
	span        lexer.Span
}

// Span returns the statement span.
func (s *CreateTableStmt) Span() lexer.Span { return s.span }

// SetSpan updates the statement span.
func (s *CreateTableStmt) SetSpan(span lexer.Span) { s.span = span }

func (*CreateTableStmt) stmtNode() {}

// NewCreateTableStmt constructs an empty CREATE TABLE node.
func NewCreateTableStmt(span lexer.Span) *CreateTableStmt {
	return &CreateTableStmt{span: span}
}

// DataType is a column type such as INT(11) UNSIGNED or VARCHAR(255)
// CHARACTER SET utf8. Name is upper-cased; Args holds the numeric length
// arguments and Values the members of ENUM and SET.
type DataType struct {
	Name     string
	Args     []string
	Values   []string
	Unsigned bool
	Zerofill bool
	Charset  string
	Collate  string
	span     lexer.Span
}

// Span returns the type span.
func (t *DataType) Span() lexer.Span { return t.span }

// SetSpan updates the type span.
func (t *DataType) SetSpan(span lexer.Span) { t.span = span }

// NewDataType constructs a data type node.
func NewDataType(name string, span lexer.Span) *DataType {
	return &DataType{
		Name: name,
		span: span,
	}
}

// ColumnDef is one column of a CREATE TABLE definition list.
type ColumnDef struct {
	Name          *Ident
	Type          *DataType
	NotNull       bool
	Null          bool
	Default       Expr
	OnUpdate      Expr
	AutoIncrement bool
	PrimaryKey    bool
	Unique        bool
	Comment       *Literal
	References    *ForeignKeyRef
	span          lexer.Span
}

// Span returns the column definition span.
func (c *ColumnDef) Span() lexer.Span { return c.span }

// SetSpan updates the column definition span.
func (c *ColumnDef) SetSpan(span lexer.Span) { c.span = span }

// NewColumnDef constructs a column definition without attributes.
func NewColumnDef(name *Ident, typ *DataType, span lexer.Span) *ColumnDef {
	return &ColumnDef{
		Name: name,
		Type: typ,
		span: span,
	}
}

// ConstraintKind enumerates table-level constraints and indexes.
type ConstraintKind int

const (
	ConstraintPrimaryKey ConstraintKind = iota
	ConstraintUnique
	ConstraintIndex
	ConstraintFulltext
	ConstraintSpatial
	ConstraintForeignKey
	ConstraintCheck
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintPrimaryKey:
		return "PRIMARY KEY"
	case ConstraintUnique:
		return "UNIQUE KEY"
	case ConstraintIndex:
		return "KEY"
	case ConstraintFulltext:
		return "FULLTEXT KEY"
	case ConstraintSpatial:
		return "SPATIAL KEY"
	case ConstraintForeignKey:
		return "FOREIGN KEY"
	default:
		return "CHECK"
	}
}

// IndexColumn is a key part: name, name(10) or name DESC.
type IndexColumn struct {
	Name   *Ident
	Length string
	Desc   bool
	span   lexer.Span
}

// Span returns the key part span.
func (c *IndexColumn) Span() lexer.Span { return c.span }

// SetSpan updates the key part span.
func (c *IndexColumn) SetSpan(span lexer.Span) { c.span = span }

// TableConstraint is a table-level key, index or constraint.
type TableConstraint struct {
	Kind      ConstraintKind
	Name      *Ident // CONSTRAINT name
	IndexName *Ident
	Columns   []*IndexColumn
	Ref       *ForeignKeyRef
	Check     Expr
	span      lexer.Span
}

// Span returns the constraint span.
func (c *TableConstraint) Span() lexer.Span { return c.span }

// SetSpan updates the constraint span.
func (c *TableConstraint) SetSpan(span lexer.Span) { c.span = span }

// NewTableConstraint constructs a constraint of the given kind.
func NewTableConstraint(kind ConstraintKind, span lexer.Span) *TableConstraint {
	return &TableConstraint{
		Kind: kind,
		span: span,
	}
}

// ForeignKeyRef is REFERENCES t (cols) [ON DELETE action] [ON UPDATE action].
type ForeignKeyRef struct {
	Table    *TableName
	Columns  []*Ident
	OnDelete string
	OnUpdate string
	span     lexer.Span
}

// Span returns the reference span.
func (r *ForeignKeyRef) Span() lexer.Span { return r.span }

// SetSpan updates the reference span.
func (r *ForeignKeyRef) SetSpan(span lexer.Span) { r.span = span }

// TableOption is a trailing CREATE TABLE option such as ENGINE=InnoDB. Name
// is canonical and upper-cased (DEFAULT CHARSET and CHARACTER SET become
// CHARSET). IsString records whether Value was a quoted literal.
type TableOption struct {
	Name     string
	Value    string
	IsString bool
	span     lexer.Span
}

// Span returns the option span.
func (o *TableOption) Span() lexer.Span { return o.span }

// SetSpan updates the option span.
func (o *TableOption) SetSpan(span lexer.Span) { o.span = span }

// NewTableOption constructs a table option node.
func NewTableOption(name, value string, isString bool, span lexer.Span) *TableOption {
	return &TableOption{
		Name:     name,
		Value:    value,
		IsString: isString,
		span:     span,
	}
}
