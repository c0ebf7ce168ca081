// Package format prints syntax trees back as canonical SQL text.
package format

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode"

	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

type options struct {
	dialect lexer.Dialect
}

// Option configures Format.
type Option func(*options)

// WithDialect selects the quoting rules and reserved words used when
// printing. The default is MySQL.
func WithDialect(d lexer.Dialect) Option {
	return func(o *options) {
		o.dialect = d
	}
}

// Format renders node as SQL. A script prints one statement per line, each
// terminated by ';' or the terminator of the last DELIMITER line, with the
// comments found between statements. Comments inside a statement and
// executable comments are dropped; use Script to refuse those instead.
// Keywords are upper-cased, optional noise words are
// dropped and parentheses appear only where precedence requires them, so
// parsing the output with the same dialect yields a structurally identical
// tree.
func Format(node ast.Node, opts ...Option) string {
	cfg := options{dialect: lexer.MySQL()}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &printer{dialect: cfg.dialect}
	p.node(node)
	return p.b.String()
}

// CommentError reports a comment that formatting would lose.
type CommentError struct {
	Comment lexer.Comment
}

func (e *CommentError) Error() string {
	msg := "comment inside a statement cannot be preserved"
	if e.Comment.Executable {
		msg = "executable comment cannot be reformatted"
	}
	return fmt.Sprintf("%d:%d: %s", e.Comment.Span.Line, e.Comment.Span.Column, msg)
}

// Script formats a whole script like Format but fails with a *CommentError
// for the first comment that would not survive.
func Script(script *ast.Script, opts ...Option) (string, error) {
	if _, lost := splitComments(script); len(lost) > 0 {
		return "", &CommentError{Comment: lost[0]}
	}
	return Format(script, opts...), nil
}

// splitComments separates the comments lying between statements from the
// executable ones and those inside a statement. Both are in source order.
func splitComments(script *ast.Script) (kept, lost []lexer.Comment) {
	comments := slices.Clone(script.Comments)
	slices.SortFunc(comments, func(a, b lexer.Comment) int {
		return a.Span.Start - b.Span.Start
	})

	i := 0
	for _, c := range comments {
		for i < len(script.Stmts) && script.Stmts[i].Span().End <= c.Span.Start {
			i++
		}
		inside := i < len(script.Stmts) && script.Stmts[i].Span().Start <= c.Span.Start
		if c.Executable || inside {
			lost = append(lost, c)
			continue
		}
		kept = append(kept, c)
	}
	return kept, lost
}

// script prints the statements with the kept comments: a comment that
// follows a statement on its line stays there, any other goes on its own
// line before the next statement.
func (p *printer) script(s *ast.Script) {
	comments, _ := splitComments(s)
	terminator := ";"

	c := 0
	for i, stmt := range s.Stmts {
		for ; c < len(comments) && comments[c].Span.Start < stmt.Span().Start; c++ {
			p.write(comments[c].Text)
			p.write("\n")
		}

		if d, ok := stmt.(*ast.DelimiterStmt); ok {
			p.write("DELIMITER " + d.Delimiter)
			terminator = d.Delimiter
		} else {
			p.stmt(stmt)
			p.write(terminator)
		}

		next := math.MaxInt
		if i+1 < len(s.Stmts) {
			next = s.Stmts[i+1].Span().Start
		}
		for ; c < len(comments) && comments[c].Trailing && comments[c].Span.Start < next; c++ {
			p.write(" ")
			p.write(comments[c].Text)
		}
		p.write("\n")
	}

	for ; c < len(comments); c++ {
		p.write(comments[c].Text)
		p.write("\n")
	}
}

// contextualWords are unreserved words that some clause accepts as a
// modifier, so an identifier spelled that way is always quoted.
var contextualWords = map[string]bool{
	"QUICK":               true,
	"LOW_PRIORITY":        true,
	"HIGH_PRIORITY":       true,
	"DELAYED":             true,
	"IGNORE":              true,
	"STRAIGHT_JOIN":       true,
	"DISTINCTROW":         true,
	"SQL_CALC_FOUND_ROWS": true,
	"UNSIGNED":            true,
	"ZEROFILL":            true,
}

type printer struct {
	b       strings.Builder
	dialect lexer.Dialect
}

func (p *printer) write(s string) {
	p.b.WriteString(s)
}

// render prints with a scratch printer and returns the text.
func (p *printer) render(fn func(*printer)) string {
	sub := &printer{dialect: p.dialect}
	fn(sub)
	return sub.b.String()
}

func (p *printer) node(n ast.Node) {
	switch n := n.(type) {
	case nil:
	case *ast.Script:
		p.script(n)
	case ast.Stmt:
		p.stmt(n)
	case ast.Expr:
		p.expr(n)
	case ast.TableExpr:
		p.tableExpr(n)
	case *ast.Ident:
		p.ident(n)
	case *ast.SelectItem:
		p.selectItem(n)
	case *ast.OrderItem:
		p.orderItem(n)
	case *ast.Limit:
		p.limitBody(n)
	case *ast.Assignment:
		p.assignment(n)
	case *ast.WhenClause:
		p.when(n)
	case *ast.ColumnDef:
		p.columnDef(n)
	case *ast.DataType:
		p.dataType(n)
	case *ast.TableConstraint:
		p.constraint(n)
	case *ast.IndexColumn:
		p.indexColumn(n)
	case *ast.ForeignKeyRef:
		p.reference(n)
	case *ast.TableOption:
		p.tableOption(n)
	}
}

// Statements

func (p *printer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.SelectStmt:
		p.selectStmt(s)
	case *ast.UnionStmt:
		p.union(s)
	case *ast.InsertStmt:
		p.insert(s)
	case *ast.UpdateStmt:
		p.update(s)
	case *ast.DeleteStmt:
		p.delete(s)
	case *ast.CreateTableStmt:
		p.createTable(s)
	case *ast.DropTableStmt:
		p.dropTable(s)
	case *ast.UseStmt:
		p.write("USE ")
		p.ident(s.Database)
	case *ast.DelimiterStmt:
		p.write("DELIMITER " + s.Delimiter)
	case *ast.TransactionStmt:
		p.write(s.Kind.String())
		if s.Work {
			p.write(" WORK")
		}
	}
}

func (p *printer) query(q ast.Query) {
	switch q := q.(type) {
	case *ast.SelectStmt:
		p.selectStmt(q)
	case *ast.UnionStmt:
		p.union(q)
	}
}

func (p *printer) parenQuery(q ast.Query) {
	p.write("(")
	p.query(q)
	p.write(")")
}

func (p *printer) selectStmt(s *ast.SelectStmt) {
	p.write("SELECT")
	if s.Distinct {
		p.write(" DISTINCT")
	}
	if s.HighPriority {
		p.write(" HIGH_PRIORITY")
	}
	if s.StraightJoin {
		p.write(" STRAIGHT_JOIN")
	}
	if s.CalcFoundRows {
		p.write(" SQL_CALC_FOUND_ROWS")
	}

	for i, item := range s.Columns {
		if i == 0 {
			p.write(" ")
		} else {
			p.write(", ")
		}
		p.selectItem(item)
	}

	if s.From != nil {
		p.write(" FROM ")
		p.tableExpr(s.From)
	}
	if s.Where != nil {
		p.write(" WHERE ")
		p.expr(s.Where)
	}
	if len(s.GroupBy) > 0 {
		p.write(" GROUP BY ")
		p.exprList(s.GroupBy)
		if s.WithRollup {
			p.write(" WITH ROLLUP")
		}
	}
	if s.Having != nil {
		p.write(" HAVING ")
		p.expr(s.Having)
	}
	p.orderBy(s.OrderBy)
	p.limit(s.Limit)

	switch s.Lock {
	case ast.LockForUpdate:
		p.write(" FOR UPDATE")
	case ast.LockInShareMode:
		p.write(" LOCK IN SHARE MODE")
	}
}

func (p *printer) selectItem(item *ast.SelectItem) {
	p.expr(item.Expr)
	if item.Alias != nil {
		p.write(" AS ")
		p.ident(item.Alias)
	}
}

// union parenthesises an operand whenever printing it bare would attach
// its trailing clauses to the union or regroup the operands.
func (p *printer) union(u *ast.UnionStmt) {
	p.unionOperand(u.Left, hasTrailingClauses(u.Left))
	p.write(" UNION ")
	if u.All {
		p.write("ALL ")
	}
	_, nested := u.Right.(*ast.UnionStmt)
	p.unionOperand(u.Right, nested || hasTrailingClauses(u.Right))
	p.orderBy(u.OrderBy)
	p.limit(u.Limit)
}

func (p *printer) unionOperand(q ast.Query, paren bool) {
	if paren {
		p.parenQuery(q)
		return
	}
	p.query(q)
}

func hasTrailingClauses(q ast.Query) bool {
	switch q := q.(type) {
	case *ast.SelectStmt:
		return len(q.OrderBy) > 0 || q.Limit != nil || q.Lock != ast.LockNone
	case *ast.UnionStmt:
		return len(q.OrderBy) > 0 || q.Limit != nil
	}
	return false
}

func (p *printer) orderBy(items []*ast.OrderItem) {
	if len(items) == 0 {
		return
	}
	p.write(" ORDER BY ")
	for i, item := range items {
		if i > 0 {
			p.write(", ")
		}
		p.orderItem(item)
	}
}

func (p *printer) orderItem(item *ast.OrderItem) {
	p.expr(item.Expr)
	if item.Desc {
		p.write(" DESC")
	}
}

func (p *printer) limit(l *ast.Limit) {
	if l == nil {
		return
	}
	p.write(" ")
	p.limitBody(l)
}

func (p *printer) limitBody(l *ast.Limit) {
	p.write("LIMIT ")
	p.expr(l.Count)
	if l.Offset != nil {
		p.write(" OFFSET ")
		p.expr(l.Offset)
	}
}

func (p *printer) insert(s *ast.InsertStmt) {
	if s.Replace {
		p.write("REPLACE")
	} else {
		p.write("INSERT")
	}
	if s.Priority != "" {
		p.write(" " + strings.ToUpper(s.Priority))
	}
	if s.Ignore {
		p.write(" IGNORE")
	}

	p.write(" INTO ")
	p.tableName(s.Table)
	if len(s.Columns) > 0 {
		p.write(" (")
		p.identList(s.Columns)
		p.write(")")
	}

	switch {
	case s.Query != nil:
		p.write(" ")
		p.query(s.Query)
	case len(s.Set) > 0:
		p.write(" SET ")
		p.assignments(s.Set)
	default:
		p.write(" VALUES ")
		for i, row := range s.Rows {
			if i > 0 {
				p.write(", ")
			}
			p.write("(")
			p.exprList(row.Items)
			p.write(")")
		}
		if len(s.Rows) == 0 {
			p.write("()")
		}
	}

	if len(s.OnDuplicate) > 0 {
		p.write(" ON DUPLICATE KEY UPDATE ")
		p.assignments(s.OnDuplicate)
	}
}

func (p *printer) assignments(list []*ast.Assignment) {
	for i, a := range list {
		if i > 0 {
			p.write(", ")
		}
		p.assignment(a)
	}
}

func (p *printer) assignment(a *ast.Assignment) {
	p.expr(a.Column)
	p.write(" = ")
	p.expr(a.Value)
}

func (p *printer) update(s *ast.UpdateStmt) {
	p.write("UPDATE")
	if s.LowPriority {
		p.write(" LOW_PRIORITY")
	}
	if s.Ignore {
		p.write(" IGNORE")
	}
	p.write(" ")
	p.tableExpr(s.Table)
	p.write(" SET ")
	p.assignments(s.Set)
	if s.Where != nil {
		p.write(" WHERE ")
		p.expr(s.Where)
	}
	p.orderBy(s.OrderBy)
	p.limit(s.Limit)
}

func (p *printer) delete(s *ast.DeleteStmt) {
	p.write("DELETE")
	if s.LowPriority {
		p.write(" LOW_PRIORITY")
	}
	if s.Quick {
		p.write(" QUICK")
	}
	if s.Ignore {
		p.write(" IGNORE")
	}

	switch {
	case len(s.Targets) == 0:
		p.write(" FROM ")
		p.tableExpr(s.From)
	case s.Using != nil:
		p.write(" FROM ")
		p.tableNames(s.Targets)
		p.write(" USING ")
		p.tableExpr(s.Using)
	default:
		p.write(" ")
		p.tableNames(s.Targets)
		p.write(" FROM ")
		p.tableExpr(s.From)
	}

	if s.Where != nil {
		p.write(" WHERE ")
		p.expr(s.Where)
	}
	p.orderBy(s.OrderBy)
	p.limit(s.Limit)
}

func (p *printer) createTable(s *ast.CreateTableStmt) {
	p.write("CREATE ")
	if s.Temporary {
		p.write("TEMPORARY ")
	}
	p.write("TABLE ")
	if s.IfNotExists {
		p.write("IF NOT EXISTS ")
	}
	p.tableName(s.Table)

	if s.Like != nil {
		p.write(" LIKE ")
		p.tableName(s.Like)
		return
	}

	if len(s.Columns)+len(s.Constraints) > 0 {
		p.write(" (")
		for i, col := range s.Columns {
			if i > 0 {
				p.write(", ")
			}
			p.columnDef(col)
		}
		for i, c := range s.Constraints {
			if i > 0 || len(s.Columns) > 0 {
				p.write(", ")
			}
			p.constraint(c)
		}
		p.write(")")
	}

	for _, opt := range s.Options {
		p.write(" ")
		p.tableOption(opt)
	}

	if s.Select != nil {
		p.write(" AS ")
		p.query(s.Select)
	}
}

func (p *printer) columnDef(c *ast.ColumnDef) {
	p.ident(c.Name)
	p.write(" ")
	p.dataType(c.Type)

	if c.NotNull {
		p.write(" NOT NULL")
	}
	if c.Null {
		p.write(" NULL")
	}
	if c.Default != nil {
		p.write(" DEFAULT ")
		p.expr(c.Default)
	}
	if c.OnUpdate != nil {
		p.write(" ON UPDATE ")
		p.expr(c.OnUpdate)
	}
	if c.AutoIncrement {
		p.write(" AUTO_INCREMENT")
	}
	if c.Unique {
		p.write(" UNIQUE")
	}
	if c.PrimaryKey {
		p.write(" PRIMARY KEY")
	}
	if c.Comment != nil {
		p.write(" COMMENT ")
		p.stringLiteral(c.Comment.Value)
	}
	if c.References != nil {
		p.write(" ")
		p.reference(c.References)
	}
}

func (p *printer) dataType(t *ast.DataType) {
	p.write(t.Name)

	switch {
	case len(t.Values) > 0:
		p.write("(")
		for i, v := range t.Values {
			if i > 0 {
				p.write(", ")
			}
			p.stringLiteral(v)
		}
		p.write(")")
	case len(t.Args) > 0:
		p.write("(" + strings.Join(t.Args, ", ") + ")")
	}

	if t.Unsigned {
		p.write(" UNSIGNED")
	}
	if t.Zerofill {
		p.write(" ZEROFILL")
	}
	if t.Charset != "" {
		p.write(" CHARACTER SET ")
		p.nameValue(t.Charset)
	}
	if t.Collate != "" {
		p.write(" COLLATE ")
		p.nameValue(t.Collate)
	}
}

func (p *printer) constraint(c *ast.TableConstraint) {
	if c.Name != nil {
		p.write("CONSTRAINT ")
		p.ident(c.Name)
		p.write(" ")
	}

	if c.Kind == ast.ConstraintCheck {
		p.write("CHECK (")
		p.expr(c.Check)
		p.write(")")
		return
	}

	p.write(c.Kind.String())
	if c.IndexName != nil {
		p.write(" ")
		p.ident(c.IndexName)
	}
	p.write(" (")
	for i, col := range c.Columns {
		if i > 0 {
			p.write(", ")
		}
		p.indexColumn(col)
	}
	p.write(")")

	if c.Ref != nil {
		p.write(" ")
		p.reference(c.Ref)
	}
}

func (p *printer) indexColumn(c *ast.IndexColumn) {
	p.ident(c.Name)
	if c.Length != "" {
		p.write("(" + c.Length + ")")
	}
	if c.Desc {
		p.write(" DESC")
	}
}

func (p *printer) reference(r *ast.ForeignKeyRef) {
	p.write("REFERENCES ")
	p.tableName(r.Table)
	p.write(" (")
	p.identList(r.Columns)
	p.write(")")
	if r.OnDelete != "" {
		p.write(" ON DELETE " + r.OnDelete)
	}
	if r.OnUpdate != "" {
		p.write(" ON UPDATE " + r.OnUpdate)
	}
}

func (p *printer) tableOption(o *ast.TableOption) {
	p.write(o.Name + "=")
	switch {
	case o.IsString:
		p.stringLiteral(o.Value)
	case o.Value == "DEFAULT", isDigits(o.Value):
		p.write(o.Value)
	default:
		p.write(p.quoteIdent(o.Value, false))
	}
}

func (p *printer) dropTable(s *ast.DropTableStmt) {
	p.write("DROP ")
	if s.Temporary {
		p.write("TEMPORARY ")
	}
	p.write("TABLE ")
	if s.IfExists {
		p.write("IF EXISTS ")
	}
	p.tableNames(s.Tables)
	if s.Behavior != "" {
		p.write(" " + s.Behavior)
	}
}

// Table expressions

// tableExpr relies on joins being left-deep: the only join that can appear
// as a right operand is the one under a comma, and JOIN binds tighter than
// the comma, so no parentheses are added.
func (p *printer) tableExpr(t ast.TableExpr) {
	switch t := t.(type) {
	case *ast.TableName:
		p.tableName(t)
	case *ast.DerivedTable:
		p.parenQuery(t.Query)
		p.write(" AS ")
		p.ident(t.Alias)
	case *ast.JoinExpr:
		p.tableExpr(t.Left)
		if t.Kind == ast.JoinComma {
			p.write(", ")
		} else {
			p.write(" " + t.Kind.String() + " ")
		}
		p.tableExpr(t.Right)
		if t.On != nil {
			p.write(" ON ")
			p.expr(t.On)
		}
		if len(t.Using) > 0 {
			p.write(" USING (")
			p.identList(t.Using)
			p.write(")")
		}
	case *ast.ParenTableExpr:
		p.write("(")
		p.tableExpr(t.Expr)
		p.write(")")
	}
}

func (p *printer) tableName(t *ast.TableName) {
	if t.Schema != nil {
		p.ident(t.Schema)
		p.write(".")
	}
	p.ident(t.Name)
	if t.Alias != nil {
		p.write(" AS ")
		p.ident(t.Alias)
	}
}

func (p *printer) tableNames(list []*ast.TableName) {
	for i, t := range list {
		if i > 0 {
			p.write(", ")
		}
		p.tableName(t)
	}
}

// Names and literals

func (p *printer) ident(id *ast.Ident) {
	p.write(p.quoteIdent(id.Name, id.Quoted))
}

func (p *printer) identList(ids []*ast.Ident) {
	for i, id := range ids {
		if i > 0 {
			p.write(", ")
		}
		p.ident(id)
	}
}

// quoteIdent returns name as written in SQL. Names that were quoted in the
// source, reserved words and anything the lexer would not read back as one
// word are quoted.
func (p *printer) quoteIdent(name string, quoted bool) string {
	if !quoted && isPlainWord(name) && !p.dialect.IsKeyword(name) && !contextualWords[strings.ToUpper(name)] {
		return name
	}

	q := "`"
	if p.dialect.AnsiQuotes {
		q = `"`
	}
	return q + strings.ReplaceAll(name, q, q+q) + q
}

// nameValue prints a charset or collation name.
func (p *printer) nameValue(name string) {
	if isPlainWord(name) {
		p.write(name)
		return
	}
	p.stringLiteral(name)
}

func (p *printer) stringLiteral(s string) {
	if p.dialect.BackslashEscapes {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	p.write("'" + strings.ReplaceAll(s, "'", "''") + "'")
}

func isPlainWord(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r), r == '_', r == '$':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isVariableName reports whether an @name needs no quotes.
func isVariableName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != '_' && r != '$' && r != '.' && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

// Expressions

// precedence reports how tightly e binds when printed bare.
func precedence(e ast.Expr) ast.Precedence {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		return e.Op.Precedence()
	case *ast.UnaryExpr:
		return e.Op.Precedence()
	case *ast.InExpr, *ast.BetweenExpr, *ast.LikeExpr, *ast.IsExpr:
		return ast.PrecCompare
	default:
		return ast.PrecPostfix
	}
}

// operand prints e, parenthesised when it binds looser than floor.
func (p *printer) operand(e ast.Expr, floor ast.Precedence) {
	if precedence(e) < floor {
		p.write("(")
		p.expr(e)
		p.write(")")
		return
	}
	p.expr(e)
}

func (p *printer) exprList(list []ast.Expr) {
	for i, e := range list {
		if i > 0 {
			p.write(", ")
		}
		p.expr(e)
	}
}

func (p *printer) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		prec := e.Op.Precedence()
		p.operand(e.Left, prec)
		p.write(" " + e.Op.String() + " ")
		p.operand(e.Right, prec+1)

	case *ast.UnaryExpr:
		if e.Op == ast.OpNot {
			p.write("NOT ")
			p.operand(e.Operand, ast.PrecNot)
			return
		}
		if e.Op == ast.OpBinary {
			p.write("BINARY ")
			p.operand(e.Operand, ast.PrecUnary)
			return
		}
		p.write(e.Op.String())
		text := p.render(func(sub *printer) { sub.operand(e.Operand, ast.PrecUnary) })
		// "- -a" must not collapse into a comment.
		if strings.HasPrefix(text, "-") || strings.HasPrefix(text, "+") {
			p.write(" ")
		}
		p.write(text)

	case *ast.Literal:
		p.literal(e)

	case *ast.ColumnRef:
		for i, part := range e.Parts {
			if i > 0 {
				p.write(".")
			}
			p.ident(part)
		}

	case *ast.StarExpr:
		for _, part := range e.Qualifier {
			p.ident(part)
			p.write(".")
		}
		p.write("*")

	case *ast.FuncCall:
		if e.Schema != nil {
			p.ident(e.Schema)
			p.write(".")
		}
		if e.Name.Quoted {
			p.ident(e.Name)
		} else {
			p.write(e.Name.Name)
		}
		p.write("(")
		switch {
		case e.Star:
			p.write("*")
		case e.Distinct:
			p.write("DISTINCT ")
			p.exprList(e.Args)
		default:
			p.exprList(e.Args)
		}
		p.write(")")

	case *ast.SubqueryExpr:
		p.parenQuery(e.Query)

	case *ast.ParamExpr:
		p.param(e)

	case *ast.InExpr:
		p.operand(e.Expr, ast.PrecCompare)
		if e.Not {
			p.write(" NOT")
		}
		p.write(" IN ")
		if e.Query != nil {
			p.parenQuery(e.Query)
			return
		}
		p.write("(")
		p.exprList(e.List)
		p.write(")")

	case *ast.BetweenExpr:
		p.operand(e.Expr, ast.PrecCompare)
		if e.Not {
			p.write(" NOT")
		}
		p.write(" BETWEEN ")
		p.operand(e.Low, ast.PrecCompare+1)
		p.write(" AND ")
		p.operand(e.High, ast.PrecCompare+1)

	case *ast.LikeExpr:
		p.operand(e.Expr, ast.PrecCompare)
		if e.Not {
			p.write(" NOT")
		}
		if e.Regexp {
			p.write(" REGEXP ")
		} else {
			p.write(" LIKE ")
		}
		p.operand(e.Pattern, ast.PrecCompare+1)
		if e.Escape != nil {
			p.write(" ESCAPE ")
			p.operand(e.Escape, ast.PrecCompare+1)
		}

	case *ast.IsExpr:
		p.operand(e.Expr, ast.PrecCompare)
		p.write(" IS ")
		if e.Not {
			p.write("NOT ")
		}
		p.write(e.Value.String())

	case *ast.ExistsExpr:
		p.write("EXISTS ")
		p.parenQuery(e.Query)

	case *ast.CaseExpr:
		p.write("CASE")
		if e.Operand != nil {
			p.write(" ")
			p.expr(e.Operand)
		}
		for _, w := range e.Whens {
			p.write(" ")
			p.when(w)
		}
		if e.Else != nil {
			p.write(" ELSE ")
			p.expr(e.Else)
		}
		p.write(" END")

	case *ast.CastExpr:
		if e.Convert {
			p.write("CONVERT(")
			p.expr(e.Expr)
			p.write(", ")
		} else {
			p.write("CAST(")
			p.expr(e.Expr)
			p.write(" AS ")
		}
		p.dataType(e.Type)
		p.write(")")

	case *ast.RowExpr:
		if e.Row {
			p.write("ROW")
		}
		p.write("(")
		p.exprList(e.Items)
		p.write(")")

	case *ast.DefaultExpr:
		p.write("DEFAULT")

	case *ast.CollateExpr:
		p.operand(e.Expr, ast.PrecPostfix)
		p.write(" COLLATE ")
		p.nameValue(e.Collation)

	case *ast.IntervalExpr:
		p.write("INTERVAL ")
		// A leading '(' would read back as the INTERVAL() function.
		text := p.render(func(sub *printer) { sub.expr(e.Value) })
		if strings.HasPrefix(text, "(") {
			text = "(" + text + ")"
		}
		p.write(text)
		p.write(" " + e.Unit)
	}
}

func (p *printer) when(w *ast.WhenClause) {
	p.write("WHEN ")
	p.expr(w.Cond)
	p.write(" THEN ")
	p.expr(w.Result)
}

func (p *printer) literal(l *ast.Literal) {
	if l.Introducer != "" {
		p.write(l.Introducer)
		if l.Kind != ast.LitString {
			p.write(" ")
		}
	}
	switch l.Kind {
	case ast.LitString:
		p.stringLiteral(l.Value)
	default:
		p.write(l.Value)
	}
}

func (p *printer) param(e *ast.ParamExpr) {
	switch e.Kind {
	case ast.ParamPositional:
		p.write("?")
	case ast.ParamSysVar:
		p.write("@@" + e.Name)
	default:
		if isVariableName(e.Name) {
			p.write("@" + e.Name)
			return
		}
		p.write("@`" + strings.ReplaceAll(e.Name, "`", "``") + "`")
	}
}
