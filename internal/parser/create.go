package parser

import (
	"strings"

	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/lexer"
)

// tableOptionNames are the CREATE TABLE options written as NAME [=] value.
// CHARSET and COLLATE have their own spellings and are handled separately.
var tableOptionNames = map[string]bool{
	"ENGINE":           true,
	"AUTO_INCREMENT":   true,
	"COMMENT":          true,
	"ROW_FORMAT":       true,
	"AVG_ROW_LENGTH":   true,
	"MAX_ROWS":         true,
	"MIN_ROWS":         true,
	"PACK_KEYS":        true,
	"CHECKSUM":         true,
	"KEY_BLOCK_SIZE":   true,
	"DELAY_KEY_WRITE":  true,
	"STATS_PERSISTENT": true,
	"CONNECTION":       true,
}

// parseCreate parses CREATE [TEMPORARY] TABLE [IF NOT EXISTS] with curTok on
// CREATE.
func (p *Parser) parseCreate() ast.Stmt {
	start := p.curTok.Span
	stmt := ast.NewCreateTableStmt(start)

	stmt.Temporary = p.acceptPeekWord("TEMPORARY")
	if !p.expect(lexer.TABLE) {
		return nil
	}

	if p.acceptPeek(lexer.IF) {
		if !p.expect(lexer.NOT) || !p.expect(lexer.EXISTS) {
			return nil
		}
		stmt.IfNotExists = true
	}

	p.nextToken()
	stmt.Table = p.parseTableName()
	if stmt.Table == nil {
		return nil
	}

	switch {
	case p.acceptPeek(lexer.LIKE):
		p.nextToken()
		stmt.Like = p.parseTableName()
		if stmt.Like == nil {
			return nil
		}
	case p.peekIs(lexer.LPAREN) && p.peekTokenAt(1).Type == lexer.LIKE:
		p.nextToken()
		p.nextToken()
		p.nextToken()
		stmt.Like = p.parseTableName()
		if stmt.Like == nil || !p.expect(lexer.RPAREN) {
			return nil
		}
	default:
		if !p.parseCreateBody(stmt) {
			return nil
		}
	}

	stmt.SetSpan(mergeSpan(start, p.curTok.Span))
	return stmt
}

// parseCreateBody parses [(definitions)] [options] [[AS] query].
func (p *Parser) parseCreateBody(stmt *ast.CreateTableStmt) bool {
	hasDefinitions := false

	if p.peekIs(lexer.LPAREN) {
		p.nextToken()

		if p.parenQueryAhead() {
			stmt.Select = p.parseQuery()
			return stmt.Select != nil
		}

		p.nextToken()
		_, ok := parseDelimited(p, delimitedConfig{Closing: lexer.RPAREN, What: "column definition"}, func(int) (bool, bool) {
			ok := p.parseTableElement(stmt)
			return ok, ok
		})
		if !ok {
			return false
		}
		hasDefinitions = true
	}

	if !p.parseTableOptions(stmt) {
		return false
	}

	switch {
	case p.acceptPeek(lexer.AS):
		if !p.peekIs(lexer.SELECT) && !p.peekIs(lexer.LPAREN) {
			p.reportExpected(describeType(lexer.SELECT), p.peekTok)
			return false
		}
		fallthrough
	case p.peekIs(lexer.SELECT), p.peekIs(lexer.LPAREN):
		p.nextToken()
		stmt.Select = p.parseQuery()
		return stmt.Select != nil
	}

	if !hasDefinitions {
		p.reportExpected("'(', LIKE or AS", p.peekTok)
		return false
	}
	return true
}

// parseTableElement parses one column definition or table constraint and
// appends it to stmt.
func (p *Parser) parseTableElement(stmt *ast.CreateTableStmt) bool {
	switch p.curTok.Type {
	case lexer.CONSTRAINT, lexer.PRIMARY, lexer.UNIQUE, lexer.KEY, lexer.INDEX,
		lexer.FULLTEXT, lexer.SPATIAL, lexer.FOREIGN, lexer.CHECK:
		c := p.parseTableConstraint()
		if c == nil {
			return false
		}
		stmt.Constraints = append(stmt.Constraints, c)
		return true
	}

	col := p.parseColumnDef()
	if col == nil {
		return false
	}
	stmt.Columns = append(stmt.Columns, col)
	return true
}

func (p *Parser) parseTableConstraint() *ast.TableConstraint {
	start := p.curTok.Span

	var name *ast.Ident
	if p.curIs(lexer.CONSTRAINT) {
		if p.peekIs(lexer.IDENT) {
			p.nextToken()
			name = identFromToken(p.curTok)
		}
		p.nextToken()
		switch p.curTok.Type {
		case lexer.PRIMARY, lexer.UNIQUE, lexer.FOREIGN, lexer.CHECK:
		default:
			p.reportExpected("PRIMARY KEY, UNIQUE, FOREIGN KEY or CHECK", p.curTok)
			return nil
		}
	}

	var c *ast.TableConstraint
	switch p.curTok.Type {
	case lexer.PRIMARY:
		if !p.expect(lexer.KEY) {
			return nil
		}
		c = ast.NewTableConstraint(ast.ConstraintPrimaryKey, start)
	case lexer.UNIQUE:
		if !p.acceptPeek(lexer.KEY) {
			p.acceptPeek(lexer.INDEX)
		}
		c = ast.NewTableConstraint(ast.ConstraintUnique, start)
	case lexer.KEY, lexer.INDEX:
		c = ast.NewTableConstraint(ast.ConstraintIndex, start)
	case lexer.FULLTEXT, lexer.SPATIAL:
		kind := ast.ConstraintFulltext
		if p.curIs(lexer.SPATIAL) {
			kind = ast.ConstraintSpatial
		}
		if !p.acceptPeek(lexer.KEY) {
			p.acceptPeek(lexer.INDEX)
		}
		c = ast.NewTableConstraint(kind, start)
	case lexer.FOREIGN:
		if !p.expect(lexer.KEY) {
			return nil
		}
		c = ast.NewTableConstraint(ast.ConstraintForeignKey, start)
	case lexer.CHECK:
		c = ast.NewTableConstraint(ast.ConstraintCheck, start)
		c.Name = name
		if !p.expect(lexer.LPAREN) {
			return nil
		}
		p.nextToken()
		c.Check = p.parseExpr()
		if c.Check == nil || !p.expect(lexer.RPAREN) {
			return nil
		}
		c.SetSpan(mergeSpan(start, p.curTok.Span))
		return c
	}
	c.Name = name

	if p.acceptPeek(lexer.IDENT) {
		c.IndexName = identFromToken(p.curTok)
	}

	columns, ok := p.parseIndexColumns()
	if !ok {
		return nil
	}
	c.Columns = columns

	if c.Kind == ast.ConstraintForeignKey {
		if !p.expect(lexer.REFERENCES) {
			return nil
		}
		c.Ref = p.parseReference()
		if c.Ref == nil {
			return nil
		}
	}

	c.SetSpan(mergeSpan(start, p.curTok.Span))
	return c
}

// parseIndexColumns parses (col [(len)] [ASC|DESC], ...) [USING BTREE|HASH]
// starting before the '('. The index type is accepted and dropped.
func (p *Parser) parseIndexColumns() ([]*ast.IndexColumn, bool) {
	if !p.expect(lexer.LPAREN) {
		return nil, false
	}
	p.nextToken()

	res, ok := parseDelimited(p, delimitedConfig{Closing: lexer.RPAREN, What: "column name"}, func(int) (*ast.IndexColumn, bool) {
		name := p.parseIdent()
		if name == nil {
			return nil, false
		}
		col := &ast.IndexColumn{Name: name}

		if p.acceptPeek(lexer.LPAREN) {
			if !p.expect(lexer.INT) {
				return nil, false
			}
			col.Length = p.curTok.Value
			if !p.expect(lexer.RPAREN) {
				return nil, false
			}
		}

		col.Desc = p.acceptPeek(lexer.DESC)
		if !col.Desc {
			p.acceptPeek(lexer.ASC)
		}

		col.SetSpan(mergeSpan(name.Span(), p.curTok.Span))
		return col, true
	})
	if !ok {
		return nil, false
	}

	if p.peekIs(lexer.USING) && (p.peekTokenAt(1).IsWord("BTREE") || p.peekTokenAt(1).IsWord("HASH")) {
		p.nextToken()
		p.nextToken()
	}

	return res.Items, true
}

// parseReference parses REFERENCES t (cols) [ON DELETE action] [ON UPDATE
// action] with curTok on REFERENCES.
func (p *Parser) parseReference() *ast.ForeignKeyRef {
	start := p.curTok.Span

	p.nextToken()
	table := p.parseTableName()
	if table == nil {
		return nil
	}

	if !p.expect(lexer.LPAREN) {
		return nil
	}
	p.nextToken()

	res, ok := parseDelimited(p, delimitedConfig{Closing: lexer.RPAREN, What: "column name"}, func(int) (*ast.Ident, bool) {
		id := p.parseIdent()
		return id, id != nil
	})
	if !ok {
		return nil
	}

	ref := &ast.ForeignKeyRef{Table: table, Columns: res.Items}

	for p.peekIs(lexer.ON) {
		next := p.peekTokenAt(1).Type
		if next != lexer.DELETE && next != lexer.UPDATE {
			break
		}
		p.nextToken()
		p.nextToken()

		action, ok := p.parseReferenceAction()
		if !ok {
			return nil
		}
		if next == lexer.DELETE {
			ref.OnDelete = action
		} else {
			ref.OnUpdate = action
		}
	}

	ref.SetSpan(mergeSpan(start, p.curTok.Span))
	return ref
}

func (p *Parser) parseReferenceAction() (string, bool) {
	switch {
	case p.acceptPeek(lexer.RESTRICT):
		return "RESTRICT", true
	case p.acceptPeek(lexer.CASCADE):
		return "CASCADE", true
	case p.acceptPeek(lexer.SET):
		if p.acceptPeek(lexer.NULL) {
			return "SET NULL", true
		}
		if p.acceptPeek(lexer.DEFAULT) {
			return "SET DEFAULT", true
		}
		p.reportExpected("NULL or DEFAULT", p.peekTok)
		return "", false
	case p.acceptPeekWord("NO"):
		if !p.expectWord("ACTION") {
			return "", false
		}
		return "NO ACTION", true
	}

	p.reportExpected("RESTRICT, CASCADE, SET NULL, SET DEFAULT or NO ACTION", p.peekTok)
	return "", false
}

// parseColumnDef parses name type [attribute ...] with curTok on the name.
func (p *Parser) parseColumnDef() *ast.ColumnDef {
	name := p.parseIdent()
	if name == nil {
		return nil
	}

	p.nextToken()
	typ := p.parseDataType()
	if typ == nil {
		return nil
	}

	col := ast.NewColumnDef(name, typ, name.Span())

	for {
		switch {
		case p.peekIs(lexer.NOT) && p.peekTokenAt(1).Type == lexer.NULL:
			p.nextToken()
			p.nextToken()
			col.NotNull = true
		case p.acceptPeek(lexer.NULL):
			col.Null = true
		case p.acceptPeek(lexer.DEFAULT):
			p.nextToken()
			col.Default = p.parseExpr()
			if col.Default == nil {
				return nil
			}
			// DEFAULT 'a' COLLATE x collates the column, not the value.
			if c, ok := col.Default.(*ast.CollateExpr); ok && !p.curIs(lexer.RPAREN) {
				col.Default = c.Expr
				typ.Collate = c.Collation
			}
		case p.peekIs(lexer.ON) && p.peekTokenAt(1).Type == lexer.UPDATE:
			p.nextToken()
			p.nextToken()
			p.nextToken()
			col.OnUpdate = p.parseExpr()
			if col.OnUpdate == nil {
				return nil
			}
		case p.acceptPeekWord("AUTO_INCREMENT"):
			col.AutoIncrement = true
		case p.acceptPeek(lexer.PRIMARY):
			if !p.expect(lexer.KEY) {
				return nil
			}
			col.PrimaryKey = true
		case p.acceptPeek(lexer.KEY):
			col.PrimaryKey = true
		case p.acceptPeek(lexer.UNIQUE):
			p.acceptPeek(lexer.KEY)
			col.Unique = true
		case p.acceptPeekWord("COMMENT"):
			p.nextToken()
			col.Comment = p.parseStringValue()
			if col.Comment == nil {
				return nil
			}
		case p.acceptPeek(lexer.COLLATE):
			collation, ok := p.parseNameValue()
			if !ok {
				return nil
			}
			typ.Collate = collation
		case p.acceptPeek(lexer.REFERENCES):
			col.References = p.parseReference()
			if col.References == nil {
				return nil
			}
		default:
			col.SetSpan(mergeSpan(name.Span(), p.curTok.Span))
			return col
		}
	}
}

// isTableOptionStart reports whether tok begins a table option; next and
// after are the two tokens following it.
func isTableOptionStart(tok, next, after lexer.Token) bool {
	if tok.Type == lexer.DEFAULT {
		return next.Type == lexer.CHARACTER && after.Type == lexer.SET ||
			next.Type == lexer.COLLATE || next.IsWord("CHARSET")
	}
	switch {
	case tok.Type == lexer.CHARACTER:
		return next.Type == lexer.SET
	case tok.Type == lexer.COLLATE, tok.IsWord("CHARSET"):
		return true
	case tok.Type == lexer.IDENT && !tok.Quoted():
		return tableOptionNames[strings.ToUpper(tok.Value)]
	}
	return false
}

// parseTableOptions parses trailing options, optionally comma separated.
func (p *Parser) parseTableOptions(stmt *ast.CreateTableStmt) bool {
	for {
		if p.peekIs(lexer.COMMA) && isTableOptionStart(p.peekTokenAt(1), p.peekTokenAt(2), p.peekTokenAt(3)) {
			p.nextToken()
		}
		if !isTableOptionStart(p.peekTok, p.peekTokenAt(1), p.peekTokenAt(2)) {
			return true
		}

		p.nextToken()
		start := p.curTok.Span
		if p.curIs(lexer.DEFAULT) {
			p.nextToken()
		}

		var name string
		switch {
		case p.curIs(lexer.CHARACTER):
			p.nextToken() // SET
			name = "CHARSET"
		case p.curIs(lexer.COLLATE):
			name = "COLLATE"
		default:
			name = strings.ToUpper(p.curTok.Value)
		}

		p.acceptPeek(lexer.EQ)

		var value string
		var isString bool
		switch {
		case p.peekIs(lexer.IDENT), p.peekIs(lexer.INT), p.peekIs(lexer.DEFAULT):
			p.nextToken()
			value = p.curTok.Value
		case p.peekIs(lexer.STRING):
			p.nextToken()
			value, isString = p.curTok.Value, true
		default:
			p.reportExpected("option value", p.peekTok)
			return false
		}

		stmt.Options = append(stmt.Options, ast.NewTableOption(name, value, isString, mergeSpan(start, p.curTok.Span)))
	}
}
