package ast

// Walk traverses the AST starting from node, calling fn for each node.
// If fn returns false, Walk stops traversing that branch.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, child := range Children(node) {
		Walk(child, fn)
	}
}

// Children returns the direct children of node in source order. Nil
// children are omitted.
func Children(node Node) []Node {
	var c children

	switch n := node.(type) {
	case *Script:
		for _, stmt := range n.Stmts {
			c.add(stmt)
		}

	case *SelectStmt:
		for _, item := range n.Columns {
			c.addSelectItem(item)
		}
		c.add(n.From)
		c.add(n.Where)
		for _, e := range n.GroupBy {
			c.add(e)
		}
		c.add(n.Having)
		c.addOrder(n.OrderBy)
		c.addLimit(n.Limit)

	case *SelectItem:
		c.add(n.Expr)
		c.addIdent(n.Alias)

	case *OrderItem:
		c.add(n.Expr)

	case *Limit:
		// LIMIT a, b lists the offset first.
		if n.Offset != nil && n.Count != nil && n.Offset.Span().Start < n.Count.Span().Start {
			c.add(n.Offset)
			c.add(n.Count)
		} else {
			c.add(n.Count)
			c.add(n.Offset)
		}

	case *UnionStmt:
		c.add(n.Left)
		c.add(n.Right)
		c.addOrder(n.OrderBy)
		c.addLimit(n.Limit)

	case *InsertStmt:
		c.addTableName(n.Table)
		for _, col := range n.Columns {
			c.addIdent(col)
		}
		for _, row := range n.Rows {
			if row != nil {
				c.add(row)
			}
		}
		c.add(n.Query)
		c.addAssignments(n.Set)
		c.addAssignments(n.OnDuplicate)

	case *Assignment:
		if n.Column != nil {
			c.add(n.Column)
		}
		c.add(n.Value)

	case *UpdateStmt:
		c.add(n.Table)
		c.addAssignments(n.Set)
		c.add(n.Where)
		c.addOrder(n.OrderBy)
		c.addLimit(n.Limit)

	case *DeleteStmt:
		for _, t := range n.Targets {
			c.addTableName(t)
		}
		c.add(n.From)
		c.add(n.Using)
		c.add(n.Where)
		c.addOrder(n.OrderBy)
		c.addLimit(n.Limit)

	case *CreateTableStmt:
		c.addTableName(n.Table)
		for _, col := range n.Columns {
			if col != nil {
				c.add(col)
			}
		}
		for _, con := range n.Constraints {
			if con != nil {
				c.add(con)
			}
		}
		for _, opt := range n.Options {
			if opt != nil {
				c.add(opt)
			}
		}
		c.addTableName(n.Like)
		c.add(n.Select)

	case *ColumnDef:
		c.addIdent(n.Name)
		if n.Type != nil {
			c.add(n.Type)
		}
		c.add(n.Default)
		c.add(n.OnUpdate)
		if n.Comment != nil {
			c.add(n.Comment)
		}
		if n.References != nil {
			c.add(n.References)
		}

	case *TableConstraint:
		c.addIdent(n.Name)
		c.addIdent(n.IndexName)
		for _, col := range n.Columns {
			if col != nil {
				c.add(col)
			}
		}
		if n.Ref != nil {
			c.add(n.Ref)
		}
		c.add(n.Check)

	case *IndexColumn:
		c.addIdent(n.Name)

	case *ForeignKeyRef:
		c.addTableName(n.Table)
		for _, col := range n.Columns {
			c.addIdent(col)
		}

	case *DropTableStmt:
		for _, t := range n.Tables {
			c.addTableName(t)
		}

	case *UseStmt:
		c.addIdent(n.Database)

	case *BinaryExpr:
		c.add(n.Left)
		c.add(n.Right)

	case *UnaryExpr:
		c.add(n.Operand)

	case *ColumnRef:
		for _, part := range n.Parts {
			c.addIdent(part)
		}

	case *StarExpr:
		for _, part := range n.Qualifier {
			c.addIdent(part)
		}

	case *FuncCall:
		c.addIdent(n.Schema)
		c.addIdent(n.Name)
		for _, arg := range n.Args {
			c.add(arg)
		}

	case *SubqueryExpr:
		c.add(n.Query)

	case *ExistsExpr:
		c.add(n.Query)

	case *InExpr:
		c.add(n.Expr)
		for _, e := range n.List {
			c.add(e)
		}
		c.add(n.Query)

	case *BetweenExpr:
		c.add(n.Expr)
		c.add(n.Low)
		c.add(n.High)

	case *LikeExpr:
		c.add(n.Expr)
		c.add(n.Pattern)
		c.add(n.Escape)

	case *IsExpr:
		c.add(n.Expr)

	case *CaseExpr:
		c.add(n.Operand)
		for _, w := range n.Whens {
			if w != nil {
				c.add(w)
			}
		}
		c.add(n.Else)

	case *WhenClause:
		c.add(n.Cond)
		c.add(n.Result)

	case *CollateExpr:
		c.add(n.Expr)

	case *IntervalExpr:
		c.add(n.Value)

	case *CastExpr:
		c.add(n.Expr)
		if n.Type != nil {
			c.add(n.Type)
		}

	case *RowExpr:
		for _, item := range n.Items {
			c.add(item)
		}

	case *TableName:
		c.addIdent(n.Schema)
		c.addIdent(n.Name)
		c.addIdent(n.Alias)

	case *DerivedTable:
		c.add(n.Query)
		c.addIdent(n.Alias)

	case *JoinExpr:
		c.add(n.Left)
		c.add(n.Right)
		c.add(n.On)
		for _, col := range n.Using {
			c.addIdent(col)
		}

	case *ParenTableExpr:
		c.add(n.Expr)

	case *Ident, *Literal, *ParamExpr, *DefaultExpr, *DataType, *TableOption, *TransactionStmt, *DelimiterStmt:
		// No children to traverse
	}

	return c.nodes
}

type children struct {
	nodes []Node
}

// add appends n unless it is a nil interface. Typed nil pointers are
// filtered by the typed helpers below.
func (c *children) add(n Node) {
	if n == nil {
		return
	}
	c.nodes = append(c.nodes, n)
}

func (c *children) addIdent(id *Ident) {
	if id != nil {
		c.nodes = append(c.nodes, id)
	}
}

func (c *children) addTableName(t *TableName) {
	if t != nil {
		c.nodes = append(c.nodes, t)
	}
}

func (c *children) addSelectItem(item *SelectItem) {
	if item != nil {
		c.nodes = append(c.nodes, item)
	}
}

func (c *children) addLimit(l *Limit) {
	if l != nil {
		c.nodes = append(c.nodes, l)
	}
}

func (c *children) addOrder(items []*OrderItem) {
	for _, item := range items {
		if item != nil {
			c.nodes = append(c.nodes, item)
		}
	}
}

func (c *children) addAssignments(list []*Assignment) {
	for _, a := range list {
		if a != nil {
			c.nodes = append(c.nodes, a)
		}
	}
}
