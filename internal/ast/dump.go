package ast

import (
	"strconv"
	"strings"
)

// Dump renders node as an S-expression without spans, e.g. 1 + 2 * 3
// becomes (+ 1 (* 2 3)). Two trees are structurally identical exactly when
// their dumps are equal.
func Dump(node Node) string {
	if node == nil {
		return "<nil>"
	}

	switch n := node.(type) {
	case *Script:
		stmts := make([]string, len(n.Stmts))
		for i, stmt := range n.Stmts {
			stmts[i] = Dump(stmt)
		}
		return strings.Join(stmts, "\n")

	case *SelectStmt:
		return dumpSelect(n)

	case *SelectItem:
		if n.Alias != nil {
			return sexpr("as", Dump(n.Expr), Dump(n.Alias))
		}
		return Dump(n.Expr)

	case *OrderItem:
		if n.Desc {
			return sexpr("desc", Dump(n.Expr))
		}
		return Dump(n.Expr)

	case *Limit:
		return sexpr("limit", Dump(n.Count), optional(n.Offset))

	case *UnionStmt:
		head := "union"
		if n.All {
			head = "union-all"
		}
		return sexpr(head, Dump(n.Left), Dump(n.Right), dumpOrderBy(n.OrderBy), optionalLimit(n.Limit))

	case *InsertStmt:
		return dumpInsert(n)

	case *Assignment:
		return sexpr("=", Dump(n.Column), Dump(n.Value))

	case *UpdateStmt:
		return sexpr("update",
			flag(n.LowPriority, "low-priority"),
			flag(n.Ignore, "ignore"),
			Dump(n.Table),
			sexpr("set", dumpAssignments(n.Set)...),
			clause("where", n.Where),
			dumpOrderBy(n.OrderBy),
			optionalLimit(n.Limit),
		)

	case *DeleteStmt:
		targets := make([]string, len(n.Targets))
		for i, t := range n.Targets {
			targets[i] = Dump(t)
		}
		parts := []string{
			flag(n.LowPriority, "low-priority"),
			flag(n.Quick, "quick"),
			flag(n.Ignore, "ignore"),
		}
		if len(targets) > 0 {
			parts = append(parts, sexpr("targets", targets...))
		}
		parts = append(parts,
			clause("from", n.From),
			clause("using", n.Using),
			clause("where", n.Where),
			dumpOrderBy(n.OrderBy),
			optionalLimit(n.Limit),
		)
		return sexpr("delete", parts...)

	case *CreateTableStmt:
		return dumpCreateTable(n)

	case *ColumnDef:
		return dumpColumnDef(n)

	case *DataType:
		return dumpDataType(n)

	case *TableConstraint:
		return dumpConstraint(n)

	case *IndexColumn:
		parts := []string{Dump(n.Name)}
		if n.Length != "" {
			parts = append(parts, n.Length)
		}
		if n.Desc {
			parts = append(parts, "desc")
		}
		if len(parts) == 1 {
			return parts[0]
		}
		return sexpr("key-part", parts...)

	case *ForeignKeyRef:
		cols := dumpIdents(n.Columns)
		parts := []string{Dump(n.Table), sexpr("columns", cols...)}
		if n.OnDelete != "" {
			parts = append(parts, sexpr("on-delete", n.OnDelete))
		}
		if n.OnUpdate != "" {
			parts = append(parts, sexpr("on-update", n.OnUpdate))
		}
		return sexpr("references", parts...)

	case *TableOption:
		value := n.Value
		if n.IsString {
			value = quoteString(value)
		}
		return sexpr("option", n.Name, value)

	case *DropTableStmt:
		tables := make([]string, len(n.Tables))
		for i, t := range n.Tables {
			tables[i] = Dump(t)
		}
		parts := append([]string{flag(n.Temporary, "temporary"), flag(n.IfExists, "if-exists")}, tables...)
		if n.Behavior != "" {
			parts = append(parts, strings.ToLower(n.Behavior))
		}
		return sexpr("drop-table", parts...)

	case *UseStmt:
		return sexpr("use", Dump(n.Database))

	case *DelimiterStmt:
		return sexpr("delimiter", quoteString(n.Delimiter))

	case *TransactionStmt:
		head := strings.ReplaceAll(strings.ToLower(n.Kind.String()), " ", "-")
		return sexpr(head, flag(n.Work, "work"))

	case *Ident:
		return n.Name

	case *Literal:
		switch n.Kind {
		case LitString:
			return n.Introducer + quoteString(n.Value)
		default:
			return n.Introducer + n.Value
		}

	case *ColumnRef:
		return strings.Join(dumpIdents(n.Parts), ".")

	case *StarExpr:
		if len(n.Qualifier) == 0 {
			return "*"
		}
		return strings.Join(dumpIdents(n.Qualifier), ".") + ".*"

	case *BinaryExpr:
		return sexpr(n.Op.String(), Dump(n.Left), Dump(n.Right))

	case *UnaryExpr:
		return sexpr(n.Op.String(), Dump(n.Operand))

	case *FuncCall:
		name := Dump(n.Name)
		if n.Schema != nil {
			name = Dump(n.Schema) + "." + name
		}
		parts := []string{name, flag(n.Distinct, "distinct")}
		if n.Star {
			parts = append(parts, "*")
		}
		for _, arg := range n.Args {
			parts = append(parts, Dump(arg))
		}
		return sexpr("call", parts...)

	case *SubqueryExpr:
		return sexpr("subquery", Dump(n.Query))

	case *ExistsExpr:
		return sexpr("exists", Dump(n.Query))

	case *ParamExpr:
		switch n.Kind {
		case ParamUserVar:
			return "@" + n.Name
		case ParamSysVar:
			return "@@" + n.Name
		default:
			return "?" + strconv.Itoa(n.Index)
		}

	case *InExpr:
		parts := []string{Dump(n.Expr)}
		if n.Query != nil {
			parts = append(parts, Dump(n.Query))
		}
		for _, e := range n.List {
			parts = append(parts, Dump(e))
		}
		return sexpr(negate(n.Not, "in"), parts...)

	case *BetweenExpr:
		return sexpr(negate(n.Not, "between"), Dump(n.Expr), Dump(n.Low), Dump(n.High))

	case *LikeExpr:
		head := "like"
		if n.Regexp {
			head = "regexp"
		}
		return sexpr(negate(n.Not, head), Dump(n.Expr), Dump(n.Pattern), clause("escape", n.Escape))

	case *IsExpr:
		return sexpr(negate(n.Not, "is"), Dump(n.Expr), n.Value.String())

	case *CaseExpr:
		parts := []string{clause("operand", n.Operand)}
		for _, w := range n.Whens {
			parts = append(parts, Dump(w))
		}
		parts = append(parts, clause("else", n.Else))
		return sexpr("case", parts...)

	case *WhenClause:
		return sexpr("when", Dump(n.Cond), Dump(n.Result))

	case *CastExpr:
		head := "cast"
		if n.Convert {
			head = "convert"
		}
		return sexpr(head, Dump(n.Expr), Dump(n.Type))

	case *RowExpr:
		items := make([]string, len(n.Items))
		for i, item := range n.Items {
			items[i] = Dump(item)
		}
		return sexpr("row", items...)

	case *DefaultExpr:
		return "DEFAULT"

	case *CollateExpr:
		return sexpr("collate", Dump(n.Expr), n.Collation)

	case *IntervalExpr:
		return sexpr("interval", Dump(n.Value), strings.ToLower(n.Unit))

	case *TableName:
		name := Dump(n.Name)
		if n.Schema != nil {
			name = Dump(n.Schema) + "." + name
		}
		if n.Alias != nil {
			return sexpr("as", name, Dump(n.Alias))
		}
		return name

	case *DerivedTable:
		alias := ""
		if n.Alias != nil {
			alias = Dump(n.Alias)
		}
		return sexpr("derived", Dump(n.Query), alias)

	case *JoinExpr:
		head := "comma"
		if n.Kind != JoinComma {
			head = strings.ReplaceAll(strings.ToLower(n.Kind.String()), " ", "-")
		}
		parts := []string{Dump(n.Left), Dump(n.Right), clause("on", n.On)}
		if len(n.Using) > 0 {
			parts = append(parts, sexpr("using", dumpIdents(n.Using)...))
		}
		return sexpr(head, parts...)

	case *ParenTableExpr:
		return sexpr("paren", Dump(n.Expr))
	}

	return "<unknown>"
}

func dumpSelect(n *SelectStmt) string {
	cols := make([]string, len(n.Columns))
	for i, item := range n.Columns {
		cols[i] = Dump(item)
	}

	lock := ""
	switch n.Lock {
	case LockForUpdate:
		lock = "for-update"
	case LockInShareMode:
		lock = "lock-in-share-mode"
	}

	group := ""
	if len(n.GroupBy) > 0 {
		keys := make([]string, len(n.GroupBy))
		for i, e := range n.GroupBy {
			keys[i] = Dump(e)
		}
		group = sexpr("group-by", append(keys, flag(n.WithRollup, "with-rollup"))...)
	}

	return sexpr("select",
		flag(n.Distinct, "distinct"),
		flag(n.HighPriority, "high-priority"),
		flag(n.StraightJoin, "straight-join"),
		flag(n.CalcFoundRows, "calc-found-rows"),
		sexpr("columns", cols...),
		clause("from", n.From),
		clause("where", n.Where),
		group,
		clause("having", n.Having),
		dumpOrderBy(n.OrderBy),
		optionalLimit(n.Limit),
		lock,
	)
}

func dumpInsert(n *InsertStmt) string {
	head := "insert"
	if n.Replace {
		head = "replace"
	}

	parts := []string{
		strings.ToLower(n.Priority),
		flag(n.Ignore, "ignore"),
		Dump(n.Table),
	}
	if len(n.Columns) > 0 {
		parts = append(parts, sexpr("columns", dumpIdents(n.Columns)...))
	}
	if len(n.Rows) > 0 {
		rows := make([]string, len(n.Rows))
		for i, row := range n.Rows {
			rows[i] = Dump(row)
		}
		parts = append(parts, sexpr("values", rows...))
	}
	if n.Query != nil {
		parts = append(parts, Dump(n.Query))
	}
	if len(n.Set) > 0 {
		parts = append(parts, sexpr("set", dumpAssignments(n.Set)...))
	}
	if len(n.OnDuplicate) > 0 {
		parts = append(parts, sexpr("on-duplicate", dumpAssignments(n.OnDuplicate)...))
	}
	return sexpr(head, parts...)
}

func dumpCreateTable(n *CreateTableStmt) string {
	parts := []string{
		flag(n.Temporary, "temporary"),
		flag(n.IfNotExists, "if-not-exists"),
		Dump(n.Table),
	}
	for _, col := range n.Columns {
		parts = append(parts, Dump(col))
	}
	for _, con := range n.Constraints {
		parts = append(parts, Dump(con))
	}
	for _, opt := range n.Options {
		parts = append(parts, Dump(opt))
	}
	if n.Like != nil {
		parts = append(parts, sexpr("like", Dump(n.Like)))
	}
	if n.Select != nil {
		parts = append(parts, sexpr("as", Dump(n.Select)))
	}
	return sexpr("create-table", parts...)
}

func dumpColumnDef(n *ColumnDef) string {
	parts := []string{
		Dump(n.Name),
		Dump(n.Type),
		flag(n.NotNull, "not-null"),
		flag(n.Null, "null"),
		clause("default", n.Default),
		clause("on-update", n.OnUpdate),
		flag(n.AutoIncrement, "auto-increment"),
		flag(n.PrimaryKey, "primary-key"),
		flag(n.Unique, "unique"),
	}
	if n.Comment != nil {
		parts = append(parts, sexpr("comment", Dump(n.Comment)))
	}
	if n.References != nil {
		parts = append(parts, Dump(n.References))
	}
	return sexpr("column", parts...)
}

func dumpDataType(n *DataType) string {
	parts := []string{n.Name}
	parts = append(parts, n.Args...)
	for _, v := range n.Values {
		parts = append(parts, quoteString(v))
	}
	parts = append(parts, flag(n.Unsigned, "unsigned"), flag(n.Zerofill, "zerofill"))
	if n.Charset != "" {
		parts = append(parts, sexpr("charset", n.Charset))
	}
	if n.Collate != "" {
		parts = append(parts, sexpr("collate", n.Collate))
	}
	return sexpr("type", parts...)
}

func dumpConstraint(n *TableConstraint) string {
	head := strings.ReplaceAll(strings.ToLower(n.Kind.String()), " ", "-")
	parts := []string{}
	if n.Name != nil {
		parts = append(parts, sexpr("name", Dump(n.Name)))
	}
	if n.IndexName != nil {
		parts = append(parts, sexpr("index", Dump(n.IndexName)))
	}
	for _, col := range n.Columns {
		parts = append(parts, Dump(col))
	}
	if n.Ref != nil {
		parts = append(parts, Dump(n.Ref))
	}
	parts = append(parts, optional(n.Check))
	return sexpr(head, parts...)
}

func dumpOrderBy(items []*OrderItem) string {
	if len(items) == 0 {
		return ""
	}
	keys := make([]string, len(items))
	for i, item := range items {
		keys[i] = Dump(item)
	}
	return sexpr("order-by", keys...)
}

func dumpAssignments(list []*Assignment) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = Dump(a)
	}
	return out
}

func dumpIdents(ids []*Ident) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = Dump(id)
	}
	return out
}

// sexpr joins head and the non-empty parts into a parenthesised list.
func sexpr(head string, parts ...string) string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(head)
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(p)
	}
	b.WriteByte(')')
	return b.String()
}

func clause(head string, n Node) string {
	if n == nil {
		return ""
	}
	return sexpr(head, Dump(n))
}

func optional(n Node) string {
	if n == nil {
		return ""
	}
	return Dump(n)
}

func optionalLimit(l *Limit) string {
	if l == nil {
		return ""
	}
	return Dump(l)
}

func flag(set bool, name string) string {
	if set {
		return name
	}
	return ""
}

func negate(not bool, head string) string {
	if not {
		return "not-" + head
	}
	return head
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
