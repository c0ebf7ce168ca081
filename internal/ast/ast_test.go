package ast

import (
	"testing"

	"github.com/sqlfront/sqlfront/internal/lexer"
)

func sp(start, end int) lexer.Span {
	return lexer.Span{Line: 1, Column: start + 1, Start: start, End: end}
}

func ident(name string, start int) *Ident {
	return NewIdent(name, false, sp(start, start+len(name)))
}

func intLit(v string, start int) *Literal {
	return NewLiteral(LitInt, v, sp(start, start+len(v)))
}

// 1 + 2 * 3
func sampleArithmetic() Expr {
	mul := NewBinaryExpr(OpMul, intLit("2", 4), intLit("3", 8), sp(4, 9))
	return NewBinaryExpr(OpAdd, intLit("1", 0), mul, sp(0, 9))
}

func TestDump_Arithmetic(t *testing.T) {
	if got, want := Dump(sampleArithmetic()), "(+ 1 (* 2 3))"; got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestDump_Select(t *testing.T) {
	// SELECT DISTINCT a AS x FROM t WHERE a IS NOT NULL ORDER BY a DESC LIMIT 5
	sel := NewSelectStmt(sp(0, 70))
	sel.Distinct = true
	sel.Columns = []*SelectItem{
		NewSelectItem(NewColumnRef([]*Ident{ident("a", 16)}, sp(16, 17)), ident("x", 21), sp(16, 22)),
	}
	table := NewTableName(nil, ident("t", 28), sp(28, 29))
	sel.From = table
	sel.Where = &IsExpr{Expr: NewColumnRef([]*Ident{ident("a", 36)}, sp(36, 37)), Not: true, Value: IsNull}
	sel.OrderBy = []*OrderItem{NewOrderItem(NewColumnRef([]*Ident{ident("a", 59)}, sp(59, 60)), true, sp(59, 65))}
	sel.Limit = NewLimit(intLit("5", 72), nil, sp(66, 73))

	want := "(select distinct (columns (as a x)) (from t) (where (not-is a NULL)) (order-by (desc a)) (limit 5))"
	if got := Dump(sel); got != want {
		t.Fatalf("expected\n  %s\ngot\n  %s", want, got)
	}
}

func TestDump_StringLiteralQuotes(t *testing.T) {
	lit := NewLiteral(LitString, "it's", sp(0, 7))
	if got := Dump(lit); got != "'it''s'" {
		t.Fatalf("expected doubled quote, got %s", got)
	}
}

func TestDump_Params(t *testing.T) {
	tests := []struct {
		param *ParamExpr
		want  string
	}{
		{NewParamExpr(ParamPositional, "", 2, sp(0, 1)), "?2"},
		{NewParamExpr(ParamUserVar, "id", 0, sp(0, 3)), "@id"},
		{NewParamExpr(ParamSysVar, "sql_mode", 0, sp(0, 10)), "@@sql_mode"},
	}
	for _, tt := range tests {
		if got := Dump(tt.param); got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}
}

func TestDump_IgnoresIdentifierQuoting(t *testing.T) {
	a := NewIdent("order", true, sp(0, 7))
	b := NewIdent("order", false, sp(3, 8))
	if Dump(a) != Dump(b) {
		t.Fatalf("expected quoting to be invisible in dumps: %s vs %s", Dump(a), Dump(b))
	}
}

func TestWalk_VisitsInSourceOrder(t *testing.T) {
	var seen []string
	Walk(sampleArithmetic(), func(n Node) bool {
		if lit, ok := n.(*Literal); ok {
			seen = append(seen, lit.Value)
		}
		return true
	})

	if len(seen) != 3 || seen[0] != "1" || seen[1] != "2" || seen[2] != "3" {
		t.Fatalf("expected literals in order [1 2 3], got %v", seen)
	}
}

func TestWalk_PrunesBranch(t *testing.T) {
	count := 0
	Walk(sampleArithmetic(), func(n Node) bool {
		count++
		_, isBinary := n.(*BinaryExpr)
		return !isBinary || count == 1
	})

	// root, 1, (* 2 3) pruned before its children
	if count != 3 {
		t.Fatalf("expected 3 visits, got %d", count)
	}
}

func TestChildren_SkipsNil(t *testing.T) {
	sel := NewSelectStmt(sp(0, 8))
	sel.Columns = []*SelectItem{NewSelectItem(NewStarExpr(nil, sp(7, 8)), nil, sp(7, 8))}

	kids := Children(sel)
	if len(kids) != 1 {
		t.Fatalf("expected only the select item, got %d children", len(kids))
	}
	if len(Children(kids[0])) != 1 {
		t.Fatalf("expected select item without alias to have 1 child")
	}
}

func TestChildren_LimitOffsetOrder(t *testing.T) {
	// LIMIT 10, 5 lists the offset first in the source.
	l := NewLimit(intLit("5", 10), intLit("10", 6), sp(0, 11))
	kids := Children(l)
	if len(kids) != 2 || kids[0].(*Literal).Value != "10" {
		t.Fatalf("expected offset first, got %v", kids)
	}
}

func TestPrecedenceTable(t *testing.T) {
	ordered := []BinaryOp{OpOr, OpXor, OpAnd, OpEq, OpBitOr, OpBitAnd, OpShl, OpAdd, OpMul, OpBitXor}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Precedence() >= ordered[i].Precedence() {
			t.Fatalf("%s should bind looser than %s", ordered[i-1], ordered[i])
		}
	}

	if OpNot.Precedence() >= OpEq.Precedence() {
		t.Fatalf("NOT should bind looser than comparison")
	}
	if OpNeg.Precedence() <= OpBitXor.Precedence() {
		t.Fatalf("unary minus should bind tighter than ^")
	}
	if OpConcat.Precedence() != OpAdd.Precedence() {
		t.Fatalf("|| concatenation should share the additive level")
	}
}

func TestOperatorStrings(t *testing.T) {
	if OpIntDiv.String() != "DIV" || OpNullSafeEq.String() != "<=>" || OpNot.String() != "NOT" {
		t.Fatalf("unexpected operator spelling")
	}
	if BinaryOp(99).String() != "?" {
		t.Fatalf("expected unknown operator to render as ?")
	}
}
