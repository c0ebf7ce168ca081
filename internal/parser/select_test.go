package parser_test

import (
	"testing"

	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/diag"
)

func TestParseSelectClauses(t *testing.T) {
	runDumpCases(t, []dumpCase{
		{"SELECT 1", "(select (columns 1))"},
		{"SELECT a, b AS x, c y FROM t WHERE a > 1",
			"(select (columns a (as b x) (as c y)) (from t) (where (> a 1)))"},
		{"SELECT a AS 'quoted alias' FROM t", "(select (columns (as a quoted alias)) (from t))"},
		{"SELECT DISTINCT * FROM t ORDER BY a DESC, b ASC LIMIT 10",
			"(select distinct (columns *) (from t) (order-by (desc a) b) (limit 10))"},
		{"SELECT t.*, db.t.* FROM db.t", "(select (columns t.* db.t.*) (from db.t))"},
		{"SELECT COUNT(*), COUNT(DISTINCT a) FROM t GROUP BY c, d WITH ROLLUP HAVING COUNT(*) > 1",
			"(select (columns (call COUNT *) (call COUNT distinct a)) (from t) (group-by c d with-rollup) (having (> (call COUNT *) 1)))"},
		{"SELECT a FROM t LIMIT 5, 10", "(select (columns a) (from t) (limit 10 5))"},
		{"SELECT a FROM t LIMIT 10 OFFSET 5", "(select (columns a) (from t) (limit 10 5))"},
		{"SELECT a FROM t LIMIT ?", "(select (columns a) (from t) (limit ?1))"},
		{"SELECT a FROM t FOR UPDATE", "(select (columns a) (from t) for-update)"},
		{"SELECT a FROM t LOCK IN SHARE MODE", "(select (columns a) (from t) lock-in-share-mode)"},
		{"SELECT HIGH_PRIORITY STRAIGHT_JOIN SQL_CALC_FOUND_ROWS a FROM t",
			"(select high-priority straight-join calc-found-rows (columns a) (from t))"},
		{"SELECT DISTINCTROW a FROM t", "(select distinct (columns a) (from t))"},
		{"SELECT a FROM t AS x WHERE x.a IS NULL", "(select (columns a) (from (as t x)) (where (is x.a NULL)))"},
	})
}

func TestParseJoins(t *testing.T) {
	runDumpCases(t, []dumpCase{
		{"SELECT * FROM a JOIN b ON a.id = b.id LEFT JOIN c USING (id)",
			"(select (columns *) (from (left-join (join a b (on (= a.id b.id))) c (using id))))"},
		{"SELECT * FROM a INNER JOIN b", "(select (columns *) (from (join a b)))"},
		{"SELECT * FROM a, b CROSS JOIN c", "(select (columns *) (from (comma a (cross-join b c))))"},
		{"SELECT * FROM a RIGHT OUTER JOIN b ON x = y", "(select (columns *) (from (right-join a b (on (= x y)))))"},
		{"SELECT * FROM a NATURAL JOIN b", "(select (columns *) (from (natural-join a b)))"},
		{"SELECT * FROM a NATURAL LEFT OUTER JOIN b", "(select (columns *) (from (natural-left-join a b)))"},
		{"SELECT * FROM t1 AS x STRAIGHT_JOIN t2 y", "(select (columns *) (from (straight_join (as t1 x) (as t2 y))))"},
		{"SELECT * FROM (SELECT a FROM t) AS d", "(select (columns *) (from (derived (select (columns a) (from t)) d)))"},
		{"SELECT * FROM (SELECT 1 UNION SELECT 2) d", "(select (columns *) (from (derived (union (select (columns 1)) (select (columns 2))) d)))"},
		{"SELECT * FROM (a JOIN b ON x = y)", "(select (columns *) (from (paren (join a b (on (= x y))))))"},
		{"SELECT * FROM ((SELECT 1) AS d JOIN e)", "(select (columns *) (from (paren (join (derived (select (columns 1)) d) e))))"},
		{"SELECT * FROM a JOIN (b JOIN c ON b.x = c.x) ON a.y = b.y",
			"(select (columns *) (from (join a (paren (join b c (on (= b.x c.x)))) (on (= a.y b.y)))))"},
	})
}

func TestParseUnion(t *testing.T) {
	runDumpCases(t, []dumpCase{
		{"SELECT a FROM t UNION SELECT b FROM u",
			"(union (select (columns a) (from t)) (select (columns b) (from u)))"},
		{"SELECT 1 UNION ALL SELECT 2 UNION DISTINCT SELECT 3",
			"(union (union-all (select (columns 1)) (select (columns 2))) (select (columns 3)))"},
		{"SELECT 1 UNION SELECT 2 ORDER BY 1 LIMIT 3",
			"(union (select (columns 1)) (select (columns 2)) (order-by 1) (limit 3))"},
		{"(SELECT 1 ORDER BY 1 LIMIT 1) UNION (SELECT 2) ORDER BY 1",
			"(union (select (columns 1) (order-by 1) (limit 1)) (select (columns 2)) (order-by 1))"},
		{"(SELECT 1) ORDER BY 1", "(select (columns 1) (order-by 1))"},
		{"((SELECT 1))", "(select (columns 1))"},
		{"SELECT 1 UNION (SELECT 2 UNION SELECT 3)",
			"(union (select (columns 1)) (union (select (columns 2)) (select (columns 3))))"},
	})
}

func TestParseUnionHoistsTrailingClauses(t *testing.T) {
	stmt := parseOne(t, "SELECT a FROM t UNION SELECT b FROM u ORDER BY a LIMIT 2")

	union, ok := stmt.(*ast.UnionStmt)
	if !ok {
		t.Fatalf("expected *ast.UnionStmt, got %T", stmt)
	}

	right, ok := union.Right.(*ast.SelectStmt)
	if !ok {
		t.Fatalf("expected *ast.SelectStmt on the right, got %T", union.Right)
	}
	if len(right.OrderBy) != 0 || right.Limit != nil {
		t.Fatal("expected ORDER BY and LIMIT to move to the union")
	}
	if len(union.OrderBy) != 1 || union.Limit == nil {
		t.Fatal("expected the union to own ORDER BY and LIMIT")
	}
}

func TestParseParenthesisedQuerySpan(t *testing.T) {
	stmt := parseOne(t, "(SELECT 1)")

	span := stmt.Span()
	if span.Start != 0 || span.End != 10 {
		t.Fatalf("expected the span to include the parentheses, got %+v", span)
	}
}

func TestParseSelectErrors(t *testing.T) {
	tests := []struct {
		src     string
		code    diag.Code
		message string
	}{
		{"SELECT 1 ORDER BY 1 UNION SELECT 2", diag.CodeSyntaxInvalidClause, "ORDER BY and LIMIT before UNION require parentheses"},
		{"SELECT 1 UNION SELECT 2 LIMIT 1 UNION (SELECT 3)", diag.CodeSyntaxInvalidClause, "ORDER BY and LIMIT before UNION require parentheses"},
		{"(SELECT 1 LIMIT 1) LIMIT 2", diag.CodeSyntaxInvalidClause, "query already has ORDER BY or LIMIT"},
		{"SELECT * FROM (SELECT 1)", diag.CodeSyntaxUnexpectedToken, "every derived table must have an alias, found end of input"},
		{"SELECT * FROM a LEFT JOIN b", diag.CodeSyntaxUnexpectedToken, "expected ON or USING, found end of input"},
		{"SELECT * FROM a LEFT b", diag.CodeSyntaxUnexpectedToken, "expected keyword JOIN, found identifier b"},
		{"SELECT a FROM t LIMIT a", diag.CodeSyntaxUnexpectedToken, "expected number or '?', found identifier a"},
		{"SELECT a, FROM t", diag.CodeSyntaxUnexpectedToken, "expected expression, found keyword FROM"},
		{"SELECT a FROM", diag.CodeSyntaxUnexpectedToken, "expected table name, found end of input"},
		{"SELECT a GROUP a", diag.CodeSyntaxUnexpectedToken, "expected keyword BY, found identifier a"},
		{"SELECT a b c", diag.CodeSyntaxMissingTerminator, "expected ';' or end of input, found identifier c"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expectSingleDiagnostic(t, tt.src, tt.code, tt.message)
		})
	}
}

func TestParseUnionErrorResumesAtNextSelect(t *testing.T) {
	script := expectSingleDiagnostic(t, "SELECT 1 LIMIT 1 UNION SELECT 2", diag.CodeSyntaxInvalidClause, "require parentheses")

	// Recovery stops before the SELECT that follows UNION.
	if len(script.Stmts) != 1 || ast.Dump(script.Stmts[0]) != "(select (columns 2))" {
		t.Fatalf("unexpected statements %s", ast.Dump(script))
	}
}
