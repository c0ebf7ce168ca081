package parser_test

import (
	"testing"

	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/diag"
	"github.com/sqlfront/sqlfront/internal/lexer"
	"github.com/sqlfront/sqlfront/internal/parser"
)

func TestParseCreateTable(t *testing.T) {
	runDumpCases(t, []dumpCase{
		{"CREATE TABLE t (id INT)", "(create-table t (column id (type INT)))"},
		{
			"CREATE TABLE IF NOT EXISTS db.users (" +
				"id INT(11) UNSIGNED NOT NULL AUTO_INCREMENT, " +
				"name VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin DEFAULT '' COMMENT 'display name', " +
				"created TIMESTAMP NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP, " +
				"PRIMARY KEY (id), UNIQUE KEY uk (name(10)), KEY (created DESC)" +
				") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COMMENT 'users'",
			"(create-table if-not-exists db.users " +
				"(column id (type INT 11 unsigned) not-null auto-increment) " +
				"(column name (type VARCHAR 255 (charset utf8mb4) (collate utf8mb4_bin)) (default '') (comment 'display name')) " +
				"(column created (type TIMESTAMP) null (default CURRENT_TIMESTAMP) (on-update CURRENT_TIMESTAMP)) " +
				"(primary-key id) (unique-key (index uk) (key-part name 10)) (key (key-part created desc)) " +
				"(option ENGINE InnoDB) (option CHARSET utf8mb4) (option COMMENT 'users'))",
		},
		{
			"CREATE TABLE m (org_id INT REFERENCES orgs (id), " +
				"CONSTRAINT fk FOREIGN KEY (org_id) REFERENCES orgs (id) ON DELETE CASCADE ON UPDATE SET NULL, " +
				"CHECK (org_id > 0))",
			"(create-table m (column org_id (type INT) (references orgs (columns id))) " +
				"(foreign-key (name fk) org_id (references orgs (columns id) (on-delete CASCADE) (on-update SET NULL))) " +
				"(check (> org_id 0)))",
		},
		{"CREATE TABLE t (s ENUM('a', 'b') NOT NULL, d DECIMAL(10, 2) ZEROFILL, f DOUBLE PRECISION)",
			"(create-table t (column s (type ENUM 'a' 'b') not-null) (column d (type DECIMAL 10 2 zerofill)) (column f (type DOUBLE PRECISION)))"},
		{"CREATE TABLE t (a INT, FULLTEXT INDEX ft (a), UNIQUE (a) USING BTREE)",
			"(create-table t (column a (type INT)) (fulltext-key (index ft) a) (unique-key a))"},
		{"CREATE TABLE t (a INT UNIQUE KEY, b INT KEY, c INT PRIMARY KEY)",
			"(create-table t (column a (type INT) unique) (column b (type INT) primary-key) (column c (type INT) primary-key))"},
		{"CREATE TABLE t (a INT) ENGINE=InnoDB, AUTO_INCREMENT=5, DEFAULT COLLATE utf8_bin",
			"(create-table t (column a (type INT)) (option ENGINE InnoDB) (option AUTO_INCREMENT 5) (option COLLATE utf8_bin))"},
		{"CREATE TABLE t (s VARCHAR(10) DEFAULT 'a' COLLATE utf8_bin, u VARCHAR(10) DEFAULT ('b' COLLATE latin1_bin))",
			"(create-table t (column s (type VARCHAR 10 (collate utf8_bin)) (default 'a')) " +
				"(column u (type VARCHAR 10) (default (collate 'b' latin1_bin))))"},
		{"CREATE TABLE t (a INT) CHARACTER SET = latin1", "(create-table t (column a (type INT)) (option CHARSET latin1))"},
		{"CREATE TEMPORARY TABLE t LIKE s", "(create-table temporary t (like s))"},
		{"CREATE TABLE t (LIKE db.s)", "(create-table t (like db.s))"},
		{"CREATE TABLE t AS SELECT * FROM s", "(create-table t (as (select (columns *) (from s))))"},
		{"CREATE TABLE t (SELECT 1)", "(create-table t (as (select (columns 1))))"},
		{"CREATE TABLE t (a INT) ENGINE = MyISAM SELECT a FROM s",
			"(create-table t (column a (type INT)) (option ENGINE MyISAM) (as (select (columns a) (from s))))"},
	})
}

func TestParseCreateTableFields(t *testing.T) {
	stmt := parseOne(t, "CREATE TABLE t (id BIGINT NOT NULL DEFAULT 0, PRIMARY KEY (id))")

	create, ok := stmt.(*ast.CreateTableStmt)
	if !ok {
		t.Fatalf("expected *ast.CreateTableStmt, got %T", stmt)
	}
	if len(create.Columns) != 1 || len(create.Constraints) != 1 {
		t.Fatalf("unexpected definitions %s", ast.Dump(create))
	}

	col := create.Columns[0]
	if col.Type.Name != "BIGINT" || !col.NotNull {
		t.Fatalf("unexpected column %s", ast.Dump(col))
	}
	if lit, ok := col.Default.(*ast.Literal); !ok || lit.Value != "0" {
		t.Fatalf("unexpected default %s", ast.Dump(col.Default))
	}
	if create.Constraints[0].Kind != ast.ConstraintPrimaryKey {
		t.Fatalf("unexpected constraint %s", create.Constraints[0].Kind)
	}
}

func TestParseDropTable(t *testing.T) {
	runDumpCases(t, []dumpCase{
		{"DROP TABLE t", "(drop-table t)"},
		{"DROP TEMPORARY TABLE IF EXISTS a, b.c CASCADE", "(drop-table temporary if-exists a b.c cascade)"},
		{"DROP TABLE a RESTRICT", "(drop-table a restrict)"},
	})
}

func TestParseUseAndTransactions(t *testing.T) {
	runDumpCases(t, []dumpCase{
		{"USE shop", "(use shop)"},
		{"USE `my db`", "(use my db)"},
		{"BEGIN", "(begin)"},
		{"BEGIN WORK", "(begin work)"},
		{"START TRANSACTION", "(start-transaction)"},
		{"COMMIT", "(commit)"},
		{"commit work", "(commit work)"},
		{"ROLLBACK", "(rollback)"},
	})

	// USE is not reserved in ANSI mode but still starts a statement.
	runDumpCases(t, []dumpCase{{"USE shop", "(use shop)"}}, parser.WithDialect(lexer.ANSI()))
}

func TestParseDDLErrors(t *testing.T) {
	tests := []struct {
		src     string
		message string
	}{
		{"CREATE TABLE t", "expected '(', LIKE or AS, found end of input"},
		{"CREATE TABLE t ()", "expected column definition, found ')'"},
		{"CREATE TABLE t (a)", "expected data type, found ')'"},
		{"CREATE TABLE t (a INT, CONSTRAINT c KEY (a))", "expected PRIMARY KEY, UNIQUE, FOREIGN KEY or CHECK, found keyword KEY"},
		{"CREATE TABLE t (a INT REFERENCES p (id) ON DELETE SET a)", "expected NULL or DEFAULT, found identifier a"},
		{"CREATE TABLE t (a INT) ENGINE", "expected option value, found end of input"},
		{"CREATE INDEX i ON t (a)", "expected keyword TABLE, found keyword INDEX"},
		{"DROP t", "expected keyword TABLE, found identifier t"},
		{"DROP TABLE", "expected identifier, found end of input"},
		{"START WORK", "expected TRANSACTION, found identifier WORK"},
		{"USE", "expected identifier, found end of input"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expectSingleDiagnostic(t, tt.src, diag.CodeSyntaxUnexpectedToken, tt.message)
		})
	}
}
