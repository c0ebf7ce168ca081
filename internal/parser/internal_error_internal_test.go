package parser

import (
	"errors"
	"testing"

	"github.com/sqlfront/sqlfront/internal/diag"
)

func TestInternalErrorFromBug(t *testing.T) {
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = internalError(r)
			}
		}()
		diag.Bug(diag.Span{Line: 3, Column: 7}, "cursor moved backwards by %d", 2)
		return nil
	}()

	var ie *diag.InternalError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *diag.InternalError, got %T", err)
	}
	if ie.Message != "cursor moved backwards by 2" {
		t.Fatalf("unexpected message %q", ie.Message)
	}
	if ie.Span.Line != 3 {
		t.Fatalf("expected the bug span to be kept, got %+v", ie.Span)
	}
	if len(ie.Stack) == 0 {
		t.Fatal("expected a captured stack")
	}
}

func TestInternalErrorFromPlainPanic(t *testing.T) {
	err := internalError("index out of range")

	var ie *diag.InternalError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *diag.InternalError, got %T", err)
	}
	if ie.Message != "index out of range" {
		t.Fatalf("unexpected message %q", ie.Message)
	}
}

func TestDepthIsUnwoundAfterEveryStatement(t *testing.T) {
	inputs := []string{
		"SELECT (1 + (2 * (3 - ; SELECT 1",
		"SELECT * FROM (SELECT a FROM (SELECT b FROM t) x WHERE ; SELECT 2",
		"SELECT a IN ((SELECT 1) + , 2)",
		"INSERT INTO t (SELECT FROM) ; DELETE FROM t",
	}

	for _, src := range inputs {
		p := New(src)
		p.ParseStatementList()
		if p.depth != 0 {
			t.Fatalf("%q: depth %d after parsing", src, p.depth)
		}
	}
}
