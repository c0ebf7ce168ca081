package lsp

import (
	"encoding/json"
	"fmt"

	"github.com/sqlfront/sqlfront/internal/ast"
	"github.com/sqlfront/sqlfront/internal/format"
)

// Hover represents hover information.
type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func (s *Server) handleHover(msg *jsonrpcMessage) error {
	var params TextDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.replyInvalidParams(msg.ID, err)
	}

	doc, ok := s.document(params.TextDocument.URI)
	if !ok || doc.Script == nil {
		return s.reply(msg.ID, nil)
	}

	return s.reply(msg.ID, s.hover(doc, params.Position))
}

// hover describes the innermost node under pos, printed as canonical SQL.
func (s *Server) hover(doc *Document, pos Position) *Hover {
	offset := positionToOffset(doc.Content, pos)

	var target ast.Node
	for _, n := range nodePath(doc.Script, offset) {
		if _, ok := n.(*ast.Ident); !ok {
			target = n
		}
	}
	if target == nil {
		return nil
	}

	span := target.Span()
	r := Range{
		Start: offsetToPosition(doc.Content, span.Start),
		End:   offsetToPosition(doc.Content, span.End),
	}

	return &Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: fmt.Sprintf("%s\n\n```sql\n%s\n```", nodeKind(target), format.Format(target, format.WithDialect(s.dialect))),
		},
		Range: &r,
	}
}

// nodePath returns the nodes whose span contains offset, outermost first.
// Sibling spans do not overlap, so the result is a single branch.
func nodePath(script *ast.Script, offset int) []ast.Node {
	var path []ast.Node
	for _, stmt := range script.Stmts {
		ast.Walk(stmt, func(n ast.Node) bool {
			span := n.Span()
			if offset < span.Start || offset >= span.End {
				return false
			}
			path = append(path, n)
			return true
		})
	}
	return path
}

func nodeKind(n ast.Node) string {
	switch n.(type) {
	case *ast.ColumnRef:
		return "column"
	case *ast.StarExpr:
		return "all columns"
	case *ast.TableName:
		return "table"
	case *ast.DerivedTable:
		return "derived table"
	case *ast.JoinExpr:
		return "join"
	case *ast.FuncCall:
		return "function call"
	case *ast.SubqueryExpr:
		return "subquery"
	case *ast.Literal:
		return "literal"
	case *ast.ParamExpr:
		return "parameter"
	case *ast.ColumnDef:
		return "column definition"
	case *ast.TableConstraint:
		return "constraint"
	case ast.Query:
		return "query"
	case ast.Stmt:
		return "statement"
	case ast.Expr:
		return "expression"
	default:
		return "clause"
	}
}
