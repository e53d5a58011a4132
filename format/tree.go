package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/minijavac/java/ast"
)

// TreePrinter writes one line per node, indented four spaces per level.
// Comma expressions print their items at the list's own depth.
type TreePrinter struct {
	w   io.Writer
	err error
}

func NewTreePrinter(w io.Writer) *TreePrinter {
	return &TreePrinter{w: w}
}

// Encode prints unit, which must be a translation unit.
func (p *TreePrinter) Encode(unit *ast.List) error {
	p.err = nil
	if err := ast.Walk(p, unit); err != nil {
		return err
	}
	return p.err
}

func (p *TreePrinter) printf(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, strings.Repeat("    ", depth)+format+"\n", args...)
}

var listLabels = map[ast.ListKind]string{
	ast.ListTranslationUnit: "translation unit",
	ast.ListParams:          "parameter list",
	ast.ListVars:            "variable decl list",
	ast.ListStmts:           "stmt list",
}

func (p *TreePrinter) VisitList(n *ast.List, depth int) {
	if n.ListKind == ast.ListExpr {
		p.VisitExpr(n, depth)
		return
	}
	p.printf(depth, "%s", listLabels[n.ListKind])
	for item := range n.All() {
		switch item := item.(type) {
		case ast.Decl:
			p.VisitDecl(item, depth+1)
		case ast.Stmt:
			p.VisitStmt(item, depth+1)
		}
	}
}

func (p *TreePrinter) VisitDecl(n ast.Decl, depth int) {
	switch n := n.(type) {
	case *ast.FuncDecl:
		if n.Native {
			p.printf(depth, "prototype decl")
		} else {
			p.printf(depth, "function def")
		}
		p.VisitTypeSpec(n.Result, depth+1)
		p.VisitId(n.Name, depth+1)
		if n.Params != nil {
			p.VisitList(n.Params, depth+1)
		}
		if !n.Native {
			p.VisitList(n.Vars, depth+1)
			p.VisitList(n.Stmts, depth+1)
		}
	case *ast.VarDecl:
		if n.Param {
			p.printf(depth, "parameter decl")
		} else {
			p.printf(depth, "variable decl")
		}
		p.VisitTypeSpec(n.Type, depth+1)
		p.VisitId(n.Name, depth+1)
	case *ast.RecordDecl:
		p.printf(depth, "record def")
		p.VisitId(n.Name, depth+1)
		p.VisitList(n.Vars, depth+1)
	}
}

var exprLabels = map[ast.Op]string{
	ast.OpCall:       "function call",
	ast.OpIndex:      "postfix (index)",
	ast.OpDot:        "postfix (dot)",
	ast.OpAssign:     "assignment expr",
	ast.OpUnaryPlus:  "unary expr (plus)",
	ast.OpUnaryMinus: "unary expr (minus)",
	ast.OpNot:        "unary expr (not)",
	ast.OpOr:         "logical or expr",
	ast.OpAnd:        "logical and expr",
	ast.OpEq:         "relational expr (eq)",
	ast.OpNeq:        "relational expr (neq)",
	ast.OpLess:       "relational expr (less)",
	ast.OpLessEq:     "relational expr (less eq)",
	ast.OpGreater:    "relational expr (greater)",
	ast.OpGreaterEq:  "relational expr (greater eq)",
	ast.OpPlus:       "additive expr (plus)",
	ast.OpMinus:      "additive expr (minus)",
	ast.OpMul:        "mult expr (mult)",
	ast.OpDiv:        "mult expr (divide)",
	ast.OpMod:        "mult expr (modulo)",
	ast.OpNew:        "primary (new)",
}

func (p *TreePrinter) VisitExpr(n ast.Expr, depth int) {
	switch n := n.(type) {
	case *ast.Id:
		p.VisitId(n, depth)
		return
	case ast.Const:
		p.VisitConst(n, depth)
		return
	case *ast.List:
		for item := range n.All() {
			if x, ok := item.(ast.Expr); ok {
				p.VisitExpr(x, depth)
			}
		}
		return
	case ast.Operation:
		p.printf(depth, "%s", exprLabels[n.Operator()])
	}

	switch n := n.(type) {
	case *ast.CallExpr:
		p.VisitExpr(n.Func, depth+1)
		if n.Args != nil {
			p.VisitExpr(n.Args, depth+1)
		}
	case *ast.IndexExpr:
		p.VisitExpr(n.X, depth+1)
		p.VisitExpr(n.Index, depth+1)
	case *ast.MemberExpr:
		p.VisitExpr(n.X, depth+1)
		p.VisitId(n.Member, depth+1)
	case *ast.AssignExpr:
		p.VisitExpr(n.Target, depth+1)
		p.VisitExpr(n.Value, depth+1)
	case *ast.UnaryExpr:
		p.VisitExpr(n.X, depth+1)
	case *ast.BinaryExpr:
		p.VisitExpr(n.X, depth+1)
		p.VisitExpr(n.Y, depth+1)
	case *ast.NewExpr:
		p.VisitTypeSpec(n.Type, depth+1)
		if n.Size != nil {
			p.VisitExpr(n.Size, depth+1)
		}
	}
}

func (p *TreePrinter) VisitId(n *ast.Id, depth int) {
	p.printf(depth, "identifier = %s", n.Name)
}

func (p *TreePrinter) VisitStmt(n ast.Stmt, depth int) {
	switch n := n.(type) {
	case *ast.ExprStmt:
		p.printf(depth, "expr stmt")
		p.VisitExpr(n.X, depth+1)
	case *ast.CompoundStmt:
		p.printf(depth, "compound stmt")
		if n.Body != nil {
			p.VisitList(n.Body, depth+1)
		}
	case *ast.ReturnStmt:
		p.printf(depth, "return stmt")
		p.VisitExpr(n.X, depth+1)
	case *ast.BreakStmt:
		p.printf(depth, "break stmt")
	case *ast.ContinueStmt:
		p.printf(depth, "continue stmt")
	case *ast.IfStmt:
		p.printf(depth, "if stmt")
		p.VisitExpr(n.Cond, depth+1)
		p.VisitStmt(n.Then, depth+1)
		if n.Else != nil {
			p.VisitStmt(n.Else, depth+1)
		}
	case *ast.ForStmt:
		p.printf(depth, "for stmt")
		if n.Init != nil {
			p.VisitStmt(n.Init, depth+1)
		}
		if n.Cond != nil {
			p.VisitStmt(n.Cond, depth+1)
		}
		if n.Post != nil {
			p.VisitExpr(n.Post, depth+1)
		}
		p.VisitStmt(n.Body, depth+1)
	case *ast.WhileStmt:
		p.printf(depth, "while stmt")
		p.VisitExpr(n.Cond, depth+1)
		p.VisitStmt(n.Body, depth+1)
	}
}

func (p *TreePrinter) VisitTypeSpec(n *ast.TypeSpec, depth int) {
	if n.Array {
		p.printf(depth, "type specifier = %d-dim array of %s", n.Dim, n.TypeName())
		return
	}
	p.printf(depth, "type specifier = %s", n.TypeName())
}

func (p *TreePrinter) VisitConst(n ast.Const, depth int) {
	switch n := n.(type) {
	case *ast.CharLit:
		p.printf(depth, "character = 0x%02x", n.Value)
	case *ast.IntLit:
		p.printf(depth, "integer = %d", n.Value)
	case *ast.NullLit:
		p.printf(depth, "null")
	case *ast.StringLit:
		p.printf(depth, "string literal = \"%s\"", n.Value)
	}
}
