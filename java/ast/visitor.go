package ast

import (
	"errors"
	"fmt"
)

// ErrNotTranslationUnit is returned by Walk when the root is not a
// translation unit list.
var ErrNotTranslationUnit = errors.New("root is not a translation unit")

// Visitor is implemented by consumers of the tree. Each method receives a
// node of the matching variant and the depth it was reached at; a Visitor
// decides itself whether and how to descend into children.
type Visitor interface {
	VisitList(n *List, depth int)
	VisitDecl(n Decl, depth int)
	VisitExpr(n Expr, depth int)
	VisitId(n *Id, depth int)
	VisitStmt(n Stmt, depth int)
	VisitTypeSpec(n *TypeSpec, depth int)
	VisitConst(n Const, depth int)
}

// Walk checks that root is a translation unit and hands it to v.VisitList
// at depth 0.
func Walk(v Visitor, root Node) error {
	l, ok := root.(*List)
	if !ok || l == nil {
		return fmt.Errorf("%w: got %T", ErrNotTranslationUnit, root)
	}
	if l.ListKind != ListTranslationUnit {
		return fmt.Errorf("%w: got %s list", ErrNotTranslationUnit, l.ListKind)
	}
	v.VisitList(l, 0)
	return nil
}

// Children returns the direct children of n in source order, skipping
// absent optional parts.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		switch c := c.(type) {
		case nil:
			return
		case *List:
			if c == nil {
				return
			}
		case *Id:
			if c == nil {
				return
			}
		case *TypeSpec:
			if c == nil {
				return
			}
		case *ExprStmt:
			if c == nil {
				return
			}
		}
		out = append(out, c)
	}

	switch n := n.(type) {
	case *List:
		for item := range n.All() {
			add(item)
		}
	case *TypeSpec:
		add(n.Name)
	case *VarDecl:
		add(n.Type)
		add(n.Name)
	case *RecordDecl:
		add(n.Name)
		add(n.Vars)
	case *FuncDecl:
		add(n.Result)
		add(n.Name)
		add(n.Params)
		add(n.Vars)
		add(n.Stmts)
	case *CallExpr:
		add(n.Func)
		add(n.Args)
	case *IndexExpr:
		add(n.X)
		add(n.Index)
	case *MemberExpr:
		add(n.X)
		add(n.Member)
	case *AssignExpr:
		add(n.Target)
		add(n.Value)
	case *UnaryExpr:
		add(n.X)
	case *BinaryExpr:
		add(n.X)
		add(n.Y)
	case *NewExpr:
		add(n.Type)
		add(n.Size)
	case *ExprStmt:
		add(n.X)
	case *CompoundStmt:
		add(n.Body)
	case *ReturnStmt:
		add(n.X)
	case *IfStmt:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case *ForStmt:
		add(n.Init)
		add(n.Cond)
		add(n.Post)
		add(n.Body)
	case *WhileStmt:
		add(n.Cond)
		add(n.Body)
	}
	return out
}

// Inspect traverses the tree depth-first, calling f for every node. If f
// returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}
