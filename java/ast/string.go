package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Every node except Id and TypeSpec prints as an S-expression, for example
// (+ 1 (* 2 3)). Absent optional parts print as _.

func (n *List) String() string         { return sexpr(n) }
func (n *VarDecl) String() string      { return sexpr(n) }
func (n *RecordDecl) String() string   { return sexpr(n) }
func (n *FuncDecl) String() string     { return sexpr(n) }
func (n *CallExpr) String() string     { return sexpr(n) }
func (n *IndexExpr) String() string    { return sexpr(n) }
func (n *MemberExpr) String() string   { return sexpr(n) }
func (n *AssignExpr) String() string   { return sexpr(n) }
func (n *UnaryExpr) String() string    { return sexpr(n) }
func (n *BinaryExpr) String() string   { return sexpr(n) }
func (n *NewExpr) String() string      { return sexpr(n) }
func (n *IntLit) String() string       { return strconv.Itoa(int(n.Value)) }
func (n *CharLit) String() string      { return strconv.QuoteRune(rune(n.Value)) }
func (n *StringLit) String() string    { return strconv.Quote(n.Value) }
func (n *NullLit) String() string      { return "null" }
func (n *ExprStmt) String() string     { return sexpr(n) }
func (n *CompoundStmt) String() string { return sexpr(n) }
func (n *ReturnStmt) String() string   { return sexpr(n) }
func (n *BreakStmt) String() string    { return "(break)" }
func (n *ContinueStmt) String() string { return "(continue)" }
func (n *IfStmt) String() string       { return sexpr(n) }
func (n *ForStmt) String() string      { return sexpr(n) }
func (n *WhileStmt) String() string    { return sexpr(n) }

var listHeads = map[ListKind]string{
	ListTranslationUnit: "unit",
	ListVars:            "vars",
	ListParams:          "params",
	ListStmts:           "stmts",
	ListExpr:            ",",
}

func sexpr(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *List:
		if n == nil {
			b.WriteString("_")
			return
		}
		if n.ListKind == ListExpr && n.Len() == 1 {
			writeNode(b, n.Nodes()[0])
			return
		}
		b.WriteString("(" + listHeads[n.ListKind])
		writeItems(b, n)
		b.WriteString(")")
	case *VarDecl:
		head := "var"
		if n.Param {
			head = "param"
		}
		fmt.Fprintf(b, "(%s %s %s)", head, n.Type, n.Name)
	case *RecordDecl:
		fmt.Fprintf(b, "(record %s ", n.Name)
		writeNode(b, n.Vars)
		b.WriteString(")")
	case *FuncDecl:
		head := "func"
		if n.Native {
			head = "native"
		}
		fmt.Fprintf(b, "(%s %s %s ", head, n.Result, n.Name)
		if n.Params == nil {
			b.WriteString("(params)")
		} else {
			writeNode(b, n.Params)
		}
		if !n.Native {
			b.WriteString(" ")
			writeNode(b, n.Vars)
			b.WriteString(" ")
			writeNode(b, n.Stmts)
		}
		b.WriteString(")")
	case *CallExpr:
		b.WriteString("(call ")
		writeNode(b, n.Func)
		writeItems(b, n.Args)
		b.WriteString(")")
	case *IndexExpr:
		b.WriteString("(index ")
		writeNode(b, n.X)
		b.WriteString(" ")
		writeNode(b, n.Index)
		b.WriteString(")")
	case *MemberExpr:
		b.WriteString("(. ")
		writeNode(b, n.X)
		b.WriteString(" " + n.Member.Name + ")")
	case *AssignExpr:
		b.WriteString("(= ")
		writeNode(b, n.Target)
		b.WriteString(" ")
		writeNode(b, n.Value)
		b.WriteString(")")
	case *UnaryExpr:
		b.WriteString("(" + n.Op.String() + " ")
		writeNode(b, n.X)
		b.WriteString(")")
	case *BinaryExpr:
		b.WriteString("(" + n.Op.String() + " ")
		writeNode(b, n.X)
		b.WriteString(" ")
		writeNode(b, n.Y)
		b.WriteString(")")
	case *NewExpr:
		b.WriteString("(new " + n.Type.String())
		if n.Size != nil {
			b.WriteString(" ")
			writeNode(b, n.Size)
		}
		b.WriteString(")")
	case *ExprStmt:
		if n == nil {
			b.WriteString("_")
			return
		}
		b.WriteString("(expr ")
		writeNode(b, n.X)
		b.WriteString(")")
	case *CompoundStmt:
		b.WriteString("(block")
		writeItems(b, n.Body)
		b.WriteString(")")
	case *ReturnStmt:
		b.WriteString("(return ")
		writeNode(b, n.X)
		b.WriteString(")")
	case *IfStmt:
		b.WriteString("(if ")
		writeNode(b, n.Cond)
		b.WriteString(" ")
		writeNode(b, n.Then)
		if n.Else != nil {
			b.WriteString(" ")
			writeNode(b, n.Else)
		}
		b.WriteString(")")
	case *ForStmt:
		b.WriteString("(for ")
		writeClause(b, n.Init)
		b.WriteString(" ")
		writeClause(b, n.Cond)
		b.WriteString(" ")
		writeNode(b, n.Post)
		b.WriteString(" ")
		writeNode(b, n.Body)
		b.WriteString(")")
	case *WhileStmt:
		b.WriteString("(while ")
		writeNode(b, n.Cond)
		b.WriteString(" ")
		writeNode(b, n.Body)
		b.WriteString(")")
	case nil:
		b.WriteString("_")
	default:
		b.WriteString(n.String())
	}
}

func writeItems(b *strings.Builder, l *List) {
	for item := range l.All() {
		b.WriteString(" ")
		writeNode(b, item)
	}
}

// writeClause prints a for clause as its bare expression.
func writeClause(b *strings.Builder, s *ExprStmt) {
	if s == nil {
		b.WriteString("_")
		return
	}
	writeNode(b, s.X)
}
