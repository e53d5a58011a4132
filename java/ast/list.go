package ast

import (
	"iter"

	"github.com/dhamidi/minijavac/slist"
)

type ListKind int

const (
	ListTranslationUnit ListKind = iota
	ListVars
	ListParams
	ListStmts
	ListExpr
)

var listKindNames = map[ListKind]string{
	ListTranslationUnit: "TranslationUnit",
	ListVars:            "Vars",
	ListParams:          "Params",
	ListStmts:           "Stmts",
	ListExpr:            "Expr",
}

func (k ListKind) String() string {
	if name, ok := listKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// List is an ordered sequence of nodes. A ListExpr list is a comma
// expression and may appear wherever an Expr is allowed.
type List struct {
	Line     int
	ListKind ListKind
	Items    *slist.List[Node]
}

// NewList returns an empty list of the given kind.
func NewList(kind ListKind, line int, items ...Node) *List {
	return &List{Line: line, ListKind: kind, Items: slist.Of(items...)}
}

func (*List) Kind() Kind { return KindList }
func (n *List) Pos() int { return n.Line }
func (*List) exprNode()  {}

// Append adds n at the end.
func (n *List) Append(item Node) {
	n.Items.PushBack(item)
}

// Len returns the number of items; a nil list has none.
func (n *List) Len() int {
	if n == nil {
		return 0
	}
	return n.Items.Len()
}

// All yields the items in parse order.
func (n *List) All() iter.Seq[Node] {
	if n == nil {
		return func(func(Node) bool) {}
	}
	return n.Items.All()
}

// Nodes copies the items into a slice.
func (n *List) Nodes() []Node {
	if n == nil {
		return nil
	}
	return n.Items.Slice()
}
