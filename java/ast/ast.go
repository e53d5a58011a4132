// Package ast defines the syntax tree produced by package parser.
//
// Every node records the line the lexer had reached when the node was
// created. Lists are backed by slist.List so children come back in the
// order they were parsed.
package ast

type Kind int

const (
	KindDecl Kind = iota
	KindId
	KindTypeSpec
	KindExpr
	KindStmt
	KindList
	KindConst
)

var kindNames = map[Kind]string{
	KindDecl:     "Decl",
	KindId:       "Id",
	KindTypeSpec: "TypeSpec",
	KindExpr:     "Expr",
	KindStmt:     "Stmt",
	KindList:     "List",
	KindConst:    "Const",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is implemented by every tree node.
type Node interface {
	Kind() Kind
	Pos() int
	String() string
}

// Decl is a variable, parameter, record or function declaration.
type Decl interface {
	Node
	declNode()
}

// Expr is anything that can appear in expression position: identifiers,
// constants, comma lists and operator nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement.
type Stmt interface {
	Node
	stmtNode()
}

// Const is a literal.
type Const interface {
	Expr
	constNode()
}

// Id is a name.
type Id struct {
	Line int
	Name string
}

func (*Id) Kind() Kind       { return KindId }
func (n *Id) Pos() int       { return n.Line }
func (*Id) exprNode()        {}
func (n *Id) String() string { return n.Name }

type BaseType int

const (
	TypeInt BaseType = iota
	TypeString
	TypeChar
	TypeNamed
)

var baseTypeNames = map[BaseType]string{
	TypeInt:    "int",
	TypeString: "string",
	TypeChar:   "char",
	TypeNamed:  "named",
}

func (b BaseType) String() string {
	if name, ok := baseTypeNames[b]; ok {
		return name
	}
	return "unknown"
}

// TypeSpec is a type as written in a declaration or a new expression.
// Name is set only when Base is TypeNamed. Dim > 0 implies Array.
type TypeSpec struct {
	Line  int
	Base  BaseType
	Name  *Id
	Array bool
	Dim   uint8
}

func (*TypeSpec) Kind() Kind { return KindTypeSpec }
func (n *TypeSpec) Pos() int { return n.Line }

// TypeName returns the element type name: int, string, char or the record name.
func (n *TypeSpec) TypeName() string {
	if n.Base == TypeNamed && n.Name != nil {
		return n.Name.Name
	}
	return n.Base.String()
}

// String renders the type the way it is written, e.g. "int[][]".
func (n *TypeSpec) String() string {
	s := n.TypeName()
	if n.Array {
		for range n.Dim {
			s += "[]"
		}
	}
	return s
}
