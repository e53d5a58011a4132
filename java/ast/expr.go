package ast

// Op identifies the operator of an operator expression.
type Op int

const (
	OpCall Op = iota
	OpIndex
	OpDot
	OpAssign
	OpUnaryPlus
	OpUnaryMinus
	OpNot
	OpOr
	OpAnd
	OpEq
	OpNeq
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpPlus
	OpMinus
	OpMul
	OpDiv
	OpMod
	OpNew
)

var opNames = map[Op]string{
	OpCall:       "call",
	OpIndex:      "index",
	OpDot:        ".",
	OpAssign:     "=",
	OpUnaryPlus:  "+",
	OpUnaryMinus: "-",
	OpNot:        "!",
	OpOr:         "||",
	OpAnd:        "&&",
	OpEq:         "==",
	OpNeq:        "!=",
	OpLess:       "<",
	OpLessEq:     "<=",
	OpGreater:    ">",
	OpGreaterEq:  ">=",
	OpPlus:       "+",
	OpMinus:      "-",
	OpMul:        "*",
	OpDiv:        "/",
	OpMod:        "%",
	OpNew:        "new",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "?"
}

// IsUnary reports whether o takes a single operand.
func (o Op) IsUnary() bool {
	return o == OpUnaryPlus || o == OpUnaryMinus || o == OpNot
}

// Operation is implemented by every operator expression.
type Operation interface {
	Expr
	Operator() Op
}

// CallExpr is Func(Args). Args is nil for an empty argument list.
type CallExpr struct {
	Line int
	Func Expr
	Args *List
}

// IndexExpr is X[Index].
type IndexExpr struct {
	Line  int
	X     Expr
	Index *List
}

// MemberExpr is X.Member.
type MemberExpr struct {
	Line   int
	X      Expr
	Member *Id
}

// AssignExpr is Target = Value. Target is always a unary-level expression.
type AssignExpr struct {
	Line   int
	Target Expr
	Value  Expr
}

// UnaryExpr applies OpUnaryPlus, OpUnaryMinus or OpNot to X.
type UnaryExpr struct {
	Line int
	Op   Op
	X    Expr
}

// BinaryExpr is X Op Y for the logical, comparison and arithmetic operators.
type BinaryExpr struct {
	Line int
	Op   Op
	X    Expr
	Y    Expr
}

// NewExpr allocates a value of Type. Size is the bracketed allocation size
// and may be nil only for record types.
type NewExpr struct {
	Line int
	Type *TypeSpec
	Size *List
}

func (*CallExpr) Operator() Op     { return OpCall }
func (*IndexExpr) Operator() Op    { return OpIndex }
func (*MemberExpr) Operator() Op   { return OpDot }
func (*AssignExpr) Operator() Op   { return OpAssign }
func (n *UnaryExpr) Operator() Op  { return n.Op }
func (n *BinaryExpr) Operator() Op { return n.Op }
func (*NewExpr) Operator() Op      { return OpNew }

func (*CallExpr) Kind() Kind   { return KindExpr }
func (*IndexExpr) Kind() Kind  { return KindExpr }
func (*MemberExpr) Kind() Kind { return KindExpr }
func (*AssignExpr) Kind() Kind { return KindExpr }
func (*UnaryExpr) Kind() Kind  { return KindExpr }
func (*BinaryExpr) Kind() Kind { return KindExpr }
func (*NewExpr) Kind() Kind    { return KindExpr }

func (n *CallExpr) Pos() int   { return n.Line }
func (n *IndexExpr) Pos() int  { return n.Line }
func (n *MemberExpr) Pos() int { return n.Line }
func (n *AssignExpr) Pos() int { return n.Line }
func (n *UnaryExpr) Pos() int  { return n.Line }
func (n *BinaryExpr) Pos() int { return n.Line }
func (n *NewExpr) Pos() int    { return n.Line }

func (*CallExpr) exprNode()   {}
func (*IndexExpr) exprNode()  {}
func (*MemberExpr) exprNode() {}
func (*AssignExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*NewExpr) exprNode()    {}

type IntLit struct {
	Line  int
	Value int32
}

type CharLit struct {
	Line  int
	Value byte
}

type StringLit struct {
	Line  int
	Value string
}

type NullLit struct {
	Line int
}

func (*IntLit) Kind() Kind    { return KindConst }
func (*CharLit) Kind() Kind   { return KindConst }
func (*StringLit) Kind() Kind { return KindConst }
func (*NullLit) Kind() Kind   { return KindConst }

func (n *IntLit) Pos() int    { return n.Line }
func (n *CharLit) Pos() int   { return n.Line }
func (n *StringLit) Pos() int { return n.Line }
func (n *NullLit) Pos() int   { return n.Line }

func (*IntLit) exprNode()    {}
func (*CharLit) exprNode()   {}
func (*StringLit) exprNode() {}
func (*NullLit) exprNode()   {}

func (*IntLit) constNode()    {}
func (*CharLit) constNode()   {}
func (*StringLit) constNode() {}
func (*NullLit) constNode()   {}
