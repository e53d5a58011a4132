package ast

type ExprStmt struct {
	Line int
	X    *List
}

// CompoundStmt is a braced block. Body is nil for "{}".
type CompoundStmt struct {
	Line int
	Body *List
}

type ReturnStmt struct {
	Line int
	X    *List
}

type BreakStmt struct {
	Line int
}

type ContinueStmt struct {
	Line int
}

// IfStmt has an optional Else.
type IfStmt struct {
	Line int
	Cond *List
	Then Stmt
	Else Stmt
}

// ForStmt: Init, Cond and Post are nil when their clause is empty.
type ForStmt struct {
	Line int
	Init *ExprStmt
	Cond *ExprStmt
	Post *List
	Body Stmt
}

type WhileStmt struct {
	Line int
	Cond *List
	Body Stmt
}

func (*ExprStmt) Kind() Kind     { return KindStmt }
func (*CompoundStmt) Kind() Kind { return KindStmt }
func (*ReturnStmt) Kind() Kind   { return KindStmt }
func (*BreakStmt) Kind() Kind    { return KindStmt }
func (*ContinueStmt) Kind() Kind { return KindStmt }
func (*IfStmt) Kind() Kind       { return KindStmt }
func (*ForStmt) Kind() Kind      { return KindStmt }
func (*WhileStmt) Kind() Kind    { return KindStmt }

func (n *ExprStmt) Pos() int     { return n.Line }
func (n *CompoundStmt) Pos() int { return n.Line }
func (n *ReturnStmt) Pos() int   { return n.Line }
func (n *BreakStmt) Pos() int    { return n.Line }
func (n *ContinueStmt) Pos() int { return n.Line }
func (n *IfStmt) Pos() int       { return n.Line }
func (n *ForStmt) Pos() int      { return n.Line }
func (n *WhileStmt) Pos() int    { return n.Line }

func (*ExprStmt) stmtNode()     {}
func (*CompoundStmt) stmtNode() {}
func (*ReturnStmt) stmtNode()   {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*IfStmt) stmtNode()       {}
func (*ForStmt) stmtNode()      {}
func (*WhileStmt) stmtNode()    {}
