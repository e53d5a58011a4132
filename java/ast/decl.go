package ast

// VarDecl is a local variable, record field or function parameter.
type VarDecl struct {
	Line  int
	Type  *TypeSpec
	Name  *Id
	Param bool
}

// RecordDecl introduces a record type. Vars is never empty.
type RecordDecl struct {
	Line int
	Name *Id
	Vars *List
}

// FuncDecl is a function definition, or a native prototype when Native is
// set. Params is nil for an empty parameter list. Vars and Stmts are set
// only for definitions.
type FuncDecl struct {
	Line   int
	Result *TypeSpec
	Name   *Id
	Params *List
	Native bool
	Vars   *List
	Stmts  *List
}

func (*VarDecl) Kind() Kind    { return KindDecl }
func (*RecordDecl) Kind() Kind { return KindDecl }
func (*FuncDecl) Kind() Kind   { return KindDecl }

func (n *VarDecl) Pos() int    { return n.Line }
func (n *RecordDecl) Pos() int { return n.Line }
func (n *FuncDecl) Pos() int   { return n.Line }

func (*VarDecl) declNode()    {}
func (*RecordDecl) declNode() {}
func (*FuncDecl) declNode()   {}
