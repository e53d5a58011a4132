package parser

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/minijavac/java/ast"
	"github.com/dhamidi/minijavac/symtab"
)

var log = commonlog.GetLogger("minijavac.parser")

// DefaultMaxDepth bounds statement and expression nesting.
const DefaultMaxDepth = 1000

// ErrParserUsed is returned by Parse on a Parser that already parsed its
// input or was closed. A Parser reads its reader once.
var ErrParserUsed = errors.New("parser already used")

// typeNameBuckets sizes a parser's own record name table.
const typeNameBuckets = 31

// TypeNames records the names of declared record types.
type TypeNames = symtab.Table[struct{}]

// NewTypeNames returns an empty record name table.
func NewTypeNames() *TypeNames {
	return symtab.New[struct{}](typeNameBuckets)
}

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithWarningHandler delivers warnings to h instead of dropping them.
func WithWarningHandler(h WarningHandler) Option {
	return func(p *Parser) {
		p.warn = h
	}
}

// WithMaxDepth sets the nesting limit. Zero disables the check.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

// WithTypeNames makes the parser register and look up record names in
// types, so records declared by earlier parses stay known. Names declared
// by this parse are added only if the whole input parses. The parser does
// not destroy a table it was given.
func WithTypeNames(types *TypeNames) Option {
	return func(p *Parser) {
		p.types = types
		p.sharedTypes = true
	}
}

type Parser struct {
	file        string
	warn        WarningHandler
	maxDepth    int
	depth       int
	reader      io.Reader
	lex         *Lexer
	types       *TypeNames
	sharedTypes bool
	staged      *TypeNames
	used        bool
}

// bailout carries a fatal diagnostic from deep in the descent up to Parse.
type bailout struct {
	diag *Diagnostic
}

func New(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		reader:   r,
		warn:     discardWarnings,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.warn == nil {
		p.warn = discardWarnings
	}
	if p.types == nil {
		p.types = NewTypeNames()
	}
	return p
}

// Parse reads the whole input and parses it as a translation unit. On the
// first fatal error it returns a nil tree and a *Diagnostic.
func Parse(r io.Reader, opts ...Option) (*ast.List, error) {
	p := New(r, opts...)
	defer p.Close()
	return p.Parse()
}

// ParseFile parses the file at path. A file that cannot be read yields a
// Diagnostic without a line number.
func ParseFile(path string, opts ...Option) (*ast.List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Diagnostic{
			Severity: SeverityFatal,
			File:     path,
			Message:  fmt.Sprintf("cannot open file %s", path),
		}
	}
	defer f.Close()
	return Parse(f, append([]Option{WithFile(path)}, opts...)...)
}

// TypeNames returns the table of record names seen so far.
func (p *Parser) TypeNames() *TypeNames {
	return p.types
}

// Close releases the lexer and, unless it was supplied by WithTypeNames,
// the record name table.
func (p *Parser) Close() {
	p.used = true
	if p.lex != nil {
		p.lex.Close()
		p.lex = nil
	}
	if !p.sharedTypes && p.types != nil {
		p.types.Destroy()
		p.types = nil
	}
}

// Parse parses the whole input. It may be called once per Parser.
func (p *Parser) Parse() (unit *ast.List, err error) {
	if p.used {
		return nil, ErrParserUsed
	}
	p.used = true

	input, err := io.ReadAll(p.reader)
	if err != nil {
		return nil, &Diagnostic{
			Severity: SeverityFatal,
			File:     p.file,
			Message:  fmt.Sprintf("cannot read %s: %v", p.displayName(), err),
		}
	}
	p.lex = NewLexer(input, p.file)
	p.lex.SetWarningHandler(p.warn)
	p.depth = 0
	if p.sharedTypes {
		p.staged = NewTypeNames()
		defer func() {
			p.staged.Destroy()
			p.staged = nil
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			log.Debugf("%s", b.diag)
			unit, err = nil, b.diag
		}
	}()
	unit = p.parseTranslationUnit()
	p.commitTypes()
	return unit, nil
}

// commitTypes moves the record names staged during a successful parse into
// the shared table.
func (p *Parser) commitTypes() {
	if p.staged == nil {
		return
	}
	for _, name := range p.staged.Keys() {
		if err := p.types.Insert(name, struct{}{}); err != nil {
			p.fail(err)
		}
	}
}

// knownType reports whether name is a declared record, staged or not.
func (p *Parser) knownType(name string) bool {
	return p.types.Contains(name) || p.staged != nil && p.staged.Contains(name)
}

// declareType registers a record name. With a shared table the name is
// staged until the parse succeeds.
func (p *Parser) declareType(name string) error {
	if p.staged == nil {
		return p.types.Insert(name, struct{}{})
	}
	if p.types.Contains(name) {
		return fmt.Errorf("%w: %q", symtab.ErrDuplicateKey, name)
	}
	return p.staged.Insert(name, struct{}{})
}

func (p *Parser) displayName() string {
	if p.file == "" {
		return "input"
	}
	return p.file
}

func (p *Parser) line() int {
	return p.lex.Line()
}

func (p *Parser) fatalf(format string, args ...any) {
	panic(bailout{&Diagnostic{
		Severity: SeverityFatal,
		File:     p.file,
		Line:     p.line(),
		Message:  fmt.Sprintf(format, args...),
	}})
}

func (p *Parser) warnf(format string, args ...any) {
	d := &Diagnostic{
		Severity: SeverityWarning,
		File:     p.file,
		Line:     p.line(),
		Message:  fmt.Sprintf(format, args...),
	}
	log.Debugf("%s", d)
	p.warn(d)
}

func (p *Parser) fail(err error) {
	var d *Diagnostic
	if errors.As(err, &d) {
		panic(bailout{d})
	}
	p.fatalf("%v", err)
}

func (p *Parser) peek() Token {
	tok, err := p.lex.Peek()
	if err != nil {
		p.fail(err)
	}
	return tok
}

func (p *Parser) advance() Token {
	tok, err := p.lex.Next()
	if err != nil {
		p.fail(err)
	}
	return tok
}

// check reports whether the next token is the keyword text.
func (p *Parser) check(text string) bool {
	return p.peek().IsKeyword(text)
}

func (p *Parser) checkKind(kind TokenKind) bool {
	return p.peek().Kind == kind
}

// expect consumes the next token, which must be the keyword text.
func (p *Parser) expect(text string) {
	if !p.advance().IsKeyword(text) {
		p.fatalf("keyword '%s' expected", text)
	}
}

func (p *Parser) currentIs(text string) bool {
	return p.lex.Current().IsKeyword(text)
}

func (p *Parser) atEOF() bool {
	return p.checkKind(TokenEOF)
}

// startsType reports whether the next token can begin a declaration: a
// primitive type keyword or a declared record name.
func (p *Parser) startsType() bool {
	tok := p.peek()
	switch tok.Kind {
	case TokenKeyword:
		return tok.Text == "int" || tok.Text == "char" || tok.Text == "string"
	case TokenIdent:
		return p.knownType(tok.Text)
	}
	return false
}

// nest guards recursion depth; call as defer p.nest()().
func (p *Parser) nest() func() {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		p.fatalf("nesting too deep")
	}
	return func() { p.depth-- }
}

func (p *Parser) parseTranslationUnit() *ast.List {
	if p.atEOF() {
		p.fatalf("empty translation unit is not allowed")
	}
	unit := ast.NewList(ast.ListTranslationUnit, p.line())
	for {
		unit.Append(p.parseExternalDecl())
		if p.atEOF() {
			return unit
		}
	}
}

func (p *Parser) parseExternalDecl() ast.Decl {
	switch tok := p.peek(); {
	case tok.IsKeyword("native"):
		return p.parsePrototypeDecl()
	case tok.IsKeyword("record"):
		return p.parseRecordDef()
	}
	return p.parseFunctionDef()
}

func (p *Parser) parsePrototypeDecl() *ast.FuncDecl {
	p.expect("native")
	fn := &ast.FuncDecl{Line: p.line(), Native: true}
	p.parseFunctionHead(fn)
	p.expect(";")
	return fn
}

func (p *Parser) parseRecordDef() *ast.RecordDecl {
	rec := &ast.RecordDecl{Line: p.line()}
	p.expect("record")
	rec.Name = p.parseId()
	if err := p.declareType(rec.Name.Name); err != nil {
		if errors.Is(err, symtab.ErrDuplicateKey) {
			p.fatalf("record '%s' redefined", rec.Name.Name)
		}
		p.fail(err)
	}
	p.expect("{")
	rec.Vars = p.parseVariableDeclList()
	p.expect("}")
	log.Debugf("record: %s", rec.Name.Name)
	return rec
}

func (p *Parser) parseFunctionDef() *ast.FuncDecl {
	fn := &ast.FuncDecl{Line: p.line()}
	p.parseFunctionHead(fn)
	p.expect("{")
	fn.Vars = p.parseVariableDeclList()
	fn.Stmts = p.parseStmtList()
	p.expect("}")
	return fn
}

func (p *Parser) parseFunctionHead(fn *ast.FuncDecl) {
	fn.Result = p.parseTypeSpecifier()
	fn.Name = p.parseId()
	p.expect("(")
	if p.check(")") {
		p.advance()
	} else {
		fn.Params = p.parseParameterList()
		p.expect(")")
	}
	log.Debugf("fun: '%s' returns %s with %d params", fn.Name.Name, typeLabel(fn.Result), fn.Params.Len())
}

func (p *Parser) parseVariableDeclList() *ast.List {
	vars := ast.NewList(ast.ListVars, p.line())
	for {
		vars.Append(p.parseVariableDecl())
		if !p.startsType() {
			return vars
		}
	}
}

func (p *Parser) parseStmtList() *ast.List {
	stmts := ast.NewList(ast.ListStmts, p.line())
	for {
		stmts.Append(p.parseStmt())
		if p.check("}") {
			return stmts
		}
	}
}

// parseTypeSpecifier reads a base type and any "[]" pairs after it. A "["
// not followed by "]" ends the scan and stays consumed: the caller parses
// the bracketed expression, which is how "new int[n]" gets its size.
func (p *Parser) parseTypeSpecifier() *ast.TypeSpec {
	ts := &ast.TypeSpec{Line: p.line()}
	switch {
	case p.checkKind(TokenKeyword):
		tok := p.advance()
		switch tok.Text {
		case "int":
			ts.Base = ast.TypeInt
		case "string":
			ts.Base = ast.TypeString
		case "char":
			ts.Base = ast.TypeChar
		default:
			p.fatalf("unknown type specifier %s", tok.Text)
		}
	case p.checkKind(TokenIdent):
		ts.Base = ast.TypeNamed
		ts.Name = p.parseId()
	default:
		p.fatalf("unknown type specifier")
	}

	for p.check("[") {
		p.advance()
		if !p.check("]") {
			break
		}
		p.advance()
		p.addDim(ts)
	}
	ts.Array = ts.Dim > 0
	return ts
}

func (p *Parser) addDim(ts *ast.TypeSpec) {
	if ts.Dim == 255 {
		p.fatalf("too many array dimensions")
	}
	ts.Dim++
	ts.Array = true
}

func (p *Parser) parseParameterList() *ast.List {
	params := ast.NewList(ast.ListParams, p.line())
	for {
		params.Append(p.parseParameterDecl())
		if !p.check(",") {
			return params
		}
		p.advance()
	}
}

func (p *Parser) parseVariableDecl() *ast.VarDecl {
	v := &ast.VarDecl{Line: p.line()}
	v.Type = p.parseTypeSpecifier()
	v.Name = p.parseId()

	// C-style declarator: int x[5];
	for p.check("[") {
		p.advance()
		if p.checkKind(TokenIntConst) {
			p.advance()
			p.warnf("array length in declaration ignored")
		}
		p.expect("]")
		p.addDim(v.Type)
	}

	if p.check(",") {
		p.fatalf("multiple variable definitions in one statement are not allowed")
	}
	p.expect(";")
	log.Debugf("var: '%s' of type %s", v.Name.Name, typeLabel(v.Type))
	return v
}

func (p *Parser) parseParameterDecl() *ast.VarDecl {
	param := &ast.VarDecl{Line: p.line(), Param: true}
	param.Type = p.parseTypeSpecifier()
	param.Name = p.parseId()
	log.Debugf("param: '%s' of type %s", param.Name.Name, typeLabel(param.Type))
	return param
}

func (p *Parser) parseStmt() ast.Stmt {
	defer p.nest()()

	switch tok := p.peek(); {
	case tok.IsKeyword("{"):
		return p.parseCompoundStmt()
	case tok.IsKeyword("if"):
		return p.parseSelectionStmt()
	case tok.IsKeyword("while"), tok.IsKeyword("for"):
		return p.parseIterationStmt()
	case tok.IsKeyword("return"), tok.IsKeyword("break"), tok.IsKeyword("continue"):
		return p.parseJumpStmt()
	}
	return p.parseExprStmt()
}

func (p *Parser) parseCompoundStmt() *ast.CompoundStmt {
	p.expect("{")
	if p.check("}") {
		p.advance()
		return &ast.CompoundStmt{Line: p.line()}
	}
	block := &ast.CompoundStmt{Line: p.line()}
	block.Body = p.parseStmtList()
	p.expect("}")
	return block
}

func (p *Parser) parseExprStmt() *ast.ExprStmt {
	stmt := &ast.ExprStmt{Line: p.line()}
	stmt.X = p.parseExpr()
	p.expect(";")
	return stmt
}

func (p *Parser) parseSelectionStmt() *ast.IfStmt {
	stmt := &ast.IfStmt{Line: p.line()}
	p.expect("if")
	p.expect("(")
	stmt.Cond = p.parseExpr()
	p.expect(")")
	stmt.Then = p.parseStmt()
	if p.check("else") {
		p.advance()
		stmt.Else = p.parseStmt()
	}
	return stmt
}

func (p *Parser) parseIterationStmt() ast.Stmt {
	if p.check("while") {
		p.advance()
		stmt := &ast.WhileStmt{Line: p.line()}
		p.expect("(")
		stmt.Cond = p.parseExpr()
		p.expect(")")
		stmt.Body = p.parseStmt()
		return stmt
	}

	p.expect("for")
	stmt := &ast.ForStmt{Line: p.line()}
	p.expect("(")
	if p.check(";") {
		p.advance()
	} else {
		stmt.Init = p.parseExprStmt()
	}
	if p.check(";") {
		p.advance()
	} else {
		stmt.Cond = p.parseExprStmt()
	}
	if !p.check(")") {
		stmt.Post = p.parseExpr()
	}
	p.expect(")")
	stmt.Body = p.parseStmt()
	return stmt
}

func (p *Parser) parseJumpStmt() ast.Stmt {
	line := p.line()
	var stmt ast.Stmt
	switch tok := p.advance(); tok.Text {
	case "return":
		ret := &ast.ReturnStmt{Line: line}
		ret.X = p.parseExpr()
		stmt = ret
	case "break":
		stmt = &ast.BreakStmt{Line: line}
	default:
		stmt = &ast.ContinueStmt{Line: line}
	}
	p.expect(";")
	return stmt
}

func (p *Parser) parseExpr() *ast.List {
	list := ast.NewList(ast.ListExpr, p.line())
	for {
		list.Append(p.parseAssignmentExpr())
		if !p.check(",") {
			return list
		}
		p.advance()
	}
}

// parseAssignmentExpr parses a unary expression first. If "=" follows it is
// the assignment target; otherwise it becomes the leftmost operand of the
// binary operator chain.
func (p *Parser) parseAssignmentExpr() ast.Expr {
	defer p.nest()()

	unary := p.parseUnaryExpr(nil)
	if p.check("=") {
		p.advance()
		assign := &ast.AssignExpr{Line: p.line(), Target: unary}
		assign.Value = p.parseAssignmentExpr()
		return assign
	}
	return p.parseLogicalOrExpr(unary)
}

var (
	logicalOrOps  = map[string]ast.Op{"||": ast.OpOr}
	logicalAndOps = map[string]ast.Op{"&&": ast.OpAnd}
	equalityOps   = map[string]ast.Op{"==": ast.OpEq, "!=": ast.OpNeq}
	relationalOps = map[string]ast.Op{"<": ast.OpLess, "<=": ast.OpLessEq, ">": ast.OpGreater, ">=": ast.OpGreaterEq}
	additiveOps   = map[string]ast.Op{"+": ast.OpPlus, "-": ast.OpMinus}
	multOps       = map[string]ast.Op{"*": ast.OpMul, "/": ast.OpDiv, "%": ast.OpMod}
	unaryOps      = map[string]ast.Op{"+": ast.OpUnaryPlus, "-": ast.OpUnaryMinus, "!": ast.OpNot}
)

type operandFunc func(p *Parser, first ast.Expr) ast.Expr

// parseLeftAssoc parses operand (op operand)*. first, when non-nil, is an
// already parsed unary expression that becomes the leftmost operand.
func (p *Parser) parseLeftAssoc(first ast.Expr, operand operandFunc, ops map[string]ast.Op) ast.Expr {
	x := operand(p, first)
	for {
		tok := p.peek()
		if tok.Kind != TokenKeyword {
			return x
		}
		op, ok := ops[tok.Text]
		if !ok {
			return x
		}
		p.advance()
		bin := &ast.BinaryExpr{Line: p.line(), Op: op, X: x}
		bin.Y = operand(p, nil)
		x = bin
	}
}

func (p *Parser) parseLogicalOrExpr(first ast.Expr) ast.Expr {
	return p.parseLeftAssoc(first, (*Parser).parseLogicalAndExpr, logicalOrOps)
}

func (p *Parser) parseLogicalAndExpr(first ast.Expr) ast.Expr {
	return p.parseLeftAssoc(first, (*Parser).parseEqualityExpr, logicalAndOps)
}

func (p *Parser) parseEqualityExpr(first ast.Expr) ast.Expr {
	return p.parseLeftAssoc(first, (*Parser).parseRelationalExpr, equalityOps)
}

func (p *Parser) parseRelationalExpr(first ast.Expr) ast.Expr {
	return p.parseLeftAssoc(first, (*Parser).parseAdditiveExpr, relationalOps)
}

func (p *Parser) parseAdditiveExpr(first ast.Expr) ast.Expr {
	return p.parseLeftAssoc(first, (*Parser).parseMultExpr, additiveOps)
}

func (p *Parser) parseMultExpr(first ast.Expr) ast.Expr {
	return p.parseLeftAssoc(first, (*Parser).parseUnaryExpr, multOps)
}

func (p *Parser) parseUnaryExpr(first ast.Expr) ast.Expr {
	if first != nil {
		return first
	}
	defer p.nest()()

	line := p.line()
	if tok := p.peek(); tok.Kind == TokenKeyword {
		if op, ok := unaryOps[tok.Text]; ok {
			p.advance()
			u := &ast.UnaryExpr{Line: line, Op: op}
			u.X = p.parseUnaryExpr(nil)
			return u
		}
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.Expr {
	x := p.parsePrimary()
	for {
		switch {
		case p.check("("):
			p.advance()
			call := &ast.CallExpr{Line: p.line(), Func: x}
			x = call
			if p.check(")") {
				p.advance()
				continue
			}
			call.Args = p.parseExpr()
			p.expect(")")
		case p.check("["):
			p.advance()
			index := &ast.IndexExpr{Line: p.line(), X: x}
			x = index
			index.Index = p.parseExpr()
			p.expect("]")
		case p.check("."):
			p.advance()
			member := &ast.MemberExpr{Line: p.line(), X: x}
			x = member
			member.Member = p.parseId()
		default:
			return x
		}
	}
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()
	switch {
	case tok.Kind == TokenIdent:
		return p.parseId()
	case tok.Kind == TokenIntConst:
		p.advance()
		return &ast.IntLit{Line: p.line(), Value: tok.Int}
	case tok.Kind == TokenCharConst:
		p.advance()
		return &ast.CharLit{Line: p.line(), Value: tok.Char}
	case tok.Kind == TokenStringConst:
		p.advance()
		return &ast.StringLit{Line: p.line(), Value: tok.Text}
	case tok.IsKeyword("null"):
		p.advance()
		return &ast.NullLit{Line: p.line()}
	case tok.IsKeyword("("):
		p.advance()
		x := p.parseExpr()
		p.expect(")")
		return x
	case tok.IsKeyword("new"):
		p.advance()
		return p.parseNew()
	}
	p.fatalf("primary expression expected")
	return nil
}

// parseNew parses the rest of a new expression. A primitive element type
// needs a size; a record may omit it.
func (p *Parser) parseNew() *ast.NewExpr {
	n := &ast.NewExpr{Line: p.line()}
	n.Type = p.parseTypeSpecifier()
	if n.Type.Base != ast.TypeNamed {
		if !p.currentIs("[") {
			p.fatalf("keyword '[' expected")
		}
		n.Size = p.parseExpr()
		p.expect("]")
		return n
	}
	if p.currentIs("[") {
		n.Size = p.parseExpr()
		p.expect("]")
	}
	return n
}

func (p *Parser) parseId() *ast.Id {
	tok := p.advance()
	if tok.Kind != TokenIdent {
		p.fatalf("identifier expected")
	}
	return &ast.Id{Line: p.line(), Name: tok.Text}
}

// typeLabel renders a type for the debug trace, e.g. "2-dim array of int".
func typeLabel(ts *ast.TypeSpec) string {
	if ts.Array {
		return fmt.Sprintf("%d-dim array of %s", ts.Dim, ts.TypeName())
	}
	return ts.TypeName()
}
