package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/minijavac/java/ast"
	"github.com/dhamidi/minijavac/slist"
)

func parseString(t *testing.T, src string, opts ...Option) *ast.List {
	t.Helper()
	unit, err := Parse(strings.NewReader(src), opts...)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", src, err)
	}
	return unit
}

func parseError(t *testing.T, src string, opts ...Option) *Diagnostic {
	t.Helper()
	unit, err := Parse(strings.NewReader(src), opts...)
	if err == nil {
		t.Fatalf("Parse(%q) = %v, want error", src, unit)
	}
	if unit != nil {
		t.Errorf("Parse(%q) returned a tree along with the error", src)
	}
	var d *Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("Parse(%q) error = %T, want *Diagnostic", src, err)
	}
	return d
}

// firstStmt parses body inside a one-variable function and returns its
// first statement.
func firstStmt(t *testing.T, body string) ast.Stmt {
	t.Helper()
	unit := parseString(t, "int f() { int x; "+body+" }")
	fn := unit.Nodes()[0].(*ast.FuncDecl)
	return fn.Stmts.Nodes()[0].(ast.Stmt)
}

func TestParseExpressions(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"a = b = c", "(= a (= b c))"},
		{"a - b - c", "(- (- a b) c)"},
		{"a / b % c", "(% (/ a b) c)"},
		{"a || b && c", "(|| a (&& b c))"},
		{"a == b < c", "(== a (< b c))"},
		{"a != b >= c", "(!= a (>= b c))"},
		{"-a * !b", "(* (- a) (! b))"},
		{"+ - a", "(+ (- a))"},
		{"f(1, 2)", "(call f 1 2)"},
		{"f()", "(call f)"},
		{"f(a)(b)", "(call (call f a) b)"},
		{"a[i].x", "(. (index a i) x)"},
		{"a[i][j]", "(index (index a i) j)"},
		{"(a + b) * c", "(* (+ a b) c)"},
		{"a, b", "(, a b)"},
		{"a[i, j]", "(index a (, i j))"},
		{"x = new int[10]", "(= x (new int 10))"},
		{"x = new int[][5]", "(= x (new int[] 5))"},
		{"x = new P", "(= x (new P))"},
		{"x = new P[n]", "(= x (new P n))"},
		{"p.x = 'c'", "(= (. p x) 'c')"},
		{`s = "hi"`, `(= s "hi")`},
		{"p = null", "(= p null)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt, ok := firstStmt(t, tt.input+";").(*ast.ExprStmt)
			if !ok {
				t.Fatalf("first statement is not an expression statement")
			}
			if got := stmt.X.String(); got != tt.want {
				t.Errorf("parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x;", "(expr x)"},
		{"return x + 1;", "(return (+ x 1))"},
		{"if (a) b; else { c; }", "(if a (expr b) (block (expr c)))"},
		{"if (a) if (b) c; else d;", "(if a (if b (expr c) (expr d)))"},
		{"while (i < n) i = i + 1;", "(while (< i n) (expr (= i (+ i 1))))"},
		{"while (1) { break; continue; }", "(while 1 (block (break) (continue)))"},
		{"for (i = 0; i < n; i = i + 1) x;", "(for (= i 0) (< i n) (= i (+ i 1)) (expr x))"},
		{"for (;;) { }", "(for _ _ _ (block))"},
		{"{ { x; } }", "(block (block (expr x)))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := firstStmt(t, tt.input).String(); got != tt.want {
				t.Errorf("parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEmptyFor(t *testing.T) {
	stmt, ok := firstStmt(t, "for (;;) { }").(*ast.ForStmt)
	if !ok {
		t.Fatal("first statement is not a for statement")
	}
	if stmt.Init != nil || stmt.Cond != nil || stmt.Post != nil {
		t.Errorf("for clauses = %v %v %v, want all absent", stmt.Init, stmt.Cond, stmt.Post)
	}
	body, ok := stmt.Body.(*ast.CompoundStmt)
	if !ok {
		t.Fatalf("body = %T, want *ast.CompoundStmt", stmt.Body)
	}
	if body.Body != nil {
		t.Errorf("body statements = %v, want none", body.Body)
	}
}

var ignoreLines = cmp.FilterPath(func(p cmp.Path) bool {
	sf, ok := p.Last().(cmp.StructField)
	return ok && sf.Name() == "Line"
}, cmp.Ignore())

var listItems = cmp.Transformer("Items", func(l *slist.List[ast.Node]) []ast.Node {
	return l.Slice()
})

func TestParseTree(t *testing.T) {
	unit := parseString(t, "record P { int x; } int main() { P p; p = new P; return 0; }")

	named := func(name string) *ast.TypeSpec {
		return &ast.TypeSpec{Base: ast.TypeNamed, Name: &ast.Id{Name: name}}
	}
	want := ast.NewList(ast.ListTranslationUnit, 0,
		&ast.RecordDecl{
			Name: &ast.Id{Name: "P"},
			Vars: ast.NewList(ast.ListVars, 0,
				&ast.VarDecl{Type: &ast.TypeSpec{Base: ast.TypeInt}, Name: &ast.Id{Name: "x"}},
			),
		},
		&ast.FuncDecl{
			Result: &ast.TypeSpec{Base: ast.TypeInt},
			Name:   &ast.Id{Name: "main"},
			Vars: ast.NewList(ast.ListVars, 0,
				&ast.VarDecl{Type: named("P"), Name: &ast.Id{Name: "p"}},
			),
			Stmts: ast.NewList(ast.ListStmts, 0,
				&ast.ExprStmt{X: ast.NewList(ast.ListExpr, 0,
					&ast.AssignExpr{Target: &ast.Id{Name: "p"}, Value: &ast.NewExpr{Type: named("P")}},
				)},
				&ast.ReturnStmt{X: ast.NewList(ast.ListExpr, 0, &ast.IntLit{Value: 0})},
			),
		},
	)

	if diff := cmp.Diff(want, unit, ignoreLines, listItems); diff != "" {
		t.Errorf("parse tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDeclarations(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			"native string read(int n);",
			"(unit (native string read (params (param int n))))",
		},
		{
			"native int exit();",
			"(unit (native int exit (params)))",
		},
		{
			"record P { int x; char[] name; } P make(int x, P[] ps) { P p; return p; }",
			"(unit (record P (vars (var int x) (var char[] name))) " +
				"(func P make (params (param int x) (param P[] ps)) (vars (var P p)) (stmts (return p))))",
		},
		{
			"int[][] grid() { int[][] g; return g; }",
			"(unit (func int[][] grid (params) (vars (var int[][] g)) (stmts (return g))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseString(t, tt.input).String(); got != tt.want {
				t.Errorf("parse(%q) =\n%s\nwant\n%s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty input", "", "empty translation unit is not allowed"},
		{"only comments", "// nothing\n/* here */", "empty translation unit is not allowed"},
		{"assign to binary", "int f() { int x; a + b = c; }", "keyword ';' expected"},
		{"return without value", "int f() { int x; return; }", "primary expression expected"},
		{"statement at top level", "if x;", "unknown type specifier if"},
		{"constant at top level", "123 x", "unknown type specifier"},
		{"bad function name", "int 5() {}", "identifier expected"},
		{"new without size", "int f() { int x; x = new int; }", "keyword '[' expected"},
		{"several variables", "int f() { int a, b; return 0; }", "multiple variable definitions in one statement are not allowed"},
		{"undeclared record", "int f() { int x; Q q; return 0; }", "keyword ';' expected"},
		{"record redefined", "record P { int x; } record P { int y; }", "record 'P' redefined"},
		{"missing variables", "int f() { return 0; }", "unknown type specifier return"},
		{"missing statements", "int f() { int x; }", "primary expression expected"},
		{"empty record", "record P { }", "unknown type specifier }"},
		{"lexer error", "int f() { int x; x = #; }", "unrecognized character # (ascii = 35)"},
		{"unclosed block", "int f() { int x; x;", "primary expression expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := parseError(t, tt.input)
			if d.Severity != SeverityFatal {
				t.Errorf("Severity = %v, want fatal", d.Severity)
			}
			if d.Message != tt.want {
				t.Errorf("Message = %q, want %q", d.Message, tt.want)
			}
		})
	}
}

func TestParseLines(t *testing.T) {
	unit := parseString(t, "record P {\n    int x;\n}\nint main() {\n    int x;\n    x = 1;\n    return x;\n}\n")
	nodes := unit.Nodes()

	rec := nodes[0].(*ast.RecordDecl)
	v := rec.Vars.Nodes()[0].(*ast.VarDecl)
	fn := nodes[1].(*ast.FuncDecl)
	stmts := fn.Stmts.Nodes()

	tests := []struct {
		name string
		node ast.Node
		want int
	}{
		{"record", rec, 1},
		{"field", v, 1},
		{"field type", v.Type, 1},
		{"field name", v.Name, 2},
		{"function", fn, 4},
		{"assignment", stmts[0], 6},
		{"return", stmts[1], 7},
	}
	for _, tt := range tests {
		if got := tt.node.Pos(); got != tt.want {
			t.Errorf("%s line = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestParseErrorLine(t *testing.T) {
	d := parseError(t, "int f() {\n    int x;\n    x = ;\n}\n")
	if d.Line != 3 {
		t.Errorf("Line = %d, want 3", d.Line)
	}
	if got := d.Error(); got != "fatal: primary expression expected (@3)" {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseWarnings(t *testing.T) {
	var warnings []*Diagnostic
	unit := parseString(t, "int f() { int x[5]; x = 'ab'; }",
		WithWarningHandler(func(d *Diagnostic) { warnings = append(warnings, d) }))

	want := []string{"array length in declaration ignored", "exactly one character required in a char const"}
	var got []string
	for _, d := range warnings {
		got = append(got, d.Message)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}

	fn := unit.Nodes()[0].(*ast.FuncDecl)
	v := fn.Vars.Nodes()[0].(*ast.VarDecl)
	if v.Type.String() != "int[]" || !v.Type.Array {
		t.Errorf("x has type %s, want int[]", v.Type)
	}
}

func TestParseTooManyDimensions(t *testing.T) {
	src := "int f() { int" + strings.Repeat("[]", 256) + " x; return x; }"
	d := parseError(t, src)
	if d.Message != "too many array dimensions" {
		t.Errorf("Message = %q", d.Message)
	}

	src = "int f() { int" + strings.Repeat("[]", 255) + " x; return x; }"
	unit := parseString(t, src)
	v := unit.Nodes()[0].(*ast.FuncDecl).Vars.Nodes()[0].(*ast.VarDecl)
	if v.Type.Dim != 255 {
		t.Errorf("Dim = %d, want 255", v.Type.Dim)
	}
}

func TestParseMaxDepth(t *testing.T) {
	src := "int f() { int x; x = " + strings.Repeat("(", 10) + "1" + strings.Repeat(")", 10) + "; }"

	d := parseError(t, src, WithMaxDepth(5))
	if d.Message != "nesting too deep" {
		t.Errorf("Message = %q, want nesting too deep", d.Message)
	}
	parseString(t, src, WithMaxDepth(0))
	parseString(t, src)
}

func TestParseSharedTypeNames(t *testing.T) {
	types := NewTypeNames()
	defer types.Destroy()

	parseString(t, "record P { int x; }", WithTypeNames(types))
	if !types.Contains("P") {
		t.Fatal("record P was not registered")
	}

	src := "int f() { int x; P p; return 0; }"
	parseString(t, src, WithTypeNames(types))
	if d := parseError(t, src); d.Message != "keyword ';' expected" {
		t.Errorf("without shared names: %q", d.Message)
	}

	if d := parseError(t, "record P { int y; }", WithTypeNames(types)); d.Message != "record 'P' redefined" {
		t.Errorf("redefinition across parses: %q", d.Message)
	}
}

func TestParseSharedTypeNamesFailedParse(t *testing.T) {
	types := NewTypeNames()
	defer types.Destroy()

	if d := parseError(t, "record Q { int x; } int f( {", WithTypeNames(types)); d.Message != "unknown type specifier {" {
		t.Errorf("Parse() error = %q", d.Message)
	}
	if types.Contains("Q") {
		t.Fatal("record Q from a failed parse was registered")
	}

	// staged names are visible within the parse that declares them
	parseString(t, "record Q { int x; } int f() { int y; Q q; return 0; }", WithTypeNames(types))
	if !types.Contains("Q") || types.Len() != 1 {
		t.Errorf("types = %v, want [Q]", types.Keys())
	}

	if d := parseError(t, "record R { int x; } record R { int y; }", WithTypeNames(types)); d.Message != "record 'R' redefined" {
		t.Errorf("redefinition within one parse: %q", d.Message)
	}
	if types.Contains("R") {
		t.Error("record R from a failed parse was registered")
	}
}

func TestParserUsedOnce(t *testing.T) {
	p := New(strings.NewReader("int f() { int x; return x; }"))
	defer p.Close()
	if _, err := p.Parse(); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Parse(); !errors.Is(err, ErrParserUsed) {
		t.Errorf("second Parse() error = %v, want %v", err, ErrParserUsed)
	}

	closed := New(strings.NewReader("int f() { int x; return x; }"))
	closed.Close()
	if _, err := closed.Parse(); !errors.Is(err, ErrParserUsed) {
		t.Errorf("Parse() after Close error = %v, want %v", err, ErrParserUsed)
	}
}

func TestParserClose(t *testing.T) {
	p := New(strings.NewReader("record P { int x; }"))
	if _, err := p.Parse(); err != nil {
		t.Fatal(err)
	}
	if !p.TypeNames().Contains("P") {
		t.Error("record P was not registered")
	}
	p.Close()
	if p.TypeNames() != nil {
		t.Error("Close kept the parser's own record table")
	}
	p.Close()
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.mj")
	if err := os.WriteFile(path, []byte("int main() {\n int x;\n return 0;\n}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseFile(path); err != nil {
		t.Errorf("ParseFile(%s) error = %v", path, err)
	}

	missing := filepath.Join(dir, "missing.mj")
	_, err := ParseFile(missing)
	var d *Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("ParseFile(missing) error = %v, want *Diagnostic", err)
	}
	if d.Line != 0 || d.Message != "cannot open file "+missing {
		t.Errorf("ParseFile(missing) = %+v", d)
	}
	if d.File != missing {
		t.Errorf("File = %q, want %q", d.File, missing)
	}
}

type testCase struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

func readTestCases(t *testing.T, path string) []testCase {
	t.Helper()
	s, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var cases []testCase
	if err := yaml.Unmarshal(s, &cases); err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	enabled := cases[:0]
	for _, c := range cases {
		if c.Enable {
			enabled = append(enabled, c)
		}
	}
	return enabled
}

func TestParseFromTestData(t *testing.T) {
	for _, tc := range readTestCases(t, "testdata/testcase.yaml") {
		t.Run(tc.Label, func(t *testing.T) {
			unit, err := Parse(strings.NewReader(tc.Input))
			if want, ok := tc.Expected["error"]; ok {
				if err == nil || err.Error() != want {
					t.Errorf("error = %v, want %s", err, want)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := unit.String(); got != tc.Expected["sexpr"] {
				t.Errorf("got\n%s\nwant\n%s", got, tc.Expected["sexpr"])
			}
		})
	}
}
