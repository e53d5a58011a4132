package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/dhamidi/minijavac/java/ast"
	"github.com/dhamidi/minijavac/java/parser"
)

func parseFile(t *testing.T, path string) *ast.List {
	t.Helper()
	unit, err := parser.ParseFile(path)
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	return unit
}

func TestGolden(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format string
	}{
		{"sample.tree", "testdata/sample.mj", "tree"},
		{"small.sexpr", "testdata/small.mj", "sexpr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc, err := NewEncoder(tt.format, &buf)
			if err != nil {
				t.Fatal(err)
			}
			if err := enc.Encode(parseFile(t, tt.input)); err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			g := goldie.New(t)
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestTokenDumperGolden(t *testing.T) {
	source, err := os.ReadFile("testdata/tokens.mj")
	if err != nil {
		t.Fatal(err)
	}
	l := parser.NewLexer(source, "tokens.mj")
	defer l.Close()

	var buf bytes.Buffer
	if err := NewTokenDumper(&buf).Dump(l); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	g := goldie.New(t)
	g.Assert(t, "tokens.tokens", buf.Bytes())
}

func TestTokenDumperError(t *testing.T) {
	l := parser.NewLexer([]byte("x y #"), "")
	defer l.Close()

	var buf bytes.Buffer
	err := NewTokenDumper(&buf).Dump(l)
	var d *parser.Diagnostic
	if !errors.As(err, &d) {
		t.Fatalf("Dump() error = %v, want *parser.Diagnostic", err)
	}
	if got, want := buf.String(), "1: id x\n1: id y\n"; got != want {
		t.Errorf("output before error = %q, want %q", got, want)
	}
}

func TestTokenJSON(t *testing.T) {
	l := parser.NewLexer([]byte("x = 'A' + 7;"), "")
	defer l.Close()

	var buf bytes.Buffer
	if err := NewTokenJSONEncoder(&buf).Dump(l); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	var got []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 7 {
		t.Fatalf("got %d tokens, want 7", len(got))
	}
	tests := []struct {
		index int
		key   string
		want  any
	}{
		{0, "kind", "Identifier"},
		{0, "text", "x"},
		{2, "kind", "CharConst"},
		{2, "char", float64(65)},
		{4, "int", float64(7)},
		{6, "kind", "EOF"},
	}
	for _, tt := range tests {
		if v := got[tt.index][tt.key]; v != tt.want {
			t.Errorf("token %d %s = %v, want %v", tt.index, tt.key, v, tt.want)
		}
	}
	if _, ok := got[6]["text"]; ok {
		t.Error("EOF token carries text")
	}
}

func TestASTJSON(t *testing.T) {
	unit, err := parser.Parse(strings.NewReader("int f(int a) { int x; x = a * 2; }"))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := NewASTJSONEncoder(&buf).Encode(unit); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	var root astJSONNode
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if root.Kind != "List" || root.List != "TranslationUnit" {
		t.Errorf("root = %s/%s, want List/TranslationUnit", root.Kind, root.List)
	}

	fn := root.Children[0]
	if fn.Node != "FuncDecl" || fn.Line != 1 {
		t.Errorf("first decl = %s at %d, want FuncDecl at 1", fn.Node, fn.Line)
	}
	// result type, name, params, vars, stmts
	if len(fn.Children) != 5 {
		t.Fatalf("FuncDecl has %d children, want 5", len(fn.Children))
	}
	if fn.Children[0].Type != "int" || fn.Children[1].Name != "f" {
		t.Errorf("head = %s %s, want int f", fn.Children[0].Type, fn.Children[1].Name)
	}
	param := fn.Children[2].Children[0]
	if !param.Param {
		t.Error("parameter is not marked as a parameter")
	}

	stmt := fn.Children[4].Children[0]
	assign := stmt.Children[0].Children[0]
	if assign.Op != "=" {
		t.Errorf("assignment op = %q", assign.Op)
	}
	mul := assign.Children[1]
	if mul.Op != "*" || mul.Children[1].Value != float64(2) {
		t.Errorf("rhs = %+v, want a * 2", mul)
	}
}

func TestTreePrinterRejectsNonUnit(t *testing.T) {
	var buf bytes.Buffer
	err := NewTreePrinter(&buf).Encode(ast.NewList(ast.ListStmts, 1))
	if !errors.Is(err, ast.ErrNotTranslationUnit) {
		t.Errorf("Encode() error = %v, want ErrNotTranslationUnit", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q for a rejected tree", buf.String())
	}
}

func TestTreePrinterNative(t *testing.T) {
	unit, err := parser.Parse(strings.NewReader("native char[][] grid();"))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := NewTreePrinter(&buf).Encode(unit); err != nil {
		t.Fatal(err)
	}
	want := "translation unit\n" +
		"    prototype decl\n" +
		"        type specifier = 2-dim array of char\n" +
		"        identifier = grid\n"
	if got := buf.String(); got != want {
		t.Errorf("tree =\n%s\nwant\n%s", got, want)
	}
}

func TestNewEncoderUnknown(t *testing.T) {
	if _, err := NewEncoder("xml", &bytes.Buffer{}); err == nil {
		t.Error("NewEncoder(xml) succeeded")
	}
}
