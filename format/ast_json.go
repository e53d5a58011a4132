package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/minijavac/java/ast"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(unit *ast.List) error {
	text, err := e.MarshalText(unit)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(node ast.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToJSON(node), "", "  ")
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Node     string         `json:"node"`
	Line     int            `json:"line"`
	List     string         `json:"list,omitempty"`
	Op       string         `json:"op,omitempty"`
	Name     string         `json:"name,omitempty"`
	Type     string         `json:"type,omitempty"`
	Native   bool           `json:"native,omitempty"`
	Param    bool           `json:"param,omitempty"`
	Value    any            `json:"value,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

func nodeToJSON(n ast.Node) *astJSONNode {
	jn := &astJSONNode{
		Kind: n.Kind().String(),
		Node: strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast."),
		Line: n.Pos(),
	}

	switch n := n.(type) {
	case *ast.List:
		jn.List = n.ListKind.String()
	case *ast.Id:
		jn.Name = n.Name
	case *ast.TypeSpec:
		jn.Type = n.String()
	case *ast.VarDecl:
		jn.Param = n.Param
	case *ast.FuncDecl:
		jn.Native = n.Native
	case *ast.IntLit:
		jn.Value = n.Value
	case *ast.CharLit:
		jn.Value = string(rune(n.Value))
	case *ast.StringLit:
		jn.Value = n.Value
	case ast.Operation:
		jn.Op = n.Operator().String()
	}

	for _, child := range ast.Children(n) {
		jn.Children = append(jn.Children, nodeToJSON(child))
	}
	return jn
}
