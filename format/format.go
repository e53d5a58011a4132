package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/minijavac/java/ast"
)

// Encoder writes a parsed translation unit.
type Encoder interface {
	Encode(unit *ast.List) error
}

// Names lists the formats accepted by NewEncoder.
var Names = []string{"json", "tree", "sexpr"}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "json":
		return NewASTJSONEncoder(w), nil
	case "tree":
		return NewTreePrinter(w), nil
	case "sexpr":
		return NewSExprEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Names)
}

// SExprEncoder writes the unit as a single S-expression line.
type SExprEncoder struct {
	w io.Writer
}

func NewSExprEncoder(w io.Writer) *SExprEncoder {
	return &SExprEncoder{w: w}
}

func (e *SExprEncoder) Encode(unit *ast.List) error {
	_, err := fmt.Fprintln(e.w, unit.String())
	return err
}
