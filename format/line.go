package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/minijavac/java/parser"
)

// TokenDumper writes one "<line>: <token>" line per token and a final
// end marker.
type TokenDumper struct {
	w io.Writer
}

func NewTokenDumper(w io.Writer) *TokenDumper {
	return &TokenDumper{w: w}
}

// Dump reads l to the end. A lexical error stops the dump and is returned
// after the tokens before it were written.
func (d *TokenDumper) Dump(l *parser.Lexer) error {
	for {
		tok, err := l.Next()
		if err != nil {
			return err
		}
		if tok.Kind == parser.TokenEOF {
			_, err := fmt.Fprintln(d.w, ">>>>> eof <<<<<")
			return err
		}
		if _, err := fmt.Fprintf(d.w, "%d: %s\n", tok.Line, tok); err != nil {
			return err
		}
	}
}
