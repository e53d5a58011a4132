package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/minijavac/java/parser"
)

// TokenJSONEncoder writes the token stream as a JSON array.
type TokenJSONEncoder struct {
	w      io.Writer
	tokens []parser.Token
}

func NewTokenJSONEncoder(w io.Writer) *TokenJSONEncoder {
	return &TokenJSONEncoder{w: w}
}

// Dump reads l to the end, including the EOF token, and writes the array.
// On a lexical error nothing is written.
func (e *TokenJSONEncoder) Dump(l *parser.Lexer) error {
	e.tokens = e.tokens[:0]
	for {
		tok, err := l.Next()
		if err != nil {
			return err
		}
		e.tokens = append(e.tokens, tok)
		if tok.Kind == parser.TokenEOF {
			break
		}
	}
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *TokenJSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.tokens, "", "  ")
}

// TokenWriter is implemented by the token stream formats.
type TokenWriter interface {
	Dump(l *parser.Lexer) error
}

var (
	_ TokenWriter = (*TokenDumper)(nil)
	_ TokenWriter = (*TokenJSONEncoder)(nil)
)
