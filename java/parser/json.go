package parser

import "encoding/json"

type jsonToken struct {
	Kind string  `json:"kind"`
	Line int     `json:"line"`
	Text *string `json:"text,omitempty"`
	Int  *int32  `json:"int,omitempty"`
	Char *byte   `json:"char,omitempty"`
}

func (t Token) MarshalJSON() ([]byte, error) {
	jt := jsonToken{
		Kind: t.Kind.String(),
		Line: t.Line,
	}
	switch t.Kind {
	case TokenKeyword, TokenIdent, TokenStringConst:
		jt.Text = &t.Text
	case TokenIntConst:
		jt.Int = &t.Int
	case TokenCharConst:
		jt.Char = &t.Char
	}
	return json.Marshal(jt)
}
