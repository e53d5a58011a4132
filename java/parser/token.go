package parser

import (
	"fmt"
	"strconv"
)

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenKeyword
	TokenIdent
	TokenIntConst
	TokenCharConst
	TokenStringConst
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:         "EOF",
	TokenKeyword:     "Keyword",
	TokenIdent:       "Identifier",
	TokenIntConst:    "IntConst",
	TokenCharConst:   "CharConst",
	TokenStringConst: "StringConst",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one lexeme. Text holds the keyword or identifier spelling and the
// decoded contents of a string literal; Int and Char hold constant values.
// Line is the lexer's line counter once the token was read.
type Token struct {
	Kind TokenKind
	Text string
	Int  int32
	Char byte
	Line int
}

// IsKeyword reports whether t is the keyword or punctuator text.
func (t Token) IsKeyword(text string) bool {
	return t.Kind == TokenKeyword && t.Text == text
}

func (t Token) String() string {
	switch t.Kind {
	case TokenKeyword:
		return "keyword " + t.Text
	case TokenIdent:
		return "id " + t.Text
	case TokenIntConst:
		return fmt.Sprintf("int %d", t.Int)
	case TokenCharConst:
		return fmt.Sprintf("char %s (ascii = %d)", strconv.QuoteRune(rune(t.Char)), t.Char)
	case TokenStringConst:
		return "string " + strconv.Quote(t.Text)
	case TokenEOF:
		return "eof"
	}
	return "invalid token"
}

// Keywords lists every reserved word and punctuator. Identifiers that
// spell one of these are returned as TokenKeyword.
var Keywords = []string{
	"native", "record", "new", "int", "string", "char", "null",
	"if", "else", "while", "for", "return", "break", "continue",
	";", "[", "]", "{", "}", "(", ")", ",",
	"=", "||", "&&", "==", "!=", "<", "<=", ">", ">=",
	"+", "-", "*", "/", "%", "!", ".",
}

// keywordBuckets is prime and close to len(Keywords).
const keywordBuckets = 37
