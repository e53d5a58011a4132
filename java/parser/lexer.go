package parser

import (
	"fmt"
	"math"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/minijavac/symtab"
)

var lexLog = commonlog.GetLogger("minijavac.lexer")

const eof = -1

type lexState int

const (
	stateStart lexState = iota
	stateInt
	stateIdent
	stateString
	stateChar
	stateTryComment
	stateEscapeInString
	stateEscapeInChar
	stateLineComment
	stateBlockComment
	stateTryEndBlockComment
	stateEnd
)

// Lexer turns source bytes into tokens with one token of lookahead. After
// the first fatal error every call returns that error again.
type Lexer struct {
	input    []byte
	file     string
	pos      int
	line     int
	keywords *symtab.Table[struct{}]
	warn     WarningHandler

	cur      Token
	ahead    Token
	hasAhead bool
	err      error
}

func NewLexer(input []byte, file string) *Lexer {
	l := &Lexer{
		input:    input,
		file:     file,
		line:     1,
		keywords: symtab.New[struct{}](keywordBuckets),
		warn:     discardWarnings,
	}
	for _, kw := range Keywords {
		if err := l.keywords.Insert(kw, struct{}{}); err != nil {
			panic(fmt.Sprintf("parser: keyword table: %v", err))
		}
	}
	lexLog.Debugf("keyword table: %s", l.keywords.Stats())
	return l
}

// SetWarningHandler installs h for non-fatal diagnostics. A nil h drops them.
func (l *Lexer) SetWarningHandler(h WarningHandler) {
	if h == nil {
		h = discardWarnings
	}
	l.warn = h
}

// Line returns the current line number, counting newlines consumed so far.
func (l *Lexer) Line() int {
	return l.line
}

// Current returns the token most recently returned by Next.
func (l *Lexer) Current() Token {
	return l.cur
}

// KeywordStats describes the keyword table's bucket distribution.
func (l *Lexer) KeywordStats() symtab.Stats {
	return l.keywords.Stats()
}

// Next makes the following token current. A token fetched by Peek is used
// without scanning again.
func (l *Lexer) Next() (Token, error) {
	if l.hasAhead {
		l.cur = l.ahead
		l.ahead = Token{}
		l.hasAhead = false
		return l.cur, nil
	}
	if l.err != nil {
		return Token{Kind: TokenEOF, Line: l.line}, l.err
	}
	tok, err := l.scan()
	if err != nil {
		l.err = err
		return Token{Kind: TokenEOF, Line: l.line}, err
	}
	l.cur = tok
	return tok, nil
}

// Peek returns the token after the current one without consuming it.
// Repeated calls return the same token.
func (l *Lexer) Peek() (Token, error) {
	if l.hasAhead {
		return l.ahead, nil
	}
	if l.err != nil {
		return Token{Kind: TokenEOF, Line: l.line}, l.err
	}
	tok, err := l.scan()
	if err != nil {
		l.err = err
		return Token{Kind: TokenEOF, Line: l.line}, err
	}
	l.ahead = tok
	l.hasAhead = true
	return tok, nil
}

// Close releases the keyword table.
func (l *Lexer) Close() {
	l.keywords.Destroy()
}

func (l *Lexer) read() int {
	if l.pos >= len(l.input) {
		return eof
	}
	c := l.input[l.pos]
	l.pos++
	return int(c)
}

func (l *Lexer) unread(c int) {
	if c != eof {
		l.pos--
	}
}

func (l *Lexer) fatalf(format string, args ...any) error {
	return &Diagnostic{
		Severity: SeverityFatal,
		File:     l.file,
		Line:     l.line,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (l *Lexer) warnf(format string, args ...any) {
	d := &Diagnostic{
		Severity: SeverityWarning,
		File:     l.file,
		Line:     l.line,
		Message:  fmt.Sprintf(format, args...),
	}
	lexLog.Debugf("%s", d)
	l.warn(d)
}

func isDigit(c int) bool { return c >= '0' && c <= '9' }
func isAlpha(c int) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

// scan runs the automaton once and returns one token.
func (l *Lexer) scan() (Token, error) {
	var (
		tok   Token
		buf   []byte
		value int64
	)

	state := stateStart
	for state != stateEnd {
		c := l.read()
		switch state {
		case stateStart:
			switch c {
			case ' ', '\t', '\r':
			case '\n':
				l.line++
			case '"':
				tok.Kind = TokenStringConst
				state = stateString
			case '\'':
				tok.Kind = TokenCharConst
				state = stateChar
			case '/':
				state = stateTryComment
			case '.', '[', ']', '(', ')', '{', '}', ';', ',', '+', '-', '*', '%':
				tok.Kind = TokenKeyword
				tok.Text = string(rune(c))
				state = stateEnd
			case '=', '<', '>', '!':
				tok.Kind = TokenKeyword
				buf = append(buf, byte(c))
				if next := l.read(); next == '=' {
					buf = append(buf, '=')
				} else {
					l.unread(next)
				}
				tok.Text = string(buf)
				state = stateEnd
			case '&', '|':
				next := l.read()
				if next != c {
					if next == eof {
						return tok, l.fatalf("undefined operator %c", c)
					}
					return tok, l.fatalf("undefined operator %c%c", c, next)
				}
				tok.Kind = TokenKeyword
				tok.Text = string([]byte{byte(c), byte(c)})
				state = stateEnd
			case eof:
				tok.Kind = TokenEOF
				state = stateEnd
			default:
				switch {
				case isDigit(c):
					tok.Kind = TokenIntConst
					value = int64(c - '0')
					state = stateInt
				case isAlpha(c):
					tok.Kind = TokenIdent
					buf = append(buf, byte(c))
					state = stateIdent
				default:
					return tok, l.fatalf("unrecognized character %c (ascii = %d)", c, c)
				}
			}

		case stateInt:
			if isDigit(c) {
				if value <= math.MaxInt32 {
					value = value*10 + int64(c-'0')
				}
				continue
			}
			if value > math.MaxInt32 {
				l.warnf("integer exceeds INT32_MAX (truncated)")
				value = math.MaxInt32
			}
			tok.Int = int32(value)
			l.unread(c)
			state = stateEnd

		case stateIdent:
			if isAlpha(c) || isDigit(c) || c == '_' {
				buf = append(buf, byte(c))
				continue
			}
			tok.Text = string(buf)
			if l.keywords.Contains(tok.Text) {
				tok.Kind = TokenKeyword
			}
			l.unread(c)
			state = stateEnd

		case stateString:
			switch c {
			case '"':
				tok.Text = string(buf)
				state = stateEnd
			case '\\':
				state = stateEscapeInString
			case '\r', '\n', eof:
				return tok, l.fatalf("unexpected end of string")
			default:
				buf = append(buf, byte(c))
			}

		case stateChar:
			switch c {
			case '\'':
				if len(buf) != 1 {
					l.warnf("exactly one character required in a char const")
				}
				if len(buf) > 0 {
					tok.Char = buf[0]
				}
				state = stateEnd
			case '\\':
				state = stateEscapeInChar
			case '\r', '\n', eof:
				return tok, l.fatalf("unexpected end of character")
			default:
				buf = append(buf, byte(c))
			}

		case stateEscapeInString, stateEscapeInChar:
			var err error
			buf, err = l.escape(c, buf, state == stateEscapeInString)
			if err != nil {
				return tok, err
			}
			if state == stateEscapeInString {
				state = stateString
			} else {
				state = stateChar
			}

		case stateTryComment:
			switch c {
			case '/':
				state = stateLineComment
			case '*':
				state = stateBlockComment
			default:
				l.unread(c)
				tok.Kind = TokenKeyword
				tok.Text = "/"
				state = stateEnd
			}

		case stateLineComment:
			switch c {
			case '\r':
				state = stateStart
			case '\n':
				// leave the newline to stateStart so it is counted once
				l.unread(c)
				state = stateStart
			case eof:
				tok.Kind = TokenEOF
				state = stateEnd
			}

		case stateBlockComment:
			switch c {
			case '*':
				state = stateTryEndBlockComment
			case '\n':
				l.line++
			case eof:
				return tok, l.fatalf("unexpected end of block comment")
			}

		case stateTryEndBlockComment:
			switch c {
			case '/':
				state = stateStart
			case '*':
			case '\n':
				l.line++
				state = stateBlockComment
			case eof:
				return tok, l.fatalf("unexpected end of block comment")
			default:
				state = stateBlockComment
			}
		}
	}

	tok.Line = l.line
	return tok, nil
}

// escape decodes the character after a backslash and appends the result to buf.
func (l *Lexer) escape(c int, buf []byte, inString bool) ([]byte, error) {
	switch c {
	case 'n':
		return append(buf, '\n'), nil
	case 'r':
		return append(buf, '\r'), nil
	case 't':
		return append(buf, '\t'), nil
	case '\\', '"', '\'':
		return append(buf, byte(c)), nil
	case '\r', '\n', eof:
		if inString {
			return buf, l.fatalf("unexpected end of string")
		}
		return buf, l.fatalf("unexpected end of character")
	}

	if !isDigit(c) {
		l.warnf("undefined escape \\%c", c)
		return buf, nil
	}

	ascii := c - '0'
	for count := 1; count < 3; count++ {
		next := l.read()
		if !isDigit(next) {
			l.unread(next)
			l.warnf("ascii must be consist of three decimal digits")
			return buf, nil
		}
		ascii = ascii*10 + next - '0'
	}
	if ascii >= 256 {
		l.warnf("ascii must be less than 256")
		return buf, nil
	}
	return append(buf, byte(ascii)), nil
}
