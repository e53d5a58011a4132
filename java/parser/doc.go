// Package parser turns mini-Java source into the syntax tree of package ast.
//
// # Overview
//
// The language is a small Java-like one: records, functions, native
// prototypes, the primitive types int, char and string, arrays, and the
// usual statements. Parsing stops at the first fatal error; there is no
// recovery and no partial tree.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (AST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │  Keyword    │     │  Record     │
//	                    │  table      │     │  names      │
//	                    └─────────────┘     └─────────────┘
//
// The lexer is a character-level automaton with one byte of pushback. It
// owns the line counter and a symtab.Table of keywords and punctuators.
// The parser pulls tokens with one token of lookahead:
//
//	// Next makes the lookahead (or a freshly scanned token) current.
//	func (l *Lexer) Next() (Token, error)
//
//	// Peek fills the lookahead slot once; repeated calls return the same token.
//	func (l *Lexer) Peek() (Token, error)
//
// # Grammar
//
//	translation_unit := external_decl+
//	external_decl    := "native" function_head ";"
//	                  | "record" ID "{" variable_decl+ "}"
//	                  | function_head "{" variable_decl+ stmt+ "}"
//	function_head    := type_specifier ID "(" [param ("," param)*] ")"
//	variable_decl    := type_specifier ID ("[" [INT] "]")* ";"
//	type_specifier   := ("int" | "string" | "char" | ID) ("[" "]")*
//	stmt             := "{" stmt* "}" | if | while | for
//	                  | "return" expr ";" | "break" ";" | "continue" ";"
//	                  | expr ";"
//	expr             := assignment ("," assignment)*
//	assignment       := unary "=" assignment | logical_or
//
// Binary operators are left associative, from loosest to tightest:
// ||, &&, == !=, < <= > >=, + -, * / %. Unary + - ! bind tighter, then the
// postfix forms call, index and member access.
//
// An identifier starts a declaration only if a record of that name was
// declared earlier. The parser keeps those names in a TypeNames table;
// WithTypeNames shares one table across several parses.
//
// # Diagnostics
//
// Fatal errors come back from Parse as a *Diagnostic. Warnings go to the
// WarningHandler given with WithWarningHandler:
//
//	fatal: keyword ';' expected (@3)
//	warning: integer exceeds INT32_MAX (truncated) (@7)
//
// The line suffix is left out when no line is known.
//
// # Line Numbers
//
// A node's Line is the lexer's line counter at the moment the node is
// created. Because the lexer may already have read the lookahead, this is
// often the line of the token after the construct.
//
// # Example Usage
//
//	unit, err := parser.ParseFile("queens.mj",
//	    parser.WithWarningHandler(func(d *parser.Diagnostic) {
//	        fmt.Fprintln(os.Stderr, d)
//	    }))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(unit)
package parser
