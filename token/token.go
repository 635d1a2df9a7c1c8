package token

import "fmt"

//go:generate go run golang.org/x/tools/cmd/stringer@v0.13.0 -type=Kind
type Kind int

const (
	EOF Kind = iota

	// Payload-bearing tokens.
	NUMBER
	IDENT
	STRING
	CHAR

	// Keywords.
	CLASS
	RETURN
	IF
	ELSE
	DEF
	PRINT
	AND
	OR
	NOT
	NONE
	TRUE
	FALSE

	// Line structure.
	NEWLINE
	INDENT
	DEDENT

	// Two-character operators.
	EQ
	NOTEQ
	LESSOREQ
	GREATEROREQ
)

// Token is a lexical atom. Payload fields are zero for kinds that carry
// none; two tokens are equal iff their kind and payload are equal, so
// plain == is structural equality.
type Token struct {
	Kind Kind
	Num  int    // payload of NUMBER
	Text string // payload of IDENT and STRING
	Ch   byte   // payload of CHAR
}

func New(kind Kind) Token {
	return Token{Kind: kind}
}

func Number(value int) Token {
	return Token{Kind: NUMBER, Num: value}
}

func Ident(name string) Token {
	return Token{Kind: IDENT, Text: name}
}

func String(value string) Token {
	return Token{Kind: STRING, Text: value}
}

func Char(ch byte) Token {
	return Token{Kind: CHAR, Ch: ch}
}

func (t Token) String() string {
	switch t.Kind {
	case NUMBER:
		return fmt.Sprintf("NUMBER{%d}", t.Num)
	case IDENT:
		return fmt.Sprintf("IDENT{%s}", t.Text)
	case STRING:
		return fmt.Sprintf("STRING{%s}", t.Text)
	case CHAR:
		return fmt.Sprintf("CHAR{%c}", t.Ch)
	}
	return t.Kind.String()
}
