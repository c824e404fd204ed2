package expr

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Special tokens
	TOKEN_EOF TokenType = iota
	TOKEN_ILLEGAL

	// Literals
	TOKEN_NUMBER // 123, 45.67, 1e10
	TOKEN_IDENT  // x, mean, col_0

	// Operators
	TOKEN_PLUS    // +
	TOKEN_MINUS   // -
	TOKEN_STAR    // *
	TOKEN_SLASH   // /
	TOKEN_PERCENT // %
	TOKEN_CARET   // ^
	TOKEN_POW     // **
	TOKEN_EQ      // ==
	TOKEN_NE      // !=
	TOKEN_LT      // <
	TOKEN_GT      // >
	TOKEN_LE      // <=
	TOKEN_GE      // >=

	// Delimiters
	TOKEN_COMMA  // ,
	TOKEN_LPAREN // (
	TOKEN_RPAREN // )
)

var tokenNames = map[TokenType]string{
	TOKEN_EOF:     "EOF",
	TOKEN_ILLEGAL: "ILLEGAL",
	TOKEN_NUMBER:  "NUMBER",
	TOKEN_IDENT:   "IDENT",
	TOKEN_PLUS:    "+",
	TOKEN_MINUS:   "-",
	TOKEN_STAR:    "*",
	TOKEN_SLASH:   "/",
	TOKEN_PERCENT: "%",
	TOKEN_CARET:   "^",
	TOKEN_POW:     "**",
	TOKEN_EQ:      "==",
	TOKEN_NE:      "!=",
	TOKEN_LT:      "<",
	TOKEN_GT:      ">",
	TOKEN_LE:      "<=",
	TOKEN_GE:      ">=",
	TOKEN_COMMA:   ",",
	TOKEN_LPAREN:  "(",
	TOKEN_RPAREN:  ")",
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Position represents a location in the source text.
type Position struct {
	Column int // 1-based column
	Offset int // 0-based byte offset
}

// Token is a lexical token with its literal text and position.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
