// Package expr provides lexing and parsing of user-submitted mathematical
// expressions into a closed AST.
//
// # Usage
//
//	expression, err := expr.Parse("sin(x) + mean(y)")
//	if err != nil {
//	    // handle typed parse error
//	}
//
// # Grammar Overview
//
// The parser implements a Pratt parser for arithmetic expressions:
//
//	expression → comparison
//	comparison → additive (( == | != | < | <= | > | >= ) additive)*
//	additive   → multiplicative (( + | - ) multiplicative)*
//	multiplicative → unary (( * | / | % ) unary)*
//	unary      → ( - | + ) unary | power
//	power      → primary (( ^ | ** ) unary)?
//	primary    → NUMBER | IDENT | IDENT '(' args ')' | '(' expression ')'
//
// There is intentionally no syntax for control flow, indexing, attribute
// access, or string literals.
package expr

import (
	"fmt"
	"strconv"
)

// Operator precedence levels.
const (
	precNone       = 0
	precComparison = 1 // ==, !=, <, <=, >, >=
	precAddition   = 2 // +, -
	precMultiply   = 3 // *, /, %
	precUnary      = 4 // unary -, +
	precPower      = 5 // ^, ** (right-associative)
)

// Parser parses an expression into an AST.
type Parser struct {
	lexer  *Lexer
	token  Token // current token
	peek   Token // lookahead token
	errors []error
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// ParseAST parses the input and returns the AST root. Structural gates
// (length, depth, denylist) are the caller's concern; Parse in
// expression.go runs the full pipeline.
func ParseAST(input string) (Node, error) {
	p := NewParser(input)
	root := p.parseExpression()
	if !p.check(TOKEN_EOF) {
		p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, TOKEN_EOF))
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	if root == nil {
		return nil, &SyntaxError{Pos: p.token.Pos, Message: errUnexpectedEOF}
	}
	return root, nil
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t TokenType) bool {
	return p.token.Type == t
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type, t))
	return false
}

// addError adds a parse error.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &SyntaxError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// ---------- Expression Parsing ----------

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() Node {
	return p.parseExpressionWithPrecedence(precNone + 1)
}

// parseExpressionWithPrecedence implements Pratt parsing.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) Node {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for {
		prec := infixPrecedence(p.token.Type)
		if prec < minPrecedence {
			break
		}
		left = p.parseInfixExpr(left, prec)
		if left == nil {
			break
		}
	}

	return left
}

// parsePrefixExpr parses unary operators and primary expressions.
func (p *Parser) parsePrefixExpr() Node {
	switch p.token.Type {
	case TOKEN_MINUS:
		p.nextToken()
		inner := p.parseExpressionWithPrecedence(precUnary)
		if inner == nil {
			return nil
		}
		return &UnaryExpr{Op: TOKEN_MINUS, Expr: inner}

	case TOKEN_PLUS:
		p.nextToken()
		inner := p.parseExpressionWithPrecedence(precUnary)
		if inner == nil {
			return nil
		}
		return &UnaryExpr{Op: TOKEN_PLUS, Expr: inner}

	default:
		return p.parsePrimary()
	}
}

// infixPrecedence returns the precedence of t as an infix operator, or
// precNone if t is not an infix operator.
func infixPrecedence(t TokenType) int {
	switch t {
	case TOKEN_EQ, TOKEN_NE, TOKEN_LT, TOKEN_GT, TOKEN_LE, TOKEN_GE:
		return precComparison
	case TOKEN_PLUS, TOKEN_MINUS:
		return precAddition
	case TOKEN_STAR, TOKEN_SLASH, TOKEN_PERCENT:
		return precMultiply
	case TOKEN_CARET, TOKEN_POW:
		return precPower
	default:
		return precNone
	}
}

// parseInfixExpr parses an infix expression given the left operand.
func (p *Parser) parseInfixExpr(left Node, prec int) Node {
	op := p.token.Type
	p.nextToken()

	// Exponentiation is right-associative; everything else left-associative.
	nextMin := prec + 1
	if op == TOKEN_CARET || op == TOKEN_POW {
		nextMin = prec
	}

	right := p.parseExpressionWithPrecedence(nextMin)
	if right == nil {
		p.addError(fmt.Sprintf("missing right operand for %s", op))
		return nil
	}

	return &BinaryExpr{Left: left, Op: op, Right: right}
}

// parsePrimary parses a number, identifier, call, or parenthesized group.
func (p *Parser) parsePrimary() Node {
	switch p.token.Type {
	case TOKEN_NUMBER:
		lit := p.token.Literal
		pos := p.token.Pos
		value, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.addError(fmt.Sprintf("invalid number literal %q", lit))
			return nil
		}
		p.nextToken()
		return &NumberLit{Value: value, Literal: lit, TokPos: pos}

	case TOKEN_IDENT:
		name := p.token.Literal
		pos := p.token.Pos
		p.nextToken()
		if p.check(TOKEN_LPAREN) {
			return p.parseCall(name, pos)
		}
		return &Ident{Name: name, TokPos: pos}

	case TOKEN_LPAREN:
		p.nextToken()
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		if !p.expect(TOKEN_RPAREN) {
			return nil
		}
		return &ParenExpr{Expr: inner}

	case TOKEN_EOF:
		p.addError(errUnexpectedEOF)
		return nil

	default:
		p.addError(fmt.Sprintf("unexpected token %s", p.token.Type))
		return nil
	}
}

// parseCall parses the argument list of a function call. The opening paren
// is the current token.
func (p *Parser) parseCall(name string, pos Position) Node {
	p.nextToken() // consume '('

	call := &CallExpr{Name: name, TokPos: pos}

	if p.match(TOKEN_RPAREN) {
		return call
	}

	for {
		arg := p.parseExpression()
		if arg == nil {
			return nil
		}
		call.Args = append(call.Args, arg)
		if !p.match(TOKEN_COMMA) {
			break
		}
	}

	if !p.expect(TOKEN_RPAREN) {
		return nil
	}
	return call
}
