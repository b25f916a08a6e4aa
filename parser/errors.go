package parser

import (
	"github.com/sable-lang/sable/token"
	"github.com/sable-lang/sable/utils"
)

type UnexpectedTokenError struct {
	Expected []string
}

func (e UnexpectedTokenError) Error() string {
	msg := ""
	if len(e.Expected) >= 1 {
		msg = e.Expected[0]
	}
	for _, ex := range e.Expected[1:] {
		msg = msg + ", " + ex
	}

	return "unexpected token: expected " + msg
}

func unexpectedToken(t token.Token, expected ...string) error {
	return utils.ErrorAt{Where: t, Err: UnexpectedTokenError{Expected: expected}}
}

type InvalidAssignmentError struct{}

func (e InvalidAssignmentError) Error() string {
	return "invalid assignment target"
}

func invalidAssignment(op token.Token) error {
	return utils.ErrorAt{Where: op, Err: InvalidAssignmentError{}}
}

type TooDeepError struct{}

func (e TooDeepError) Error() string {
	return "expression is nested too deeply"
}

// fail records the first error; later errors are ignored because the
// parse aborts.
func (p *Parser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) advance() token.Token {
	if p.isAtEnd() {
		return p.peek()
	}
	p.current++

	return p.previous()
}

func (p Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p Parser) isAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p Parser) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return kind == token.EOF
	}

	return p.peek().Kind == kind
}

func (p Parser) checkAny(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}

	return false
}

// match consumes the next token only if it has the given kind.
func (p *Parser) match(kind token.Kind) bool {
	if p.isAtEnd() || !p.check(kind) {
		return false
	}
	p.advance()

	return true
}

func (p *Parser) consume(kind token.Kind) token.Token {
	if p.check(kind) && !p.isAtEnd() {
		return p.advance()
	}

	p.fail(unexpectedToken(p.peek(), kind.String()))

	return p.peek()
}
