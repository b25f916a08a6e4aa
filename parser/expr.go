package parser

import (
	"github.com/sable-lang/sable/ast"
	"github.com/sable-lang/sable/token"
)

// Expression precedence, lowest first: assignment, conditional,
// null-coalescing, logical-or, logical-and, bitwise-or, bitwise-xor,
// bitwise-and, equality, relational, shift, additive, multiplicative,
// exponent, prefix, postfix. Each level recurses into the next-higher
// level and loops on its own operators; assignment and exponent are
// right-associative and recurse into themselves instead.

// expression = assignment ;
func (p *Parser) expression() ast.Expr {
	if p.depth >= maxDepth {
		p.fail(TooDeepError{})

		return nil
	}
	p.depth++
	defer func() { p.depth-- }()

	return p.assignment()
}

// assignment = conditional (("=" | "+=" | "-=" | "*=" | "/=") assignment)? ;
func (p *Parser) assignment() ast.Expr {
	expr := p.conditional()

	if p.checkAny(token.EQUAL, token.PLUSEQUAL, token.MINUSEQUAL, token.STAREQUAL, token.SLASHEQUAL) {
		op := p.advance()
		value := p.assignment()
		if p.err != nil {
			return nil
		}

		switch target := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Target: target, Op: op, Value: value}
		case *ast.IndexExpr:
			return &ast.AssignExpr{Target: target, Op: op, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Object: target.Object, Name: target.Name, Op: op, Value: value}
		default:
			p.fail(invalidAssignment(op))

			return nil
		}
	}

	return expr
}

// conditional = coalesce ("?" expression ":" conditional)? ;
func (p *Parser) conditional() ast.Expr {
	expr := p.coalesce()

	if p.match(token.QUESTION) {
		then := p.expression()
		p.consume(token.COLON)
		elseExpr := p.conditional()

		return &ast.ConditionalExpr{Cond: expr, Then: then, Else: elseExpr}
	}

	return expr
}

// coalesce = logicOr ("??" logicOr)* ;
func (p *Parser) coalesce() ast.Expr {
	return p.binaryLevel(p.logicOr, token.QUESTIONQUESTION)
}

// logicOr = logicAnd ("||" logicAnd)* ;
func (p *Parser) logicOr() ast.Expr {
	return p.binaryLevel(p.logicAnd, token.PIPEPIPE)
}

// logicAnd = bitOr ("&&" bitOr)* ;
func (p *Parser) logicAnd() ast.Expr {
	return p.binaryLevel(p.bitOr, token.AMPAMP)
}

// bitOr = bitXor ("|" bitXor)* ;
func (p *Parser) bitOr() ast.Expr {
	return p.binaryLevel(p.bitXor, token.PIPE)
}

// bitXor = bitAnd ("^" bitAnd)* ;
func (p *Parser) bitXor() ast.Expr {
	return p.binaryLevel(p.bitAnd, token.CARET)
}

// bitAnd = equality ("&" equality)* ;
func (p *Parser) bitAnd() ast.Expr {
	return p.binaryLevel(p.equality, token.AMP)
}

// equality = relational (("==" | "!=") relational)* ;
func (p *Parser) equality() ast.Expr {
	return p.binaryLevel(p.relational, token.EQUALEQUAL, token.BANGEQUAL)
}

// relational = shift (("<" | "<=" | ">" | ">=" | ".." | "...") shift)* ;
func (p *Parser) relational() ast.Expr {
	return p.binaryLevel(p.shift, token.LESS, token.LESSEQUAL, token.GREATER, token.GREATEREQUAL, token.DOTDOT, token.ELLIPSIS)
}

// shift = additive (("<<" | ">>") additive)* ;
func (p *Parser) shift() ast.Expr {
	return p.binaryLevel(p.additive, token.LESSLESS, token.GREATERGREATER)
}

// additive = multiplicative (("+" | "-") multiplicative)* ;
func (p *Parser) additive() ast.Expr {
	return p.binaryLevel(p.multiplicative, token.PLUS, token.MINUS)
}

// multiplicative = exponent (("*" | "/" | "%") exponent)* ;
func (p *Parser) multiplicative() ast.Expr {
	return p.binaryLevel(p.exponent, token.STAR, token.SLASH, token.PERCENT)
}

// exponent = unary ("**" exponent)? ;
func (p *Parser) exponent() ast.Expr {
	expr := p.unary()

	if p.check(token.STARSTAR) {
		op := p.advance()
		right := p.exponent()

		return &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}

	return expr
}

// unary = ("!" | "-" | "~") unary | postfix ;
func (p *Parser) unary() ast.Expr {
	if p.checkAny(token.BANG, token.MINUS, token.TILDE) {
		op := p.advance()
		operand := p.unary()

		return &ast.UnaryExpr{Op: op, Operand: operand}
	}

	return p.postfix()
}

// postfix = primary (callTail | indexTail | getTail)* ;
func (p *Parser) postfix() ast.Expr {
	expr := p.primary()
	for p.err == nil {
		switch {
		case p.check(token.LEFTPAREN):
			paren := p.advance()
			args := p.arguments()
			expr = &ast.CallExpr{Callee: expr, Paren: paren, Args: args}
		case p.check(token.LEFTBRACKET):
			bracket := p.advance()
			index := p.expression()
			p.consume(token.RIGHTBRACKET)
			expr = &ast.IndexExpr{Object: expr, Bracket: bracket, Index: index}
		case p.check(token.DOT):
			p.advance()
			name := p.consume(token.IDENT)
			expr = &ast.GetExpr{Object: expr, Name: name}
		default:
			return expr
		}
	}

	return expr
}

// arguments = (expression ("," expression)*)? ")" ;
func (p *Parser) arguments() []ast.Expr {
	args := []ast.Expr{}
	if !p.check(token.RIGHTPAREN) {
		args = append(args, p.expression())
		for p.match(token.COMMA) {
			args = append(args, p.expression())
		}
	}
	p.consume(token.RIGHTPAREN)

	return args
}

// primary = literal | IDENT | "this" | "super" "." IDENT | "(" expression ")"
//         | "[" (expression ("," expression)*)? "]" | "new" type "(" arguments ;
func (p *Parser) primary() ast.Expr {
	//exhaustive:ignore
	switch tok := p.advance(); tok.Kind {
	case token.INTEGER, token.FLOAT, token.STRING, token.CHAR, token.TRUE, token.FALSE, token.NIL:
		return &ast.LiteralExpr{Token: tok}
	case token.IDENT:
		return &ast.VariableExpr{Name: tok}
	case token.THIS:
		return &ast.ThisExpr{Keyword: tok}
	case token.SUPER:
		p.consume(token.DOT)
		method := p.consume(token.IDENT)

		return &ast.SuperExpr{Keyword: tok, Method: method}
	case token.LEFTPAREN:
		expr := p.expression()
		p.consume(token.RIGHTPAREN)

		return &ast.GroupingExpr{Paren: tok, Expr: expr}
	case token.LEFTBRACKET:
		elements := []ast.Expr{}
		if !p.check(token.RIGHTBRACKET) {
			elements = append(elements, p.expression())
			for p.match(token.COMMA) {
				elements = append(elements, p.expression())
			}
		}
		p.consume(token.RIGHTBRACKET)

		return &ast.ArrayLiteralExpr{Bracket: tok, Elements: elements}
	case token.NEW:
		typ := p.typeRef()
		p.consume(token.LEFTPAREN)
		args := p.arguments()

		return &ast.NewExpr{Keyword: tok, Type: typ, Args: args}
	default:
		p.fail(unexpectedToken(tok, "expression"))

		return nil
	}
}

// binaryLevel parses one left-associative precedence level.
func (p *Parser) binaryLevel(next func() ast.Expr, kinds ...token.Kind) ast.Expr {
	expr := next()
	for p.err == nil && p.checkAny(kinds...) {
		op := p.advance()
		right := next()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: right}
	}

	return expr
}
