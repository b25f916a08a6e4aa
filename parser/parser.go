package parser

import (
	"github.com/sable-lang/sable/ast"
	"github.com/sable-lang/sable/token"
)

// maxDepth bounds expression nesting so that pathological input cannot
// blow the stack.
const maxDepth = 500

// Parse turns a token stream into a list of declarations. Parsing is
// fail-fast: the first grammar violation aborts and no partial AST is
// returned.
func Parse(tokens []token.Token) ([]ast.Decl, error) {
	parser := NewParser(tokens)

	return parser.Parse()
}

type Parser struct {
	tokens  []token.Token
	current int
	depth   int
	err     error
}

func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, current: 0}
}

func (p *Parser) Parse() ([]ast.Decl, error) {
	p.err = nil
	decls := []ast.Decl{}
	for !p.isAtEnd() && p.err == nil {
		decls = append(decls, p.decl())
	}
	if p.err != nil {
		return nil, p.err
	}

	return decls, nil
}

// ParseExpr parses a single expression followed by EOF. The REPL uses it
// for bare expression input.
func (p *Parser) ParseExpr() (ast.Expr, error) {
	p.err = nil
	expr := p.expression()
	if p.err == nil && !p.isAtEnd() {
		p.fail(unexpectedToken(p.peek(), "end of input"))
	}
	if p.err != nil {
		return nil, p.err
	}

	return expr, nil
}

// decl = classDecl | structDecl | enumDecl | interfaceDecl | funcDecl | varDecl ;
func (p *Parser) decl() ast.Decl {
	isAbstract := p.match(token.ABSTRACT)
	isSealed := !isAbstract && p.match(token.SEALED)
	isFinal := !isAbstract && !isSealed && p.match(token.FINAL)

	switch {
	case p.check(token.CLASS):
		return p.classDecl(isAbstract, isSealed, isFinal)
	case isAbstract || isSealed || isFinal:
		p.fail(unexpectedToken(p.peek(), "`class`"))

		return nil
	case p.check(token.STRUCT):
		return p.structDecl()
	case p.check(token.ENUM):
		return p.enumDecl()
	case p.check(token.INTERFACE):
		return p.interfaceDecl()
	case p.check(token.FUNC):
		return p.funcDecl(false, false)
	case p.check(token.VAR), p.check(token.CONST):
		return p.varDecl()
	default:
		p.fail(unexpectedToken(p.peek(), "declaration"))

		return nil
	}
}

// classDecl = modifier* "class" IDENT typeParams? inherits? permits? classBody ;
// inherits = ":" IDENT ("," IDENT)* ;
// permits = "permits" IDENT ("," IDENT)* ;
func (p *Parser) classDecl(isAbstract, isSealed, isFinal bool) *ast.ClassDecl {
	keyword := p.consume(token.CLASS)
	name := p.consume(token.IDENT)
	typeParams := p.typeParams()

	decl := &ast.ClassDecl{
		Keyword:    keyword,
		Name:       name,
		TypeParams: typeParams,
		IsAbstract: isAbstract,
		IsSealed:   isSealed,
		IsFinal:    isFinal,
	}

	if p.match(token.COLON) {
		// The first inherited name is recorded as the superclass; whether
		// it actually denotes a class is decided during semantic analysis.
		first := p.consume(token.IDENT)
		decl.Superclass = &first
		for p.match(token.COMMA) {
			decl.Interfaces = append(decl.Interfaces, p.consume(token.IDENT))
		}
	}

	// `permits` is a contextual keyword: only meaningful right after a
	// sealed class header.
	if p.check(token.IDENT) && p.peek().Lexeme == "permits" {
		p.advance()
		decl.Permits = append(decl.Permits, p.consume(token.IDENT))
		for p.match(token.COMMA) {
			decl.Permits = append(decl.Permits, p.consume(token.IDENT))
		}
	}

	decl.Properties, decl.Methods = p.typeBody()

	return decl
}

// structDecl = "struct" IDENT typeParams? (":" IDENT ("," IDENT)*)? classBody ;
// Structs do not inherit; every name after `:` is an interface.
func (p *Parser) structDecl() *ast.StructDecl {
	keyword := p.consume(token.STRUCT)
	name := p.consume(token.IDENT)
	typeParams := p.typeParams()

	decl := &ast.StructDecl{Keyword: keyword, Name: name, TypeParams: typeParams}

	if p.match(token.COLON) {
		decl.Interfaces = append(decl.Interfaces, p.consume(token.IDENT))
		for p.match(token.COMMA) {
			decl.Interfaces = append(decl.Interfaces, p.consume(token.IDENT))
		}
	}

	decl.Properties, decl.Methods = p.typeBody()

	return decl
}

// typeBody = "{" (varDecl | funcDecl)* "}" ;
func (p *Parser) typeBody() ([]*ast.VarDecl, []*ast.FuncDecl) {
	p.consume(token.LEFTBRACE)

	var properties []*ast.VarDecl
	var methods []*ast.FuncDecl
	for !p.check(token.RIGHTBRACE) && !p.isAtEnd() && p.err == nil {
		switch {
		case p.check(token.VAR), p.check(token.CONST):
			properties = append(properties, p.varDecl())
		default:
			methods = append(methods, p.method())
		}
	}
	p.consume(token.RIGHTBRACE)

	return properties, methods
}

// method = ("static" | "override" | "abstract")* funcDecl ;
func (p *Parser) method() *ast.FuncDecl {
	isStatic := false
	isOverride := false
	isAbstract := false
	for {
		switch {
		case p.match(token.STATIC):
			isStatic = true
		case p.match(token.OVERRIDE):
			isOverride = true
		case p.match(token.ABSTRACT):
			isAbstract = true
		default:
			method := p.funcDecl(isAbstract, false)
			method.IsStatic = isStatic
			method.IsOverride = isOverride

			return method
		}
	}
}

// enumDecl = "enum" IDENT "{" enumCase* funcDecl* "}" ;
// enumCase = IDENT ("=" expression)? (";" | ",") ;
func (p *Parser) enumDecl() *ast.EnumDecl {
	keyword := p.consume(token.ENUM)
	name := p.consume(token.IDENT)
	p.consume(token.LEFTBRACE)

	decl := &ast.EnumDecl{Keyword: keyword, Name: name}
	for !p.check(token.RIGHTBRACE) && !p.isAtEnd() && p.err == nil {
		if p.check(token.FUNC) || p.check(token.STATIC) {
			decl.Methods = append(decl.Methods, p.method())

			continue
		}
		caseName := p.consume(token.IDENT)
		var value ast.Expr
		if p.match(token.EQUAL) {
			value = p.expression()
		}
		decl.Cases = append(decl.Cases, ast.EnumCase{Name: caseName, Value: value})
		if !p.match(token.SEMICOLON) && !p.match(token.COMMA) && !p.check(token.RIGHTBRACE) {
			p.fail(unexpectedToken(p.peek(), "`;`", "`,`", "`}`"))
		}
	}
	p.consume(token.RIGHTBRACE)

	return decl
}

// interfaceDecl = "interface" IDENT typeParams? "{" signature* "}" ;
// signature = "func" IDENT "(" params ")" ("->" type)? (";" | block) ;
// A signature with a block is a default implementation.
func (p *Parser) interfaceDecl() *ast.InterfaceDecl {
	keyword := p.consume(token.INTERFACE)
	name := p.consume(token.IDENT)
	typeParams := p.typeParams()
	p.consume(token.LEFTBRACE)

	decl := &ast.InterfaceDecl{Keyword: keyword, Name: name, TypeParams: typeParams}
	for !p.check(token.RIGHTBRACE) && !p.isAtEnd() && p.err == nil {
		decl.Methods = append(decl.Methods, p.funcDecl(false, true))
	}
	p.consume(token.RIGHTBRACE)

	return decl
}

// funcDecl = "func" IDENT typeParams? "(" params ")" ("->" type)? block ;
// params = (param ("," param)*)? ;
// param = IDENT ":" type ;
func (p *Parser) funcDecl(isAbstract, allowSignature bool) *ast.FuncDecl {
	keyword := p.consume(token.FUNC)
	name := p.consume(token.IDENT)
	typeParams := p.typeParams()

	p.consume(token.LEFTPAREN)
	var params []ast.Param
	if !p.check(token.RIGHTPAREN) {
		params = append(params, p.param())
		for p.match(token.COMMA) {
			params = append(params, p.param())
		}
	}
	p.consume(token.RIGHTPAREN)

	var ret *ast.TypeRef
	if p.match(token.ARROW) {
		ret = p.typeRef()
	}

	decl := &ast.FuncDecl{
		Keyword:    keyword,
		Name:       name,
		TypeParams: typeParams,
		Params:     params,
		Return:     ret,
		IsAbstract: isAbstract,
	}

	switch {
	case isAbstract, allowSignature && p.match(token.SEMICOLON):
		// no body
		if isAbstract {
			p.consume(token.SEMICOLON)
		}
	default:
		decl.Body = p.block()
	}

	return decl
}

func (p *Parser) param() ast.Param {
	name := p.consume(token.IDENT)
	p.consume(token.COLON)

	return ast.Param{Name: name, Type: p.typeRef()}
}

// varDecl = ("var" | "const") IDENT (":" type)? ("=" expression)? ";" ;
func (p *Parser) varDecl() *ast.VarDecl {
	keyword := p.advance() // VAR or CONST
	name := p.consume(token.IDENT)

	var typ *ast.TypeRef
	if p.match(token.COLON) {
		typ = p.typeRef()
	}
	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON)

	return &ast.VarDecl{Keyword: keyword, Name: name, Type: typ, Init: init}
}

// typeParams = "<" IDENT ("," IDENT)* ">" ;
func (p *Parser) typeParams() []token.Token {
	if !p.match(token.LESS) {
		return nil
	}
	params := []token.Token{p.consume(token.IDENT)}
	for p.match(token.COMMA) {
		params = append(params, p.consume(token.IDENT))
	}
	p.consume(token.GREATER)

	return params
}

// type = IDENT ("<" type ("," type)* ">")? ;
func (p *Parser) typeRef() *ast.TypeRef {
	name := p.consume(token.IDENT)
	ref := &ast.TypeRef{Name: name}
	if p.match(token.LESS) {
		ref.Args = append(ref.Args, p.typeRef())
		for p.match(token.COMMA) {
			ref.Args = append(ref.Args, p.typeRef())
		}
		p.closeAngle()
	}

	return ref
}

// closeAngle consumes the `>` that ends a type-argument list. The lexer
// longest-matches `>>` into a single shift token, so the closers of
// nested argument lists arrive fused; split such a token in place,
// leaving the second `>` for the enclosing list.
func (p *Parser) closeAngle() {
	if p.check(token.GREATERGREATER) {
		fused := p.peek()
		p.tokens[p.current] = token.Token{
			Kind:   token.GREATER,
			Lexeme: ">",
			Line:   fused.Line,
			Column: fused.Column + 1,
		}

		return
	}
	p.consume(token.GREATER)
}

// statement = block | ifStmt | whileStmt | forStmt | returnStmt
//           | breakStmt | continueStmt | varDecl | exprStmt ;
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.check(token.LEFTBRACE):
		return p.block()
	case p.check(token.IF):
		return p.ifStmt()
	case p.check(token.WHILE):
		return p.whileStmt()
	case p.check(token.FOR):
		return p.forStmt()
	case p.check(token.RETURN):
		return p.returnStmt()
	case p.check(token.BREAK):
		keyword := p.advance()
		p.consume(token.SEMICOLON)

		return &ast.BreakStmt{Keyword: keyword}
	case p.check(token.CONTINUE):
		keyword := p.advance()
		p.consume(token.SEMICOLON)

		return &ast.ContinueStmt{Keyword: keyword}
	case p.check(token.VAR), p.check(token.CONST):
		return p.varDecl()
	default:
		expr := p.expression()
		p.consume(token.SEMICOLON)

		return &ast.ExprStmt{Expression: expr}
	}
}

// block = "{" statement* "}" ;
func (p *Parser) block() *ast.BlockStmt {
	brace := p.consume(token.LEFTBRACE)
	var stmts []ast.Stmt
	for !p.check(token.RIGHTBRACE) && !p.isAtEnd() && p.err == nil {
		stmts = append(stmts, p.statement())
	}
	p.consume(token.RIGHTBRACE)

	return &ast.BlockStmt{Brace: brace, Stmts: stmts}
}

// ifStmt = "if" "(" expression ")" statement ("else" statement)? ;
func (p *Parser) ifStmt() *ast.IfStmt {
	keyword := p.consume(token.IF)
	p.consume(token.LEFTPAREN)
	cond := p.expression()
	p.consume(token.RIGHTPAREN)
	then := p.statement()

	var elseStmt ast.Stmt
	if p.match(token.ELSE) {
		elseStmt = p.statement()
	}

	return &ast.IfStmt{Keyword: keyword, Cond: cond, Then: then, Else: elseStmt}
}

// whileStmt = "while" "(" expression ")" statement ;
func (p *Parser) whileStmt() *ast.WhileStmt {
	keyword := p.consume(token.WHILE)
	p.consume(token.LEFTPAREN)
	cond := p.expression()
	p.consume(token.RIGHTPAREN)
	body := p.statement()

	return &ast.WhileStmt{Keyword: keyword, Cond: cond, Body: body}
}

// forStmt = "for" "(" (varDecl | exprStmt | ";") expression? ";" expression? ")" statement ;
func (p *Parser) forStmt() *ast.ForStmt {
	keyword := p.consume(token.FOR)
	p.consume(token.LEFTPAREN)

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.check(token.VAR), p.check(token.CONST):
		init = p.varDecl()
	default:
		expr := p.expression()
		p.consume(token.SEMICOLON)
		init = &ast.ExprStmt{Expression: expr}
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON)

	var post ast.Expr
	if !p.check(token.RIGHTPAREN) {
		post = p.expression()
	}
	p.consume(token.RIGHTPAREN)

	body := p.statement()

	return &ast.ForStmt{Keyword: keyword, Init: init, Cond: cond, Post: post, Body: body}
}

// returnStmt = "return" expression? ";" ;
func (p *Parser) returnStmt() *ast.ReturnStmt {
	keyword := p.consume(token.RETURN)
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON)

	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}
