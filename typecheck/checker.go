package typecheck

import (
	"log"

	"github.com/sable-lang/sable/ast"
	"github.com/sable-lang/sable/semantics"
	"github.com/sable-lang/sable/token"
)

// Check walks symbol-resolved declarations and verifies expression and
// statement types. Diagnostics are accumulated: every independent
// problem in the unit is reported, and a well-typed unit yields an empty
// slice.
func Check(decls []ast.Decl, table *semantics.SymbolTable, resolver *semantics.TypeResolver) []error {
	checker := &Checker{
		table:    table,
		resolver: resolver,
		env:      &env{vars: make(map[string]*semantics.TypeDefinition)},
	}
	for _, decl := range decls {
		checker.checkDecl(decl)
	}

	return checker.errs
}

type Checker struct {
	table    *semantics.SymbolTable
	resolver *semantics.TypeResolver
	env      *env
	errs     []error

	// ret is the declared return type of the function being checked;
	// this is the type whose method body is being checked.
	ret  *semantics.TypeDefinition
	this *semantics.TypeDefinition
}

// env is the checker's own view of local bindings; it mirrors the
// lexical scopes the analyzer built.
type env struct {
	parent *env
	vars   map[string]*semantics.TypeDefinition
}

func (e *env) lookup(name string) (*semantics.TypeDefinition, bool) {
	if def, ok := e.vars[name]; ok {
		return def, true
	}
	if e.parent != nil {
		return e.parent.lookup(name)
	}

	return nil, false
}

func (c *Checker) push() {
	c.env = &env{parent: c.env, vars: make(map[string]*semantics.TypeDefinition)}
}

func (c *Checker) pop() {
	c.env = c.env.parent
}

func (c *Checker) bind(name string, def *semantics.TypeDefinition) {
	c.env.vars[name] = def
}

func (c *Checker) report(err error) {
	c.errs = append(c.errs, err)
}

func (c *Checker) checkDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.VarDecl:
		c.checkVar(d)
	case *ast.FuncDecl:
		c.checkFunc(d)
	case *ast.ClassDecl:
		c.checkTypeBody(d.Name, d.Properties, d.Methods)
	case *ast.StructDecl:
		c.checkTypeBody(d.Name, d.Properties, d.Methods)
	case *ast.EnumDecl:
		c.checkEnum(d)
	case *ast.InterfaceDecl:
		c.checkInterface(d)
	default:
		log.Panicf("typecheck: unexpected declaration %T", decl)
	}
}

// checkVar compares a variable's annotation against its initializer and
// binds the name for later lookups.
func (c *Checker) checkVar(d *ast.VarDecl) {
	var annotated *semantics.TypeDefinition
	if d.Type != nil {
		annotated, _ = c.resolver.ResolveType(d.Type.Name.Lexeme)
	}

	var inferred *semantics.TypeDefinition
	if d.Init != nil {
		inferred = c.infer(d.Init)
	}

	if annotated != nil && inferred != nil && !c.compatible(inferred, annotated) {
		c.mismatch(annotated.Name, inferred.Name, d.Init.Pos())
	}

	switch {
	case annotated != nil:
		c.bind(d.Name.Lexeme, annotated)
	default:
		c.bind(d.Name.Lexeme, inferred)
	}
}

func (c *Checker) checkFunc(d *ast.FuncDecl) {
	if d.Body == nil {
		return
	}

	c.push()
	defer c.pop()

	for _, p := range d.Params {
		var def *semantics.TypeDefinition
		if p.Type != nil {
			def, _ = c.resolver.ResolveType(p.Type.Name.Lexeme)
		}
		c.bind(p.Name.Lexeme, def)
	}

	savedRet := c.ret
	if d.Return != nil {
		c.ret, _ = c.resolver.ResolveType(d.Return.Name.Lexeme)
	} else {
		c.ret = c.resolver.Primitive("Void")
	}
	defer func() { c.ret = savedRet }()

	for _, stmt := range d.Body.Stmts {
		c.checkStmt(stmt)
	}
}

func (c *Checker) checkTypeBody(name token.Token, properties []*ast.VarDecl, methods []*ast.FuncDecl) {
	def, ok := c.resolver.ResolveType(name.Lexeme)
	if !ok {
		return
	}
	savedThis := c.this
	c.this = def
	defer func() { c.this = savedThis }()

	c.push()
	defer c.pop()

	for _, p := range properties {
		c.checkVar(p)
	}
	for _, m := range methods {
		c.checkFunc(m)
	}
}

func (c *Checker) checkEnum(d *ast.EnumDecl) {
	def, ok := c.resolver.ResolveType(d.Name.Lexeme)
	if !ok {
		return
	}
	savedThis := c.this
	c.this = def
	defer func() { c.this = savedThis }()

	intDef := c.resolver.Primitive("Int")
	for _, caseDecl := range d.Cases {
		if caseDecl.Value == nil {
			continue
		}
		if inferred := c.infer(caseDecl.Value); inferred != nil && !c.compatible(inferred, intDef) {
			c.mismatch(intDef.Name, inferred.Name, caseDecl.Value.Pos())
		}
	}
	for _, m := range d.Methods {
		c.checkFunc(m)
	}
}

func (c *Checker) checkInterface(d *ast.InterfaceDecl) {
	def, ok := c.resolver.ResolveType(d.Name.Lexeme)
	if !ok {
		return
	}
	savedThis := c.this
	c.this = def
	defer func() { c.this = savedThis }()

	// Only default bodies carry code to check.
	for _, m := range d.Methods {
		c.checkFunc(m)
	}
}

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		c.checkVar(s)
	case *ast.ExprStmt:
		c.infer(s.Expression)
	case *ast.BlockStmt:
		c.push()
		for _, inner := range s.Stmts {
			c.checkStmt(inner)
		}
		c.pop()
	case *ast.IfStmt:
		c.requireBool(s.Cond)
		c.checkStmt(s.Then)
		if s.Else != nil {
			c.checkStmt(s.Else)
		}
	case *ast.WhileStmt:
		c.requireBool(s.Cond)
		c.checkStmt(s.Body)
	case *ast.ForStmt:
		c.push()
		if s.Init != nil {
			c.checkStmt(s.Init)
		}
		if s.Cond != nil {
			c.requireBool(s.Cond)
		}
		if s.Post != nil {
			c.infer(s.Post)
		}
		c.checkStmt(s.Body)
		c.pop()
	case *ast.ReturnStmt:
		c.checkReturn(s)
	case *ast.BreakStmt, *ast.ContinueStmt:
		// nothing to check
	default:
		log.Panicf("typecheck: unexpected statement %T", stmt)
	}
}

// checkReturn compares a return statement against the enclosing
// function's declared return type. A function without an annotation
// returns Void, so `return <expr>` inside one is flagged.
func (c *Checker) checkReturn(s *ast.ReturnStmt) {
	void := c.resolver.Primitive("Void")
	declared := c.ret
	if declared == nil {
		declared = void
	}

	if s.Value == nil {
		if declared != void {
			c.mismatch(declared.Name, "Void", s.Keyword)
		}

		return
	}

	inferred := c.infer(s.Value)
	if declared == void {
		got := "?"
		if inferred != nil {
			got = inferred.Name
		}
		c.mismatch("Void", got, s.Value.Pos())

		return
	}
	if inferred != nil && !c.compatible(inferred, declared) {
		c.mismatch(declared.Name, inferred.Name, s.Value.Pos())
	}
}

func (c *Checker) requireBool(expr ast.Expr) {
	boolDef := c.resolver.Primitive("Bool")
	if inferred := c.infer(expr); inferred != nil && inferred != boolDef {
		c.mismatch("Bool", inferred.Name, expr.Pos())
	}
}

func (c *Checker) mismatch(expected, got string, at token.Token) {
	c.report(TypeMismatchError{Expected: expected, Got: got, Line: at.Line, Column: at.Column})
}

// compatible reports whether a value of type got may be used where
// expected is required: identity, numeric widening, subclassing, or
// interface conformance.
func (c *Checker) compatible(got, expected *semantics.TypeDefinition) bool {
	if got == expected {
		return true
	}
	if got.WidensTo(expected) {
		return true
	}
	for super := got.Superclass; super != nil; super = super.Superclass {
		if super == expected {
			return true
		}
	}
	if expected.IsInterface && got.Implements(expected.Name) {
		return true
	}

	return false
}
