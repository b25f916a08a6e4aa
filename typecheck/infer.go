package typecheck

import (
	"log"

	"github.com/sable-lang/sable/ast"
	"github.com/sable-lang/sable/semantics"
	"github.com/sable-lang/sable/token"
)

// infer computes the type of an expression, reporting any violation it
// can prove on the way. A nil result means the type is unknown; unknown
// types never produce follow-on diagnostics.
func (c *Checker) infer(expr ast.Expr) *semantics.TypeDefinition {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return c.literalType(e.Token)
	case *ast.GroupingExpr:
		return c.infer(e.Expr)
	case *ast.VariableExpr:
		return c.variableType(e.Name)
	case *ast.UnaryExpr:
		return c.unaryType(e)
	case *ast.BinaryExpr:
		return c.binaryType(e)
	case *ast.AssignExpr:
		return c.assignType(e)
	case *ast.SetExpr:
		return c.setType(e)
	case *ast.ConditionalExpr:
		return c.conditionalType(e)
	case *ast.CallExpr:
		return c.callType(e)
	case *ast.GetExpr:
		return c.getType(e)
	case *ast.ThisExpr:
		return c.this
	case *ast.SuperExpr:
		if c.this != nil {
			return c.this.Superclass
		}

		return nil
	case *ast.NewExpr:
		def, _ := c.resolver.ResolveType(e.Type.Name.Lexeme)
		for _, arg := range e.Args {
			c.infer(arg)
		}

		return def
	case *ast.ArrayLiteralExpr:
		for _, elem := range e.Elements {
			c.infer(elem)
		}

		return nil
	case *ast.IndexExpr:
		c.infer(e.Object)
		c.infer(e.Index)

		return nil
	default:
		log.Panicf("typecheck: unexpected expression %T", expr)

		return nil
	}
}

func (c *Checker) literalType(tok token.Token) *semantics.TypeDefinition {
	//exhaustive:ignore
	switch tok.Kind {
	case token.INTEGER:
		return c.resolver.Primitive("Int")
	case token.FLOAT:
		return c.resolver.Primitive("Double")
	case token.STRING:
		return c.resolver.Primitive("String")
	case token.CHAR:
		return c.resolver.Primitive("Char")
	case token.TRUE, token.FALSE:
		return c.resolver.Primitive("Bool")
	case token.NIL:
		return nil
	default:
		return nil
	}
}

func (c *Checker) variableType(name token.Token) *semantics.TypeDefinition {
	if def, ok := c.env.lookup(name.Lexeme); ok {
		return def
	}
	if sym, ok := c.table.Global().Resolve(name.Lexeme); ok && sym.Kind != semantics.TypeSymbol && sym.Kind != semantics.FunctionSymbol {
		return sym.Type
	}
	if c.this != nil {
		if def, ok := c.this.PropertyNamed(name.Lexeme); ok {
			return def
		}
	}

	return nil
}

func (c *Checker) unaryType(e *ast.UnaryExpr) *semantics.TypeDefinition {
	operand := c.infer(e.Operand)
	if operand == nil {
		return nil
	}
	//exhaustive:ignore
	switch e.Op.Kind {
	case token.MINUS:
		if !operand.IsNumeric() {
			c.report(InvalidOperandError{Op: e.Op.Lexeme, Type: operand.Name, Line: e.Op.Line, Column: e.Op.Column})

			return nil
		}

		return operand
	case token.BANG:
		if operand != c.resolver.Primitive("Bool") {
			c.report(InvalidOperandError{Op: e.Op.Lexeme, Type: operand.Name, Line: e.Op.Line, Column: e.Op.Column})

			return nil
		}

		return operand
	case token.TILDE:
		if !isInteger(operand) {
			c.report(InvalidOperandError{Op: e.Op.Lexeme, Type: operand.Name, Line: e.Op.Line, Column: e.Op.Column})

			return nil
		}

		return operand
	default:
		return nil
	}
}

func isInteger(def *semantics.TypeDefinition) bool {
	return def != nil && (def.Name == "Int" || def.Name == "Int64") && def.IsPrimitive
}

// binaryType applies the operator compatibility table: numeric widening
// among numeric primitives, string concatenation via `+`, and no
// numeric-to-string coercion.
func (c *Checker) binaryType(e *ast.BinaryExpr) *semantics.TypeDefinition {
	left := c.infer(e.Left)
	right := c.infer(e.Right)
	stringDef := c.resolver.Primitive("String")
	boolDef := c.resolver.Primitive("Bool")

	invalid := func() *semantics.TypeDefinition {
		c.report(InvalidOperandsError{
			Op:    e.Op.Lexeme,
			Left:  typeName(left),
			Right: typeName(right),
			Line:  e.Op.Line, Column: e.Op.Column,
		})

		return nil
	}

	//exhaustive:ignore
	switch e.Op.Kind {
	case token.PLUS:
		if left == stringDef && right == stringDef {
			return stringDef
		}
		if left == nil || right == nil {
			return nil
		}
		if left.IsNumeric() && right.IsNumeric() {
			return wider(left, right)
		}

		return invalid()
	case token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.STARSTAR:
		if left == nil || right == nil {
			return nil
		}
		if left.IsNumeric() && right.IsNumeric() {
			return wider(left, right)
		}

		return invalid()
	case token.LESSLESS, token.GREATERGREATER, token.AMP, token.PIPE, token.CARET:
		if left == nil || right == nil {
			return nil
		}
		if isInteger(left) && isInteger(right) {
			return wider(left, right)
		}

		return invalid()
	case token.EQUALEQUAL, token.BANGEQUAL:
		if left != nil && right != nil {
			if !c.compatible(left, right) && !c.compatible(right, left) {
				return invalid()
			}
		}

		return boolDef
	case token.LESS, token.LESSEQUAL, token.GREATER, token.GREATEREQUAL:
		if left == nil || right == nil {
			return boolDef
		}
		if left.IsNumeric() && right.IsNumeric() {
			return boolDef
		}
		if left == stringDef && right == stringDef {
			return boolDef
		}

		return invalid()
	case token.DOTDOT, token.ELLIPSIS:
		if left != nil && right != nil && (!left.IsNumeric() || !right.IsNumeric()) {
			return invalid()
		}

		return nil
	case token.AMPAMP, token.PIPEPIPE:
		if left != nil && left != boolDef {
			return invalid()
		}
		if right != nil && right != boolDef {
			return invalid()
		}

		return boolDef
	case token.QUESTIONQUESTION:
		if left != nil && right != nil && !c.compatible(right, left) {
			return invalid()
		}
		if left != nil {
			return left
		}

		return right
	default:
		return nil
	}
}

func typeName(def *semantics.TypeDefinition) string {
	if def == nil {
		return "?"
	}

	return def.Name
}

func wider(a, b *semantics.TypeDefinition) *semantics.TypeDefinition {
	if a.WidensTo(b) {
		return b
	}

	return a
}

func (c *Checker) assignType(e *ast.AssignExpr) *semantics.TypeDefinition {
	target := c.infer(e.Target)
	value := c.infer(e.Value)
	if target != nil && value != nil && !c.compatible(value, target) {
		c.mismatch(target.Name, value.Name, e.Value.Pos())
	}

	return target
}

func (c *Checker) setType(e *ast.SetExpr) *semantics.TypeDefinition {
	object := c.infer(e.Object)
	value := c.infer(e.Value)
	if object == nil {
		return nil
	}
	property, ok := object.PropertyNamed(e.Name.Lexeme)
	if !ok {
		c.report(UnknownMemberError{Type: object.Name, Member: e.Name.Lexeme, Line: e.Name.Line, Column: e.Name.Column})

		return nil
	}
	if property != nil && value != nil && !c.compatible(value, property) {
		c.mismatch(property.Name, value.Name, e.Value.Pos())
	}

	return property
}

func (c *Checker) conditionalType(e *ast.ConditionalExpr) *semantics.TypeDefinition {
	c.requireBool(e.Cond)
	then := c.infer(e.Then)
	elseType := c.infer(e.Else)
	if then != nil && elseType != nil {
		if c.compatible(elseType, then) {
			return then
		}
		if c.compatible(then, elseType) {
			return elseType
		}
		c.mismatch(then.Name, elseType.Name, e.Else.Pos())
	}

	return then
}

// callType resolves a call against the callee's signature: a free
// function's recorded FuncSig, or a method looked up on the receiver.
// Signature matching is by arity and parameter compatibility only.
func (c *Checker) callType(e *ast.CallExpr) *semantics.TypeDefinition {
	for _, arg := range e.Args {
		c.infer(arg)
	}

	switch callee := e.Callee.(type) {
	case *ast.VariableExpr:
		sym, ok := c.table.Global().Resolve(callee.Name.Lexeme)
		if !ok || sym.Kind != semantics.FunctionSymbol || sym.Signature == nil {
			if c.this != nil {
				if m, found := c.this.MethodNamed(callee.Name.Lexeme); found {
					return c.methodReturn(m)
				}
			}

			return nil
		}
		c.checkArity(callee.Name.Lexeme, len(sym.Signature.Params), len(e.Args), e.Paren)

		return sym.Signature.Return
	case *ast.GetExpr:
		object := c.infer(callee.Object)
		if object == nil {
			return nil
		}
		m, ok := object.MethodNamed(callee.Name.Lexeme)
		if !ok {
			c.report(UnknownMemberError{Type: object.Name, Member: callee.Name.Lexeme, Line: callee.Name.Line, Column: callee.Name.Column})

			return nil
		}
		c.checkArity(callee.Name.Lexeme, len(m.Params), len(e.Args), e.Paren)

		return c.methodReturn(m)
	case *ast.SuperExpr:
		if c.this == nil || c.this.Superclass == nil {
			return nil
		}
		m, ok := c.this.Superclass.MethodNamed(callee.Method.Lexeme)
		if !ok {
			c.report(UnknownMemberError{Type: c.this.Superclass.Name, Member: callee.Method.Lexeme, Line: callee.Method.Line, Column: callee.Method.Column})

			return nil
		}
		c.checkArity(callee.Method.Lexeme, len(m.Params), len(e.Args), e.Paren)

		return c.methodReturn(m)
	default:
		c.infer(e.Callee)

		return nil
	}
}

func (c *Checker) methodReturn(m semantics.Method) *semantics.TypeDefinition {
	def, _ := c.resolver.ResolveType(m.Return)

	return def
}

func (c *Checker) checkArity(name string, want, got int, at token.Token) {
	if want != got {
		c.report(ArityError{Callee: name, Want: want, Got: got, Line: at.Line, Column: at.Column})
	}
}

func (c *Checker) getType(e *ast.GetExpr) *semantics.TypeDefinition {
	// A type name as the receiver is static member access, which covers
	// enum cases.
	if variable, ok := e.Object.(*ast.VariableExpr); ok {
		if def, found := c.resolver.ResolveType(variable.Name.Lexeme); found {
			if property, has := def.PropertyNamed(e.Name.Lexeme); has {
				return property
			}
			c.report(UnknownMemberError{Type: def.Name, Member: e.Name.Lexeme, Line: e.Name.Line, Column: e.Name.Column})

			return nil
		}
	}

	object := c.infer(e.Object)
	if object == nil {
		return nil
	}
	property, ok := object.PropertyNamed(e.Name.Lexeme)
	if !ok {
		if _, isMethod := object.MethodNamed(e.Name.Lexeme); isMethod {
			return nil // method value; calls resolve it themselves
		}
		c.report(UnknownMemberError{Type: object.Name, Member: e.Name.Lexeme, Line: e.Name.Line, Column: e.Name.Column})

		return nil
	}

	return property
}
