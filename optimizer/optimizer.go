package optimizer

import (
	"math"

	"github.com/sable-lang/sable/ast"
	"github.com/sable-lang/sable/token"
)

// Optimize rewrites the AST with literal arithmetic folded away. The
// transform is structure-preserving and idempotent: folding an already
// folded tree changes nothing.
func Optimize(decls []ast.Decl) []ast.Decl {
	for _, decl := range decls {
		optimizeDecl(decl)
	}

	return decls
}

func optimizeDecl(decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.VarDecl:
		if d.Init != nil {
			d.Init = fold(d.Init)
		}
	case *ast.FuncDecl:
		if d.Body != nil {
			optimizeStmt(d.Body)
		}
	case *ast.ClassDecl:
		for _, p := range d.Properties {
			optimizeDecl(p)
		}
		for _, m := range d.Methods {
			optimizeDecl(m)
		}
	case *ast.StructDecl:
		for _, p := range d.Properties {
			optimizeDecl(p)
		}
		for _, m := range d.Methods {
			optimizeDecl(m)
		}
	case *ast.EnumDecl:
		for i := range d.Cases {
			if d.Cases[i].Value != nil {
				d.Cases[i].Value = fold(d.Cases[i].Value)
			}
		}
		for _, m := range d.Methods {
			optimizeDecl(m)
		}
	case *ast.InterfaceDecl:
		for _, m := range d.Methods {
			optimizeDecl(m)
		}
	}
}

func optimizeStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		optimizeDecl(s)
	case *ast.ExprStmt:
		s.Expression = fold(s.Expression)
	case *ast.BlockStmt:
		for _, inner := range s.Stmts {
			optimizeStmt(inner)
		}
	case *ast.IfStmt:
		s.Cond = fold(s.Cond)
		optimizeStmt(s.Then)
		if s.Else != nil {
			optimizeStmt(s.Else)
		}
	case *ast.WhileStmt:
		s.Cond = fold(s.Cond)
		optimizeStmt(s.Body)
	case *ast.ForStmt:
		if s.Init != nil {
			optimizeStmt(s.Init)
		}
		if s.Cond != nil {
			s.Cond = fold(s.Cond)
		}
		if s.Post != nil {
			s.Post = fold(s.Post)
		}
		optimizeStmt(s.Body)
	case *ast.ReturnStmt:
		if s.Value != nil {
			s.Value = fold(s.Value)
		}
	}
}

// fold rewrites one expression bottom-up.
func fold(expr ast.Expr) ast.Expr {
	switch e := expr.(type) {
	case *ast.BinaryExpr:
		e.Left = fold(e.Left)
		e.Right = fold(e.Right)

		return foldBinary(e)
	case *ast.UnaryExpr:
		e.Operand = fold(e.Operand)

		return foldUnary(e)
	case *ast.GroupingExpr:
		e.Expr = fold(e.Expr)
		if literal, ok := e.Expr.(*ast.LiteralExpr); ok {
			return literal
		}

		return e
	case *ast.AssignExpr:
		e.Value = fold(e.Value)

		return e
	case *ast.SetExpr:
		e.Value = fold(e.Value)

		return e
	case *ast.ConditionalExpr:
		e.Cond = fold(e.Cond)
		e.Then = fold(e.Then)
		e.Else = fold(e.Else)
		if cond, ok := literalBool(e.Cond); ok {
			if cond {
				return e.Then
			}

			return e.Else
		}

		return e
	case *ast.CallExpr:
		e.Callee = fold(e.Callee)
		for i, arg := range e.Args {
			e.Args[i] = fold(arg)
		}

		return e
	case *ast.GetExpr:
		e.Object = fold(e.Object)

		return e
	case *ast.ArrayLiteralExpr:
		for i, elem := range e.Elements {
			e.Elements[i] = fold(elem)
		}

		return e
	case *ast.IndexExpr:
		e.Object = fold(e.Object)
		e.Index = fold(e.Index)

		return e
	case *ast.NewExpr:
		for i, arg := range e.Args {
			e.Args[i] = fold(arg)
		}

		return e
	default:
		return expr
	}
}

func literalBool(expr ast.Expr) (bool, bool) {
	literal, ok := expr.(*ast.LiteralExpr)
	if !ok {
		return false, false
	}
	b, ok := literal.Token.Literal.(token.Bool)

	return bool(b), ok
}

func foldBinary(e *ast.BinaryExpr) ast.Expr {
	left, ok := e.Left.(*ast.LiteralExpr)
	if !ok {
		return e
	}
	right, ok := e.Right.(*ast.LiteralExpr)
	if !ok {
		return e
	}

	if l, lok := left.Token.Literal.(token.Int); lok {
		if r, rok := right.Token.Literal.(token.Int); rok {
			return foldInts(e, int64(l), int64(r))
		}
	}
	if l, lok := left.Token.Literal.(token.Float); lok {
		if r, rok := right.Token.Literal.(token.Float); rok {
			return foldFloats(e, float64(l), float64(r))
		}
	}
	if l, lok := left.Token.Literal.(token.Str); lok {
		if r, rok := right.Token.Literal.(token.Str); rok && e.Op.Kind == token.PLUS {
			return literalAt(e.Op, token.STRING, token.Str(string(l)+string(r)))
		}
	}
	if l, lok := left.Token.Literal.(token.Bool); lok {
		if r, rok := right.Token.Literal.(token.Bool); rok {
			switch e.Op.Kind {
			case token.AMPAMP:
				return literalAt(e.Op, boolKind(bool(l) && bool(r)), token.Bool(bool(l) && bool(r)))
			case token.PIPEPIPE:
				return literalAt(e.Op, boolKind(bool(l) || bool(r)), token.Bool(bool(l) || bool(r)))
			}
		}
	}

	return e
}

func foldInts(e *ast.BinaryExpr, l, r int64) ast.Expr {
	//exhaustive:ignore
	switch e.Op.Kind {
	case token.PLUS:
		return intAt(e.Op, l+r)
	case token.MINUS:
		return intAt(e.Op, l-r)
	case token.STAR:
		return intAt(e.Op, l*r)
	case token.SLASH:
		if r == 0 {
			return e // leave division by zero for runtime diagnostics
		}

		return intAt(e.Op, l/r)
	case token.PERCENT:
		if r == 0 {
			return e
		}

		return intAt(e.Op, l%r)
	default:
		return e
	}
}

func foldFloats(e *ast.BinaryExpr, l, r float64) ast.Expr {
	//exhaustive:ignore
	switch e.Op.Kind {
	case token.PLUS:
		return floatAt(e.Op, l+r)
	case token.MINUS:
		return floatAt(e.Op, l-r)
	case token.STAR:
		return floatAt(e.Op, l*r)
	case token.SLASH:
		if r == 0 {
			return e
		}

		return floatAt(e.Op, l/r)
	case token.STARSTAR:
		return floatAt(e.Op, math.Pow(l, r))
	default:
		return e
	}
}

func foldUnary(e *ast.UnaryExpr) ast.Expr {
	literal, ok := e.Operand.(*ast.LiteralExpr)
	if !ok {
		return e
	}
	//exhaustive:ignore
	switch e.Op.Kind {
	case token.MINUS:
		if value, isInt := literal.Token.Literal.(token.Int); isInt {
			return intAt(e.Op, -int64(value))
		}
		if value, isFloat := literal.Token.Literal.(token.Float); isFloat {
			return floatAt(e.Op, -float64(value))
		}
	case token.BANG:
		if value, isBool := literal.Token.Literal.(token.Bool); isBool {
			return literalAt(e.Op, boolKind(!bool(value)), token.Bool(!bool(value)))
		}
	}

	return e
}

func boolKind(b bool) token.Kind {
	if b {
		return token.TRUE
	}

	return token.FALSE
}

func intAt(at token.Token, value int64) *ast.LiteralExpr {
	return literalAt(at, token.INTEGER, token.Int(value))
}

func floatAt(at token.Token, value float64) *ast.LiteralExpr {
	return literalAt(at, token.FLOAT, token.Float(value))
}

func literalAt(at token.Token, kind token.Kind, value token.Literal) *ast.LiteralExpr {
	return &ast.LiteralExpr{Token: token.Token{
		Kind:    kind,
		Lexeme:  value.String(),
		Literal: value,
		Line:    at.Line,
		Column:  at.Column,
	}}
}
