package ast

import (
	"github.com/sable-lang/sable/token"
)

type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (e *BinaryExpr) expr() {}

func (e *BinaryExpr) Pos() token.Token {
	return e.Op
}

func (e *BinaryExpr) String() string {
	return parenthesize(e.Op.Lexeme, e.Left.String(), e.Right.String())
}

var _ Expr = &BinaryExpr{}

// AssignExpr assigns to a variable or an index target. Assignment to a
// property goes through SetExpr instead.
type AssignExpr struct {
	Target Expr // *VariableExpr or *IndexExpr
	Op     token.Token
	Value  Expr
}

func (e *AssignExpr) expr() {}

func (e *AssignExpr) Pos() token.Token {
	return e.Op
}

func (e *AssignExpr) String() string {
	return parenthesize(e.Op.Lexeme, e.Target.String(), e.Value.String())
}

var _ Expr = &AssignExpr{}

type ConditionalExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

func (e *ConditionalExpr) expr() {}

func (e *ConditionalExpr) Pos() token.Token {
	return e.Cond.Pos()
}

func (e *ConditionalExpr) String() string {
	return parenthesize("?:", e.Cond.String(), e.Then.String(), e.Else.String())
}

var _ Expr = &ConditionalExpr{}

type GroupingExpr struct {
	Paren token.Token // opening parenthesis
	Expr  Expr
}

func (e *GroupingExpr) expr() {}

func (e *GroupingExpr) Pos() token.Token {
	return e.Paren
}

func (e *GroupingExpr) String() string {
	return parenthesize("group", e.Expr.String())
}

var _ Expr = &GroupingExpr{}

type LiteralExpr struct {
	Token token.Token
}

func (e *LiteralExpr) expr() {}

func (e *LiteralExpr) Pos() token.Token {
	return e.Token
}

func (e *LiteralExpr) String() string {
	if e.Token.Literal != nil {
		return e.Token.Literal.String()
	}

	return e.Token.Lexeme
}

var _ Expr = &LiteralExpr{}

type UnaryExpr struct {
	Op      token.Token
	Operand Expr
}

func (e *UnaryExpr) expr() {}

func (e *UnaryExpr) Pos() token.Token {
	return e.Op
}

func (e *UnaryExpr) String() string {
	return parenthesize(e.Op.Lexeme, e.Operand.String())
}

var _ Expr = &UnaryExpr{}

type VariableExpr struct {
	Name token.Token
}

func (e *VariableExpr) expr() {}

func (e *VariableExpr) Pos() token.Token {
	return e.Name
}

func (e *VariableExpr) String() string {
	return e.Name.Lexeme
}

var _ Expr = &VariableExpr{}

type CallExpr struct {
	Callee Expr
	Paren  token.Token // opening parenthesis of the argument list
	Args   []Expr
}

func (e *CallExpr) expr() {}

func (e *CallExpr) Pos() token.Token {
	return e.Callee.Pos()
}

func (e *CallExpr) String() string {
	return parenthesize("call", append([]string{e.Callee.String()}, concat(e.Args)...)...)
}

var _ Expr = &CallExpr{}

type GetExpr struct {
	Object Expr
	Name   token.Token
}

func (e *GetExpr) expr() {}

func (e *GetExpr) Pos() token.Token {
	return e.Name
}

func (e *GetExpr) String() string {
	return parenthesize("get", e.Object.String(), e.Name.Lexeme)
}

var _ Expr = &GetExpr{}

type SetExpr struct {
	Object Expr
	Name   token.Token
	Op     token.Token
	Value  Expr
}

func (e *SetExpr) expr() {}

func (e *SetExpr) Pos() token.Token {
	return e.Name
}

func (e *SetExpr) String() string {
	return parenthesize("set", e.Object.String(), e.Name.Lexeme, e.Value.String())
}

var _ Expr = &SetExpr{}

type ThisExpr struct {
	Keyword token.Token
}

func (e *ThisExpr) expr() {}

func (e *ThisExpr) Pos() token.Token {
	return e.Keyword
}

func (e *ThisExpr) String() string {
	return "this"
}

var _ Expr = &ThisExpr{}

type SuperExpr struct {
	Keyword token.Token
	Method  token.Token
}

func (e *SuperExpr) expr() {}

func (e *SuperExpr) Pos() token.Token {
	return e.Keyword
}

func (e *SuperExpr) String() string {
	return parenthesize("super", e.Method.Lexeme)
}

var _ Expr = &SuperExpr{}

type ArrayLiteralExpr struct {
	Bracket  token.Token // opening bracket
	Elements []Expr
}

func (e *ArrayLiteralExpr) expr() {}

func (e *ArrayLiteralExpr) Pos() token.Token {
	return e.Bracket
}

func (e *ArrayLiteralExpr) String() string {
	return parenthesize("array", concat(e.Elements)...)
}

var _ Expr = &ArrayLiteralExpr{}

type IndexExpr struct {
	Object  Expr
	Bracket token.Token // opening bracket
	Index   Expr
}

func (e *IndexExpr) expr() {}

func (e *IndexExpr) Pos() token.Token {
	return e.Bracket
}

func (e *IndexExpr) String() string {
	return parenthesize("index", e.Object.String(), e.Index.String())
}

var _ Expr = &IndexExpr{}

type NewExpr struct {
	Keyword token.Token
	Type    *TypeRef
	Args    []Expr
}

func (e *NewExpr) expr() {}

func (e *NewExpr) Pos() token.Token {
	return e.Keyword
}

func (e *NewExpr) String() string {
	return parenthesize("new", append([]string{e.Type.String()}, concat(e.Args)...)...)
}

var _ Expr = &NewExpr{}
