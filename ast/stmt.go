package ast

import (
	"github.com/sable-lang/sable/token"
)

type ExprStmt struct {
	Expression Expr
}

func (s *ExprStmt) stmt() {}

func (s *ExprStmt) Pos() token.Token {
	return s.Expression.Pos()
}

func (s *ExprStmt) String() string {
	return s.Expression.String()
}

var _ Stmt = &ExprStmt{}

type BlockStmt struct {
	Brace token.Token // opening brace
	Stmts []Stmt
}

func (s *BlockStmt) stmt() {}

func (s *BlockStmt) Pos() token.Token {
	return s.Brace
}

func (s *BlockStmt) String() string {
	return parenthesize("block", concat(s.Stmts)...)
}

var _ Stmt = &BlockStmt{}

type IfStmt struct {
	Keyword token.Token
	Cond    Expr
	Then    Stmt
	Else    Stmt // nil when absent
}

func (s *IfStmt) stmt() {}

func (s *IfStmt) Pos() token.Token {
	return s.Keyword
}

func (s *IfStmt) String() string {
	if s.Else == nil {
		return parenthesize("if", s.Cond.String(), s.Then.String())
	}

	return parenthesize("if", s.Cond.String(), s.Then.String(), s.Else.String())
}

var _ Stmt = &IfStmt{}

type WhileStmt struct {
	Keyword token.Token
	Cond    Expr
	Body    Stmt
}

func (s *WhileStmt) stmt() {}

func (s *WhileStmt) Pos() token.Token {
	return s.Keyword
}

func (s *WhileStmt) String() string {
	return parenthesize("while", s.Cond.String(), s.Body.String())
}

var _ Stmt = &WhileStmt{}

// ForStmt is the C-style three-clause loop. Any of Init, Cond and Post
// may be nil.
type ForStmt struct {
	Keyword token.Token
	Init    Stmt
	Cond    Expr
	Post    Expr
	Body    Stmt
}

func (s *ForStmt) stmt() {}

func (s *ForStmt) Pos() token.Token {
	return s.Keyword
}

func (s *ForStmt) String() string {
	init, cond, post := "_", "_", "_"
	if s.Init != nil {
		init = s.Init.String()
	}
	if s.Cond != nil {
		cond = s.Cond.String()
	}
	if s.Post != nil {
		post = s.Post.String()
	}

	return parenthesize("for", init, cond, post, s.Body.String())
}

var _ Stmt = &ForStmt{}

type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil for a bare return
}

func (s *ReturnStmt) stmt() {}

func (s *ReturnStmt) Pos() token.Token {
	return s.Keyword
}

func (s *ReturnStmt) String() string {
	if s.Value == nil {
		return parenthesize("return")
	}

	return parenthesize("return", s.Value.String())
}

var _ Stmt = &ReturnStmt{}

type BreakStmt struct {
	Keyword token.Token
}

func (s *BreakStmt) stmt() {}

func (s *BreakStmt) Pos() token.Token {
	return s.Keyword
}

func (s *BreakStmt) String() string {
	return parenthesize("break")
}

var _ Stmt = &BreakStmt{}

type ContinueStmt struct {
	Keyword token.Token
}

func (s *ContinueStmt) stmt() {}

func (s *ContinueStmt) Pos() token.Token {
	return s.Keyword
}

func (s *ContinueStmt) String() string {
	return parenthesize("continue")
}

var _ Stmt = &ContinueStmt{}
