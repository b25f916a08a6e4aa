package ast

import (
	"fmt"
	"strings"

	"github.com/sable-lang/sable/token"
)

// Node is implemented by every AST node. Pos returns the token the node
// started at; its line and column locate diagnostics.
type Node interface {
	fmt.Stringer
	Pos() token.Token
}

// The three node families are closed: a Decl, Stmt or Expr is always one
// of the types declared in this package.

type Decl interface {
	Node
	decl()
}

type Stmt interface {
	Node
	stmt()
}

type Expr interface {
	Node
	expr()
}

// TypeRef is a source-level reference to a type, possibly with generic
// arguments. Resolution to a TypeDefinition happens during semantic
// analysis, not here.
type TypeRef struct {
	Name token.Token
	Args []*TypeRef
}

func (t *TypeRef) Pos() token.Token {
	return t.Name
}

func (t *TypeRef) String() string {
	if len(t.Args) == 0 {
		return t.Name.Lexeme
	}
	elems := make([]string, 0, len(t.Args)+1)
	elems = append(elems, t.Name.Lexeme)
	for _, arg := range t.Args {
		elems = append(elems, arg.String())
	}

	return parenthesize("", elems...)
}

// parenthesize renders `(head elem elem ...)`, skipping empty elements.
func parenthesize(head string, elems ...string) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(head)
	for _, elem := range elems {
		if elem == "" {
			continue
		}
		if b.Len() > 1 {
			b.WriteString(" ")
		}
		b.WriteString(elem)
	}
	b.WriteString(")")

	return b.String()
}

func concat[T fmt.Stringer](elems []T) []string {
	strs := make([]string, len(elems))
	for i, elem := range elems {
		strs[i] = elem.String()
	}

	return strs
}
