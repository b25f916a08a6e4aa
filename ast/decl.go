package ast

import (
	"github.com/sable-lang/sable/token"
)

// VarDecl is a `var` or `const` declaration. It is usable both at the
// top level and as a statement inside a block.
type VarDecl struct {
	Keyword token.Token // VAR or CONST
	Name    token.Token
	Type    *TypeRef // nil when omitted
	Init    Expr     // nil when omitted
}

func (d *VarDecl) decl() {}
func (d *VarDecl) stmt() {}

func (d *VarDecl) Pos() token.Token {
	return d.Keyword
}

func (d *VarDecl) String() string {
	typ := ""
	if d.Type != nil {
		typ = d.Type.String()
	}
	init := ""
	if d.Init != nil {
		init = d.Init.String()
	}

	return parenthesize(d.Keyword.Lexeme, d.Name.Lexeme, typ, init)
}

var _ Decl = &VarDecl{}
var _ Stmt = &VarDecl{}

type Param struct {
	Name token.Token
	Type *TypeRef
}

func (p Param) String() string {
	if p.Type == nil {
		return parenthesize("", p.Name.Lexeme)
	}

	return parenthesize("", p.Name.Lexeme, p.Type.String())
}

type FuncDecl struct {
	Keyword    token.Token // FUNC
	Name       token.Token
	TypeParams []token.Token
	Params     []Param
	Return     *TypeRef // nil means Void
	Body       *BlockStmt
	IsStatic   bool
	IsAbstract bool
	IsOverride bool
}

func (d *FuncDecl) decl() {}

func (d *FuncDecl) Pos() token.Token {
	return d.Keyword
}

func (d *FuncDecl) String() string {
	params := make([]string, len(d.Params))
	for i, p := range d.Params {
		params[i] = p.String()
	}
	ret := ""
	if d.Return != nil {
		ret = d.Return.String()
	}
	body := ""
	if d.Body != nil {
		body = d.Body.String()
	}

	return parenthesize("func", d.Name.Lexeme, parenthesize("", params...), ret, body)
}

var _ Decl = &FuncDecl{}

type ClassDecl struct {
	Keyword    token.Token // CLASS
	Name       token.Token
	TypeParams []token.Token
	// Superclass is the first name after `:` in the class header. The
	// parser records it without deciding whether it denotes a class or
	// an interface; semantic analysis disambiguates.
	Superclass *token.Token
	Interfaces []token.Token
	Permits    []token.Token // explicit permit list of a sealed class
	IsAbstract bool
	IsSealed   bool
	IsFinal    bool
	Properties []*VarDecl
	Methods    []*FuncDecl
}

func (d *ClassDecl) decl() {}

func (d *ClassDecl) Pos() token.Token {
	return d.Keyword
}

func (d *ClassDecl) String() string {
	super := ""
	if d.Superclass != nil {
		super = parenthesize("super", d.Superclass.Lexeme)
	}
	impl := ""
	if len(d.Interfaces) > 0 {
		names := make([]string, len(d.Interfaces))
		for i, name := range d.Interfaces {
			names[i] = name.Lexeme
		}
		impl = parenthesize("impl", names...)
	}
	members := make([]string, 0, len(d.Properties)+len(d.Methods))
	for _, p := range d.Properties {
		members = append(members, p.String())
	}
	for _, m := range d.Methods {
		members = append(members, m.String())
	}

	return parenthesize("class", d.Name.Lexeme, super, impl, parenthesize("", members...))
}

var _ Decl = &ClassDecl{}

type StructDecl struct {
	Keyword    token.Token // STRUCT
	Name       token.Token
	TypeParams []token.Token
	Interfaces []token.Token
	Properties []*VarDecl
	Methods    []*FuncDecl
}

func (d *StructDecl) decl() {}

func (d *StructDecl) Pos() token.Token {
	return d.Keyword
}

func (d *StructDecl) String() string {
	impl := ""
	if len(d.Interfaces) > 0 {
		names := make([]string, len(d.Interfaces))
		for i, name := range d.Interfaces {
			names[i] = name.Lexeme
		}
		impl = parenthesize("impl", names...)
	}
	members := make([]string, 0, len(d.Properties)+len(d.Methods))
	for _, p := range d.Properties {
		members = append(members, p.String())
	}
	for _, m := range d.Methods {
		members = append(members, m.String())
	}

	return parenthesize("struct", d.Name.Lexeme, impl, parenthesize("", members...))
}

var _ Decl = &StructDecl{}

type EnumCase struct {
	Name  token.Token
	Value Expr // nil when implicit
}

func (c EnumCase) String() string {
	if c.Value == nil {
		return parenthesize("case", c.Name.Lexeme)
	}

	return parenthesize("case", c.Name.Lexeme, c.Value.String())
}

type EnumDecl struct {
	Keyword token.Token // ENUM
	Name    token.Token
	Cases   []EnumCase
	Methods []*FuncDecl
}

func (d *EnumDecl) decl() {}

func (d *EnumDecl) Pos() token.Token {
	return d.Keyword
}

func (d *EnumDecl) String() string {
	members := make([]string, 0, len(d.Cases)+len(d.Methods))
	for _, c := range d.Cases {
		members = append(members, c.String())
	}
	for _, m := range d.Methods {
		members = append(members, m.String())
	}

	return parenthesize("enum", d.Name.Lexeme, parenthesize("", members...))
}

var _ Decl = &EnumDecl{}

// InterfaceDecl declares an interface. A method with a non-nil body is a
// default implementation; conforming types need not provide it.
type InterfaceDecl struct {
	Keyword    token.Token // INTERFACE
	Name       token.Token
	TypeParams []token.Token
	Methods    []*FuncDecl
}

func (d *InterfaceDecl) decl() {}

func (d *InterfaceDecl) Pos() token.Token {
	return d.Keyword
}

func (d *InterfaceDecl) String() string {
	methods := make([]string, len(d.Methods))
	for i, m := range d.Methods {
		methods[i] = m.String()
	}

	return parenthesize("interface", d.Name.Lexeme, parenthesize("", methods...))
}

var _ Decl = &InterfaceDecl{}
