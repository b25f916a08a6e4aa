package semantics

import (
	"fmt"

	"github.com/sable-lang/sable/token"
)

type DuplicateDefinitionError struct {
	Name  string
	First token.Token
	At    token.Token
}

func (e DuplicateDefinitionError) Error() string {
	if e.First.Line > 0 {
		return fmt.Sprintf("at %d:%d: `%s` is already defined at %d:%d", e.At.Line, e.At.Column, e.Name, e.First.Line, e.First.Column)
	}

	return fmt.Sprintf("at %d:%d: `%s` is already defined", e.At.Line, e.At.Column, e.Name)
}

type UndefinedTypeError struct {
	Name token.Token
}

func (e UndefinedTypeError) Error() string {
	return fmt.Sprintf("at %d:%d: undefined type `%s`", e.Name.Line, e.Name.Column, e.Name.Lexeme)
}

type UndefinedSymbolError struct {
	Name token.Token
}

func (e UndefinedSymbolError) Error() string {
	return fmt.Sprintf("at %d:%d: `%s` is not defined", e.Name.Line, e.Name.Column, e.Name.Lexeme)
}

type ConformanceError struct {
	Class     token.Token
	Interface string
	Method    string
}

func (e ConformanceError) Error() string {
	return fmt.Sprintf("at %d:%d: `%s` does not implement `%s.%s`", e.Class.Line, e.Class.Column, e.Class.Lexeme, e.Interface, e.Method)
}

type FinalSuperclassError struct {
	Class token.Token
	Super string
}

func (e FinalSuperclassError) Error() string {
	return fmt.Sprintf("at %d:%d: `%s` cannot extend final type `%s`", e.Class.Line, e.Class.Column, e.Class.Lexeme, e.Super)
}

type SealedSuperclassError struct {
	Class token.Token
	Super string
}

func (e SealedSuperclassError) Error() string {
	return fmt.Sprintf("at %d:%d: `%s` is not permitted to extend sealed type `%s`", e.Class.Line, e.Class.Column, e.Class.Lexeme, e.Super)
}

type InterfaceSuperclassError struct {
	Class token.Token
	Super string
}

func (e InterfaceSuperclassError) Error() string {
	return fmt.Sprintf("at %d:%d: first inherited name `%s` of `%s` is an interface, not a class", e.Class.Line, e.Class.Column, e.Super, e.Class.Lexeme)
}

type NotAnInterfaceError struct {
	Class token.Token
	Name  string
}

func (e NotAnInterfaceError) Error() string {
	return fmt.Sprintf("at %d:%d: `%s` is not an interface", e.Class.Line, e.Class.Column, e.Name)
}

type OverrideError struct {
	Class  token.Token
	Method string
}

func (e OverrideError) Error() string {
	return fmt.Sprintf("at %d:%d: `%s.%s` is marked override but overrides nothing", e.Class.Line, e.Class.Column, e.Class.Lexeme, e.Method)
}

type AbstractMethodError struct {
	Class  token.Token
	Method string
}

func (e AbstractMethodError) Error() string {
	return fmt.Sprintf("at %d:%d: non-abstract `%s` declares abstract method `%s`", e.Class.Line, e.Class.Column, e.Class.Lexeme, e.Method)
}
