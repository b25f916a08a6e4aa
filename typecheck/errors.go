package typecheck

import "fmt"

type TypeMismatchError struct {
	Expected string
	Got      string
	Line     int
	Column   int
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("at %d:%d: type mismatch: expected `%s`, got `%s`", e.Line, e.Column, e.Expected, e.Got)
}

type InvalidOperandError struct {
	Op     string
	Type   string
	Line   int
	Column int
}

func (e InvalidOperandError) Error() string {
	return fmt.Sprintf("at %d:%d: operator `%s` cannot be applied to `%s`", e.Line, e.Column, e.Op, e.Type)
}

type InvalidOperandsError struct {
	Op     string
	Left   string
	Right  string
	Line   int
	Column int
}

func (e InvalidOperandsError) Error() string {
	return fmt.Sprintf("at %d:%d: operator `%s` cannot be applied to `%s` and `%s`", e.Line, e.Column, e.Op, e.Left, e.Right)
}

type UnknownMemberError struct {
	Type   string
	Member string
	Line   int
	Column int
}

func (e UnknownMemberError) Error() string {
	return fmt.Sprintf("at %d:%d: `%s` has no member `%s`", e.Line, e.Column, e.Type, e.Member)
}

type ArityError struct {
	Callee string
	Want   int
	Got    int
	Line   int
	Column int
}

func (e ArityError) Error() string {
	return fmt.Sprintf("at %d:%d: `%s` takes %d argument(s), got %d", e.Line, e.Column, e.Callee, e.Want, e.Got)
}
