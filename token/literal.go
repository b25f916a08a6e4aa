package token

import (
	"fmt"
	"strconv"
)

// Literal is the decoded payload of a literal token.
// The set of variants is closed: Int, Float, Str, Char and Bool.
type Literal interface {
	fmt.Stringer
	literal()
}

type Int int64

func (Int) literal() {}

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

type Float float64

func (Float) literal() {}

func (f Float) String() string {
	return strconv.FormatFloat(float64(f), 'g', -1, 64)
}

type Str string

func (Str) literal() {}

func (s Str) String() string {
	return strconv.Quote(string(s))
}

type Char rune

func (Char) literal() {}

func (c Char) String() string {
	return strconv.QuoteRune(rune(c))
}

type Bool bool

func (Bool) literal() {}

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}
