package token_test

import (
	"testing"

	"github.com/sable-lang/sable/token"
)

func TestTokenString(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		token    token.Token
		expected string
	}{
		{token.Token{Kind: token.IDENT, Lexeme: "foo", Line: 1, Column: 1}, `{IDENT "foo" 1:1}`},
		{token.Token{Kind: token.INTEGER, Lexeme: "0xFF", Literal: token.Int(255), Line: 2, Column: 5}, `{INTEGER "0xFF" 255 2:5}`},
		{token.Token{Kind: token.STRING, Lexeme: `"hi"`, Literal: token.Str("hi"), Line: 1, Column: 9}, `{STRING "\"hi\"" "hi" 1:9}`},
		{token.Token{Kind: token.EOF, Lexeme: "", Line: 3, Column: 1}, `{EOF "" 3:1}`},
	}

	for _, testcase := range testcases {
		if got := testcase.token.String(); got != testcase.expected {
			t.Errorf("String() = %s, want %s", got, testcase.expected)
		}
	}
}

func TestLiteralString(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		literal  token.Literal
		expected string
	}{
		{token.Int(-42), "-42"},
		{token.Float(1.5), "1.5"},
		{token.Float(150), "150"},
		{token.Str("a\nb"), `"a\nb"`},
		{token.Char('x'), `'x'`},
		{token.Bool(true), "true"},
		{token.Bool(false), "false"},
	}

	for _, testcase := range testcases {
		if got := testcase.literal.String(); got != testcase.expected {
			t.Errorf("String() = %s, want %s", got, testcase.expected)
		}
	}
}
