package lexer_test

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"

	"github.com/sable-lang/sable/lexer"
	"github.com/sable-lang/sable/token"
	"github.com/sable-lang/sable/utils"
)

func TestGolden(t *testing.T) {
	t.Parallel()

	testfiles, err := utils.FindSourceFiles("../testdata")
	if err != nil {
		t.Errorf("failed to find test files: %v", err)
		return
	}

	for _, testfile := range testfiles {
		source, err := os.ReadFile(testfile)
		if err != nil {
			t.Errorf("failed to read %s: %v", testfile, err)
			return
		}

		tokens, err := lexer.Lex(string(source))
		if err != nil {
			t.Errorf("%s returned error: %v", testfile, err)
			return
		}

		var builder strings.Builder
		for _, tok := range tokens {
			builder.WriteString(tok.String())
			builder.WriteString("\n")
		}

		g := goldie.New(t)
		g.Assert(t, testfile, []byte(builder.String()))
	}
}

func TestEmptySource(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Lex("")
	if err != nil {
		t.Fatalf("Lex(\"\") returned error: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Kind != token.EOF {
		t.Errorf("Lex(\"\") = %v, want a single EOF token", tokens)
	}
}

func TestNumericLiterals(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		source  string
		kind    token.Kind
		literal token.Literal
	}{
		{"0", token.INTEGER, token.Int(0)},
		{"42", token.INTEGER, token.Int(42)},
		{"0xFF", token.INTEGER, token.Int(255)},
		{"0b101", token.INTEGER, token.Int(5)},
		{"0o173", token.INTEGER, token.Int(123)},
		{"1_000_000", token.INTEGER, token.Int(1000000)},
		{"0xDEAD_BEEF", token.INTEGER, token.Int(0xDEADBEEF)},
		{"2.5", token.FLOAT, token.Float(2.5)},
		{"1.5e2", token.FLOAT, token.Float(150)},
		{"1e3", token.FLOAT, token.Float(1000)},
		{"2E-2", token.FLOAT, token.Float(0.02)},
		{"1_000.5", token.FLOAT, token.Float(1000.5)},
	}

	for _, testcase := range testcases {
		tokens, err := lexer.Lex(testcase.source)
		if err != nil {
			t.Errorf("Lex(%q) returned error: %v", testcase.source, err)
			continue
		}
		if len(tokens) != 2 {
			t.Errorf("Lex(%q) = %v, want one literal and EOF", testcase.source, tokens)
			continue
		}
		if tokens[0].Kind != testcase.kind {
			t.Errorf("Lex(%q) kind = %v, want %v", testcase.source, tokens[0].Kind, testcase.kind)
		}
		if tokens[0].Literal != testcase.literal {
			t.Errorf("Lex(%q) literal = %v, want %v", testcase.source, tokens[0].Literal, testcase.literal)
		}
	}
}

func TestMethodCallOnIntNotAFloat(t *testing.T) {
	t.Parallel()

	// `1.to_string` must lex as INTEGER DOT IDENT, not a float.
	tokens, err := lexer.Lex("1.to_string")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}

	kinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	expected := []token.Kind{token.INTEGER, token.DOT, token.IDENT, token.EOF}
	if diff := cmp.Diff(expected, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestOperatorLongestMatch(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		source string
		kinds  []token.Kind
	}{
		{"...", []token.Kind{token.ELLIPSIS, token.EOF}},
		{"..", []token.Kind{token.DOTDOT, token.EOF}},
		{".", []token.Kind{token.DOT, token.EOF}},
		{"**", []token.Kind{token.STARSTAR, token.EOF}},
		{"*=", []token.Kind{token.STAREQUAL, token.EOF}},
		{"??", []token.Kind{token.QUESTIONQUESTION, token.EOF}},
		{"?", []token.Kind{token.QUESTION, token.EOF}},
		{"->", []token.Kind{token.ARROW, token.EOF}},
		{"-=", []token.Kind{token.MINUSEQUAL, token.EOF}},
		{"<<", []token.Kind{token.LESSLESS, token.EOF}},
		{"<=", []token.Kind{token.LESSEQUAL, token.EOF}},
		{">>", []token.Kind{token.GREATERGREATER, token.EOF}},
		{"&&", []token.Kind{token.AMPAMP, token.EOF}},
		{"&", []token.Kind{token.AMP, token.EOF}},
		{"||", []token.Kind{token.PIPEPIPE, token.EOF}},
		{"==", []token.Kind{token.EQUALEQUAL, token.EOF}},
		{"!=", []token.Kind{token.BANGEQUAL, token.EOF}},
	}

	for _, testcase := range testcases {
		tokens, err := lexer.Lex(testcase.source)
		if err != nil {
			t.Errorf("Lex(%q) returned error: %v", testcase.source, err)
			continue
		}
		kinds := make([]token.Kind, len(tokens))
		for i, tok := range tokens {
			kinds[i] = tok.Kind
		}
		if diff := cmp.Diff(testcase.kinds, kinds); diff != "" {
			t.Errorf("Lex(%q) kinds mismatch (-want +got):\n%s", testcase.source, diff)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		source   string
		expected token.Literal
	}{
		{`"plain"`, token.Str("plain")},
		{`"a\nb"`, token.Str("a\nb")},
		{`"tab\there"`, token.Str("tab\there")},
		{`"quote\"quote"`, token.Str(`quote"quote`)},
		{`"back\\slash"`, token.Str(`back\slash`)},
		{`"zero\0end"`, token.Str("zero\x00end")},
		{`"smile\u{1F600}"`, token.Str("smile\U0001F600")},
		{`'x'`, token.Char('x')},
		{`'\n'`, token.Char('\n')},
		{`'\u{3042}'`, token.Char('あ')},
	}

	for _, testcase := range testcases {
		tokens, err := lexer.Lex(testcase.source)
		if err != nil {
			t.Errorf("Lex(%q) returned error: %v", testcase.source, err)
			continue
		}
		if tokens[0].Literal != testcase.expected {
			t.Errorf("Lex(%q) literal = %v, want %v", testcase.source, tokens[0].Literal, testcase.expected)
		}
	}
}

func TestComments(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Lex("// line comment\nvar /* inner */ x;")
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}

	kinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	expected := []token.Kind{token.VAR, token.IDENT, token.SEMICOLON, token.EOF}
	if diff := cmp.Diff(expected, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestLexErrors(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		label  string
		source string
		as     any
	}{
		{"unterminated string", `"oops`, &lexer.UnterminatedStringError{}},
		{"newline in string", "\"oops\nvar\"", &lexer.UnterminatedStringError{}},
		{"invalid escape", `"\z"`, &lexer.InvalidEscapeError{}},
		{"unterminated block comment", "/* forever", &lexer.UnterminatedCommentError{}},
		{"unterminated char", "'ab'", &lexer.UnterminatedCharError{}},
		{"empty char", "''", &lexer.UnterminatedCharError{}},
		{"unexpected character", "#", &lexer.UnexpectedCharacterError{}},
	}

	for _, testcase := range testcases {
		tokens, err := lexer.Lex(testcase.source)
		if err == nil {
			t.Errorf("%s: Lex(%q) = %v, want error", testcase.label, testcase.source, tokens)
			continue
		}
		if tokens != nil {
			t.Errorf("%s: Lex(%q) returned a partial stream alongside the error", testcase.label, testcase.source)
		}
		if !errors.As(err, testcase.as) {
			t.Errorf("%s: Lex(%q) error = %v, want %T", testcase.label, testcase.source, err, testcase.as)
		}
	}
}

func TestErrorPosition(t *testing.T) {
	t.Parallel()

	_, err := lexer.Lex("var x =\n  \"oops")
	var unterminated lexer.UnterminatedStringError
	if !errors.As(err, &unterminated) {
		t.Fatalf("Lex error = %v, want UnterminatedStringError", err)
	}
	if unterminated.Line != 2 || unterminated.Column != 3 {
		t.Errorf("error position = %d:%d, want 2:3", unterminated.Line, unterminated.Column)
	}
}

func TestRelexLexemes(t *testing.T) {
	t.Parallel()

	// Lexemes are self-contained: re-lexing any token's lexeme on its
	// own reproduces a token of the same kind and literal.
	source := `sealed class Box: Base {
	var n: Int = 0xFF + 1_000 - 0b101 * 0o17;
	const s: String = "a\nb";
	const c: Char = '\u{3042}';
	func f(x: Float) -> Bool {
		return x ** 2.5e1 >= 1.5 && !false || true != nil;
	}
	var bits = n << 2 >> 1 ^ n & 3 | 4;
	var opt = s ?? "d";
	var r = 1 .. 10;
}`
	tokens, err := lexer.Lex(source)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}

	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			continue
		}
		again, err := lexer.Lex(tok.Lexeme)
		if err != nil {
			t.Errorf("Lex(%q) returned error: %v", tok.Lexeme, err)
			continue
		}
		if len(again) != 2 {
			t.Errorf("Lex(%q) = %v, want one token and EOF", tok.Lexeme, again)
			continue
		}
		if again[0].Kind != tok.Kind {
			t.Errorf("Lex(%q) kind = %v, want %v", tok.Lexeme, again[0].Kind, tok.Kind)
		}
		if again[0].Literal != tok.Literal {
			t.Errorf("Lex(%q) literal = %v, want %v", tok.Lexeme, again[0].Literal, tok.Literal)
		}
	}
}

func TestLexDeterministic(t *testing.T) {
	t.Parallel()

	source := "func f(a: Int) -> Int { return a * 0x10 + 1.5e1; }"
	first, err := lexer.Lex(source)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	second, err := lexer.Lex(source)
	if err != nil {
		t.Fatalf("Lex returned error: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two scans of the same source differ (-first +second):\n%s", diff)
	}
}
