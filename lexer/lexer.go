package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sable-lang/sable/token"
)

// Lex scans the whole source text into a token stream.
// The stream always ends with exactly one EOF token.
// Scanning is all-or-nothing: the first lexical error aborts the scan
// and no partial token stream is returned.
func Lex(source string) ([]token.Token, error) {
	lexer := lexer{
		source:  source,
		tokens:  []token.Token{},
		start:   0,
		current: 0,
		line:    1,
		column:  1,
	}

	for !lexer.isAtEnd() {
		if err := lexer.scanToken(); err != nil {
			return nil, err
		}
	}

	lexer.tokens = append(lexer.tokens, token.Token{Kind: token.EOF, Lexeme: "", Line: lexer.line, Column: lexer.column})

	return lexer.tokens, nil
}

type lexer struct {
	source string
	tokens []token.Token

	start   int // start of current lexeme
	current int // current position in source
	line    int // current line number, 1-based
	column  int // column of the next rune, 1-based

	startLine   int // position of the current lexeme's first rune
	startColumn int
}

func (l lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current:])

	return runeValue
}

func (l lexer) peekNext() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	_, width := utf8.DecodeRuneInString(l.source[l.current:])
	if l.current+width >= len(l.source) {
		return '\x00'
	}
	runeValue, _ := utf8.DecodeRuneInString(l.source[l.current+width:])

	return runeValue
}

func (l *lexer) advance() rune {
	runeValue, width := utf8.DecodeRuneInString(l.source[l.current:])
	l.current += width
	if runeValue == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	return runeValue
}

// match consumes the next rune only if it equals expected.
func (l *lexer) match(expected rune) bool {
	if l.peek() != expected {
		return false
	}
	l.advance()

	return true
}

func (l *lexer) addToken(kind token.Kind, literal token.Literal) {
	text := l.source[l.start:l.current]
	l.tokens = append(l.tokens, token.Token{Kind: kind, Lexeme: text, Literal: literal, Line: l.startLine, Column: l.startColumn})
}

type UnexpectedCharacterError struct {
	Line   int
	Column int
	Char   rune
}

func (e UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected character: %c at %d:%d", e.Char, e.Line, e.Column)
}

func (l *lexer) scanToken() error {
	l.start = l.current
	l.startLine = l.line
	l.startColumn = l.column
	char := l.advance()
	switch char {
	case ' ', '\r', '\t', '\n':
		return nil
	case '(':
		l.addToken(token.LEFTPAREN, nil)
	case ')':
		l.addToken(token.RIGHTPAREN, nil)
	case '{':
		l.addToken(token.LEFTBRACE, nil)
	case '}':
		l.addToken(token.RIGHTBRACE, nil)
	case '[':
		l.addToken(token.LEFTBRACKET, nil)
	case ']':
		l.addToken(token.RIGHTBRACKET, nil)
	case ',':
		l.addToken(token.COMMA, nil)
	case ';':
		l.addToken(token.SEMICOLON, nil)
	case ':':
		l.addToken(token.COLON, nil)
	case '~':
		l.addToken(token.TILDE, nil)
	case '^':
		l.addToken(token.CARET, nil)
	case '%':
		l.addToken(token.PERCENT, nil)
	case '.':
		// Longest match first: `...` before `..` before `.`.
		if l.match('.') {
			if l.match('.') {
				l.addToken(token.ELLIPSIS, nil)
			} else {
				l.addToken(token.DOTDOT, nil)
			}
		} else {
			l.addToken(token.DOT, nil)
		}
	case '?':
		if l.match('?') {
			l.addToken(token.QUESTIONQUESTION, nil)
		} else {
			l.addToken(token.QUESTION, nil)
		}
	case '+':
		if l.match('=') {
			l.addToken(token.PLUSEQUAL, nil)
		} else {
			l.addToken(token.PLUS, nil)
		}
	case '-':
		switch {
		case l.match('='):
			l.addToken(token.MINUSEQUAL, nil)
		case l.match('>'):
			l.addToken(token.ARROW, nil)
		default:
			l.addToken(token.MINUS, nil)
		}
	case '*':
		switch {
		case l.match('*'):
			l.addToken(token.STARSTAR, nil)
		case l.match('='):
			l.addToken(token.STAREQUAL, nil)
		default:
			l.addToken(token.STAR, nil)
		}
	case '/':
		switch {
		case l.match('/'):
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
		case l.match('*'):
			return l.blockComment()
		case l.match('='):
			l.addToken(token.SLASHEQUAL, nil)
		default:
			l.addToken(token.SLASH, nil)
		}
	case '!':
		if l.match('=') {
			l.addToken(token.BANGEQUAL, nil)
		} else {
			l.addToken(token.BANG, nil)
		}
	case '=':
		if l.match('=') {
			l.addToken(token.EQUALEQUAL, nil)
		} else {
			l.addToken(token.EQUAL, nil)
		}
	case '<':
		switch {
		case l.match('='):
			l.addToken(token.LESSEQUAL, nil)
		case l.match('<'):
			l.addToken(token.LESSLESS, nil)
		default:
			l.addToken(token.LESS, nil)
		}
	case '>':
		switch {
		case l.match('='):
			l.addToken(token.GREATEREQUAL, nil)
		case l.match('>'):
			l.addToken(token.GREATERGREATER, nil)
		default:
			l.addToken(token.GREATER, nil)
		}
	case '&':
		if l.match('&') {
			l.addToken(token.AMPAMP, nil)
		} else {
			l.addToken(token.AMP, nil)
		}
	case '|':
		if l.match('|') {
			l.addToken(token.PIPEPIPE, nil)
		} else {
			l.addToken(token.PIPE, nil)
		}
	case '"':
		return l.string()
	case '\'':
		return l.char()
	default:
		if isDigit(char) {
			return l.number(char)
		}
		if isAlpha(char) {
			l.identifier()

			return nil
		}

		return UnexpectedCharacterError{Line: l.startLine, Column: l.startColumn, Char: char}
	}

	return nil
}

type UnterminatedCommentError struct {
	Line   int
	Column int
}

func (e UnterminatedCommentError) Error() string {
	return fmt.Sprintf("unterminated block comment at %d:%d", e.Line, e.Column)
}

// blockComment consumes `/* ... */`. Comments do not nest.
func (l *lexer) blockComment() error {
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()

			return nil
		}
		l.advance()
	}

	return UnterminatedCommentError{Line: l.startLine, Column: l.startColumn}
}

type UnterminatedStringError struct {
	Line   int
	Column int
}

func (e UnterminatedStringError) Error() string {
	return fmt.Sprintf("unterminated string at %d:%d", e.Line, e.Column)
}

type InvalidEscapeError struct {
	Line   int
	Column int
	Char   rune
}

func (e InvalidEscapeError) Error() string {
	return fmt.Sprintf("invalid escape sequence `\\%c` at %d:%d", e.Char, e.Line, e.Column)
}

func (l *lexer) string() error {
	var builder strings.Builder
	for l.peek() != '"' {
		if l.isAtEnd() || l.peek() == '\n' {
			return UnterminatedStringError{Line: l.startLine, Column: l.startColumn}
		}
		if l.peek() == '\\' {
			l.advance()
			decoded, err := l.escape()
			if err != nil {
				return err
			}
			builder.WriteRune(decoded)

			continue
		}
		builder.WriteRune(l.advance())
	}
	l.advance() // closing quote

	l.addToken(token.STRING, token.Str(builder.String()))

	return nil
}

// escape decodes one escape sequence. The backslash is already consumed.
func (l *lexer) escape() (rune, error) {
	if l.isAtEnd() {
		return 0, UnterminatedStringError{Line: l.startLine, Column: l.startColumn}
	}
	escLine, escColumn := l.line, l.column-1
	char := l.advance()
	switch char {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '0':
		return '\x00', nil
	case '\\':
		return '\\', nil
	case '"':
		return '"', nil
	case '\'':
		return '\'', nil
	case 'u':
		if !l.match('{') {
			return 0, InvalidEscapeError{Line: escLine, Column: escColumn, Char: char}
		}
		var digits strings.Builder
		for l.peek() != '}' {
			if l.isAtEnd() || !isHexDigit(l.peek()) {
				return 0, InvalidEscapeError{Line: escLine, Column: escColumn, Char: char}
			}
			digits.WriteRune(l.advance())
		}
		l.advance() // closing brace
		value, err := strconv.ParseUint(digits.String(), 16, 32)
		if err != nil || !utf8.ValidRune(rune(value)) {
			return 0, InvalidEscapeError{Line: escLine, Column: escColumn, Char: char}
		}

		return rune(value), nil
	default:
		return 0, InvalidEscapeError{Line: escLine, Column: escColumn, Char: char}
	}
}

type UnterminatedCharError struct {
	Line   int
	Column int
}

func (e UnterminatedCharError) Error() string {
	return fmt.Sprintf("unterminated character literal at %d:%d", e.Line, e.Column)
}

// char scans exactly one logical character between single quotes.
func (l *lexer) char() error {
	if l.isAtEnd() || l.peek() == '\n' || l.peek() == '\'' {
		return UnterminatedCharError{Line: l.startLine, Column: l.startColumn}
	}

	var value rune
	if l.peek() == '\\' {
		l.advance()
		decoded, err := l.escape()
		if err != nil {
			return err
		}
		value = decoded
	} else {
		value = l.advance()
	}

	if !l.match('\'') {
		return UnterminatedCharError{Line: l.startLine, Column: l.startColumn}
	}
	l.addToken(token.CHAR, token.Char(value))

	return nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isBinaryDigit(c rune) bool {
	return c == '0' || c == '1'
}

func isOctalDigit(c rune) bool {
	return c >= '0' && c <= '7'
}

func isAlpha(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

type InvalidNumberError struct {
	Line   int
	Column int
	Text   string
}

func (e InvalidNumberError) Error() string {
	return fmt.Sprintf("invalid numeric literal `%s` at %d:%d", e.Text, e.Line, e.Column)
}

// number scans an integer or float literal. A 0x/0b/0o prefix always
// yields an integer; a decimal literal is reclassified as a float when a
// `.` followed by a digit or an exponent marker appears. Underscores are
// digit-group separators and are stripped before conversion.
func (l *lexer) number(first rune) error {
	if first == '0' {
		switch l.peek() {
		case 'x', 'X':
			l.advance()

			return l.radixInteger(isHexDigit, 16)
		case 'b', 'B':
			l.advance()

			return l.radixInteger(isBinaryDigit, 2)
		case 'o', 'O':
			l.advance()

			return l.radixInteger(isOctalDigit, 8)
		}
	}

	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	isFloat := false
	if l.peek() == '.' && isDigit(l.peekNext()) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		next := l.peekNext()
		if isDigit(next) || next == '+' || next == '-' {
			isFloat = true
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	text := strings.ReplaceAll(l.source[l.start:l.current], "_", "")
	if isFloat {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return InvalidNumberError{Line: l.startLine, Column: l.startColumn, Text: l.source[l.start:l.current]}
		}
		l.addToken(token.FLOAT, token.Float(value))

		return nil
	}

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return InvalidNumberError{Line: l.startLine, Column: l.startColumn, Text: l.source[l.start:l.current]}
	}
	l.addToken(token.INTEGER, token.Int(value))

	return nil
}

func (l *lexer) radixInteger(isRadixDigit func(rune) bool, base int) error {
	digitStart := l.current
	for isRadixDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	text := strings.ReplaceAll(l.source[digitStart:l.current], "_", "")
	value, err := strconv.ParseInt(text, base, 64)
	if err != nil {
		return InvalidNumberError{Line: l.startLine, Column: l.startColumn, Text: l.source[l.start:l.current]}
	}
	l.addToken(token.INTEGER, token.Int(value))

	return nil
}

func (l *lexer) identifier() {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	value := l.source[l.start:l.current]

	switch value {
	case "true":
		l.addToken(token.TRUE, token.Bool(true))
	case "false":
		l.addToken(token.FALSE, token.Bool(false))
	default:
		if k, ok := keywords[value]; ok {
			l.addToken(k, nil)
		} else {
			l.addToken(token.IDENT, nil)
		}
	}
}

var keywords = map[string]token.Kind{
	"class":     token.CLASS,
	"struct":    token.STRUCT,
	"enum":      token.ENUM,
	"interface": token.INTERFACE,
	"func":      token.FUNC,
	"var":       token.VAR,
	"const":     token.CONST,
	"if":        token.IF,
	"else":      token.ELSE,
	"while":     token.WHILE,
	"for":       token.FOR,
	"return":    token.RETURN,
	"break":     token.BREAK,
	"continue":  token.CONTINUE,
	"this":      token.THIS,
	"super":     token.SUPER,
	"new":       token.NEW,
	"nil":       token.NIL,
	"static":    token.STATIC,
	"abstract":  token.ABSTRACT,
	"final":     token.FINAL,
	"sealed":    token.SEALED,
	"override":  token.OVERRIDE,
	"import":    token.IMPORT,
}
