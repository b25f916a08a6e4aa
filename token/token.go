package token

import "fmt"

type Kind int

const (
	EOF Kind = iota

	// Single-character tokens.
	LEFTPAREN
	RIGHTPAREN
	LEFTBRACE
	RIGHTBRACE
	LEFTBRACKET
	RIGHTBRACKET
	COMMA
	DOT
	COLON
	SEMICOLON
	QUESTION
	TILDE

	// One-, two- and three-character operators.
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	STARSTAR
	BANG
	EQUAL
	PLUSEQUAL
	MINUSEQUAL
	STAREQUAL
	SLASHEQUAL
	EQUALEQUAL
	BANGEQUAL
	LESS
	LESSEQUAL
	GREATER
	GREATEREQUAL
	LESSLESS
	GREATERGREATER
	AMP
	AMPAMP
	PIPE
	PIPEPIPE
	CARET
	QUESTIONQUESTION
	ARROW
	DOTDOT
	ELLIPSIS

	// Literals and identifiers.
	IDENT
	INTEGER
	FLOAT
	STRING
	CHAR

	// Keywords.
	CLASS
	STRUCT
	ENUM
	INTERFACE
	FUNC
	VAR
	CONST
	IF
	ELSE
	WHILE
	FOR
	RETURN
	BREAK
	CONTINUE
	THIS
	SUPER
	NEW
	TRUE
	FALSE
	NIL
	STATIC
	ABSTRACT
	FINAL
	SEALED
	OVERRIDE
	IMPORT
)

var kindNames = [...]string{
	EOF:              "EOF",
	LEFTPAREN:        "LEFTPAREN",
	RIGHTPAREN:       "RIGHTPAREN",
	LEFTBRACE:        "LEFTBRACE",
	RIGHTBRACE:       "RIGHTBRACE",
	LEFTBRACKET:      "LEFTBRACKET",
	RIGHTBRACKET:     "RIGHTBRACKET",
	COMMA:            "COMMA",
	DOT:              "DOT",
	COLON:            "COLON",
	SEMICOLON:        "SEMICOLON",
	QUESTION:         "QUESTION",
	TILDE:            "TILDE",
	PLUS:             "PLUS",
	MINUS:            "MINUS",
	STAR:             "STAR",
	SLASH:            "SLASH",
	PERCENT:          "PERCENT",
	STARSTAR:         "STARSTAR",
	BANG:             "BANG",
	EQUAL:            "EQUAL",
	PLUSEQUAL:        "PLUSEQUAL",
	MINUSEQUAL:       "MINUSEQUAL",
	STAREQUAL:        "STAREQUAL",
	SLASHEQUAL:       "SLASHEQUAL",
	EQUALEQUAL:       "EQUALEQUAL",
	BANGEQUAL:        "BANGEQUAL",
	LESS:             "LESS",
	LESSEQUAL:        "LESSEQUAL",
	GREATER:          "GREATER",
	GREATEREQUAL:     "GREATEREQUAL",
	LESSLESS:         "LESSLESS",
	GREATERGREATER:   "GREATERGREATER",
	AMP:              "AMP",
	AMPAMP:           "AMPAMP",
	PIPE:             "PIPE",
	PIPEPIPE:         "PIPEPIPE",
	CARET:            "CARET",
	QUESTIONQUESTION: "QUESTIONQUESTION",
	ARROW:            "ARROW",
	DOTDOT:           "DOTDOT",
	ELLIPSIS:         "ELLIPSIS",
	IDENT:            "IDENT",
	INTEGER:          "INTEGER",
	FLOAT:            "FLOAT",
	STRING:           "STRING",
	CHAR:             "CHAR",
	CLASS:            "CLASS",
	STRUCT:           "STRUCT",
	ENUM:             "ENUM",
	INTERFACE:        "INTERFACE",
	FUNC:             "FUNC",
	VAR:              "VAR",
	CONST:            "CONST",
	IF:               "IF",
	ELSE:             "ELSE",
	WHILE:            "WHILE",
	FOR:              "FOR",
	RETURN:           "RETURN",
	BREAK:            "BREAK",
	CONTINUE:         "CONTINUE",
	THIS:             "THIS",
	SUPER:            "SUPER",
	NEW:              "NEW",
	TRUE:             "TRUE",
	FALSE:            "FALSE",
	NIL:              "NIL",
	STATIC:           "STATIC",
	ABSTRACT:         "ABSTRACT",
	FINAL:            "FINAL",
	SEALED:           "SEALED",
	OVERRIDE:         "OVERRIDE",
	IMPORT:           "IMPORT",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Token is a classified, positioned lexical unit.
// Line and Column are 1-based.
type Token struct {
	Kind    Kind
	Lexeme  string
	Literal Literal
	Line    int
	Column  int
}

func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("{%v %q %v %d:%d}", t.Kind, t.Lexeme, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("{%v %q %d:%d}", t.Kind, t.Lexeme, t.Line, t.Column)
}

func (t Token) Pos() Token {
	return t
}
