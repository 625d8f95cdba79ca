package lexer

import (
	"fmt"

	"github.com/cpp2-lang/cpp2go/internal/source"
)

// TokenType represents the type of a token.
type TokenType int

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types.
const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Identifiers, keywords and literals
	TokenIdentifier
	TokenKeyword
	TokenDecimalLiteral
	TokenFloatLiteral
	TokenStringLiteral
	TokenCharacterLiteral
	TokenBinaryLiteral
	TokenHexadecimalLiteral

	// Punctuation
	TokenLeftParen
	TokenRightParen
	TokenLeftBrace
	TokenRightBrace
	TokenLeftBracket
	TokenRightBracket
	TokenSemicolon
	TokenComma
	TokenColon
	TokenColonEq // := is lexed whole; no grammar production accepts it
	TokenScope   // ::
	TokenDot
	TokenQuestion
	TokenAt
	TokenArrow

	// Prefix and postfix operators
	TokenNot
	TokenPlusPlus
	TokenMinusMinus
	TokenCaret
	TokenAmpersand
	TokenTilde
	TokenDollar

	// Assignment operators
	TokenAssignment
	TokenMultiplyEq
	TokenSlashEq
	TokenModuloEq
	TokenPlusEq
	TokenMinusEq
	TokenRightShiftEq
	TokenLeftShiftEq
	TokenAmpersandEq
	TokenCaretEq
	TokenPipeEq

	// Arithmetic operators
	TokenMultiply
	TokenSlash
	TokenModulo
	TokenPlus
	TokenMinus

	// Shift, comparison and logical operators
	TokenLeftShift
	TokenRightShift
	TokenSpaceship
	TokenLess
	TokenGreater
	TokenLessEq
	TokenGreaterEq
	TokenEqualComparison
	TokenNotEqualComparison
	TokenLogicalAnd
	TokenLogicalOr
	TokenPipe

	// Range operators
	TokenEllipsisEq   // ..=
	TokenEllipsisLess // ..<
)

// tokenNames provides string representations for token types.
var tokenNames = map[TokenType]string{
	TokenEOF:   "EOF",
	TokenError: "ERROR",

	TokenIdentifier:         "IDENTIFIER",
	TokenKeyword:            "KEYWORD",
	TokenDecimalLiteral:     "DECIMAL_LITERAL",
	TokenFloatLiteral:       "FLOAT_LITERAL",
	TokenStringLiteral:      "STRING_LITERAL",
	TokenCharacterLiteral:   "CHARACTER_LITERAL",
	TokenBinaryLiteral:      "BINARY_LITERAL",
	TokenHexadecimalLiteral: "HEXADECIMAL_LITERAL",

	TokenLeftParen:    "LEFT_PAREN",
	TokenRightParen:   "RIGHT_PAREN",
	TokenLeftBrace:    "LEFT_BRACE",
	TokenRightBrace:   "RIGHT_BRACE",
	TokenLeftBracket:  "LEFT_BRACKET",
	TokenRightBracket: "RIGHT_BRACKET",
	TokenSemicolon:    "SEMICOLON",
	TokenComma:        "COMMA",
	TokenColon:        "COLON",
	TokenColonEq:      "COLON_EQ",
	TokenScope:        "SCOPE",
	TokenDot:          "DOT",
	TokenQuestion:     "QUESTION",
	TokenAt:           "AT",
	TokenArrow:        "ARROW",

	TokenNot:        "NOT",
	TokenPlusPlus:   "PLUS_PLUS",
	TokenMinusMinus: "MINUS_MINUS",
	TokenCaret:      "CARET",
	TokenAmpersand:  "AMPERSAND",
	TokenTilde:      "TILDE",
	TokenDollar:     "DOLLAR",

	TokenAssignment:   "ASSIGNMENT",
	TokenMultiplyEq:   "MULTIPLY_EQ",
	TokenSlashEq:      "SLASH_EQ",
	TokenModuloEq:     "MODULO_EQ",
	TokenPlusEq:       "PLUS_EQ",
	TokenMinusEq:      "MINUS_EQ",
	TokenRightShiftEq: "RIGHT_SHIFT_EQ",
	TokenLeftShiftEq:  "LEFT_SHIFT_EQ",
	TokenAmpersandEq:  "AMPERSAND_EQ",
	TokenCaretEq:      "CARET_EQ",
	TokenPipeEq:       "PIPE_EQ",

	TokenMultiply: "MULTIPLY",
	TokenSlash:    "SLASH",
	TokenModulo:   "MODULO",
	TokenPlus:     "PLUS",
	TokenMinus:    "MINUS",

	TokenLeftShift:          "LEFT_SHIFT",
	TokenRightShift:         "RIGHT_SHIFT",
	TokenSpaceship:          "SPACESHIP",
	TokenLess:               "LESS",
	TokenGreater:            "GREATER",
	TokenLessEq:             "LESS_EQ",
	TokenGreaterEq:          "GREATER_EQ",
	TokenEqualComparison:    "EQUAL_COMPARISON",
	TokenNotEqualComparison: "NOT_EQUAL_COMPARISON",
	TokenLogicalAnd:         "LOGICAL_AND",
	TokenLogicalOr:          "LOGICAL_OR",
	TokenPipe:               "PIPE",

	TokenEllipsisEq:   "ELLIPSIS_EQ",
	TokenEllipsisLess: "ELLIPSIS_LESS",
}

// Token represents a lexical token with position information. Tokens are
// immutable once produced; the parser references them by pointer into the
// token slice, so the slice must outlive any tree built from it.
type Token struct {
	Type    TokenType
	Literal string
	Pos     source.Position
}

// Position returns the source position of the token.
func (t *Token) Position() source.Position {
	return t.Pos
}

// String returns a string representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("{Type: %s, Literal: %q, Pos: %s}", t.Type, t.Literal, t.Pos)
}

// keywords are the words that lex as TokenKeyword. Fundamental type names
// are included so they can appear as type references. The contextual words
// in/inout/out/move/forward and implicit/virtual/override/final lex as
// plain identifiers; the grammar tests them by text.
var keywords = map[string]bool{
	"alignas": true, "alignof": true, "asm": true, "auto": true,
	"bool": true, "break": true, "case": true, "catch": true,
	"char": true, "char8_t": true, "char16_t": true, "char32_t": true,
	"class": true, "concept": true, "const": true, "consteval": true,
	"constexpr": true, "constinit": true, "const_cast": true,
	"continue": true, "co_await": true, "co_return": true, "co_yield": true,
	"decltype": true, "default": true, "delete": true, "do": true,
	"double": true, "dynamic_cast": true, "else": true, "enum": true,
	"explicit": true, "export": true, "extern": true, "false": true,
	"float": true, "for": true, "friend": true, "goto": true,
	"if": true, "inline": true, "int": true, "long": true,
	"mutable": true, "namespace": true, "new": true, "noexcept": true,
	"nullptr": true, "operator": true, "private": true, "protected": true,
	"public": true, "register": true, "reinterpret_cast": true,
	"requires": true, "return": true, "short": true, "signed": true,
	"sizeof": true, "static": true, "static_assert": true,
	"static_cast": true, "struct": true, "switch": true, "template": true,
	"this": true, "thread_local": true, "throw": true, "true": true,
	"try": true, "typedef": true, "typeid": true, "typename": true,
	"union": true, "unsigned": true, "using": true, "void": true,
	"volatile": true, "wchar_t": true, "while": true,

	// Cpp2 keywords
	"is": true, "as": true,
}

// IsKeyword reports whether the given word lexes as a keyword.
func IsKeyword(word string) bool {
	return keywords[word]
}
