package expr

import (
	"errors"
	"strconv"
)

// TokenType identifies a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenIdent
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPower
	TokenLParen
	TokenRParen
)

var tokenNames = map[TokenType]string{
	TokenEOF:    "end of input",
	TokenNumber: "number",
	TokenIdent:  "identifier",
	TokenPlus:   "'+'",
	TokenMinus:  "'-'",
	TokenStar:   "'*'",
	TokenSlash:  "'/'",
	TokenPower:  "'**'",
	TokenLParen: "'('",
	TokenRParen: "')'",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "unknown"
}

// Token is a lexical token with its byte offset in the normalized input.
type Token struct {
	Type   TokenType
	Text   string
	Number float64
	Pos    int
}

// Lexer splits a normalized expression into tokens.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a lexer over input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) peekByte(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

// Next returns the next token or a syntax error for an unknown character.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()
	start := l.pos
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: start}, nil
	}

	ch := l.input[l.pos]
	switch {
	case ch == '+':
		l.pos++
		return Token{Type: TokenPlus, Text: "+", Pos: start}, nil
	case ch == '-':
		l.pos++
		return Token{Type: TokenMinus, Text: "-", Pos: start}, nil
	case ch == '*':
		if l.peekByte(1) == '*' {
			l.pos += 2
			return Token{Type: TokenPower, Text: "**", Pos: start}, nil
		}
		l.pos++
		return Token{Type: TokenStar, Text: "*", Pos: start}, nil
	case ch == '/':
		l.pos++
		return Token{Type: TokenSlash, Text: "/", Pos: start}, nil
	case ch == '(':
		l.pos++
		return Token{Type: TokenLParen, Text: "(", Pos: start}, nil
	case ch == ')':
		l.pos++
		return Token{Type: TokenRParen, Text: ")", Pos: start}, nil
	case isDigit(ch) || (ch == '.' && isDigit(l.peekByte(1))):
		return l.readNumber()
	case isLetter(ch):
		for l.pos < len(l.input) && (isLetter(l.input[l.pos]) || isDigit(l.input[l.pos])) {
			l.pos++
		}
		return Token{Type: TokenIdent, Text: l.input[start:l.pos], Pos: start}, nil
	default:
		return Token{}, newError(KindSyntax, "unexpected character %q at %d", ch, start)
	}
}

// readNumber consumes digits, an optional fraction and an optional exponent.
// "5." is accepted as 5, matching what the keypad can produce mid-entry.
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	for isDigit(l.peekByte(0)) {
		l.pos++
	}
	if l.peekByte(0) == '.' {
		l.pos++
		for isDigit(l.peekByte(0)) {
			l.pos++
		}
	}
	if c := l.peekByte(0); c == 'e' || c == 'E' {
		offset := 1
		if s := l.peekByte(1); s == '+' || s == '-' {
			offset = 2
		}
		if isDigit(l.peekByte(offset)) {
			l.pos += offset
			for isDigit(l.peekByte(0)) {
				l.pos++
			}
		}
	}

	text := l.input[start:l.pos]
	value, err := strconv.ParseFloat(text, 64)
	// Out-of-range literals parse to ±Inf and are rejected after evaluation.
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Token{}, newError(KindSyntax, "malformed number %q at %d", text, start)
	}
	return Token{Type: TokenNumber, Text: text, Number: value, Pos: start}, nil
}

// Tokenize returns every token of input, ending with TokenEOF.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' }
