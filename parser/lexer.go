package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	src   string
	start int // byte offset of the lexeme being scanned
	pos   int // byte offset of the next rune
	line  int

	errh   ErrorHandler
	tokens []Token
}

func newLexer(src string, errh ErrorHandler) *lexer {
	return &lexer{
		src:  src,
		line: 1,
		errh: errh,
	}
}

// ScanTokens splits src into tokens terminated by a single EOF token.
// Lexical errors are passed to errh and the offending input is skipped.
func ScanTokens(src string, errh ErrorHandler) []Token {
	return newLexer(src, errh).scanTokens()
}

func (lx *lexer) scanTokens() []Token {
	for !lx.atEnd() {
		lx.start = lx.pos
		lx.scanToken()
	}
	lx.tokens = append(lx.tokens, Token{Type: TokenEOF, Line: lx.line})
	return lx.tokens
}

func (lx *lexer) scanToken() {
	r := lx.readRune()
	switch r {
	case '(':
		lx.addToken(TokenLeftParen, nil)
	case ')':
		lx.addToken(TokenRightParen, nil)
	case '{':
		lx.addToken(TokenLeftBrace, nil)
	case '}':
		lx.addToken(TokenRightBrace, nil)
	case ',':
		lx.addToken(TokenComma, nil)
	case '.':
		lx.addToken(TokenDot, nil)
	case '-':
		lx.addToken(TokenMinus, nil)
	case '+':
		lx.addToken(TokenPlus, nil)
	case ';':
		lx.addToken(TokenSemicolon, nil)
	case '*':
		lx.addToken(TokenStar, nil)
	case '!':
		lx.addToken(lx.either('=', TokenBangEqual, TokenBang), nil)
	case '=':
		lx.addToken(lx.either('=', TokenEqualEqual, TokenEqual), nil)
	case '<':
		lx.addToken(lx.either('=', TokenLessEqual, TokenLess), nil)
	case '>':
		lx.addToken(lx.either('=', TokenGreaterEqual, TokenGreater), nil)
	case '/':
		if lx.match('/') {
			lx.skipLine()
		} else {
			lx.addToken(TokenSlash, nil)
		}
	case ' ', '\r', '\t':
	case '\n':
		lx.line++
	case '"':
		lx.scanString()
	default:
		switch {
		case isDigit(r):
			lx.scanNumber()
		case isIdentifierStart(r):
			lx.scanIdentifier()
		default:
			lx.report(newLexError(lx.line, "Unexpected character."))
		}
	}
}

func (lx *lexer) atEnd() bool {
	return lx.pos >= len(lx.src)
}

func (lx *lexer) readRune() rune {
	r, w := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += w
	return r
}

func (lx *lexer) peek() rune {
	if lx.atEnd() {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(lx.src[lx.pos:])
	return r
}

func (lx *lexer) peekNext() rune {
	if lx.atEnd() {
		return 0
	}
	_, w := utf8.DecodeRuneInString(lx.src[lx.pos:])
	if lx.pos+w >= len(lx.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(lx.src[lx.pos+w:])
	return r
}

func (lx *lexer) match(expected rune) bool {
	if lx.atEnd() || lx.peek() != expected {
		return false
	}
	lx.readRune()
	return true
}

func (lx *lexer) either(expected rune, matched, single TokenType) TokenType {
	if lx.match(expected) {
		return matched
	}
	return single
}

func (lx *lexer) skipLine() {
	for !lx.atEnd() && lx.peek() != '\n' {
		lx.readRune()
	}
}

// scanString works on bytes: the delimiters and escapes are ASCII, and any
// other bytes are copied through unchanged, valid UTF-8 or not.
func (lx *lexer) scanString() {
	var builder strings.Builder
	from := lx.pos
	for !lx.atEnd() {
		c := lx.src[lx.pos]
		switch c {
		case '"':
			builder.WriteString(lx.src[from:lx.pos])
			lx.pos++
			lx.addToken(TokenString, builder.String())
			return
		case '\n':
			lx.line++
			lx.pos++
		case '\\':
			builder.WriteString(lx.src[from:lx.pos])
			lx.pos++
			if lx.atEnd() {
				from = lx.pos
				continue
			}
			esc := lx.src[lx.pos]
			lx.pos++
			from = lx.pos
			switch esc {
			case 'n':
				builder.WriteByte('\n')
			case 't':
				builder.WriteByte('\t')
			default:
				// Any other escaped byte stands for itself and starts the next run.
				if esc == '\n' {
					lx.line++
				}
				from = lx.pos - 1
			}
		default:
			lx.pos++
		}
	}
	lx.report(&Error{
		Line:       lx.line,
		Message:    "Unterminated string.",
		Incomplete: true,
	})
}

func (lx *lexer) scanNumber() {
	for isDigit(lx.peek()) {
		lx.readRune()
	}
	if lx.peek() == '.' && isDigit(lx.peekNext()) {
		lx.readRune()
		for isDigit(lx.peek()) {
			lx.readRune()
		}
	}
	// Digits with an optional fraction always parse; out-of-range values become ±Inf.
	value, _ := strconv.ParseFloat(lx.lexeme(), 64)
	lx.addToken(TokenNumber, value)
}

func (lx *lexer) scanIdentifier() {
	for isIdentifierPart(lx.peek()) {
		lx.readRune()
	}
	tt, ok := keywords[lx.lexeme()]
	if !ok {
		tt = TokenIdentifier
	}
	lx.addToken(tt, nil)
}

func (lx *lexer) lexeme() string {
	return lx.src[lx.start:lx.pos]
}

func (lx *lexer) addToken(tt TokenType, literal any) {
	lx.tokens = append(lx.tokens, Token{
		Type:    tt,
		Lexeme:  lx.lexeme(),
		Literal: literal,
		Line:    lx.line,
	})
}

func (lx *lexer) report(err *Error) {
	if lx.errh != nil {
		lx.errh(err)
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || isDigit(r)
}
