package parser

import (
	"strings"
	"testing"
)

func lexAllTokens(t *testing.T, src string) []Token {
	t.Helper()
	tokens := ScanTokens(src, func(err *Error) {
		t.Fatalf("unexpected lexer error: %v", err)
	})
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != TokenEOF {
		t.Fatalf("expected token stream to end with EOF, got %v", tokens)
	}
	return tokens
}

func lexWithErrors(src string) ([]Token, []*Error) {
	var errs []*Error
	tokens := ScanTokens(src, func(err *Error) {
		errs = append(errs, err)
	})
	return tokens, errs
}

func TestLexerPunctuationAndOperators(t *testing.T) {
	src := "(){},.-+;/* ! != = == > >= < <="
	tokens := lexAllTokens(t, src)
	tokens = tokens[:len(tokens)-1] // drop EOF

	want := []struct {
		typ    TokenType
		lexeme string
	}{
		{TokenLeftParen, "("},
		{TokenRightParen, ")"},
		{TokenLeftBrace, "{"},
		{TokenRightBrace, "}"},
		{TokenComma, ","},
		{TokenDot, "."},
		{TokenMinus, "-"},
		{TokenPlus, "+"},
		{TokenSemicolon, ";"},
		{TokenSlash, "/"},
		{TokenStar, "*"},
		{TokenBang, "!"},
		{TokenBangEqual, "!="},
		{TokenEqual, "="},
		{TokenEqualEqual, "=="},
		{TokenGreater, ">"},
		{TokenGreaterEqual, ">="},
		{TokenLess, "<"},
		{TokenLessEqual, "<="},
	}

	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(tokens), tokens)
	}
	for i, tt := range want {
		tok := tokens[i]
		if tok.Type != tt.typ {
			t.Errorf("token %d: expected type %v, got %v", i, tt.typ, tok.Type)
		}
		if tok.Lexeme != tt.lexeme {
			t.Errorf("token %d: expected lexeme %q, got %q", i, tt.lexeme, tok.Lexeme)
		}
		if tok.Literal != nil {
			t.Errorf("token %d: expected no literal, got %v", i, tok.Literal)
		}
	}
}

func TestLexerIdentifiersAndKeywords(t *testing.T) {
	src := "and class else false for fun if nil or print return super this true var while foo _bar baz123 printer"
	tokens := lexAllTokens(t, src)
	tokens = tokens[:len(tokens)-1]

	want := []TokenType{
		TokenAnd, TokenClass, TokenElse, TokenFalse, TokenFor, TokenFun, TokenIf, TokenNil,
		TokenOr, TokenPrint, TokenReturn, TokenSuper, TokenThis, TokenTrue, TokenVar, TokenWhile,
		TokenIdentifier, TokenIdentifier, TokenIdentifier, TokenIdentifier,
	}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	words := strings.Fields(src)
	for i, typ := range want {
		if tokens[i].Type != typ {
			t.Errorf("token %d: expected type %v, got %v", i, typ, tokens[i].Type)
		}
		if tokens[i].Lexeme != words[i] {
			t.Errorf("token %d: expected lexeme %q, got %q", i, words[i], tokens[i].Lexeme)
		}
	}
}

func TestLexerNumberLiterals(t *testing.T) {
	tests := []struct {
		src    string
		lexeme string
		value  float64
		rest   []TokenType
	}{
		{"0", "0", 0, nil},
		{"123", "123", 123, nil},
		{"3.14", "3.14", 3.14, nil},
		{"10.", "10", 10, []TokenType{TokenDot}},
		{"7.x", "7", 7, []TokenType{TokenDot, TokenIdentifier}},
		{"1.2.3", "1.2", 1.2, []TokenType{TokenDot, TokenNumber}},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens := lexAllTokens(t, tt.src)
			tok := tokens[0]
			if tok.Type != TokenNumber {
				t.Fatalf("expected number token, got %v", tok.Type)
			}
			if tok.Lexeme != tt.lexeme {
				t.Fatalf("expected lexeme %q, got %q", tt.lexeme, tok.Lexeme)
			}
			if got, ok := tok.Literal.(float64); !ok || got != tt.value {
				t.Fatalf("expected literal %v, got %#v", tt.value, tok.Literal)
			}
			var rest []TokenType
			for _, tok := range tokens[1 : len(tokens)-1] {
				rest = append(rest, tok.Type)
			}
			if len(rest) != len(tt.rest) {
				t.Fatalf("expected trailing tokens %v, got %v", tt.rest, rest)
			}
			for i := range rest {
				if rest[i] != tt.rest[i] {
					t.Fatalf("expected trailing tokens %v, got %v", tt.rest, rest)
				}
			}
		})
	}
}

func TestLexerStringLiterals(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		lexeme string
		value  string
		line   int
	}{
		{"plain", `"hello"`, `"hello"`, "hello", 1},
		{"empty", `""`, `""`, "", 1},
		{"escapes", `"tab\tquote\" backslash\\ nl\n"`, `"tab\tquote\" backslash\\ nl\n"`, "tab\tquote\" backslash\\ nl\n", 1},
		{"multiline", "\"line1\nline2\"", "\"line1\nline2\"", "line1\nline2", 2},
		{"invalid utf-8 kept", "\"a\xffb\"", "\"a\xffb\"", "a\xffb", 1},
		{"multi-byte runes", `"héllo \é"`, `"héllo \é"`, "héllo é", 1},
		{"escaped newline", "\"a\\\nb\"", "\"a\\\nb\"", "a\nb", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := lexAllTokens(t, tt.src)
			if len(tokens) != 2 {
				t.Fatalf("expected string and EOF, got %v", tokens)
			}
			tok := tokens[0]
			if tok.Type != TokenString {
				t.Fatalf("expected string type, got %v", tok.Type)
			}
			if tok.Lexeme != tt.lexeme {
				t.Errorf("expected lexeme %q, got %q", tt.lexeme, tok.Lexeme)
			}
			value, ok := tok.Literal.(string)
			if !ok {
				t.Fatalf("expected string literal, got %T", tok.Literal)
			}
			if value != tt.value {
				t.Errorf("expected value %q, got %q", tt.value, value)
			}
			if tok.Line != tt.line {
				t.Errorf("expected line %d, got %d", tt.line, tok.Line)
			}
		})
	}
}

func TestLexerCommentsWhitespaceAndLines(t *testing.T) {
	src := "var a = 1; // trailing comment\r\n\t// whole line\n\nprint a / 2;"
	tokens := lexAllTokens(t, src)

	wantLines := map[string]int{
		"var":   1,
		"print": 4,
		"/":     4,
	}
	for _, tok := range tokens {
		if line, ok := wantLines[tok.Lexeme]; ok && tok.Line != line {
			t.Errorf("token %q: expected line %d, got %d", tok.Lexeme, line, tok.Line)
		}
	}
	eof := tokens[len(tokens)-1]
	if eof.Lexeme != "" || eof.Line != 4 {
		t.Fatalf("expected EOF with empty lexeme on line 4, got %+v", eof)
	}
	if len(tokens) != 11 {
		t.Fatalf("expected 11 tokens, got %d: %v", len(tokens), tokens)
	}
}

func TestLexerErrors(t *testing.T) {
	cases := []struct {
		name    string
		src     string
		want    []string
		types   []TokenType
		partial bool
	}{
		{
			name:  "unexpected character",
			src:   "1 @ 2",
			want:  []string{"[line 1] Error: Unexpected character."},
			types: []TokenType{TokenNumber, TokenNumber, TokenEOF},
		},
		{
			name:  "several unexpected characters",
			src:   "#\n$ a",
			want:  []string{"[line 1] Error: Unexpected character.", "[line 2] Error: Unexpected character."},
			types: []TokenType{TokenIdentifier, TokenEOF},
		},
		{
			name:    "unterminated",
			src:     "print \"abc",
			want:    []string{"[line 1] Error: Unterminated string."},
			types:   []TokenType{TokenPrint, TokenEOF},
			partial: true,
		},
		{
			name:    "unterminated multiline",
			src:     "\"abc\ndef",
			want:    []string{"[line 2] Error: Unterminated string."},
			types:   []TokenType{TokenEOF},
			partial: true,
		},
		{
			name:    "trailing backslash",
			src:     `"abc\`,
			want:    []string{"[line 1] Error: Unterminated string."},
			types:   []TokenType{TokenEOF},
			partial: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens, errs := lexWithErrors(tc.src)
			if len(errs) != len(tc.want) {
				t.Fatalf("expected %d errors, got %d: %v", len(tc.want), len(errs), errs)
			}
			for i, err := range errs {
				if err.Error() != tc.want[i] {
					t.Errorf("error %d: expected %q, got %q", i, tc.want[i], err.Error())
				}
				if err.Incomplete != tc.partial {
					t.Errorf("error %d: expected Incomplete=%v", i, tc.partial)
				}
			}
			if len(tokens) != len(tc.types) {
				t.Fatalf("expected %d tokens, got %v", len(tc.types), tokens)
			}
			for i, typ := range tc.types {
				if tokens[i].Type != typ {
					t.Errorf("token %d: expected %v, got %v", i, typ, tokens[i].Type)
				}
			}
		})
	}
}

func TestLexerLexemesReconstructSource(t *testing.T) {
	src := "var x = (1 + 2.5) * \"h i\";  // comment\n{ print x >= 3 != !nil; }\n"
	want := "varx=(1+2.5)*\"h i\";{printx>=3!=!nil;}"

	var b strings.Builder
	for _, tok := range lexAllTokens(t, src) {
		b.WriteString(tok.Lexeme)
	}
	if got := b.String(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTokenString(t *testing.T) {
	tokens := lexAllTokens(t, `print 1 "s";`)
	want := []string{"print print", "number 1 1", `string "s" s`, "; ;", "EOF"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, tok := range tokens {
		if got := tok.String(); got != want[i] {
			t.Errorf("token %d: expected %q, got %q", i, want[i], got)
		}
	}
}
