// Package lexer turns Lox source text into an ordered token stream. It
// runs in a single pass over the source bytes and always terminates with
// an EOF token.
package lexer

import (
	"github.com/loxrun/tlox/internal/trace"
	"github.com/loxrun/tlox/token"
)

// Reporter receives lexical error diagnostics. The driver implements this.
type Reporter interface {
	Error(line int, message string)
}

// Scanner tokenizes one source string. start marks the beginning of the
// lexeme currently being scanned; current is the read cursor; line is the
// 1-based line of current.
type Scanner struct {
	source   string
	start    int
	current  int
	line     int
	reporter Reporter
	tokens   []token.Token
}

// New creates a Scanner over source, reporting lexical errors to r.
func New(source string, r Reporter) *Scanner {
	return &Scanner{source: source, line: 1, reporter: r}
}

// Scan tokenizes the entire source in one pass and returns every token,
// always ending with an EOF token whose lexeme is empty.
func Scan(source string, r Reporter) []token.Token {
	s := New(source, r)
	return s.ScanTokens()
}

// ScanTokens is the scanner's main entry point: it repeatedly scans one
// token at a time until the source is exhausted.
func (s *Scanner) ScanTokens() []token.Token {
	for !s.atEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.New(token.EOF, "", "", s.line))
	return s.tokens
}

func (s *Scanner) atEnd() bool { return s.current >= len(s.source) }

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.emit(token.LeftParen)
	case ')':
		s.emit(token.RightParen)
	case '{':
		s.emit(token.LeftBrace)
	case '}':
		s.emit(token.RightBrace)
	case ',':
		s.emit(token.Comma)
	case '.':
		s.emit(token.Dot)
	case '-':
		s.emit(token.Minus)
	case '+':
		s.emit(token.Plus)
	case ';':
		s.emit(token.Semicolon)
	case '*':
		s.emit(token.Star)
	case '!':
		s.emitTwo('=', token.BangEqual, token.Bang)
	case '=':
		s.emitTwo('=', token.EqualEqual, token.Equal)
	case '<':
		s.emitTwo('=', token.LessEqual, token.Less)
	case '>':
		s.emitTwo('=', token.GreaterEqual, token.Greater)
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.atEnd() {
				s.advance()
			}
		} else {
			s.emit(token.Slash)
		}
	case ' ', '\r', '\t':
		// ignore whitespace
	case '\n':
		s.line++
	case '"':
		s.string()
	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			s.reporter.Error(s.line, "Unexpected character.")
		}
	}
}

// emitTwo emits a two-character token if the next byte matches second,
// otherwise the single-character token.
func (s *Scanner) emitTwo(second byte, twoChar, oneChar token.Type) {
	if s.match(second) {
		s.emit(twoChar)
	} else {
		s.emit(oneChar)
	}
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

// match consumes the current character if it equals expected, reporting
// whether it did.
func (s *Scanner) match(expected byte) bool {
	if s.atEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) emit(typ token.Type) {
	lexeme := s.source[s.start:s.current]
	s.emitLiteral(typ, lexeme, "")
}

func (s *Scanner) emitLiteral(typ token.Type, lexeme, literal string) {
	tok := token.New(typ, lexeme, literal, s.line)
	trace.Scan(s.line, lexeme, typ)
	s.tokens = append(s.tokens, tok)
}

// string consumes a `"`-delimited string literal. The opening quote has
// already been consumed by scanToken's advance call.
func (s *Scanner) string() {
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.atEnd() {
		s.reporter.Error(s.line, "Unterminated string.")
		return
	}
	s.advance() // consume the closing quote
	contents := s.source[s.start+1 : s.current-1]
	s.emitLiteral(token.String, s.source[s.start:s.current], contents)
}

// number consumes a greedy digit run with an optional fractional part. A
// trailing '.' not followed by a digit is left unconsumed.
func (s *Scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // consume the '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	lexeme := s.source[s.start:s.current]
	s.emitLiteral(token.Number, lexeme, lexeme)
}

// identifier consumes a greedy [A-Za-z_][A-Za-z0-9_]* run and classifies
// it as a keyword or a plain identifier.
func (s *Scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	lexeme := s.source[s.start:s.current]
	s.emit(token.Lookup(lexeme))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }
