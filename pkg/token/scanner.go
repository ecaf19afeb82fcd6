// Package token implements the grapheme cursor and scanner: the lexical
// front end that turns a UTF-8 document into a stream of Tokens.
package token

import (
	"math"
	"strconv"
	"strings"

	"github.com/zphixon/black-dwarf/internal/pos"
	"github.com/zphixon/black-dwarf/pkg/scanerr"
)

// whitespace is the ASCII whitespace set the scanner skips between tokens:
// tab, LF, VT, FF, CR, space.
func isWhitespace(s string) bool {
	switch s {
	case "\t", "\n", "\v", "\f", "\r", " ", "\r\n":
		return true
	}
	return false
}

func isDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

// isIdentBoundary reports whether a grapheme terminates a bare
// identifier/key run.
func isIdentBoundary(s string) bool {
	if s == "" || isWhitespace(s) {
		return true
	}
	switch s {
	case "#", "[", "]", "{", "}", ",", ".", "=", "\"", "'":
		return true
	}
	return false
}

// Scanner consumes graphemes from a cursor and emits Tokens, with
// arbitrary-depth peek buffered in a FIFO.
type Scanner struct {
	cur  *cursor
	buf  []Token
	done bool // true once EOF has been pushed onto buf
}

// New returns a Scanner over document.
func New(document string) *Scanner {
	return &Scanner{cur: newCursor(document)}
}

// Next pops and returns the next token, scanning more input if the FIFO
// buffer is empty. EOF is sticky: once reached, every further call
// returns an EOF token.
func (s *Scanner) Next() Token {
	if len(s.buf) == 0 {
		s.buf = append(s.buf, s.scanOne())
	}
	t := s.buf[0]
	s.buf = s.buf[1:]
	return t
}

// Peek returns the token n positions ahead without consuming it; Peek(0)
// is equivalent to what the next Next() call would return.
func (s *Scanner) Peek(n int) Token {
	for len(s.buf) <= n {
		s.buf = append(s.buf, s.scanOne())
	}
	return s.buf[n]
}

// ScanAll eagerly tokenizes the entire document, stopping at the first
// Error token or after EOF. This backs the library-level scan() function.
func (s *Scanner) ScanAll() ([]Token, error) {
	var toks []Token
	for {
		t := s.Next()
		if t.Kind == Error {
			return toks, &ScanFailure{Kind: t.ScanErr, Pos: t.Pos}
		}
		toks = append(toks, t)
		if t.Kind == EOF {
			return toks, nil
		}
	}
}

// ScanFailure reports a lexical error encountered while scanning, wrapping
// a scanerr.Kind with the position of the offending lexeme.
type ScanFailure struct {
	Kind scanerr.Kind
	Pos  pos.Pos
}

func (e *ScanFailure) Error() string {
	return e.Pos.String() + ": " + e.Kind.Message()
}

func (s *Scanner) errorToken(start pos.Pos, kind scanerr.Kind) Token {
	return Token{Kind: Error, Pos: start, ScanErr: kind, Lexeme: s.cur.currentLexeme()}
}

// scanOne produces the single next token from the cursor. Once the cursor
// is exhausted it always returns an EOF token.
func (s *Scanner) scanOne() Token {
	s.skipWhitespaceAndComments()

	s.cur.resetLexemeStart()
	if s.cur.atEOF() {
		s.done = true
		return Token{Kind: EOF, Pos: s.cur.pos()}
	}

	start := s.cur.pos()
	g := s.cur.next()

	switch g {
	case "[":
		return Token{Kind: LeftBracket, Lexeme: g, Pos: start}
	case "]":
		return Token{Kind: RightBracket, Lexeme: g, Pos: start}
	case "{":
		return Token{Kind: LeftBrace, Lexeme: g, Pos: start}
	case "}":
		return Token{Kind: RightBrace, Lexeme: g, Pos: start}
	case ",":
		return Token{Kind: Comma, Lexeme: g, Pos: start}
	case ".":
		return Token{Kind: Dot, Lexeme: g, Pos: start}
	case "=":
		return Token{Kind: Equals, Lexeme: g, Pos: start}
	case "+":
		return Token{Kind: Plus, Lexeme: g, Pos: start}
	case "-":
		return Token{Kind: Minus, Lexeme: g, Pos: start}
	case "\"", "'":
		return s.scanString(start, g)
	}

	if isDigit(g) {
		return s.scanNumberOrDateTime(start)
	}

	return s.scanIdentifier(start)
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		for isWhitespace(s.cur.peek()) {
			s.cur.next()
		}
		if s.cur.peek() == "#" {
			for !s.cur.atEOF() && s.cur.peek() != "\n" {
				s.cur.next()
			}
			continue
		}
		break
	}
}

// scanString counts opening quotes (1 or 3), then consumes until the
// matching close, honoring backslash escapes inside double-quoted
// strings. The single quote character is already consumed by the caller;
// quote names which character opened the string.
func (s *Scanner) scanString(start pos.Pos, quote string) Token {
	triple := false

	if s.cur.peek() == quote {
		s.cur.next() // second quote
		if s.cur.peek() == quote {
			s.cur.next() // third quote
			triple = true
		} else {
			// Exactly two opening quotes ("" or '') with no third.
			return s.errorToken(start, scanerr.IncorrectQuoteCount)
		}
	}

	for {
		if s.cur.atEOF() {
			return s.errorToken(start, scanerr.UnterminatedString)
		}

		g := s.cur.peek()
		if g == quote {
			if !triple {
				s.cur.next()
				break
			}
			s.cur.next()
			if s.cur.peek() == quote {
				s.cur.next()
				if s.cur.peek() == quote {
					s.cur.next()
					break
				}
			}
			continue
		}

		if g == "\\" && quote == "\"" {
			s.cur.next()
			if s.cur.atEOF() {
				return s.errorToken(start, scanerr.UnterminatedString)
			}
			s.cur.next()
			continue
		}

		s.cur.next()
	}

	qk := SingleQuote
	switch {
	case triple && quote == "\"":
		qk = TripleDoubleQuote
	case triple && quote == "'":
		qk = TripleSingleQuote
	case quote == "\"":
		qk = DoubleQuote
	case quote == "'":
		qk = SingleQuote
	}

	return Token{Kind: String, Lexeme: s.cur.currentLexeme(), Pos: start, Quote: qk}
}

// scanIdentifier consumes a run of graphemes up to the next identifier
// boundary. The keywords true/false/inf/nan are recognized here and
// emitted as Boolean and Float tokens; everything else is an Identifier,
// which the parser may still interpret as a keyword for robustness.
func (s *Scanner) scanIdentifier(start pos.Pos) Token {
	for !isIdentBoundary(s.cur.peek()) {
		s.cur.next()
	}
	lex := s.cur.currentLexeme()

	switch lex {
	case "true":
		return Token{Kind: Boolean, Lexeme: lex, Pos: start, Bool: true}
	case "false":
		return Token{Kind: Boolean, Lexeme: lex, Pos: start, Bool: false}
	case "inf":
		return Token{Kind: Float, Lexeme: lex, Pos: start, Float64: math.Inf(1)}
	case "nan":
		return Token{Kind: Float, Lexeme: lex, Pos: start, Float64: math.NaN()}
	}

	return Token{Kind: Identifier, Lexeme: lex, Pos: start}
}

// numericRunGrapheme reports whether a grapheme may continue a
// numeric/date/time run: digits (including the hex digits a-f), the base
// markers x o b, T Z e E, sign characters, and the separators _ : - .
func numericRunGrapheme(g string) bool {
	if isDigit(g) {
		return true
	}
	switch g {
	case "a", "b", "c", "d", "e", "f", "A", "B", "C", "D", "E", "F",
		"x", "o", "X", "O", "T", "Z", "+", "-", "_", ":", ".":
		return true
	}
	return false
}

// scanNumberOrDateTime implements the unified numeric/date/time lexer:
// it accumulates one numeric-looking run and then classifies it as an
// integer, float, date, or datetime.
func (s *Scanner) scanNumberOrDateTime(start pos.Pos) Token {
	for numericRunGrapheme(s.cur.peek()) {
		s.cur.next()
	}
	run := s.cur.currentLexeme()

	if strings.HasPrefix(run, "0x") || strings.HasPrefix(run, "0X") {
		return s.classifyBase(start, run, 16, run[2:])
	}
	if strings.HasPrefix(run, "0o") || strings.HasPrefix(run, "0O") {
		return s.classifyBase(start, run, 8, run[2:])
	}
	if strings.HasPrefix(run, "0b") || strings.HasPrefix(run, "0B") {
		return s.classifyBase(start, run, 2, run[2:])
	}

	stripped := strings.ReplaceAll(run, "_", "")

	if i, err := strconv.ParseInt(stripped, 10, 64); err == nil {
		return Token{Kind: Integer, Lexeme: run, Pos: start, Int: i}
	}

	if f, err := strconv.ParseFloat(stripped, 64); err == nil {
		return Token{Kind: Float, Lexeme: run, Pos: start, Float64: f}
	}

	if tok, ok := s.classifyDateTime(start, run, stripped); ok {
		return tok
	}

	return s.errorToken(start, scanerr.InvalidNumber)
}

func (s *Scanner) classifyBase(start pos.Pos, run string, base int, digits string) Token {
	digits = strings.ReplaceAll(digits, "_", "")
	i, err := strconv.ParseInt(digits, base, 64)
	if err != nil {
		return s.errorToken(start, scanerr.InvalidNumber)
	}
	return Token{Kind: Integer, Lexeme: run, Pos: start, Int: i}
}
