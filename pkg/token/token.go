package token

import (
	"fmt"

	"github.com/zphixon/black-dwarf/internal/pos"
	"github.com/zphixon/black-dwarf/pkg/scanerr"
)

// Kind identifies the category of a Token.
type Kind int

const (
	Integer Kind = iota
	Float
	Boolean
	String
	Date
	Time
	DateTime
	Identifier

	LeftBracket
	RightBracket
	LeftBrace
	RightBrace
	Equals
	Dot
	Comma
	Plus
	Minus

	// Error wraps a scanerr.Kind encountered while scanning. It is
	// still a Token so the parser's uniform read-loop can surface it
	// with position information intact.
	Error

	// EOF is terminal; the scanner returns it on every further read.
	EOF
)

var kindNames = [...]string{
	"Integer", "Float", "Boolean", "String", "Date", "Time", "DateTime",
	"Identifier", "LeftBracket", "RightBracket", "LeftBrace", "RightBrace",
	"Equals", "Dot", "Comma", "Plus", "Minus", "Error", "EOF",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// MayBeKey reports whether a token of this kind may appear as a bare-key
// or quoted-string key fragment. Everything except the reserved structural
// kinds and EOF qualifies.
func (k Kind) MayBeKey() bool {
	switch k {
	case LeftBracket, RightBracket, LeftBrace, RightBrace, Equals, Dot, Comma, EOF:
		return false
	default:
		return true
	}
}

// QuoteKind identifies how a String token's lexeme was quoted.
type QuoteKind int

const (
	SingleQuote QuoteKind = iota
	DoubleQuote
	TripleSingleQuote
	TripleDoubleQuote
)

// DateValue is a calendar date, already range-checked by the scanner.
type DateValue struct {
	Year  int
	Month int
	Day   int
}

func (d DateValue) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// TimeValue is a time of day with nanosecond precision, already
// range-checked by the scanner.
type TimeValue struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

func (t TimeValue) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.Nanosecond != 0 {
		s += fmt.Sprintf(".%09d", t.Nanosecond)
	}
	return s
}

// Offset is a time-zone designation: either UTC ("Z") or a signed minute
// count in [-1440, 1440].
type Offset struct {
	UTC     bool
	Minutes int
}

func (o Offset) String() string {
	if o.UTC {
		return "Z"
	}
	sign := "+"
	m := o.Minutes
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%02d:%02d", sign, m/60, m%60)
}

// Token is a classified, position-annotated span of the source document.
// The Lexeme field always borrows from the input; no allocation occurs
// for identifiers, numbers, or raw string lexemes.
type Token struct {
	Lexeme string
	Kind   Kind
	Pos    pos.Pos

	Int     int64
	Float64 float64
	Bool    bool
	Quote   QuoteKind

	DateVal DateValue
	TimeVal TimeValue
	HasDate bool
	HasTime bool

	Offset    Offset
	HasOffset bool

	ScanErr scanerr.Kind
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Pos)
}
