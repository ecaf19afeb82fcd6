package parser

import (
	"fmt"

	"github.com/zphixon/black-dwarf/internal/pos"
	"github.com/zphixon/black-dwarf/pkg/scanerr"
)

// Reason identifies the category of a parser-level Error. Schema-only
// error kinds live in package project.
type Reason int

const (
	// ParseError is a structural parse failure: unexpected token,
	// recursion limit, missing separator.
	ParseError Reason = iota

	// IncorrectType marks a key path that traversed a non-table,
	// non-array node.
	IncorrectType

	// Scan wraps a lexical failure surfaced while reading tokens.
	Scan
)

var reasonNames = [...]string{"ParseError", "IncorrectType", "Scan"}

func (r Reason) String() string {
	if int(r) < 0 || int(r) >= len(reasonNames) {
		return "Unknown"
	}
	return reasonNames[r]
}

// Error is the parser's error type: a Reason, a human-readable message,
// and the position of the offending token.
type Error struct {
	Reason  Reason
	Message string
	Pos     pos.Pos
	ScanErr scanerr.Kind // only meaningful when Reason == Scan
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Position satisfies the position-carrying error convention shared with
// project errors.
func (e *Error) Position() pos.Pos { return e.Pos }

func newParseError(p pos.Pos, format string, args ...interface{}) *Error {
	return &Error{Reason: ParseError, Message: fmt.Sprintf(format, args...), Pos: p}
}

func newTypeError(p pos.Pos, got, expected string) *Error {
	return &Error{
		Reason:  IncorrectType,
		Message: fmt.Sprintf("expected %s, got %s", expected, got),
		Pos:     p,
	}
}

func newScanError(p pos.Pos, kind scanerr.Kind) *Error {
	return &Error{Reason: Scan, Message: kind.Message(), Pos: p, ScanErr: kind}
}
