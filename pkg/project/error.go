// Package project implements the schema projection from a generic
// value.Value table onto the file-groups/targets domain model.
package project

import (
	"fmt"

	"github.com/zphixon/black-dwarf/internal/pos"
)

// Reason identifies the category of a schema-level Error.
type Reason int

const (
	// MissingKey marks a required field absent from a table.
	MissingKey Reason = iota

	// IncorrectType marks a value with the wrong shape for its slot.
	IncorrectType

	// UnknownFileGroup marks a groups reference naming an undeclared
	// file-groups entry.
	UnknownFileGroup

	// NoSuchTarget marks a TargetsInOrder request or a needs reference
	// naming an undeclared target.
	NoSuchTarget

	// CircularNeeds marks a needs chain that revisits a target still
	// being resolved.
	CircularNeeds
)

var reasonNames = [...]string{"MissingKey", "IncorrectType", "UnknownFileGroup", "NoSuchTarget", "CircularNeeds"}

func (r Reason) String() string {
	if int(r) < 0 || int(r) >= len(reasonNames) {
		return "Unknown"
	}
	return reasonNames[r]
}

// Error is the schema layer's error type.
type Error struct {
	Reason Reason
	Name   string // the offending key, group, or target name; for a badly typed list, the offending value's type name
	Pos    pos.Pos
}

func (e *Error) Error() string {
	switch e.Reason {
	case MissingKey:
		return fmt.Sprintf("%s: missing required key %q", e.Pos, e.Name)
	case IncorrectType:
		return fmt.Sprintf("%s: incorrect type for %q", e.Pos, e.Name)
	case UnknownFileGroup:
		return fmt.Sprintf("%s: unknown file group %q", e.Pos, e.Name)
	case NoSuchTarget:
		return fmt.Sprintf("%s: no such target %q", e.Pos, e.Name)
	case CircularNeeds:
		return fmt.Sprintf("%s: circular needs chain involving %q", e.Pos, e.Name)
	default:
		return fmt.Sprintf("%s: schema error involving %q", e.Pos, e.Name)
	}
}

// Position satisfies the position-carrying error convention shared with
// parser errors.
func (e *Error) Position() pos.Pos { return e.Pos }
