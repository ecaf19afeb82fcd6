// Package value implements the position-annotated Value tree produced by
// the parser: tables, arrays, and scalar leaves.
package value

import (
	"fmt"
	"strings"

	"github.com/zphixon/black-dwarf/internal/pos"
	"github.com/zphixon/black-dwarf/pkg/token"
)

// Kind identifies which variant a Value holds, mirroring the
// enum-with-String() shape used for token.Kind and scanerr.Kind.
type Kind int

const (
	TableKind Kind = iota
	ArrayKind
	StringKind
	IntegerKind
	FloatKind
	BooleanKind
	DateTimeKind
)

var kindNames = [...]string{
	"Table", "Array", "String", "Integer", "Float", "Boolean", "DateTime",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Entry is one key/value pair of a Table, in insertion order.
type Entry struct {
	Key   string
	Value *Value
}

// Datetime carries any combination of date, time, and offset that the
// scanner/parser may emit: exactly one of date+time+offset, date+time,
// date-only, or time(+offset).
type Datetime struct {
	HasDate bool
	Date    token.DateValue

	HasTime bool
	Time    token.TimeValue

	HasOffset bool
	Offset    token.Offset
}

func (d Datetime) String() string {
	var b strings.Builder
	if d.HasDate {
		b.WriteString(d.Date.String())
	}
	if d.HasDate && d.HasTime {
		b.WriteByte('T')
	}
	if d.HasTime {
		b.WriteString(d.Time.String())
	}
	if d.HasOffset {
		b.WriteString(d.Offset.String())
	}
	return b.String()
}

// Value is a tagged-union node of the parsed document tree. Every Value
// carries the Pos of the token that introduced it.
type Value struct {
	Kind Kind
	Pos  pos.Pos

	// TableKind
	Entries []Entry

	// ArrayKind
	Elements []*Value

	// StringKind
	Str   string
	Quote token.QuoteKind

	// IntegerKind
	Int int64

	// FloatKind
	Float float64

	// BooleanKind
	Bool bool

	// DateTimeKind
	DT Datetime
}

// NewTable returns an empty Table Value positioned at p.
func NewTable(p pos.Pos) *Value {
	return &Value{Kind: TableKind, Pos: p}
}

// NewArray returns an empty Array Value positioned at p.
func NewArray(p pos.Pos) *Value {
	return &Value{Kind: ArrayKind, Pos: p}
}

// NewString returns a String Value with its quotes already stripped.
func NewString(s string, q token.QuoteKind, p pos.Pos) *Value {
	return &Value{Kind: StringKind, Str: s, Quote: q, Pos: p}
}

// NewInteger returns an Integer Value.
func NewInteger(i int64, p pos.Pos) *Value {
	return &Value{Kind: IntegerKind, Int: i, Pos: p}
}

// NewFloat returns a Float Value.
func NewFloat(f float64, p pos.Pos) *Value {
	return &Value{Kind: FloatKind, Float: f, Pos: p}
}

// NewBoolean returns a Boolean Value.
func NewBoolean(b bool, p pos.Pos) *Value {
	return &Value{Kind: BooleanKind, Bool: b, Pos: p}
}

// NewDateTime returns a DateTime Value.
func NewDateTime(dt Datetime, p pos.Pos) *Value {
	return &Value{Kind: DateTimeKind, DT: dt, Pos: p}
}

// TypeName returns the Value's kind as a lowercase name, matching the
// "got"/"expected" fields of schema and parser errors.
func (v *Value) TypeName() string {
	return strings.ToLower(v.Kind.String())
}

// Position returns the Pos of the token that introduced this Value.
func (v *Value) Position() pos.Pos { return v.Pos }

// IsTable reports whether v is a Table.
func (v *Value) IsTable() bool { return v.Kind == TableKind }

// IsArray reports whether v is an Array.
func (v *Value) IsArray() bool { return v.Kind == ArrayKind }

// ContainsKey reports whether a Table contains key. Always false for
// non-tables.
func (v *Value) ContainsKey(key string) bool {
	if v.Kind != TableKind {
		return false
	}
	for _, e := range v.Entries {
		if e.Key == key {
			return true
		}
	}
	return false
}

// Get returns the Value bound to key in a Table, or nil if absent or v is
// not a Table.
func (v *Value) Get(key string) *Value {
	if v.Kind != TableKind {
		return nil
	}
	for _, e := range v.Entries {
		if e.Key == key {
			return e.Value
		}
	}
	return nil
}

// Set inserts or overwrites key in a Table. Callers (the parser) are
// responsible for enforcing the no-duplicate-leaf-overwrite invariant
// before calling Set for a new key.
func (v *Value) Set(key string, val *Value) {
	for i, e := range v.Entries {
		if e.Key == key {
			v.Entries[i].Value = val
			return
		}
	}
	v.Entries = append(v.Entries, Entry{Key: key, Value: val})
}

// Append adds an element to an Array.
func (v *Value) Append(elem *Value) {
	v.Elements = append(v.Elements, elem)
}

// Last returns the last element of an Array, or nil if empty or v is not
// an Array.
func (v *Value) Last() *Value {
	if v.Kind != ArrayKind || len(v.Elements) == 0 {
		return nil
	}
	return v.Elements[len(v.Elements)-1]
}

// AsStr returns the string payload and true if v is a String.
func (v *Value) AsStr() (string, bool) {
	if v.Kind != StringKind {
		return "", false
	}
	return v.Str, true
}

// AsList returns the element slice and true if v is an Array.
func (v *Value) AsList() ([]*Value, bool) {
	if v.Kind != ArrayKind {
		return nil, false
	}
	return v.Elements, true
}

// IterEntries calls fn for every key/value pair of a Table, in insertion
// order. A no-op on non-tables.
func (v *Value) IterEntries(fn func(key string, val *Value)) {
	if v.Kind != TableKind {
		return
	}
	for _, e := range v.Entries {
		fn(e.Key, e.Value)
	}
}

// String renders a stable, deterministic pretty-printed form of the tree.
// The fixture-driven test harness asserts string equality against this
// rendering, so its shape must never depend on map iteration order or
// pointer identity — only on Entries/Elements order.
func (v *Value) String() string {
	var b strings.Builder
	v.render(&b, 0)
	return b.String()
}

func (v *Value) render(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v.Kind {
	case TableKind:
		if len(v.Entries) == 0 {
			b.WriteString("Table{}")
			return
		}
		b.WriteString("Table{\n")
		for _, e := range v.Entries {
			fmt.Fprintf(b, "%s  %q: ", indent, e.Key)
			e.Value.render(b, depth+1)
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "%s}", indent)
	case ArrayKind:
		if len(v.Elements) == 0 {
			b.WriteString("Array[]")
			return
		}
		b.WriteString("Array[\n")
		for _, e := range v.Elements {
			fmt.Fprintf(b, "%s  ", indent)
			e.render(b, depth+1)
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "%s]", indent)
	case StringKind:
		fmt.Fprintf(b, "String(%q)", v.Str)
	case IntegerKind:
		fmt.Fprintf(b, "Integer(%d)", v.Int)
	case FloatKind:
		fmt.Fprintf(b, "Float(%v)", v.Float)
	case BooleanKind:
		fmt.Fprintf(b, "Boolean(%t)", v.Bool)
	case DateTimeKind:
		fmt.Fprintf(b, "DateTime(%s)", v.DT.String())
	}
}
