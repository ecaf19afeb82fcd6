// Package parser implements the recursive-descent driver that turns a
// token.Scanner's output into a value.Value tree.
package parser

import (
	"github.com/zphixon/black-dwarf/internal/pos"
	blog "github.com/zphixon/black-dwarf/pkg/log"
	"github.com/zphixon/black-dwarf/pkg/token"
	"github.com/zphixon/black-dwarf/pkg/value"
)

// maxDepth bounds recursive entry into arrays and inline tables;
// exceeding it is a structural parse error, not a panic.
const maxDepth = 64

// Parser drives a token.Scanner and builds the root value.Value table.
type Parser struct {
	scan   *token.Scanner
	logger blog.Logger
}

// New returns a Parser over document.
func New(document string) *Parser {
	return &Parser{
		scan:   token.New(document),
		logger: blog.NewLogger(blog.Std("parser")),
	}
}

// ScanAll eagerly tokenizes document, exposing the scanner's library surface
// from this package for callers that only need tokens.
func ScanAll(document string) ([]token.Token, error) {
	return token.New(document).ScanAll()
}

// Parse builds the Value tree for document. It never panics: every
// failure path returns a non-nil *Error.
func Parse(document string) (*value.Value, error) {
	p := New(document)
	return p.parseDocument()
}

func (p *Parser) parseDocument() (*value.Value, error) {
	p.logger.Msg("parsing document")
	root := value.NewTable(pos.Start)
	current := root

	for {
		t := p.scan.Peek(0)
		if t.Kind == token.Error {
			return nil, newScanError(t.Pos, t.ScanErr)
		}
		if t.Kind == token.EOF {
			p.logger.Msgr("parse complete", "entries", len(root.Entries))
			return root, nil
		}

		if t.Kind == token.LeftBracket {
			t2 := p.scan.Peek(1)
			if t2.Kind == token.Error {
				return nil, newScanError(t2.Pos, t2.ScanErr)
			}

			var next *value.Value
			var err error
			if t2.Kind == token.LeftBracket {
				next, err = p.parseArrayTableHeader(root)
			} else {
				next, err = p.parseTableHeader(root)
			}
			if err != nil {
				return nil, err
			}
			current = next
			continue
		}

		if t.Kind.MayBeKey() {
			if err := p.parseKeyValue(current); err != nil {
				return nil, err
			}
			continue
		}

		return nil, newParseError(t.Pos, "unexpected token %s at top level", t.Kind)
	}
}

// keyFrag is one fragment of a dotted key path with the position it was
// read from, used for error reporting and for positioning newly created
// tables.
type keyFrag struct {
	name string
	pos  pos.Pos
}

// parseKeyPath reads `key ( '.' key )*`.
func (p *Parser) parseKeyPath() ([]keyFrag, error) {
	var frags []keyFrag
	for {
		t := p.scan.Next()
		if t.Kind == token.Error {
			return nil, newScanError(t.Pos, t.ScanErr)
		}
		if !t.Kind.MayBeKey() {
			return nil, newParseError(t.Pos, "expected a key, got %s", t.Kind)
		}

		name := t.Lexeme
		if t.Kind == token.String {
			name = stripQuotes(t.Lexeme, t.Quote)
		}
		frags = append(frags, keyFrag{name: name, pos: t.Pos})

		if p.scan.Peek(0).Kind != token.Dot {
			break
		}
		p.scan.Next() // consume '.'
	}
	return frags, nil
}

// parseKeyValue reads `keypath = value` and binds it under current.
func (p *Parser) parseKeyValue(current *value.Value) error {
	path, err := p.parseKeyPath()
	if err != nil {
		return err
	}

	eq := p.scan.Next()
	if eq.Kind == token.Error {
		return newScanError(eq.Pos, eq.ScanErr)
	}
	if eq.Kind != token.Equals {
		return newParseError(eq.Pos, "expected '=' after key, got %s", eq.Kind)
	}

	val, err := p.parseValue(0)
	if err != nil {
		return err
	}

	return bindPath(current, path, val)
}

// bindPath walks (creating intermediate Tables as needed) to the parent
// of path's last fragment, then binds the leaf. It enforces the
// no-duplicate-key invariant: a leaf key already present in its table is
// a ParseError, never a silent overwrite.
func bindPath(root *value.Value, path []keyFrag, leaf *value.Value) error {
	node := root
	for _, frag := range path[:len(path)-1] {
		tbl := normalizeTable(node)
		if tbl == nil {
			return newTypeError(node.Pos, node.TypeName(), "table")
		}
		node = tbl

		child := node.Get(frag.name)
		if child == nil {
			child = value.NewTable(frag.pos)
			node.Set(frag.name, child)
		}
		node = child
	}

	tbl := normalizeTable(node)
	if tbl == nil {
		return newTypeError(node.Pos, node.TypeName(), "table")
	}
	node = tbl

	last := path[len(path)-1]
	if node.ContainsKey(last.name) {
		return newParseError(last.pos, "duplicate key %q", last.name)
	}
	node.Set(last.name, leaf)
	return nil
}

// normalizeTable descends through an Array into its last Table element —
// a header path that reaches an array of tables operates on the most
// recently appended element — returning nil if node is neither a Table
// nor a Table-terminated Array.
func normalizeTable(node *value.Value) *value.Value {
	if node.Kind == value.ArrayKind {
		node = node.Last()
		if node == nil || node.Kind != value.TableKind {
			return nil
		}
	}
	if node.Kind != value.TableKind {
		return nil
	}
	return node
}

// stripQuotes removes the 1 or 3 surrounding quote characters from a
// String token's lexeme. Escape processing is intentionally lenient: the
// raw interior is kept as-is.
func stripQuotes(lexeme string, q token.QuoteKind) string {
	switch q {
	case token.SingleQuote, token.DoubleQuote:
		if len(lexeme) >= 2 {
			return lexeme[1 : len(lexeme)-1]
		}
	case token.TripleSingleQuote, token.TripleDoubleQuote:
		if len(lexeme) >= 6 {
			return lexeme[3 : len(lexeme)-3]
		}
	}
	return lexeme
}
