package parser

import (
	"github.com/zphixon/black-dwarf/pkg/token"
	"github.com/zphixon/black-dwarf/pkg/value"
)

// parseTableHeader reads `[` already-peeked key-path `]` and returns the
// table that subsequent key-value assignments should attach to.
func (p *Parser) parseTableHeader(root *value.Value) (*value.Value, error) {
	p.scan.Next() // '['

	path, err := p.parseKeyPath()
	if err != nil {
		return nil, err
	}

	rb := p.scan.Next()
	if rb.Kind == token.Error {
		return nil, newScanError(rb.Pos, rb.ScanErr)
	}
	if rb.Kind != token.RightBracket {
		return nil, newParseError(rb.Pos, "expected ']' to close table header, got %s", rb.Kind)
	}

	node := root
	for _, frag := range path {
		tbl := normalizeTable(node)
		if tbl == nil {
			return nil, newTypeError(node.Pos, node.TypeName(), "table")
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
		return nil, newTypeError(node.Pos, node.TypeName(), "table")
	}
	return tbl, nil
}

// parseArrayTableHeader reads `[[` already-peeked key-path `]]`. The
// final fragment names (creating if absent) an Array of Tables; a fresh
// empty Table is appended and returned as the new current table.
func (p *Parser) parseArrayTableHeader(root *value.Value) (*value.Value, error) {
	p.scan.Next() // first '['
	p.scan.Next() // second '['

	path, err := p.parseKeyPath()
	if err != nil {
		return nil, err
	}

	for i := 0; i < 2; i++ {
		rb := p.scan.Next()
		if rb.Kind == token.Error {
			return nil, newScanError(rb.Pos, rb.ScanErr)
		}
		if rb.Kind != token.RightBracket {
			return nil, newParseError(rb.Pos, "expected ']]' to close array-of-tables header, got %s", rb.Kind)
		}
	}

	if len(path) == 0 {
		return nil, newParseError(root.Pos, "empty array-of-tables header")
	}

	node := root
	for _, frag := range path[:len(path)-1] {
		tbl := normalizeTable(node)
		if tbl == nil {
			return nil, newTypeError(node.Pos, node.TypeName(), "table")
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
		return nil, newTypeError(node.Pos, node.TypeName(), "table")
	}
	node = tbl

	last := path[len(path)-1]
	arr := node.Get(last.name)
	if arr == nil {
		arr = value.NewArray(last.pos)
		node.Set(last.name, arr)
	} else if arr.Kind != value.ArrayKind {
		return nil, newTypeError(arr.Pos, arr.TypeName(), "array")
	}

	elem := value.NewTable(last.pos)
	arr.Append(elem)
	return elem, nil
}
