// Package pos implements the source-position value used throughout the
// scanner, parser, and schema layers.
package pos

import "fmt"

// Pos locates a lexeme in a source document: a 1-based line, a 0-based
// column, and a 0-based byte offset into the document.
type Pos struct {
	Line       int
	Column     int
	ByteOffset int
}

// Start is the position of the first grapheme of a document.
var Start = Pos{Line: 1, Column: 0, ByteOffset: 0}

// String renders "line:column", the prefix convention used by error
// messages.
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// WithFile renders "file:line:column".
func (p Pos) WithFile(file string) string {
	return fmt.Sprintf("%s:%d:%d", file, p.Line, p.Column)
}
