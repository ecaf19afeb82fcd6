package token

import (
	"golang.org/x/text/unicode/norm"

	"github.com/rivo/uniseg"

	"github.com/zphixon/black-dwarf/internal/pos"
)

// cluster is one grapheme cluster together with its byte offset in the
// (NFC-normalized) source document.
type cluster struct {
	text       string
	byteOffset int
}

// cursor is a forward, one-ahead-peekable iterator over the Unicode
// extended grapheme clusters of a source document. It tracks line, column,
// and byte position, and the byte span of the lexeme currently being
// assembled.
//
// Grapheme (rather than byte or rune) granularity is used so bare-key and
// identifier spans respect cluster boundaries; numeric and structural
// tokens are themselves ASCII, so this costs nothing there. Segmentation
// uses github.com/rivo/uniseg; the source is run through
// golang.org/x/text/unicode/norm (NFC) once up front so combining-mark
// sequences normalize to their precomposed form before clustering.
type cursor struct {
	source   string
	clusters []cluster

	idx  int // index of the next grapheme to be returned by next()/peek()
	line int
	col  int

	lexStartIdx int
}

func newCursor(source string) *cursor {
	if !norm.NFC.IsNormalString(source) {
		source = norm.NFC.String(source)
	}

	c := &cursor{source: source, line: 1, col: 0}
	gr := uniseg.NewGraphemes(source)
	offset := 0
	for gr.Next() {
		text := gr.Str()
		c.clusters = append(c.clusters, cluster{text: text, byteOffset: offset})
		offset += len(text)
	}
	return c
}

// next advances the cursor and returns the consumed grapheme cluster, or
// "" at EOF.
func (c *cursor) next() string {
	if c.idx >= len(c.clusters) {
		return ""
	}
	cl := c.clusters[c.idx]
	c.idx++
	if cl.text == "\n" || cl.text == "\r\n" {
		c.line++
		c.col = 0
	} else {
		c.col++
	}
	return cl.text
}

// peek returns the next grapheme cluster without consuming it, or "" at
// EOF.
func (c *cursor) peek() string {
	if c.idx >= len(c.clusters) {
		return ""
	}
	return c.clusters[c.idx].text
}

// pos returns the position of the next unconsumed grapheme.
func (c *cursor) pos() pos.Pos {
	offset := len(c.source)
	if c.idx < len(c.clusters) {
		offset = c.clusters[c.idx].byteOffset
	}
	return pos.Pos{Line: c.line, Column: c.col, ByteOffset: offset}
}

// resetLexemeStart marks the current cursor position as the start of the
// lexeme currently being assembled. Callers invoke this between tokens.
func (c *cursor) resetLexemeStart() {
	c.lexStartIdx = c.idx
}

// currentLexeme returns the borrowed substring from the last lexeme-start
// marker to the cursor's current position.
func (c *cursor) currentLexeme() string {
	start := 0
	if c.lexStartIdx < len(c.clusters) {
		start = c.clusters[c.lexStartIdx].byteOffset
	} else {
		start = len(c.source)
	}

	end := len(c.source)
	if c.idx < len(c.clusters) {
		end = c.clusters[c.idx].byteOffset
	}

	return c.source[start:end]
}

func (c *cursor) atEOF() bool {
	return c.idx >= len(c.clusters)
}
