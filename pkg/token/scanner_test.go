package token

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zphixon/black-dwarf/pkg/scanerr"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := New(src).ScanAll()
	require.NoError(t, err)
	return toks
}

func TestIntegerUnderscoresIgnored(t *testing.T) {
	toks := scanAll(t, "1_000_000")
	require.Len(t, toks, 2) // Integer, EOF
	require.Equal(t, Integer, toks[0].Kind)
	require.Equal(t, int64(1000000), toks[0].Int)
}

func TestHexOctBinIntegers(t *testing.T) {
	toks := scanAll(t, "0xFF")
	require.Equal(t, int64(255), toks[0].Int)

	toks = scanAll(t, "0o17")
	require.Equal(t, int64(15), toks[0].Int)

	toks = scanAll(t, "0b1010")
	require.Equal(t, int64(10), toks[0].Int)
}

func TestFloat(t *testing.T) {
	toks := scanAll(t, "3.14")
	require.Equal(t, Float, toks[0].Kind)
	require.InDelta(t, 3.14, toks[0].Float64, 0.0001)
}

func TestUnterminatedString(t *testing.T) {
	_, err := New(`"abc`).ScanAll()
	require.Error(t, err)
	var fail *ScanFailure
	require.ErrorAs(t, err, &fail)
	require.Equal(t, scanerr.UnterminatedString, fail.Kind)
}

func TestIncorrectQuoteCount(t *testing.T) {
	_, err := New(`""abc`).ScanAll()
	require.Error(t, err)
	var fail *ScanFailure
	require.ErrorAs(t, err, &fail)
	require.Equal(t, scanerr.IncorrectQuoteCount, fail.Kind)
}

func TestTripleQuotedStringSpansNewlines(t *testing.T) {
	toks := scanAll(t, "\"\"\"hello\nworld\"\"\"")
	require.Equal(t, String, toks[0].Kind)
	require.Equal(t, TripleDoubleQuote, toks[0].Quote)
}

func TestSingleQuoteLiteralNoEscapes(t *testing.T) {
	toks := scanAll(t, `'a\b'`)
	require.Equal(t, String, toks[0].Kind)
	require.Equal(t, `'a\b'`, toks[0].Lexeme)
}

func TestDoubleQuoteEscapedQuoteDoesNotClose(t *testing.T) {
	toks := scanAll(t, `"a\"b"`)
	require.Equal(t, String, toks[0].Kind)
}

func TestDate(t *testing.T) {
	toks := scanAll(t, "2024-02-29")
	require.Equal(t, Date, toks[0].Kind)
	require.Equal(t, 2024, toks[0].DateVal.Year)
	require.Equal(t, 2, toks[0].DateVal.Month)
	require.Equal(t, 29, toks[0].DateVal.Day)
}

func TestInvalidDateFeb30(t *testing.T) {
	_, err := New("2023-02-30").ScanAll()
	require.Error(t, err)
	var fail *ScanFailure
	require.ErrorAs(t, err, &fail)
	require.Equal(t, scanerr.InvalidDate, fail.Kind)
}

func TestInvalidDateLeapYear(t *testing.T) {
	_, err := New("2023-02-29").ScanAll()
	require.Error(t, err)
	var fail *ScanFailure
	require.ErrorAs(t, err, &fail)
	require.Equal(t, scanerr.InvalidDate, fail.Kind)
}

func TestDateTimeWithOffset(t *testing.T) {
	toks := scanAll(t, "2024-01-01T12:30:00+02:00")
	require.Equal(t, DateTime, toks[0].Kind)
	require.True(t, toks[0].HasOffset)
	require.Equal(t, 120, toks[0].Offset.Minutes)
}

func TestDateTimeWithZAndFraction(t *testing.T) {
	toks := scanAll(t, "2024-01-01T12:30:00.125Z")
	require.Equal(t, DateTime, toks[0].Kind)
	require.True(t, toks[0].Offset.UTC)
	require.Equal(t, 125000000, toks[0].TimeVal.Nanosecond)
}

func TestBareTime(t *testing.T) {
	toks := scanAll(t, "13:45:00")
	require.Equal(t, Time, toks[0].Kind)
	require.Equal(t, 13, toks[0].TimeVal.Hour)
}

func TestInvalidTimeOutOfRange(t *testing.T) {
	_, err := New("25:00:00").ScanAll()
	require.Error(t, err)
	var fail *ScanFailure
	require.ErrorAs(t, err, &fail)
	require.Equal(t, scanerr.InvalidTime, fail.Kind)
}

func TestKeywordTokens(t *testing.T) {
	toks := scanAll(t, "true false inf nan")
	require.Equal(t, Boolean, toks[0].Kind)
	require.True(t, toks[0].Bool)
	require.Equal(t, Boolean, toks[1].Kind)
	require.False(t, toks[1].Bool)
	require.Equal(t, Float, toks[2].Kind)
	require.True(t, math.IsInf(toks[2].Float64, 1))
	require.Equal(t, Float, toks[3].Kind)
	require.True(t, math.IsNaN(toks[3].Float64))
}

func TestIdentifierBareKey(t *testing.T) {
	toks := scanAll(t, "my-key_1 = 1")
	require.Equal(t, Identifier, toks[0].Kind)
	require.Equal(t, "my-key_1", toks[0].Lexeme)
	require.Equal(t, Equals, toks[1].Kind)
}

func TestCommentsAndWhitespaceSkipped(t *testing.T) {
	toks := scanAll(t, "  # a comment\nkey = 1 # trailing\n")
	require.Equal(t, Identifier, toks[0].Kind)
	require.Equal(t, "key", toks[0].Lexeme)
}

func TestPeekDoesNotConsume(t *testing.T) {
	s := New("a b c")
	first := s.Peek(0)
	again := s.Peek(0)
	require.Equal(t, first, again)
	require.Equal(t, first, s.Next())
}

func TestPeekArbitraryDepth(t *testing.T) {
	s := New("[ [ ] ]")
	require.Equal(t, LeftBracket, s.Peek(0).Kind)
	require.Equal(t, LeftBracket, s.Peek(1).Kind)
	require.Equal(t, RightBracket, s.Peek(2).Kind)
	require.Equal(t, RightBracket, s.Peek(3).Kind)
	require.Equal(t, EOF, s.Peek(4).Kind)
}

func TestEOFIsSticky(t *testing.T) {
	s := New("")
	require.Equal(t, EOF, s.Next().Kind)
	require.Equal(t, EOF, s.Next().Kind)
}

func TestGraphemeClusterIdentifier(t *testing.T) {
	// A multi-codepoint grapheme cluster (e with combining acute accent)
	// should scan as a single identifier lexeme, not split mid-cluster.
	toks := scanAll(t, "café = 1")
	require.Equal(t, Identifier, toks[0].Kind)
	require.Equal(t, "café", toks[0].Lexeme)
}
