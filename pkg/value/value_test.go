package value

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zphixon/black-dwarf/internal/pos"
	"github.com/zphixon/black-dwarf/pkg/token"
)

func TestTableInsertionOrderPreserved(t *testing.T) {
	root := NewTable(pos.Start)
	root.Set("c", NewInteger(1, pos.Start))
	root.Set("a", NewInteger(2, pos.Start))
	root.Set("b", NewInteger(3, pos.Start))

	var keys []string
	root.IterEntries(func(key string, val *Value) {
		keys = append(keys, key)
	})
	require.Equal(t, []string{"c", "a", "b"}, keys)
}

func TestSetOverwritesInPlace(t *testing.T) {
	root := NewTable(pos.Start)
	root.Set("a", NewInteger(1, pos.Start))
	root.Set("b", NewInteger(2, pos.Start))
	root.Set("a", NewInteger(99, pos.Start))

	require.Len(t, root.Entries, 2)
	require.Equal(t, int64(99), root.Get("a").Int)
	require.Equal(t, "a", root.Entries[0].Key)
}

func TestArrayOfTablesLastElementDescent(t *testing.T) {
	arr := NewArray(pos.Start)
	t1 := NewTable(pos.Start)
	t1.Set("name", NewString("a", token.DoubleQuote, pos.Start))
	arr.Append(t1)

	t2 := NewTable(pos.Start)
	t2.Set("name", NewString("b", token.DoubleQuote, pos.Start))
	arr.Append(t2)

	require.Same(t, t2, arr.Last())
	require.Equal(t, 2, len(arr.Elements))
}

func TestAccessors(t *testing.T) {
	root := NewTable(pos.Start)
	root.Set("name", NewString("hi", token.DoubleQuote, pos.Start))

	require.True(t, root.IsTable())
	require.False(t, root.IsArray())
	require.True(t, root.ContainsKey("name"))
	require.False(t, root.ContainsKey("missing"))

	s, ok := root.Get("name").AsStr()
	require.True(t, ok)
	require.Equal(t, "hi", s)

	require.Nil(t, root.Get("missing"))
}

func TestDebugRenderingIsDeterministic(t *testing.T) {
	root := NewTable(pos.Start)
	root.Set("a", NewInteger(1, pos.Start))
	root.Set("b", NewFloat(1.5, pos.Start))

	first := root.String()
	second := root.String()
	require.Equal(t, first, second)
	require.Contains(t, first, `"a": Integer(1)`)
	require.Contains(t, first, `"b": Float(1.5)`)
}

func TestDatetimeStringVariants(t *testing.T) {
	dt := Datetime{
		HasDate:   true,
		Date:      token.DateValue{Year: 1979, Month: 5, Day: 27},
		HasTime:   true,
		Time:      token.TimeValue{Hour: 7, Minute: 32, Second: 0},
		HasOffset: true,
		Offset:    token.Offset{UTC: true},
	}
	require.Equal(t, "1979-05-27T07:32:00Z", dt.String())
}
