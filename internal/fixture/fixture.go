// Package fixture implements the "#--"/"#==" fixture convention: a test
// input file embeds its own expected output as specially-prefixed
// comment lines, so the source and the oracle travel together.
package fixture

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
)

// TestingT is the subset of *testing.T this package needs, so callers in
// _test.go files can pass t directly without an import cycle back into
// testing from a non-_test.go file.
type TestingT interface {
	require.TestingT
	Helper()
}

// Parsed is one fixture file split into its source document and its
// expected rendering.
type Parsed struct {
	Source   string
	Expected string
}

// Parse splits raw fixture text on the given prefix ("#-- " for parser
// fixtures, "#== " for schema fixtures): every line starting with prefix
// contributes (with the prefix stripped) to Expected, in order; every
// other line contributes to Source.
func Parse(raw, prefix string) Parsed {
	var source, expected []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, prefix) {
			expected = append(expected, strings.TrimPrefix(line, prefix))
			continue
		}
		source = append(source, line)
	}
	return Parsed{
		Source:   strings.Join(source, "\n"),
		Expected: strings.Join(expected, "\n"),
	}
}

// AssertRendering asserts that got equals a fixture's expected rendering,
// printing a unified diff (rather than testify's default side-by-side
// dump) on mismatch.
func AssertRendering(t TestingT, want, got string) {
	t.Helper()
	if want == got {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	require.NoError(t, err)
	require.Fail(t, "fixture rendering mismatch", "\n%s", diff)
}
