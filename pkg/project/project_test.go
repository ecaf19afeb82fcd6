package project

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zphixon/black-dwarf/pkg/parser"
)

func TestUnknownFileGroup(t *testing.T) {
	root, err := parser.Parse("[file-groups]\nb = { groups = [\"nope\"], files = [] }\n")
	require.NoError(t, err)

	_, err = FromValue(root)
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, UnknownFileGroup, perr.Reason)
	require.Equal(t, "nope", perr.Name)
}

func TestFileGroupsAsFlatStringList(t *testing.T) {
	root, err := parser.Parse("[file-groups]\nsrc = [\"a.c\", \"b.c\"]\n")
	require.NoError(t, err)

	bd, err := FromValue(root)
	require.NoError(t, err)

	g, ok := bd.Project.FileGroup("src")
	require.True(t, ok)
	require.Equal(t, []string{"a.c", "b.c"}, g.Files)
	require.Empty(t, g.Groups)
}

func TestFileGroupsAndTargetsValid(t *testing.T) {
	src := "[file-groups]\n" +
		"core = [\"core.c\"]\n" +
		"[targets]\n" +
		"app = { groups = [\"core\"], files = [\"main.c\"] }\n"

	root, err := parser.Parse(src)
	require.NoError(t, err)

	bd, err := FromValue(root)
	require.NoError(t, err)

	target, ok := bd.Project.Target("app")
	require.True(t, ok)
	require.Equal(t, []string{"core"}, target.Groups)
	require.Equal(t, []string{"main.c"}, target.Files)
}

func TestUnusedTopLevelKeyIsWarningNotError(t *testing.T) {
	root, err := parser.Parse("[file-groups]\n[targets]\n[unrelated]\nx = 1\n")
	require.NoError(t, err)

	bd, err := FromValue(root)
	require.NoError(t, err)
	require.Contains(t, bd.Project.Unused, "unrelated")
}

func TestIncorrectTypeForFileGroupsKey(t *testing.T) {
	root, err := parser.Parse("file-groups = 1\n")
	require.NoError(t, err)

	_, err = FromValue(root)
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, IncorrectType, perr.Reason)
}

func TestTargetsInOrderRespectsNeeds(t *testing.T) {
	src := "[targets]\n" +
		"base = { files = [\"base.c\"] }\n" +
		"mid = { files = [\"mid.c\"], needs = \"base\" }\n" +
		"top = { files = [\"top.c\"], needs = [\"mid\", \"base\"] }\n"

	root, err := parser.Parse(src)
	require.NoError(t, err)

	bd, err := FromValue(root)
	require.NoError(t, err)

	order, err := bd.Project.TargetsInOrder("top")
	require.NoError(t, err)

	var names []string
	for _, t := range order {
		names = append(names, t.Name)
	}
	require.Equal(t, []string{"base", "mid", "top"}, names)
}

func TestTargetsInOrderDetectsCircularNeeds(t *testing.T) {
	src := "[targets]\n" +
		"a = { files = [], needs = \"b\" }\n" +
		"b = { files = [], needs = \"a\" }\n"

	root, err := parser.Parse(src)
	require.NoError(t, err)

	bd, err := FromValue(root)
	require.NoError(t, err)

	_, err = bd.Project.TargetsInOrder("a")
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, CircularNeeds, perr.Reason)
}

func TestTargetsInOrderUnknownTarget(t *testing.T) {
	root, err := parser.Parse("[targets]\na = { files = [] }\n")
	require.NoError(t, err)

	bd, err := FromValue(root)
	require.NoError(t, err)

	_, err = bd.Project.TargetsInOrder("missing")
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	require.Equal(t, NoSuchTarget, perr.Reason)
}
