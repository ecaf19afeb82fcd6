package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCompilers(t *testing.T) {
	doc := "[gcc]\n" +
		"path = \"/usr/bin/gcc\"\n" +
		"include_path_format = \"-I%default\"\n" +
		"link_path_format = \"-L%default\"\n"

	compilers, err := loadCompilers(doc)
	require.NoError(t, err)
	require.Len(t, compilers, 1)
	require.Equal(t, "gcc", compilers[0].Name)
	require.Equal(t, "/usr/bin/gcc", compilers[0].Path)
}

func TestSelectCompilerMissing(t *testing.T) {
	compilers := []Compiler{{Name: "gcc"}}
	_, err := selectCompiler(compilers, "clang")
	require.Error(t, err)
}

func TestSelectCompilerFound(t *testing.T) {
	compilers := []Compiler{{Name: "gcc"}, {Name: "clang"}}
	c, err := selectCompiler(compilers, "clang")
	require.NoError(t, err)
	require.Equal(t, "clang", c.Name)
}

func TestExpandTemplate(t *testing.T) {
	require.Equal(t, "-Ifoo", ExpandTemplate("-I%default", "foo"))
}

func TestIncludePathSubstitutesOrConcatenates(t *testing.T) {
	withTemplate := Compiler{IncludePathFormat: "-I%default"}
	require.Equal(t, "-Ifoo", withTemplate.IncludePath("foo"))

	withoutTemplate := Compiler{IncludePathFormat: "-I"}
	require.Equal(t, "-Ifoo", withoutTemplate.IncludePath("foo"))
}
