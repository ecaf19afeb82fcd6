package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvOverrideFallback(t *testing.T) {
	os.Unsetenv("CR_COMPILER_NAME")
	got := EnvOverride([][]string{{"CR", "compiler", "name"}}, "gcc")
	require.Equal(t, "gcc", got)
}

func TestEnvOverrideSet(t *testing.T) {
	t.Setenv("CR_COMPILER_NAME", "clang")
	got := EnvOverride([][]string{{"CR", "compiler", "name"}}, "gcc")
	require.Equal(t, "clang", got)
}

func TestEnvOverrideSubstitutesDefault(t *testing.T) {
	t.Setenv("CR_COMPILER_PATH", "/opt/%default/bin")
	got := EnvOverride([][]string{{"CR", "compiler", "path"}}, "gcc")
	require.Equal(t, "/opt/gcc/bin", got)
}

func TestEnvOverrideChecksCandidatesInOrder(t *testing.T) {
	os.Unsetenv("CR_FIRST")
	t.Setenv("CR_SECOND", "found")
	got := EnvOverride([][]string{{"CR", "first"}, {"CR", "second"}}, "fallback")
	require.Equal(t, "found", got)
}

func TestFindProjectFileWalksUpward(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "C.toml"), []byte(""), 0644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	found, err := FindProjectFile(nested)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "C.toml"), found)
}

func TestFindProjectFileLegacyName(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "BD.toml"), []byte(""), 0644))

	found, err := FindProjectFile(root)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "BD.toml"), found)
}

func TestFindProjectFileNotFound(t *testing.T) {
	root := t.TempDir()
	_, err := FindProjectFile(root)
	require.ErrorIs(t, err, ErrNoProject)
}
