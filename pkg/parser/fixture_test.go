package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zphixon/black-dwarf/internal/fixture"
)

func TestFixtures(t *testing.T) {
	entries, err := os.ReadDir("fixtures")
	require.NoError(t, err)

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		name := e.Name()
		t.Run(name, func(t *testing.T) {
			raw, err := os.ReadFile(filepath.Join("fixtures", name))
			require.NoError(t, err)

			f := fixture.Parse(string(raw), "#-- ")
			root, err := Parse(f.Source)
			require.NoError(t, err)

			fixture.AssertRendering(t, f.Expected, root.String())
		})
	}
}
