package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zphixon/black-dwarf/internal/fixture"
	"github.com/zphixon/black-dwarf/pkg/parser"
)

// TestSchemaFixtures drives the "#==" convention: each fixture names the
// Reason and offending Name an expected *Error should carry, one
// space-separated pair per expected line.
func TestSchemaFixtures(t *testing.T) {
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

			f := fixture.Parse(string(raw), "#== ")
			root, err := parser.Parse(f.Source)
			require.NoError(t, err)

			_, projErr := FromValue(root)
			require.Error(t, projErr)
			perr, ok := projErr.(*Error)
			require.True(t, ok)

			want := strings.Fields(f.Expected)
			require.Len(t, want, 2)
			require.Equal(t, want[0], perr.Reason.String())
			require.Equal(t, want[1], perr.Name)
		})
	}
}
