package project

import (
	"errors"
	"os"
	"path/filepath"
)

// ProjectFilename and LegacyProjectFilename are the two names a project
// file is recognized under: the current name and an older name still
// supported for backward compatibility.
const (
	ProjectFilename       = "C.toml"
	LegacyProjectFilename = "BD.toml"
)

// ErrNoProject is returned by FindProjectFile when no project file is
// found between startDir and the filesystem root.
var ErrNoProject = errors.New("no project file found")

// FindProjectFile walks upward from startDir looking for ProjectFilename
// or LegacyProjectFilename, returning the first match.
func FindProjectFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range [...]string{ProjectFilename, LegacyProjectFilename} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", ErrNoProject
}
