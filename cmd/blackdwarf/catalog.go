package main

import (
	"fmt"
	"strings"

	"github.com/zphixon/black-dwarf/pkg/parser"
	"github.com/zphixon/black-dwarf/pkg/project"
	"github.com/zphixon/black-dwarf/pkg/value"
)

// compilersFilename names the compiler catalog in selectCompiler's error
// message; no code in this command opens a file by this name.
const compilersFilename = "compilers.toml"

// Compiler describes one entry of a compiler catalog.
type Compiler struct {
	Name              string
	Path              string
	IncludePathFormat string
	LinkPathFormat    string
}

// loadCompilers parses a compilers.toml document (same Value tree the
// project file uses) into a name-keyed list of Compilers. Each top-level
// table entry is one compiler; `path` is optional and stays empty when
// absent.
func loadCompilers(document string) ([]Compiler, error) {
	root, err := parser.Parse(document)
	if err != nil {
		return nil, err
	}

	var compilers []Compiler
	var decodeErr error
	root.IterEntries(func(name string, entry *value.Value) {
		if decodeErr != nil {
			return
		}
		c, err := decodeCompiler(name, entry)
		if err != nil {
			decodeErr = err
			return
		}
		compilers = append(compilers, c)
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	return compilers, nil
}

func decodeCompiler(name string, entry *value.Value) (Compiler, error) {
	if !entry.IsTable() {
		return Compiler{}, &parser.Error{
			Reason:  parser.IncorrectType,
			Message: fmt.Sprintf("compiler %q must be a table", name),
			Pos:     entry.Position(),
		}
	}

	c := Compiler{Name: name}
	if path := entry.Get("path"); path != nil {
		if s, ok := path.AsStr(); ok {
			c.Path = s
		}
	}
	if f := entry.Get("include_path_format"); f != nil {
		if s, ok := f.AsStr(); ok {
			c.IncludePathFormat = s
		}
	}
	if f := entry.Get("link_path_format"); f != nil {
		if s, ok := f.AsStr(); ok {
			c.LinkPathFormat = s
		}
	}
	return c, nil
}

// selectCompiler returns the catalog entry named name, or an error
// naming the missing compiler.
func selectCompiler(compilers []Compiler, name string) (Compiler, error) {
	for _, c := range compilers {
		if c.Name == name {
			return c, nil
		}
	}
	return Compiler{}, fmt.Errorf("no such compiler %q in %s", name, compilersFilename)
}

// ExpandTemplate replaces every occurrence of project.ReplaceDefault
// ("%default") in template with def. It deliberately stops at string
// substitution and never spawns a subprocess.
func ExpandTemplate(template, def string) string {
	return strings.ReplaceAll(template, project.ReplaceDefault, def)
}

// IncludePath renders a compiler's include-path argument for dir,
// substituting %default with dir itself when the format uses it.
func (c Compiler) IncludePath(dir string) string {
	if strings.Contains(c.IncludePathFormat, project.ReplaceDefault) {
		return ExpandTemplate(c.IncludePathFormat, dir)
	}
	return fmt.Sprintf("%s%s", c.IncludePathFormat, dir)
}
