// Command blackdwarf is the CLI wrapper around the parser and schema
// projection: it reads a project file, builds its Value tree, projects it
// onto the file-groups/targets schema, and prints the build order.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/zphixon/black-dwarf/internal/pos"
	blog "github.com/zphixon/black-dwarf/pkg/log"
	"github.com/zphixon/black-dwarf/pkg/parser"
	"github.com/zphixon/black-dwarf/pkg/project"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	logger := blog.NewLogger(blog.Std("blackdwarf"))

	fs := flag.NewFlagSet("blackdwarf", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: blackdwarf [project-file]")
	}
	if err := fs.Parse(args); err != nil {
		return 1
	}

	projectFile := fs.Arg(0)
	if projectFile == "" {
		cwd, err := os.Getwd()
		if err != nil {
			logger.Err(err)
			return 1
		}
		found, err := project.FindProjectFile(cwd)
		if err != nil {
			logger.Err(err)
			return 1
		}
		projectFile = found
	}

	data, err := os.ReadFile(projectFile)
	if err != nil {
		logger.Err(err)
		return 1
	}

	root, err := parser.Parse(string(data))
	if err != nil {
		logger.Msgr("parse failed", "file", projectFile, "error", err.Error())
		reportError(projectFile, err)
		return 1
	}

	bd, err := project.FromValue(root)
	if err != nil {
		logger.Msgr("schema projection failed", "file", projectFile, "error", err.Error())
		reportError(projectFile, err)
		return 1
	}

	for _, key := range bd.Project.Unused {
		logger.Msgr("unused key", "file", projectFile, "key", key)
	}

	logger.Msgr("loaded project",
		"file-groups", len(bd.Project.FileGroups),
		"targets", len(bd.Project.Targets),
	)

	order, err := bd.Project.AllTargetsInOrder()
	if err != nil {
		logger.Err(err)
		reportError(projectFile, err)
		return 1
	}
	for _, t := range order {
		fmt.Printf("%s: %d files\n", t.Name, len(t.Files))
	}

	return 0
}

// positioner is satisfied by parser.Error and project.Error; reportError
// uses it to print a file:line:column prefix instead of the bare
// line:column a Pos renders on its own.
type positioner interface {
	Position() pos.Pos
}

func reportError(file string, err error) {
	if p, ok := err.(positioner); ok {
		msg := strings.TrimPrefix(err.Error(), p.Position().String()+": ")
		fmt.Fprintf(os.Stderr, "%s: %s\n", p.Position().WithFile(file), msg)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", file, err.Error())
}
