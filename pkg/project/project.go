package project

import (
	"github.com/zphixon/black-dwarf/internal/pos"
	"github.com/zphixon/black-dwarf/pkg/value"
)

// recognizedTopLevelKeys are the only keys the schema understands; any
// other top-level key is reported as unused, not an error. This is
// intentional forward-compatibility: a newer document may carry keys
// this build doesn't know about yet.
var recognizedTopLevelKeys = map[string]bool{
	"file-groups": true,
	"targets":     true,
}

// FileGroup is a named collection of files and/or nested group
// references.
type FileGroup struct {
	Name   string
	Groups []string
	Files  []string
	Pos    pos.Pos
}

// Target mirrors FileGroup's shape. Needs names other targets that must
// be built first, enabling dependency-ordered build scheduling.
type Target struct {
	Name   string
	Groups []string
	Files  []string
	Needs  []string
	Pos    pos.Pos
}

// Project is the name-keyed, insertion-ordered projection of a parsed
// document's file-groups and targets tables.
type Project struct {
	FileGroups     []*FileGroup
	Targets        []*Target
	fileGroupIndex map[string]*FileGroup
	targetIndex    map[string]*Target

	// Unused holds top-level keys present in the document but not part
	// of the recognized schema (warnings, never errors).
	Unused []string
}

// BlackDwarf is the root document type: a thin wrapper naming the
// project schema, matching the project-file convention (C.toml/BD.toml).
type BlackDwarf struct {
	Project *Project
}

// FromValue projects root (the result of parser.Parse) onto a Project.
// root must be a Table; callers pass the value returned by a successful
// parse.
func FromValue(root *value.Value) (*BlackDwarf, error) {
	proj := &Project{
		fileGroupIndex: map[string]*FileGroup{},
		targetIndex:    map[string]*Target{},
	}

	root.IterEntries(func(key string, val *value.Value) {
		if !recognizedTopLevelKeys[key] {
			proj.Unused = append(proj.Unused, key)
		}
	})

	if fg := root.Get("file-groups"); fg != nil {
		if !fg.IsTable() {
			return nil, &Error{Reason: IncorrectType, Name: "file-groups", Pos: fg.Pos}
		}
		var err error
		fg.IterEntries(func(name string, entry *value.Value) {
			if err != nil {
				return
			}
			var g *FileGroup
			g, err = decodeFileGroup(name, entry)
			if err != nil {
				return
			}
			proj.FileGroups = append(proj.FileGroups, g)
			proj.fileGroupIndex[name] = g
		})
		if err != nil {
			return nil, err
		}
	}

	if targets := root.Get("targets"); targets != nil {
		if !targets.IsTable() {
			return nil, &Error{Reason: IncorrectType, Name: "targets", Pos: targets.Pos}
		}
		var err error
		targets.IterEntries(func(name string, entry *value.Value) {
			if err != nil {
				return
			}
			var t *Target
			t, err = decodeTarget(name, entry)
			if err != nil {
				return
			}
			proj.Targets = append(proj.Targets, t)
			proj.targetIndex[name] = t
		})
		if err != nil {
			return nil, err
		}
	}

	for _, g := range proj.FileGroups {
		if err := proj.checkGroupRefs(g.Groups, g.Pos); err != nil {
			return nil, err
		}
	}
	for _, t := range proj.Targets {
		if err := proj.checkGroupRefs(t.Groups, t.Pos); err != nil {
			return nil, err
		}
	}

	return &BlackDwarf{Project: proj}, nil
}

func (p *Project) checkGroupRefs(groups []string, at pos.Pos) error {
	for _, name := range groups {
		if _, ok := p.fileGroupIndex[name]; !ok {
			return &Error{Reason: UnknownFileGroup, Name: name, Pos: at}
		}
	}
	return nil
}

// decodeFileGroup reads a file-groups entry: a flat list of strings (all
// Files, no Groups), or a table with optional groups/files lists.
func decodeFileGroup(name string, entry *value.Value) (*FileGroup, error) {
	if entry.IsArray() {
		files, err := decodeStringList(entry)
		if err != nil {
			return nil, err
		}
		return &FileGroup{Name: name, Files: files, Pos: entry.Pos}, nil
	}
	if !entry.IsTable() {
		return nil, &Error{Reason: IncorrectType, Name: name, Pos: entry.Pos}
	}

	g := &FileGroup{Name: name, Pos: entry.Pos}
	if groups := entry.Get("groups"); groups != nil {
		list, err := decodeStringList(groups)
		if err != nil {
			return nil, err
		}
		g.Groups = list
	}
	if files := entry.Get("files"); files != nil {
		list, err := decodeStringList(files)
		if err != nil {
			return nil, err
		}
		g.Files = list
	}
	return g, nil
}

// decodeTarget mirrors decodeFileGroup, additionally accepting a needs
// list (the supplemented dependency field).
func decodeTarget(name string, entry *value.Value) (*Target, error) {
	if entry.IsArray() {
		files, err := decodeStringList(entry)
		if err != nil {
			return nil, err
		}
		return &Target{Name: name, Files: files, Pos: entry.Pos}, nil
	}
	if !entry.IsTable() {
		return nil, &Error{Reason: IncorrectType, Name: name, Pos: entry.Pos}
	}

	t := &Target{Name: name, Pos: entry.Pos}
	if groups := entry.Get("groups"); groups != nil {
		list, err := decodeStringList(groups)
		if err != nil {
			return nil, err
		}
		t.Groups = list
	}
	if files := entry.Get("files"); files != nil {
		list, err := decodeStringList(files)
		if err != nil {
			return nil, err
		}
		t.Files = list
	}
	if needs := entry.Get("needs"); needs != nil {
		list, err := decodeStringList(needs)
		if err != nil {
			return nil, err
		}
		t.Needs = list
	}
	return t, nil
}

// decodeStringList accepts a single String leaf (treated as a one-element
// list) or an Array of String leaves — the common "one value or a list of
// them" shape for fields like groups/files/needs.
func decodeStringList(v *value.Value) ([]string, error) {
	if s, ok := v.AsStr(); ok {
		return []string{s}, nil
	}
	list, ok := v.AsList()
	if !ok {
		return nil, &Error{Reason: IncorrectType, Name: v.TypeName(), Pos: v.Pos}
	}

	out := make([]string, 0, len(list))
	for _, elem := range list {
		s, ok := elem.AsStr()
		if !ok {
			return nil, &Error{Reason: IncorrectType, Name: elem.TypeName(), Pos: elem.Pos}
		}
		out = append(out, s)
	}
	return out, nil
}

// Target looks up a target by name.
func (p *Project) Target(name string) (*Target, bool) {
	t, ok := p.targetIndex[name]
	return t, ok
}

// FileGroup looks up a file group by name.
func (p *Project) FileGroup(name string) (*FileGroup, bool) {
	g, ok := p.fileGroupIndex[name]
	return g, ok
}
