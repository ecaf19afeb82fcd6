package project

// TargetsInOrder returns every target reachable from names, each listed
// strictly after everything it Needs and only once, even if named (or
// depended on) more than once.
func (p *Project) TargetsInOrder(names ...string) ([]*Target, error) {
	built := map[string]bool{}
	visiting := map[string]bool{}
	var order []*Target

	var visit func(name string) error
	visit = func(name string) error {
		t, ok := p.targetIndex[name]
		if !ok {
			return &Error{Reason: NoSuchTarget, Name: name}
		}
		if visiting[name] {
			return &Error{Reason: CircularNeeds, Name: name, Pos: t.Pos}
		}

		visiting[name] = true
		for _, need := range t.Needs {
			if built[need] {
				continue
			}
			if err := visit(need); err != nil {
				return err
			}
		}
		visiting[name] = false

		if !built[name] {
			built[name] = true
			order = append(order, t)
		}
		return nil
	}

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// AllTargetsInOrder resolves TargetsInOrder over every declared target,
// in declaration order — the default build-everything schedule.
func (p *Project) AllTargetsInOrder() ([]*Target, error) {
	names := make([]string, len(p.Targets))
	for i, t := range p.Targets {
		names[i] = t.Name
	}
	return p.TargetsInOrder(names...)
}
