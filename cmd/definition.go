package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnoswap-labs/flexer/group"
	"github.com/gnoswap-labs/flexer/syntax"
)

// Definition is the on-disk lexer description consumed by flexgen.
type Definition struct {
	// Name is the exported base name of the generated artifact.
	Name string `yaml:"name"`
	// Package is the Go package the artifact is generated into.
	Package string            `yaml:"package"`
	Groups  []GroupDefinition `yaml:"groups"`
}

// GroupDefinition declares one lexer group. Parent names a previously
// declared group whose rules this group inherits.
type GroupDefinition struct {
	Name   string           `yaml:"name"`
	Parent string           `yaml:"parent,omitempty"`
	Rules  []RuleDefinition `yaml:"rules"`
}

// RuleDefinition pairs a pattern expression with the name of the callback
// the hosting application registers for it.
type RuleDefinition struct {
	Pattern string `yaml:"pattern"`
	Action  string `yaml:"action"`
}

func loadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("%s: definition needs a name", path)
	}
	if def.Package == "" {
		return nil, fmt.Errorf("%s: definition needs a package", path)
	}
	if len(def.Groups) == 0 {
		return nil, fmt.Errorf("%s: definition declares no groups", path)
	}
	return &def, nil
}

// buildRegistry materializes the definition into a rule registry. The
// returned action names are indexed by action reference, so the artifact's
// action table lines up with the callbacks the hosting application
// registers later.
func buildRegistry(def *Definition) (*group.Registry, []string, error) {
	reg := group.NewRegistry()
	ids := make(map[string]group.Identifier, len(def.Groups))
	var actionNames []string

	for _, g := range def.Groups {
		if _, ok := ids[g.Name]; ok {
			return nil, nil, fmt.Errorf("group %q declared twice", g.Name)
		}
		parent := group.NoParent
		if g.Parent != "" {
			p, ok := ids[g.Parent]
			if !ok {
				return nil, nil, fmt.Errorf("group %q inherits from undeclared group %q", g.Name, g.Parent)
			}
			parent = p
		}
		id := reg.DefineGroup(g.Name, parent)
		ids[g.Name] = id

		for _, r := range g.Rules {
			p, err := syntax.Parse(r.Pattern)
			if err != nil {
				return nil, nil, fmt.Errorf("group %q, pattern %q: %w", g.Name, r.Pattern, err)
			}
			// The callback body lives in the hosting application; the
			// registry only needs a slot per rule so references stay dense.
			if err := reg.AddRule(id, p, func(string) {}); err != nil {
				return nil, nil, fmt.Errorf("group %q, pattern %q: %w", g.Name, r.Pattern, err)
			}
			actionNames = append(actionNames, r.Action)
		}
	}
	return reg, actionNames, nil
}
