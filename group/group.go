// Package group implements the hierarchical registry of lexer states.
//
// A group is a named mode of the lexer holding an ordered list of rules.
// The order is semantically significant: it is the tie-break when two rules
// match prefixes of equal maximal length. Groups may name a parent group,
// forming a forest; a child sees its own rules first and then each
// ancestor's rules, nearest ancestor first.
//
// The registry is the sole owner of pattern trees and action references.
// Actions are stored in a registry-level table and referenced by index;
// generated artifacts dispatch through the reference, never by embedding
// caller code.
package group

import (
	"fmt"

	"github.com/gnoswap-labs/flexer/automata"
	"github.com/gnoswap-labs/flexer/internal/arena"
	"github.com/gnoswap-labs/flexer/internal/index"
)

type groupDomain struct{}

// Identifier is a stable handle for a defined group. The zero value means
// "no group" and is what parent-less groups carry as their parent.
type Identifier = index.ID[groupDomain]

// NoParent is the absent parent for root groups.
var NoParent Identifier

type actionDomain struct{}

// ActionRef is an opaque reference into the registry's action table.
type ActionRef = index.ID[actionDomain]

// NewActionRef wraps a raw action table index. It exists for generated
// artifacts, which must reconstruct references they serialized as plain
// numbers; hand-written definitions receive their references from AddRule.
func NewActionRef(i int) ActionRef {
	return index.New[actionDomain](i)
}

// Action is a rule callback. It receives the matched substring; everything
// else it needs (output stream, group stack) it captures at definition
// time.
type Action func(text string)

// Rule pairs a pattern with the action fired when the pattern wins a match.
type Rule struct {
	Pattern automata.Pattern
	Action  ActionRef
}

// Group is a single lexer state.
type Group struct {
	ID     Identifier
	Name   string
	Parent Identifier
	Rules  []Rule
}

// Registry holds every group of a lexer definition.
type Registry struct {
	groups  arena.Arena[Group]
	actions []Action
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefineGroup registers a new group and returns its identifier. Pass
// NoParent for a root group; otherwise the parent must already be defined.
// Name uniqueness is checked at generation time, not here.
func (r *Registry) DefineGroup(name string, parent Identifier) Identifier {
	if !parent.IsNil() {
		r.Group(parent) // unknown parents are a programming error
	}
	slot := r.groups.Insert(Group{Name: name, Parent: parent})
	id := index.New[groupDomain](slot)
	g, _ := r.groups.Get(slot)
	g.ID = id
	return id
}

// Group returns the group for id. Identifiers are only ever obtained from
// this registry, so an unknown id is a programming error and panics.
func (r *Registry) Group(id Identifier) *Group {
	g, ok := r.groups.Get(id.Int())
	if !ok {
		panic(fmt.Sprintf("group: unknown identifier %s", id))
	}
	return g
}

// AddRule appends a rule to the group, in declaration order. The pattern is
// validated here so that malformed definitions surface where they are
// written; the action is interned into the registry's table.
func (r *Registry) AddRule(id Identifier, p automata.Pattern, action Action) error {
	g := r.Group(id)
	if err := automata.Validate(p); err != nil {
		return fmt.Errorf("group %q rule %d: %w", g.Name, len(g.Rules), err)
	}
	if action == nil {
		return fmt.Errorf("group %q rule %d: nil action", g.Name, len(g.Rules))
	}
	ref := NewActionRef(len(r.actions))
	r.actions = append(r.actions, action)
	g.Rules = append(g.Rules, Rule{Pattern: p, Action: ref})
	return nil
}

// Action resolves a reference to its callback.
func (r *Registry) Action(ref ActionRef) Action {
	i := ref.Int()
	if i >= len(r.actions) {
		panic(fmt.Sprintf("group: unknown action reference %s", ref))
	}
	return r.actions[i]
}

// Actions reports the number of interned actions.
func (r *Registry) Actions() int {
	return len(r.actions)
}

// EffectiveRules returns the rules the group matches with: its own rules
// followed by each ancestor's, nearest ancestor first. Every ancestor is
// collected exactly once, so shared ancestry never duplicates rules.
func (r *Registry) EffectiveRules(id Identifier) []Rule {
	var rules []Rule
	visited := map[Identifier]bool{}
	for cur := id; !cur.IsNil() && !visited[cur]; {
		visited[cur] = true
		g := r.Group(cur)
		rules = append(rules, g.Rules...)
		cur = g.Parent
	}
	return rules
}

// All returns the identifiers of every group in definition order.
func (r *Registry) All() []Identifier {
	ids := make([]Identifier, 0, r.groups.Len())
	r.groups.Each(func(_ int, g *Group) {
		ids = append(ids, g.ID)
	})
	return ids
}

// Len reports the number of defined groups.
func (r *Registry) Len() int {
	return r.groups.Len()
}
