// Package generate turns a finished group registry into the dispatch
// program the runtime driver executes.
//
// The program is a structured intermediate representation: per group, a
// list of sub-states, each holding an ascending, alphabet-total list of
// symbol-range branches. A branch either continues to another sub-state,
// fires an accepting rule through its action reference, or rejects.
// Rejecting branches that are reachable from a group's initial sub-state
// are refused at generation time; the remainder surface at run time as
// structured end-of-group errors, never as aborts.
//
// EmitGo serializes the same representation as a compilable Go source
// artifact for ahead-of-time use, so the generator and the driver stay
// independently testable layers.
package generate

import (
	"fmt"
	"sort"

	"github.com/gnoswap-labs/flexer/automata"
	"github.com/gnoswap-labs/flexer/group"
)

// StepKind says what a branch does when its range matches.
type StepKind int

const (
	// StepContinue moves the scan to another sub-state.
	StepContinue StepKind = iota
	// StepAccept fires a rule: capture the matched span, invoke the
	// action by reference, advance the matched bookmark, exit the scan
	// successfully.
	StepAccept
	// StepReject has no viable transition. Hitting one at run time is an
	// end-of-group condition.
	StepReject
)

func (k StepKind) String() string {
	switch k {
	case StepContinue:
		return "Continue"
	case StepAccept:
		return "Accept"
	case StepReject:
		return "Reject"
	default:
		return "?"
	}
}

// Branch maps the inclusive symbol range [Lo, Hi] to one dispatch step.
type Branch struct {
	Lo, Hi automata.Symbol
	Kind   StepKind
	// Target is the next sub-state for StepContinue.
	Target int
	// Rule and Action identify the fired rule for StepAccept. Rule is
	// the index into the group's effective rule list.
	Rule   int
	Action group.ActionRef
}

// SubState is one dispatch node of a group's automaton. Sub-state 0 is the
// entry point of every scan.
type SubState struct {
	Branches []Branch
}

// Lookup returns the branch covering sym. Branch lists are total over the
// alphabet, end-of-input included, so a miss is an internal invariant
// violation.
func (s SubState) Lookup(sym automata.Symbol) Branch {
	i := sort.Search(len(s.Branches), func(k int) bool { return s.Branches[k].Hi >= sym })
	if i == len(s.Branches) || s.Branches[i].Lo > sym {
		panic(fmt.Sprintf("generate: no branch for symbol %s", sym))
	}
	return s.Branches[i]
}

// GroupProgram is the compiled dispatch for one lexer group.
type GroupProgram struct {
	// Index is the group's definition-order slot; it matches the
	// identifier handed out by the registry the program was built from.
	Index     int
	Name      string
	SubStates []SubState
}

// Program is the compiled dispatch for a whole lexer definition. It is
// immutable after Specialize and may be shared by concurrent runs.
type Program struct {
	Groups []GroupProgram
}

// Group returns the dispatch for id. Programs are built from the same
// registry that issued the identifier, so a miss is a programming error.
func (p *Program) Group(id group.Identifier) *GroupProgram {
	i := id.Int()
	if i >= len(p.Groups) {
		panic(fmt.Sprintf("generate: program has no group %s", id))
	}
	return &p.Groups[i]
}
