package generate

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gnoswap-labs/flexer/automata"
	"github.com/gnoswap-labs/flexer/group"
	"github.com/gnoswap-labs/flexer/internal/interval"
)

// DefinitionError reports a fault in a lexer definition caught at
// generation time: a malformed pattern, duplicate group names, or a group
// whose initial state leaves part of the alphabet without a rule. Callers
// must handle it before the lexer is usable; nothing here surfaces as a
// run-time abort.
type DefinitionError struct {
	Group  string
	Reason string
}

func (e *DefinitionError) Error() string {
	if e.Group == "" {
		return "definition error: " + e.Reason
	}
	return fmt.Sprintf("definition error in group %q: %s", e.Group, e.Reason)
}

// Options configures specialization.
type Options struct {
	// Logger receives progress diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// Specialize compiles every group of the registry into a dispatch program.
// For each group it builds the NFA of the group's effective rules, runs
// subset construction, and lowers the DFA into sub-state branch tables
// with the accepting steps baked in.
func Specialize(reg *group.Registry, opts Options) (*Program, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil || reg.Len() == 0 {
		return nil, &DefinitionError{Reason: "no groups defined"}
	}

	seen := map[string]bool{}
	for _, id := range reg.All() {
		name := reg.Group(id).Name
		if seen[name] {
			return nil, &DefinitionError{Group: name, Reason: "duplicate group name"}
		}
		seen[name] = true
	}

	prog := &Program{Groups: make([]GroupProgram, reg.Len())}
	for _, id := range reg.All() {
		g := reg.Group(id)
		gp, err := specializeGroup(reg, id)
		if err != nil {
			return nil, err
		}
		logger.Debug("specialized group",
			zap.String("group", g.Name),
			zap.Int("substates", len(gp.SubStates)))
		prog.Groups[id.Int()] = gp
	}
	return prog, nil
}

func specializeGroup(reg *group.Registry, id group.Identifier) (GroupProgram, error) {
	g := reg.Group(id)
	rules := reg.EffectiveRules(id)
	if len(rules) == 0 {
		return GroupProgram{}, &DefinitionError{Group: g.Name, Reason: "no rules"}
	}

	nfa := automata.NewNFA()
	for i, rule := range rules {
		if err := nfa.AddRule(rule.Pattern, i); err != nil {
			return GroupProgram{}, &DefinitionError{
				Group:  g.Name,
				Reason: fmt.Sprintf("rule %d: %v", i, err),
			}
		}
	}
	dfa := automata.Determinize(nfa)

	gp := GroupProgram{Index: id.Int(), Name: g.Name}
	for _, st := range dfa.States {
		gp.SubStates = append(gp.SubStates, lowerState(st, rules))
	}
	if err := checkCoverage(gp); err != nil {
		return GroupProgram{}, err
	}
	return gp, nil
}

// lowerState turns one DFA state into a sub-state branch table. A range
// with a live transition continues; a dead range fires the state's accept
// when it has one and rejects otherwise. The accept carries the rule that
// was baked in during subset construction, so declaration-order priority
// is already settled.
func lowerState(st automata.DFAState, rules []group.Rule) SubState {
	var out SubState
	for _, b := range st.Branches {
		br := Branch{Lo: b.Lo, Hi: b.Hi}
		switch {
		case b.Target >= 0:
			br.Kind = StepContinue
			br.Target = b.Target
		case st.Rule >= 0:
			br.Kind = StepAccept
			br.Rule = st.Rule
			br.Action = rules[st.Rule].Action
		default:
			br.Kind = StepReject
		}
		if n := len(out.Branches); n > 0 && sameStep(out.Branches[n-1], br) {
			out.Branches[n-1].Hi = br.Hi
			continue
		}
		out.Branches = append(out.Branches, br)
	}
	return out
}

func sameStep(a, b Branch) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case StepContinue:
		return a.Target == b.Target
	case StepAccept:
		return a.Rule == b.Rule
	default:
		return true
	}
}

// checkCoverage rejects a group whose initial sub-state leaves any symbol
// range without a viable step. This is the condition that used to abort a
// run with "missing rules for state"; it is a definition defect, so it is
// reported here instead.
func checkCoverage(gp GroupProgram) error {
	covered := &interval.Set{}
	var gaps []string
	for _, b := range gp.SubStates[0].Branches {
		if b.Kind == StepReject {
			gaps = append(gaps, fmt.Sprintf("%s..%s", b.Lo, b.Hi))
			continue
		}
		covered.Insert(uint32(b.Lo), uint32(b.Hi))
	}
	if covered.Covers(0, uint32(automata.SymbolMax)) {
		return nil
	}
	return &DefinitionError{
		Group: gp.Name,
		Reason: fmt.Sprintf("missing rules for state: no catch-all or end-of-input rule covers %s",
			strings.Join(gaps, ", ")),
	}
}
